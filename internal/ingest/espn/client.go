// Package espn ingests the league-wide injury report from ESPN's public
// injuries feed, the most complete free source for NHL injury data.
package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

const injuriesURL = "https://site.api.espn.com/apis/site/v2/sports/hockey/nhl/injuries"

// feedResponse is the injuries feed envelope, grouped by team
type feedResponse struct {
	Injuries []teamInjuries `json:"injuries"`
}

type teamInjuries struct {
	DisplayName string      `json:"displayName"`
	Injuries    []feedEntry `json:"injuries"`
}

type feedEntry struct {
	Status       string      `json:"status"`
	Date         string      `json:"date"`
	ShortComment string      `json:"shortComment"`
	LongComment  string      `json:"longComment"`
	Athlete      feedAthlete `json:"athlete"`
}

type feedAthlete struct {
	ID          string       `json:"id"`
	DisplayName string       `json:"displayName"`
	FirstName   string       `json:"firstName"`
	LastName    string       `json:"lastName"`
	Position    feedPosition `json:"position"`
}

type feedPosition struct {
	Abbreviation string `json:"abbreviation"`
}

// InjuryReport is one normalized injury record from the feed
type InjuryReport struct {
	PlayerName   string
	LastName     string
	TeamAbbrev   string
	Status       string
	Description  string
	Position     string
	ReportedDate time.Time
	HasDate      bool
}

// Client fetches the injuries feed
type Client struct {
	http *http.Client
}

// NewClient creates an injuries feed client
func NewClient() *Client {
	return &Client{
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchInjuries returns the current league-wide injury list. Transient
// failures yield an empty list so the orchestrator can skip the pass.
func (c *Client) FetchInjuries(ctx context.Context) []InjuryReport {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, injuriesURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", "puckcast/1.0 (hockey analytics)")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("injuries fetch failed", "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		log.Warn("injuries fetch failed", "status", resp.StatusCode)
		return nil
	}

	var feed feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		log.Warn("injuries decode failed", "error", err)
		return nil
	}

	var reports []InjuryReport
	for _, team := range feed.Injuries {
		abbrev, ok := TeamAbbrev(team.DisplayName)
		if !ok {
			log.Warn("unknown team in injuries feed", "name", team.DisplayName)
			continue
		}

		for _, entry := range team.Injuries {
			description := entry.LongComment
			if description == "" {
				description = entry.ShortComment
			}

			report := InjuryReport{
				PlayerName:  entry.Athlete.DisplayName,
				LastName:    entry.Athlete.LastName,
				TeamAbbrev:  abbrev,
				Status:      entry.Status,
				Description: description,
				Position:    entry.Athlete.Position.Abbreviation,
			}
			if d, err := parseFeedDate(entry.Date); err == nil {
				report.ReportedDate = d
				report.HasDate = true
			}
			reports = append(reports, report)
		}
	}

	return reports
}

func parseFeedDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04Z", s)
}
