package nhl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
)

const (
	webBaseURL   = "https://api-web.nhle.com/v1"
	statsBaseURL = "https://api.nhle.com/stats/rest/en"
	userAgent    = "puckcast/1.0 (hockey analytics)"
)

// Client fetches schedule, roster, game-log and summary data from the
// league's public APIs.
type Client struct {
	http      *http.Client
	webBase   string
	statsBase string
}

// NewClient creates a league API client with a 30 second timeout
func NewClient() *Client {
	return &Client{
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		webBase:   webBaseURL,
		statsBase: statsBaseURL,
	}
}

func (c *Client) get(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("fetching %s: status %d", rawURL, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s: %w", rawURL, err)
	}

	return nil
}

// Schedule fetches the schedule week containing the given ISO date
func (c *Client) Schedule(ctx context.Context, date string) (*ScheduleResponse, error) {
	var out ScheduleResponse
	if err := c.get(ctx, fmt.Sprintf("%s/schedule/%s", c.webBase, date), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Roster fetches a team's roster for a season
func (c *Client) Roster(ctx context.Context, teamAbbrev, seasonCode string) (*RosterResponse, error) {
	var out RosterResponse
	if err := c.get(ctx, fmt.Sprintf("%s/roster/%s/%s", c.webBase, teamAbbrev, seasonCode), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PlayerGameLog fetches a player's per-game lines for a season.
// Any HTTP failure yields an empty log rather than an error; a player with
// no games in the requested season is indistinguishable from one the
// source does not know.
func (c *Client) PlayerGameLog(ctx context.Context, playerID int, seasonCode string, gameType int) []GameLogEntry {
	var out GameLogResponse
	url := fmt.Sprintf("%s/player/%d/game-log/%s/%d", c.webBase, playerID, seasonCode, gameType)
	if err := c.get(ctx, url, &out); err != nil {
		log.Debug("game log fetch failed", "player", playerID, "error", err)
		return nil
	}
	return out.GameLog
}

// Standings fetches the current league standings
func (c *Client) Standings(ctx context.Context) (*StandingsResponse, error) {
	var out StandingsResponse
	if err := c.get(ctx, c.webBase+"/standings/now", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Boxscore fetches the boxscore for a game
func (c *Client) Boxscore(ctx context.Context, gameID int64) (*BoxscoreResponse, error) {
	var out BoxscoreResponse
	if err := c.get(ctx, fmt.Sprintf("%s/gamecenter/%d/boxscore", c.webBase, gameID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GoalieSummary fetches the stats API goalie summary report for a season
func (c *Client) GoalieSummary(ctx context.Context, seasonCode string) ([]GoalieSummaryRow, error) {
	var out statsData[GoalieSummaryRow]
	if err := c.get(ctx, c.statsURL("goalie/summary", seasonCode), &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// TeamSummary fetches the stats API team summary report for a season
func (c *Client) TeamSummary(ctx context.Context, seasonCode string) ([]TeamSummaryRow, error) {
	var out statsData[TeamSummaryRow]
	if err := c.get(ctx, c.statsURL("team/summary", seasonCode), &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) statsURL(report, seasonCode string) string {
	q := url.Values{}
	q.Set("cayenneExp", fmt.Sprintf("seasonId=%s and gameTypeId=2", seasonCode))
	q.Set("limit", "-1")
	return fmt.Sprintf("%s/%s?%s", c.statsBase, report, q.Encode())
}
