// Package salary scrapes player cap hits from PuckPedia team pages.
// CapFriendly shut its public site after the league acquired it, which
// leaves PuckPedia as the usable contract source.
package salary

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"
)

const puckpediaBase = "https://puckpedia.com"

// teamSlugs maps franchise codes to PuckPedia URL slugs
var teamSlugs = map[string]string{
	"ANA": "anaheim-ducks",
	"BOS": "boston-bruins",
	"BUF": "buffalo-sabres",
	"CGY": "calgary-flames",
	"CAR": "carolina-hurricanes",
	"CHI": "chicago-blackhawks",
	"COL": "colorado-avalanche",
	"CBJ": "columbus-blue-jackets",
	"DAL": "dallas-stars",
	"DET": "detroit-red-wings",
	"EDM": "edmonton-oilers",
	"FLA": "florida-panthers",
	"LAK": "los-angeles-kings",
	"MIN": "minnesota-wild",
	"MTL": "montreal-canadiens",
	"NSH": "nashville-predators",
	"NJD": "new-jersey-devils",
	"NYI": "new-york-islanders",
	"NYR": "new-york-rangers",
	"OTT": "ottawa-senators",
	"PHI": "philadelphia-flyers",
	"PIT": "pittsburgh-penguins",
	"SJS": "san-jose-sharks",
	"SEA": "seattle-kraken",
	"STL": "st-louis-blues",
	"TBL": "tampa-bay-lightning",
	"TOR": "toronto-maple-leafs",
	"UTA": "utah-hockey-club",
	"VAN": "vancouver-canucks",
	"VGK": "vegas-golden-knights",
	"WSH": "washington-capitals",
	"WPG": "winnipeg-jets",
}

// Contract is one scraped player contract line
type Contract struct {
	PlayerName  string
	TeamAbbrev  string
	CapHitCents int64
}

// Scraper fetches and parses team cap pages
type Scraper struct {
	http   *http.Client
	logger *log.Logger
}

// NewScraper creates a cap page scraper
func NewScraper() *Scraper {
	return &Scraper{
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: log.WithPrefix("salary"),
	}
}

// FetchTeam scrapes one team's cap page. Transient failures yield an
// empty list.
func (s *Scraper) FetchTeam(ctx context.Context, teamAbbrev string) []Contract {
	slug, ok := teamSlugs[teamAbbrev]
	if !ok {
		s.logger.Warn("unknown team slug", "team", teamAbbrev)
		return nil
	}

	url := fmt.Sprintf("%s/team/%s", puckpediaBase, slug)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", "puckcast/1.0 (hockey analytics)")

	resp, err := s.http.Do(req)
	if err != nil {
		s.logger.Warn("cap page fetch failed", "team", teamAbbrev, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("cap page fetch failed", "team", teamAbbrev, "status", resp.StatusCode)
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		s.logger.Warn("cap page parse failed", "team", teamAbbrev, "error", err)
		return nil
	}

	return parseContracts(doc, teamAbbrev)
}

// parseContracts walks table rows looking for a player link and a dollar
// cell. The page structure shifts between redesigns, so selection stays
// permissive.
func parseContracts(doc *goquery.Document, teamAbbrev string) []Contract {
	var contracts []Contract

	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		link := row.Find(`a[href*="/player/"]`).First()
		if link.Length() == 0 {
			return
		}
		name := strings.TrimSpace(link.Text())
		if name == "" {
			return
		}

		var capHit int64
		row.Find("td").EachWithBreak(func(_ int, cell *goquery.Selection) bool {
			text := strings.TrimSpace(cell.Text())
			if !strings.Contains(text, "$") {
				return true
			}
			if cents, ok := ParseCapHit(text); ok {
				capHit = cents
				return false
			}
			return true
		})

		if capHit > 0 {
			contracts = append(contracts, Contract{
				PlayerName:  name,
				TeamAbbrev:  teamAbbrev,
				CapHitCents: capHit,
			})
		}
	})

	return contracts
}

var capHitCleaner = regexp.MustCompile(`[$,]`)

// ParseCapHit converts a display value like "$10,500,000" to integer cents
func ParseCapHit(s string) (int64, bool) {
	clean := capHitCleaner.ReplaceAllString(strings.TrimSpace(s), "")
	if clean == "" {
		return 0, false
	}
	dollars, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, false
	}
	return int64(dollars * 100), true
}

// TeamCodes returns the franchise codes with a known cap page
func TeamCodes() []string {
	codes := make([]string, 0, len(teamSlugs))
	for code := range teamSlugs {
		codes = append(codes, code)
	}
	return codes
}
