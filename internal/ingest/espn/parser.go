package espn

import "strings"

// espnTeamMap maps the feed's team display names to franchise codes
var espnTeamMap = map[string]string{
	"Anaheim Ducks":         "ANA",
	"Arizona Coyotes":       "ARI",
	"Boston Bruins":         "BOS",
	"Buffalo Sabres":        "BUF",
	"Calgary Flames":        "CGY",
	"Carolina Hurricanes":   "CAR",
	"Chicago Blackhawks":    "CHI",
	"Colorado Avalanche":    "COL",
	"Columbus Blue Jackets": "CBJ",
	"Dallas Stars":          "DAL",
	"Detroit Red Wings":     "DET",
	"Edmonton Oilers":       "EDM",
	"Florida Panthers":      "FLA",
	"Los Angeles Kings":     "LAK",
	"Minnesota Wild":        "MIN",
	"Montreal Canadiens":    "MTL",
	"Montréal Canadiens":    "MTL",
	"Nashville Predators":   "NSH",
	"New Jersey Devils":     "NJD",
	"New York Islanders":    "NYI",
	"New York Rangers":      "NYR",
	"Ottawa Senators":       "OTT",
	"Philadelphia Flyers":   "PHI",
	"Pittsburgh Penguins":   "PIT",
	"San Jose Sharks":       "SJS",
	"Seattle Kraken":        "SEA",
	"St. Louis Blues":       "STL",
	"Tampa Bay Lightning":   "TBL",
	"Toronto Maple Leafs":   "TOR",
	"Utah Hockey Club":      "UTA",
	"Utah Mammoth":          "UTA",
	"Vancouver Canucks":     "VAN",
	"Vegas Golden Knights":  "VGK",
	"Washington Capitals":   "WSH",
	"Winnipeg Jets":         "WPG",
}

// TeamAbbrev resolves a feed team display name to its franchise code
func TeamAbbrev(displayName string) (string, bool) {
	abbrev, ok := espnTeamMap[displayName]
	return abbrev, ok
}

// NormalizeStatus maps a free-text injury status onto the fixed status enum.
// Matching is case-insensitive substring with long-term reserve checked
// before plain reserve so "LTIR" never collapses to "IR".
func NormalizeStatus(status string) string {
	s := strings.ToLower(strings.TrimSpace(status))

	switch {
	case s == "":
		return "Unknown"
	case strings.Contains(s, "long-term") || strings.Contains(s, "ltir"):
		return "LTIR"
	case strings.Contains(s, "injured reserve") || s == "ir":
		return "IR"
	case strings.Contains(s, "day-to-day") || strings.Contains(s, "dtd"):
		return "Day-to-Day"
	case strings.Contains(s, "out"):
		return "Out"
	case strings.Contains(s, "questionable"):
		return "Questionable"
	case strings.Contains(s, "probable"):
		return "Probable"
	case strings.Contains(s, "suspension"):
		return "Suspended"
	default:
		return status
	}
}
