package copilot

import "strings"

// teamAliases maps common ways of naming a franchise to its code.
// Keys are lowercase; lookups also try the city, nickname and a few
// fan shorthands.
var teamAliases = map[string]string{
	"anaheim ducks":         "ANA",
	"anaheim":               "ANA",
	"ducks":                 "ANA",
	"boston bruins":         "BOS",
	"boston":                "BOS",
	"bruins":                "BOS",
	"buffalo sabres":        "BUF",
	"buffalo":               "BUF",
	"sabres":                "BUF",
	"calgary flames":        "CGY",
	"calgary":               "CGY",
	"flames":                "CGY",
	"carolina hurricanes":   "CAR",
	"carolina":              "CAR",
	"hurricanes":            "CAR",
	"canes":                 "CAR",
	"chicago blackhawks":    "CHI",
	"chicago":               "CHI",
	"blackhawks":            "CHI",
	"hawks":                 "CHI",
	"colorado avalanche":    "COL",
	"colorado":              "COL",
	"avalanche":             "COL",
	"avs":                   "COL",
	"columbus blue jackets": "CBJ",
	"columbus":              "CBJ",
	"blue jackets":          "CBJ",
	"jackets":               "CBJ",
	"dallas stars":          "DAL",
	"dallas":                "DAL",
	"stars":                 "DAL",
	"detroit red wings":     "DET",
	"detroit":               "DET",
	"red wings":             "DET",
	"wings":                 "DET",
	"edmonton oilers":       "EDM",
	"edmonton":              "EDM",
	"oilers":                "EDM",
	"florida panthers":      "FLA",
	"florida":               "FLA",
	"panthers":              "FLA",
	"los angeles kings":     "LAK",
	"los angeles":           "LAK",
	"la kings":              "LAK",
	"kings":                 "LAK",
	"minnesota wild":        "MIN",
	"minnesota":             "MIN",
	"wild":                  "MIN",
	"montreal canadiens":    "MTL",
	"montréal canadiens":    "MTL",
	"montreal":              "MTL",
	"canadiens":             "MTL",
	"habs":                  "MTL",
	"nashville predators":   "NSH",
	"nashville":             "NSH",
	"predators":             "NSH",
	"preds":                 "NSH",
	"new jersey devils":     "NJD",
	"new jersey":            "NJD",
	"devils":                "NJD",
	"new york islanders":    "NYI",
	"islanders":             "NYI",
	"isles":                 "NYI",
	"new york rangers":      "NYR",
	"rangers":               "NYR",
	"ottawa senators":       "OTT",
	"ottawa":                "OTT",
	"senators":              "OTT",
	"sens":                  "OTT",
	"philadelphia flyers":   "PHI",
	"philadelphia":          "PHI",
	"flyers":                "PHI",
	"pittsburgh penguins":   "PIT",
	"pittsburgh":            "PIT",
	"penguins":              "PIT",
	"pens":                  "PIT",
	"san jose sharks":       "SJS",
	"san jose":              "SJS",
	"sharks":                "SJS",
	"seattle kraken":        "SEA",
	"seattle":               "SEA",
	"kraken":                "SEA",
	"st. louis blues":       "STL",
	"st louis blues":        "STL",
	"st. louis":             "STL",
	"st louis":              "STL",
	"blues":                 "STL",
	"tampa bay lightning":   "TBL",
	"tampa bay":             "TBL",
	"tampa":                 "TBL",
	"lightning":             "TBL",
	"bolts":                 "TBL",
	"toronto maple leafs":   "TOR",
	"toronto":               "TOR",
	"maple leafs":           "TOR",
	"leafs":                 "TOR",
	"utah hockey club":      "UTA",
	"utah mammoth":          "UTA",
	"utah":                  "UTA",
	"mammoth":               "UTA",
	"vancouver canucks":     "VAN",
	"vancouver":             "VAN",
	"canucks":               "VAN",
	"vegas golden knights":  "VGK",
	"vegas":                 "VGK",
	"golden knights":        "VGK",
	"knights":               "VGK",
	"washington capitals":   "WSH",
	"washington":            "WSH",
	"capitals":              "WSH",
	"caps":                  "WSH",
	"winnipeg jets":         "WPG",
	"winnipeg":              "WPG",
	"jets":                  "WPG",
}

// ResolveTeam maps a user-supplied team name to a franchise code.
// Three-letter inputs pass through uppercased; otherwise aliases are
// tried exactly, then as substrings.
func ResolveTeam(name string) (string, bool) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", false
	}

	if len(trimmed) == 3 && !strings.ContainsAny(trimmed, " .") {
		return strings.ToUpper(trimmed), true
	}

	lower := strings.ToLower(trimmed)
	if code, ok := teamAliases[lower]; ok {
		return code, true
	}

	// longest alias wins so "new york rangers game" resolves on the
	// full name rather than a shorter fragment
	var best string
	bestLen := 0
	for alias, code := range teamAliases {
		if strings.Contains(lower, alias) && len(alias) > bestLen {
			best = code
			bestLen = len(alias)
		}
	}
	if bestLen > 0 {
		return best, true
	}

	return "", false
}
