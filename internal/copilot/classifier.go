package copilot

import (
	"context"
	"encoding/json"
	"strings"
)

// Intent labels a question with the kind of answer it wants
type Intent string

const (
	IntentStatsLookup       Intent = "stats_lookup"
	IntentComparison        Intent = "comparison"
	IntentTrendAnalysis     Intent = "trend_analysis"
	IntentExplainer         Intent = "explainer"
	IntentPrediction        Intent = "prediction"
	IntentLeaders           Intent = "leaders"
	IntentTeamBreakdown     Intent = "team_breakdown"
	IntentMatchupPrediction Intent = "matchup_prediction"
	IntentTonightPrediction Intent = "tonight_prediction"
	IntentTradeSuggestion   Intent = "trade_suggestion"
	IntentUnknown           Intent = "unknown"
)

// Classification is the structured reading of a user question
type Classification struct {
	Type             Intent   `json:"type"`
	Players          []string `json:"players"`
	Teams            []string `json:"teams"`
	Stats            []string `json:"stats"`
	Timeframe        string   `json:"timeframe"`
	IsLeadersQuery   bool     `json:"is_leaders_query"`
	IsAllTeamsQuery  bool     `json:"is_all_teams_query"`
	IsPredictionQuery bool    `json:"is_prediction_query"`
	IsTonightQuery   bool     `json:"is_tonight_query"`
	IsTradeQuery     bool     `json:"is_trade_query"`
	TopN             int      `json:"top_n"`
}

const classifierSystem = `You classify hockey questions into structured JSON. Respond with ONLY a JSON object, no prose, with these fields:
{
  "type": one of "stats_lookup", "comparison", "trend_analysis", "explainer", "prediction", "leaders", "team_breakdown", "matchup_prediction", "tonight_prediction", "trade_suggestion",
  "players": [full player names mentioned],
  "teams": [team names or abbreviations mentioned],
  "stats": [stat keys from: goals, assists, points, xg, corsi_for_pct],
  "timeframe": a season like "2023" or a day like "tonight", "tomorrow", "saturday", "March 5", or null,
  "is_leaders_query": true if asking for league-wide leaders,
  "is_all_teams_query": true if asking about every team at once,
  "is_prediction_query": true if asking who will score or how a game will go,
  "is_tonight_query": true if about games on a specific day,
  "is_trade_query": true if asking for trade targets or comparable players,
  "top_n": how many results were requested, or 0
}`

// Classify asks the generator to structure the question. Any failure
// degrades to an unknown classification so the caller can still answer
// from retrieval.
func (c *Copilot) Classify(ctx context.Context, question string) *Classification {
	fallback := &Classification{
		Type:    IntentUnknown,
		Players: []string{},
		Teams:   []string{},
		Stats:   []string{},
	}

	if c.generator == nil {
		return fallback
	}

	raw, err := c.generator.Generate(ctx, classifierSystem, question)
	if err != nil {
		c.logger.Warn("classification failed", "error", err)
		return fallback
	}

	parsed, ok := ParseClassification(raw)
	if !ok {
		c.logger.Warn("unparseable classification", "raw", raw)
		return fallback
	}
	return parsed
}

// ParseClassification decodes a model response, tolerating fenced code
// blocks around the JSON.
func ParseClassification(raw string) (*Classification, bool) {
	text := StripCodeFence(raw)

	var parsed Classification
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, false
	}
	if parsed.Type == "" {
		parsed.Type = IntentUnknown
	}
	if parsed.Players == nil {
		parsed.Players = []string{}
	}
	if parsed.Teams == nil {
		parsed.Teams = []string{}
	}
	if parsed.Stats == nil {
		parsed.Stats = []string{}
	}
	return &parsed, true
}

// StripCodeFence removes a surrounding Markdown code fence, with or
// without a language tag.
func StripCodeFence(s string) string {
	text := strings.TrimSpace(s)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	if idx := strings.Index(text, "\n"); idx >= 0 {
		// drop the language tag line, e.g. ```json
		first := strings.TrimSpace(text[:idx])
		if first == "" || !strings.ContainsAny(first, "{}") {
			text = text[idx+1:]
		}
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
