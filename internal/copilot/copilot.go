// Package copilot answers natural-language hockey questions. A small
// classifier structures each question, a dispatcher pulls the relevant
// rows and predictions into a Markdown context, and a generator turns
// that context into the final answer.
package copilot

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/halverson/puckcast/internal/llm"
	"github.com/halverson/puckcast/internal/predict"
	"github.com/halverson/puckcast/internal/rag"
	"github.com/halverson/puckcast/internal/season"
	"github.com/halverson/puckcast/internal/store"
	"github.com/halverson/puckcast/internal/store/repository"
)

// statLabels maps queryable stat keys to display names
var statLabels = map[string]string{
	"goals":         "Goals",
	"assists":       "Assists",
	"points":        "Points",
	"xg":            "Expected Goals",
	"corsi_for_pct": "Corsi For %",
}

const answerSystem = `You are a hockey analytics assistant. Answer the question using ONLY the data context provided. Quote exact numbers from the context. If the context does not cover the question, say so plainly. Keep answers short and direct.`

// Answer is one copilot response
type Answer struct {
	Question string   `json:"question"`
	Intent   Intent   `json:"intent"`
	Response string   `json:"response"`
	Context  string   `json:"context,omitempty"`
	Sources  []string `json:"sources"`
}

// Copilot routes questions to stored data, predictions and documents
type Copilot struct {
	generator llm.Generator
	rag       *rag.Service
	engine    *predict.Engine
	players   *repository.PlayerRepository
	stats     *repository.StatRepository
	games     *repository.GameRepository
	injuries  *repository.InjuryRepository
	logger    *log.Logger
	now       func() time.Time
}

// New creates a copilot. The generator and document service may be nil;
// answers then come straight from the assembled data context.
func New(generator llm.Generator, ragSvc *rag.Service, engine *predict.Engine, db *store.Database) *Copilot {
	return &Copilot{
		generator: generator,
		rag:       ragSvc,
		engine:    engine,
		players:   repository.NewPlayerRepository(db),
		stats:     repository.NewStatRepository(db),
		games:     repository.NewGameRepository(db),
		injuries:  repository.NewInjuryRepository(db),
		logger:    log.WithPrefix("copilot"),
		now:       time.Now,
	}
}

// Answer classifies the question, gathers data and composes a response
func (c *Copilot) Answer(ctx context.Context, question string) (*Answer, error) {
	cls := c.Classify(ctx, question)

	dataContext, sources := c.buildContext(ctx, question, cls)

	ans := &Answer{
		Question: question,
		Intent:   cls.Type,
		Context:  dataContext,
		Sources:  sources,
	}

	if dataContext == "" {
		ans.Response = "I don't have data to answer that. Try asking about a player, a team, league leaders, or an upcoming game."
		return ans, nil
	}

	if c.generator != nil {
		prompt := fmt.Sprintf("Data context:\n\n%s\n\nQuestion: %s", dataContext, question)
		response, err := c.generator.Generate(ctx, answerSystem, prompt)
		if err == nil && strings.TrimSpace(response) != "" {
			ans.Response = response
			return ans, nil
		}
		c.logger.Warn("answer generation failed, returning data context", "error", err)
	}

	ans.Response = dataContext
	return ans, nil
}

// section labels one block of the assembled data context
type section int

const (
	sectionPrediction section = iota
	sectionTrade
	sectionAllTeams
	sectionTeams
	sectionLeaders
	sectionPlayers
	sectionDocuments
)

// contextSections orders the sections a classification calls for: one
// primary branch chosen first-match-wins, then player stat rows for any
// named players, then document search.
func contextSections(cls *Classification) []section {
	var secs []section

	switch {
	case cls.IsPredictionQuery || cls.Type == IntentPrediction ||
		cls.Type == IntentMatchupPrediction || cls.Type == IntentTonightPrediction:
		secs = append(secs, sectionPrediction)
	case cls.IsTradeQuery || cls.Type == IntentTradeSuggestion:
		secs = append(secs, sectionTrade)
	case cls.IsAllTeamsQuery:
		secs = append(secs, sectionAllTeams)
	case len(cls.Teams) > 0:
		secs = append(secs, sectionTeams)
	case cls.IsLeadersQuery || cls.Type == IntentLeaders:
		secs = append(secs, sectionLeaders)
	}

	if len(cls.Players) > 0 {
		secs = append(secs, sectionPlayers)
	}
	secs = append(secs, sectionDocuments)
	return secs
}

// buildContext assembles every applicable section into one Markdown
// context, blank-line separated, and returns it with the source tags.
func (c *Copilot) buildContext(ctx context.Context, question string, cls *Classification) (string, []string) {
	var parts []string
	sources := []string{}

	for _, sec := range contextSections(cls) {
		var text, tag string
		switch sec {
		case sectionPrediction:
			text, tag = c.predictionSection(ctx, cls), "predictions"
		case sectionTrade:
			text, tag = c.tradeSection(ctx, cls), "trade_model"
		case sectionAllTeams:
			text, tag = c.allTeamsSection(ctx, cls), "season_stats"
		case sectionTeams:
			text, tag = c.teamSection(ctx, cls), "season_stats"
		case sectionLeaders:
			text, tag = c.leadersSection(ctx, cls), "season_stats"
		case sectionPlayers:
			text, tag = c.playerSection(ctx, cls), "season_stats"
		case sectionDocuments:
			text, tag = c.documentsSection(ctx, question), "documents"
		}
		if text == "" {
			continue
		}
		parts = append(parts, text)
		if !slices.Contains(sources, tag) {
			sources = append(sources, tag)
		}
	}

	return strings.Join(parts, "\n\n"), sources
}

// resolveSeason extracts a 4-digit start year from the timeframe, else
// falls back to the most recent season with data.
var yearPattern = regexp.MustCompile(`\b(\d{4})\b`)

func (c *Copilot) resolveSeason(ctx context.Context, timeframe string) string {
	if m := yearPattern.FindStringSubmatch(timeframe); m != nil {
		if year, err := strconv.Atoi(m[1]); err == nil {
			return season.Encode(year)
		}
	}
	latest, err := c.stats.MostRecentSeason(ctx)
	if err != nil {
		return ""
	}
	return latest
}

func (c *Copilot) resolveStat(cls *Classification) string {
	for _, s := range cls.Stats {
		if repository.ValidStat(s) {
			return s
		}
	}
	return "points"
}

// predictionSection answers game-day questions. A named team with no
// game that day yields the scheduling sentinel instead of a prediction.
func (c *Copilot) predictionSection(ctx context.Context, cls *Classification) string {
	date := ResolveGameDate(cls.Timeframe, c.now())

	var games []*store.Game
	if len(cls.Teams) > 0 {
		team, ok := ResolveTeam(cls.Teams[0])
		if !ok {
			return ""
		}
		game, err := c.games.GetTeamGameOnDate(ctx, team, date)
		if err != nil {
			c.logger.Warn("game lookup failed", "team", team, "error", err)
			return ""
		}
		if game == nil {
			return fmt.Sprintf("No game scheduled for %s on %s.", team, DisplayDate(date))
		}
		games = []*store.Game{game}
	} else {
		all, err := c.games.GetByDate(ctx, date)
		if err != nil {
			c.logger.Warn("schedule lookup failed", "date", date, "error", err)
			return ""
		}
		if len(all) == 0 {
			return fmt.Sprintf("No games scheduled for %s.", DisplayDate(date))
		}
		games = all
	}

	var b strings.Builder
	b.WriteString("## Scoring Predictions\n")
	for _, game := range games {
		mp, err := c.engine.PredictMatchup(ctx, game.HomeAbbrev, game.AwayAbbrev, game.GameDate, 3)
		if err != nil {
			c.logger.Warn("matchup prediction failed",
				"home", game.HomeAbbrev, "away", game.AwayAbbrev, "error", err)
			continue
		}

		fmt.Fprintf(&b, "\n### %s @ %s (%s)\n", mp.AwayTeam, mp.HomeTeam, mp.GameDate)
		fmt.Fprintf(&b, "Expected total goals: %.1f (%s pace)\n", mp.ExpectedTotalGoals, mp.PaceRating)
		if len(mp.TopScorers) > 0 {
			b.WriteString("\nMost likely goal scorers:\n")
			for _, p := range mp.TopScorers {
				fmt.Fprintf(&b, "- %s (%s): %.1f%% goal, %.1f%% point, %.2f expected points [%s confidence]\n",
					p.Name, p.Team, p.ProbGoal*100, p.ProbPoint*100, p.ExpectedPoints, p.ConfidenceTier)
			}
		}
	}
	return b.String()
}

const (
	tradeBandLow  = 0.8
	tradeBandHigh = 1.2
)

// tradeBand widens a combined value score into the acceptable range
// for comparable players
func tradeBand(total float64) (low, high float64) {
	return total * tradeBandLow, total * tradeBandHigh
}

// tradeSection finds players of comparable combined production value to
// the ones named in the question.
func (c *Copilot) tradeSection(ctx context.Context, cls *Classification) string {
	if len(cls.Players) == 0 {
		return ""
	}

	targets := make([]*repository.TradeValueRow, 0, len(cls.Players))
	exclude := append([]string{}, cls.Players...)
	total := 0.0
	for _, name := range cls.Players {
		target, err := c.stats.TradeValueForPlayer(ctx, name)
		if err != nil {
			c.logger.Warn("trade value lookup failed", "player", name, "error", err)
			continue
		}
		targets = append(targets, target)
		exclude = append(exclude, target.Name)
		total += target.Value
	}
	if len(targets) == 0 {
		return ""
	}

	low, high := tradeBand(total)
	candidates, err := c.stats.TradeCandidates(ctx, low, high, exclude, 10)
	if err != nil {
		c.logger.Warn("trade candidate query failed", "error", err)
		return ""
	}

	var b strings.Builder
	b.WriteString("## Trade Analysis\n\n")
	for _, target := range targets {
		fmt.Fprintf(&b, "%s (%s): %d points in %d games, value score %.1f\n",
			target.Name, target.TeamAbbrev, target.Points, target.GamesPlayed, target.Value)
	}
	if len(targets) > 1 {
		fmt.Fprintf(&b, "Combined value score: %.1f\n", total)
	}

	if len(candidates) == 0 {
		b.WriteString("\nNo players of comparable value found.\n")
		return b.String()
	}

	b.WriteString("\nComparable players:\n")
	for _, cand := range candidates {
		fmt.Fprintf(&b, "- %s (%s): %d points in %d games, value score %.1f\n",
			cand.Name, cand.TeamAbbrev, cand.Points, cand.GamesPlayed, cand.Value)
	}
	return b.String()
}

// allTeamsSection lists each team's top players by the requested stat
func (c *Copilot) allTeamsSection(ctx context.Context, cls *Classification) string {
	seasonCode := c.resolveSeason(ctx, cls.Timeframe)
	if seasonCode == "" {
		return ""
	}
	stat := c.resolveStat(cls)
	topN := cls.TopN
	if topN <= 0 {
		topN = 3
	}

	rows, err := c.stats.AllTeamsTopByStat(ctx, seasonCode, stat, topN)
	if err != nil || len(rows) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("## All Teams Breakdown\n\n")
	fmt.Fprintf(&b, "Top %d players per team by %s (%s season):\n", topN, statLabels[stat], season.Display(seasonCode))

	currentTeam := ""
	for _, row := range rows {
		team := row.TeamAbbrev.String
		if team != currentTeam {
			fmt.Fprintf(&b, "\n### %s\n", team)
			currentTeam = team
		}
		b.WriteString(formatStatLine(row, stat))
	}
	return b.String()
}

// teamSection covers roster leaders and active injuries for named teams
func (c *Copilot) teamSection(ctx context.Context, cls *Classification) string {
	seasonCode := c.resolveSeason(ctx, cls.Timeframe)
	if seasonCode == "" {
		return ""
	}
	stat := c.resolveStat(cls)
	limit := cls.TopN
	if limit <= 0 {
		limit = 5
	}

	var b strings.Builder
	wrote := false
	for _, name := range cls.Teams {
		team, ok := ResolveTeam(name)
		if !ok {
			continue
		}

		rows, err := c.stats.TeamTopByStat(ctx, team, seasonCode, stat, limit)
		if err != nil || len(rows) == 0 {
			continue
		}

		if !wrote {
			b.WriteString("## Team Statistics\n")
			wrote = true
		}
		fmt.Fprintf(&b, "\n### %s (%s season, by %s)\n", team, season.Display(seasonCode), statLabels[stat])
		for _, row := range rows {
			b.WriteString(formatStatLine(row, stat))
		}

		injuries, err := c.injuries.GetActive(ctx, team)
		if err == nil && len(injuries) > 0 {
			b.WriteString("\nActive injuries:\n")
			for _, inj := range injuries {
				fmt.Fprintf(&b, "- %s: %s\n", inj.PlayerName, inj.Status)
			}
		}
	}
	if !wrote {
		return ""
	}
	return b.String()
}

// leadersSection lists league-wide leaders for the requested stat
func (c *Copilot) leadersSection(ctx context.Context, cls *Classification) string {
	seasonCode := c.resolveSeason(ctx, cls.Timeframe)
	if seasonCode == "" {
		return ""
	}
	stat := c.resolveStat(cls)
	limit := cls.TopN
	if limit <= 0 {
		limit = 10
	}

	rows, err := c.stats.LeagueLeaders(ctx, stat, seasonCode, limit)
	if err != nil || len(rows) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("## League Leaders\n\n")
	b.WriteString(LeadersHeader(limit, stat, seasonCode))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(formatStatLine(row, stat))
	}
	return b.String()
}

// LeadersHeader renders the bolded leaders heading, e.g.
// "**Top 10 players by Xg (2015-16 season):**"
func LeadersHeader(limit int, stat, seasonCode string) string {
	return fmt.Sprintf("**Top %d players by %s (%s season):**", limit, titleStat(stat), season.Display(seasonCode))
}

// titleStat capitalizes each underscore-separated word in a stat key
func titleStat(stat string) string {
	parts := strings.Split(stat, "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, "_")
}

// playerSection covers season totals and injury status per named player
func (c *Copilot) playerSection(ctx context.Context, cls *Classification) string {
	var b strings.Builder
	wrote := false
	for _, name := range cls.Players {
		player, err := c.players.GetByName(ctx, name)
		if err != nil {
			continue
		}

		stats, err := c.stats.GetAllForPlayer(ctx, player.ID)
		if err != nil || len(stats) == 0 {
			continue
		}
		// trend questions want history; everything else wants the
		// latest season
		if cls.Type != IntentTrendAnalysis && cls.Type != IntentComparison && len(stats) > 3 {
			stats = stats[:3]
		}

		if !wrote {
			b.WriteString("## Player Statistics\n")
			wrote = true
		}
		fmt.Fprintf(&b, "\n### %s (%s, %s)\n", player.Name, player.TeamAbbrev.String, player.Position.String)
		for _, stat := range stats {
			fmt.Fprintf(&b, "- %s: %d GP, %d G, %d A, %d P",
				season.Display(stat.Season), stat.GamesPlayed, stat.Goals, stat.Assists, stat.Points)
			if stat.XG.Valid {
				fmt.Fprintf(&b, ", %.1f xG", stat.XG.Float64)
			}
			if stat.CorsiForPct.Valid {
				fmt.Fprintf(&b, ", %.1f CF%%", stat.CorsiForPct.Float64)
			}
			b.WriteString("\n")
		}

		if injury, _ := c.injuries.ActiveForPlayer(ctx, player.ID); injury != nil {
			fmt.Fprintf(&b, "\nInjury status: %s", injury.Status)
			if injury.Description.Valid {
				fmt.Fprintf(&b, " (%s)", injury.Description.String)
			}
			b.WriteString("\n")
		}
	}
	if !wrote {
		return ""
	}
	return b.String()
}

// documentsSection searches indexed articles for anything relevant
func (c *Copilot) documentsSection(ctx context.Context, question string) string {
	if c.rag == nil || !c.rag.Enabled() {
		return ""
	}

	docs, err := c.rag.Search(ctx, question, 3, rag.DefaultMinSimilarity)
	if err != nil || len(docs) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("## Related Analysis\n")
	for _, doc := range docs {
		title := doc.Title.String
		if title == "" {
			title = "Untitled"
		}
		fmt.Fprintf(&b, "\n**%s** (similarity %.2f)\n%s\n", title, doc.Similarity, doc.Content)
	}
	return b.String()
}

// formatStatLine renders one player row with the requested stat leading
func formatStatLine(row *store.SeasonStat, stat string) string {
	var value string
	switch stat {
	case "goals":
		value = fmt.Sprintf("%d G", row.Goals)
	case "assists":
		value = fmt.Sprintf("%d A", row.Assists)
	case "xg":
		value = fmt.Sprintf("%.1f xG", row.XG.Float64)
	case "corsi_for_pct":
		value = fmt.Sprintf("%.1f CF%%", row.CorsiForPct.Float64)
	default:
		value = fmt.Sprintf("%d P", row.Points)
	}
	return fmt.Sprintf("- %s: %s (%d GP, %d G, %d A, %d P)\n",
		row.PlayerName, value, row.GamesPlayed, row.Goals, row.Assists, row.Points)
}
