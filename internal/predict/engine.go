// Package predict implements the weighted player-scoring model. Expected
// production blends recent form, season baseline and head-to-head history,
// then shifts by home/away splits, opposing goalie quality and game pace.
package predict

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/halverson/puckcast/internal/store"
	"github.com/halverson/puckcast/internal/store/repository"
)

// PlayerPrediction is the model output for one player in one game
type PlayerPrediction struct {
	PlayerID       int      `json:"player_id"`
	NHLID          int      `json:"nhl_id,omitempty"`
	Name           string   `json:"name"`
	Team           string   `json:"team,omitempty"`
	Position       string   `json:"position,omitempty"`
	Opponent       string   `json:"opponent"`
	IsHome         bool     `json:"is_home"`
	GameDate       string   `json:"game_date"`
	ProbGoal       float64  `json:"prob_goal"`
	ProbPoint      float64  `json:"prob_point"`
	ProbMultiPoint float64  `json:"prob_multi_point"`
	ExpectedGoals  float64  `json:"expected_goals"`
	ExpectedAssists float64 `json:"expected_assists"`
	ExpectedPoints float64  `json:"expected_points"`
	ExpectedShots  float64  `json:"expected_shots"`
	Confidence     float64  `json:"confidence"`
	ConfidenceTier string   `json:"confidence_tier"`
	GamesAnalyzed  int      `json:"games_analyzed"`
	Factors        []string `json:"factors"`
}

// MatchupPrediction aggregates per-player predictions for one game
type MatchupPrediction struct {
	HomeTeam           string              `json:"home_team"`
	AwayTeam           string              `json:"away_team"`
	GameDate           string              `json:"game_date"`
	HomePlayers        []*PlayerPrediction `json:"home_players"`
	AwayPlayers        []*PlayerPrediction `json:"away_players"`
	TopScorers         []*PlayerPrediction `json:"top_scorers"`
	ExpectedTotalGoals float64             `json:"expected_total_goals"`
	PaceRating         string              `json:"pace_rating"`
}

// Engine computes player and matchup predictions from stored data
type Engine struct {
	players   *repository.PlayerRepository
	stats     *repository.StatRepository
	logs      *repository.GameLogRepository
	goalies   *repository.GoalieRepository
	teamStats *repository.TeamStatRepository
	logger    *log.Logger
}

// NewEngine creates a prediction engine over the store
func NewEngine(db *store.Database) *Engine {
	return &Engine{
		players:   repository.NewPlayerRepository(db),
		stats:     repository.NewStatRepository(db),
		logs:      repository.NewGameLogRepository(db),
		goalies:   repository.NewGoalieRepository(db),
		teamStats: repository.NewTeamStatRepository(db),
		logger:    log.WithPrefix("predict"),
	}
}

// PredictPlayerByName resolves a player by name and predicts their line
func (e *Engine) PredictPlayerByName(ctx context.Context, name, opponent string, isHome bool, gameDate time.Time) (*PlayerPrediction, error) {
	player, err := e.players.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	season, _ := e.stats.MostRecentSeason(ctx)
	var mc *MatchupContext
	if isHome {
		mc = e.BuildMatchupContext(ctx, player.TeamAbbrev.String, opponent, season)
	} else {
		mc = e.BuildMatchupContext(ctx, opponent, player.TeamAbbrev.String, season)
	}

	return e.PredictPlayer(ctx, player, opponent, isHome, gameDate, mc)
}

// PredictPlayer runs the model for one player. Missing data drops
// components out of the blend; the call never fails on sparse history.
func (e *Engine) PredictPlayer(ctx context.Context, player *store.Player, opponent string, isHome bool, gameDate time.Time, mc *MatchupContext) (*PlayerPrediction, error) {
	pred := &PlayerPrediction{
		PlayerID: player.ID,
		NHLID:    player.NHLID,
		Name:     player.Name,
		Team:     player.TeamAbbrev.String,
		Position: player.Position.String,
		Opponent: opponent,
		IsHome:   isHome,
		GameDate: gameDate.Format("2006-01-02"),
		Factors:  []string{},
	}

	// Gated blend components
	var components []component
	gamesAnalyzed := 0

	recent, err := e.logs.RecentForm(ctx, player.ID, gameDate, recentFormWindow)
	if err != nil {
		return nil, err
	}
	recentPPG := 0.0
	recentOK := recent.Games >= minGamesRecent
	if recent.Games > 0 {
		recentPPG = float64(recent.Points) / float64(recent.Games)
		gamesAnalyzed += recent.Games
	}
	if recentOK {
		components = append(components, component{recentPPG, weightRecentForm})
	}

	seasonPPG := 0.0
	seasonOK := false
	seasonStat, err := e.stats.GetLatestForPlayer(ctx, player.ID)
	if err == nil && seasonStat.GamesPlayed > 0 {
		seasonPPG = float64(seasonStat.Points) / float64(seasonStat.GamesPlayed)
		gamesAnalyzed += seasonStat.GamesPlayed
		seasonOK = seasonStat.GamesPlayed >= minGamesSeason
	}
	if seasonOK {
		components = append(components, component{seasonPPG, weightSeasonBaseline})
	}

	h2h, err := e.logs.HeadToHead(ctx, player.ID, opponent)
	if err != nil {
		return nil, err
	}
	h2hPPG := 0.0
	h2hOK := h2h.Games >= minGamesH2H
	if h2h.Games > 0 {
		h2hPPG = float64(h2h.Points) / float64(h2h.Games)
		gamesAnalyzed += h2h.Games
	}
	if h2hOK {
		components = append(components, component{h2hPPG, weightH2HHistory})
	}

	// Additive adjustments
	homeAwayAdj := e.homeAwayAdjustment(ctx, player.ID, isHome)

	opposingGoalie := mc.HomeGoalie
	if isHome {
		opposingGoalie = mc.AwayGoalie
	}
	savePct := leagueAvgSavePct
	if opposingGoalie.HasData && opposingGoalie.SavePct > 0 {
		savePct = opposingGoalie.SavePct
	}
	svDiff := leagueAvgSavePct - savePct
	goalieAdj := svDiff * 5.0

	expectedTotal := mc.ExpectedTotalGoals
	if expectedTotal <= 0 {
		expectedTotal = defaultExpectedTotal
	}
	paceDiff := expectedTotal - leagueAvgGameTotal
	paceAdj := paceDiff * 0.10

	expectedPoints := blendBase(components) +
		homeAwayAdj*weightHomeAway +
		goalieAdj*weightGoalieMatchup +
		paceAdj*weightTeamPace
	if expectedPoints < 0 {
		expectedPoints = 0
	}

	goalRatio := defaultGoalRatio
	if recentOK && recent.Points > 0 {
		goalRatio = float64(recent.Goals) / float64(recent.Points)
	}
	expectedGoals := expectedPoints * goalRatio
	expectedAssists := expectedPoints * (1 - goalRatio)

	expectedShots := defaultExpectedShots
	if recentOK && recent.Games > 0 {
		expectedShots = float64(recent.Shots) / float64(recent.Games)
	}

	probGoal, probPoint, probMulti := poissonProbs(expectedGoals, expectedPoints)

	// Explanatory factors, in model order
	if recentOK && seasonOK {
		if recentPPG > 1.2*seasonPPG {
			pred.Factors = append(pred.Factors,
				fmt.Sprintf("Hot streak: %.2f PPG in last %d games", recentPPG, recentFormWindow))
		} else if recentPPG < 0.8*seasonPPG {
			pred.Factors = append(pred.Factors,
				fmt.Sprintf("Cold streak: %.2f PPG in last %d games", recentPPG, recentFormWindow))
		}
	}
	if h2hOK && seasonOK {
		if h2hPPG > 1.3*seasonPPG {
			pred.Factors = append(pred.Factors,
				fmt.Sprintf("Strong history vs %s: %.2f PPG in %d games", opponent, h2hPPG, h2h.Games))
		} else if h2hPPG < 0.7*seasonPPG {
			pred.Factors = append(pred.Factors,
				fmt.Sprintf("Struggles vs %s: %.2f PPG in %d games", opponent, h2hPPG, h2h.Games))
		}
	}
	if opposingGoalie.HasData {
		if svDiff > 0.01 {
			pred.Factors = append(pred.Factors,
				fmt.Sprintf("Favorable goalie matchup: %s (%.3f SV%%)", opposingGoalie.Name, savePct))
		} else if svDiff < -0.01 {
			pred.Factors = append(pred.Factors,
				fmt.Sprintf("Tough goalie matchup: %s (%.3f SV%%)", opposingGoalie.Name, savePct))
		}
	}
	if paceDiff > 0.5 {
		pred.Factors = append(pred.Factors,
			fmt.Sprintf("High-scoring game expected: %.1f total goals", expectedTotal))
	} else if paceDiff < -0.5 {
		pred.Factors = append(pred.Factors,
			fmt.Sprintf("Low-scoring game expected: %.1f total goals", expectedTotal))
	}
	if homeAwayAdj > 0.1 || homeAwayAdj < -0.1 {
		side := "away"
		if isHome {
			side = "home"
		}
		quality := "better"
		if homeAwayAdj < 0 {
			quality = "worse"
		}
		pred.Factors = append(pred.Factors,
			fmt.Sprintf("Plays %s %s: %+.2f PPG adjustment", quality, side, homeAwayAdj))
	}

	bothGoalies := mc.HomeGoalie.HasData && mc.AwayGoalie.HasData
	confidence := confidenceScore(gamesAnalyzed, bothGoalies)
	tier := confidenceTier(confidence)
	if tier == "low" {
		pred.Factors = append(pred.Factors, "Limited data - prediction less reliable")
	}

	pred.ProbGoal = round3(probGoal)
	pred.ProbPoint = round3(probPoint)
	pred.ProbMultiPoint = round3(probMulti)
	pred.ExpectedGoals = round2(expectedGoals)
	pred.ExpectedAssists = round2(expectedAssists)
	pred.ExpectedPoints = round2(expectedPoints)
	pred.ExpectedShots = round2(expectedShots)
	pred.Confidence = round2(confidence)
	pred.ConfidenceTier = tier
	pred.GamesAnalyzed = gamesAnalyzed

	return pred, nil
}

// homeAwayAdjustment measures how far a player's production on the
// requested side sits from their overall split. Requires history on both
// sides; otherwise the term is zero.
func (e *Engine) homeAwayAdjustment(ctx context.Context, playerID int, isHome bool) float64 {
	splits, err := e.logs.HomeAwaySplits(ctx, playerID)
	if err != nil {
		e.logger.Debug("home/away splits unavailable", "player", playerID, "error", err)
		return 0
	}

	home, hasHome := splits["home"]
	away, hasAway := splits["away"]
	if !hasHome || !hasAway || home.Games == 0 || away.Games == 0 {
		return 0
	}

	homePPG := float64(home.Points) / float64(home.Games)
	awayPPG := float64(away.Points) / float64(away.Games)
	mean := (homePPG + awayPPG) / 2

	if isHome {
		return round2(homePPG - mean)
	}
	return round2(awayPPG - mean)
}

// PredictMatchup predicts the top players on each side of a game and the
// merged top scorers. Unknown teams yield empty player lists.
func (e *Engine) PredictMatchup(ctx context.Context, homeTeam, awayTeam string, gameDate time.Time, topN int) (*MatchupPrediction, error) {
	season, err := e.stats.MostRecentSeason(ctx)
	if err != nil {
		season = ""
	}

	mc := e.BuildMatchupContext(ctx, homeTeam, awayTeam, season)

	mp := &MatchupPrediction{
		HomeTeam:           homeTeam,
		AwayTeam:           awayTeam,
		GameDate:           gameDate.Format("2006-01-02"),
		HomePlayers:        []*PlayerPrediction{},
		AwayPlayers:        []*PlayerPrediction{},
		TopScorers:         []*PlayerPrediction{},
		ExpectedTotalGoals: mc.ExpectedTotalGoals,
		PaceRating:         paceRating(mc.ExpectedTotalGoals),
	}

	mp.HomePlayers = e.predictSide(ctx, homeTeam, awayTeam, season, true, gameDate, topN, mc)
	mp.AwayPlayers = e.predictSide(ctx, awayTeam, homeTeam, season, false, gameDate, topN, mc)

	merged := make([]*PlayerPrediction, 0, len(mp.HomePlayers)+len(mp.AwayPlayers))
	merged = append(merged, mp.HomePlayers...)
	merged = append(merged, mp.AwayPlayers...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].ProbGoal > merged[j].ProbGoal
	})
	if len(merged) > 5 {
		merged = merged[:5]
	}
	mp.TopScorers = merged

	return mp, nil
}

func (e *Engine) predictSide(ctx context.Context, team, opponent, season string, isHome bool, gameDate time.Time, topN int, mc *MatchupContext) []*PlayerPrediction {
	preds := []*PlayerPrediction{}
	if season == "" {
		return preds
	}

	stats, err := e.stats.TopBySeasonPoints(ctx, team, season, topN)
	if err != nil {
		e.logger.Warn("roster lookup failed", "team", team, "error", err)
		return preds
	}

	for _, stat := range stats {
		player, err := e.players.GetByID(ctx, stat.PlayerID)
		if err != nil {
			continue
		}
		pred, err := e.PredictPlayer(ctx, player, opponent, isHome, gameDate, mc)
		if err != nil {
			e.logger.Warn("prediction failed", "player", player.Name, "error", err)
			continue
		}
		preds = append(preds, pred)
	}

	return preds
}
