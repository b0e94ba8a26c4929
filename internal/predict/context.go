package predict

import (
	"context"
)

// GoalieOutlook summarizes a team's presumed starter for the matchup
type GoalieOutlook struct {
	Name         string  `json:"name,omitempty"`
	SavePct      float64 `json:"save_pct,omitempty"`
	GAA          float64 `json:"gaa,omitempty"`
	GamesStarted int     `json:"games_started,omitempty"`
	HasData      bool    `json:"has_data"`
}

// TeamPace summarizes a team's scoring environment
type TeamPace struct {
	GoalsForPerGame     float64 `json:"goals_for_per_game,omitempty"`
	GoalsAgainstPerGame float64 `json:"goals_against_per_game,omitempty"`
	TotalGoalsPerGame   float64 `json:"total_goals_per_game,omitempty"`
	HasData             bool    `json:"has_data"`
}

// MatchupContext carries the pace and goalie inputs to the adjustment
// terms of the model.
type MatchupContext struct {
	HomeTeam           string        `json:"home_team"`
	AwayTeam           string        `json:"away_team"`
	Season             string        `json:"season"`
	HomePace           TeamPace      `json:"home_pace"`
	AwayPace           TeamPace      `json:"away_pace"`
	HomeGoalie         GoalieOutlook `json:"home_goalie"`
	AwayGoalie         GoalieOutlook `json:"away_goalie"`
	ExpectedTotalGoals float64       `json:"expected_total_goals"`
	HomeExpectedGoals  float64       `json:"home_expected_goals"`
	AwayExpectedGoals  float64       `json:"away_expected_goals"`
}

// BuildMatchupContext assembles pace and goalie data for a game. Missing
// data degrades to league-average defaults rather than failing; the model
// still produces predictions for teams the store barely knows.
func (e *Engine) BuildMatchupContext(ctx context.Context, homeTeam, awayTeam, season string) *MatchupContext {
	mc := &MatchupContext{
		HomeTeam: homeTeam,
		AwayTeam: awayTeam,
		Season:   season,
	}

	mc.HomePace = e.teamPace(ctx, homeTeam, season)
	mc.AwayPace = e.teamPace(ctx, awayTeam, season)
	mc.HomeGoalie = e.goalieOutlook(ctx, homeTeam, season)
	mc.AwayGoalie = e.goalieOutlook(ctx, awayTeam, season)

	if mc.HomePace.HasData && mc.AwayPace.HasData {
		mc.ExpectedTotalGoals = round2((mc.HomePace.TotalGoalsPerGame + mc.AwayPace.TotalGoalsPerGame) / 2)
		mc.HomeExpectedGoals = round2((mc.HomePace.GoalsForPerGame + mc.AwayPace.GoalsAgainstPerGame) / 2)
		mc.AwayExpectedGoals = round2((mc.AwayPace.GoalsForPerGame + mc.HomePace.GoalsAgainstPerGame) / 2)
	} else {
		mc.ExpectedTotalGoals = defaultExpectedTotal
		mc.HomeExpectedGoals = defaultExpectedTotal / 2
		mc.AwayExpectedGoals = defaultExpectedTotal / 2
	}

	return mc
}

func (e *Engine) teamPace(ctx context.Context, teamAbbrev, season string) TeamPace {
	stat, err := e.teamStats.GetForTeam(ctx, teamAbbrev, season)
	if err != nil {
		e.logger.Debug("no pace data", "team", teamAbbrev, "season", season)
		return TeamPace{}
	}

	return TeamPace{
		GoalsForPerGame:     stat.GoalsForPerGame.Float64,
		GoalsAgainstPerGame: stat.GoalsAgainstPerGame.Float64,
		TotalGoalsPerGame:   stat.TotalGoalsPerGame.Float64,
		HasData:             true,
	}
}

func (e *Engine) goalieOutlook(ctx context.Context, teamAbbrev, season string) GoalieOutlook {
	stat, err := e.goalies.StarterForTeam(ctx, teamAbbrev, season)
	if err != nil {
		e.logger.Debug("no goalie data", "team", teamAbbrev, "season", season)
		return GoalieOutlook{}
	}

	outlook := GoalieOutlook{
		Name:         stat.PlayerName,
		SavePct:      0.900,
		GAA:          3.0,
		GamesStarted: stat.GamesStarted,
		HasData:      true,
	}
	if stat.SavePct.Valid {
		outlook.SavePct = stat.SavePct.Float64
	}
	if stat.GAA.Valid {
		outlook.GAA = stat.GAA.Float64
	}
	return outlook
}
