package nhl

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/halverson/puckcast/internal/store"
	"github.com/halverson/puckcast/internal/store/repository"
)

// AllTeamCodes lists the 32 active franchise codes
var AllTeamCodes = []string{
	"ANA", "BOS", "BUF", "CGY", "CAR", "CHI", "COL", "CBJ",
	"DAL", "DET", "EDM", "FLA", "LAK", "MIN", "MTL", "NSH",
	"NJD", "NYI", "NYR", "OTT", "PHI", "PIT", "SJS", "SEA",
	"STL", "TBL", "TOR", "UTA", "VAN", "VGK", "WSH", "WPG",
}

// teamNameToAbbrev maps stats API full names to franchise codes
var teamNameToAbbrev = map[string]string{
	"New Jersey Devils": "NJD", "New York Islanders": "NYI", "New York Rangers": "NYR",
	"Philadelphia Flyers": "PHI", "Pittsburgh Penguins": "PIT", "Boston Bruins": "BOS",
	"Buffalo Sabres": "BUF", "Montréal Canadiens": "MTL", "Montreal Canadiens": "MTL",
	"Ottawa Senators": "OTT", "Toronto Maple Leafs": "TOR", "Carolina Hurricanes": "CAR",
	"Florida Panthers": "FLA", "Tampa Bay Lightning": "TBL", "Washington Capitals": "WSH",
	"Chicago Blackhawks": "CHI", "Detroit Red Wings": "DET", "Nashville Predators": "NSH",
	"St. Louis Blues": "STL", "Calgary Flames": "CGY", "Colorado Avalanche": "COL",
	"Edmonton Oilers": "EDM", "Vancouver Canucks": "VAN", "Anaheim Ducks": "ANA",
	"Dallas Stars": "DAL", "Los Angeles Kings": "LAK", "San Jose Sharks": "SJS",
	"Columbus Blue Jackets": "CBJ", "Minnesota Wild": "MIN", "Winnipeg Jets": "WPG",
	"Arizona Coyotes": "ARI", "Vegas Golden Knights": "VGK", "Seattle Kraken": "SEA",
	"Utah Hockey Club": "UTA", "Utah Mammoth": "UTA",
}

const (
	gameLogFetchDelay  = 200 * time.Millisecond
	scheduleFetchDelay = 300 * time.Millisecond
	rosterFetchDelay   = 300 * time.Millisecond
	regularSeasonType  = 2
)

// Ingester writes league API data through the store gateway
type Ingester struct {
	client    *Client
	players   *repository.PlayerRepository
	teams     *repository.TeamRepository
	games     *repository.GameRepository
	logs      *repository.GameLogRepository
	goalies   *repository.GoalieRepository
	teamStats *repository.TeamStatRepository
	logger    *log.Logger
}

// NewIngester creates a league data ingester
func NewIngester(client *Client, db *store.Database) *Ingester {
	return &Ingester{
		client:    client,
		players:   repository.NewPlayerRepository(db),
		teams:     repository.NewTeamRepository(db),
		games:     repository.NewGameRepository(db),
		logs:      repository.NewGameLogRepository(db),
		goalies:   repository.NewGoalieRepository(db),
		teamStats: repository.NewTeamStatRepository(db),
		logger:    log.WithPrefix("nhl"),
	}
}

// IngestScheduleDate fetches the schedule week containing a date and upserts
// every game returned.
func (ing *Ingester) IngestScheduleDate(ctx context.Context, date time.Time) (int, error) {
	sched, err := ing.client.Schedule(ctx, date.Format("2006-01-02"))
	if err != nil {
		return 0, err
	}

	count := 0
	for _, day := range sched.GameWeek {
		for _, g := range day.Games {
			game, err := ProjectScheduleGame(day.Date, g)
			if err != nil {
				ing.logger.Warn("skipping unparseable game", "game", g.ID, "error", err)
				continue
			}
			if err := ing.games.Upsert(ctx, game); err != nil {
				return count, err
			}
			count++
		}
	}

	return count, nil
}

// IngestScheduleRange refreshes the schedule over [start, end]. The source
// returns a week per call, so the cursor advances 7 days.
func (ing *Ingester) IngestScheduleRange(ctx context.Context, start, end time.Time) (int, error) {
	total := 0
	for cursor := start; !cursor.After(end); cursor = cursor.AddDate(0, 0, 7) {
		n, err := ing.IngestScheduleDate(ctx, cursor)
		if err != nil {
			ing.logger.Warn("schedule fetch failed", "date", cursor.Format("2006-01-02"), "error", err)
		} else {
			total += n
		}
		time.Sleep(scheduleFetchDelay)
	}

	ing.logger.Info("schedule refreshed",
		"start", start.Format("2006-01-02"), "end", end.Format("2006-01-02"), "games", total)
	return total, nil
}

// IngestPlayerLogs re-ingests a player's full season game log
func (ing *Ingester) IngestPlayerLogs(ctx context.Context, nhlPlayerID int, seasonCode string) (int, error) {
	player, err := ing.players.GetByNHLID(ctx, nhlPlayerID)
	if err != nil {
		return 0, err
	}

	entries := ing.client.PlayerGameLog(ctx, nhlPlayerID, seasonCode, regularSeasonType)
	count := 0
	for _, e := range entries {
		gl, err := ProjectGameLog(player.ID, seasonCode, e)
		if err != nil {
			continue
		}
		if err := ing.logs.Upsert(ctx, gl); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}

// IngestActivePlayerLogs refreshes the season game log of every player with
// a season-stat row. Per-player fetches run serially with a short delay.
func (ing *Ingester) IngestActivePlayerLogs(ctx context.Context, seasonCode string) (int, int, error) {
	ids, err := ing.players.ActiveNHLIDs(ctx, seasonCode)
	if err != nil {
		return 0, 0, err
	}

	playersDone, logsDone := 0, 0
	for _, id := range ids {
		n, err := ing.IngestPlayerLogs(ctx, id, seasonCode)
		if err != nil {
			ing.logger.Warn("game log ingest failed", "player", id, "error", err)
		} else {
			playersDone++
			logsDone += n
		}
		time.Sleep(gameLogFetchDelay)
	}

	ing.logger.Info("game logs refreshed", "season", seasonCode, "players", playersDone, "logs", logsDone)
	return playersDone, logsDone, nil
}

// RosterSyncStats summarizes a roster sync pass
type RosterSyncStats struct {
	TeamsProcessed  int      `json:"teams_processed"`
	PlayersUpdated  int      `json:"players_updated"`
	PlayersNotFound int      `json:"players_not_found"`
	Errors          []string `json:"errors,omitempty"`
}

// SyncRosters updates player team assignments and bio data from current
// rosters. Players traded mid-season move to their new team here.
func (ing *Ingester) SyncRosters(ctx context.Context, seasonCode string) (*RosterSyncStats, error) {
	stats := &RosterSyncStats{}

	for _, team := range AllTeamCodes {
		roster, err := ing.client.Roster(ctx, team, seasonCode)
		if err != nil {
			ing.logger.Warn("roster fetch failed", "team", team, "error", err)
			stats.Errors = append(stats.Errors, fmt.Sprintf("%s: %v", team, err))
			continue
		}

		for _, rp := range FlattenRoster(roster) {
			var birthDate sql.NullTime
			if d, err := time.Parse("2006-01-02", rp.BirthDate); err == nil {
				birthDate = sql.NullTime{Time: d, Valid: true}
			}

			updated, err := ing.players.UpdateRosterAssignment(ctx, rp.NHLID, team, rp.Name, rp.Position, birthDate)
			if err != nil {
				return stats, err
			}
			if updated {
				stats.PlayersUpdated++
			} else {
				stats.PlayersNotFound++
			}
		}

		stats.TeamsProcessed++
		time.Sleep(rosterFetchDelay)
	}

	ing.logger.Info("rosters synced",
		"teams", stats.TeamsProcessed, "updated", stats.PlayersUpdated, "missing", stats.PlayersNotFound)
	return stats, nil
}

// IngestTeams upserts every franchise from the current standings
func (ing *Ingester) IngestTeams(ctx context.Context) (int, error) {
	standings, err := ing.client.Standings(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, entry := range standings.Standings {
		abbrev := entry.TeamAbbrev.Default
		if abbrev == "" {
			continue
		}

		team := &store.Team{
			NHLID:  sql.NullInt32{Int32: int32(teamChecksum(abbrev)), Valid: true},
			Name:   entry.TeamName.Default,
			Abbrev: abbrev,
		}
		if entry.ConferenceName != "" {
			team.Conference = sql.NullString{String: entry.ConferenceName, Valid: true}
		}
		if entry.DivisionName != "" {
			team.Division = sql.NullString{String: entry.DivisionName, Valid: true}
		}

		if err := ing.teams.Upsert(ctx, team); err != nil {
			return count, err
		}
		count++
	}

	ing.logger.Info("teams ingested", "count", count)
	return count, nil
}

// IngestGoalieStats upserts every goalie's season summary, inserting player
// rows for goalies the store has not seen.
func (ing *Ingester) IngestGoalieStats(ctx context.Context, seasonCode string) (int, error) {
	rows, err := ing.client.GoalieSummary(ctx, seasonCode)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, g := range rows {
		if g.PlayerID == 0 {
			continue
		}

		team := FirstTeamAbbrev(g.TeamAbbrevs)
		player := &store.Player{
			NHLID:      g.PlayerID,
			Name:       g.GoalieFullName,
			Position:   sql.NullString{String: "G", Valid: true},
			TeamAbbrev: sql.NullString{String: team, Valid: team != ""},
		}
		if err := ing.players.Upsert(ctx, player); err != nil {
			return count, err
		}

		stat := &store.GoalieStat{
			PlayerID:     player.ID,
			Season:       seasonCode,
			TeamAbbrev:   sql.NullString{String: team, Valid: team != ""},
			GamesPlayed:  g.GamesPlayed,
			GamesStarted: g.GamesStarted,
			Wins:         g.Wins,
			Losses:       g.Losses,
			OTLosses:     g.OTLosses,
			Shutouts:     g.Shutouts,
			SavePct:      sql.NullFloat64{Float64: g.SavePct, Valid: g.SavePct > 0},
			GAA:          sql.NullFloat64{Float64: g.GoalsAgainstAverage, Valid: g.GoalsAgainstAverage > 0},
			ShotsAgainst: g.ShotsAgainst,
			Saves:        g.Saves,
			TimeOnIce:    sql.NullFloat64{Float64: g.TimeOnIce, Valid: g.TimeOnIce > 0},
		}
		if err := ing.goalies.Upsert(ctx, stat); err != nil {
			return count, err
		}
		count++
	}

	ing.logger.Info("goalie stats ingested", "season", seasonCode, "count", count)
	return count, nil
}

// IngestTeamStats upserts every team's season summary including the derived
// total goals per game.
func (ing *Ingester) IngestTeamStats(ctx context.Context, seasonCode string) (int, error) {
	rows, err := ing.client.TeamSummary(ctx, seasonCode)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, t := range rows {
		abbrev, ok := teamNameToAbbrev[t.TeamFullName]
		if !ok {
			ing.logger.Warn("unknown team in summary", "name", t.TeamFullName)
			continue
		}

		totalGPG := 0.0
		if t.GamesPlayed > 0 {
			totalGPG = t.GoalsForPerGame + t.GoalsAgainstPerGame
		}

		stat := &store.TeamSeasonStat{
			TeamAbbrev:          abbrev,
			Season:              seasonCode,
			GamesPlayed:         t.GamesPlayed,
			Wins:                t.Wins,
			Losses:              t.Losses,
			OTLosses:            t.OTLosses,
			GoalsForPerGame:     sql.NullFloat64{Float64: t.GoalsForPerGame, Valid: true},
			GoalsAgainstPerGame: sql.NullFloat64{Float64: t.GoalsAgainstPerGame, Valid: true},
			ShotsForPerGame:     sql.NullFloat64{Float64: t.ShotsForPerGame, Valid: true},
			ShotsAgainstPerGame: sql.NullFloat64{Float64: t.ShotsAgainstPerGame, Valid: true},
			PowerplayPct:        sql.NullFloat64{Float64: t.PowerPlayPct, Valid: true},
			PenaltyKillPct:      sql.NullFloat64{Float64: t.PenaltyKillPct, Valid: true},
			TotalGoalsPerGame:   sql.NullFloat64{Float64: totalGPG, Valid: true},
		}
		if err := ing.teamStats.Upsert(ctx, stat); err != nil {
			return count, err
		}
		count++
	}

	ing.logger.Info("team stats ingested", "season", seasonCode, "count", count)
	return count, nil
}

// RefreshScores finalizes scores for games on a date that have started but
// are not yet marked completed, using the boxscore feed.
func (ing *Ingester) RefreshScores(ctx context.Context, date time.Time) (int, error) {
	games, err := ing.games.GetByDate(ctx, date)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, game := range games {
		if game.IsCompleted {
			continue
		}
		if game.StartTimeUTC.Valid && game.StartTimeUTC.Time.After(time.Now()) {
			continue
		}

		box, err := ing.client.Boxscore(ctx, game.NHLGameID)
		if err != nil {
			ing.logger.Warn("boxscore fetch failed", "game", game.NHLGameID, "error", err)
			continue
		}

		game.GameState = box.GameState
		game.IsCompleted = IsCompleted(box.GameState)
		if box.HomeTeam.Score != nil {
			game.HomeScore = sql.NullInt32{Int32: int32(*box.HomeTeam.Score), Valid: true}
		}
		if box.AwayTeam.Score != nil {
			game.AwayScore = sql.NullInt32{Int32: int32(*box.AwayTeam.Score), Valid: true}
		}

		if err := ing.games.Upsert(ctx, game); err != nil {
			return updated, err
		}
		updated++
	}

	return updated, nil
}

// teamChecksum derives a small stable numeric id from a team code. The code
// itself is the identity; this satisfies callers wanting a numeric handle.
func teamChecksum(abbrev string) int {
	sum := 0
	for i, ch := range abbrev {
		sum += (i + 1) * int(ch)
	}
	return sum % 100
}
