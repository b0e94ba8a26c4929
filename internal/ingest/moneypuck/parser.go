package moneypuck

import (
	"bytes"
	"fmt"
	"math"

	"github.com/gocarina/gocsv"
)

// skaterRow maps the CSV columns the projection consumes. The feed carries
// many more columns; gocsv ignores them.
type skaterRow struct {
	PlayerID         int     `csv:"playerId"`
	Name             string  `csv:"name"`
	Team             string  `csv:"team"`
	Situation        string  `csv:"situation"`
	GamesPlayed      int     `csv:"games_played"`
	IceTime          float64 `csv:"icetime"`
	Goals            float64 `csv:"I_F_goals"`
	PrimaryAssists   float64 `csv:"I_F_primaryAssists"`
	SecondaryAssists float64 `csv:"I_F_secondaryAssists"`
	Points           float64 `csv:"I_F_points"`
	Shots            float64 `csv:"I_F_shotsOnGoal"`
	XGoals           float64 `csv:"I_F_xGoals"`
	CorsiPct         float64 `csv:"onIce_corsiPercentage"`
	FenwickPct       float64 `csv:"onIce_fenwickPercentage"`
}

// SkaterSeason is a projected all-situations season line for one skater
type SkaterSeason struct {
	NHLPlayerID   int
	Name          string
	Team          string
	GamesPlayed   int
	Goals         int
	Assists       int
	Points        int
	Shots         int
	TOIPerGame    float64
	XG            float64
	XGPer60       float64
	CorsiForPct   float64
	FenwickForPct float64
}

// ParseSkaters projects the CSV to season records, keeping only the
// "all" situation rows.
func ParseSkaters(data []byte) ([]SkaterSeason, error) {
	var rows []*skaterRow
	if err := gocsv.Unmarshal(bytes.NewReader(data), &rows); err != nil {
		return nil, fmt.Errorf("parsing skaters csv: %w", err)
	}

	var seasons []SkaterSeason
	for _, row := range rows {
		if row.Situation != "all" || row.PlayerID == 0 {
			continue
		}
		seasons = append(seasons, projectRow(row))
	}

	return seasons, nil
}

// projectRow normalizes one CSV row. Two historical ice-time encodings
// exist: season totals over 5000 are seconds, smaller values are minutes.
// Corsi and Fenwick arrive as either 0-1 decimals or 0-100 percentages.
func projectRow(row *skaterRow) SkaterSeason {
	toiPerGame := 0.0
	xgPer60 := 0.0

	if row.GamesPlayed > 0 && row.IceTime > 0 {
		if row.IceTime > 5000 {
			toiPerGame = row.IceTime / float64(row.GamesPlayed) / 60
			xgPer60 = row.XGoals / (row.IceTime / 3600)
		} else {
			toiPerGame = row.IceTime / float64(row.GamesPlayed)
			xgPer60 = row.XGoals / (row.IceTime / 60)
		}
	}

	corsi := row.CorsiPct
	if corsi <= 1 {
		corsi *= 100
	}
	fenwick := row.FenwickPct
	if fenwick <= 1 {
		fenwick *= 100
	}

	return SkaterSeason{
		NHLPlayerID:   row.PlayerID,
		Name:          row.Name,
		Team:          row.Team,
		GamesPlayed:   row.GamesPlayed,
		Goals:         int(math.Round(row.Goals)),
		Assists:       int(math.Round(row.PrimaryAssists + row.SecondaryAssists)),
		Points:        int(math.Round(row.Points)),
		Shots:         int(math.Round(row.Shots)),
		TOIPerGame:    round2(toiPerGame),
		XG:            round2(row.XGoals),
		XGPer60:       round2(xgPer60),
		CorsiForPct:   round2(corsi),
		FenwickForPct: round2(fenwick),
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
