package moneypuck

import "testing"

func TestParseSkatersFiltersSituation(t *testing.T) {
	csv := "playerId,name,team,situation,games_played,icetime,I_F_goals,I_F_primaryAssists,I_F_secondaryAssists,I_F_points,I_F_shotsOnGoal,I_F_xGoals,onIce_corsiPercentage,onIce_fenwickPercentage\n" +
		"8479318,Auston Matthews,TOR,all,81,108000,69,20,18,107,350,55.2,0.58,0.57\n" +
		"8479318,Auston Matthews,TOR,5on5,81,90000,50,15,12,77,300,40.0,0.58,0.57\n" +
		"0,Ghost Row,TOR,all,10,600,1,0,0,1,10,0.5,0.5,0.5\n"

	seasons, err := ParseSkaters([]byte(csv))
	if err != nil {
		t.Fatalf("ParseSkaters: %v", err)
	}
	if len(seasons) != 1 {
		t.Fatalf("got %d seasons, want 1 (non-all and zero-ID rows dropped)", len(seasons))
	}

	s := seasons[0]
	if s.NHLPlayerID != 8479318 || s.Team != "TOR" {
		t.Errorf("identity = %d/%s", s.NHLPlayerID, s.Team)
	}
	if s.Goals != 69 || s.Assists != 38 || s.Points != 107 {
		t.Errorf("totals = %d G %d A %d P, want 69/38/107", s.Goals, s.Assists, s.Points)
	}
}

func TestProjectRowSecondsEncoding(t *testing.T) {
	// 108000 seconds over 81 games: large totals are seconds
	row := &skaterRow{
		PlayerID:    1,
		GamesPlayed: 81,
		IceTime:     108000,
		XGoals:      60,
		CorsiPct:    0.58,
		FenwickPct:  0.57,
	}

	s := projectRow(row)
	if s.TOIPerGame != 22.22 {
		t.Errorf("toi/game = %v, want 22.22", s.TOIPerGame)
	}
	// 60 xG over 30 hours of ice time
	if s.XGPer60 != 2.0 {
		t.Errorf("xg/60 = %v, want 2.0", s.XGPer60)
	}
	if s.CorsiForPct != 58.0 {
		t.Errorf("corsi = %v, want 58.0 (decimal scaled to percent)", s.CorsiForPct)
	}
	if s.FenwickForPct != 57.0 {
		t.Errorf("fenwick = %v, want 57.0", s.FenwickForPct)
	}
}

func TestProjectRowMinutesEncoding(t *testing.T) {
	// 1640 minutes over 82 games: small totals are minutes
	row := &skaterRow{
		PlayerID:    1,
		GamesPlayed: 82,
		IceTime:     1640,
		XGoals:      41,
		CorsiPct:    52.5,
	}

	s := projectRow(row)
	if s.TOIPerGame != 20.0 {
		t.Errorf("toi/game = %v, want 20.0", s.TOIPerGame)
	}
	// 41 xG over 1640 minutes is 1.5 per 60
	if s.XGPer60 != 1.5 {
		t.Errorf("xg/60 = %v, want 1.5", s.XGPer60)
	}
	if s.CorsiForPct != 52.5 {
		t.Errorf("percent input should pass through, got %v", s.CorsiForPct)
	}
}

func TestProjectRowZeroGames(t *testing.T) {
	s := projectRow(&skaterRow{PlayerID: 1, GamesPlayed: 0, IceTime: 6000})
	if s.TOIPerGame != 0 || s.XGPer60 != 0 {
		t.Errorf("zero games should yield zero rates, got %v/%v", s.TOIPerGame, s.XGPer60)
	}
}
