package predict

import (
	"math"
	"testing"
)

func approx(got, want, tol float64) bool {
	return math.Abs(got-want) <= tol
}

func TestBlendBaseRenormalizes(t *testing.T) {
	// with the h2h component gated out, recent and season weights
	// renormalize over 0.55
	got := blendBase([]component{
		{value: 1.0, weight: weightRecentForm},
		{value: 2.0, weight: weightSeasonBaseline},
	})
	want := (1.0*0.30 + 2.0*0.25) / 0.55
	if !approx(got, want, 1e-9) {
		t.Errorf("blend = %v, want %v", got, want)
	}
}

func TestBlendBaseSingleComponent(t *testing.T) {
	got := blendBase([]component{{value: 1.5, weight: weightH2HHistory}})
	if !approx(got, 1.5, 1e-9) {
		t.Errorf("single component should pass through, got %v", got)
	}
}

func TestBlendBaseEmpty(t *testing.T) {
	if got := blendBase(nil); got != 0 {
		t.Errorf("no components should blend to 0, got %v", got)
	}
}

func TestPoissonProbs(t *testing.T) {
	pg, pp, pm := poissonProbs(0.5, 1.0)
	if !approx(pg, 1-math.Exp(-0.5), 1e-9) {
		t.Errorf("probGoal = %v", pg)
	}
	if !approx(pp, 1-math.Exp(-1), 1e-9) {
		t.Errorf("probPoint = %v", pp)
	}
	if !approx(pm, 1-2*math.Exp(-1), 1e-9) {
		t.Errorf("probMulti = %v", pm)
	}
	if pm >= pp || pp >= 1 {
		t.Error("multi-point must stay below point probability")
	}
}

func TestPoissonProbsFloors(t *testing.T) {
	pg, pp, pm := poissonProbs(0, 0)
	if pg != 0.05 || pp != 0.10 || pm != 0.02 {
		t.Errorf("floors = %v/%v/%v, want 0.05/0.10/0.02", pg, pp, pm)
	}
}

func TestConfidenceScore(t *testing.T) {
	if got := confidenceScore(42, false); !approx(got, 0.84, 1e-9) {
		t.Errorf("42 games = %v, want 0.84", got)
	}
	if got := confidenceScore(100, false); got != 1 {
		t.Errorf("score must saturate at 1, got %v", got)
	}
	if got := confidenceScore(20, true); !approx(got, 0.50, 1e-9) {
		t.Errorf("goalie bump = %v, want 0.50", got)
	}
	if got := confidenceScore(48, true); got != 1 {
		t.Errorf("bump must clamp at 1, got %v", got)
	}
}

func TestConfidenceTier(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.95, "high"},
		{0.70, "high"},
		{0.69, "medium"},
		{0.40, "medium"},
		{0.39, "low"},
		{0, "low"},
	}
	for _, tt := range tests {
		if got := confidenceTier(tt.score); got != tt.want {
			t.Errorf("confidenceTier(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestPaceRating(t *testing.T) {
	tests := []struct {
		total float64
		want  string
	}{
		{7.1, "high"},
		{6.5, "high"},
		{6.2, "average"},
		{5.5, "low"},
		{4.8, "low"},
	}
	for _, tt := range tests {
		if got := paceRating(tt.total); got != tt.want {
			t.Errorf("paceRating(%v) = %q, want %q", tt.total, got, tt.want)
		}
	}
}
