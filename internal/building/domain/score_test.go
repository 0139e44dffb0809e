package domain

import (
	"reflect"
	"testing"
)

func TestComputeScoreScenarios(t *testing.T) {
	if got := ComputeScore(ScoreInputs{}); got != 100 {
		t.Fatalf("expected 100 for clean building, got %d", got)
	}
	if Grade(100) != "A" || Label(100) != "Excellent" {
		t.Fatalf("unexpected grade/label for 100")
	}

	got := ComputeScore(ScoreInputs{OpenClassC: 2, OpenClassB: 1})
	if got != 65 {
		t.Fatalf("expected 65, got %d", got)
	}
	if Grade(got) != "D" || Label(got) != "Poor" {
		t.Fatalf("unexpected grade/label %s/%s", Grade(got), Label(got))
	}
}

func TestComputeScoreBoundsAndCaps(t *testing.T) {
	worst := ScoreInputs{
		OpenClassC: 1000, OpenClassB: 1000, OpenClassA: 1000, OpenHPD: 1000,
		OpenDOB: 1000, OpenECB: 1000, HeatComplaints: 1000, OpenLitigations: 1000,
		Evictions3Y: 1000, RodentFails: 1000, Bedbugs: 1000,
	}
	if got := ComputeScore(worst); got != 0 {
		t.Fatalf("expected floor at 0, got %d", got)
	}
	if got := ComputeScore(ScoreInputs{OpenClassC: 100}); got != 55 {
		t.Fatalf("expected class C cap of 45, got %d", got)
	}
	if got := ComputeScore(ScoreInputs{OpenClassC: -3}); got != 100 {
		t.Fatalf("expected negative counts ignored, got %d", got)
	}
}

func TestComputeScoreMonotonic(t *testing.T) {
	fields := reflect.TypeOf(ScoreInputs{}).NumField()
	base := ScoreInputs{OpenClassB: 1, OpenHPD: 2, HeatComplaints: 1}
	for f := 0; f < fields; f++ {
		prev := ComputeScore(base)
		for n := 0; n < 30; n++ {
			in := base
			v := reflect.ValueOf(&in).Elem().Field(f)
			v.SetInt(int64(n))
			got := ComputeScore(in)
			if got < 0 || got > 100 {
				t.Fatalf("score out of range: %d", got)
			}
			if n > 0 && got > prev {
				t.Fatalf("field %d: score rose from %d to %d at count %d", f, prev, got, n)
			}
			prev = got
		}
	}
}

func TestGradeBoundaries(t *testing.T) {
	tests := []struct {
		score        int
		grade, label string
	}{
		{90, "A", "Excellent"},
		{89, "B", "Good"},
		{80, "B", "Good"},
		{79, "C", "Fair"},
		{70, "C", "Fair"},
		{69, "D", "Poor"},
		{55, "D", "Poor"},
		{54, "F", "Critical"},
		{0, "F", "Critical"},
	}
	for _, tt := range tests {
		if Grade(tt.score) != tt.grade || Label(tt.score) != tt.label {
			t.Errorf("score %d: got %s/%s, want %s/%s", tt.score, Grade(tt.score), Label(tt.score), tt.grade, tt.label)
		}
	}
}

func TestCrimeScoreAndLevel(t *testing.T) {
	if got := CrimeScore(0, 0); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
	// 100 - 25*log10(100) - 3*5 = 35
	if got := CrimeScore(99, 5); got != 35 {
		t.Fatalf("expected 35, got %d", got)
	}
	if got := CrimeScore(500, 100); got != 0 {
		t.Fatalf("expected floor at 0, got %d", got)
	}
	levels := map[int]string{70: "LOW", 69: "MODERATE", 50: "MODERATE", 49: "HIGH", 30: "HIGH", 29: "VERY HIGH"}
	for score, want := range levels {
		if got := CrimeLevel(score); got != want {
			t.Errorf("CrimeLevel(%d) = %s, want %s", score, got, want)
		}
	}
}

func TestCategoryScoresDivergeFromOverall(t *testing.T) {
	in := ScoreInputs{OpenHPD: 10, OpenDOB: 5, HeatComplaints: 9, RodentFails: 2, Bedbugs: 1, OpenClassC: 6}
	got := CategoryScores(in, 42, 17)
	want := map[string]int{
		"Heat Reliability": 0,
		"Pest Control":     65,
		"Maintenance":      50,
		"Safety":           0,
		"Landlord":         100,
		"Stability":        100,
		"Crime":            42,
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(got))
	}
	for _, c := range got {
		if want[c.Name] != c.Score {
			t.Errorf("%s: got %d, want %d", c.Name, c.Score, want[c.Name])
		}
	}
	if got[6].Detail != "17 incidents nearby" {
		t.Fatalf("unexpected crime detail %q", got[6].Detail)
	}
}

func TestNeighborhoodScore(t *testing.T) {
	if got := NeighborhoodScore(100, false, false); got != 150 {
		t.Fatalf("expected 150, got %d", got)
	}
	if got := NeighborhoodScore(61, true, true); got != 81 {
		t.Fatalf("expected 81, got %d", got)
	}
}
