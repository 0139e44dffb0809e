package domain

import (
	"fmt"
	"math"
)

// ScoreInputs are the risk counts the health score is derived from.
type ScoreInputs struct {
	OpenClassC      int
	OpenClassB      int
	OpenClassA      int
	OpenHPD         int
	OpenDOB         int
	OpenECB         int
	HeatComplaints  int
	OpenLitigations int
	Evictions3Y     int
	RodentFails     int
	Bedbugs         int
}

type penalty struct {
	count func(ScoreInputs) int
	per   int
	cap   int
}

var penalties = []penalty{
	{func(in ScoreInputs) int { return in.OpenClassC }, 15, 45},
	{func(in ScoreInputs) int { return in.OpenClassB }, 5, 25},
	{func(in ScoreInputs) int { return in.OpenClassA }, 1, 10},
	{func(in ScoreInputs) int { return in.OpenHPD }, 1, 10},
	{func(in ScoreInputs) int { return in.OpenDOB }, 3, 15},
	{func(in ScoreInputs) int { return in.OpenECB }, 2, 10},
	{func(in ScoreInputs) int { return in.HeatComplaints }, 4, 16},
	{func(in ScoreInputs) int { return in.OpenLitigations }, 6, 18},
	{func(in ScoreInputs) int { return in.Evictions3Y }, 4, 12},
	{func(in ScoreInputs) int { return in.RodentFails }, 3, 9},
	{func(in ScoreInputs) int { return in.Bedbugs }, 5, 15},
}

// ComputeScore returns 100 minus the capped penalties, clamped to [0,100].
// Negative counts are treated as zero.
func ComputeScore(in ScoreInputs) int {
	score := 100
	for _, p := range penalties {
		score -= min(max(p.count(in), 0)*p.per, p.cap)
	}
	return clamp(score, 0, 100)
}

// Grade maps a score to a letter.
func Grade(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 55:
		return "D"
	default:
		return "F"
	}
}

// Label maps a score to its description, on the same thresholds as Grade.
func Label(score int) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 80:
		return "Good"
	case score >= 70:
		return "Fair"
	case score >= 55:
		return "Poor"
	default:
		return "Critical"
	}
}

// CrimeScore is 100 - 25*log10(total+1) - 3*violent, rounded, floored at 0.
func CrimeScore(total, violent int) int {
	total = max(total, 0)
	violent = max(violent, 0)
	raw := 100 - math.Log10(float64(total)+1)*25 - float64(violent)*3
	return max(0, int(math.Round(raw)))
}

// CrimeLevel buckets a crime score.
func CrimeLevel(score int) string {
	switch {
	case score >= 70:
		return "LOW"
	case score >= 50:
		return "MODERATE"
	case score >= 30:
		return "HIGH"
	default:
		return "VERY HIGH"
	}
}

// CategoryScore is one display sub-score.
type CategoryScore struct {
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Detail string `json:"detail"`
}

// CategoryScores computes the per-category display scores. They use their
// own linear weights and are not derived from ComputeScore.
func CategoryScores(in ScoreInputs, crimeScore, crimeIncidents int) []CategoryScore {
	floor := func(v int) int { return max(0, v) }
	return []CategoryScore{
		{
			Name:   "Heat Reliability",
			Score:  floor(100 - in.HeatComplaints*12),
			Detail: fmt.Sprintf("%d heat complaints/yr", in.HeatComplaints),
		},
		{
			Name:   "Pest Control",
			Score:  floor(100 - in.RodentFails*10 - in.Bedbugs*15),
			Detail: fmt.Sprintf("%d rodent fails, %d bedbugs", in.RodentFails, in.Bedbugs),
		},
		{
			Name:   "Maintenance",
			Score:  floor(100 - in.OpenHPD*3 - in.OpenDOB*4),
			Detail: fmt.Sprintf("%d open violations", in.OpenHPD+in.OpenDOB),
		},
		{
			Name:   "Safety",
			Score:  floor(100 - in.OpenClassC*20),
			Detail: fmt.Sprintf("%d Class C violations", in.OpenClassC),
		},
		{
			Name:   "Landlord",
			Score:  floor(100 - in.OpenLitigations*15),
			Detail: fmt.Sprintf("%d legal cases", in.OpenLitigations),
		},
		{
			Name:   "Stability",
			Score:  floor(100 - in.Evictions3Y*12),
			Detail: fmt.Sprintf("%d evictions (3yr)", in.Evictions3Y),
		},
		{
			Name:   "Crime",
			Score:  crimeScore,
			Detail: fmt.Sprintf("%d incidents nearby", crimeIncidents),
		},
	}
}

// NeighborhoodScore blends the crime score with flood and hurricane
// exposure.
func NeighborhoodScore(crimeScore int, inFloodZone, inHurricaneZone bool) int {
	flood, hurricane := 50.0, 50.0
	if inFloodZone {
		flood = 25
	}
	if inHurricaneZone {
		hurricane = 25
	}
	return int(math.Round(float64(crimeScore)*0.5 + flood + hurricane))
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
