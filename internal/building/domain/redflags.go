package domain

import "fmt"

// Severity of a red flag.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// RedFlag is a notable risk surfaced at the top of a report.
type RedFlag struct {
	Severity    Severity `json:"severity"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
}

// FlagInputs are the facts the red-flag rules look at.
type FlagInputs struct {
	OpenClassC      int
	AEP             bool
	HeatComplaints  int
	Bedbugs         int
	InFloodZone     bool
	FloodZoneType   string
	InHurricaneZone bool
	HurricaneZone   string
}

type flagRule struct {
	applies func(FlagInputs) bool
	build   func(FlagInputs) RedFlag
}

var flagRules = []flagRule{
	{
		applies: func(in FlagInputs) bool { return in.OpenClassC > 0 },
		build: func(in FlagInputs) RedFlag {
			return RedFlag{SeverityCritical, fmt.Sprintf("%d Class C Violations", in.OpenClassC), "Immediately hazardous conditions."}
		},
	},
	{
		applies: func(in FlagInputs) bool { return in.AEP },
		build: func(FlagInputs) RedFlag {
			return RedFlag{SeverityCritical, "Alternative Enforcement Program", "HPD worst buildings list."}
		},
	},
	{
		applies: func(in FlagInputs) bool { return in.HeatComplaints >= 5 },
		build: func(in FlagInputs) RedFlag {
			return RedFlag{SeverityCritical, fmt.Sprintf("%d Heat Complaints", in.HeatComplaints), "Chronic heat/hot water issues."}
		},
	},
	{
		applies: func(in FlagInputs) bool { return in.Bedbugs >= 2 },
		build: func(in FlagInputs) RedFlag {
			return RedFlag{SeverityCritical, fmt.Sprintf("%d Bedbug Reports", in.Bedbugs), "Multiple bedbug filings."}
		},
	},
	{
		applies: func(in FlagInputs) bool { return in.InFloodZone },
		build: func(in FlagInputs) RedFlag {
			return RedFlag{SeverityWarning, withSuffix("Flood Zone", in.FloodZoneType), "FEMA flood risk area."}
		},
	},
	{
		applies: func(in FlagInputs) bool { return in.InHurricaneZone },
		build: func(in FlagInputs) RedFlag {
			return RedFlag{SeverityInfo, withSuffix("Hurricane Zone", in.HurricaneZone), "Evacuation zone during hurricanes."}
		},
	},
}

// RedFlags evaluates every rule in order.
func RedFlags(in FlagInputs) []RedFlag {
	out := make([]RedFlag, 0, len(flagRules))
	for _, r := range flagRules {
		if r.applies(in) {
			out = append(out, r.build(in))
		}
	}
	return out
}

func withSuffix(title, suffix string) string {
	if suffix == "" {
		return title
	}
	return title + " " + suffix
}
