package domain

import "strings"

// Category labels produced by Categorize.
const (
	CategoryHeat       = "Heat/Hot Water"
	CategoryPests      = "Pests"
	CategoryLeadPaint  = "Lead Paint"
	CategoryMold       = "Mold"
	CategoryFireSafety = "Fire Safety"
	CategoryElectrical = "Electrical"
	CategoryPlumbing   = "Plumbing"
	CategorySecurity   = "Security"
	CategoryElevator   = "Elevator"
	CategoryGas        = "Gas"
	CategoryStructural = "Structural"
	CategorySanitation = "Sanitation"
	CategoryOther      = "Other"
)

// Rule maps any of its keywords to Label.
type Rule struct {
	Keywords []string
	Label    string
}

func (r Rule) matches(lower string) bool {
	for _, k := range r.Keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// CategoryRules is evaluated in order; the first matching rule wins.
var CategoryRules = []Rule{
	{Keywords: []string{"heat", "hot water", "boiler"}, Label: CategoryHeat},
	{Keywords: []string{"roach", "mice", "rat", "pest", "rodent", "bedbug"}, Label: CategoryPests},
	{Keywords: []string{"lead", "paint"}, Label: CategoryLeadPaint},
	{Keywords: []string{"mold", "mildew"}, Label: CategoryMold},
	{Keywords: []string{"fire", "smoke", "detector", "sprinkler"}, Label: CategoryFireSafety},
	{Keywords: []string{"electric", "outlet", "wiring"}, Label: CategoryElectrical},
	{Keywords: []string{"plumb", "leak", "water", "toilet", "sink"}, Label: CategoryPlumbing},
	{Keywords: []string{"lock", "door", "window", "security"}, Label: CategorySecurity},
	{Keywords: []string{"elevator"}, Label: CategoryElevator},
	{Keywords: []string{"gas"}, Label: CategoryGas},
	{Keywords: []string{"roof", "structural", "wall", "floor", "ceiling"}, Label: CategoryStructural},
	{Keywords: []string{"garbage", "trash", "sanitary"}, Label: CategorySanitation},
}

// Categorize maps a free-text description to a category label.
func Categorize(desc string) string {
	lower := strings.ToLower(desc)
	for _, rule := range CategoryRules {
		if rule.matches(lower) {
			return rule.Label
		}
	}
	return CategoryOther
}

// Signal is the coarse complaint classification.
type Signal string

const (
	SignalHeat  Signal = "heat"
	SignalPests Signal = "pests"
	SignalNoise Signal = "noise"
	SignalOther Signal = "other"
)

type signalRule struct {
	typeKeywords       []string
	descriptorKeywords []string
	signal             Signal
}

var sr311Rules = []signalRule{
	{typeKeywords: []string{"noise", "loud"}, descriptorKeywords: []string{"noise"}, signal: SignalNoise},
	{typeKeywords: []string{"heat", "hot water"}, descriptorKeywords: []string{"heat", "hot water"}, signal: SignalHeat},
	{
		typeKeywords:       []string{"rodent", "pest", "roaches", "rats"},
		descriptorKeywords: []string{"rodent", "roach", "mice", "rat", "bed bug"},
		signal:             SignalPests,
	},
}

// Classify311 classifies a 311 service request by complaint type and
// descriptor. Noise is checked first, then heat, then pests.
func Classify311(complaintType, descriptor string) Signal {
	t := strings.ToLower(complaintType)
	d := strings.ToLower(descriptor)
	for _, rule := range sr311Rules {
		if (Rule{Keywords: rule.typeKeywords}).matches(t) || (Rule{Keywords: rule.descriptorKeywords}).matches(d) {
			return rule.signal
		}
	}
	return SignalOther
}

var hpdComplaintRules = []struct {
	rule   Rule
	signal Signal
}{
	{heatComplaint, SignalHeat},
	{Rule{Keywords: []string{"rodent", "roach", "mice", "rat", "pest", "bedbug"}}, SignalPests},
}

// ClassifyHPDComplaint classifies an HPD complaint by its type, falling back
// to the major category when the type is empty.
func ClassifyHPDComplaint(complaintType, majorCategory string) Signal {
	t := complaintType
	if t == "" {
		t = majorCategory
	}
	t = strings.ToLower(t)
	for _, r := range hpdComplaintRules {
		if r.rule.matches(t) {
			return r.signal
		}
	}
	return SignalOther
}

var heatComplaint = Rule{Keywords: []string{"heat", "hot water"}}

// IsHeatComplaint reports whether an HPD complaint type (or its major
// category when the type is empty) mentions heat or hot water.
func IsHeatComplaint(text string) bool {
	return heatComplaint.matches(strings.ToLower(text))
}

var violentOffenses = Rule{Keywords: []string{"assault", "robbery", "murder", "rape"}}

// IsViolentOffense reports whether an NYPD offense description is violent.
func IsViolentOffense(offense string) bool {
	return violentOffenses.matches(strings.ToLower(offense))
}

// ContainsAny reports whether the lowercased text contains any keyword.
func ContainsAny(text string, keywords ...string) bool {
	return Rule{Keywords: keywords}.matches(strings.ToLower(text))
}
