package service

import (
	"strconv"
	"strings"
	"time"

	"buildinghealth_backend/internal/building/domain"
	"buildinghealth_backend/internal/building/transport"
	"buildinghealth_backend/internal/opendata"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	dataSourcesCounted = 55
	dataDisclaimer     = "Data from 55+ NYC Open Data sources including HUD Fair Market Rents. Scores are estimates. Always verify independently."
	isoMillis          = "2006-01-02T15:04:05.000Z07:00"
)

// reportBuilder turns one fan-out into a report. It is used once.
type reportBuilder struct {
	bbl   domain.BBL
	pluto opendata.Record
	at    *opendata.Point
	rs    *opendata.Results
	w     windows
	now   time.Time
}

func (b *reportBuilder) build() *transport.Report {
	violations, recentHPD, recentDOB := b.violations()
	complaints, recentHPDComplaints := b.complaints()
	litigations := b.litigations()
	evictions := b.evictions()
	sales := b.sales()
	rodents := b.rodents()
	bedbugs := b.bedbugs()
	programs := b.programs()
	crime := b.crime()
	flood := b.flood()
	building := b.building()

	inputs := domain.ScoreInputs{
		OpenClassC:      violations.HPD.ClassC,
		OpenClassB:      violations.HPD.ClassB,
		OpenClassA:      violations.HPD.ClassA,
		OpenHPD:         violations.HPD.Open,
		OpenDOB:         violations.DOB.Open,
		OpenECB:         violations.ECB.Open,
		HeatComplaints:  complaints.HPD.HeatHotWater,
		OpenLitigations: litigations.Open,
		Evictions3Y:     evictions.Last3Years,
		RodentFails:     rodents.Failed,
		Bedbugs:         bedbugs.Reports,
	}
	score := domain.ComputeScore(inputs)

	return &transport.Report{
		Building: building,
		Score: transport.ScoreSummary{
			Overall: score,
			Grade:   domain.Grade(score),
			Label:   domain.Label(score),
			Breakdown: transport.ScoreBreakdown{
				HPDViolations: violations.HPD.Open,
				DOBViolations: violations.DOB.Open,
				ECBViolations: violations.ECB.Open,
				Complaints:    complaints.HPD.RecentYear,
				Litigations:   litigations.Open,
				Evictions:     evictions.Last3Years,
				Pests:         rodents.Failed + bedbugs.Reports,
			},
		},
		CategoryScores: domain.CategoryScores(inputs, crime.Score, crime.Total),
		Violations:     violations,
		Complaints:     complaints,
		Litigations:    litigations,
		Charges:        b.charges(),
		Evictions:      evictions,
		Sales:          sales,
		Permits:        b.permits(),
		Rodents:        rodents,
		Bedbugs:        bedbugs,
		Programs:       programs,
		Landlord:       b.landlord(building),
		RedFlags: domain.RedFlags(domain.FlagInputs{
			OpenClassC:      violations.HPD.ClassC,
			AEP:             programs.AEP,
			HeatComplaints:  complaints.HPD.HeatHotWater,
			Bedbugs:         bedbugs.Reports,
			InFloodZone:     flood.InFloodZone,
			FloodZoneType:   deref(flood.FloodZoneType),
			InHurricaneZone: flood.InHurricaneZone,
			HurricaneZone:   deref(flood.HurricaneZone),
		}),
		Timeline:           timeline(recentHPD, recentDOB, recentHPDComplaints, sales.Recent),
		Crime:              crime,
		Flood:              flood,
		NeighborhoodScore:  domain.NeighborhoodScore(crime.Score, flood.InFloodZone, flood.InHurricaneZone),
		RentFairness:       b.rentFairness(),
		Amenities:          b.amenities(),
		Safety:             b.safety(),
		Taxes:              b.taxes(),
		DataSourcesCounted: dataSourcesCounted,
		LastUpdated:        b.now.Format(isoMillis),
		DataDisclaimer:     dataDisclaimer,
	}
}

func timeline(hpd, dob []transport.ViolationItem, complaints []transport.ComplaintItem, sales []transport.SaleItem) []domain.TimelineEvent {
	events := make([]domain.TimelineEvent, 0, len(hpd)+len(dob)+len(complaints)+len(sales))
	for _, v := range hpd {
		events = append(events, domain.TimelineEvent{Date: v.Date, Type: "violation", Source: "HPD " + v.Class, Description: v.Description})
	}
	for _, v := range dob {
		events = append(events, domain.TimelineEvent{Date: v.Date, Type: "violation", Source: "DOB", Description: v.Description})
	}
	for _, c := range complaints {
		events = append(events, domain.TimelineEvent{Date: c.Date, Type: "complaint", Source: "HPD", Description: c.Type + " complaint"})
	}
	for _, s := range sales {
		events = append(events, domain.TimelineEvent{Date: s.Date, Type: "sale", Source: "ACRIS", Description: "Sold for " + domain.Money(s.Amount)})
	}
	return domain.BuildTimeline(events, domain.MaxTimelineEvents)
}

// Record helpers.

func idOr(r opendata.Record, keys ...string) string {
	if id := r.First(keys...); id != "" {
		return id
	}
	return uuid.NewString()
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func lowerContains(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), sub)
}

func intPtr(r opendata.Record, key string) *int {
	if !r.Has(key) {
		return nil
	}
	n, ok := r.NumberOK(key)
	if !ok {
		return nil
	}
	v := int(n)
	return &v
}

func floatPtr(r opendata.Record, key string) *float64 {
	if !r.Has(key) {
		return nil
	}
	n, ok := r.NumberOK(key)
	if !ok {
		return nil
	}
	return &n
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// amount parses currency strings such as "$1,250.00".
func amount(r opendata.Record, key string) (float64, bool) {
	if n, ok := r.NumberOK(key); ok {
		return n, true
	}
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(r.String(key)))
	if cleaned == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(cleaned, 64)
	return n, err == nil
}

func displayAddress(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	return cases.Title(language.AmericanEnglish).String(s)
}

func since(rows []opendata.Record, key string, cutoff time.Time) []opendata.Record {
	return domain.Filter(rows, func(r opendata.Record) bool {
		return domain.OnOrAfter(r.String(key), cutoff)
	})
}

func byYear(rows []opendata.Record, key string) map[string]int {
	return domain.Tally(rows, func(r opendata.Record) string { return domain.Year(r.String(key)) })
}
