package service

import (
	"strconv"

	"buildinghealth_backend/internal/building/domain"
	"buildinghealth_backend/internal/building/transport"
	"buildinghealth_backend/internal/opendata"
	"buildinghealth_backend/platform/sanitize"
)

const (
	recentHPDViolations = 40
	recentDOBViolations = 25
	recentViolations    = 50
	byYearSince         = 2010
)

func isOpenHPD(v opendata.Record) bool {
	return lowerContains(v.String("currentstatus"), "open") || !v.Has("currentstatusdate")
}

func isOpenDOB(v opendata.Record) bool {
	return !v.Has("disposition_date") && v.Has("issue_date")
}

func isOpenECB(v opendata.Record) bool {
	status := v.String("ecb_violation_status")
	return !lowerContains(status, "resolve") && !lowerContains(status, "dismiss")
}

func hpdClassCount(rows []opendata.Record, class string) int {
	return domain.CountWhere(rows, func(v opendata.Record) bool { return v.String("class") == class })
}

func hpdByYear(rows []opendata.Record) map[string]transport.ClassByYear {
	out := make(map[string]transport.ClassByYear)
	for _, v := range rows {
		yr := domain.Year(v.First("inspectiondate", "novissueddate"))
		n, err := strconv.Atoi(yr)
		if err != nil || n < byYearSince {
			continue
		}
		entry := out[yr]
		entry.Total++
		switch v.String("class") {
		case "A":
			entry.A++
		case "B":
			entry.B++
		case "C":
			entry.C++
		}
		out[yr] = entry
	}
	return out
}

// violations also returns the HPD and DOB samples used by the timeline.
func (b *reportBuilder) violations() (transport.Violations, []transport.ViolationItem, []transport.ViolationItem) {
	hpd := b.rs.Get(opendata.HPDViolations)
	dob := b.rs.Get(opendata.DOBViolations)
	ecb := b.rs.Get(opendata.DOBEcb)

	hpdOpen := domain.Filter(hpd, isOpenHPD)

	recentHPD := domain.Map(hpd, recentHPDViolations, func(v opendata.Record) transport.ViolationItem {
		desc := sanitize.Text(v.String("novdescription"))
		status := "Closed"
		if lowerContains(v.String("currentstatus"), "open") {
			status = "Open"
		}
		return transport.ViolationItem{
			ID:          idOr(v, "violationid"),
			Source:      "HPD",
			Date:        v.First("inspectiondate", "novissueddate"),
			Class:       orDefault(v.String("class"), "A"),
			Type:        v.String("novtype"),
			Description: orDefault(desc, "No description"),
			Status:      status,
			Unit:        v.String("apartment"),
			Story:       v.String("story"),
			Category:    domain.Categorize(desc),
		}
	})

	recentDOB := domain.Map(dob, recentDOBViolations, func(v opendata.Record) transport.ViolationItem {
		status := "Open"
		if v.Has("disposition_date") {
			status = "Closed"
		}
		return transport.ViolationItem{
			ID:          idOr(v, "isn_dob_bis_extract"),
			Source:      "DOB",
			Date:        v.String("issue_date"),
			Type:        v.String("violation_type"),
			Description: sanitize.Text(v.First("description", "violation_type_description")),
			Status:      status,
			Category:    domain.Categorize(v.String("description")),
		}
	})

	recent := make([]transport.ViolationItem, 0, len(recentHPD)+len(recentDOB))
	recent = append(recent, recentHPD...)
	recent = append(recent, recentDOB...)
	domain.SortByDateDesc(recent, func(v transport.ViolationItem) string { return v.Date })
	if len(recent) > recentViolations {
		recent = recent[:recentViolations]
	}

	section := transport.Violations{
		HPD: transport.HPDViolationStats{
			Total:  len(hpd),
			Open:   len(hpdOpen),
			ClassA: hpdClassCount(hpdOpen, "A"),
			ClassB: hpdClassCount(hpdOpen, "B"),
			ClassC: hpdClassCount(hpdOpen, "C"),
			ByYear: hpdByYear(hpd),
			ByCategory: domain.Tally(hpd, func(v opendata.Record) string {
				return domain.Categorize(v.String("novdescription"))
			}),
		},
		DOB: transport.DOBViolationStats{
			Total:  len(dob),
			Open:   domain.CountWhere(dob, isOpenDOB),
			ByYear: byYear(dob, "issue_date"),
		},
		ECB: transport.ECBStats{
			Total:         len(ecb),
			Open:          domain.CountWhere(ecb, isOpenECB),
			PenaltiesOwed: domain.Sum(ecb, func(v opendata.Record) float64 { return v.Number("penalty_balance_due") }),
		},
		Safety: transport.TotalOnly{Total: len(b.rs.Get(opendata.DOBSafety))},
		Recent: recent,
	}
	return section, recentHPD, recentDOB
}
