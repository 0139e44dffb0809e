package service

import (
	"buildinghealth_backend/internal/building/domain"
	"buildinghealth_backend/internal/building/transport"
	"buildinghealth_backend/internal/opendata"
	"buildinghealth_backend/platform/sanitize"
)

const (
	recentHPDComplaints = 25
	recentDOBComplaints = 15
	recent311           = 15
	recentComplaints    = 40
	categoryBreakdown   = 8
)

func hpdComplaintType(c opendata.Record) string {
	return c.First("complainttype", "majorcategory")
}

// complaints also returns the HPD sample used by the timeline.
func (b *reportBuilder) complaints() (transport.Complaints, []transport.ComplaintItem) {
	hpd := b.rs.Get(opendata.HPDComplaints)
	dob := b.rs.Get(opendata.DOBComplaints)
	sr := b.rs.Get(opendata.SR311)

	hpdY1 := since(hpd, "receiveddate", b.w.Y1)
	heat := domain.CountWhere(hpdY1, func(c opendata.Record) bool {
		return domain.IsHeatComplaint(hpdComplaintType(c))
	})

	byCategory := domain.Tally(hpd, func(c opendata.Record) string {
		return domain.Categorize(hpdComplaintType(c))
	})

	recentHPD := domain.Map(hpd, recentHPDComplaints, func(c opendata.Record) transport.ComplaintItem {
		return transport.ComplaintItem{
			ID:     idOr(c, "complaintid"),
			Source: "HPD",
			Date:   c.String("receiveddate"),
			Type:   orDefault(hpdComplaintType(c), "Unknown"),
			Status: orDefault(c.String("status"), "Unknown"),
			Unit:   c.String("apartment"),
			Signal: string(domain.ClassifyHPDComplaint(c.String("complainttype"), c.String("majorcategory"))),
		}
	})
	recentDOB := domain.Map(dob, recentDOBComplaints, func(c opendata.Record) transport.ComplaintItem {
		return transport.ComplaintItem{
			ID:     idOr(c, "complaint_number"),
			Source: "DOB",
			Date:   c.String("date_entered"),
			Type:   orDefault(c.String("complaint_category"), "DOB"),
			Status: orDefault(c.String("status"), "Unknown"),
		}
	})
	recentSR := domain.Map(sr, recent311, func(r opendata.Record) transport.ComplaintItem {
		return transport.ComplaintItem{
			ID:         idOr(r, "unique_key"),
			Source:     "311",
			Date:       r.String("created_date"),
			Type:       r.String("complaint_type"),
			Descriptor: sanitize.Text(r.String("descriptor")),
			Status:     r.String("status"),
			Signal:     string(domain.Classify311(r.String("complaint_type"), r.String("descriptor"))),
		}
	})

	recent := make([]transport.ComplaintItem, 0, len(recentHPD)+len(recentDOB)+len(recentSR))
	recent = append(recent, recentHPD...)
	recent = append(recent, recentDOB...)
	recent = append(recent, recentSR...)
	domain.SortByDateDesc(recent, func(c transport.ComplaintItem) string { return c.Date })
	if len(recent) > recentComplaints {
		recent = recent[:recentComplaints]
	}

	signals := map[string]int{
		string(domain.SignalHeat):  0,
		string(domain.SignalPests): 0,
		string(domain.SignalNoise): 0,
		string(domain.SignalOther): 0,
	}
	for k, n := range domain.Tally(sr, func(r opendata.Record) string {
		return string(domain.Classify311(r.String("complaint_type"), r.String("descriptor")))
	}) {
		signals[k] = n
	}

	section := transport.Complaints{
		HPD: transport.HPDComplaintStats{
			Total:        len(hpd),
			RecentYear:   len(hpdY1),
			HeatHotWater: heat,
			ByYear:       byYear(hpd, "receiveddate"),
		},
		DOB: transport.DOBComplaintStats{
			Total:      len(dob),
			RecentYear: len(since(dob, "date_entered", b.w.Y1)),
		},
		SR311: transport.SR311Stats{
			Total: len(sr),
			ByType: domain.Tally(sr, func(r opendata.Record) string {
				return orDefault(r.String("complaint_type"), "Other")
			}),
			Signals: signals,
		},
		Recent:     recent,
		ByCategory: domain.Breakdown(byCategory, categoryBreakdown),
	}
	return section, recentHPD
}
