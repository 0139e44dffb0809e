package service

import (
	"buildinghealth_backend/internal/building/domain"
	"buildinghealth_backend/internal/building/transport"
	"buildinghealth_backend/internal/opendata"
)

const (
	recentLitigations  = 15
	recentEvictions    = 15
	recentCourtFilings = 15
)

func (b *reportBuilder) litigations() transport.Litigations {
	rows := b.rs.Get(opendata.HPDLitigations)
	return transport.Litigations{
		Total: len(rows),
		Open: domain.CountWhere(rows, func(l opendata.Record) bool {
			return !lowerContains(l.String("casestatus"), "closed")
		}),
		TotalPenalties: domain.Sum(rows, func(l opendata.Record) float64 { return l.Number("penalty") }),
		ByType: domain.Tally(rows, func(l opendata.Record) string {
			return orDefault(l.String("casetype"), "Other")
		}),
		Recent: domain.Map(rows, recentLitigations, func(l opendata.Record) transport.LitigationItem {
			return transport.LitigationItem{
				ID:           l.String("litigationid"),
				CaseType:     l.String("casetype"),
				CaseOpenDate: l.String("caseopendate"),
				CaseStatus:   l.String("casestatus"),
				Penalty:      floatPtr(l, "penalty"),
				FindingDate:  l.String("findingdate"),
			}
		}),
	}
}

func (b *reportBuilder) charges() transport.Charges {
	rows := b.rs.Get(opendata.HPDCharges)
	return transport.Charges{
		Total:       len(rows),
		TotalAmount: domain.Sum(rows, func(c opendata.Record) float64 { return c.Number("charge") }),
	}
}

func (b *reportBuilder) evictions() transport.Evictions {
	rows := b.rs.Get(opendata.Evictions)
	court := b.rs.Get(opendata.HousingCourt)

	return transport.Evictions{
		Total:      len(rows),
		Last3Years: len(since(rows, "executed_date", b.w.Y3)),
		ByYear:     byYear(rows, "executed_date"),
		Recent: domain.Map(rows, recentEvictions, func(e opendata.Record) transport.EvictionItem {
			return transport.EvictionItem{
				ID:           e.String("unique_id"),
				ExecutedDate: e.String("executed_date"),
				Type:         e.String("residential_commercial"),
				Marshal:      e.String("marshal_last_name"),
			}
		}),
		Filings: transport.CourtFilings{
			Total:      len(court),
			Last3Years: len(since(court, "fileddate", b.w.Y3)),
			ByYear:     byYear(court, "fileddate"),
			Recent: domain.Map(court, recentCourtFilings, func(f opendata.Record) transport.CourtFiling {
				return transport.CourtFiling{
					ID:        idOr(f, "index_number"),
					FiledDate: f.String("fileddate"),
					CaseType:  f.First("casetype", "classification"),
					Status:    f.String("status"),
					CourtType: orDefault(f.String("court"), "Housing Court"),
				}
			}),
		},
	}
}
