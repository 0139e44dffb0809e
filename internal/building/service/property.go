package service

import (
	"sort"

	"buildinghealth_backend/internal/building/domain"
	"buildinghealth_backend/internal/building/reference"
	"buildinghealth_backend/internal/building/transport"
	"buildinghealth_backend/internal/opendata"
)

const (
	recentSales        = 25
	recentPermits      = 25
	recentRodentChecks = 10
	rentStabilizedAge  = 1974
	rentStabilizedMin  = 6
)

// building is nil when PLUTO has no record for the lot.
func (b *reportBuilder) building() *transport.Building {
	p := b.pluto
	if p == nil {
		return nil
	}
	rs, hasRS := b.rs.First(opendata.RentStabilized)
	subsidy := b.rs.Get(opendata.SubsidizedHousing)
	nycha := b.rs.Get(opendata.NYCHA)

	address := orDefault(p.String("address"), "Unknown")
	zip := p.String("zipcode")
	unitsRes := int(p.Number("unitsres"))
	unitsTotal := int(p.Number("unitstotal"))
	if unitsTotal == 0 {
		unitsTotal = unitsRes
	}
	class := p.String("bldgclass")

	yearBuilt := intPtr(p, "yearbuilt")
	oldStock := yearBuilt != nil && *yearBuilt < rentStabilizedAge && unitsRes >= rentStabilizedMin

	bldg := &transport.Building{
		BBL:               b.bbl.String(),
		Address:           address,
		AddressDisplay:    displayAddress(address),
		Borough:           reference.BoroughName(p.String("borough")),
		Neighborhood:      reference.Neighborhood(zip),
		Zipcode:           zip,
		YearBuilt:         yearBuilt,
		UnitsRes:          unitsRes,
		UnitsTotal:        unitsTotal,
		Floors:            p.Number("numfloors"),
		BuildingClass:     class,
		BuildingClassDesc: reference.BuildingClass(class),
		OwnerName:         orDefault(p.String("ownername"), "Unknown"),
		OwnerType:         p.String("ownertype"),
		LotArea:           floatPtr(p, "lotarea"),
		BuildingArea:      floatPtr(p, "bldgarea"),
		ZoneDist1:         p.String("zonedist1"),
		AssessedValue:     floatPtr(p, "assesstot"),
		YearAltered1:      intPtr(p, "yearalter1"),
		YearAltered2:      intPtr(p, "yearalter2"),
		Landmark:          stringPtr(p.String("landmark")),
		HistDist:          stringPtr(p.String("histdist")),
		IsRentStabilized:  hasRS || oldStock,
		IsSubsidized:      len(subsidy) > 0,
		SubsidyPrograms: domain.Filter(domain.Map(subsidy, 0, func(s opendata.Record) string {
			return s.String("program_name")
		}), func(s string) bool { return s != "" }),
		IsNycha: len(nycha) > 0 || p.String("ownertype") == "P",
	}
	if b.at != nil {
		bldg.Latitude, bldg.Longitude = &b.at.Lat, &b.at.Lng
	}
	if hasRS {
		bldg.RentStabilizedUnits = stringPtr(rs.First("uc2023", "uc2022", "uc2021"))
		if rs.Has("uc2007") && rs.Has("uc2023") {
			lost := int(rs.Number("uc2007") - rs.Number("uc2023"))
			bldg.RSLostUnits = &lost
		}
	}
	if len(nycha) > 0 {
		bldg.NychaDev = stringPtr(nycha[0].String("development"))
	}
	return bldg
}

func (b *reportBuilder) sales() transport.Sales {
	priced := domain.Filter(b.rs.Get(opendata.DOFRollingSales), func(s opendata.Record) bool {
		return s.Number("sale_price") > 0
	})
	recent := domain.Map(priced, recentSales, func(s opendata.Record) transport.SaleItem {
		return transport.SaleItem{
			ID:     idOr(s, "ease_ment"),
			Date:   s.String("sale_date"),
			Amount: s.Number("sale_price"),
		}
	})
	out := transport.Sales{
		Total:       len(recent),
		Recent:      recent,
		DeedRecords: len(b.rs.Get(opendata.ACRISLegals)),
	}
	if len(recent) > 0 {
		last := recent[0]
		out.LastSaleDate = stringPtr(last.Date)
		out.LastSaleAmount = &last.Amount
	}
	return out
}

func (b *reportBuilder) permits() transport.Permits {
	jobs := b.rs.Get(opendata.DOBJobFilings)
	return transport.Permits{
		Total: len(jobs),
		MajorAlterations: domain.CountWhere(jobs, func(p opendata.Record) bool {
			t := p.String("job_type")
			return t == "A1" || t == "DM"
		}),
		RecentActivity: len(since(jobs, "filing_date", b.w.Y3)),
		PermitsIssued:  len(b.rs.Get(opendata.DOBPermitsIssued)),
		Recent: domain.Map(jobs, recentPermits, func(p opendata.Record) transport.PermitItem {
			jobType := p.String("job_type")
			item := transport.PermitItem{
				JobNumber:     p.First("job__", "job_number"),
				JobType:       jobType,
				JobTypeDesc:   reference.JobType(jobType),
				FilingDate:    p.First("filing_date", "pre_filing_date"),
				JobStatus:     p.String("job_status"),
				JobStatusDesc: p.String("job_status_descrp"),
				WorkType:      p.String("work_type"),
			}
			if cost, ok := amount(p, "initial_cost"); ok {
				item.EstimatedCost = &cost
			}
			return item
		}),
	}
}

func rodentFailed(r opendata.Record) bool {
	return domain.ContainsAny(r.String("result"), "active", "rat", "mice", "evidence")
}

func rodentPassed(r opendata.Record) bool {
	return domain.ContainsAny(r.String("result"), "pass", "no evidence")
}

func (b *reportBuilder) rodents() transport.Rodents {
	rows := b.rs.Get(opendata.Rodents)
	return transport.Rodents{
		TotalInspections: len(rows),
		Failed:           domain.CountWhere(rows, rodentFailed),
		Passed:           domain.CountWhere(rows, rodentPassed),
		Recent: domain.Map(rows, recentRodentChecks, func(r opendata.Record) transport.RodentCheck {
			return transport.RodentCheck{
				Date:   r.String("inspection_date"),
				Result: r.String("result"),
				Type:   r.String("inspection_type"),
			}
		}),
	}
}

func (b *reportBuilder) bedbugs() transport.Bedbugs {
	rows := b.rs.Get(opendata.Bedbugs)
	out := transport.Bedbugs{Reports: len(rows)}
	if len(rows) > 0 {
		out.LastReportDate = rows[0].String("filing_date")
	}
	return out
}

func (b *reportBuilder) programs() transport.Programs {
	has := func(dataset string) bool { return len(b.rs.Get(dataset)) > 0 }
	return transport.Programs{
		AEP:              has(opendata.HPDAEP),
		CONH:             has(opendata.HPDCONH),
		SpeculationWatch: has(opendata.SpeculationWatch),
		Subsidized:       has(opendata.SubsidizedHousing),
		NYCHA:            has(opendata.NYCHA),
		VacateOrder:      has(opendata.HPDVacateOrders) || has(opendata.DOBVacates),
	}
}

func (b *reportBuilder) taxes() transport.Taxes {
	exemptions := b.rs.Get(opendata.DOFExemptions)
	codes := domain.Tally(exemptions, func(e opendata.Record) string {
		return e.First("exmp_code", "exemption_code", "exempt_code")
	})
	list := make([]string, 0, len(codes))
	for code := range codes {
		list = append(list, code)
	}
	sort.Strings(list)
	return transport.Taxes{
		Exemptions:      len(exemptions),
		ExemptionCodes:  list,
		TaxLienListings: len(b.rs.Get(opendata.TaxLienSales)),
		CoolingTowers:   len(b.rs.Get(opendata.CoolingTowers)),
	}
}
