package service

import (
	"fmt"
	"math"

	"buildinghealth_backend/internal/building/domain"
	"buildinghealth_backend/internal/building/reference"
	"buildinghealth_backend/internal/building/transport"
	"buildinghealth_backend/internal/opendata"
	"buildinghealth_backend/platform/geo"
)

const (
	crimeTypesShown = 10
	rentTip         = "If asking rent exceeds FMR by 20%+, consider negotiating or comparing other units."
)

func (b *reportBuilder) crime() transport.Crime {
	rows := b.rs.Get(opendata.NYPDComplaints)
	violent := domain.CountWhere(rows, func(c opendata.Record) bool {
		return domain.IsViolentOffense(c.String("ofns_desc"))
	})
	byType := domain.Tally(rows, func(c opendata.Record) string {
		return orDefault(c.First("ofns_desc", "pd_desc"), "Other")
	})
	score := domain.CrimeScore(len(rows), violent)
	return transport.Crime{
		Total:   len(rows),
		Violent: violent,
		Score:   score,
		Level:   domain.CrimeLevel(score),
		ByType: domain.Map(domain.TopCounts(byType, crimeTypesShown), 0, func(c domain.Count) transport.TypeCount {
			return transport.TypeCount{Type: c.Key, Count: c.Count}
		}),
	}
}

func (b *reportBuilder) flood() transport.Flood {
	out := transport.Flood{}
	if zone, ok := b.rs.First(opendata.FloodZones); ok {
		out.InFloodZone = true
		out.FloodZoneType = stringPtr(zone.First("fld_zone", "zone"))
	}
	if zone, ok := b.rs.First(opendata.HurricaneZones); ok {
		out.InHurricaneZone = true
		out.HurricaneZone = stringPtr(zone.First("hurricane_e", "zone"))
	}
	return out
}

func (b *reportBuilder) rentFairness() transport.RentFairness {
	zip := b.pluto.String("zipcode")
	hood := reference.Neighborhood(zip)

	fmr, zipLevel := reference.FMRForZip(zip)
	source := fmt.Sprintf("HUD Small Area FMR (ZIP %s)", zip)
	note := fmt.Sprintf("Fair Market Rents for %s (40th percentile).", orDefault(hood, zip))
	if !zipLevel {
		fmr = reference.NYCMetroFMR
		source = "HUD FMR (NYC Metro Average)"
		note = "NYC Metro Fair Market Rents (40th percentile)."
	}
	return transport.RentFairness{
		HudFMR: transport.HudFMR{
			Studio:     fmr.Studio,
			OneBr:      fmr.OneBr,
			TwoBr:      fmr.TwoBr,
			ThreeBr:    fmr.ThreeBr,
			FourBr:     fmr.FourBr,
			Year:       reference.FMRYear,
			Source:     source,
			IsZipLevel: zipLevel,
		},
		Neighborhood: orDefault(hood, "NYC"),
		Note:         note,
		Tip:          rentTip,
	}
}

// amenities reports zero counts without a location.
func (b *reportBuilder) amenities() transport.Amenities {
	out := transport.Amenities{RestaurantGrades: map[string]int{}}
	if b.at == nil {
		return out
	}
	subway := b.rs.Get(opendata.SubwayEntrances)
	restaurants := b.rs.Get(opendata.RestaurantInspections)

	out.SubwayEntrances = len(subway)
	out.CitiBikeStations = len(b.rs.Get(opendata.CitiBikeStations))
	out.Schools = len(b.rs.Get(opendata.SchoolLocations))
	out.Parks = len(b.rs.Get(opendata.Parks))
	out.StreetTrees = len(b.rs.Get(opendata.StreetTrees))
	out.SidewalkCafes = len(b.rs.Get(opendata.SidewalkCafes))
	out.WifiHotspots = len(b.rs.Get(opendata.WifiHotspots))

	// Inspections repeat per restaurant; count establishments once.
	seen := make(map[string]bool)
	for _, r := range restaurants {
		key := r.First("camis", "dba")
		if key == "" {
			key = fmt.Sprintf("row-%d", len(seen))
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		if grade := r.String("grade"); grade != "" {
			out.RestaurantGrades[grade]++
		}
	}
	out.Restaurants = len(seen)

	best := math.Inf(1)
	for _, e := range subway {
		p, ok := e.Point()
		if !ok {
			continue
		}
		if d := geo.DistanceMeters(*b.at, p); d < best {
			best = d
			out.NearestSubwayStation = e.First("name", "station_name", "stop_name")
		}
	}
	if !math.IsInf(best, 1) {
		m := int(math.Round(best))
		out.NearestSubwayMeters = &m
	}
	return out
}

func (b *reportBuilder) safety() transport.Safety {
	crashes := b.rs.Get(opendata.MotorVehicleCrashes)
	return transport.Safety{
		Shootings3Y: len(b.rs.Get(opendata.NYPDShooting)),
		Crashes2Y:   len(crashes),
		CrashInjuries: int(domain.Sum(crashes, func(c opendata.Record) float64 {
			return c.Number("number_of_persons_injured")
		})),
		CrashDeaths: int(domain.Sum(crashes, func(c opendata.Record) float64 {
			return c.Number("number_of_persons_killed")
		})),
	}
}
