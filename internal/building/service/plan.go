package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"buildinghealth_backend/internal/building/domain"
	"buildinghealth_backend/internal/opendata"
	"buildinghealth_backend/platform/geo"
)

const portfolioFetchLimit = 150

// windows are the lookback cutoffs: the first day of the current month,
// N years back.
type windows struct {
	Y1, Y2, Y3, Y5 time.Time
}

func newWindows(now time.Time) windows {
	back := func(years int) time.Time {
		return time.Date(now.Year()-years, now.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	return windows{Y1: back(1), Y2: back(2), Y3: back(3), Y5: back(5)}
}

func day(t time.Time) string { return t.Format("2006-01-02") }

func plutoPoint(p opendata.Record) *opendata.Point {
	if p == nil {
		return nil
	}
	lat, latOK := p.NumberOK("latitude")
	lng, lngOK := p.NumberOK("longitude")
	if !latOK || !lngOK || lat == 0 || lng == 0 {
		return nil
	}
	return &opendata.Point{Lat: lat, Lng: lng}
}

// plan lists every phase-2 call. Each call is keyed by its dataset name.
func (s *Service) plan(bbl domain.BBL, pluto opendata.Record, at *opendata.Point, w windows) []opendata.Call {
	id := bbl.String()
	q := opendata.NewQuery
	byLot := func() *opendata.Query {
		return q().Wheref("boro=%s AND block=%s AND lot=%s",
			opendata.Quote(bbl.Borough()), opendata.Quote(bbl.Block()), opendata.Quote(bbl.Lot()))
	}
	quotedBBL := opendata.Quote(id)
	core, def := s.timeouts.Core, s.timeouts.Default

	calls := []opendata.Call{
		s.call(opendata.HPDViolations, q().Eq("bbl", id).Order("inspectiondate DESC").Limit(1500), core),
		s.call(opendata.HPDComplaints, q().Eq("bbl", id).Wheref("receiveddate>=%s", opendata.Quote(day(w.Y5))).Order("receiveddate DESC").Limit(800), core),
		s.call(opendata.HPDRegistrations, q().Eq("bbl", id).Limit(1), core),
		s.call(opendata.HPDContacts, s.contactsQuery(id), def),
		s.call(opendata.HPDLitigations, q().Eq("bbl", id).Order("caseopendate DESC").Limit(200), def),
		s.call(opendata.HPDCharges, q().Eq("bbl", id).Limit(200), def),
		s.call(opendata.HPDVacateOrders, q().Eq("bbl", id).Limit(50), def),
		s.call(opendata.HPDAEP, q().Eq("bbl", id).Limit(10), def),
		s.call(opendata.HPDCONH, q().Eq("bbl", id).Limit(10), def),

		s.call(opendata.DOBViolations, byLot().Order("issue_date DESC").Limit(800), core),
		s.call(opendata.DOBComplaints, byLot().Order("date_entered DESC").Limit(400), def),
		s.call(opendata.DOBJobFilings, byLot().Order("filing_date DESC").Limit(300), def),
		s.call(opendata.DOBPermitsIssued, byLot().Limit(200), def),
		s.call(opendata.DOBSafety, byLot().Limit(150), def),
		s.call(opendata.DOBEcb, byLot().Limit(300), def),
		s.call(opendata.DOBVacates, byLot().Limit(30), def),

		s.call(opendata.ACRISLegals, q().Wheref("borough=%s AND block=%d AND lot=%d",
			opendata.Quote(bbl.Borough()), bbl.BlockNumber(), bbl.LotNumber()).Order("good_through_date DESC").Limit(100), def),
		s.call(opendata.DOFRollingSales, q().Wheref("borough=%s AND block=%d AND lot=%d",
			bbl.Borough(), bbl.BlockNumber(), bbl.LotNumber()).Order("sale_date DESC").Limit(50), def),

		s.call(opendata.Evictions, q().Eq("bbl", id).Wheref("executed_date>=%s", opendata.Quote(day(w.Y5))).Order("executed_date DESC").Limit(150), def),
		s.call(opendata.HousingCourt, q().Wheref("bbl=%s", quotedBBL).Order("fileddate DESC").Limit(200), def),

		s.call(opendata.Rodents, q().Eq("bbl", id).Order("inspection_date DESC").Limit(80), def),
		s.call(opendata.Bedbugs, q().Wheref("building_id=%s", quotedBBL).Limit(50), def),

		s.call(opendata.SpeculationWatch, q().Eq("bbl", id).Limit(5), def),
		s.call(opendata.RentStabilized, q().Wheref("ucbbl=%s", quotedBBL).Limit(1), def),
		s.call(opendata.SubsidizedHousing, q().Wheref("bbl=%s", quotedBBL).Limit(5), def),
		s.call(opendata.NYCHA, q().Wheref("bbl=%s", quotedBBL).Limit(3), def),
		s.call(opendata.SR311, q().Wheref("bbl=%s AND created_date>=%s", quotedBBL, opendata.Quote(day(w.Y3))).Order("created_date DESC").Limit(300), core),

		s.geoCall(opendata.NYPDComplaints, at, func(p opendata.Point) *opendata.Query {
			return q().Where(opendata.WithinCircle("lat_lon", p, 500)).Wheref("cmplnt_fr_dt>=%s", opendata.Quote(day(w.Y1))).Order("cmplnt_fr_dt DESC").Limit(500)
		}),
		s.geoCall(opendata.FloodZones, at, func(p opendata.Point) *opendata.Query {
			return q().Where(opendata.WithinCircle("the_geom", p, 100)).Limit(5)
		}),
		s.geoCall(opendata.HurricaneZones, at, func(p opendata.Point) *opendata.Query {
			return q().Where(opendata.WithinCircle("the_geom", p, 100)).Limit(5)
		}),
		s.geoCall(opendata.SubwayEntrances, at, func(p opendata.Point) *opendata.Query {
			return q().Where(opendata.WithinCircle("the_geom", p, 1000)).Limit(50)
		}),
		s.geoCall(opendata.CitiBikeStations, at, func(p opendata.Point) *opendata.Query {
			return q().Where(opendata.WithinCircle("the_geom", p, 800)).Limit(30)
		}),
		s.nearbyCall(opendata.SchoolLocations, at, schoolsRadius, []string{"location_1", "the_geom", "location", "lat_lon"}, q().Limit(2000)),
		s.nearbyCall(opendata.Parks, at, parksRadius, []string{"the_geom", "location", "lat_lon"}, q().Limit(3000)),
		s.geoCall(opendata.StreetTrees, at, func(p opendata.Point) *opendata.Query {
			return q().Where(opendata.WithinCircle("the_geom", p, 150)).Limit(100)
		}),
		s.nearbyCall(opendata.SidewalkCafes, at, cafesRadius, []string{"the_geom", "location", "lat_lon"}, q().Limit(3000)),
		s.nearbyCall(opendata.WifiHotspots, at, wifiRadius, []string{"the_geom", "location", "lat_lon"}, q().Limit(3000)),
		s.geoCall(opendata.NYPDShooting, at, func(p opendata.Point) *opendata.Query {
			return q().Where(opendata.WithinCircle("the_geom", p, 500)).Wheref("occur_date>=%s", opendata.Quote(day(w.Y3))).Limit(200)
		}),
		s.geoCall(opendata.MotorVehicleCrashes, at, func(p opendata.Point) *opendata.Query {
			return q().Where(opendata.WithinCircle("location", p, 300)).Wheref("crash_date>=%s", opendata.Quote(day(w.Y2))).Limit(300)
		}),
		s.call(opendata.DOFExemptions, q().Wheref("bbl=%s", quotedBBL).Limit(20), def),
		s.call(opendata.TaxLienSales, q().Wheref("bbl=%s", quotedBBL).Limit(20), def),
		s.geoCall(opendata.RestaurantInspections, at, func(p opendata.Point) *opendata.Query {
			return q().Where(opendata.WithinCircle("location", p, 100)).Order("inspection_date DESC").Limit(50)
		}),
	}

	if street := streetName(pluto.String("address")); street != "" {
		calls = append(calls, s.call(opendata.CoolingTowers,
			q().Wheref("upper(street_name) LIKE upper(%s)", opendata.Quote("%"+street+"%")).Limit(20), def))
	}

	return calls
}

const (
	schoolsRadius = 1200
	parksRadius   = 1200
	cafesRadius   = 600
	wifiRadius    = 600
	nearbyLimit   = 200
)

func (s *Service) call(dataset string, query *opendata.Query, timeout time.Duration) opendata.Call {
	return opendata.Call{
		Key: dataset,
		Fetch: func(ctx context.Context) opendata.Result {
			return s.client.Fetch(ctx, dataset, query, timeout)
		},
	}
}

// geoCall is skipped (empty, no error) without a location.
func (s *Service) geoCall(dataset string, at *opendata.Point, build func(opendata.Point) *opendata.Query) opendata.Call {
	if at == nil {
		return opendata.Call{Key: dataset}
	}
	return s.call(dataset, build(*at), s.timeouts.Default)
}

// nearbyCall tries the spatial predicates and falls back to an unfiltered
// query. Fallback rows carrying coordinates are filtered to the radius here.
// Without a location only the fallback runs.
func (s *Service) nearbyCall(dataset string, at *opendata.Point, radius int, geoFields []string, fallback *opendata.Query) opendata.Call {
	return opendata.Call{
		Key: dataset,
		Fetch: func(ctx context.Context) opendata.Result {
			res := s.client.FetchNearby(ctx, dataset, at, radius, geoFields, fallback, nearbyLimit)
			if res.Err != nil || res.Spatial || at == nil {
				return res.Result
			}
			return opendata.Result{Records: withinRadius(res.Rows(), *at, float64(radius))}
		},
	}
}

func withinRadius(rows []opendata.Record, at opendata.Point, radius float64) []opendata.Record {
	return domain.Filter(rows, func(r opendata.Record) bool {
		p, ok := r.Point()
		return ok && geo.DistanceMeters(at, p) <= radius
	})
}

func (s *Service) contactsQuery(bbl string) *opendata.Query {
	registrations, _ := s.client.DatasetID(opendata.HPDRegistrations)
	return opendata.NewQuery().
		Where(fmt.Sprintf("registrationid IN (SELECT registrationid FROM %s WHERE bbl=%s)", registrations, opendata.Quote(bbl))).
		Limit(30)
}

// streetName drops the house number from a PLUTO address.
func streetName(address string) string {
	fields := strings.Fields(address)
	if len(fields) < 2 {
		return ""
	}
	return strings.Join(fields[1:], " ")
}
