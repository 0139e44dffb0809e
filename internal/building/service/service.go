// Package service aggregates the open-data sources of one building into a
// report.
package service

import (
	"context"
	"runtime/debug"
	"time"

	"buildinghealth_backend/internal/building/domain"
	"buildinghealth_backend/internal/building/repository"
	"buildinghealth_backend/internal/building/transport"
	"buildinghealth_backend/internal/events"
	"buildinghealth_backend/internal/opendata"
	"buildinghealth_backend/platform/apperr"
	"buildinghealth_backend/platform/config"
	"buildinghealth_backend/platform/logger"
)

const (
	msgLookupFailed       = "Failed to fetch data"
	msgHistoryUnavailable = "lookup history is not configured"
	defaultHistoryLimit   = 20
)

// Fetcher is the open-data client used by the service.
type Fetcher interface {
	Fetch(ctx context.Context, dataset string, q *opendata.Query, timeout time.Duration) opendata.Result
	FetchNearby(ctx context.Context, dataset string, at *opendata.Point, radiusMeters int, geoFields []string, fallback *opendata.Query, limit int) opendata.NearbyResult
	DatasetID(name string) (string, bool)
}

// Timeouts are the per-call upstream deadlines.
type Timeouts struct {
	Default   time.Duration
	Core      time.Duration
	Portfolio time.Duration
}

// Service builds building reports.
type Service struct {
	client   Fetcher
	timeouts Timeouts
	bus      events.Bus
	history  repository.Reader
	log      *logger.Logger
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithEventBus publishes BuildingReportGenerated after each lookup.
func WithEventBus(bus events.Bus) Option {
	return func(s *Service) { s.bus = bus }
}

// WithHistory enables the lookup history read path.
func WithHistory(reader repository.Reader) Option {
	return func(s *Service) { s.history = reader }
}

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a building service.
func New(client Fetcher, cfg config.OpenDataConfig, log *logger.Logger, opts ...Option) *Service {
	s := &Service{
		client: client,
		timeouts: Timeouts{
			Default:   cfg.GetOpenDataTimeout(),
			Core:      cfg.GetOpenDataCoreTimeout(),
			Portfolio: cfg.GetOpenDataPortfolioTimeout(),
		},
		log: log,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Lookup fetches every source for bbl and assembles the report. Upstream
// failures degrade to empty sections; only a failure of the assembly itself
// is returned, as an internal error.
func (s *Service) Lookup(ctx context.Context, bbl domain.BBL) (report *transport.Report, err error) {
	ctx = context.WithValue(ctx, logger.BBLKey, bbl.String())
	log := s.log.WithContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			log.Error("building lookup panicked", "panic", r, "stack", string(debug.Stack()))
			report = nil
			err = apperr.Internal(msgLookupFailed).WithOp("building.Lookup")
		}
	}()

	now := s.now().UTC()
	w := newWindows(now)

	// Phase 1: the tax-lot record supplies the coordinates for phase 2.
	plutoRes := s.client.Fetch(ctx, opendata.Pluto, opendata.NewQuery().Eq("bbl", bbl.String()).Limit(1), s.timeouts.Core)
	var pluto opendata.Record
	if rows := plutoRes.Rows(); len(rows) > 0 {
		pluto = rows[0]
	}
	at := plutoPoint(pluto)

	// Phase 2: independent keyed fan-out.
	results := opendata.FetchAll(ctx, 0, s.plan(bbl, pluto, at, w))
	if failed := results.Failed(); len(failed) > 0 {
		log.Debug("upstream sources degraded", "count", len(failed), "datasets", failed)
	}

	b := &reportBuilder{bbl: bbl, pluto: pluto, at: at, rs: results, w: w, now: now}
	report = b.build()

	// Phase 3: landlord portfolio, outside the main fan-out.
	if id := report.Landlord.RegistrationID; id != "" {
		s.attachPortfolio(ctx, bbl, id, &report.Landlord)
	}

	s.publish(ctx, bbl, report, now)
	return report, nil
}

func (s *Service) attachPortfolio(ctx context.Context, bbl domain.BBL, registrationID string, landlord *transport.Landlord) {
	q := opendata.NewQuery().
		Eq("registrationid", registrationID).
		Select("bbl", "housenumber", "streetname", "zip", "borough").
		Limit(portfolioFetchLimit)
	res := s.client.Fetch(ctx, opendata.HPDRegistrations, q, s.timeouts.Portfolio)
	landlord.PortfolioSize, landlord.Portfolio = portfolio(bbl, res.Rows())
}

func (s *Service) publish(ctx context.Context, bbl domain.BBL, report *transport.Report, at time.Time) {
	if s.bus == nil {
		return
	}
	portfolio := make([]string, 0, len(report.Landlord.Portfolio))
	for _, p := range report.Landlord.Portfolio {
		if p.BBL != "" {
			portfolio = append(portfolio, p.BBL)
		}
	}
	address := ""
	if report.Building != nil {
		address = report.Building.AddressDisplay
	}
	s.bus.Publish(ctx, events.BuildingReportGenerated{
		BaseEvent:     events.NewBaseEventAt(at),
		BBL:           bbl.String(),
		Address:       address,
		Score:         report.Score.Overall,
		Grade:         report.Score.Grade,
		Label:         report.Score.Label,
		RedFlags:      len(report.RedFlags),
		PortfolioBBLs: portfolio,
	})
}
