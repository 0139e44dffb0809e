package building

import (
	"context"

	"buildinghealth_backend/internal/building/handler"
	"buildinghealth_backend/internal/building/repository"
	"buildinghealth_backend/internal/building/service"
	"buildinghealth_backend/internal/events"
	apphttp "buildinghealth_backend/internal/http"
	"buildinghealth_backend/platform/config"
	"buildinghealth_backend/platform/httpkit"
	"buildinghealth_backend/platform/logger"
	"buildinghealth_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CacheControl is sent with building reports so edges can serve them.
const CacheControl = "public, s-maxage=300, stale-while-revalidate=86400"

// Config combines the settings the module reads.
type Config interface {
	config.OpenDataConfig
	config.RateLimitConfig
}

// Module is the building bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
	limiter *httpkit.IPRateLimiter
	log     *logger.Logger
}

// NewModule creates the building module. pool may be nil, in which case
// lookups are not recorded and the history endpoint answers 503.
func NewModule(client service.Fetcher, pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, cfg Config, log *logger.Logger) (*Module, error) {
	if err := handler.RegisterValidations(val); err != nil {
		return nil, err
	}

	m := &Module{
		limiter: httpkit.NewPerMinuteLimiter(cfg.GetLookupRatePerMinute(), cfg.GetLookupRateBurst(), log),
		log:     log,
	}

	opts := []service.Option{service.WithEventBus(bus)}
	if pool != nil {
		repo := repository.New(pool)
		m.repo = repo
		opts = append(opts, service.WithHistory(repo))
	}

	m.service = service.New(client, cfg, log, opts...)
	m.handler = handler.New(m.service, val)
	return m, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "building"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts building routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.API.Group("/building", m.limiter.RateLimit())
	group.GET("", httpkit.CacheControl(CacheControl), m.handler.Lookup)
	group.GET("/history", m.handler.History)
}

// RegisterHandlers subscribes to domain events for recording lookups.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.BuildingReportGenerated{}.EventName(), m)
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.BuildingReportGenerated:
		return m.recordLookup(ctx, e)
	default:
		return nil
	}
}

func (m *Module) recordLookup(ctx context.Context, e events.BuildingReportGenerated) error {
	if m.repo == nil {
		return nil
	}
	err := m.repo.Insert(ctx, repository.Lookup{
		BBL:        e.BBL,
		Address:    e.Address,
		Score:      e.Score,
		Grade:      e.Grade,
		Label:      e.Label,
		RedFlags:   e.RedFlags,
		LookedUpAt: e.OccurredAt(),
	})
	if err != nil {
		m.log.DatabaseError("record building lookup", err)
	}
	return err
}

var (
	_ apphttp.Module = (*Module)(nil)
	_ Reporter       = (*service.Service)(nil)
)
