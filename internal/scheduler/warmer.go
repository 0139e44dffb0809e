package scheduler

import (
	"context"
	"errors"

	"buildinghealth_backend/internal/events"
	"buildinghealth_backend/platform/logger"
)

// defaultWarmLimit bounds the warm-ups enqueued per report.
const defaultWarmLimit = 5

// PortfolioWarmer enqueues background lookups of the other buildings in a
// landlord's portfolio after a report is generated, so follow-up lookups are
// served from the upstream cache.
type PortfolioWarmer struct {
	warmer ReportWarmer
	limit  int
	log    *logger.Logger
}

func NewPortfolioWarmer(warmer ReportWarmer, limit int, log *logger.Logger) *PortfolioWarmer {
	if limit <= 0 {
		limit = defaultWarmLimit
	}
	return &PortfolioWarmer{warmer: warmer, limit: limit, log: log}
}

// RegisterHandlers subscribes to generated reports.
func (p *PortfolioWarmer) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.BuildingReportGenerated{}.EventName(), p)
}

func (p *PortfolioWarmer) Handle(ctx context.Context, event events.Event) error {
	e, ok := event.(events.BuildingReportGenerated)
	if !ok || p.warmer == nil {
		return nil
	}

	var errs []error
	seen := map[string]bool{e.BBL: true}
	enqueued := 0
	for _, bbl := range e.PortfolioBBLs {
		if enqueued == p.limit {
			break
		}
		if bbl == "" || seen[bbl] {
			continue
		}
		seen[bbl] = true
		if err := p.warmer.EnqueueReportWarm(ctx, WarmBuildingReportPayload{BBL: bbl, SourceBBL: e.BBL}); err != nil {
			errs = append(errs, err)
			continue
		}
		enqueued++
	}
	if enqueued > 0 {
		p.log.WithContext(ctx).Debug("portfolio warm-ups enqueued", "bbl", e.BBL, "count", enqueued)
	}
	return errors.Join(errs...)
}
