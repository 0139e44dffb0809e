package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"buildinghealth_backend/internal/building/domain"
	"buildinghealth_backend/internal/building/transport"
	"buildinghealth_backend/internal/events"
	"buildinghealth_backend/platform/logger"

	"github.com/hibiken/asynq"
)

type fakeWarmer struct {
	mu       sync.Mutex
	payloads []WarmBuildingReportPayload
	failBBL  string
}

func (f *fakeWarmer) EnqueueReportWarm(_ context.Context, p WarmBuildingReportPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.BBL == f.failBBL {
		return errors.New("redis down")
	}
	f.payloads = append(f.payloads, p)
	return nil
}

func TestPortfolioWarmerEnqueuesDistinctOtherBuildings(t *testing.T) {
	warmer := &fakeWarmer{}
	p := NewPortfolioWarmer(warmer, 2, logger.Discard())

	err := p.Handle(context.Background(), events.BuildingReportGenerated{
		BBL:           "1000010001",
		PortfolioBBLs: []string{"1000010001", "", "2000020002", "2000020002", "3000030003", "4000040004"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warmer.payloads) != 2 {
		t.Fatalf("expected 2 warm-ups, got %d", len(warmer.payloads))
	}
	if warmer.payloads[0].BBL != "2000020002" || warmer.payloads[1].BBL != "3000030003" {
		t.Fatalf("unexpected warm-up order: %+v", warmer.payloads)
	}
	if warmer.payloads[0].SourceBBL != "1000010001" {
		t.Fatalf("expected source bbl recorded, got %q", warmer.payloads[0].SourceBBL)
	}
}

func TestPortfolioWarmerReportsEnqueueFailures(t *testing.T) {
	warmer := &fakeWarmer{failBBL: "2000020002"}
	p := NewPortfolioWarmer(warmer, 0, logger.Discard())

	err := p.Handle(context.Background(), events.BuildingReportGenerated{
		BBL:           "1000010001",
		PortfolioBBLs: []string{"2000020002", "3000030003"},
	})
	if err == nil {
		t.Fatalf("expected enqueue failure to surface")
	}
	if len(warmer.payloads) != 1 || warmer.payloads[0].BBL != "3000030003" {
		t.Fatalf("expected remaining buildings still enqueued, got %+v", warmer.payloads)
	}
}

type fakeReporter struct {
	calls []domain.BBL
	err   error
}

func (f *fakeReporter) Lookup(_ context.Context, bbl domain.BBL) (*transport.Report, error) {
	f.calls = append(f.calls, bbl)
	return &transport.Report{}, f.err
}

func TestWarmTaskRunsLookup(t *testing.T) {
	reporter := &fakeReporter{}
	w := &Worker{reporter: reporter, log: logger.Discard()}

	task, err := NewWarmBuildingReportTask(WarmBuildingReportPayload{BBL: "1-00001-0001"})
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	if err := w.handleWarmBuildingReport(context.Background(), task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reporter.calls) != 1 || reporter.calls[0] != "1000010001" {
		t.Fatalf("expected normalized lookup, got %v", reporter.calls)
	}
}

func TestWarmTaskSkipsRetryOnBadPayload(t *testing.T) {
	w := &Worker{reporter: &fakeReporter{}, log: logger.Discard()}

	err := w.handleWarmBuildingReport(context.Background(), asynq.NewTask(TaskWarmBuildingReport, []byte("{")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry for malformed payload, got %v", err)
	}

	task, _ := NewWarmBuildingReportTask(WarmBuildingReportPayload{BBL: "no digits"})
	if err := w.handleWarmBuildingReport(context.Background(), task); !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry for invalid bbl, got %v", err)
	}
}

type fakePruner struct {
	before time.Time
}

func (f *fakePruner) DeleteBefore(_ context.Context, before time.Time) (int64, error) {
	f.before = before
	return 3, nil
}

func TestHistoryCleanupUsesRetention(t *testing.T) {
	pruner := &fakePruner{}
	c := NewHistoryCleanup(pruner, logger.Discard(), 0, 48*time.Hour)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.cleanup(context.Background())

	if want := now.Add(-48 * time.Hour); !pruner.before.Equal(want) {
		t.Fatalf("expected cutoff %v, got %v", want, pruner.before)
	}
}
