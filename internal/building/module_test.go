package building

import (
	"context"
	"errors"
	"testing"
	"time"

	"buildinghealth_backend/internal/building/repository"
	"buildinghealth_backend/internal/events"
	"buildinghealth_backend/platform/logger"
)

type fakeRepo struct {
	inserted []repository.Lookup
	err      error
}

func (f *fakeRepo) Insert(_ context.Context, lookup repository.Lookup) error {
	f.inserted = append(f.inserted, lookup)
	return f.err
}

func (f *fakeRepo) ListByBBL(context.Context, string, int) ([]repository.Lookup, error) {
	return nil, nil
}

func (f *fakeRepo) DeleteBefore(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func TestHandleRecordsLookup(t *testing.T) {
	repo := &fakeRepo{}
	m := &Module{repo: repo, log: logger.Discard()}
	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	err := m.Handle(context.Background(), events.BuildingReportGenerated{
		BaseEvent: events.BaseEvent{Timestamp: at},
		BBL:       "1000010001",
		Address:   "100 Main Street",
		Score:     42,
		Grade:     "F",
		Label:     "Critical",
		RedFlags:  3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("expected one insert, got %d", len(repo.inserted))
	}
	got := repo.inserted[0]
	if got.BBL != "1000010001" || got.Score != 42 || got.RedFlags != 3 || !got.LookedUpAt.Equal(at) {
		t.Fatalf("unexpected lookup %+v", got)
	}
}

func TestHandleReturnsInsertError(t *testing.T) {
	repo := &fakeRepo{err: errors.New("connection refused")}
	m := &Module{repo: repo, log: logger.Discard()}

	if err := m.Handle(context.Background(), events.BuildingReportGenerated{BBL: "1000010001"}); err == nil {
		t.Fatalf("expected insert error to surface")
	}
}

func TestHandleWithoutRepositoryIsNoop(t *testing.T) {
	m := &Module{log: logger.Discard()}
	if err := m.Handle(context.Background(), events.BuildingReportGenerated{BBL: "1000010001"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
