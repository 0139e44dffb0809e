package events

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"buildinghealth_backend/platform/logger"
)

type pinged struct{ BaseEvent }

func (pinged) EventName() string { return "test.pinged" }

func TestPublishRunsAllHandlers(t *testing.T) {
	bus := NewInMemoryBus(logger.Discard())
	var calls atomic.Int32
	for i := 0; i < 3; i++ {
		bus.Subscribe("test.pinged", HandlerFunc(func(context.Context, Event) error {
			calls.Add(1)
			return nil
		}))
	}

	bus.Publish(context.Background(), pinged{NewBaseEvent()})
	bus.Wait()

	if calls.Load() != 3 {
		t.Fatalf("expected 3 handler calls, got %d", calls.Load())
	}
}

func TestPublishSurvivesCancelledCaller(t *testing.T) {
	bus := NewInMemoryBus(logger.Discard())
	var ctxErr atomic.Value
	bus.Subscribe("test.pinged", HandlerFunc(func(ctx context.Context, _ Event) error {
		ctxErr.Store(ctx.Err() == nil)
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bus.Publish(ctx, pinged{NewBaseEvent()})
	bus.Wait()

	if ok, _ := ctxErr.Load().(bool); !ok {
		t.Fatalf("expected handler context detached from cancelled caller")
	}
}

func TestPublishSyncJoinsErrorsAndRecoversPanics(t *testing.T) {
	bus := NewInMemoryBus(logger.Discard())
	sentinel := errors.New("nope")
	bus.Subscribe("test.pinged", HandlerFunc(func(context.Context, Event) error { return sentinel }))
	bus.Subscribe("test.pinged", HandlerFunc(func(context.Context, Event) error { panic("boom") }))

	err := bus.PublishSync(context.Background(), pinged{NewBaseEvent()})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected joined error to contain sentinel, got %v", err)
	}
}

func TestPublishWithoutSubscribersIsNoop(t *testing.T) {
	bus := NewInMemoryBus(logger.Discard())
	bus.Publish(context.Background(), pinged{NewBaseEvent()})
	bus.Wait()
}
