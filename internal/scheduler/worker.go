package scheduler

import (
	"context"
	"fmt"

	"buildinghealth_backend/internal/building"
	"buildinghealth_backend/internal/building/domain"
	"buildinghealth_backend/platform/config"
	"buildinghealth_backend/platform/logger"

	"github.com/hibiken/asynq"
)

type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	reporter building.Reporter
	log      *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, reporter building.Reporter, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:   server,
		mux:      mux,
		reporter: reporter,
		log:      log,
	}

	mux.HandleFunc(TaskWarmBuildingReport, w.handleWarmBuildingReport)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

// handleWarmBuildingReport runs a lookup and discards the report. Malformed
// payloads are not retried.
func (w *Worker) handleWarmBuildingReport(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseWarmBuildingReportPayload(task)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	bbl, err := domain.ParseBBL(payload.BBL)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	if _, err := w.reporter.Lookup(ctx, bbl); err != nil {
		return err
	}
	w.log.WithContext(ctx).Debug("building report warmed", "bbl", bbl.String(), "source", payload.SourceBBL)
	return nil
}
