package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/syndicate-plus/syndicate-service/internal/config"
	"github.com/syndicate-plus/syndicate-service/internal/service"
)

// EnrichmentWorker polls the job queue on an interval and hands batches
// to the enrichment service. Multiple instances are safe: claiming uses
// SKIP LOCKED so no job is processed twice.
type EnrichmentWorker struct {
	svc    *service.EnrichmentService
	logger *zap.Logger
	cfg    config.EnrichmentConfig

	stop chan struct{}
	done sync.WaitGroup
	once sync.Once
}

// NewEnrichmentWorker creates a worker around the enrichment service.
func NewEnrichmentWorker(svc *service.EnrichmentService, logger *zap.Logger, cfg config.EnrichmentConfig) *EnrichmentWorker {
	return &EnrichmentWorker{
		svc:    svc,
		logger: logger,
		cfg:    cfg,
		stop:   make(chan struct{}),
	}
}

// Start launches the polling loop. It returns immediately; the loop
// runs until Stop is called or ctx is cancelled.
func (w *EnrichmentWorker) Start(ctx context.Context) {
	if !w.cfg.Enabled {
		w.logger.Info("enrichment worker disabled")
		return
	}

	w.done.Add(1)
	go func() {
		defer w.done.Done()

		ticker := time.NewTicker(w.cfg.PollInterval())
		defer ticker.Stop()

		w.logger.Info("enrichment worker started",
			zap.Duration("poll_interval", w.cfg.PollInterval()),
			zap.Int("batch_size", w.cfg.BatchSize))

		for {
			select {
			case <-ctx.Done():
				w.logger.Info("enrichment worker stopping", zap.String("reason", "context cancelled"))
				return
			case <-w.stop:
				w.logger.Info("enrichment worker stopping", zap.String("reason", "stop requested"))
				return
			case <-ticker.C:
				w.poll(ctx)
			}
		}
	}()
}

// poll runs one claim-and-process cycle plus a stale-firm sweep. A poll
// never outlives one full interval.
func (w *EnrichmentWorker) poll(ctx context.Context) {
	pollCtx, cancel := context.WithTimeout(ctx, w.cfg.PollInterval())
	defer cancel()

	queued, err := w.svc.QueueStaleFirms(pollCtx)
	if err != nil {
		w.logger.Warn("stale firm sweep failed", zap.Error(err))
	} else if queued > 0 {
		w.logger.Info("queued stale firm refreshes", zap.Int("count", queued))
	}

	processed, err := w.svc.ProcessJobs(pollCtx)
	if err != nil {
		w.logger.Warn("job processing failed", zap.Error(err))
		return
	}
	if processed > 0 {
		w.logger.Info("processed enrichment jobs", zap.Int("count", processed))
	}
}

// Stop signals the loop to exit and waits for the in-flight poll.
func (w *EnrichmentWorker) Stop() {
	w.once.Do(func() { close(w.stop) })
	w.done.Wait()
}
