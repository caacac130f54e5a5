package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"carbex/internal/metrics"
	"carbex/internal/port"
)

// ReportQueueConfig holds settings for the report queue worker.
type ReportQueueConfig struct {
	PollInterval time.Duration
	Concurrency  int
	JobTimeout   time.Duration
}

// ReportQueueWorker polls for pending reports and runs their exports.
type ReportQueueWorker struct {
	repo    port.ReportRepository
	reports ReportService
	cfg     ReportQueueConfig
	metrics *metrics.Metrics
	logger  *zap.Logger
	wg      sync.WaitGroup
}

// NewReportQueueWorker creates a new ReportQueueWorker.
func NewReportQueueWorker(
	repo port.ReportRepository,
	reports ReportService,
	cfg ReportQueueConfig,
	m *metrics.Metrics,
	logger *zap.Logger,
) *ReportQueueWorker {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportQueueWorker{
		repo:    repo,
		reports: reports,
		cfg:     cfg,
		metrics: m,
		logger:  logger,
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight exports have finished.
func (w *ReportQueueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	w.logger.Info("reportQueueWorker: started",
		zap.Duration("poll", w.cfg.PollInterval), zap.Int("concurrency", w.cfg.Concurrency))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("reportQueueWorker: shutting down, waiting for in-flight exports")
			w.wg.Wait()
			w.logger.Info("reportQueueWorker: shutdown complete")
			return
		case <-ticker.C:
			available := w.cfg.Concurrency - len(sem)
			if available <= 0 {
				continue
			}

			reports, err := w.repo.ClaimPending(ctx, available)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				w.logger.Error("reportQueueWorker: ClaimPending failed", zap.Error(err))
				continue
			}
			w.metrics.QueueClaimed(len(reports))

			for i := range reports {
				report := reports[i]

				sem <- struct{}{}
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-sem }()

					// Detached from the poll context so a claimed report is
					// never left in the generating state on shutdown.
					jobCtx, cancel := context.WithTimeout(context.Background(), w.cfg.JobTimeout)
					defer cancel()

					w.logger.Info("reportQueueWorker: dispatching report",
						zap.String("report_id", report.ID.String()), zap.String("format", string(report.Format)))
					if err := w.reports.Process(jobCtx, &report); err != nil {
						w.logger.Warn("reportQueueWorker: report failed",
							zap.String("report_id", report.ID.String()), zap.Error(err))
					}
				}()
			}
		}
	}
}
