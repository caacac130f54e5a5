// @title                      Carbex API
// @version                    1.0
// @description                Carbon footprint dashboards and regulatory report exports.
// @BasePath                   /api/v1
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"carbex/internal/app"
	"carbex/internal/config"
	"carbex/internal/logger"
	"carbex/internal/service"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	lg, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = lg.Sync() }()
	zap.ReplaceGlobals(lg)

	a, err := app.New(cfg, lg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			lg.Warn("closing resources", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker := service.NewReportQueueWorker(a.ReportRepo, a.Reports, service.ReportQueueConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		Concurrency:  cfg.Queue.Concurrency,
		JobTimeout:   time.Duration(cfg.Queue.JobTimeoutSecs) * time.Second,
	}, a.Metrics, lg)
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Start(ctx)
	}()

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      a.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	serveErr := make(chan error, 1)
	go func() {
		lg.Info("server starting", zap.String("addr", cfg.Server.Port), zap.String("pdf_engine", cfg.PDF.Engine))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			stop()
			<-workerDone
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	lg.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("http shutdown", zap.Error(err))
	}
	<-workerDone
	return nil
}
