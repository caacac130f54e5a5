// Package app assembles the carbex object graph shared by the server and
// the carbexctl command line.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"carbex/internal/cache"
	"carbex/internal/config"
	"carbex/internal/email/noop"
	"carbex/internal/email/ses"
	"carbex/internal/handler"
	"carbex/internal/metrics"
	"carbex/internal/pdf"
	"carbex/internal/port"
	"carbex/internal/repository/postgres"
	"carbex/internal/router"
	"carbex/internal/service"
	s3storage "carbex/internal/storage/s3"
)

// App holds the wired services and the resources they depend on.
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *metrics.Metrics

	DB       *sqlx.DB
	Redis    *redis.Client
	Renderer pdf.Renderer

	ReportRepo   port.ReportRepository
	CategoryRepo port.CategoryRepository

	Auth      service.AuthService
	Settings  service.SettingsService
	Dashboard service.DashboardService
	Reports   service.ReportService
	Emissions service.EmissionService
}

// New connects to every backing service and wires the domain services.
// Close must be called once the App is no longer needed.
func New(cfg *config.Config, lg *zap.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: lg, Metrics: metrics.New()}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	a.DB = db

	orgRepo := postgres.NewOrganizationRepo(db)
	siteRepo := postgres.NewSiteRepo(db)
	emissionRepo := postgres.NewEmissionRepo(db)
	actionRepo := postgres.NewActionRepo(db)
	settingRepo := postgres.NewSettingRepo(db)
	a.ReportRepo = postgres.NewReportRepo(db)
	a.CategoryRepo = postgres.NewCategoryRepo(db)

	storage, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	a.Redis = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	sender, err := newEmailSender(cfg.Email, lg)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to initialize email sender: %w", err)
	}

	templates, err := pdf.LoadTemplates()
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to load report templates: %w", err)
	}
	a.Renderer, err = pdf.NewRenderer(cfg.PDF, lg)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to initialize pdf renderer: %w", err)
	}

	a.Settings = service.NewSettingsService(settingRepo, cache.New(a.Redis, cfg.Reports.SettingsCacheTTL), lg)
	a.Dashboard = service.NewDashboardService(emissionRepo, cache.New(a.Redis, cfg.Reports.DashboardCacheTTL), lg)
	builder := service.NewReportBuilder(orgRepo, siteRepo, a.Dashboard)
	artifacts := service.NewArtifactStore(storage, cfg.Reports.TempDir, lg)

	a.Reports = service.NewReportService(a.ReportRepo, builder, a.Dashboard, service.Exporters{
		Ademe: service.NewAdemeExporter(builder, orgRepo, actionRepo, a.Settings, artifacts),
		GHG:   service.NewGhgExporter(orgRepo, emissionRepo, a.ReportRepo, artifacts),
		Word:  service.NewWordReportGenerator(builder, actionRepo, a.Settings, artifacts),
		PDF:   service.NewPdfGenerator(templates, a.Renderer, a.Settings, artifacts),
	}, artifacts, storage, sender, time.Duration(cfg.S3.PresignExpiry)*time.Second, a.Metrics, lg)
	a.Emissions = service.NewEmissionService(emissionRepo, a.CategoryRepo, siteRepo, a.Dashboard, lg)
	a.Auth = service.NewAuthService(cfg.JWT)

	return a, nil
}

// Router builds the HTTP engine serving the wired services.
func (a *App) Router() *gin.Engine {
	health := handler.NewHealthHandler(
		handler.HealthCheck{Name: "database", Ping: a.DB.PingContext},
		handler.HealthCheck{Name: "redis", Ping: func(ctx context.Context) error { return a.Redis.Ping(ctx).Err() }},
		handler.HealthCheck{Name: "pdf", Ping: a.Renderer.Ping},
	)
	return router.Setup(a.Config.Server, a.Auth, router.Handlers{
		Health:    health,
		Dashboard: handler.NewDashboardHandler(a.Dashboard),
		Reports:   handler.NewReportHandler(a.Reports),
		Exports:   handler.NewExportHandler(a.Reports),
		Emissions: handler.NewEmissionHandler(a.Emissions),
		Settings:  handler.NewSettingsHandler(a.Settings),
	}, a.Metrics, a.Logger)
}

// Close releases the renderer, Redis and database handles.
func (a *App) Close() error {
	var errs []error
	if a.Renderer != nil {
		errs = append(errs, a.Renderer.Close())
	}
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}

func newEmailSender(cfg config.EmailConfig, lg *zap.Logger) (port.EmailSender, error) {
	if cfg.Provider == "ses" {
		return ses.NewSESSender(cfg.Region, cfg.FromAddress, cfg.FromName, cfg.FrontendURL)
	}
	return noop.NewNoopSender(cfg.FrontendURL, lg), nil
}
