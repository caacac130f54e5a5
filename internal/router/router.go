package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "carbex/docs" // registers the OpenAPI document
	"carbex/internal/config"
	"carbex/internal/domain"
	"carbex/internal/handler"
	"carbex/internal/metrics"
	"carbex/internal/middleware"
	"carbex/internal/service"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Health    *handler.HealthHandler
	Dashboard *handler.DashboardHandler
	Reports   *handler.ReportHandler
	Exports   *handler.ExportHandler
	Emissions *handler.EmissionHandler
	Settings  *handler.SettingsHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg config.ServerConfig,
	authSvc service.AuthService,
	h Handlers,
	m *metrics.Metrics,
	logger *zap.Logger,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecureHeaders(cfg.IsProduction()))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(m.Middleware())

	// Health checks and operational endpoints
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)
	r.GET("/metrics", gin.WrapH(m.Handler()))
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(authSvc))

	dashboard := v1.Group("/dashboard")
	dashboard.GET("", h.Dashboard.Get)
	dashboard.GET("/kpis", h.Dashboard.Kpis)
	dashboard.GET("/categories", h.Dashboard.Categories)

	// Viewers read; generating and deleting artifacts needs a member role.
	writers := middleware.RequireRole(domain.RoleOwner, domain.RoleAdmin, domain.RoleMember)

	reports := v1.Group("/reports")
	reports.GET("", h.Reports.List)
	reports.POST("", writers, h.Reports.Create)
	reports.POST("/quick", h.Reports.Quick)
	reports.GET("/:id", h.Reports.Get)
	reports.GET("/:id/download", h.Reports.Download)
	reports.GET("/:id/preview", h.Reports.Preview)
	reports.DELETE("/:id", writers, h.Reports.Delete)

	exports := v1.Group("/exports")
	exports.Use(writers)
	exports.POST("/ademe", h.Exports.Ademe)
	exports.POST("/ghg", h.Exports.GHG)
	exports.POST("/word", h.Exports.Word)

	emissions := v1.Group("/emissions")
	emissions.GET("", h.Emissions.List)
	emissions.GET("/export/csv", h.Emissions.ExportCSV)
	emissions.POST("", writers, h.Emissions.Create)
	emissions.GET("/:id", h.Emissions.Get)
	emissions.PUT("/:id", writers, h.Emissions.Update)
	emissions.DELETE("/:id", writers, h.Emissions.Delete)

	// Admin routes - settings management
	settings := v1.Group("/settings")
	settings.Use(middleware.RequireRole(domain.RoleOwner, domain.RoleAdmin))
	settings.GET("", h.Settings.List)
	settings.GET("/:key", h.Settings.Get)
	settings.PUT("/:key", h.Settings.Update)

	return r
}
