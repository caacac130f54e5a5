package handler

import (
	"github.com/gin-gonic/gin"

	"carbex/internal/service"
)

// DashboardHandler serves the dashboard KPIs and breakdowns.
type DashboardHandler struct {
	dashboard service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboard service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Get handles GET /api/v1/dashboard
// @Summary      Dashboard payload
// @Description  KPIs, scope breakdown, monthly trend, top categories and site comparison for a window
// @Tags         dashboard
// @Produce      json
// @Param        year query int false "Calendar year (default: current year)"
// @Param        start_date query string false "Start date (YYYY-MM-DD)"
// @Param        end_date query string false "End date (YYYY-MM-DD)"
// @Param        site_id query string false "Site UUID"
// @Success      200 {object} Response{data=domain.DashboardData}
// @Failure      400 {object} ErrorResponseBody
// @Failure      401 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	q, ok := parseQueryWindow(c, orgID)
	if !ok {
		return
	}

	data, err := h.dashboard.Dashboard(c.Request.Context(), q)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, data)
}

// Kpis handles GET /api/v1/dashboard/kpis
// @Summary      Headline KPIs
// @Description  Total, per-scope split and comparison with the preceding window
// @Tags         dashboard
// @Produce      json
// @Param        year query int false "Calendar year"
// @Param        start_date query string false "Start date (YYYY-MM-DD)"
// @Param        end_date query string false "End date (YYYY-MM-DD)"
// @Param        site_id query string false "Site UUID"
// @Success      200 {object} Response{data=domain.Kpis}
// @Failure      400 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /dashboard/kpis [get]
func (h *DashboardHandler) Kpis(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	q, ok := parseQueryWindow(c, orgID)
	if !ok {
		return
	}

	kpis, err := h.dashboard.Kpis(c.Request.Context(), q)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, kpis)
}

// Categories handles GET /api/v1/dashboard/categories
// @Summary      Category breakdown
// @Description  Per-category totals with their share of the scope total
// @Tags         dashboard
// @Produce      json
// @Param        year query int false "Calendar year"
// @Param        scope query int false "Restrict to one scope (1-3)"
// @Param        site_id query string false "Site UUID"
// @Success      200 {object} Response{data=[]domain.CategoryBreakdownEntry}
// @Failure      400 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /dashboard/categories [get]
func (h *DashboardHandler) Categories(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	q, ok := parseQueryWindow(c, orgID)
	if !ok {
		return
	}

	entries, err := h.dashboard.CategoryBreakdown(c.Request.Context(), q)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, entries)
}
