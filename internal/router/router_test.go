package router_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"carbex/internal/config"
	"carbex/internal/domain"
	"carbex/internal/handler"
	"carbex/internal/metrics"
	"carbex/internal/router"
	"carbex/internal/service"
	"carbex/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	engine    *gin.Engine
	auth      *mocks.MockAuthService
	reports   *mocks.MockReportService
	settings  *mocks.MockSettingsService
	dashboard *mocks.MockDashboardService
}

func newFixture() *fixture {
	f := &fixture{
		auth:      new(mocks.MockAuthService),
		reports:   new(mocks.MockReportService),
		settings:  new(mocks.MockSettingsService),
		dashboard: new(mocks.MockDashboardService),
	}
	for token, role := range map[string]domain.UserRole{"viewer": domain.RoleViewer, "member": domain.RoleMember, "admin": domain.RoleAdmin} {
		f.auth.On("ValidateToken", token).Return(&service.Claims{
			OrganizationID: uuid.New(), UserID: uuid.New(), Role: role,
		}, nil)
	}

	f.engine = router.Setup(config.ServerConfig{Environment: "development"}, f.auth, router.Handlers{
		Health:    handler.NewHealthHandler(),
		Dashboard: handler.NewDashboardHandler(f.dashboard),
		Reports:   handler.NewReportHandler(f.reports),
		Exports:   handler.NewExportHandler(f.reports),
		Emissions: handler.NewEmissionHandler(new(mocks.MockEmissionService)),
		Settings:  handler.NewSettingsHandler(f.settings),
	}, metrics.New(), zap.NewNop())
	return f
}

func (f *fixture) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func TestRouter_PublicEndpoints(t *testing.T) {
	f := newFixture()
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/healthz", "", "").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/readyz", "", "").Code)

	// counters appear once a request has been observed

	w := f.do(http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "carbex_http_requests_total")
}

func TestRouter_APIRequiresToken(t *testing.T) {
	f := newFixture()
	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/v1/reports", "", "").Code)
	assert.NotEmpty(t, f.do(http.MethodGet, "/healthz", "", "").Header().Get("X-Request-ID"))
}

func TestRouter_RoleGates(t *testing.T) {
	f := newFixture()
	f.reports.On("List", mock.Anything, mock.Anything, 1, 0).Return([]domain.Report{}, 0, nil)
	f.reports.On("Generate", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
	f.settings.On("List", mock.Anything).Return([]domain.Setting{}, nil)

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/v1/reports", "viewer", "").Code)
	assert.Equal(t, http.StatusForbidden, f.do(http.MethodPost, "/api/v1/exports/ademe", "viewer", `{"year":2024}`).Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodPost, "/api/v1/exports/ademe", "member", `{"year":2024}`).Code)

	assert.Equal(t, http.StatusForbidden, f.do(http.MethodGet, "/api/v1/settings", "member", "").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/v1/settings", "admin", "").Code)
}
