package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"carbex/internal/middleware"
)

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CORS([]string{"https://app.carbex.fr"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req, _ := http.NewRequest(http.MethodGet, "/x", http.NoBody)
	req.Header.Set("Origin", "https://app.carbex.fr")
	w := serve(r, req)
	assert.Equal(t, "https://app.carbex.fr", w.Header().Get("Access-Control-Allow-Origin"))

	req, _ = http.NewRequest(http.MethodGet, "/x", http.NoBody)
	req.Header.Set("Origin", "https://evil.example")
	w = serve(r, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req, _ = http.NewRequest(http.MethodOptions, "/x", http.NoBody)
	req.Header.Set("Origin", "https://app.carbex.fr")
	w = serve(r, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequestIDAndLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusBadGateway) })

	req, _ := http.NewRequest(http.MethodGet, "/ok", http.NoBody)
	req.Header.Set("X-Request-ID", "req-42")
	w := serve(r, req)
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))

	req, _ = http.NewRequest(http.MethodGet, "/boom", http.NoBody)
	w = serve(r, req)
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "req-42", entries[0].ContextMap()["request_id"])
		assert.Equal(t, zap.ErrorLevel, entries[1].Level)
		assert.EqualValues(t, http.StatusBadGateway, entries[1].ContextMap()["status"])
	}
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	r := gin.New()
	r.Use(middleware.Recovery(zap.New(core)))
	r.GET("/panic", func(c *gin.Context) { panic("nil map") })

	req, _ := http.NewRequest(http.MethodGet, "/panic", http.NoBody)
	w := serve(r, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", errorCode(t, w))
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestSecureHeaders(t *testing.T) {
	r := gin.New()
	r.Use(middleware.SecureHeaders(false))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/x", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestSecureHeaders_ProductionRedirectsHTTP(t *testing.T) {
	r := gin.New()
	r.Use(middleware.SecureHeaders(true))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req, _ := http.NewRequest(http.MethodGet, "http://api.carbex.fr/x", http.NoBody)
	w := serve(r, req)
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "https://api.carbex.fr/x", w.Header().Get("Location"))
}
