package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carbex/internal/service"
)

// SettingsHandler exposes the key/value settings to administrators.
type SettingsHandler struct {
	settings service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settings service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// List handles GET /api/v1/settings
// @Summary      List settings
// @Tags         settings
// @Produce      json
// @Success      200 {object} Response{data=[]domain.Setting}
// @Failure      403 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /settings [get]
func (h *SettingsHandler) List(c *gin.Context) {
	settings, err := h.settings.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, settings)
}

// Get handles GET /api/v1/settings/:key
// @Summary      Get a setting
// @Tags         settings
// @Produce      json
// @Param        key path string true "Setting key" example(branding.tool_name)
// @Success      200 {object} Response{data=map[string]string}
// @Failure      404 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /settings/{key} [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	key := c.Param("key")
	value, err := h.settings.Get(c.Request.Context(), key)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"key": key, "value": value})
}

// Update handles PUT /api/v1/settings/:key
// @Summary      Update a setting
// @Description  Drops every cached setting so documents pick up the new value
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        key path string true "Setting key"
// @Param        body body UpdateSettingRequest true "New value"
// @Success      200 {object} Response{data=domain.Setting}
// @Failure      400 {object} ErrorResponseBody
// @Failure      403 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /settings/{key} [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	setting, err := h.settings.Set(c.Request.Context(), c.Param("key"), req.Value)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, setting)
}
