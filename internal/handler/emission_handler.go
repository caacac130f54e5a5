package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"carbex/internal/csvexport"
	"carbex/internal/service"
)

// EmissionHandler handles emission record endpoints.
type EmissionHandler struct {
	emissionService service.EmissionService
}

// NewEmissionHandler creates a new EmissionHandler.
func NewEmissionHandler(emissionService service.EmissionService) *EmissionHandler {
	return &EmissionHandler{emissionService: emissionService}
}

// List handles GET /api/v1/emissions
// @Summary      List emission records
// @Tags         emissions
// @Produce      json
// @Param        year query int false "Calendar year (default: current year)"
// @Param        start_date query string false "Start date (YYYY-MM-DD)"
// @Param        end_date query string false "End date (YYYY-MM-DD)"
// @Param        site_id query string false "Site UUID"
// @Param        scope query int false "Scope (1-3)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size (max 500)" default(50)
// @Success      200 {object} Response{data=[]domain.EmissionRecord,meta=PagMeta}
// @Failure      400 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /emissions [get]
func (h *EmissionHandler) List(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	q, ok := parseQueryWindow(c, orgID)
	if !ok {
		return
	}
	page, pageSize, ok := parsePaging(c)
	if !ok {
		return
	}

	records, total, err := h.emissionService.List(c.Request.Context(), q, page, pageSize)
	if err != nil {
		HandleError(c, err)
		return
	}
	if page < 1 {
		page = 1
	}
	RespondPaginated(c, records, PagMeta{Total: total, Page: page, PageSize: len(records)})
}

// Create handles POST /api/v1/emissions
// @Summary      Record an emission
// @Description  co2e_kg is computed as quantity times factor_value, rounded to 4 decimals
// @Tags         emissions
// @Accept       json
// @Produce      json
// @Param        body body service.EmissionInput true "Emission record"
// @Success      201 {object} Response{data=domain.EmissionRecord}
// @Failure      400 {object} ErrorResponseBody
// @Failure      404 {object} ErrorResponseBody "Unknown category or site"
// @Security     BearerAuth
// @Router       /emissions [post]
func (h *EmissionHandler) Create(c *gin.Context) {
	orgID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	var in service.EmissionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	record, err := h.emissionService.Create(c.Request.Context(), orgID, userID, in)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, record)
}

// Get handles GET /api/v1/emissions/:id
// @Summary      Get an emission record
// @Tags         emissions
// @Produce      json
// @Param        id path string true "Record ID"
// @Success      200 {object} Response{data=domain.EmissionRecord}
// @Failure      404 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /emissions/{id} [get]
func (h *EmissionHandler) Get(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	record, err := h.emissionService.Get(c.Request.Context(), orgID, id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, record)
}

// Update handles PUT /api/v1/emissions/:id
// @Summary      Update an emission record
// @Tags         emissions
// @Accept       json
// @Produce      json
// @Param        id path string true "Record ID"
// @Param        body body service.EmissionInput true "Emission record"
// @Success      200 {object} Response{data=domain.EmissionRecord}
// @Failure      400 {object} ErrorResponseBody
// @Failure      404 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /emissions/{id} [put]
func (h *EmissionHandler) Update(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var in service.EmissionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	record, err := h.emissionService.Update(c.Request.Context(), orgID, id, in)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, record)
}

// Delete handles DELETE /api/v1/emissions/:id
// @Summary      Delete an emission record
// @Tags         emissions
// @Produce      json
// @Param        id path string true "Record ID"
// @Success      200 {object} Response{data=MessageResponse}
// @Failure      404 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /emissions/{id} [delete]
func (h *EmissionHandler) Delete(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.emissionService.Delete(c.Request.Context(), orgID, id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, MessageResponse{Message: "emission record deleted"})
}

// ExportCSV handles GET /api/v1/emissions/export/csv
// @Summary      Export emission records as CSV
// @Description  Semicolon separated, UTF-8 with BOM, decimal comma
// @Tags         emissions
// @Produce      text/csv
// @Param        year query int false "Calendar year (default: current year)"
// @Param        start_date query string false "Start date (YYYY-MM-DD)"
// @Param        end_date query string false "End date (YYYY-MM-DD)"
// @Param        site_id query string false "Site UUID"
// @Param        scope query int false "Scope (1-3)"
// @Success      200 {file} file
// @Failure      400 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /emissions/export/csv [get]
func (h *EmissionHandler) ExportCSV(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	q, ok := parseQueryWindow(c, orgID)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.emissionService.Export(c.Request.Context(), q, &buf); err != nil {
		HandleError(c, err)
		return
	}
	sendAttachment(c, "text/csv; charset=utf-8", csvexport.BuildFilename(q.Start, q.End), buf.Bytes())
}
