package handler

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"carbex/internal/middleware"
	"carbex/internal/service"
)

const contentTypePDF = "application/pdf"

// ReportHandler handles persisted report endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// List handles GET /api/v1/reports
// @Summary      List reports
// @Tags         reports
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size (max 100)" default(20)
// @Success      200 {object} Response{data=[]domain.Report,meta=PagMeta}
// @Failure      401 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /reports [get]
func (h *ReportHandler) List(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	page, pageSize, ok := parsePaging(c)
	if !ok {
		return
	}

	reports, total, err := h.reportService.List(c.Request.Context(), orgID, page, pageSize)
	if err != nil {
		HandleError(c, err)
		return
	}
	if page < 1 {
		page = 1
	}
	RespondPaginated(c, reports, PagMeta{Total: total, Page: page, PageSize: len(reports)})
}

// Create handles POST /api/v1/reports
// @Summary      Generate a report
// @Description  Synchronous requests return the completed (or failed) report; async requests return 202 with the pending report
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        body body CreateReportRequest true "Report request"
// @Success      201 {object} Response{data=domain.Report}
// @Success      202 {object} Response{data=domain.Report}
// @Failure      400 {object} ErrorResponseBody
// @Failure      404 {object} ErrorResponseBody
// @Failure      502 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /reports [post]
func (h *ReportHandler) Create(c *gin.Context) {
	orgID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	// Queued reports notify the requester unless another address is given.
	if req.Async && req.NotifyEmail == nil {
		if email := middleware.GetEmail(c); email != "" {
			req.NotifyEmail = &email
		}
	}

	report, err := h.reportService.Generate(c.Request.Context(), service.GenerateReportInput{
		OrganizationID: orgID,
		UserID:         userID,
		Format:         req.Format,
		Type:           req.Type,
		Year:           req.Year,
		SiteID:         req.SiteID,
		Async:          req.Async,
		NotifyEmail:    req.NotifyEmail,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	if req.Async {
		RespondAccepted(c, report)
		return
	}
	RespondCreated(c, report)
}

// Get handles GET /api/v1/reports/:id
// @Summary      Get a report
// @Tags         reports
// @Produce      json
// @Param        id path string true "Report ID"
// @Success      200 {object} Response{data=domain.Report}
// @Failure      404 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /reports/{id} [get]
func (h *ReportHandler) Get(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	report, err := h.reportService.Get(c.Request.Context(), orgID, id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, report)
}

// Download handles GET /api/v1/reports/:id/download
// @Summary      Download a report artifact
// @Tags         reports
// @Produce      application/pdf,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet,application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Param        id path string true "Report ID"
// @Param        redirect query bool false "Redirect to a presigned storage URL instead of streaming"
// @Success      200 {file} file
// @Success      302 "Presigned URL in Location"
// @Failure      404 {object} ErrorResponseBody
// @Failure      409 {object} ErrorResponseBody "Report not completed"
// @Failure      410 {object} ErrorResponseBody "File no longer exists"
// @Security     BearerAuth
// @Router       /reports/{id}/download [get]
func (h *ReportHandler) Download(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if redirect, _ := strconv.ParseBool(c.Query("redirect")); redirect {
		url, err := h.reportService.DownloadURL(c.Request.Context(), orgID, id)
		if err != nil {
			HandleError(c, err)
			return
		}
		c.Redirect(http.StatusFound, url)
		return
	}

	file, err := h.reportService.Open(c.Request.Context(), orgID, id)
	if err != nil {
		HandleError(c, err)
		return
	}
	sendAttachment(c, file.ContentType, file.Filename, file.Data)
}

// Preview handles GET /api/v1/reports/:id/preview
// @Summary      Preview a report as PDF
// @Description  Rebuilds the report data and streams an inline PDF without storing it
// @Tags         reports
// @Produce      application/pdf
// @Param        id path string true "Report ID"
// @Success      200 {file} file
// @Failure      404 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /reports/{id}/preview [get]
func (h *ReportHandler) Preview(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	// Rendered into a buffer so an error can still produce a JSON envelope.
	var buf bytes.Buffer
	if err := h.reportService.Preview(c.Request.Context(), orgID, id, &buf); err != nil {
		HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", "inline")
	c.Data(http.StatusOK, contentTypePDF, buf.Bytes())
}

// Delete handles DELETE /api/v1/reports/:id
// @Summary      Delete a report and its artifact
// @Tags         reports
// @Produce      json
// @Param        id path string true "Report ID"
// @Success      200 {object} Response{data=MessageResponse}
// @Failure      404 {object} ErrorResponseBody
// @Failure      502 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /reports/{id} [delete]
func (h *ReportHandler) Delete(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.reportService.Delete(c.Request.Context(), orgID, id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, MessageResponse{Message: "report deleted"})
}

// Quick handles POST /api/v1/reports/quick
// @Summary      Quick PDF report
// @Description  Builds and renders a PDF for an arbitrary window without storing it
// @Tags         reports
// @Accept       json
// @Produce      application/pdf
// @Param        body body QuickReportRequest true "Quick report request"
// @Success      200 {file} file
// @Failure      400 {object} ErrorResponseBody
// @Failure      502 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /reports/quick [post]
func (h *ReportHandler) Quick(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	var req QuickReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'start_date': must be YYYY-MM-DD")
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'end_date': must be YYYY-MM-DD")
		return
	}

	data, filename, err := h.reportService.Quick(c.Request.Context(), orgID, service.QuickReportInput{
		Type: req.Type, Start: start, End: end, SiteID: req.SiteID,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	sendAttachment(c, contentTypePDF, filename, data)
}
