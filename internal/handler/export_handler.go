package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carbex/internal/domain"
	"carbex/internal/service"
)

// ExportHandler produces regulatory exports as immediate downloads. Each
// export is recorded as a completed report so it can be downloaded again.
type ExportHandler struct {
	reportService service.ReportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(reportService service.ReportService) *ExportHandler {
	return &ExportHandler{reportService: reportService}
}

// Ademe handles POST /api/v1/exports/ademe
// @Summary      ADEME BEGES declaration
// @Description  Workbook with the 22 regulatory postes, synthesis, action plan and methodology sheets
// @Tags         exports
// @Accept       json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        body body ExportRequest true "Reporting year"
// @Success      200 {file} file
// @Failure      400 {object} ErrorResponseBody
// @Failure      404 {object} ErrorResponseBody
// @Failure      502 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /exports/ademe [post]
func (h *ExportHandler) Ademe(c *gin.Context) {
	h.export(c, domain.ExportFormatAdeme)
}

// GHG handles POST /api/v1/exports/ghg
// @Summary      GHG Protocol inventory
// @Description  Workbook with summary, per-scope sheets, methodology and history
// @Tags         exports
// @Accept       json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        body body ExportRequest true "Reporting year"
// @Success      200 {file} file
// @Failure      400 {object} ErrorResponseBody
// @Failure      404 {object} ErrorResponseBody
// @Failure      502 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /exports/ghg [post]
func (h *ExportHandler) GHG(c *gin.Context) {
	h.export(c, domain.ExportFormatGHG)
}

// Word handles POST /api/v1/exports/word
// @Summary      Bilan Carbone narrative report
// @Tags         exports
// @Accept       json
// @Produce      application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Param        body body ExportRequest true "Reporting year"
// @Success      200 {file} file
// @Failure      400 {object} ErrorResponseBody
// @Failure      404 {object} ErrorResponseBody
// @Failure      502 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /exports/word [post]
func (h *ExportHandler) Word(c *gin.Context) {
	h.export(c, domain.ExportFormatDocx)
}

func (h *ExportHandler) export(c *gin.Context, format domain.ExportFormat) {
	orgID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	ctx := c.Request.Context()
	report, err := h.reportService.Generate(ctx, service.GenerateReportInput{
		OrganizationID: orgID,
		UserID:         userID,
		Format:         format,
		Year:           req.Year,
		SiteID:         req.SiteID,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	file, err := h.reportService.Open(ctx, orgID, report.ID)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.Header("X-Report-ID", report.ID.String())
	sendAttachment(c, file.ContentType, file.Filename, file.Data)
}
