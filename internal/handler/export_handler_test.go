package handler_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"carbex/internal/domain"
	"carbex/internal/handler"
	"carbex/internal/service"
	"carbex/mocks"
)

func TestExportHandler_GeneratesAndStreams(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewExportHandler(svc)
	a := newAuth()
	siteID := uuid.New()
	reportID := uuid.New()

	svc.On("Generate", mock.Anything, service.GenerateReportInput{
		OrganizationID: a.orgID, UserID: a.userID, Format: domain.ExportFormatGHG, Year: 2024, SiteID: &siteID,
	}).Return(&domain.Report{ID: reportID, Status: domain.ReportStatusCompleted}, nil)
	svc.On("Open", mock.Anything, a.orgID, reportID).Return(&service.ReportFile{
		Data: []byte("xlsx"), Filename: "ghg-protocol-report_2024_20250101_120000_000001.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}, nil)

	c, w := newContext(&a, http.MethodPost, "/api/v1/exports/ghg", handler.ExportRequest{Year: 2024, SiteID: &siteID})
	h.GHG(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, reportID.String(), w.Header().Get("X-Report-ID"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "ghg-protocol-report_2024_")
	assert.Equal(t, "xlsx", w.Body.String())
}

func TestExportHandler_FormatPerEndpoint(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewExportHandler(svc)
	a := newAuth()

	var formats []domain.ExportFormat
	svc.On("Generate", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			formats = append(formats, args.Get(1).(service.GenerateReportInput).Format)
		}).
		Return(nil, domain.ErrNotFound)

	for _, fn := range []func(*handler.ExportHandler){
		func(h *handler.ExportHandler) {
			c, _ := newContext(&a, http.MethodPost, "/", handler.ExportRequest{Year: 2024})
			h.Ademe(c)
		},
		func(h *handler.ExportHandler) {
			c, _ := newContext(&a, http.MethodPost, "/", handler.ExportRequest{Year: 2024})
			h.GHG(c)
		},
		func(h *handler.ExportHandler) {
			c, _ := newContext(&a, http.MethodPost, "/", handler.ExportRequest{Year: 2024})
			h.Word(c)
		},
	} {
		fn(h)
	}

	assert.Equal(t, []domain.ExportFormat{domain.ExportFormatAdeme, domain.ExportFormatGHG, domain.ExportFormatDocx}, formats)
	svc.AssertNotCalled(t, "Open", mock.Anything, mock.Anything, mock.Anything)
}

func TestExportHandler_StorageFailure(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewExportHandler(svc)
	a := newAuth()
	svc.On("Generate", mock.Anything, mock.Anything).Return(&domain.Report{ID: uuid.New(), Status: domain.ReportStatusFailed}, domain.ErrStorageFailed)

	c, w := newContext(&a, http.MethodPost, "/", handler.ExportRequest{Year: 2024})
	h.Word(c)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "STORAGE_FAILED", decode(t, w).Error.Code)
}
