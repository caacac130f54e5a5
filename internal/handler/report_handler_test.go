package handler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"carbex/internal/domain"
	"carbex/internal/handler"
	"carbex/internal/service"
	"carbex/mocks"
)

func TestReportHandler_Create_Sync(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewReportHandler(svc)
	a := newAuth()

	report := &domain.Report{ID: uuid.New(), Format: domain.ExportFormatPDF, Status: domain.ReportStatusCompleted}
	svc.On("Generate", mock.Anything, service.GenerateReportInput{
		OrganizationID: a.orgID, UserID: a.userID, Format: domain.ExportFormatPDF, Type: domain.ReportTypeSummary, Year: 2024,
	}).Return(report, nil)

	c, w := newContext(&a, http.MethodPost, "/api/v1/reports", handler.CreateReportRequest{
		Format: domain.ExportFormatPDF, Type: domain.ReportTypeSummary, Year: 2024,
	})
	h.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	var got domain.Report
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &got))
	assert.Equal(t, report.ID, got.ID)
	assert.Equal(t, domain.ReportStatusCompleted, got.Status)
}

func TestReportHandler_Create_AsyncReturns202(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewReportHandler(svc)
	a := newAuth()

	svc.On("Generate", mock.Anything, mock.MatchedBy(func(in service.GenerateReportInput) bool {
		return in.Async && in.NotifyEmail != nil && *in.NotifyEmail == "user@acme.fr"
	})).Return(&domain.Report{ID: uuid.New(), Status: domain.ReportStatusPending}, nil)

	c, w := newContext(&a, http.MethodPost, "/api/v1/reports", handler.CreateReportRequest{
		Format: domain.ExportFormatGHG, Year: 2024, Async: true,
	})
	h.Create(c)
	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestReportHandler_Create_Errors(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewReportHandler(svc)
	a := newAuth()

	c, w := newContext(&a, http.MethodPost, "/api/v1/reports", map[string]string{"type": "summary"})
	h.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decode(t, w).Error.Code)

	svc.On("Generate", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
	c, w = newContext(&a, http.MethodPost, "/api/v1/reports", handler.CreateReportRequest{Format: domain.ExportFormatAdeme, Year: 2024})
	h.Create(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReportHandler_List(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewReportHandler(svc)
	a := newAuth()

	svc.On("List", mock.Anything, a.orgID, 2, 10).Return([]domain.Report{{ID: uuid.New()}}, 11, nil)

	c, w := newContext(&a, http.MethodGet, "/api/v1/reports?page=2&page_size=10", nil)
	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 11, env.Meta.Total)
	assert.Equal(t, 2, env.Meta.Page)

	c, w = newContext(&a, http.MethodGet, "/api/v1/reports?page=two", nil)
	h.List(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportHandler_Download(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewReportHandler(svc)
	a := newAuth()
	id := uuid.New()

	svc.On("Open", mock.Anything, a.orgID, id).Return(&service.ReportFile{
		Data: []byte("PK\x03\x04"), Filename: "declaration-ademe_2024_20250101_120000_000001.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}, nil)

	c, w := newContext(&a, http.MethodGet, "/api/v1/reports/"+id.String()+"/download", nil, idParam(id))
	h.Download(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="declaration-ademe_2024_20250101_120000_000001.xlsx"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "PK\x03\x04", w.Body.String())
}

func TestReportHandler_Download_Redirect(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewReportHandler(svc)
	a := newAuth()
	id := uuid.New()
	svc.On("DownloadURL", mock.Anything, a.orgID, id).Return("https://s3.example/signed?X-Amz-Expires=900", nil)

	c, w := newContext(&a, http.MethodGet, "/api/v1/reports/"+id.String()+"/download?redirect=true", nil, idParam(id))
	h.Download(c)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://s3.example/signed?X-Amz-Expires=900", w.Header().Get("Location"))
	svc.AssertNotCalled(t, "Open", mock.Anything, mock.Anything, mock.Anything)
}

func TestReportHandler_Download_Errors(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewReportHandler(svc)
	a := newAuth()
	pending, gone := uuid.New(), uuid.New()

	svc.On("Open", mock.Anything, a.orgID, pending).Return(nil, domain.ErrReportNotReady)
	svc.On("Open", mock.Anything, a.orgID, gone).Return(nil, domain.ErrReportFileMissing)

	c, w := newContext(&a, http.MethodGet, "/", nil, idParam(pending))
	h.Download(c)
	assert.Equal(t, http.StatusConflict, w.Code)

	c, w = newContext(&a, http.MethodGet, "/", nil, idParam(gone))
	h.Download(c)
	assert.Equal(t, http.StatusGone, w.Code)

	c, w = newContext(&a, http.MethodGet, "/", nil, gin.Param{Key: "id", Value: "not-a-uuid"})
	h.Download(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", decode(t, w).Error.Code)
}

func TestReportHandler_Preview(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewReportHandler(svc)
	a := newAuth()
	id := uuid.New()

	svc.On("Preview", mock.Anything, a.orgID, id, mock.Anything).
		Run(func(args mock.Arguments) {
			_, _ = io.WriteString(args.Get(3).(io.Writer), "%PDF-1.7")
		}).Return(nil)

	c, w := newContext(&a, http.MethodGet, "/", nil, idParam(id))
	h.Preview(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "inline", w.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.7", w.Body.String())
}

func TestReportHandler_Preview_RenderFailure(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewReportHandler(svc)
	a := newAuth()
	id := uuid.New()
	svc.On("Preview", mock.Anything, a.orgID, id, mock.Anything).Return(domain.ErrRenderFailed)

	c, w := newContext(&a, http.MethodGet, "/", nil, idParam(id))
	h.Preview(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "RENDER_FAILED", decode(t, w).Error.Code)
}

func TestReportHandler_Delete(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewReportHandler(svc)
	a := newAuth()
	id := uuid.New()
	svc.On("Delete", mock.Anything, a.orgID, id).Return(nil).Once()

	c, w := newContext(&a, http.MethodDelete, "/", nil, idParam(id))
	h.Delete(c)
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestReportHandler_Quick(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewReportHandler(svc)
	a := newAuth()

	svc.On("Quick", mock.Anything, a.orgID, service.QuickReportInput{
		Type:  domain.ReportTypeSummary,
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
	}).Return([]byte("%PDF"), "rapport-summary_2024.pdf", nil)

	c, w := newContext(&a, http.MethodPost, "/", handler.QuickReportRequest{
		Type: domain.ReportTypeSummary, StartDate: "2024-01-01", EndDate: "2024-06-30",
	})
	h.Quick(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "rapport-summary_2024.pdf")

	c, w = newContext(&a, http.MethodPost, "/", handler.QuickReportRequest{
		Type: domain.ReportTypeSummary, StartDate: "01/01/2024", EndDate: "2024-06-30",
	})
	h.Quick(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
