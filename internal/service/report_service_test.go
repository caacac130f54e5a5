package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"carbex/internal/domain"
	"carbex/internal/metrics"
	"carbex/internal/service"
	"carbex/mocks"
)

type reportDeps struct {
	repo      *mocks.MockReportRepo
	builder   *mocks.MockReportBuilder
	dashboard *mocks.MockDashboardService
	ademe     *mocks.MockAdemeExporter
	ghg       *mocks.MockGhgExporter
	word      *mocks.MockWordReportGenerator
	pdf       *mocks.MockPdfGenerator
	storage   *mocks.MockObjectStorage
	email     *mocks.MockEmailSender
	svc       service.ReportService
}

func newReportDeps(t *testing.T) *reportDeps {
	d := &reportDeps{
		repo:      new(mocks.MockReportRepo),
		builder:   new(mocks.MockReportBuilder),
		dashboard: new(mocks.MockDashboardService),
		ademe:     new(mocks.MockAdemeExporter),
		ghg:       new(mocks.MockGhgExporter),
		word:      new(mocks.MockWordReportGenerator),
		pdf:       new(mocks.MockPdfGenerator),
		storage:   new(mocks.MockObjectStorage),
		email:     new(mocks.MockEmailSender),
	}
	artifacts := service.NewArtifactStore(d.storage, t.TempDir(), nil)
	d.svc = service.NewReportService(d.repo, d.builder, d.dashboard,
		service.Exporters{Ademe: d.ademe, GHG: d.ghg, Word: d.word, PDF: d.pdf},
		artifacts, d.storage, d.email, 15*time.Minute, metrics.New(), nil)
	return d
}

func strPtr(s string) *string { return &s }

func TestReportService_Generate_SyncAdeme(t *testing.T) {
	d := newReportDeps(t)
	orgID, userID := uuid.New(), uuid.New()
	key := "reports/" + orgID.String() + "/declaration-ademe_2024_20250101_120000_000001.xlsx"

	d.repo.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Report) bool {
		return r.Status == domain.ReportStatusGenerating && r.Title == "Déclaration BEGES ADEME 2024"
	})).Return(nil).Once()
	d.ademe.On("Export", mock.Anything, orgID, 2024, (*uuid.UUID)(nil)).Return(key, nil).Once()
	d.dashboard.On("Summary", mock.Anything, mock.Anything).Return(&domain.Summary{TotalKg: 4200}, nil)
	d.storage.On("Size", mock.Anything, key).Return(int64(2048), nil)
	d.repo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()
	d.email.On("SendReportReady", mock.Anything, "cfo@acme.fr", mock.Anything).Return(nil).Once()

	report, err := d.svc.Generate(context.Background(), service.GenerateReportInput{
		OrganizationID: orgID, UserID: userID, Format: domain.ExportFormatAdeme, Year: 2024,
		NotifyEmail: strPtr("cfo@acme.fr"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusCompleted, report.Status)
	assert.Equal(t, key, *report.FilePath)
	assert.Equal(t, int64(2048), *report.FileSize)
	assert.Equal(t, 4200.0, *report.TotalEmissionsKg)
	assert.Equal(t, domain.ReportTypeDetailed, report.Type)
	assert.NotNil(t, report.GeneratedAt)
	d.email.AssertExpectations(t)
}

func TestReportService_Generate_Async(t *testing.T) {
	d := newReportDeps(t)
	d.repo.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Report) bool {
		return r.Status == domain.ReportStatusPending
	})).Return(nil).Once()

	report, err := d.svc.Generate(context.Background(), service.GenerateReportInput{
		OrganizationID: uuid.New(), Format: domain.ExportFormatGHG, Year: 2023, Async: true,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusPending, report.Status)
	d.ghg.AssertNotCalled(t, "Export", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReportService_Generate_Validation(t *testing.T) {
	d := newReportDeps(t)
	_, err := d.svc.Generate(context.Background(), service.GenerateReportInput{Format: "csv", Year: 1990})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "Format: oneof")
	assert.Contains(t, err.Error(), "Year: min=2000")

	_, err = d.svc.Generate(context.Background(), service.GenerateReportInput{
		Format: domain.ExportFormatPDF, Year: 2024, NotifyEmail: strPtr("not-an-email"),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
	d.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReportService_Generate_FailureIsRecorded(t *testing.T) {
	d := newReportDeps(t)
	orgID := uuid.New()
	d.repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	d.word.On("Generate", mock.Anything, orgID, 2024, (*uuid.UUID)(nil)).
		Return("", errors.Join(domain.ErrStorageFailed, errors.New("s3: access denied")))
	d.repo.On("Update", mock.Anything, mock.MatchedBy(func(r *domain.Report) bool {
		return r.Status == domain.ReportStatusFailed && r.ErrorMessage != nil
	})).Return(nil).Once()
	d.email.On("SendReportFailed", mock.Anything, "ops@acme.fr", mock.Anything).Return(errors.New("ses throttled"))

	report, err := d.svc.Generate(context.Background(), service.GenerateReportInput{
		OrganizationID: orgID, Format: domain.ExportFormatDocx, Year: 2024, NotifyEmail: strPtr("ops@acme.fr"),
	})
	require.ErrorIs(t, err, domain.ErrStorageFailed)
	require.NotNil(t, report)
	assert.Equal(t, domain.ReportStatusFailed, report.Status)
	assert.Contains(t, *report.ErrorMessage, "access denied")
	assert.Nil(t, report.FilePath)
	d.repo.AssertExpectations(t)
}

func TestReportService_Process_PDFUsesBuiltTotal(t *testing.T) {
	d := newReportDeps(t)
	orgID := uuid.New()
	start, end := service.YearPeriod(2024)
	report := &domain.Report{
		ID: uuid.New(), OrganizationID: orgID, Format: domain.ExportFormatPDF, Type: domain.ReportTypeSummary,
		Year: 2024, PeriodStart: start, PeriodEnd: end, Status: domain.ReportStatusGenerating,
	}
	data := &domain.ReportData{Summary: domain.Summary{TotalKg: 9876.5}}

	d.builder.On("Build", mock.Anything, orgID, start, end, domain.ReportTypeSummary, (*uuid.UUID)(nil)).Return(data, nil)
	d.pdf.On("Generate", mock.Anything, data, domain.ReportTypeSummary).Return("reports/x/rapport-summary.pdf", nil)
	d.storage.On("Size", mock.Anything, "reports/x/rapport-summary.pdf").Return(int64(0), errors.New("head failed"))
	d.repo.On("Update", mock.Anything, report).Return(nil)

	require.NoError(t, d.svc.Process(context.Background(), report))
	assert.Equal(t, domain.ReportStatusCompleted, report.Status)
	assert.Equal(t, 9876.5, *report.TotalEmissionsKg)
	assert.Nil(t, report.FileSize)
	d.dashboard.AssertNotCalled(t, "Summary", mock.Anything, mock.Anything)
	d.email.AssertNotCalled(t, "SendReportReady", mock.Anything, mock.Anything, mock.Anything)
}

func TestReportService_Open(t *testing.T) {
	d := newReportDeps(t)
	orgID := uuid.New()
	key := "reports/" + orgID.String() + "/ghg-protocol-report_2024_20250101_120000_000001.xlsx"

	ready := &domain.Report{ID: uuid.New(), Format: domain.ExportFormatGHG, Status: domain.ReportStatusCompleted, FilePath: &key}
	gone := &domain.Report{ID: uuid.New(), Format: domain.ExportFormatGHG, Status: domain.ReportStatusCompleted, FilePath: strPtr("reports/gone.xlsx")}
	pending := &domain.Report{ID: uuid.New(), Status: domain.ReportStatusPending}

	d.repo.On("GetByID", mock.Anything, orgID, ready.ID).Return(ready, nil)
	d.repo.On("GetByID", mock.Anything, orgID, gone.ID).Return(gone, nil)
	d.repo.On("GetByID", mock.Anything, orgID, pending.ID).Return(pending, nil)
	d.storage.On("Exists", mock.Anything, key).Return(true, nil)
	d.storage.On("Exists", mock.Anything, "reports/gone.xlsx").Return(false, nil)
	d.storage.On("Download", mock.Anything, key).Return([]byte("PK"), nil)

	file, err := d.svc.Open(context.Background(), orgID, ready.ID)
	require.NoError(t, err)
	assert.Equal(t, "ghg-protocol-report_2024_20250101_120000_000001.xlsx", file.Filename)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", file.ContentType)
	assert.Equal(t, []byte("PK"), file.Data)

	_, err = d.svc.Open(context.Background(), orgID, gone.ID)
	assert.ErrorIs(t, err, domain.ErrReportFileMissing)

	_, err = d.svc.Open(context.Background(), orgID, pending.ID)
	assert.ErrorIs(t, err, domain.ErrReportNotReady)
}

func TestReportService_Delete(t *testing.T) {
	d := newReportDeps(t)
	orgID := uuid.New()
	key := "reports/k.pdf"
	report := &domain.Report{ID: uuid.New(), OrganizationID: orgID, FilePath: &key}

	d.repo.On("GetByID", mock.Anything, orgID, report.ID).Return(report, nil)
	d.storage.On("Delete", mock.Anything, key).Return(nil).Once()
	d.repo.On("Delete", mock.Anything, orgID, report.ID).Return(nil).Once()
	require.NoError(t, d.svc.Delete(context.Background(), orgID, report.ID))

	missing := uuid.New()
	d.repo.On("GetByID", mock.Anything, orgID, missing).Return(nil, domain.ErrNotFound)
	assert.ErrorIs(t, d.svc.Delete(context.Background(), orgID, missing), domain.ErrNotFound)
	d.storage.AssertNumberOfCalls(t, "Delete", 1)
}

func TestReportService_Delete_StorageFailureKeepsRow(t *testing.T) {
	d := newReportDeps(t)
	orgID := uuid.New()
	key := "reports/k.pdf"
	report := &domain.Report{ID: uuid.New(), OrganizationID: orgID, FilePath: &key}
	d.repo.On("GetByID", mock.Anything, orgID, report.ID).Return(report, nil)
	d.storage.On("Delete", mock.Anything, key).Return(errors.New("timeout"))

	assert.ErrorIs(t, d.svc.Delete(context.Background(), orgID, report.ID), domain.ErrStorageFailed)
	d.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestReportService_QuickAndPreview(t *testing.T) {
	d := newReportDeps(t)
	orgID := uuid.New()
	start, end := service.YearPeriod(2024)
	data := &domain.ReportData{}

	d.builder.On("Build", mock.Anything, orgID, start, end, domain.ReportTypeSummary, (*uuid.UUID)(nil)).Return(data, nil)
	d.pdf.On("Download", mock.Anything, data, domain.ReportTypeSummary).Return([]byte("%PDF"), "rapport-summary_2024.pdf", nil)

	out, name, err := d.svc.Quick(context.Background(), orgID, service.QuickReportInput{
		Type: domain.ReportTypeSummary, Start: start, End: end,
	})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out))
	assert.Equal(t, "rapport-summary_2024.pdf", name)

	_, _, err = d.svc.Quick(context.Background(), orgID, service.QuickReportInput{Type: "annual", Start: start, End: end})
	assert.ErrorIs(t, err, domain.ErrValidation)

	report := &domain.Report{ID: uuid.New(), Type: domain.ReportTypeSummary, PeriodStart: start, PeriodEnd: end}
	d.repo.On("GetByID", mock.Anything, orgID, report.ID).Return(report, nil)
	var buf bytes.Buffer
	d.pdf.On("Stream", mock.Anything, data, domain.ReportTypeSummary, &buf).Return(nil).Once()
	require.NoError(t, d.svc.Preview(context.Background(), orgID, report.ID, &buf))
	d.pdf.AssertExpectations(t)
}

func TestReportService_List_ClampsPaging(t *testing.T) {
	d := newReportDeps(t)
	orgID := uuid.New()
	d.repo.On("ListByOrganization", mock.Anything, orgID, 100, 100).Return([]domain.Report{}, 0, nil).Once()
	_, _, err := d.svc.List(context.Background(), orgID, 2, 1000)
	require.NoError(t, err)
	d.repo.AssertExpectations(t)
}

func TestReportService_DownloadURL(t *testing.T) {
	d := newReportDeps(t)
	orgID, id := uuid.New(), uuid.New()
	key := "reports/" + orgID.String() + "/bilan-carbone_2024_20250101_120000_000001.docx"
	d.repo.On("GetByID", mock.Anything, orgID, id).
		Return(&domain.Report{ID: id, Status: domain.ReportStatusCompleted, FilePath: &key}, nil)
	d.storage.On("Exists", mock.Anything, key).Return(true, nil)
	d.storage.On("GetPresignedURL", mock.Anything, key, int64(900)).Return("https://s3.example/signed", nil)

	url, err := d.svc.DownloadURL(context.Background(), orgID, id)
	require.NoError(t, err)
	assert.Equal(t, "https://s3.example/signed", url)
}

func TestReportService_DownloadURL_Pending(t *testing.T) {
	d := newReportDeps(t)
	orgID, id := uuid.New(), uuid.New()
	d.repo.On("GetByID", mock.Anything, orgID, id).
		Return(&domain.Report{ID: id, Status: domain.ReportStatusPending}, nil)

	_, err := d.svc.DownloadURL(context.Background(), orgID, id)
	assert.ErrorIs(t, err, domain.ErrReportNotReady)
	d.storage.AssertNotCalled(t, "GetPresignedURL", mock.Anything, mock.Anything, mock.Anything)
}
