package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"carbex/internal/domain"
	"carbex/internal/metrics"
	"carbex/internal/port"
)

const (
	reportDefaultPageSize = 20
	reportMaxPageSize     = 100
	maxErrorMessageLen    = 1000
)

// GenerateReportInput requests one report artifact for a calendar year.
type GenerateReportInput struct {
	OrganizationID uuid.UUID           `json:"-"`
	UserID         uuid.UUID           `json:"-"`
	Format         domain.ExportFormat `json:"format" validate:"required,oneof=pdf ademe ghg docx"`
	Type           domain.ReportType   `json:"type" validate:"omitempty,oneof=summary detailed methodology"`
	Year           int                 `json:"year" validate:"required,min=2000,max=2100"`
	SiteID         *uuid.UUID          `json:"site_id"`
	Async          bool                `json:"async"`
	NotifyEmail    *string             `json:"notify_email" validate:"omitempty,email"`
}

// QuickReportInput requests an unstored PDF for an arbitrary window.
type QuickReportInput struct {
	Type   domain.ReportType `json:"type" validate:"required,oneof=summary detailed methodology"`
	Start  time.Time         `json:"start_date" validate:"required"`
	End    time.Time         `json:"end_date" validate:"required"`
	SiteID *uuid.UUID        `json:"site_id"`
}

// ReportFile is a stored artifact read back from blob storage.
type ReportFile struct {
	Data        []byte
	Filename    string
	ContentType string
}

// ReportService manages persisted report records and their artifacts.
type ReportService interface {
	// Generate creates a report record. Synchronous requests run the export
	// and return the completed (or failed) record; asynchronous requests
	// return the pending record for the queue worker.
	Generate(ctx context.Context, in GenerateReportInput) (*domain.Report, error)
	// Process runs the export of a claimed report and records the outcome.
	Process(ctx context.Context, report *domain.Report) error
	List(ctx context.Context, organizationID uuid.UUID, page, pageSize int) ([]domain.Report, int, error)
	Get(ctx context.Context, organizationID, id uuid.UUID) (*domain.Report, error)
	Delete(ctx context.Context, organizationID, id uuid.UUID) error
	Open(ctx context.Context, organizationID, id uuid.UUID) (*ReportFile, error)
	// DownloadURL returns a time-limited direct link to the stored artifact.
	DownloadURL(ctx context.Context, organizationID, id uuid.UUID) (string, error)
	Preview(ctx context.Context, organizationID, id uuid.UUID, w io.Writer) error
	Quick(ctx context.Context, organizationID uuid.UUID, in QuickReportInput) ([]byte, string, error)
}

// Exporters groups the artifact producers driven by ReportService.
type Exporters struct {
	Ademe AdemeExporter
	GHG   GhgExporter
	Word  WordReportGenerator
	PDF   PdfGenerator
}

type reportService struct {
	repo      port.ReportRepository
	builder   ReportBuilder
	dashboard DashboardService
	exporters Exporters
	artifacts *ArtifactStore
	storage   port.ObjectStorage
	email     port.EmailSender
	metrics   *metrics.Metrics
	logger    *zap.Logger
	now       func() time.Time

	presignExpiry time.Duration
}

// NewReportService creates a new ReportService.
func NewReportService(
	repo port.ReportRepository,
	builder ReportBuilder,
	dashboard DashboardService,
	exporters Exporters,
	artifacts *ArtifactStore,
	storage port.ObjectStorage,
	email port.EmailSender,
	presignExpiry time.Duration,
	m *metrics.Metrics,
	logger *zap.Logger,
) ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &reportService{
		repo:      repo,
		builder:   builder,
		dashboard: dashboard,
		exporters: exporters,
		artifacts: artifacts,
		storage:   storage,
		email:     email,
		metrics:   m,
		logger:    logger,
		now:       time.Now,

		presignExpiry: presignExpiry,
	}
}

// ReportTitle is the display title of a report record.
func ReportTitle(format domain.ExportFormat, reportType domain.ReportType, year int) string {
	y := strconv.Itoa(year)
	switch format {
	case domain.ExportFormatAdeme:
		return "Déclaration BEGES ADEME " + y
	case domain.ExportFormatGHG:
		return "Inventaire GHG Protocol " + y
	case domain.ExportFormatDocx:
		return "Bilan Carbone " + y
	default:
		return domain.ReportTypeLabels[reportType] + " " + y
	}
}

func contentTypeFor(format domain.ExportFormat) string {
	switch format {
	case domain.ExportFormatAdeme, domain.ExportFormatGHG:
		return contentTypeXLSX
	case domain.ExportFormatDocx:
		return contentTypeDOCX
	default:
		return contentTypePDF
	}
}

func (s *reportService) Generate(ctx context.Context, in GenerateReportInput) (*domain.Report, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if in.Type == "" {
		in.Type = domain.ReportTypeDetailed
	}

	start, end := YearPeriod(in.Year)
	report := &domain.Report{
		ID:             uuid.New(),
		OrganizationID: in.OrganizationID,
		SiteID:         in.SiteID,
		GeneratedBy:    in.UserID,
		NotifyEmail:    in.NotifyEmail,
		Type:           in.Type,
		Format:         in.Format,
		Title:          ReportTitle(in.Format, in.Type, in.Year),
		Year:           in.Year,
		PeriodStart:    start,
		PeriodEnd:      end,
		Status:         domain.ReportStatusPending,
	}
	if !in.Async {
		report.Status = domain.ReportStatusGenerating
	}
	if err := s.repo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("reportService.Generate: %w", err)
	}

	if in.Async {
		s.logger.Info("reportService.Generate: report queued",
			zap.String("report_id", report.ID.String()), zap.String("format", string(report.Format)))
		return report, nil
	}
	if err := s.Process(ctx, report); err != nil {
		return report, err
	}
	return report, nil
}

// export runs the producer matching the report format and returns the
// stored key with the reported total.
func (s *reportService) export(ctx context.Context, r *domain.Report) (string, float64, error) {
	if r.Format == domain.ExportFormatPDF {
		data, err := s.builder.Build(ctx, r.OrganizationID, r.PeriodStart, r.PeriodEnd, r.Type, r.SiteID)
		if err != nil {
			return "", 0, err
		}
		key, err := s.exporters.PDF.Generate(ctx, data, r.Type)
		return key, data.Summary.TotalKg, err
	}

	var (
		key string
		err error
	)
	switch r.Format {
	case domain.ExportFormatAdeme:
		key, err = s.exporters.Ademe.Export(ctx, r.OrganizationID, r.Year, r.SiteID)
	case domain.ExportFormatGHG:
		key, err = s.exporters.GHG.Export(ctx, r.OrganizationID, r.Year, r.SiteID)
	case domain.ExportFormatDocx:
		key, err = s.exporters.Word.Generate(ctx, r.OrganizationID, r.Year, r.SiteID)
	default:
		return "", 0, domain.ErrInvalidExportFormat
	}
	if err != nil {
		return "", 0, err
	}

	summary, err := s.dashboard.Summary(ctx, domain.EmissionQuery{
		OrganizationID: r.OrganizationID, SiteID: r.SiteID, Start: r.PeriodStart, End: r.PeriodEnd,
	})
	if err != nil {
		s.logger.Warn("reportService: total unavailable", zap.String("report_id", r.ID.String()), zap.Error(err))
		return key, 0, nil
	}
	return key, summary.TotalKg, nil
}

func (s *reportService) Process(ctx context.Context, report *domain.Report) error {
	report.Status = domain.ReportStatusGenerating
	started := time.Now()
	key, totalKg, err := s.export(ctx, report)
	s.metrics.ObserveExport(string(report.Format), err, time.Since(started))

	if err != nil {
		msg := err.Error()
		if len(msg) > maxErrorMessageLen {
			msg = msg[:maxErrorMessageLen]
		}
		report.Status = domain.ReportStatusFailed
		report.ErrorMessage = &msg
		if uerr := s.repo.Update(ctx, report); uerr != nil {
			s.logger.Error("reportService.Process: recording failure", zap.String("report_id", report.ID.String()), zap.Error(uerr))
		}
		s.logger.Warn("reportService.Process: export failed",
			zap.String("report_id", report.ID.String()), zap.String("format", string(report.Format)), zap.Error(err))
		s.notify(ctx, report)
		return fmt.Errorf("reportService.Process: %w", err)
	}

	size, serr := s.artifacts.Size(ctx, key)
	if serr != nil {
		s.logger.Warn("reportService.Process: artifact size unavailable", zap.String("key", key), zap.Error(serr))
	} else {
		report.FileSize = &size
	}
	generatedAt := s.now().UTC()
	report.Status = domain.ReportStatusCompleted
	report.FilePath = &key
	report.TotalEmissionsKg = &totalKg
	report.GeneratedAt = &generatedAt
	report.ErrorMessage = nil
	if err := s.repo.Update(ctx, report); err != nil {
		return fmt.Errorf("reportService.Process: %w", err)
	}

	s.logger.Info("reportService.Process: report completed",
		zap.String("report_id", report.ID.String()), zap.String("key", key), zap.Duration("elapsed", time.Since(started)))
	s.notify(ctx, report)
	return nil
}

func (s *reportService) notify(ctx context.Context, report *domain.Report) {
	if s.email == nil || report.NotifyEmail == nil || *report.NotifyEmail == "" {
		return
	}
	var err error
	if report.Status == domain.ReportStatusCompleted {
		err = s.email.SendReportReady(ctx, *report.NotifyEmail, report)
	} else {
		err = s.email.SendReportFailed(ctx, *report.NotifyEmail, report)
	}
	if err != nil {
		s.logger.Warn("reportService: notification email failed",
			zap.String("report_id", report.ID.String()), zap.Error(err))
	}
}

func (s *reportService) List(ctx context.Context, organizationID uuid.UUID, page, pageSize int) ([]domain.Report, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = reportDefaultPageSize
	}
	if pageSize > reportMaxPageSize {
		pageSize = reportMaxPageSize
	}
	reports, total, err := s.repo.ListByOrganization(ctx, organizationID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("reportService.List: %w", err)
	}
	return reports, total, nil
}

func (s *reportService) Get(ctx context.Context, organizationID, id uuid.UUID) (*domain.Report, error) {
	report, err := s.repo.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, fmt.Errorf("reportService.Get: %w", err)
	}
	return report, nil
}

func (s *reportService) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	report, err := s.repo.GetByID(ctx, organizationID, id)
	if err != nil {
		return fmt.Errorf("reportService.Delete: %w", err)
	}
	if report.FilePath != nil && *report.FilePath != "" {
		if err := s.storage.Delete(ctx, *report.FilePath); err != nil {
			return fmt.Errorf("reportService.Delete: %w: %w", domain.ErrStorageFailed, err)
		}
	}
	if err := s.repo.Delete(ctx, organizationID, id); err != nil {
		return fmt.Errorf("reportService.Delete: %w", err)
	}
	return nil
}

func (s *reportService) Open(ctx context.Context, organizationID, id uuid.UUID) (*ReportFile, error) {
	report, err := s.repo.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, fmt.Errorf("reportService.Open: %w", err)
	}
	if report.Status != domain.ReportStatusCompleted {
		return nil, domain.ErrReportNotReady
	}
	if report.FilePath == nil || *report.FilePath == "" {
		return nil, domain.ErrReportFileMissing
	}

	exists, err := s.storage.Exists(ctx, *report.FilePath)
	if err != nil {
		return nil, fmt.Errorf("reportService.Open: %w: %w", domain.ErrStorageFailed, err)
	}
	if !exists {
		return nil, domain.ErrReportFileMissing
	}
	data, err := s.storage.Download(ctx, *report.FilePath)
	if err != nil {
		return nil, fmt.Errorf("reportService.Open: %w: %w", domain.ErrStorageFailed, err)
	}
	return &ReportFile{
		Data:        data,
		Filename:    path.Base(*report.FilePath),
		ContentType: contentTypeFor(report.Format),
	}, nil
}

func (s *reportService) DownloadURL(ctx context.Context, organizationID, id uuid.UUID) (string, error) {
	report, err := s.repo.GetByID(ctx, organizationID, id)
	if err != nil {
		return "", fmt.Errorf("reportService.DownloadURL: %w", err)
	}
	if report.Status != domain.ReportStatusCompleted {
		return "", domain.ErrReportNotReady
	}
	if report.FilePath == nil || *report.FilePath == "" {
		return "", domain.ErrReportFileMissing
	}

	exists, err := s.storage.Exists(ctx, *report.FilePath)
	if err != nil {
		return "", fmt.Errorf("reportService.DownloadURL: %w: %w", domain.ErrStorageFailed, err)
	}
	if !exists {
		return "", domain.ErrReportFileMissing
	}
	url, err := s.storage.GetPresignedURL(ctx, *report.FilePath, int64(s.presignExpiry/time.Second))
	if err != nil {
		return "", fmt.Errorf("reportService.DownloadURL: %w: %w", domain.ErrStorageFailed, err)
	}
	return url, nil
}

func (s *reportService) Preview(ctx context.Context, organizationID, id uuid.UUID, w io.Writer) error {
	report, err := s.repo.GetByID(ctx, organizationID, id)
	if err != nil {
		return fmt.Errorf("reportService.Preview: %w", err)
	}
	data, err := s.builder.Build(ctx, organizationID, report.PeriodStart, report.PeriodEnd, report.Type, report.SiteID)
	if err != nil {
		return fmt.Errorf("reportService.Preview: %w", err)
	}
	return s.exporters.PDF.Stream(ctx, data, report.Type, w)
}

func (s *reportService) Quick(ctx context.Context, organizationID uuid.UUID, in QuickReportInput) ([]byte, string, error) {
	if err := validateInput(in); err != nil {
		return nil, "", err
	}
	data, err := s.builder.Build(ctx, organizationID, in.Start, in.End, in.Type, in.SiteID)
	if err != nil {
		return nil, "", fmt.Errorf("reportService.Quick: %w", err)
	}
	started := time.Now()
	out, name, err := s.exporters.PDF.Download(ctx, data, in.Type)
	s.metrics.ObserveExport("pdf_quick", err, time.Since(started))
	if err != nil {
		return nil, "", fmt.Errorf("reportService.Quick: %w", err)
	}
	return out, name, nil
}
