package service

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"carbex/internal/domain"
	"carbex/internal/pdf"
	"carbex/internal/port"
)

var pdfArtifactKinds = map[domain.ReportType]ArtifactKind{
	domain.ReportTypeSummary:     ArtifactPDFSummary,
	domain.ReportTypeDetailed:    ArtifactPDFDetailed,
	domain.ReportTypeMethodology: ArtifactPDFMethodologyNote,
}

// PdfGenerator renders ReportData through an HTML template into PDF.
type PdfGenerator interface {
	// Generate renders and stores the PDF, returning its storage key.
	Generate(ctx context.Context, data *domain.ReportData, template domain.ReportType) (string, error)
	// Download renders without storing and returns the bytes with a file name.
	Download(ctx context.Context, data *domain.ReportData, template domain.ReportType) ([]byte, string, error)
	// Stream renders into w.
	Stream(ctx context.Context, data *domain.ReportData, template domain.ReportType, w io.Writer) error
}

type pdfGenerator struct {
	templates *pdf.Templates
	renderer  port.PDFRenderer
	settings  SettingsService
	artifacts *ArtifactStore
}

// NewPdfGenerator creates a new PdfGenerator.
func NewPdfGenerator(templates *pdf.Templates, renderer port.PDFRenderer, settings SettingsService, artifacts *ArtifactStore) PdfGenerator {
	return &pdfGenerator{templates: templates, renderer: renderer, settings: settings, artifacts: artifacts}
}

// PdfFilename is the download name of a rendered report.
func PdfFilename(data *domain.ReportData, template domain.ReportType) string {
	return fmt.Sprintf("%s_%d.pdf", pdfArtifactKinds[template], data.Report.Period.Start.Year())
}

func (g *pdfGenerator) render(ctx context.Context, data *domain.ReportData, template domain.ReportType) ([]byte, error) {
	if !g.templates.Has(template) {
		return nil, domain.ErrInvalidReportType
	}
	html, err := g.templates.Render(template, data, g.settings.Branding(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRenderFailed, err)
	}
	out, err := g.renderer.RenderHTML(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRenderFailed, err)
	}
	return out, nil
}

func (g *pdfGenerator) Generate(ctx context.Context, data *domain.ReportData, template domain.ReportType) (string, error) {
	if _, ok := pdfArtifactKinds[template]; !ok {
		return "", domain.ErrInvalidReportType
	}
	out, err := g.render(ctx, data, template)
	if err != nil {
		return "", fmt.Errorf("pdfGenerator.Generate: %w", err)
	}

	key := g.artifacts.Key(data.Organization.ID, pdfArtifactKinds[template], data.Report.Period.Start.Year(), "pdf")
	return g.artifacts.Save(ctx, key, contentTypePDF, func(w io.Writer) error {
		_, err := w.Write(out)
		return err
	})
}

func (g *pdfGenerator) Download(ctx context.Context, data *domain.ReportData, template domain.ReportType) ([]byte, string, error) {
	out, err := g.render(ctx, data, template)
	if err != nil {
		return nil, "", fmt.Errorf("pdfGenerator.Download: %w", err)
	}
	return out, PdfFilename(data, template), nil
}

func (g *pdfGenerator) Stream(ctx context.Context, data *domain.ReportData, template domain.ReportType, w io.Writer) error {
	out, err := g.render(ctx, data, template)
	if err != nil {
		return fmt.Errorf("pdfGenerator.Stream: %w", err)
	}
	if _, err := io.Copy(w, bytes.NewReader(out)); err != nil {
		return fmt.Errorf("pdfGenerator.Stream: %w", err)
	}
	return nil
}
