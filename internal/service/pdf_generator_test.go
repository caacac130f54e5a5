package service_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"carbex/internal/domain"
	"carbex/internal/pdf"
	"carbex/internal/service"
	"carbex/mocks"
)

func newPdfGenerator(t *testing.T) (service.PdfGenerator, *mocks.MockPDFRenderer, *exporterDeps) {
	t.Helper()
	d := newExporterDeps(t)
	tpl, err := pdf.LoadTemplates()
	require.NoError(t, err)
	renderer := new(mocks.MockPDFRenderer)
	return service.NewPdfGenerator(tpl, renderer, d.settings, d.artifacts), renderer, d
}

func pdfData() *domain.ReportData {
	org := testOrganization("FR")
	data := emptyReportData(org)
	data.Report.Period = domain.PeriodInfo{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Label: "Année 2024",
	}
	return data
}

func htmlContaining(s string) interface{} {
	return mock.MatchedBy(func(html string) bool { return strings.Contains(html, s) })
}

func TestPdfGenerator_Generate_StoresUnderTemplateKind(t *testing.T) {
	gen, renderer, d := newPdfGenerator(t)
	data := pdfData()
	renderer.On("RenderHTML", mock.Anything, htmlContaining("Note méthodologique")).Return([]byte("%PDF-meth"), nil).Once()
	uploads := captureUploads(d.storage)

	key, err := gen.Generate(context.Background(), data, domain.ReportTypeMethodology)
	require.NoError(t, err)
	assert.Regexp(t, `^reports/`+data.Organization.ID.String()+`/rapport-methodology_2024_.*\.pdf$`, key)
	assert.Equal(t, "%PDF-meth", string(uploads.get(key)))
	assert.Equal(t, "application/pdf", uploads.types[key])
}

func TestPdfGenerator_Download_DoesNotStore(t *testing.T) {
	gen, renderer, d := newPdfGenerator(t)
	renderer.On("RenderHTML", mock.Anything, htmlContaining("Rapport de synthèse carbone")).Return([]byte("%PDF-sum"), nil)

	out, name, err := gen.Download(context.Background(), pdfData(), domain.ReportTypeSummary)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-sum", string(out))
	assert.Equal(t, "rapport-summary_2024.pdf", name)
	d.storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestPdfGenerator_Stream(t *testing.T) {
	gen, renderer, _ := newPdfGenerator(t)
	renderer.On("RenderHTML", mock.Anything, htmlContaining("Détail par catégorie")).Return([]byte("%PDF-det"), nil)

	var buf bytes.Buffer
	require.NoError(t, gen.Stream(context.Background(), pdfData(), domain.ReportTypeDetailed, &buf))
	assert.Equal(t, "%PDF-det", buf.String())
}

func TestPdfGenerator_UnknownTemplate(t *testing.T) {
	gen, renderer, d := newPdfGenerator(t)

	_, err := gen.Generate(context.Background(), pdfData(), "annual")
	assert.ErrorIs(t, err, domain.ErrInvalidReportType)
	_, _, err = gen.Download(context.Background(), pdfData(), "annual")
	assert.ErrorIs(t, err, domain.ErrInvalidReportType)
	assert.ErrorIs(t, gen.Stream(context.Background(), pdfData(), "annual", &bytes.Buffer{}), domain.ErrInvalidReportType)

	renderer.AssertNotCalled(t, "RenderHTML", mock.Anything, mock.Anything)
	d.storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestPdfGenerator_RendererFailure(t *testing.T) {
	gen, renderer, d := newPdfGenerator(t)
	renderer.On("RenderHTML", mock.Anything, mock.Anything).Return(nil, errors.New("gotenberg: status 503"))

	_, err := gen.Generate(context.Background(), pdfData(), domain.ReportTypeSummary)
	assert.ErrorIs(t, err, domain.ErrRenderFailed)
	d.storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}
