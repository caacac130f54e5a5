package pdf_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carbex/internal/config"
	"carbex/internal/domain"
	"carbex/internal/pdf"
)

func sampleData() *domain.ReportData {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	return &domain.ReportData{
		Report: domain.ReportMeta{
			Type:        domain.ReportTypeSummary,
			GeneratedAt: time.Date(2025, 2, 3, 9, 0, 0, 0, time.UTC),
			Period:      domain.PeriodInfo{Start: start, End: end, Label: "Année 2024"},
		},
		Organization: domain.OrganizationInfo{Name: "Acme <SAS>", Country: "FR"},
		Summary: domain.Summary{
			TotalTonnes: 1234.5,
			Scope1:      domain.ScopeAmount{Tonnes: 1234.5, Percent: 100},
			RecordCount: 3,
		},
		Comparison: domain.Comparison{ChangePercent: 12.5, Direction: domain.DirectionIncrease},
		ScopeBreakdown: []domain.ScopeBreakdownEntry{
			{Scope: 1, Label: "Scope 1", Tonnes: 1234.5, Percent: 100, Color: "#E74C3C"},
		},
		CategoryBreakdown: []domain.CategoryBreakdownEntry{
			{Code: "1.1", Name: "Combustion fixe", Scope: 1, EmissionsTonnes: 1234.5, Percent: 100},
		},
		MonthlyTrend: []domain.MonthlyTrendPoint{{Label: "janv. 2024", Scope1: 100, Total: 100}},
		Methodology:  domain.Methodology{Standard: "GHG Protocol Corporate Standard", FactorSource: "ADEME Base Empreinte", Version: "2024"},
	}
}

var branding = domain.Branding{ToolName: "Carbex", Website: "www.carbex.fr"}

func TestTemplates_RenderEachType(t *testing.T) {
	tpl, err := pdf.LoadTemplates()
	require.NoError(t, err)

	cases := map[domain.ReportType]string{
		domain.ReportTypeSummary:     "Rapport de synthèse carbone",
		domain.ReportTypeDetailed:    "Évolution mensuelle",
		domain.ReportTypeMethodology: "Note méthodologique",
	}
	for rt, marker := range cases {
		t.Run(string(rt), func(t *testing.T) {
			require.True(t, tpl.Has(rt))
			html, err := tpl.Render(rt, sampleData(), branding)
			require.NoError(t, err)
			assert.Contains(t, html, "<!DOCTYPE html>")
			assert.Contains(t, html, marker)
			assert.Contains(t, html, "Acme &lt;SAS&gt;")
			assert.Contains(t, html, "Carbex (www.carbex.fr)")
		})
	}
}

func TestTemplates_SummaryFigures(t *testing.T) {
	tpl, err := pdf.LoadTemplates()
	require.NoError(t, err)
	html, err := tpl.Render(domain.ReportTypeSummary, sampleData(), branding)
	require.NoError(t, err)
	assert.Contains(t, html, "Combustion fixe")
	assert.Contains(t, html, "01/01/2024")
	assert.Contains(t, html, "Rapport généré le 3 février 2025")
	assert.Contains(t, html, `class="increase"`)
}

func TestTemplates_UnknownType(t *testing.T) {
	tpl, err := pdf.LoadTemplates()
	require.NoError(t, err)
	assert.False(t, tpl.Has("annual"))
	_, err = tpl.Render("annual", sampleData(), branding)
	assert.ErrorIs(t, err, domain.ErrInvalidReportType)
}

func TestGotenbergClient_RenderHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forms/chromium/convert/html", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "8.27", r.FormValue("paperWidth"))
		f, hdr, err := r.FormFile("files")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "index.html", hdr.Filename)
		body, _ := io.ReadAll(f)
		assert.Equal(t, "<p>hello</p>", string(body))
		_, _ = w.Write([]byte("%PDF-1.7"))
	}))
	defer srv.Close()

	c := pdf.NewGotenbergClient(srv.URL+"/", time.Second)
	out, err := c.RenderHTML(context.Background(), "<p>hello</p>")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(out))
}

func TestGotenbergClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		http.Error(w, "chromium crashed", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := pdf.NewGotenbergClient(srv.URL, time.Second)
	_, err := c.RenderHTML(context.Background(), "<p/>")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "chromium crashed")
	assert.Error(t, c.Ping(context.Background()))
}

func TestGotenbergClient_Ping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
	}))
	defer srv.Close()
	assert.NoError(t, pdf.NewGotenbergClient(srv.URL, 0).Ping(context.Background()))
}

func TestNewRenderer(t *testing.T) {
	r, err := pdf.NewRenderer(config.PDFConfig{Engine: "gotenberg", GotenbergURL: "http://gotenberg:3000"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &pdf.GotenbergClient{}, r)

	r, err = pdf.NewRenderer(config.PDFConfig{Engine: "chromium"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &pdf.ChromiumRenderer{}, r)
	assert.NoError(t, r.Close())

	_, err = pdf.NewRenderer(config.PDFConfig{Engine: "wkhtmltopdf"}, nil)
	assert.Error(t, err)
}
