// Package pdf renders report HTML templates and converts them to PDF with
// Gotenberg or a headless Chromium driven by rod.
package pdf

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"carbex/internal/domain"
	"carbex/internal/locale"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateTitles = map[domain.ReportType]string{
	domain.ReportTypeSummary:     "Rapport de synthèse carbone",
	domain.ReportTypeDetailed:    "Rapport carbone détaillé",
	domain.ReportTypeMethodology: "Note méthodologique",
}

var funcs = template.FuncMap{
	"number":   locale.Number,
	"percent":  locale.PercentLabel,
	"date":     func(t time.Time) string { return locale.Date(t) },
	"longdate": locale.LongDate,
	"signed": func(v float64) string {
		s := locale.PercentLabel(v)
		if v > 0 {
			return "+" + s
		}
		return s
	},
	"top": func(entries []domain.CategoryBreakdownEntry, n int) []domain.CategoryBreakdownEntry {
		if len(entries) > n {
			return entries[:n]
		}
		return entries
	},
}

// Templates holds the parsed report templates.
type Templates struct {
	set *template.Template
}

// View is the root object passed to every template.
type View struct {
	Title    string
	Data     *domain.ReportData
	Branding domain.Branding
}

// LoadTemplates parses the embedded templates.
func LoadTemplates() (*Templates, error) {
	set, err := template.New("reports").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("pdf.LoadTemplates: %w", err)
	}
	return &Templates{set: set}, nil
}

// Has reports whether a template exists for the report type.
func (t *Templates) Has(reportType domain.ReportType) bool {
	_, ok := templateTitles[reportType]
	return ok && t.set.Lookup(string(reportType)+".html") != nil
}

// Render executes the template of reportType into a standalone HTML page.
func (t *Templates) Render(reportType domain.ReportType, data *domain.ReportData, branding domain.Branding) (string, error) {
	if !t.Has(reportType) {
		return "", domain.ErrInvalidReportType
	}
	var buf bytes.Buffer
	view := View{Title: templateTitles[reportType], Data: data, Branding: branding}
	if err := t.set.ExecuteTemplate(&buf, string(reportType)+".html", view); err != nil {
		return "", fmt.Errorf("pdf.Render %s: %w", reportType, err)
	}
	return strings.TrimSpace(buf.String()), nil
}
