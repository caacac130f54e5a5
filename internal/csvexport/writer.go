// Package csvexport writes emission records as CSV for spreadsheet tools.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"carbex/internal/domain"
)

// BOM is the UTF-8 byte order mark Excel needs to detect the encoding.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Separator is the field delimiter. French locale spreadsheets expect ';'.
const Separator = ';'

var columns = []string{
	"Date",
	"Scope",
	"Code catégorie",
	"Catégorie",
	"Catégorie GHG",
	"Source",
	"Quantité",
	"Unité",
	"Facteur d'émission",
	"Émissions (kg CO2e)",
	"Méthode Scope 2",
	"Estimé",
}

// Writer wraps csv.Writer for exporting emission records.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	cw := csv.NewWriter(w)
	cw.Comma = Separator
	return &Writer{csv: cw}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRecords converts a batch of records to CSV rows and writes them.
func (w *Writer) WriteRecords(records []domain.EmissionDetail) error {
	for i := range records {
		if err := w.csv.Write(recordToRow(&records[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func recordToRow(r *domain.EmissionDetail) []string {
	row := make([]string, len(columns))
	row[0] = r.Date.Format("2006-01-02")
	row[1] = strconv.Itoa(r.Scope)
	row[2] = r.CategoryCode
	row[3] = r.CategoryName
	if r.GHGCategory != nil {
		row[4] = strconv.Itoa(*r.GHGCategory)
	}
	row[5] = r.SourceName
	row[6] = formatDecimal(r.Quantity, 4)
	row[7] = r.Unit
	row[8] = formatDecimal(r.FactorValue, 6)
	row[9] = formatDecimal(r.CO2eKg, 4)
	if r.Scope2Method != nil {
		row[10] = string(*r.Scope2Method)
	}
	row[11] = formatBool(r.IsEstimated)
	return row
}

// formatDecimal prints v with a comma decimal separator and no trailing zeros.
func formatDecimal(v float64, prec int) string {
	s := strconv.FormatFloat(v, 'f', prec, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return strings.Replace(s, ".", ",", 1)
}

func formatBool(v bool) string {
	if v {
		return "Oui"
	}
	return "Non"
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns emissions_{start}_{end}.csv for an export window.
func BuildFilename(start, end time.Time) string {
	return SanitizeFilename(fmt.Sprintf("emissions_%s_%s", start.Format("2006-01-02"), end.Format("2006-01-02"))) + ".csv"
}
