// Package spreadsheet wraps excelize with the styles shared by the xlsx exports.
package spreadsheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	colorTitle       = "1F4E79"
	colorTableHeader = "2E75B6"
	numberFormat     = "#,##0.00"
)

// Workbook is an excelize file plus the registered style IDs.
type Workbook struct {
	f *excelize.File

	title       int
	tableHeader int
	bold        int
	number      int
	fills       map[string]int
	boldFills   map[string]int
	created     bool
}

// New creates an empty workbook with the shared styles registered.
func New() (*Workbook, error) {
	f := excelize.NewFile()
	w := &Workbook{f: f, fills: map[string]int{}, boldFills: map[string]int{}}

	var err error
	if w.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{colorTitle}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	}); err != nil {
		return nil, err
	}
	if w.tableHeader, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{colorTableHeader}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	}); err != nil {
		return nil, err
	}
	if w.bold, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return nil, err
	}
	format := numberFormat
	if w.number, err = f.NewStyle(&excelize.Style{CustomNumFmt: &format}); err != nil {
		return nil, err
	}
	return w, nil
}

func thinBorders() []excelize.Border {
	out := make([]excelize.Border, 0, 4)
	for _, side := range []string{"left", "top", "right", "bottom"} {
		out = append(out, excelize.Border{Type: side, Color: "000000", Style: 1})
	}
	return out
}

// File exposes the underlying excelize file.
func (w *Workbook) File() *excelize.File { return w.f }

// AddSheet appends a sheet. The default sheet of a new file is renamed on
// first use so the workbook holds only named sheets.
func (w *Workbook) AddSheet(name string) error {
	if !w.created {
		w.created = true
		return w.f.SetSheetName(w.f.GetSheetName(0), name)
	}
	_, err := w.f.NewSheet(name)
	return err
}

// Cell returns the A1 reference of (col, row), both 1-based.
func Cell(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		panic(fmt.Sprintf("spreadsheet: invalid cell %d,%d", col, row))
	}
	return name
}

// Set writes value into cell.
func (w *Workbook) Set(sheet, cell string, value interface{}) error {
	return w.f.SetCellValue(sheet, cell, value)
}

// SetRow writes values left to right starting at column A of row.
func (w *Workbook) SetRow(sheet string, row int, values ...interface{}) error {
	for i, v := range values {
		if v == nil {
			continue
		}
		if err := w.f.SetCellValue(sheet, Cell(i+1, row), v); err != nil {
			return err
		}
	}
	return nil
}

// Title writes a merged, styled banner across columns A..lastCol of row 1.
func (w *Workbook) Title(sheet, text, lastCol string) error {
	if err := w.f.SetCellValue(sheet, "A1", text); err != nil {
		return err
	}
	if err := w.f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return err
	}
	if err := w.f.SetCellStyle(sheet, "A1", lastCol+"1", w.title); err != nil {
		return err
	}
	return w.f.SetRowHeight(sheet, 1, 30)
}

// TableHeader writes headers on row and applies the header style.
func (w *Workbook) TableHeader(sheet string, row int, headers ...string) error {
	for i, h := range headers {
		if err := w.f.SetCellValue(sheet, Cell(i+1, row), h); err != nil {
			return err
		}
	}
	return w.f.SetCellStyle(sheet, Cell(1, row), Cell(len(headers), row), w.tableHeader)
}

// Bold applies a bold font to the range.
func (w *Workbook) Bold(sheet, from, to string) error {
	return w.f.SetCellStyle(sheet, from, to, w.bold)
}

// BoldFill applies a bold font over a solid background color.
func (w *Workbook) BoldFill(sheet, from, to, color string) error {
	id, ok := w.boldFills[color]
	if !ok {
		var err error
		id, err = w.f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true},
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
		})
		if err != nil {
			return err
		}
		w.boldFills[color] = id
	}
	return w.f.SetCellStyle(sheet, from, to, id)
}

// Fill applies a solid background color with a bold font and the number format.
func (w *Workbook) Fill(sheet, from, to, color string) error {
	id, ok := w.fills[color]
	if !ok {
		format := numberFormat
		var err error
		id, err = w.f.NewStyle(&excelize.Style{
			Font:         &excelize.Font{Bold: true},
			Fill:         excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
			CustomNumFmt: &format,
		})
		if err != nil {
			return err
		}
		w.fills[color] = id
	}
	return w.f.SetCellStyle(sheet, from, to, id)
}

// Number applies the two-decimal number format.
func (w *Workbook) Number(sheet, from, to string) error {
	return w.f.SetCellStyle(sheet, from, to, w.number)
}

// Merge merges a range.
func (w *Workbook) Merge(sheet, from, to string) error {
	return w.f.MergeCell(sheet, from, to)
}

// Widths sets column widths, e.g. Widths(sheet, map[string]float64{"A": 25}).
func (w *Workbook) Widths(sheet string, widths map[string]float64) error {
	for col, width := range widths {
		if err := w.f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}
	return nil
}

// WriteTo serializes the workbook as xlsx with the first sheet active.
func (w *Workbook) WriteTo(out io.Writer) (int64, error) {
	w.f.SetActiveSheet(0)
	return w.f.WriteTo(out)
}

// Close releases resources held by the workbook.
func (w *Workbook) Close() error {
	return w.f.Close()
}
