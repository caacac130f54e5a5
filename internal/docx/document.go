// Package docx writes minimal WordprocessingML documents: styled headings,
// paragraphs, bullet lists, tables, a TOC field and page breaks.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"time"
)

const (
	nsW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	colorHeaderFill = "2E75B6"
	tableWidth      = 9000
)

// Properties are the package-level document properties.
type Properties struct {
	Title   string
	Subject string
	Creator string
	Company string
	Created time.Time
}

// Align is a paragraph alignment.
type Align string

const (
	AlignLeft   Align = ""
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Run is a span of text with character formatting.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
	Size   int // half-points; 0 keeps the style size
	Color  string
}

// Document accumulates body blocks in order.
type Document struct {
	props Properties
	body  []interface{}
}

// New creates an empty document.
func New(props Properties) *Document {
	if props.Created.IsZero() {
		props.Created = time.Now()
	}
	return &Document{props: props}
}

// Title adds a paragraph in the Title style.
func (d *Document) Title(text string) {
	d.styled("Title", AlignCenter, Run{Text: text})
}

// Heading adds a heading paragraph; level is clamped to 1..3.
func (d *Document) Heading(level int, text string) {
	if level < 1 {
		level = 1
	}
	if level > 3 {
		level = 3
	}
	d.styled(fmt.Sprintf("Heading%d", level), AlignLeft, Run{Text: text})
}

// Paragraph adds a Normal paragraph made of runs.
func (d *Document) Paragraph(align Align, runs ...Run) {
	d.styled("", align, runs...)
}

// Text adds a plain Normal paragraph.
func (d *Document) Text(text string) {
	d.styled("", AlignLeft, Run{Text: text})
}

// Bullet adds a bulleted list item.
func (d *Document) Bullet(runs ...Run) {
	p := newParagraph("ListBullet", AlignLeft, runs)
	p.Props.NumPr = &xNumPr{Level: xVal{Val: "0"}, NumID: xVal{Val: "1"}}
	d.body = append(d.body, p)
}

// PageBreak starts a new page.
func (d *Document) PageBreak() {
	d.body = append(d.body, xParagraph{Items: []interface{}{xRun{Break: &xBreak{Type: "page"}}}})
}

// TOC inserts a table of contents field that Word fills on open.
func (d *Document) TOC(placeholder string) {
	d.body = append(d.body, xParagraph{Items: []interface{}{xField{
		Instr: `TOC \o "1-3" \h \z \u`,
		Run:   xRun{Text: &xText{Space: "preserve", Value: placeholder}},
	}}})
}

// Table adds a bordered table with a shaded header row.
func (d *Document) Table(headers []string, rows [][]string) {
	cols := len(headers)
	if cols == 0 {
		return
	}
	grid := make([]xGridCol, cols)
	for i := range grid {
		grid[i] = xGridCol{W: tableWidth / cols}
	}

	t := xTable{
		Props: xTblPr{
			Style: xVal{Val: "TableGrid"},
			Width: xWidth{W: tableWidth, Type: "dxa"},
		},
		Grid: xTblGrid{Cols: grid},
	}
	header := xRow{}
	for _, h := range headers {
		header.Cells = append(header.Cells, xCell{
			Props:      &xTcPr{Shading: &xShd{Val: "clear", Color: "auto", Fill: colorHeaderFill}},
			Paragraphs: []xParagraph{newParagraph("", AlignLeft, []Run{{Text: h, Bold: true, Color: "FFFFFF"}})},
		})
	}
	t.Rows = append(t.Rows, header)
	for _, r := range rows {
		row := xRow{}
		for i := 0; i < cols; i++ {
			text := ""
			if i < len(r) {
				text = r[i]
			}
			row.Cells = append(row.Cells, xCell{
				Paragraphs: []xParagraph{newParagraph("", AlignLeft, []Run{{Text: text}})},
			})
		}
		t.Rows = append(t.Rows, row)
	}
	d.body = append(d.body, t)
}

func (d *Document) styled(style string, align Align, runs ...Run) {
	d.body = append(d.body, newParagraph(style, align, runs))
}

func newParagraph(style string, align Align, runs []Run) xParagraph {
	p := xParagraph{Props: &xPPr{}}
	if style != "" {
		p.Props.Style = &xVal{Val: style}
	}
	if align != AlignLeft {
		p.Props.Jc = &xVal{Val: string(align)}
	}
	for _, r := range runs {
		p.Items = append(p.Items, newRun(r))
	}
	return p
}

func newRun(r Run) xRun {
	out := xRun{Text: &xText{Space: "preserve", Value: r.Text}}
	if r.Bold || r.Italic || r.Size > 0 || r.Color != "" {
		props := &xRPr{}
		if r.Bold {
			props.Bold = &struct{}{}
		}
		if r.Italic {
			props.Italic = &struct{}{}
		}
		if r.Color != "" {
			props.Color = &xVal{Val: r.Color}
		}
		if r.Size > 0 {
			props.Size = &xVal{Val: fmt.Sprint(r.Size)}
		}
		out.Props = props
	}
	return out
}

// WriteTo serializes the document as a .docx package.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	body, err := xml.Marshal(xDocument{
		W:    nsW,
		R:    nsR,
		Body: xBody{Items: d.body, Section: defaultSection()},
	})
	if err != nil {
		return 0, fmt.Errorf("docx: marshal body: %w", err)
	}

	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)
	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(rootRelsXML)},
		{"docProps/core.xml", d.coreXML()},
		{"docProps/app.xml", d.appXML()},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML)},
		{"word/styles.xml", []byte(stylesXML)},
		{"word/numbering.xml", []byte(numberingXML)},
		{"word/document.xml", append([]byte(xml.Header), body...)},
	}
	for _, p := range parts {
		f, err := zw.Create(p.name)
		if err != nil {
			return cw.n, fmt.Errorf("docx: create %s: %w", p.name, err)
		}
		if _, err := f.Write(p.data); err != nil {
			return cw.n, fmt.Errorf("docx: write %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return cw.n, fmt.Errorf("docx: close: %w", err)
	}
	return cw.n, nil
}

func escape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func (d *Document) coreXML() []byte {
	created := d.props.Created.UTC().Format(time.RFC3339)
	return []byte(fmt.Sprintf(coreXMLTemplate,
		escape(d.props.Title), escape(d.props.Subject), escape(d.props.Creator),
		escape(d.props.Creator), created, created))
}

func (d *Document) appXML() []byte {
	return []byte(fmt.Sprintf(appXMLTemplate, escape(d.props.Creator), escape(d.props.Company)))
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
