package docx

import "encoding/xml"

type xDocument struct {
	XMLName xml.Name `xml:"w:document"`
	W       string   `xml:"xmlns:w,attr"`
	R       string   `xml:"xmlns:r,attr"`
	Body    xBody    `xml:"w:body"`
}

type xBody struct {
	Items   []interface{} `xml:",any"`
	Section xSectPr       `xml:"w:sectPr"`
}

type xSectPr struct {
	PageSize   xPgSz  `xml:"w:pgSz"`
	PageMargin xPgMar `xml:"w:pgMar"`
}

type xPgSz struct {
	W int `xml:"w:w,attr"`
	H int `xml:"w:h,attr"`
}

type xPgMar struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
}

// A4 with 2cm margins.
func defaultSection() xSectPr {
	return xSectPr{
		PageSize:   xPgSz{W: 11906, H: 16838},
		PageMargin: xPgMar{Top: 1134, Right: 1134, Bottom: 1134, Left: 1134},
	}
}

type xVal struct {
	Val string `xml:"w:val,attr"`
}

type xParagraph struct {
	XMLName xml.Name      `xml:"w:p"`
	Props   *xPPr         `xml:"w:pPr,omitempty"`
	Items   []interface{} `xml:",any"`
}

type xPPr struct {
	Style *xVal   `xml:"w:pStyle,omitempty"`
	NumPr *xNumPr `xml:"w:numPr,omitempty"`
	Jc    *xVal   `xml:"w:jc,omitempty"`
}

type xNumPr struct {
	Level xVal `xml:"w:ilvl"`
	NumID xVal `xml:"w:numId"`
}

type xRun struct {
	XMLName xml.Name `xml:"w:r"`
	Props   *xRPr    `xml:"w:rPr,omitempty"`
	Break   *xBreak  `xml:"w:br,omitempty"`
	Text    *xText   `xml:"w:t,omitempty"`
}

type xRPr struct {
	Bold   *struct{} `xml:"w:b,omitempty"`
	Italic *struct{} `xml:"w:i,omitempty"`
	Color  *xVal     `xml:"w:color,omitempty"`
	Size   *xVal     `xml:"w:sz,omitempty"`
}

type xBreak struct {
	Type string `xml:"w:type,attr,omitempty"`
}

type xText struct {
	Space string `xml:"xml:space,attr,omitempty"`
	Value string `xml:",chardata"`
}

type xField struct {
	XMLName xml.Name `xml:"w:fldSimple"`
	Instr   string   `xml:"w:instr,attr"`
	Run     xRun     `xml:"w:r"`
}

type xTable struct {
	XMLName xml.Name `xml:"w:tbl"`
	Props   xTblPr   `xml:"w:tblPr"`
	Grid    xTblGrid `xml:"w:tblGrid"`
	Rows    []xRow   `xml:"w:tr"`
}

type xTblPr struct {
	Style xVal   `xml:"w:tblStyle"`
	Width xWidth `xml:"w:tblW"`
}

type xWidth struct {
	W    int    `xml:"w:w,attr"`
	Type string `xml:"w:type,attr"`
}

type xTblGrid struct {
	Cols []xGridCol `xml:"w:gridCol"`
}

type xGridCol struct {
	W int `xml:"w:w,attr"`
}

type xRow struct {
	Cells []xCell `xml:"w:tc"`
}

type xCell struct {
	Props      *xTcPr       `xml:"w:tcPr,omitempty"`
	Paragraphs []xParagraph `xml:"w:p"`
}

type xTcPr struct {
	Shading *xShd `xml:"w:shd,omitempty"`
}

type xShd struct {
	Val   string `xml:"w:val,attr"`
	Color string `xml:"w:color,attr"`
	Fill  string `xml:"w:fill,attr"`
}
