package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Block is a paragraph of a parsed document body. Table cell paragraphs
// carry InTable.
type Block struct {
	Style   string
	Text    string
	InTable bool
}

// ReadBlocks extracts the body paragraphs of a .docx in document order.
func ReadBlocks(data []byte) ([]Block, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("docx: open: %w", err)
	}
	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return nil, fmt.Errorf("docx: word/document.xml missing")
	}
	rc, err := doc.Open()
	if err != nil {
		return nil, fmt.Errorf("docx: open body: %w", err)
	}
	defer rc.Close()

	var (
		blocks    []Block
		cur       *Block
		text      strings.Builder
		inText    bool
		tableDeep int
	)
	dec := xml.NewDecoder(rc)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("docx: parse body: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDeep++
			case "p":
				cur = &Block{InTable: tableDeep > 0}
				text.Reset()
			case "pStyle":
				if cur != nil {
					for _, a := range t.Attr {
						if a.Name.Local == "val" {
							cur.Style = a.Value
						}
					}
				}
			case "t":
				inText = true
			}
		case xml.CharData:
			if inText {
				text.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				tableDeep--
			case "t":
				inText = false
			case "p":
				if cur != nil {
					cur.Text = text.String()
					blocks = append(blocks, *cur)
					cur = nil
				}
			}
		}
	}
	return blocks, nil
}
