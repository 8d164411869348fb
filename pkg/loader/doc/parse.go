package doc

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

const docXMLMax = 50 << 20

var reNewlines = regexp.MustCompile(`\n{3,}`)

// dialect names the XML elements of one office format that matter for
// plain text extraction.
type dialect struct {
	format string
	part   string

	// text is captured while inside one of these elements.
	text       []string
	paragraphs []string
	breaks     []string
	// content inside these elements is dropped.
	skip []string

	tab   string
	space string

	table string
	row   string
	cell  string
}

var docx = dialect{
	format:     "docx",
	part:       "word/document.xml",
	text:       []string{"t"},
	paragraphs: []string{"p"},
	breaks:     []string{"br", "cr"},
	skip:       []string{"del"},
	tab:        "tab",
	table:      "tbl",
	row:        "tr",
	cell:       "tc",
}

var odt = dialect{
	format:     "odt",
	part:       "content.xml",
	text:       []string{"p", "h"},
	paragraphs: []string{"p", "h"},
	breaks:     []string{"line-break"},
	skip:       []string{"tracked-changes"},
	tab:        "tab",
	space:      "s",
	table:      "table",
	row:        "table-row",
	cell:       "table-cell",
}

func has(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func parseDocx(content []byte) ([]byte, error) {
	return parseOffice(content, docx)
}

func parseODT(content []byte) ([]byte, error) {
	return parseOffice(content, odt)
}

func parseOffice(content []byte, d dialect) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", d.format, err)
	}

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == d.part {
			part = f
			break
		}
	}
	if part == nil {
		return nil, fmt.Errorf("%s not found in %s", d.part, d.format)
	}
	if part.UncompressedSize64 > docXMLMax {
		return nil, fmt.Errorf("%s too large: %d bytes", d.part, part.UncompressedSize64)
	}

	rc, err := part.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", d.part, err)
	}
	defer rc.Close()

	return extractText(xml.NewDecoder(io.LimitReader(rc, int64(docXMLMax))), d)
}

func extractText(dec *xml.Decoder, d dialect) ([]byte, error) {
	var sb strings.Builder
	var (
		textDepth int
		skipDepth int
		insideTbl bool
		cellIdx   int
	)

	writeNewline := func() {
		if sb.Len() == 0 {
			return
		}
		if !strings.HasSuffix(sb.String(), "\n") {
			sb.WriteByte('\n')
		}
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			if has(d.skip, name) {
				skipDepth++
			}
			if has(d.text, name) {
				textDepth++
			}
			if skipDepth > 0 {
				continue
			}
			switch {
			case name == d.tab:
				sb.WriteRune('\t')
			case has(d.breaks, name):
				sb.WriteByte('\n')
			case d.space != "" && name == d.space:
				n := 1
				for _, a := range t.Attr {
					if a.Name.Local == "c" {
						if c, err := strconv.Atoi(a.Value); err == nil && c > 0 {
							n = c
						}
					}
				}
				sb.WriteString(strings.Repeat(" ", n))
			case name == d.table:
				insideTbl = true
				cellIdx = 0
				writeNewline()
			case name == d.row:
				cellIdx = 0
			case name == d.cell && insideTbl:
				if cellIdx > 0 {
					sb.WriteRune('\t')
				}
				cellIdx++
			}

		case xml.EndElement:
			name := t.Name.Local
			if has(d.text, name) && textDepth > 0 {
				textDepth--
			}
			if skipDepth == 0 {
				switch {
				case has(d.paragraphs, name), name == d.row:
					sb.WriteByte('\n')
				case name == d.table:
					insideTbl = false
					sb.WriteByte('\n')
				}
			}
			if has(d.skip, name) && skipDepth > 0 {
				skipDepth--
			}

		case xml.CharData:
			if skipDepth != 0 || textDepth == 0 {
				continue
			}
			sb.Write(t)
		}
	}

	text := strings.TrimSpace(sb.String())
	text = reNewlines.ReplaceAllString(text, "\n\n")

	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	return []byte(text), nil
}
