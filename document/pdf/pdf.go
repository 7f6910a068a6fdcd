// Package pdf reads pages of a PDF document for the extraction workflow.
//
// It uses ledongthuc/pdf (BSD-3, pure Go, no CGO) and exposes per-page
// plain text and row-grouped word cells. This is a separate subpackage so
// that the dependency is only pulled in by users who need PDF support.
package pdf

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"
)

// Document is an open PDF file.
type Document struct {
	f *os.File
	r *pdf.Reader
}

// Open opens the PDF at path. The caller must Close it.
func Open(path string) (*Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	return &Document{f: f, r: r}, nil
}

// Close releases the underlying file.
func (d *Document) Close() error {
	return d.f.Close()
}

// PageCount reports the number of pages.
func (d *Document) PageCount() int {
	return d.r.NumPage()
}

// PageText returns the plain text of the 1-indexed page, NFKC-normalized
// with control characters stripped. Statement PDFs routinely carry
// full-width digits and ligatures that trip up downstream parsing.
func (d *Document) PageText(n int) (string, error) {
	p, err := d.page(n)
	if err != nil {
		return "", err
	}
	text, err := p.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("page %d text: %w", n, err)
	}
	return cleanText(text), nil
}

// PageRows returns the words of the 1-indexed page grouped into rows by
// vertical position, the raw material for table reconstruction. Rows and
// cells that clean down to nothing are dropped.
func (d *Document) PageRows(n int) ([][]string, error) {
	p, err := d.page(n)
	if err != nil {
		return nil, err
	}
	rows, err := p.GetTextByRow()
	if err != nil {
		return nil, fmt.Errorf("page %d rows: %w", n, err)
	}

	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, 0, len(row.Content))
		for _, word := range row.Content {
			if s := cleanText(word.S); s != "" {
				cells = append(cells, s)
			}
		}
		if len(cells) > 0 {
			out = append(out, cells)
		}
	}
	return out, nil
}

func (d *Document) page(n int) (pdf.Page, error) {
	if n < 1 || n > d.r.NumPage() {
		return pdf.Page{}, fmt.Errorf("page %d out of range [1, %d]", n, d.r.NumPage())
	}
	p := d.r.Page(n)
	if p.V.IsNull() {
		return pdf.Page{}, fmt.Errorf("page %d has no content", n)
	}
	return p, nil
}

// cleanText applies NFKC normalization and drops control characters other
// than newlines and tabs.
func cleanText(s string) string {
	s = norm.NFKC.String(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
