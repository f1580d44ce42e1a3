// Package testpdf generates small PDF fixtures for tests.
package testpdf

import (
	"fmt"
	"os"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// DocSpec describes a fixture document: one page per PageTexts entry plus
// optional Info dictionary fields.
type DocSpec struct {
	Title     string
	Author    string
	Subject   string
	Creator   string
	PageTexts []string
}

// WriteDoc writes a PDF with one page per PageTexts entry.
func WriteDoc(path string, spec DocSpec) error {
	doc := gofpdf.New("P", "pt", "A4", "")
	if spec.Title != "" {
		doc.SetTitle(spec.Title, false)
	}
	if spec.Author != "" {
		doc.SetAuthor(spec.Author, false)
	}
	if spec.Subject != "" {
		doc.SetSubject(spec.Subject, false)
	}
	if spec.Creator != "" {
		doc.SetCreator(spec.Creator, false)
	}

	for _, text := range spec.PageTexts {
		doc.AddPage()
		doc.SetFont("Helvetica", "", 12)
		doc.Text(72, 72, text)
	}
	if len(spec.PageTexts) == 0 {
		doc.AddPage()
	}
	return doc.OutputFileAndClose(path)
}

// WriteTableDoc writes a single page laying the given rows out as a table:
// one line per row, columns 150pt apart so cell gaps are unambiguous.
func WriteTableDoc(path string, rows [][]string) error {
	doc := gofpdf.New("P", "pt", "A4", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)

	y := 72.0
	for _, row := range rows {
		x := 72.0
		for _, cell := range row {
			doc.Text(x, y, cell)
			x += 150
		}
		y += 20
	}
	return doc.OutputFileAndClose(path)
}

// WriteNoInfoDoc writes a minimal single-page PDF that carries no Info
// dictionary at all, which gofpdf cannot produce. The xref offsets are
// computed, not hardcoded, so the file is well-formed for strict parsers.
func WriteNoInfoDoc(path string) error {
	content := "BT /F1 12 Tf 72 720 Td (lone page) Tj ET"
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
	}

	var b strings.Builder
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects)+1)
	for i, obj := range objects {
		offsets[i+1] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefOffset := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", len(objects)+1)
	b.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(objects); i++ {
		fmt.Fprintf(&b, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefOffset)

	return os.WriteFile(path, []byte(b.String()), 0600)
}
