package pdfdoc

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Document is an open PDF ready for text, table and metadata extraction.
// A Document holds an open file handle; callers must Close it on all paths.
type Document struct {
	path   string
	file   *os.File
	reader *pdf.Reader
}

// Open opens the PDF at path. The parsing library panics on some malformed
// inputs; panics are recovered and returned as errors so a corrupt file can
// never crash a call.
func Open(path string) (doc *Document, err error) {
	defer recoverTo(&err)

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	return &Document{path: path, file: f, reader: r}, nil
}

// Close releases the underlying file handle.
func (d *Document) Close() error {
	return d.file.Close()
}

// PageCount reports the number of pages in the document.
func (d *Document) PageCount() int {
	return d.reader.NumPage()
}

// PageText extracts the plain text of the given 1-based page number.
// A page with no extractable text yields an empty string, not an error.
func (d *Document) PageText(pageNum int) (text string, err error) {
	defer recoverTo(&err)

	p := d.reader.Page(pageNum)
	if p.V.IsNull() {
		return "", nil
	}

	fonts := make(map[string]*pdf.Font)
	for _, name := range p.Fonts() {
		font := p.Font(name)
		fonts[name] = &font
	}

	return p.GetPlainText(fonts)
}

// Metadata is the document information dictionary as a fixed record. Keys
// absent from the source document stay empty strings so the record shape is
// stable across documents. Dates are raw PDF date strings, not parsed.
type Metadata struct {
	Title            string `json:"title"`
	Author           string `json:"author"`
	Subject          string `json:"subject"`
	Creator          string `json:"creator"`
	Producer         string `json:"producer"`
	CreationDate     string `json:"creation_date"`
	ModificationDate string `json:"modification_date"`
}

// Metadata reads the trailer Info dictionary without touching page content.
func (d *Document) Metadata() (meta Metadata) {
	// A truncated Info dictionary must not take the whole call down.
	defer func() { _ = recover() }()

	info := d.reader.Trailer().Key("Info")
	if info.IsNull() {
		return meta
	}

	meta.Title = textValue(info.Key("Title"))
	meta.Author = textValue(info.Key("Author"))
	meta.Subject = textValue(info.Key("Subject"))
	meta.Creator = textValue(info.Key("Creator"))
	meta.Producer = textValue(info.Key("Producer"))
	meta.CreationDate = rawValue(info.Key("CreationDate"))
	meta.ModificationDate = rawValue(info.Key("ModDate"))
	return meta
}

// PageCountFast reports the page count by reading only the document
// structure, without any text extraction.
func PageCountFast(path string) (count int, err error) {
	defer recoverTo(&err)

	return api.PageCountFile(path)
}

func textValue(v pdf.Value) string {
	if v.Kind() != pdf.String {
		return ""
	}
	return v.Text()
}

func rawValue(v pdf.Value) string {
	if v.Kind() != pdf.String {
		return ""
	}
	return v.RawString()
}

func recoverTo(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("malformed PDF: %v", r)
	}
}
