package readpdftext

import "github.com/pdfagent/mcp-pdf-reader/internal/pdfdoc"

// TextResult is the success payload for read_pdf_text. Pages is always
// present, possibly empty, so callers can iterate without nil checks.
type TextResult struct {
	Success    bool         `json:"success"`
	FilePath   string       `json:"file_path"`
	TotalPages int          `json:"total_pages"`
	Pages      []PageResult `json:"pages"`
	FullText   string       `json:"full_text"`
}

// PageResult is the extraction result for one page. PageNumber is the
// 1-based number in the original document, not an index into the returned
// subset. Tables is present only when table extraction was requested; a
// per-page table failure sets TableExtractionError without failing the call.
type PageResult struct {
	PageNumber           int             `json:"page_number"`
	Text                 string          `json:"text"`
	Tables               *[]pdfdoc.Table `json:"tables,omitempty"`
	TableExtractionError string          `json:"table_extraction_error,omitempty"`
}

// textRequest holds the parsed tool arguments. A nil PageNumbers slice
// means "all pages"; an empty non-nil slice selects nothing.
type textRequest struct {
	FilePath      string
	PageNumbers   []int
	ExtractTables bool
}
