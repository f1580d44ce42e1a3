package pdfinfo

import "github.com/pdfagent/mcp-pdf-reader/internal/pdfdoc"

// InfoResult is the success payload for get_pdf_info. Metadata always
// carries all of its keys; missing values are empty strings, never null.
type InfoResult struct {
	Success   bool            `json:"success"`
	FilePath  string          `json:"file_path"`
	PageCount int             `json:"page_count"`
	Metadata  pdfdoc.Metadata `json:"metadata"`
	FileSize  int64           `json:"file_size"`
}
