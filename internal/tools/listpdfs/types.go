package listpdfs

// ListResult is the success payload for list_pdfs_in_directory. PdfCount is
// always len(PdfFiles). Ordering follows filesystem traversal order, which
// is not guaranteed to be stable across platforms or filesystems.
type ListResult struct {
	Success         bool        `json:"success"`
	SearchDirectory string      `json:"search_directory"`
	PdfCount        int         `json:"pdf_count"`
	PdfFiles        []FileEntry `json:"pdf_files"`
}

// FileEntry describes one discovered PDF. Size and Modified are best
// effort: a stat failure leaves them unset and records the reason in
// PermissionError or Error instead of dropping the entry.
type FileEntry struct {
	Filename        string   `json:"filename"`
	FullPath        string   `json:"full_path"`
	RelativePath    string   `json:"relative_path"`
	Directory       string   `json:"directory"`
	Size            *int64   `json:"size,omitempty"`
	Modified        *float64 `json:"modified,omitempty"`
	PermissionError string   `json:"permission_error,omitempty"`
	Error           string   `json:"error,omitempty"`
}
