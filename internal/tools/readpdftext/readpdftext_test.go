package readpdftext

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pdfagent/mcp-pdf-reader/internal/pdfdoc"
	"github.com/pdfagent/mcp-pdf-reader/internal/testpdf"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// execute runs the tool and decodes the JSON payload out of the result.
func execute(t *testing.T, args map[string]any) map[string]any {
	t.Helper()

	tool := &ReadTextTool{}
	result, err := tool.Execute(context.Background(), newTestLogger(), &sync.Map{}, args)
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)

	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(textContent.Text), &payload))
	return payload
}

func writeFixture(t *testing.T, name string, spec testpdf.DocSpec) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, testpdf.WriteDoc(path, spec))
	return path
}

func TestExecuteAllPages(t *testing.T) {
	path := writeFixture(t, "doc.pdf", testpdf.DocSpec{
		PageTexts: []string{"alpha page", "bravo page"},
	})

	payload := execute(t, map[string]any{"file_path": path})

	require.Equal(t, true, payload["success"])
	require.Equal(t, path, payload["file_path"])
	require.Equal(t, float64(2), payload["total_pages"])

	pages := payload["pages"].([]any)
	require.Len(t, pages, 2)

	first := pages[0].(map[string]any)
	require.Equal(t, float64(1), first["page_number"])
	require.Contains(t, first["text"].(string), "alpha")
	_, hasTables := first["tables"]
	require.False(t, hasTables, "tables must be omitted unless requested")

	fullText := payload["full_text"].(string)
	require.Contains(t, fullText, "alpha")
	require.Contains(t, fullText, "bravo")
}

func TestExecutePreservesRequestedOrder(t *testing.T) {
	path := writeFixture(t, "doc.pdf", testpdf.DocSpec{
		PageTexts: []string{"alpha page", "bravo page", "charlie page"},
	})

	payload := execute(t, map[string]any{
		"file_path":    path,
		"page_numbers": []any{float64(3), float64(1)},
	})

	require.Equal(t, true, payload["success"])
	pages := payload["pages"].([]any)
	require.Len(t, pages, 2)
	require.Equal(t, float64(3), pages[0].(map[string]any)["page_number"])
	require.Equal(t, float64(1), pages[1].(map[string]any)["page_number"])
}

func TestExecuteOutOfRangePagesDroppedSilently(t *testing.T) {
	path := writeFixture(t, "doc.pdf", testpdf.DocSpec{
		PageTexts: []string{"only page"},
	})

	payload := execute(t, map[string]any{
		"file_path":    path,
		"page_numbers": []any{float64(0), float64(99)},
	})

	require.Equal(t, true, payload["success"])
	require.Equal(t, float64(1), payload["total_pages"])
	require.Len(t, payload["pages"].([]any), 0)
	require.Equal(t, "", payload["full_text"])
}

func TestExecuteIsIdempotent(t *testing.T) {
	path := writeFixture(t, "doc.pdf", testpdf.DocSpec{
		PageTexts: []string{"stable content"},
	})
	args := map[string]any{"file_path": path}

	first := execute(t, args)
	second := execute(t, args)
	require.Equal(t, first, second)
}

func TestExecuteRelativePath(t *testing.T) {
	payload := execute(t, map[string]any{"file_path": "doc.pdf"})

	require.Equal(t, false, payload["success"])
	require.Equal(t, "File path must be absolute path, got: doc.pdf", payload["error"])
	_, hasPages := payload["pages"]
	require.False(t, hasPages, "failure envelope must not carry payload fields")
}

func TestExecuteFileNotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.pdf")
	payload := execute(t, map[string]any{"file_path": missing})

	require.Equal(t, false, payload["success"])
	require.Equal(t, "File not found: "+missing, payload["error"])
}

func TestExecuteRejectsNonPDFExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, testpdf.WriteDoc(path, testpdf.DocSpec{PageTexts: []string{"text"}}))

	payload := execute(t, map[string]any{"file_path": path})

	require.Equal(t, false, payload["success"])
	require.Equal(t, "File must be a PDF", payload["error"])
}

func TestExecuteMissingFilePath(t *testing.T) {
	payload := execute(t, map[string]any{})

	require.Equal(t, false, payload["success"])
	require.Contains(t, payload["error"], "file_path")
}

func TestExecuteRejectsFractionalPageNumbers(t *testing.T) {
	payload := execute(t, map[string]any{
		"file_path":    "/tmp/doc.pdf",
		"page_numbers": []any{1.5},
	})

	require.Equal(t, false, payload["success"])
	require.Contains(t, payload["error"], "page_numbers")
}

func TestExecuteExtractsTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.pdf")
	require.NoError(t, testpdf.WriteTableDoc(path, [][]string{
		{"Name", "Qty"},
		{"Widget", "3"},
	}))

	payload := execute(t, map[string]any{
		"file_path":      path,
		"extract_tables": true,
	})

	require.Equal(t, true, payload["success"])
	pages := payload["pages"].([]any)
	require.Len(t, pages, 1)

	page := pages[0].(map[string]any)
	tables, ok := page["tables"].([]any)
	require.True(t, ok, "tables must be present when requested")
	require.Len(t, tables, 1)

	table := tables[0].([]any)
	require.Len(t, table, 2)
	header := table[0].([]any)
	require.Equal(t, "Name", header[0])
	require.Equal(t, "Qty", header[1])
	data := table[1].([]any)
	require.Equal(t, "Widget", data[0])
	require.Equal(t, "3", data[1])
}

func TestTablesField(t *testing.T) {
	someTables := []pdfdoc.Table{{{strPtr("Name"), strPtr("Qty")}}}

	tests := []struct {
		name        string
		tables      []pdfdoc.Table
		err         error
		wantTables  []pdfdoc.Table
		wantMessage string
	}{
		{
			name:        "failure yields empty list and the message",
			err:         errors.New("malformed PDF: bad content stream"),
			wantTables:  []pdfdoc.Table{},
			wantMessage: "malformed PDF: bad content stream",
		},
		{
			name:       "page without tables yields empty list, no error",
			tables:     nil,
			wantTables: []pdfdoc.Table{},
		},
		{
			name:       "reconstructed tables pass through",
			tables:     someTables,
			wantTables: someTables,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables, message := tablesField(tt.tables, tt.err)
			require.NotNil(t, tables, "tables list must be present even on failure")
			require.Equal(t, tt.wantTables, *tables)
			require.Equal(t, tt.wantMessage, message)
		})
	}
}

func TestTablesFieldFailureSerializesEmptyList(t *testing.T) {
	// The wire shape on a per-page table failure is tables=[] plus
	// table_extraction_error, with the page (and the call) still succeeding.
	tables, message := tablesField(nil, errors.New("boom"))
	page := PageResult{PageNumber: 1, Text: "body", Tables: tables, TableExtractionError: message}

	raw, err := json.Marshal(page)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	list, present := decoded["tables"].([]any)
	require.True(t, present, "tables must serialize on failure")
	require.Len(t, list, 0)
	require.Equal(t, "boom", decoded["table_extraction_error"])
}

func TestExecutePermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root bypasses file permissions")
	}

	dir := t.TempDir()
	locked := filepath.Join(dir, "locked")
	require.NoError(t, os.Mkdir(locked, 0700))
	path := filepath.Join(locked, "doc.pdf")
	require.NoError(t, testpdf.WriteDoc(path, testpdf.DocSpec{PageTexts: []string{"secret"}}))
	require.NoError(t, os.Chmod(locked, 0000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0700) })

	payload := execute(t, map[string]any{"file_path": path})

	require.Equal(t, false, payload["success"])
	errMsg := payload["error"].(string)
	require.Contains(t, errMsg, "Permission denied accessing file")
	require.Contains(t, errMsg, path)
}

func strPtr(s string) *string { return &s }

func TestExtractFileRemovedAfterValidation(t *testing.T) {
	// Simulates the file disappearing between validation and open: extract
	// must report a parse/io failure, never panic.
	missing := filepath.Join(t.TempDir(), "gone.pdf")

	result, errInfo := extract(&textRequest{FilePath: missing})
	require.Nil(t, result)
	require.NotNil(t, errInfo)
	require.Contains(t, errInfo.Message, "Error reading PDF")
}

func TestSelectPages(t *testing.T) {
	tests := []struct {
		name       string
		requested  []int
		totalPages int
		expected   []int
	}{
		{
			name:       "nil means all pages ascending",
			requested:  nil,
			totalPages: 3,
			expected:   []int{1, 2, 3},
		},
		{
			name:       "explicit order preserved",
			requested:  []int{3, 1},
			totalPages: 3,
			expected:   []int{3, 1},
		},
		{
			name:       "duplicates preserved",
			requested:  []int{2, 2},
			totalPages: 3,
			expected:   []int{2, 2},
		},
		{
			name:       "out of range dropped",
			requested:  []int{0, 1, 4, -2},
			totalPages: 3,
			expected:   []int{1},
		},
		{
			name:       "empty selection stays empty",
			requested:  []int{},
			totalPages: 3,
			expected:   []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := selectPages(tt.requested, tt.totalPages)
			require.Equal(t, tt.expected, got)
		})
	}
}
