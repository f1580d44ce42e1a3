package readpdftext

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pdfagent/mcp-pdf-reader/internal/pdfdoc"
	"github.com/pdfagent/mcp-pdf-reader/internal/registry"
	"github.com/pdfagent/mcp-pdf-reader/internal/tools"
	"github.com/sirupsen/logrus"
)

const toolName = "read_pdf_text"

// ReadTextTool extracts per-page text and optionally tables from a PDF
type ReadTextTool struct{}

// init registers the tool
func init() {
	registry.Register(&ReadTextTool{})
}

// Definition returns the tool's definition for MCP registration
func (t *ReadTextTool) Definition() mcp.Tool {
	return mcp.NewTool(
		toolName,
		mcp.WithDescription("Extract text from a PDF document, optionally with reconstructed tables. Returns per-page text plus the concatenated full text. Failures are reported in the result's 'success'/'error' fields."),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Absolute path to the PDF file"),
		),
		mcp.WithArray("page_numbers",
			mcp.Description("1-based page numbers to extract, in the order they should be returned (all pages when omitted). Out-of-range numbers are ignored."),
			mcp.Items(map[string]any{"type": "integer"}),
		),
		mcp.WithBoolean("extract_tables",
			mcp.Description("Reconstruct tabular data for each extracted page (default: false)"),
			mcp.DefaultBool(false),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)
}

// Execute extracts text from the requested PDF. Every failure, including
// bad parameters, is returned inside the result envelope so the calling
// host only ever branches on the 'success' field.
func (t *ReadTextTool) Execute(ctx context.Context, logger *logrus.Logger, cache *sync.Map, args map[string]any) (*mcp.CallToolResult, error) {
	logger.Debug("Executing read_pdf_text tool")

	request, errInfo := parseRequest(args)
	if errInfo != nil {
		return newToolResultJSON(pdfdoc.Failure(errInfo))
	}

	logger.WithFields(logrus.Fields{
		"file_path":      request.FilePath,
		"page_numbers":   request.PageNumbers,
		"extract_tables": request.ExtractTables,
	}).Debug("read_pdf_text parameters")

	if errInfo := pdfdoc.ValidateFile(request.FilePath, true); errInfo != nil {
		logger.WithField("code", errInfo.Code).Debug("read_pdf_text validation failed")
		return newToolResultJSON(pdfdoc.Failure(errInfo))
	}

	result, errInfo := extract(request)
	if errInfo != nil {
		logger.WithField("code", errInfo.Code).Debug("read_pdf_text extraction failed")
		return newToolResultJSON(pdfdoc.Failure(errInfo))
	}

	logger.WithFields(logrus.Fields{
		"file_path":   request.FilePath,
		"total_pages": result.TotalPages,
		"pages":       len(result.Pages),
	}).Debug("read_pdf_text completed")

	return newToolResultJSON(result)
}

// parseRequest parses and validates the tool arguments
func parseRequest(args map[string]any) (*textRequest, *pdfdoc.ErrorInfo) {
	filePath, ok := args["file_path"].(string)
	if !ok || filePath == "" {
		return nil, &pdfdoc.ErrorInfo{Code: pdfdoc.CodeParseOrIO, Message: "missing or invalid required parameter: file_path"}
	}

	request := &textRequest{FilePath: filePath}

	if raw, present := args["page_numbers"]; present && raw != nil {
		list, ok := raw.([]any)
		if !ok {
			return nil, &pdfdoc.ErrorInfo{Code: pdfdoc.CodeParseOrIO, Message: "invalid parameter: page_numbers must be an array of integers"}
		}
		pages := make([]int, 0, len(list))
		for _, item := range list {
			num, ok := item.(float64)
			if !ok || num != float64(int(num)) {
				return nil, &pdfdoc.ErrorInfo{Code: pdfdoc.CodeParseOrIO, Message: "invalid parameter: page_numbers must be an array of integers"}
			}
			pages = append(pages, int(num))
		}
		request.PageNumbers = pages
	}

	if extractTables, ok := args["extract_tables"].(bool); ok {
		request.ExtractTables = extractTables
	}

	return request, nil
}

// extract opens the document and builds the result for the selected pages.
func extract(request *textRequest) (*TextResult, *pdfdoc.ErrorInfo) {
	doc, err := pdfdoc.Open(request.FilePath)
	if err != nil {
		return nil, pdfdoc.FileAccessError(request.FilePath, err, "Error reading PDF")
	}
	defer func() { _ = doc.Close() }()

	totalPages := doc.PageCount()
	selected := selectPages(request.PageNumbers, totalPages)

	result := &TextResult{
		Success:    true,
		FilePath:   request.FilePath,
		TotalPages: totalPages,
		Pages:      make([]PageResult, 0, len(selected)),
	}

	textParts := make([]string, 0, len(selected))
	for _, pageNum := range selected {
		text, err := doc.PageText(pageNum)
		if err != nil {
			return nil, pdfdoc.FileAccessError(request.FilePath, err, "Error reading PDF")
		}

		page := PageResult{PageNumber: pageNum, Text: text}
		if request.ExtractTables {
			page.Tables, page.TableExtractionError = tablesField(doc.PageTables(pageNum))
		}

		result.Pages = append(result.Pages, page)
		textParts = append(textParts, text)
	}

	result.FullText = strings.Join(textParts, "\n\n")
	return result, nil
}

// tablesField converts a table-extraction outcome into a page result's
// table fields. A failure yields an empty (non-nil) table list plus the
// error message; one bad page must not abort the whole call.
func tablesField(tables []pdfdoc.Table, err error) (*[]pdfdoc.Table, string) {
	if err != nil {
		empty := []pdfdoc.Table{}
		return &empty, err.Error()
	}
	if tables == nil {
		tables = []pdfdoc.Table{}
	}
	return &tables, ""
}

// selectPages resolves the working page set. A nil request means every page
// in ascending order. An explicit list keeps the caller's ordering and
// duplicates; numbers outside 1..totalPages are silently dropped.
func selectPages(requested []int, totalPages int) []int {
	if requested == nil {
		pages := make([]int, totalPages)
		for i := range totalPages {
			pages[i] = i + 1
		}
		return pages
	}

	pages := make([]int, 0, len(requested))
	for _, p := range requested {
		if p > 0 && p <= totalPages {
			pages = append(pages, p)
		}
	}
	return pages
}

// newToolResultJSON creates a new tool result with JSON content
func newToolResultJSON(data any) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// ProvideExtendedInfo provides detailed usage information for the tool
func (t *ReadTextTool) ProvideExtendedInfo() *tools.ExtendedHelp {
	return &tools.ExtendedHelp{
		Examples: []tools.ToolExample{
			{
				Description: "Extract all text from a PDF",
				Arguments: map[string]any{
					"file_path": "/Users/username/documents/report.pdf",
				},
				ExpectedResult: "Per-page text for every page plus the concatenated full_text",
			},
			{
				Description: "Extract specific pages in a specific order",
				Arguments: map[string]any{
					"file_path":    "/Users/username/documents/manual.pdf",
					"page_numbers": []any{3, 1},
				},
				ExpectedResult: "Exactly two page results, page 3 first, preserving the requested order",
			},
			{
				Description: "Extract text and tables",
				Arguments: map[string]any{
					"file_path":      "/Users/username/documents/invoice.pdf",
					"extract_tables": true,
				},
				ExpectedResult: "Each page result carries a 'tables' list; pages where table reconstruction fails carry 'table_extraction_error' instead of failing the call",
			},
		},
		CommonPatterns: []string{
			"Call get_pdf_info first to learn the page count before requesting a subset",
			"Request only the pages you need on large documents to keep responses small",
			"Always branch on the 'success' field of the result, never on transport errors",
		},
		Troubleshooting: []tools.TroubleshootingTip{
			{
				Problem:  "Result has success=false with 'File path must be absolute path'",
				Solution: "Pass a fully qualified path. Relative paths are rejected regardless of the server's working directory.",
			},
			{
				Problem:  "Pages come back with empty text",
				Solution: "Scanned (image-only) PDFs have no embedded text layer. This server does not perform OCR.",
			},
			{
				Problem:  "Requested pages are missing from the result",
				Solution: "Page numbers outside the document's range are silently dropped. Check total_pages in the result.",
			},
		},
		ParameterDetails: map[string]string{
			"file_path":      "Absolute path to the PDF (required). Must end in .pdf, case-insensitive.",
			"page_numbers":   "Optional array of 1-based page numbers. Order is preserved in the result; out-of-range values are ignored, not errors.",
			"extract_tables": "Optional boolean (default false). Table reconstruction is heuristic and best suited to well-aligned column layouts.",
		},
		WhenToUse:    "Use to read the text content of PDF documents, either whole or page by page, optionally recovering simple tables.",
		WhenNotToUse: "Don't use for scanned PDFs needing OCR, password-protected documents, or when only metadata is needed (use get_pdf_info).",
	}
}
