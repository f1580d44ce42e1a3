package pdfinfo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pdfagent/mcp-pdf-reader/internal/pdfdoc"
	"github.com/pdfagent/mcp-pdf-reader/internal/registry"
	"github.com/sirupsen/logrus"
)

const toolName = "get_pdf_info"

// InfoTool reads page count, document metadata and file size without
// extracting any page text
type InfoTool struct{}

// init registers the tool
func init() {
	registry.Register(&InfoTool{})
}

// Definition returns the tool's definition for MCP registration
func (t *InfoTool) Definition() mcp.Tool {
	return mcp.NewTool(
		toolName,
		mcp.WithDescription("Get basic information about a PDF document: page count, info-dictionary metadata (title, author, dates, ...) and file size. Cheap metadata read, no text extraction."),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Absolute path to the PDF file (the .pdf extension is not enforced; non-PDF content surfaces as a parse error)"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)
}

// Execute reads the document information. All failures are reported inside
// the result envelope, never as transport-level errors.
func (t *InfoTool) Execute(ctx context.Context, logger *logrus.Logger, cache *sync.Map, args map[string]any) (*mcp.CallToolResult, error) {
	logger.Debug("Executing get_pdf_info tool")

	filePath, ok := args["file_path"].(string)
	if !ok || filePath == "" {
		errInfo := &pdfdoc.ErrorInfo{Code: pdfdoc.CodeParseOrIO, Message: "missing or invalid required parameter: file_path"}
		return newToolResultJSON(pdfdoc.Failure(errInfo))
	}

	// Looser validation than read_pdf_text: existence and absoluteness
	// only, no .pdf suffix check.
	if errInfo := pdfdoc.ValidateFile(filePath, false); errInfo != nil {
		logger.WithField("code", errInfo.Code).Debug("get_pdf_info validation failed")
		return newToolResultJSON(pdfdoc.Failure(errInfo))
	}

	result, errInfo := inspect(filePath)
	if errInfo != nil {
		logger.WithField("code", errInfo.Code).Debug("get_pdf_info failed")
		return newToolResultJSON(pdfdoc.Failure(errInfo))
	}

	logger.WithFields(logrus.Fields{
		"file_path":  filePath,
		"page_count": result.PageCount,
		"file_size":  result.FileSize,
	}).Debug("get_pdf_info completed")

	return newToolResultJSON(result)
}

// inspect reads structure-level information about the document.
func inspect(filePath string) (*InfoResult, *pdfdoc.ErrorInfo) {
	pageCount, err := pdfdoc.PageCountFast(filePath)
	if err != nil {
		return nil, pdfdoc.FileAccessError(filePath, err, "Error getting PDF info")
	}

	doc, err := pdfdoc.Open(filePath)
	if err != nil {
		return nil, pdfdoc.FileAccessError(filePath, err, "Error getting PDF info")
	}
	meta := doc.Metadata()
	_ = doc.Close()

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, pdfdoc.FileAccessError(filePath, err, "Error getting PDF info")
	}

	return &InfoResult{
		Success:   true,
		FilePath:  filePath,
		PageCount: pageCount,
		Metadata:  meta,
		FileSize:  fileInfo.Size(),
	}, nil
}

// newToolResultJSON creates a new tool result with JSON content
func newToolResultJSON(data any) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}
