package listpdfs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pdfagent/mcp-pdf-reader/internal/pdfdoc"
	"github.com/pdfagent/mcp-pdf-reader/internal/registry"
	"github.com/sirupsen/logrus"
)

const toolName = "list_pdfs_in_directory"

// ListTool recursively enumerates PDF files under a directory
type ListTool struct{}

// init registers the tool
func init() {
	registry.Register(&ListTool{})
}

// Definition returns the tool's definition for MCP registration
func (t *ListTool) Definition() mcp.Tool {
	return mcp.NewTool(
		toolName,
		mcp.WithDescription("Recursively list all PDF files (case-insensitive .pdf) under a directory, with size and modification time where readable. Results follow traversal order, not a sorted order."),
		mcp.WithString("directory_path",
			mcp.Required(),
			mcp.Description("Absolute path to the directory to search"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)
}

// Execute walks the directory tree. Per-file stat failures are recorded on
// the affected entry; only failing to enumerate the top-level directory
// fails the call, and then only via the result envelope.
func (t *ListTool) Execute(ctx context.Context, logger *logrus.Logger, cache *sync.Map, args map[string]any) (*mcp.CallToolResult, error) {
	logger.Debug("Executing list_pdfs_in_directory tool")

	directoryPath, ok := args["directory_path"].(string)
	if !ok || directoryPath == "" {
		errInfo := &pdfdoc.ErrorInfo{Code: pdfdoc.CodeParseOrIO, Message: "missing or invalid required parameter: directory_path"}
		return newToolResultJSON(pdfdoc.Failure(errInfo))
	}

	if errInfo := pdfdoc.ValidateDirectory(directoryPath); errInfo != nil {
		logger.WithField("code", errInfo.Code).Debug("list_pdfs_in_directory validation failed")
		return newToolResultJSON(pdfdoc.Failure(errInfo))
	}

	result, errInfo := list(directoryPath, logger)
	if errInfo != nil {
		logger.WithField("code", errInfo.Code).Debug("list_pdfs_in_directory failed")
		return newToolResultJSON(pdfdoc.Failure(errInfo))
	}

	logger.WithFields(logrus.Fields{
		"search_directory": directoryPath,
		"pdf_count":        result.PdfCount,
	}).Debug("list_pdfs_in_directory completed")

	return newToolResultJSON(result)
}

// list walks the tree rooted at root and collects PDF entries.
func list(root string, logger *logrus.Logger) (*ListResult, *pdfdoc.ErrorInfo) {
	result := &ListResult{
		Success:         true,
		SearchDirectory: root,
		PdfFiles:        make([]FileEntry, 0),
	}

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtree: skip it rather than aborting the walk.
			logger.WithError(err).WithField("path", path).Debug("Skipping unreadable entry")
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(d.Name()), ".pdf") {
			return nil
		}

		entry := FileEntry{
			Filename:  d.Name(),
			FullPath:  path,
			Directory: filepath.Dir(path),
		}
		if rel, relErr := filepath.Rel(root, path); relErr == nil {
			entry.RelativePath = rel
		}

		info, statErr := d.Info()
		switch {
		case statErr == nil:
			size := info.Size()
			modified := float64(info.ModTime().UnixNano()) / float64(time.Second)
			entry.Size = &size
			entry.Modified = &modified
		case errors.Is(statErr, fs.ErrPermission):
			entry.PermissionError = statErr.Error()
		default:
			entry.Error = statErr.Error()
		}

		result.PdfFiles = append(result.PdfFiles, entry)
		return nil
	})
	if walkErr != nil {
		return nil, pdfdoc.DirAccessError(root, walkErr, "Error listing PDFs")
	}

	result.PdfCount = len(result.PdfFiles)
	return result, nil
}

// newToolResultJSON creates a new tool result with JSON content
func newToolResultJSON(data any) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}
