package pdfdoc

import (
	"os"
	"path/filepath"
	"strings"
)

// ValidateFile checks a candidate file path before any resource is opened:
// the path must be absolute and must exist, and when requirePDF is set the
// filename must end in .pdf (case-insensitive). Checks short-circuit on the
// first failure. Read-only stat calls, no other side effects.
func ValidateFile(path string, requirePDF bool) *ErrorInfo {
	if !filepath.IsAbs(path) {
		return newError(CodeNotAbsolutePath, "File path must be absolute path, got: %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return newError(CodeNotFound, "File not found: %s", path)
		}
		return FileAccessError(path, err, "Error accessing file")
	}
	if requirePDF && !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return newError(CodeNotAPDF, "File must be a PDF")
	}
	return nil
}

// ValidateDirectory checks a candidate directory path: absolute, exists,
// and resolves to a directory rather than a regular file.
func ValidateDirectory(path string) *ErrorInfo {
	if !filepath.IsAbs(path) {
		return newError(CodeNotAbsolutePath, "Directory path must be absolute path, got: %s", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return newError(CodeNotFound, "Directory not found: %s", path)
		}
		return DirAccessError(path, err, "Error accessing directory")
	}
	if !info.IsDir() {
		return newError(CodeNotADirectory, "Path is not a directory: %s", path)
	}
	return nil
}
