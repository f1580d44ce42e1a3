package pdfdoc

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrorCode tags an operation failure so in-process callers can branch on
// the failure class instead of inspecting message strings.
type ErrorCode string

const (
	CodeNotAbsolutePath  ErrorCode = "not_absolute_path"
	CodeNotFound         ErrorCode = "not_found"
	CodeNotAPDF          ErrorCode = "not_a_pdf"
	CodeNotADirectory    ErrorCode = "not_a_directory"
	CodePermissionDenied ErrorCode = "permission_denied"
	CodeParseOrIO        ErrorCode = "parse_or_io_failure"
)

// ErrorInfo carries a failure class plus the human-readable message that
// ends up in the response envelope.
type ErrorInfo struct {
	Code    ErrorCode
	Message string
}

func (e *ErrorInfo) Error() string {
	return e.Message
}

func newError(code ErrorCode, format string, args ...any) *ErrorInfo {
	return &ErrorInfo{Code: code, Message: fmt.Sprintf(format, args...)}
}

// FileAccessError classifies an error from opening, statting or parsing a
// file. Permission failures keep the offending path and the underlying
// system message; everything else becomes a generic failure prefixed with
// the operation's own wording (e.g. "Error reading PDF").
func FileAccessError(path string, err error, genericPrefix string) *ErrorInfo {
	if errors.Is(err, fs.ErrPermission) {
		return newError(CodePermissionDenied, "Permission denied accessing file: %s. Error: %v", path, err)
	}
	return newError(CodeParseOrIO, "%s: %v", genericPrefix, err)
}

// DirAccessError is FileAccessError with directory wording.
func DirAccessError(path string, err error, genericPrefix string) *ErrorInfo {
	if errors.Is(err, fs.ErrPermission) {
		return newError(CodePermissionDenied, "Permission denied accessing directory: %s. Error: %v", path, err)
	}
	return newError(CodeParseOrIO, "%s: %v", genericPrefix, err)
}

// ErrorResult is the failure envelope shared by every tool. Success results
// carry their own payload shapes; the failure shape is always just these
// two fields.
type ErrorResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Failure wraps an ErrorInfo in the response envelope.
func Failure(e *ErrorInfo) ErrorResult {
	return ErrorResult{Success: false, Error: e.Message}
}
