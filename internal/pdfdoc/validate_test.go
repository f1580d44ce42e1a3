package pdfdoc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()

	pdfPath := filepath.Join(dir, "doc.pdf")
	if err := os.WriteFile(pdfPath, []byte("%PDF-1.4\n"), 0600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	txtPath := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(txtPath, []byte("plain text"), 0600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	missingPath := filepath.Join(dir, "missing.pdf")

	tests := []struct {
		name        string
		path        string
		requirePDF  bool
		wantCode    ErrorCode
		wantMessage string
	}{
		{
			name:        "relative path rejected before existence check",
			path:        "missing.pdf",
			requirePDF:  true,
			wantCode:    CodeNotAbsolutePath,
			wantMessage: "File path must be absolute path, got: missing.pdf",
		},
		{
			name:        "missing file",
			path:        missingPath,
			requirePDF:  true,
			wantCode:    CodeNotFound,
			wantMessage: "File not found: " + missingPath,
		},
		{
			name:        "existing file without pdf extension",
			path:        txtPath,
			requirePDF:  true,
			wantCode:    CodeNotAPDF,
			wantMessage: "File must be a PDF",
		},
		{
			name:       "extension not enforced when requirePDF is false",
			path:       txtPath,
			requirePDF: false,
		},
		{
			name:       "valid pdf path",
			path:       pdfPath,
			requirePDF: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errInfo := ValidateFile(tt.path, tt.requirePDF)
			if tt.wantCode == "" {
				if errInfo != nil {
					t.Fatalf("expected no error, got %q (%s)", errInfo.Message, errInfo.Code)
				}
				return
			}
			if errInfo == nil {
				t.Fatalf("expected error code %s, got nil", tt.wantCode)
			}
			if errInfo.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", errInfo.Code, tt.wantCode)
			}
			if errInfo.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", errInfo.Message, tt.wantMessage)
			}
		})
	}
}

func TestValidateFileUppercaseExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "REPORT.PDF")
	if err := os.WriteFile(path, []byte("%PDF-1.4\n"), 0600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	if errInfo := ValidateFile(path, true); errInfo != nil {
		t.Fatalf("uppercase .PDF should be accepted, got %q", errInfo.Message)
	}
}

func TestValidateDirectory(t *testing.T) {
	dir := t.TempDir()

	filePath := filepath.Join(dir, "doc.pdf")
	if err := os.WriteFile(filePath, []byte("%PDF-1.4\n"), 0600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	missingDir := filepath.Join(dir, "nope")

	tests := []struct {
		name        string
		path        string
		wantCode    ErrorCode
		wantMessage string
	}{
		{
			name:        "relative path rejected",
			path:        "docs",
			wantCode:    CodeNotAbsolutePath,
			wantMessage: "Directory path must be absolute path, got: docs",
		},
		{
			name:        "missing directory",
			path:        missingDir,
			wantCode:    CodeNotFound,
			wantMessage: "Directory not found: " + missingDir,
		},
		{
			name:        "regular file is not a directory",
			path:        filePath,
			wantCode:    CodeNotADirectory,
			wantMessage: "Path is not a directory: " + filePath,
		},
		{
			name: "valid directory",
			path: dir,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errInfo := ValidateDirectory(tt.path)
			if tt.wantCode == "" {
				if errInfo != nil {
					t.Fatalf("expected no error, got %q (%s)", errInfo.Message, errInfo.Code)
				}
				return
			}
			if errInfo == nil {
				t.Fatalf("expected error code %s, got nil", tt.wantCode)
			}
			if errInfo.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", errInfo.Code, tt.wantCode)
			}
			if errInfo.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", errInfo.Message, tt.wantMessage)
			}
		})
	}
}

func TestValidateFilePermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root bypasses file permissions")
	}

	dir := t.TempDir()
	locked := filepath.Join(dir, "locked")
	if err := os.Mkdir(locked, 0700); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	path := filepath.Join(locked, "doc.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4\n"), 0600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	if err := os.Chmod(locked, 0000); err != nil {
		t.Fatalf("failed to chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0700) })

	errInfo := ValidateFile(path, true)
	if errInfo == nil {
		t.Fatal("expected a permission error")
	}
	if errInfo.Code != CodePermissionDenied {
		t.Errorf("code = %s, want %s", errInfo.Code, CodePermissionDenied)
	}
	if !strings.Contains(errInfo.Message, path) {
		t.Errorf("message %q should contain the path", errInfo.Message)
	}
}

func TestFailureEnvelope(t *testing.T) {
	errInfo := newError(CodeNotFound, "File not found: /tmp/x.pdf")
	result := Failure(errInfo)

	if result.Success {
		t.Error("failure envelope must have success=false")
	}
	if result.Error != "File not found: /tmp/x.pdf" {
		t.Errorf("error message = %q", result.Error)
	}
}
