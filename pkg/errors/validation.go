package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxPathLength bounds vault-relative paths accepted from users and clients.
const maxPathLength = 500

// ValidatePath validates a vault-relative file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") || filepath.IsAbs(path) {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateCanvasPath validates a vault-relative path to a canvas document.
func ValidateCanvasPath(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	return ValidateCanvasName(path)
}

// ValidateCanvasName checks that path, relative or not, names a canvas
// document.
func ValidateCanvasName(path string) error {
	if !strings.EqualFold(filepath.Ext(path), ".canvas") {
		return New(ErrCodeInvalidPath, "not a canvas file: %q", path)
	}
	return nil
}
