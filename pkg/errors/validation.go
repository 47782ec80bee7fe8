package errors

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// ValidateOrderNumber validates a purchase order number for safety.
// Order numbers end up in file names, cache keys and HTTP headers, so the
// rules are intentionally conservative:
//   - No empty numbers
//   - No control characters or whitespace
//   - No path separators or traversal sequences
//   - Maximum length of 64 characters
func ValidateOrderNumber(number string) error {
	if number == "" {
		return New(ErrCodeInvalidDocument, "order number cannot be empty")
	}

	if len(number) > 64 {
		return New(ErrCodeInvalidDocument, "order number too long (max 64 characters)")
	}

	for _, r := range number {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidDocument, "order number contains invalid characters")
		}
	}

	if !orderNumberRegex.MatchString(number) {
		return New(ErrCodeInvalidDocument, "invalid order number: %q", number)
	}

	return nil
}

// orderNumberRegex matches order numbers such as "PO-2025-0001" or "PO/2025/01".
var orderNumberRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._/-]*$`)

// documentExtensions lists the accepted document input file extensions.
var documentExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
	".toml": true,
}

// ValidateDocumentFilename validates a document input filename.
// It ensures the filename carries a supported extension and is not hidden.
func ValidateDocumentFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidDocument, "document filename cannot be empty")
	}

	base := filepath.Base(filename)
	if strings.HasPrefix(base, ".") {
		return New(ErrCodeInvalidDocument, "document filename cannot be a hidden file")
	}

	ext := strings.ToLower(filepath.Ext(base))
	if !documentExtensions[ext] {
		return New(ErrCodeInvalidFormat, "unsupported document format %q (must be .json, .yaml, .yml or .toml)", ext)
	}

	return nil
}

// ValidateAssetRef validates an asset reference (e.g. an issuer logo path)
// relative to the asset root. It prevents path traversal attacks.
//
// Validation rules:
//   - Reference cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidateAssetRef(ref string) error {
	if ref == "" {
		return New(ErrCodeInvalidPath, "asset reference cannot be empty")
	}

	const maxRefLength = 500
	if len(ref) > maxRefLength {
		return New(ErrCodeInvalidPath, "asset reference too long (max %d characters)", maxRefLength)
	}

	for _, r := range ref {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "asset reference contains invalid characters")
		}
	}

	if strings.HasPrefix(ref, "/") {
		return New(ErrCodeInvalidPath, "asset reference must be relative (cannot start with /)")
	}

	if strings.Contains(ref, "..") {
		return New(ErrCodeInvalidPath, "asset reference cannot contain path traversal sequences (..)")
	}

	if strings.Contains(ref, "\\") {
		return New(ErrCodeInvalidPath, "asset reference cannot contain backslashes")
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
