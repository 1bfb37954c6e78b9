package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateGridSpec checks that rowCount rows can be filled from imageCount images.
// Every row must receive at least one image, so 1 <= rowCount <= imageCount.
func ValidateGridSpec(imageCount, rowCount int) error {
	if imageCount <= 0 {
		return New(ErrCodeInvalidGridSpec, "at least one image is required (got %d)", imageCount)
	}
	if rowCount <= 0 {
		return New(ErrCodeInvalidGridSpec, "row count must be at least 1 (got %d)", rowCount)
	}
	if rowCount > imageCount {
		return New(ErrCodeInvalidGridSpec, "row count %d exceeds image count %d", rowCount, imageCount)
	}
	return nil
}

// ValidateLabelCount checks that no more labels than slots were supplied.
// Shorter lists are valid: the remaining rows or columns stay unlabeled.
func ValidateLabelCount(axis string, labels, slots int) error {
	if labels > slots {
		return New(ErrCodeInvalidLabels, "number of %s labels (%d) exceeds the number of %ss (%d)", axis, labels, axis, slots)
	}
	return nil
}

// ValidatePadding checks that a band padding or gutter value is non-negative.
func ValidatePadding(name string, value int) error {
	if value < 0 {
		return New(ErrCodeInvalidPadding, "%s must be non-negative (got %d)", name, value)
	}
	return nil
}

// ValidateOutputPath validates an output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Must carry a file extension (the encoder is chosen from it)
//   - Cannot name a directory (trailing separator)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "output path %q names a directory", path)
	}

	if filepath.Ext(path) == "" {
		return New(ErrCodeInvalidPath, "output path %q has no file extension", path)
	}

	return nil
}
