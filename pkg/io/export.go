package io

import (
	"bytes"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/gridplot/pkg/errors"
)

// DefaultJPEGQuality is used when a non-positive quality is requested.
const DefaultJPEGQuality = 95

// FormatFor returns the encoder format for path's extension.
func FormatFor(path string) (imaging.Format, error) {
	f, err := imaging.FormatFromFilename(path)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidFormat, "unsupported output format %q (use .jpg, .png, .gif, .tif or .bmp)", filepath.Ext(path))
	}
	return f, nil
}

// Encode writes img to w in the format implied by path. quality only
// applies to JPEG.
func Encode(w io.Writer, img image.Image, path string, quality int) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	if err := imaging.Encode(w, img, format, imaging.JPEGQuality(quality)); err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "encode %s", path)
	}
	return nil
}

// EncodeBytes encodes img into memory in the format implied by path.
func EncodeBytes(img image.Image, path string, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, path, quality); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes encoded image data to path, creating parent directories.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(errors.ErrCodeEncode, err, "create directory for %s", path)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "write %s", path)
	}
	return nil
}

// DebugPath returns path with "_debug" inserted before the extension.
func DebugPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_debug" + ext
}
