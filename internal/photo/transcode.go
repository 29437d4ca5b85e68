package photo

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned by a Transcoder that cannot convert the
// given image. The batch pipeline skips the file and carries on.
var ErrUnsupportedFormat = errors.New("photo: unsupported image format")

// Transcoder converts an image that browsers cannot display (HEIC/HEIF) into
// JPEG bytes. It is an external collaborator; the default deployment has none.
type Transcoder interface {
	ToJPEG(data []byte) ([]byte, error)
}

// UnsupportedTranscoder reports every conversion as unsupported.
type UnsupportedTranscoder struct{}

func (UnsupportedTranscoder) ToJPEG([]byte) ([]byte, error) {
	return nil, ErrUnsupportedFormat
}

// IsHEIC matches HEIC/HEIF uploads by extension or declared content type.
func IsHEIC(name, contentType string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".heic" || ext == ".heif" {
		return true
	}
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "heic") || strings.Contains(ct, "heif")
}

// IsRaw matches RAW (DNG) uploads, which keep their GPS tags but cannot be
// displayed inline.
func IsRaw(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".dng" || ext == ".raw"
}
