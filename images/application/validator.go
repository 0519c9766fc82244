package application

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rgeary/imagehost/images/domain"
)

// extToType maps accepted filename extensions to the normalized file type.
var extToType = map[string]string{
	"jpg":  "jpg",
	"jpeg": "jpg",
	"png":  "png",
	"gif":  "gif",
}

// mimeToType maps sniffed MIME types to the normalized file type.
var mimeToType = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
}

// Validator decides accept/reject for a candidate upload before any storage
// I/O happens. It has no side effects.
type Validator struct {
	maxSize int64
}

func NewValidator(maxSize int64) *Validator {
	return &Validator{maxSize: maxSize}
}

// MaxSize returns the configured upload size limit in bytes.
func (v *Validator) MaxSize() int64 {
	return v.maxSize
}

// Validate checks size, declared extension and the actual byte signature of
// the content. Declared extension and signature must agree; this is what
// stops a renamed executable from being stored as cat.png. On success it
// returns the normalized file type ("jpg", "png" or "gif").
func (v *Validator) Validate(content []byte, originalName string) (string, error) {
	if int64(len(content)) > v.maxSize {
		return "", domain.NewValidationError(domain.TooLarge,
			"file exceeds maximum size of %d bytes", v.maxSize)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(originalName), "."))
	declared, ok := extToType[ext]
	if !ok {
		return "", domain.NewValidationError(domain.UnsupportedType,
			"file type %q is not supported (allowed: jpg, jpeg, png, gif)", ext)
	}

	sniffed, ok := mimeToType[mimetype.Detect(content).String()]
	if !ok {
		return "", domain.NewValidationError(domain.TypeMismatch,
			"content of %q is not a recognized image", originalName)
	}

	if sniffed != declared {
		return "", domain.NewValidationError(domain.TypeMismatch,
			"content of %q looks like %s but is named .%s", originalName, sniffed, ext)
	}

	return sniffed, nil
}
