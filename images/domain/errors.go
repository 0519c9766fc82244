package domain

import (
	"errors"
	"fmt"
)

// ValidationKind classifies why an upload was rejected before any I/O.
type ValidationKind string

const (
	// TooLarge means the content exceeds the configured size limit.
	TooLarge ValidationKind = "too_large"
	// UnsupportedType means the declared extension is not in the allowed set.
	UnsupportedType ValidationKind = "unsupported_type"
	// TypeMismatch means the byte signature disagrees with the declared extension.
	TypeMismatch ValidationKind = "type_mismatch"
)

// ValidationError is returned by the validator; no storage side effects
// occurred when one of these surfaces.
type ValidationError struct {
	Kind    ValidationKind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(kind ValidationKind, format string, args ...any) *ValidationError {
	return &ValidationError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

var (
	// ErrNotFound is returned when an image id has no record.
	ErrNotFound = errors.New("image not found")

	// ErrFileMissing is returned by the file store when the named file
	// does not exist.
	ErrFileMissing = errors.New("file missing from store")
)

// StorageWriteError wraps a failure to persist content to the file store.
type StorageWriteError struct {
	Filename string
	Err      error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("failed to write %s to file store: %v", e.Filename, e.Err)
}

func (e *StorageWriteError) Unwrap() error { return e.Err }

// MetadataWriteError wraps a failure to insert the image record. The file
// written before the insert has already been cleaned up (best effort) by
// the time this surfaces.
type MetadataWriteError struct {
	Filename string
	Err      error
}

func (e *MetadataWriteError) Error() string {
	return fmt.Sprintf("failed to record metadata for %s: %v", e.Filename, e.Err)
}

func (e *MetadataWriteError) Unwrap() error { return e.Err }

// MetadataDeleteError wraps a failure to delete the image record. The file
// is left untouched so the record still points at real content.
type MetadataDeleteError struct {
	ID  int64
	Err error
}

func (e *MetadataDeleteError) Error() string {
	return fmt.Sprintf("failed to delete metadata for image %d: %v", e.ID, e.Err)
}

func (e *MetadataDeleteError) Unwrap() error { return e.Err }
