package domain

import (
	"context"
	"time"
)

// Image is the metadata record for one uploaded file. Filename is the
// server-generated storage name; OriginalName is whatever the client called
// the file and is kept for display only.
type Image struct {
	ID           int64
	Filename     string
	OriginalName string
	Size         int64
	UploadTime   time.Time
	FileType     string
}

type ImageRepository interface {
	// Insert stores a new image record and fills in its assigned ID.
	Insert(ctx context.Context, img *Image) error

	// GetByID retrieves a single image record.
	GetByID(ctx context.Context, id int64) (*Image, error)

	// Delete removes the record with the given id. Returns ErrNotFound
	// if no such row exists.
	Delete(ctx context.Context, id int64) error

	// List returns records ordered newest-first, at most limit rows
	// starting at offset.
	List(ctx context.Context, limit int, offset int) ([]*Image, error)

	// Count returns the total number of image records.
	Count(ctx context.Context) (int64, error)
}

// FileStore holds uploaded binary content in a flat directory under
// server-generated names.
type FileStore interface {
	// Save publishes content under filename atomically: a partially
	// written file is never visible under the final name.
	Save(filename string, content []byte) error

	// Remove deletes the named file. Returns ErrFileMissing if it was
	// already gone.
	Remove(filename string) error

	// Path resolves filename to an absolute path inside the store,
	// rejecting names that would escape the directory.
	Path(filename string) (string, error)
}
