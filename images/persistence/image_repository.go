package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rgeary/imagehost/images/domain"
	"github.com/rgeary/imagehost/shared/db"
)

var _ domain.ImageRepository = (*SQLiteImageRepository)(nil)

// SQLiteImageRepository implements domain.ImageRepository using SQL database (SQLite)
type SQLiteImageRepository struct {
	db *sql.DB
}

// NewImageRepository creates a new SQLiteImageRepository from a standard sql.DB
func NewImageRepository(sqlDB *sql.DB) *SQLiteImageRepository {
	return &SQLiteImageRepository{
		db: sqlDB,
	}
}

const insertImageQuery = `
	INSERT INTO images (filename, original_name, size, upload_time, file_type)
	VALUES (?, ?, ?, ?, ?)
`

// Insert stores a new image record and assigns its ID.
func (r *SQLiteImageRepository) Insert(ctx context.Context, img *domain.Image) error {
	if img == nil {
		return fmt.Errorf("image cannot be nil")
	}

	if img.Filename == "" {
		return fmt.Errorf("image filename cannot be empty")
	}

	uploadTime := img.UploadTime
	if uploadTime.IsZero() {
		uploadTime = time.Now().UTC()
	}

	executor := db.GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, insertImageQuery,
		img.Filename,
		img.OriginalName,
		img.Size,
		uploadTime,
		img.FileType,
	)
	if err != nil {
		return fmt.Errorf("failed to insert image record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted image id: %w", err)
	}

	img.ID = id
	img.UploadTime = uploadTime
	return nil
}

const getImageQuery = `
	SELECT id, filename, original_name, size, upload_time, file_type
	FROM images
	WHERE id = ?
`

// GetByID retrieves a single image record by id.
func (r *SQLiteImageRepository) GetByID(ctx context.Context, id int64) (*domain.Image, error) {
	var row imageRow
	executor := db.GetExecutor(ctx, r.db)
	err := executor.QueryRowContext(ctx, getImageQuery, id).Scan(
		&row.ID,
		&row.Filename,
		&row.OriginalName,
		&row.Size,
		&row.UploadTime,
		&row.FileType,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get image %d: %w", id, err)
	}

	return row.toDomain(), nil
}

const deleteImageQuery = `
	DELETE FROM images WHERE id = ?
`

// Delete removes the record with the given id. The lookup and delete run in
// one transaction so two concurrent deletes of the same id cannot both
// report success.
func (r *SQLiteImageRepository) Delete(ctx context.Context, id int64) error {
	return db.RunInTransaction(ctx, r.db, func(txCtx context.Context) error {
		executor := db.GetExecutor(txCtx, r.db)
		result, err := executor.ExecContext(txCtx, deleteImageQuery, id)
		if err != nil {
			return fmt.Errorf("failed to delete image record %d: %w", id, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read delete result for image %d: %w", id, err)
		}

		if affected == 0 {
			return domain.ErrNotFound
		}

		return nil
	})
}

const listImagesQuery = `
	SELECT id, filename, original_name, size, upload_time, file_type
	FROM images
	ORDER BY upload_time DESC, id DESC
	LIMIT ? OFFSET ?
`

// List returns at most limit records starting at offset, newest first.
// Equal timestamps are broken by id descending so paging is deterministic.
func (r *SQLiteImageRepository) List(ctx context.Context, limit int, offset int) ([]*domain.Image, error) {
	executor := db.GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, listImagesQuery, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	defer rows.Close()

	images := make([]*domain.Image, 0, limit)
	for rows.Next() {
		var row imageRow
		if err := rows.Scan(
			&row.ID,
			&row.Filename,
			&row.OriginalName,
			&row.Size,
			&row.UploadTime,
			&row.FileType,
		); err != nil {
			return nil, fmt.Errorf("failed to scan image row: %w", err)
		}
		images = append(images, row.toDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate image rows: %w", err)
	}

	return images, nil
}

const countImagesQuery = `
	SELECT COUNT(*) FROM images
`

// Count returns the total number of image records.
func (r *SQLiteImageRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	executor := db.GetExecutor(ctx, r.db)
	if err := executor.QueryRowContext(ctx, countImagesQuery).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count images: %w", err)
	}
	return count, nil
}

// imageRow is a private struct used to scan database rows
type imageRow struct {
	ID           int64        `db:"id"`
	Filename     string       `db:"filename"`
	OriginalName string       `db:"original_name"`
	Size         int64        `db:"size"`
	UploadTime   sql.NullTime `db:"upload_time"`
	FileType     string       `db:"file_type"`
}

// toDomain converts an imageRow to a domain.Image, handling nullable time
func (ir *imageRow) toDomain() *domain.Image {
	img := &domain.Image{
		ID:           ir.ID,
		Filename:     ir.Filename,
		OriginalName: ir.OriginalName,
		Size:         ir.Size,
		FileType:     ir.FileType,
	}

	if ir.UploadTime.Valid {
		img.UploadTime = ir.UploadTime.Time
	}

	return img
}
