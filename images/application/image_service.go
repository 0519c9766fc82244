package application

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rgeary/imagehost/images/domain"
	"github.com/rs/zerolog/log"
)

// ImageService orchestrates the upload, listing and deletion flows over the
// metadata repository and the file store. It is stateless; everything it
// needs is passed in at construction.
type ImageService struct {
	repo      domain.ImageRepository
	store     domain.FileStore
	validator *Validator
	basePath  string
	pageSize  int
}

func NewImageService(repo domain.ImageRepository, store domain.FileStore, validator *Validator, basePath string, pageSize int) *ImageService {
	return &ImageService{
		repo:      repo,
		store:     store,
		validator: validator,
		basePath:  basePath,
		pageSize:  pageSize,
	}
}

// UploadResult describes a completed upload.
type UploadResult struct {
	Image *domain.Image
	URL   string
}

// Upload validates the content, publishes it to the file store under a fresh
// unique name and records its metadata. If the metadata insert fails the
// just-written file is removed again so no orphan accumulates.
func (s *ImageService) Upload(ctx context.Context, content []byte, originalName string) (*UploadResult, error) {
	fileType, err := s.validator.Validate(content, originalName)
	if err != nil {
		log.Warn().Err(err).Str("original_name", originalName).Msg("Rejected upload")
		return nil, err
	}

	filename := newStorageFilename(fileType)

	if err := s.store.Save(filename, content); err != nil {
		log.Error().Err(err).Str("filename", filename).Msg("Failed to write upload to file store")
		return nil, &domain.StorageWriteError{Filename: filename, Err: err}
	}

	img := &domain.Image{
		Filename:     filename,
		OriginalName: originalName,
		Size:         int64(len(content)),
		UploadTime:   time.Now().UTC(),
		FileType:     fileType,
	}

	if err := s.repo.Insert(ctx, img); err != nil {
		log.Error().Err(err).Str("filename", filename).Msg("Failed to record upload metadata")

		// Compensating delete. Its own failure is logged but must not
		// mask the insert error.
		if rmErr := s.store.Remove(filename); rmErr != nil && !errors.Is(rmErr, domain.ErrFileMissing) {
			log.Error().Err(rmErr).Str("filename", filename).Msg("Failed to clean up file after metadata error")
		}

		return nil, &domain.MetadataWriteError{Filename: filename, Err: err}
	}

	url := s.URLFor(filename)
	log.Info().
		Str("original_name", originalName).
		Str("filename", filename).
		Str("file_type", fileType).
		Int64("size", img.Size).
		Str("url", url).
		Msg("Uploaded image")

	return &UploadResult{Image: img, URL: url}, nil
}

// Pagination summarizes a listing page.
type Pagination struct {
	Page       int
	TotalItems int64
	TotalPages int
	HasPrev    bool
	HasNext    bool
}

// List returns one page of records, newest first, plus the pagination
// summary. A page below 1 is clamped to 1; a page past the end yields an
// empty list with accurate metadata.
func (s *ImageService) List(ctx context.Context, page int) ([]*domain.Image, Pagination, error) {
	if page < 1 {
		page = 1
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("failed to count images: %w", err)
	}

	totalPages := int((total + int64(s.pageSize) - 1) / int64(s.pageSize))

	offset := (page - 1) * s.pageSize
	images, err := s.repo.List(ctx, s.pageSize, offset)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("failed to list images: %w", err)
	}

	pagination := Pagination{
		Page:       page,
		TotalItems: total,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}

	return images, pagination, nil
}

// Delete removes the record and then its file. The row is the source of
// truth: if the row delete fails the file stays put, while a file that is
// already gone only warrants a log line.
func (s *ImageService) Delete(ctx context.Context, id int64) error {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return &domain.MetadataDeleteError{ID: id, Err: err}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Lost a race with a concurrent delete of the same id.
			return err
		}
		log.Error().Err(err).Int64("id", id).Msg("Failed to delete image metadata")
		return &domain.MetadataDeleteError{ID: id, Err: err}
	}

	if err := s.store.Remove(img.Filename); err != nil {
		if errors.Is(err, domain.ErrFileMissing) {
			log.Warn().Int64("id", id).Str("filename", img.Filename).Msg("Image file was already missing at delete")
		} else {
			log.Error().Err(err).Int64("id", id).Str("filename", img.Filename).Msg("Failed to remove image file after row delete")
		}
	}

	log.Info().Int64("id", id).Str("filename", img.Filename).Msg("Deleted image")
	return nil
}

// PageSize returns the configured listing page size.
func (s *ImageService) PageSize() int {
	return s.pageSize
}

// URLFor builds the public URL for a storage filename.
func (s *ImageService) URLFor(filename string) string {
	return path.Join(s.basePath, filename)
}

// newStorageFilename generates the unique name an upload is stored under.
// Uniqueness is not re-checked against the store, so the generator itself has
// to be collision-resistant; a random UUID is.
func newStorageFilename(fileType string) string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return hex + "." + fileType
}
