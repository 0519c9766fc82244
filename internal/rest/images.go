package rest

import (
	"errors"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rgeary/imagehost/api"
	"github.com/rgeary/imagehost/images/application"
	"github.com/rgeary/imagehost/images/domain"
	"github.com/rs/zerolog/log"
)

// ImageHandler translates HTTP requests into ImageService calls.
type ImageHandler struct {
	service *application.ImageService
	store   domain.FileStore
	maxSize int64
}

func NewImageHandler(service *application.ImageService, store domain.FileStore, maxSize int64) *ImageHandler {
	return &ImageHandler{
		service: service,
		store:   store,
		maxSize: maxSize,
	}
}

func errorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, api.StatusResponse{Status: "error", Message: message})
}

// Upload handles POST /upload with a multipart form field named "file".
func (h *ImageHandler) Upload(c *gin.Context) {
	// Reject obviously oversized payloads on the declared length before
	// reading the body. The reverse proxy in front normally does this too.
	if c.Request.ContentLength > h.maxSize+64*1024 {
		errorResponse(c, http.StatusRequestEntityTooLarge, "File is too large")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "File field not found")
		return
	}

	if fileHeader.Filename == "" {
		errorResponse(c, http.StatusBadRequest, "Filename is missing")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error().Err(err).Str("original_name", fileHeader.Filename).Msg("Failed to open uploaded file")
		errorResponse(c, http.StatusInternalServerError, "Failed to read file content")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		log.Error().Err(err).Str("original_name", fileHeader.Filename).Msg("Failed to read uploaded file")
		errorResponse(c, http.StatusInternalServerError, "Failed to read file content")
		return
	}

	result, err := h.service.Upload(c.Request.Context(), content, fileHeader.Filename)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			status := http.StatusBadRequest
			if verr.Kind == domain.TooLarge {
				status = http.StatusRequestEntityTooLarge
			}
			errorResponse(c, status, verr.Message)
			return
		}
		errorResponse(c, http.StatusInternalServerError, "Uploading file error")
		return
	}

	c.JSON(http.StatusCreated, api.UploadResponse{
		Status:   "success",
		Message:  "File successfully uploaded.",
		Filename: result.Image.Filename,
		URL:      result.URL,
	})
}

// List handles GET /images-list?page=n.
func (h *ImageHandler) List(c *gin.Context) {
	page := 1
	if raw := c.Query("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			page = parsed
		}
	}

	images, pagination, err := h.service.List(c.Request.Context(), page)
	if err != nil {
		log.Error().Err(err).Int("page", page).Msg("Failed to list images")
		errorResponse(c, http.StatusInternalServerError, "Error getting image list")
		return
	}

	data := make([]api.ImageResponse, 0, len(images))
	for _, img := range images {
		data = append(data, api.ImageResponse{
			ID:           img.ID,
			Filename:     img.Filename,
			OriginalName: img.OriginalName,
			SizeKB:       (img.Size + 1023) / 1024,
			UploadTime:   img.UploadTime.UTC().Format(time.RFC3339),
			FileType:     img.FileType,
			URL:          h.service.URLFor(img.Filename),
		})
	}

	c.JSON(http.StatusOK, api.ListResponse{
		Status: "success",
		Page:   pagination.Page,
		Pagination: api.PaginationResponse{
			TotalPages: pagination.TotalPages,
			TotalItems: pagination.TotalItems,
			HasPrev:    pagination.HasPrev,
			HasNext:    pagination.HasNext,
		},
		Data: data,
	})
}

// Delete handles DELETE /delete/:id.
func (h *ImageHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "Invalid image id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			errorResponse(c, http.StatusNotFound, "Not found")
			return
		}
		errorResponse(c, http.StatusInternalServerError, "Image could not be deleted")
		return
	}

	c.JSON(http.StatusOK, api.StatusResponse{
		Status:  "success",
		Message: "Image " + strconv.FormatInt(id, 10) + " deleted",
	})
}

// Serve handles GET /images/:filename, returning the raw stored bytes.
func (h *ImageHandler) Serve(c *gin.Context) {
	path, err := h.store.Path(c.Param("filename"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "Invalid filename")
		return
	}

	if _, err := os.Stat(path); err != nil {
		errorResponse(c, http.StatusNotFound, "Not found")
		return
	}

	c.File(path)
}
