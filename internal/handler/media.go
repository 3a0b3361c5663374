package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reelcampus/student-film-platform/internal/storage"
)

// MediaStore is the slice of the media client the handlers use.  It is
// satisfied by *storage.Client; tests substitute an in-memory fake.
type MediaStore interface {
	Upload(ctx context.Context, bucket, filename, mimeType string, uploaderID uint64, content io.Reader) (*storage.StoredFile, error)
	Open(ctx context.Context, bucket, fileID string) (io.ReadCloser, *storage.StoredFile, error)
	Delete(ctx context.Context, bucket, fileID string) error
}

// MediaHandler streams stored objects out of the media buckets.
type MediaHandler struct {
	Media MediaStore
}

func NewMediaHandler(media MediaStore) *MediaHandler {
	return &MediaHandler{Media: media}
}

// Get handles GET /v1/media/:bucket/:id.  Bucket names are restricted to
// the known media buckets; anything else is a 404 rather than a probe
// surface.
func (h *MediaHandler) Get(c echo.Context) error {
	bucket := c.Param("bucket")
	if !storage.KnownBucket(bucket) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}
	stream, info, err := h.Media.Open(c.Request().Context(), bucket, c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}
	defer stream.Close()

	mime := info.MimeType
	if mime == "" {
		mime = "application/octet-stream"
	}
	return c.Stream(http.StatusOK, mime, stream)
}
