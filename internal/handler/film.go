package handler

// film.go implements the member-facing film operations: the multipart
// upload flow and the "my films" listing.  The upload performs three
// dependent steps (store thumbnail, store video, insert row); any failure
// aborts the remaining steps and deletes the objects already stored so a
// partial failure leaves nothing behind.

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/reelcampus/student-film-platform/internal/config"
	"github.com/reelcampus/student-film-platform/internal/model"
	"github.com/reelcampus/student-film-platform/internal/queue"
	"github.com/reelcampus/student-film-platform/internal/repository"
	queue_publisher "github.com/reelcampus/student-film-platform/internal/service"
	"github.com/reelcampus/student-film-platform/internal/storage"
)

// FilmHandler bundles dependencies for member film endpoints.
type FilmHandler struct {
	Cfg        config.Config
	Films      *repository.FilmRepo
	Categories *repository.CategoryRepo
	Profiles   *repository.ProfileRepo
	Media      MediaStore
}

func NewFilmHandler(cfg config.Config, films *repository.FilmRepo, cats *repository.CategoryRepo, profiles *repository.ProfileRepo, media MediaStore) *FilmHandler {
	if films == nil || cats == nil || profiles == nil || media == nil {
		panic("nil dependency passed to NewFilmHandler")
	}
	return &FilmHandler{Cfg: cfg, Films: films, Categories: cats, Profiles: profiles, Media: media}
}

// Upload handles POST /v1/films (multipart/form-data).
//
// Form fields: title, synopsis, category_id, language, duration_minutes,
// release_date (YYYY-MM-DD), tags (comma separated); files: thumbnail, video.
// The film row is inserted with status=pending and both media URLs populated.
func (h *FilmHandler) Upload(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	title := strings.TrimSpace(c.FormValue("title"))
	synopsis := strings.TrimSpace(c.FormValue("synopsis"))
	language := strings.TrimSpace(c.FormValue("language"))
	releaseDate := strings.TrimSpace(c.FormValue("release_date"))
	if title == "" || synopsis == "" || language == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title, synopsis and language are required"})
	}
	categoryID, err := strconv.ParseUint(c.FormValue("category_id"), 10, 64)
	if err != nil || categoryID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category_id"})
	}
	durationMin, err := strconv.ParseUint(c.FormValue("duration_minutes"), 10, 32)
	if err != nil || durationMin == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid duration_minutes"})
	}
	if releaseDate != "" {
		if _, err := time.Parse("2006-01-02", releaseDate); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "release_date must be YYYY-MM-DD"})
		}
	}

	thumb, err := c.FormFile("thumbnail")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "thumbnail file is required"})
	}
	video, err := c.FormFile("video")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "video file is required"})
	}
	if thumb.Size > h.Cfg.MaxImageBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "thumbnail too large"})
	}
	if video.Size > h.Cfg.MaxVideoBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "video too large"})
	}

	ctx := c.Request().Context()

	ok, err := h.Categories.Exists(ctx, categoryID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown category"})
	}

	// Step 1: thumbnail to the film-thumbnails bucket.
	thumbFile, err := h.storeUpload(ctx, storage.BucketThumbnails, thumb, uid)
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": fmt.Sprintf("thumbnail upload failed: %v", err)})
	}

	// Step 2: video to the film-videos bucket.  On failure the thumbnail
	// stored in step 1 is removed before returning.
	videoFile, err := h.storeUpload(ctx, storage.BucketVideos, video, uid)
	if err != nil {
		h.compensate(thumbFile)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": fmt.Sprintf("video upload failed: %v", err)})
	}

	// Step 3: insert the film row.  On failure both stored objects are
	// removed before returning.
	film := &model.Film{
		Title:           title,
		Synopsis:        synopsis,
		CategoryID:      categoryID,
		Language:        language,
		DurationSeconds: uint32(durationMin * 60),
		ReleaseDate:     releaseDate,
		Tags:            normalizeTags(c.FormValue("tags")),
		ThumbnailURL:    h.mediaURL(thumbFile),
		VideoURL:        h.mediaURL(videoFile),
		DirectorID:      uid,
	}
	if _, err := h.Films.Create(ctx, film); err != nil {
		h.compensate(thumbFile, videoFile)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "saving film failed"})
	}

	// Notify reviewers.  Publish failures are logged inside the publisher
	// and never fail the upload.
	if p, err := h.Profiles.GetByID(ctx, uid); err == nil {
		_ = queue_publisher.PublishFilmSubmitted(ctx, queue.FilmSubmittedEvent{
			FilmID:       film.ID,
			Title:        film.Title,
			DirectorID:   uid,
			DirectorName: p.FirstName + " " + p.LastName,
			Category:     c.FormValue("category_id"),
			Language:     film.Language,
			SubmittedAt:  time.Now().UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"id":            film.ID,
		"status":        film.Status,
		"thumbnail_url": film.ThumbnailURL,
		"video_url":     film.VideoURL,
	})
}

// MyFilms handles GET /v1/me/films: every film of the caller, any status.
func (h *FilmHandler) MyFilms(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	films, err := h.Films.ListByDirector(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	type myFilm struct {
		ID            uint64    `json:"id"`
		Title         string    `json:"title"`
		Status        string    `json:"status"`
		ThumbnailURL  string    `json:"thumbnail_url"`
		RatingAverage float64   `json:"rating_average"`
		RatingCount   uint64    `json:"rating_count"`
		CreatedAt     time.Time `json:"created_at"`
	}
	out := make([]myFilm, 0, len(films))
	for _, f := range films {
		out = append(out, myFilm{
			ID: f.ID, Title: f.Title, Status: f.Status, ThumbnailURL: f.ThumbnailURL,
			RatingAverage: f.Average(), RatingCount: f.RatingCount, CreatedAt: f.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// storeUpload opens a multipart file header and streams it into a bucket.
func (h *FilmHandler) storeUpload(ctx context.Context, bucket string, fh *multipart.FileHeader, uploaderID uint64) (*storage.StoredFile, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	mime := fh.Header.Get("Content-Type")
	if mime == "" {
		mime = "application/octet-stream"
	}
	return h.Media.Upload(ctx, bucket, fh.Filename, mime, uploaderID, src)
}

// compensate removes already-stored objects after a later upload step
// failed.  Deletion is best-effort: a failure here is logged, not surfaced,
// since the user-visible error is the one that triggered the rollback.
func (h *FilmHandler) compensate(files ...*storage.StoredFile) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, f := range files {
		if f == nil {
			continue
		}
		if err := h.Media.Delete(ctx, f.Bucket, f.ID); err != nil {
			log.Printf("upload compensation: delete %s/%s failed: %v", f.Bucket, f.ID, err)
		}
	}
}

// mediaURL builds the public URL of a stored file.
func (h *FilmHandler) mediaURL(f *storage.StoredFile) string {
	return h.Cfg.PublicBaseURL + "/v1/media/" + f.Bucket + "/" + f.ID
}
