package handler

// admin_film.go holds the moderation endpoints: listing films by status,
// approving or rejecting a submission, and removing a film together with
// its stored media.

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/reelcampus/student-film-platform/internal/model"
	"github.com/reelcampus/student-film-platform/internal/queue"
	"github.com/reelcampus/student-film-platform/internal/repository"
	queue_publisher "github.com/reelcampus/student-film-platform/internal/service"
	"github.com/reelcampus/student-film-platform/internal/storage"
)

// AdminFilmHandler exposes the moderation queue to administrators.
type AdminFilmHandler struct {
	Films *repository.FilmRepo
	Media MediaStore
}

func NewAdminFilmHandler(films *repository.FilmRepo, media MediaStore) *AdminFilmHandler {
	return &AdminFilmHandler{Films: films, Media: media}
}

// List handles GET /v1/admin/films?status=pending|approved|rejected.
// Without a status filter every film is returned, newest first.
func (h *AdminFilmHandler) List(c echo.Context) error {
	status := c.QueryParam("status")
	switch status {
	case "", model.FilmPending, model.FilmApproved, model.FilmRejected:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status filter"})
	}
	films, err := h.Films.ListAdmin(c.Request().Context(), status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items := make([]filmItem, 0, len(films))
	for _, d := range films {
		items = append(items, toFilmItem(d, true))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

type moderateReq struct {
	Status string `json:"status"` // approved | rejected
}

// Moderate handles PATCH /v1/admin/films/:id and records the approve or
// reject decision. The decision event is published after the row update;
// a publish failure does not undo the decision.
func (h *AdminFilmHandler) Moderate(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid film id"})
	}
	var req moderateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Status != model.FilmApproved && req.Status != model.FilmRejected {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be approved or rejected"})
	}

	ctx := c.Request().Context()
	film, err := h.Films.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "film not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := h.Films.UpdateStatus(ctx, id, req.Status); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "film not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "updating film failed"})
	}

	if err := queue_publisher.PublishFilmModerated(ctx, queue.FilmModeratedEvent{
		FilmID:      id,
		Title:       film.Title,
		DirectorID:  film.DirectorID,
		Status:      req.Status,
		ModeratorID: adminID,
		ModeratedAt: time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		log.Printf("publish film.moderated for film %d: %v", id, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": req.Status})
}

// Delete handles DELETE /v1/admin/films/:id. The database rows go first;
// the stored media objects are removed afterwards on a best-effort basis
// so a storage hiccup never leaves a half-deleted film visible.
func (h *AdminFilmHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid film id"})
	}
	ctx := c.Request().Context()
	film, err := h.Films.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "film not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := h.Films.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "deleting film failed"})
	}
	deleteFilmMedia(h.Media, film)
	return c.JSON(http.StatusOK, echo.Map{"deleted": id})
}

// deleteFilmMedia removes a film's thumbnail and video from storage.
// Failures are logged, not surfaced; orphaned objects can be swept later.
func deleteFilmMedia(media MediaStore, film model.Film) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if objID := mediaIDFromURL(film.ThumbnailURL, storage.BucketThumbnails); objID != "" {
		if err := media.Delete(ctx, storage.BucketThumbnails, objID); err != nil {
			log.Printf("delete thumbnail %s of film %d: %v", objID, film.ID, err)
		}
	}
	if objID := mediaIDFromURL(film.VideoURL, storage.BucketVideos); objID != "" {
		if err := media.Delete(ctx, storage.BucketVideos, objID); err != nil {
			log.Printf("delete video %s of film %d: %v", objID, film.ID, err)
		}
	}
}
