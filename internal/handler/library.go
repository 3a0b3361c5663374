package handler

// library.go serves the personal film lists (favorites and watch-later).
// Both lists share one handler: the route registration decides which
// repository instance backs it.  Add and remove are idempotent, so an
// add-then-remove round trip always restores the original membership.

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/reelcampus/student-film-platform/internal/model"
	"github.com/reelcampus/student-film-platform/internal/repository"
)

// LibraryHandler serves one personal list.
type LibraryHandler struct {
	List  *repository.LibraryRepo
	Films *repository.FilmRepo
}

func NewLibraryHandler(list *repository.LibraryRepo, films *repository.FilmRepo) *LibraryHandler {
	return &LibraryHandler{List: list, Films: films}
}

// Add handles PUT /v1/films/:id/{favorite|watch-later}.
func (h *LibraryHandler) Add(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	filmID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx := c.Request().Context()
	film, err := h.Films.GetByID(ctx, filmID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "film not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if film.Status != model.FilmApproved {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "film not found"})
	}
	if err := h.List.Add(ctx, uid, filmID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"film_id": filmID, "member": true})
}

// Remove handles DELETE /v1/films/:id/{favorite|watch-later}.
func (h *LibraryHandler) Remove(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	filmID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.List.Remove(c.Request().Context(), uid, filmID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"film_id": filmID, "member": false})
}

// Mine handles GET /v1/me/{favorites|watch-later}: the caller's listed
// films that are still approved, most recently added first.
func (h *LibraryHandler) Mine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	films, err := h.List.ListFilms(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	type listedFilm struct {
		ID            uint64    `json:"id"`
		Title         string    `json:"title"`
		Synopsis      string    `json:"synopsis"`
		ThumbnailURL  string    `json:"thumbnail_url"`
		RatingAverage float64   `json:"rating_average"`
		RatingCount   uint64    `json:"rating_count"`
		CreatedAt     time.Time `json:"created_at"`
	}
	out := make([]listedFilm, 0, len(films))
	for _, f := range films {
		out = append(out, listedFilm{
			ID: f.ID, Title: f.Title, Synopsis: f.Synopsis, ThumbnailURL: f.ThumbnailURL,
			RatingAverage: f.Average(), RatingCount: f.RatingCount, CreatedAt: f.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
