// Package handler exposes HTTP handlers for both authenticated and public endpoints.
// This file defines handlers for the public browsing API. These routes allow
// anyone to explore and search approved films and list visible categories.
// Films that are not approved never appear here; their detail pages are only
// visible to their director and to administrators.

package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/reelcampus/student-film-platform/internal/model"
	"github.com/reelcampus/student-film-platform/internal/repository"
)

// PublicHandler aggregates repositories needed for unauthenticated browsing.
type PublicHandler struct {
	Films      *repository.FilmRepo
	Categories *repository.CategoryRepo
}

// filmItem is a film in list and detail responses.  Tags are returned as a
// list and the rating aggregate as a pre-computed average.
type filmItem struct {
	ID              uint64    `json:"id"`
	Title           string    `json:"title"`
	Synopsis        string    `json:"synopsis"`
	Category        string    `json:"category"`
	CategoryID      uint64    `json:"category_id"`
	Language        string    `json:"language"`
	DurationSeconds uint32    `json:"duration_seconds"`
	ReleaseDate     string    `json:"release_date"`
	Tags            []string  `json:"tags"`
	ThumbnailURL    string    `json:"thumbnail_url"`
	VideoURL        string    `json:"video_url"`
	Status          string    `json:"status,omitempty"`
	Director        string    `json:"director"`
	DirectorID      uint64    `json:"director_id"`
	DirectorAvatar  string    `json:"director_avatar,omitempty"`
	RatingAverage   float64   `json:"rating_average"`
	RatingCount     uint64    `json:"rating_count"`
	CreatedAt       time.Time `json:"created_at"`
}

func toFilmItem(d repository.FilmDetail, includeStatus bool) filmItem {
	item := filmItem{
		ID:              d.ID,
		Title:           d.Title,
		Synopsis:        d.Synopsis,
		Category:        d.CategoryName,
		CategoryID:      d.CategoryID,
		Language:        d.Language,
		DurationSeconds: d.DurationSeconds,
		ReleaseDate:     d.ReleaseDate,
		Tags:            splitTags(d.Tags),
		ThumbnailURL:    d.ThumbnailURL,
		VideoURL:        d.VideoURL,
		Director:        d.DirectorFirstName + " " + d.DirectorLastName,
		DirectorID:      d.DirectorID,
		DirectorAvatar:  d.DirectorAvatarURL,
		RatingAverage:   d.Average(),
		RatingCount:     d.RatingCount,
		CreatedAt:       d.CreatedAt,
	}
	if includeStatus {
		item.Status = d.Status
	}
	return item
}

// ListFilms handles GET /v1/films: approved films with optional category,
// language and tag filters, sorted newest-first or by rating.
func (h *PublicHandler) ListFilms(c echo.Context) error {
	ctx := c.Request().Context()
	page, size := pageParams(c)

	q := repository.BrowseQuery{
		Language: c.QueryParam("language"),
		Tag:      c.QueryParam("tag"),
		Sort:     c.QueryParam("sort"),
		Page:     page,
		PageSize: size,
	}
	if raw := c.QueryParam("category"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category"})
		}
		q.CategoryID = id
	}

	films, total, err := h.Films.ListApproved(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items := make([]filmItem, 0, len(films))
	for _, f := range films {
		items = append(items, toFilmItem(f, false))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items": items, "total": total, "page": page, "page_size": size,
	})
}

// GetFilm handles GET /v1/films/:id.  Non-approved films are a 404 to the
// public; the director and admins may still view them (the member router
// sets user_id/role in context when a valid token is present).
func (h *PublicHandler) GetFilm(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	d, err := h.Films.GetDetail(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "film not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if d.Status != model.FilmApproved {
		uid, uidErr := getUserID(c)
		role, _ := c.Get("role").(string)
		isOwner := uidErr == nil && uid == d.DirectorID
		if !isOwner && role != model.RoleAdmin {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "film not found"})
		}
		return c.JSON(http.StatusOK, toFilmItem(d, true))
	}
	return c.JSON(http.StatusOK, toFilmItem(d, false))
}

// SearchFilms handles GET /v1/search?q= over approved films.
func (h *PublicHandler) SearchFilms(c echo.Context) error {
	ctx := c.Request().Context()
	raw := c.QueryParam("q")
	if raw == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "q is required"})
	}
	page, size := pageParams(c)

	films, total, err := h.Films.Search(ctx, repository.SearchQuery{Q: raw, Page: page, PageSize: size})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items := make([]filmItem, 0, len(films))
	for _, f := range films {
		items = append(items, toFilmItem(f, false))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items": items, "total": total, "page": page, "page_size": size, "query": raw,
	})
}

// ListCategories handles GET /v1/categories and returns visible categories.
func (h *PublicHandler) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()
	cats, err := h.Categories.ListVisible(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	type categoryItem struct {
		ID          uint64 `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	out := make([]categoryItem, 0, len(cats))
	for _, cat := range cats {
		out = append(out, categoryItem{ID: cat.ID, Name: cat.Name, Description: cat.Description})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
