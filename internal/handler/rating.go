package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reelcampus/student-film-platform/internal/model"
	"github.com/reelcampus/student-film-platform/internal/repository"
)

// RatingHandler serves per-film rating endpoints.
type RatingHandler struct {
	Ratings *repository.RatingRepo
	Films   *repository.FilmRepo
}

func NewRatingHandler(r *repository.RatingRepo, f *repository.FilmRepo) *RatingHandler {
	return &RatingHandler{Ratings: r, Films: f}
}

// Rate handles PUT /v1/films/:id/rating.  One row per (film,user): rating
// again overwrites the previous score and the film's aggregate follows in
// the same transaction.
func (h *RatingHandler) Rate(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	filmID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Score uint8 `json:"score"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Score < 1 || body.Score > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "score must be between 1 and 5"})
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

	if err := h.Ratings.Upsert(ctx, model.Rating{FilmID: filmID, UserID: uid, Score: body.Score}); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "saving rating failed"})
	}
	sum, count, err := h.Ratings.Aggregate(ctx, filmID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"film_id": filmID,
		"score":   body.Score,
		"average": average(sum, count),
		"count":   count,
	})
}

// GetRating handles GET /v1/films/:id/rating: the maintained aggregate plus
// the caller's own score (0 when unrated).
func (h *RatingHandler) GetRating(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	filmID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx := c.Request().Context()
	sum, count, err := h.Ratings.Aggregate(ctx, filmID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "film not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	own, err := h.Ratings.UserScore(ctx, filmID, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"film_id": filmID,
		"average": average(sum, count),
		"count":   count,
		"score":   own,
	})
}

func average(sum, count uint64) float64 {
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}
