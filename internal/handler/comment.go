package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/reelcampus/student-film-platform/internal/model"
	"github.com/reelcampus/student-film-platform/internal/repository"
)

// CommentHandler serves per-film comment endpoints.
type CommentHandler struct {
	Comments *repository.CommentRepo
	Films    *repository.FilmRepo
}

func NewCommentHandler(cm *repository.CommentRepo, f *repository.FilmRepo) *CommentHandler {
	return &CommentHandler{Comments: cm, Films: f}
}

// Create handles POST /v1/films/:id/comments.
func (h *CommentHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	filmID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Content string `json:"content"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	content := strings.TrimSpace(body.Content)
	if content == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "content is required"})
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

	cm := &model.Comment{FilmID: filmID, UserID: uid, Content: content}
	if err := h.Comments.Create(ctx, cm); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "saving comment failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": cm.ID, "film_id": filmID, "content": content})
}

// List handles GET /v1/films/:id/comments, newest first.
func (h *CommentHandler) List(c echo.Context) error {
	filmID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	comments, err := h.Comments.ListByFilm(ctx, filmID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": comments})
}
