package handler

// admin_category.go holds category management for administrators.
// Categories that still have films attached cannot be deleted.

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/reelcampus/student-film-platform/internal/model"
	"github.com/reelcampus/student-film-platform/internal/repository"
)

// AdminCategoryHandler manages the category list.
type AdminCategoryHandler struct {
	Categories *repository.CategoryRepo
}

func NewAdminCategoryHandler(categories *repository.CategoryRepo) *AdminCategoryHandler {
	return &AdminCategoryHandler{Categories: categories}
}

type adminCategoryItem struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsVisible   bool   `json:"is_visible"`
	FilmCount   int64  `json:"film_count"`
}

// List handles GET /v1/admin/categories and includes hidden categories
// and per-category film counts.
func (h *AdminCategoryHandler) List(c echo.Context) error {
	cats, err := h.Categories.ListWithCounts(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items := make([]adminCategoryItem, 0, len(cats))
	for _, cat := range cats {
		items = append(items, adminCategoryItem{
			ID:          cat.ID,
			Name:        cat.Name,
			Description: cat.Description,
			IsVisible:   cat.IsVisible,
			FilmCount:   cat.FilmCount,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

type categoryReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsVisible   *bool  `json:"is_visible"`
}

// Create handles POST /v1/admin/categories. New categories are visible
// unless the request says otherwise.
func (h *AdminCategoryHandler) Create(c echo.Context) error {
	var req categoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	cat := model.Category{
		Name:        req.Name,
		Description: strings.TrimSpace(req.Description),
		IsVisible:   true,
	}
	if req.IsVisible != nil {
		cat.IsVisible = *req.IsVisible
	}
	id, err := h.Categories.Create(c.Request().Context(), &cat)
	if err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "category name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "creating category failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// Update handles PATCH /v1/admin/categories/:id.
func (h *AdminCategoryHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}
	var req categoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	cat := model.Category{
		ID:          id,
		Name:        req.Name,
		Description: strings.TrimSpace(req.Description),
		IsVisible:   true,
	}
	if req.IsVisible != nil {
		cat.IsVisible = *req.IsVisible
	}
	if err := h.Categories.Update(c.Request().Context(), cat); err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "category name already exists"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "updating category failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id})
}

// Delete handles DELETE /v1/admin/categories/:id. Categories still in use
// are rejected with 409; films must be moved or removed first.
func (h *AdminCategoryHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}
	if err := h.Categories.Delete(c.Request().Context(), id); err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "category still has films"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "deleting category failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": id})
}
