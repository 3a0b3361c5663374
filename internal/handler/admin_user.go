package handler

// admin_user.go holds the account administration endpoints: the user
// table, status and role changes, and full account removal.

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/reelcampus/student-film-platform/internal/model"
	"github.com/reelcampus/student-film-platform/internal/repository"
	"github.com/reelcampus/student-film-platform/internal/storage"
)

// AdminUserHandler manages accounts on behalf of administrators.
type AdminUserHandler struct {
	Profiles *repository.ProfileRepo
	Films    *repository.FilmRepo
	Media    MediaStore
}

func NewAdminUserHandler(profiles *repository.ProfileRepo, films *repository.FilmRepo, media MediaStore) *AdminUserHandler {
	return &AdminUserHandler{Profiles: profiles, Films: films, Media: media}
}

// List handles GET /v1/admin/users.
func (h *AdminUserHandler) List(c echo.Context) error {
	accounts, err := h.Profiles.ListAccounts(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": accounts})
}

type updateAccountReq struct {
	Status *string `json:"status"` // pending | active | banned
	Role   *string `json:"role"`   // user | admin
}

// Update handles PATCH /v1/admin/users/:id. Status and role can be changed
// independently or together. Admins cannot demote or ban themselves; losing
// the last admin by accident is not worth the symmetry.
func (h *AdminUserHandler) Update(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var req updateAccountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Status == nil && req.Role == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nothing to update"})
	}
	if req.Status != nil {
		switch *req.Status {
		case model.StatusPending, model.StatusActive, model.StatusBanned:
		default:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
		}
		if id == adminID && *req.Status == model.StatusBanned {
			return c.JSON(http.StatusConflict, echo.Map{"error": "cannot ban your own account"})
		}
	}
	if req.Role != nil {
		if *req.Role != model.RoleUser && *req.Role != model.RoleAdmin {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown role"})
		}
		if id == adminID && *req.Role != model.RoleAdmin {
			return c.JSON(http.StatusConflict, echo.Map{"error": "cannot remove your own admin role"})
		}
	}

	ctx := c.Request().Context()
	if req.Status != nil {
		if err := h.Profiles.UpdateStatus(ctx, id, *req.Status); err != nil {
			if err == repository.ErrNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "updating user failed"})
		}
	}
	if req.Role != nil {
		if err := h.Profiles.UpdateRole(ctx, id, *req.Role); err != nil {
			if err == repository.ErrNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "updating user failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id})
}

// Delete handles DELETE /v1/admin/users/:id. The account row and everything
// hanging off it go in one transaction; stored media is cleaned up after,
// best-effort, since the rows are already gone.
func (h *AdminUserHandler) Delete(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if id == adminID {
		return c.JSON(http.StatusConflict, echo.Map{"error": "cannot delete your own account"})
	}

	ctx := c.Request().Context()
	profile, err := h.Profiles.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	// Snapshot media URLs before the rows disappear.
	films, err := h.Films.ListByDirector(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	if err := h.Profiles.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "deleting user failed"})
	}

	for _, f := range films {
		deleteFilmMedia(h.Media, f)
	}
	if objID := mediaIDFromURL(profile.AvatarURL, storage.BucketAvatars); objID != "" {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		_ = h.Media.Delete(cleanupCtx, storage.BucketAvatars, objID)
		cancel()
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": id})
}
