package handler

// profile.go serves the member's own profile page and settings: identity
// fields, avatar upload and the notification/privacy preferences.

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/reelcampus/student-film-platform/internal/config"
	"github.com/reelcampus/student-film-platform/internal/repository"
	"github.com/reelcampus/student-film-platform/internal/storage"
)

// ProfileHandler bundles dependencies for profile and settings endpoints.
type ProfileHandler struct {
	Cfg      config.Config
	Profiles *repository.ProfileRepo
	Media    MediaStore
}

func NewProfileHandler(cfg config.Config, p *repository.ProfileRepo, media MediaStore) *ProfileHandler {
	return &ProfileHandler{Cfg: cfg, Profiles: p, Media: media}
}

type profileResp struct {
	ID           uint64    `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Bio          string    `json:"bio"`
	FieldOfStudy string    `json:"field_of_study"`
	AvatarURL    string    `json:"avatar_url"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// Get handles GET /v1/profile.
func (h *ProfileHandler) Get(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	p, err := h.Profiles.GetByID(c.Request().Context(), uid)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, profileResp{
		ID: p.ID, Email: p.Email, FirstName: p.FirstName, LastName: p.LastName,
		Bio: p.Bio, FieldOfStudy: p.FieldOfStudy, AvatarURL: p.AvatarURL,
		Role: p.Role, Status: p.Status, CreatedAt: p.CreatedAt,
	})
}

// Update handles PUT /v1/profile: the editable identity fields.
func (h *ProfileHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name"`
		Bio          string `json:"bio"`
		FieldOfStudy string `json:"field_of_study"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.FirstName = strings.TrimSpace(body.FirstName)
	body.LastName = strings.TrimSpace(body.LastName)
	if body.FirstName == "" || body.LastName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "first and last name are required"})
	}
	if err := h.Profiles.UpdateProfile(c.Request().Context(), uid, repository.ProfileUpdate{
		FirstName:    body.FirstName,
		LastName:     body.LastName,
		Bio:          body.Bio,
		FieldOfStudy: body.FieldOfStudy,
	}); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return h.Get(c)
}

// UploadAvatar handles POST /v1/profile/avatar (multipart, field "avatar").
// The previous avatar object, if any, is removed after the new URL is
// saved so a failed save never orphans the profile picture.
func (h *ProfileHandler) UploadAvatar(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	fh, err := c.FormFile("avatar")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "avatar file is required"})
	}
	if fh.Size > h.Cfg.MaxImageBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "avatar too large"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot read avatar"})
	}
	defer src.Close()

	ctx := c.Request().Context()

	prev, err := h.Profiles.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	mime := fh.Header.Get("Content-Type")
	if mime == "" {
		mime = "application/octet-stream"
	}
	stored, err := h.Media.Upload(ctx, storage.BucketAvatars, fh.Filename, mime, uid, src)
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "avatar upload failed"})
	}
	url := h.Cfg.PublicBaseURL + "/v1/media/" + stored.Bucket + "/" + stored.ID
	if err := h.Profiles.UpdateAvatar(ctx, uid, url); err != nil {
		// Roll back the stored object; the profile still points at the old one.
		_ = h.Media.Delete(ctx, stored.Bucket, stored.ID)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if old := mediaIDFromURL(prev.AvatarURL, storage.BucketAvatars); old != "" {
		_ = h.Media.Delete(ctx, storage.BucketAvatars, old) // best-effort cleanup
	}
	return c.JSON(http.StatusOK, echo.Map{"avatar_url": url})
}

// GetSettings handles GET /v1/settings.
func (h *ProfileHandler) GetSettings(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	s, err := h.Profiles.GetSettings(c.Request().Context(), uid)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, s)
}

// SaveSettings handles PUT /v1/settings.
func (h *ProfileHandler) SaveSettings(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var s repository.Settings
	if err := c.Bind(&s); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if s.Language == "" {
		s.Language = "en"
	}
	if err := h.Profiles.SaveSettings(c.Request().Context(), uid, s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save failed"})
	}
	return c.JSON(http.StatusOK, s)
}

// mediaIDFromURL extracts the object id from a media URL within the given
// bucket, returning "" when the URL does not point at that bucket.
func mediaIDFromURL(url, bucket string) string {
	marker := "/v1/media/" + bucket + "/"
	i := strings.Index(url, marker)
	if i < 0 {
		return ""
	}
	return url[i+len(marker):]
}
