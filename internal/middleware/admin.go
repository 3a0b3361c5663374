package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/reelcampus/student-film-platform/internal/model"
	"github.com/reelcampus/student-film-platform/internal/repository"
)

// RequireStoredAdmin re-reads the caller's role from the profiles table on
// every request.  The role claim baked into an access token is checked by
// RequireRole first, but a token outlives a demotion; privileged endpoints
// must not.  Assumes JWTAuth already placed "user_id" in the context.
func RequireStoredAdmin(profiles *repository.ProfileRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := userIDFrom(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			ctx, cancel := contextWithTimeout(c, 5*time.Second)
			defer cancel()
			role, err := profiles.GetRole(ctx, id)
			if err != nil || role != model.RoleAdmin {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
