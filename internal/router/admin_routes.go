package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/reelcampus/student-film-platform/internal/handler"    // admin handlers
	"github.com/reelcampus/student-film-platform/internal/middleware" // JWT + role middlewares
	"github.com/reelcampus/student-film-platform/internal/repository" // stored-role recheck needs the profile repository
)

// AdminHandlers bundles the handlers behind /v1/admin.
type AdminHandlers struct {
	Users      *handler.AdminUserHandler
	Films      *handler.AdminFilmHandler
	Categories *handler.AdminCategoryHandler
	Stats      *handler.AdminStatsHandler
}

// RegisterAdmin registers administrator-only endpoints under /v1/admin.
// On top of the JWT role claim the stored role is re-read per request, so a
// demoted admin loses access as soon as the row changes, not when their
// token expires.
func RegisterAdmin(e *echo.Echo, h AdminHandlers, profiles *repository.ProfileRepo, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("admin"),
		middleware.RequireStoredAdmin(profiles),
	)

	// ---- Dashboard ----
	g.GET("/dashboard", h.Stats.Dashboard)
	g.GET("/analytics", h.Stats.Analytics)

	// ---- Users ----
	g.GET("/users", h.Users.List)
	g.PATCH("/users/:id", h.Users.Update)
	g.DELETE("/users/:id", h.Users.Delete)

	// ---- Films ----
	g.GET("/films", h.Films.List)
	g.PATCH("/films/:id", h.Films.Moderate)
	g.DELETE("/films/:id", h.Films.Delete)

	// ---- Categories ----
	g.GET("/categories", h.Categories.List)
	g.POST("/categories", h.Categories.Create)
	g.PUT("/categories/:id", h.Categories.Update)
	g.PATCH("/categories/:id", h.Categories.Update) // allow partial updates via PATCH as well
	g.DELETE("/categories/:id", h.Categories.Delete)
}
