package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/reelcampus/student-film-platform/internal/handler"    // public browse handlers
	"github.com/reelcampus/student-film-platform/internal/middleware" // optional JWT for detail visibility
)

// PublicHandlers bundles the handlers behind the unauthenticated API so the
// registration call stays readable.
type PublicHandlers struct {
	Films    *handler.PublicHandler
	Comments *handler.CommentHandler
	Media    *handler.MediaHandler
	Pages    *handler.PagesHandler
}

// RegisterPublic registers the guest-facing browse endpoints.  Only approved
// films appear here.  The film detail route runs the optional JWT middleware
// so a director (or an administrator) can open their own pending film; every
// other route is fully anonymous.  The cache middleware is applied to the
// heavy list and search routes only: the detail route depends on who is
// asking and the media route streams large bodies.
func RegisterPublic(e *echo.Echo, h PublicHandlers, jwtSecret string, cache echo.MiddlewareFunc) {
	// ---- Films ----
	e.GET("/v1/films", h.Films.ListFilms, cache)
	e.GET("/v1/films/:id", h.Films.GetFilm, middleware.JWTOptional(jwtSecret))
	e.GET("/v1/search/films", h.Films.SearchFilms, cache)
	e.GET("/v1/categories", h.Films.ListCategories, cache)

	// ---- Comments ----
	// Reading comments is public; writing them is registered with the member routes.
	e.GET("/v1/films/:id/comments", h.Comments.List)

	// ---- Media ----
	// Streams stored objects (avatars, thumbnails, videos) by bucket and id.
	e.GET("/v1/media/:bucket/:id", h.Media.Get)

	// ---- Static pages and forms ----
	e.GET("/v1/pages/:slug", h.Pages.GetPage, cache)
	e.POST("/v1/contact", h.Pages.Contact)
	e.POST("/v1/report-problem", h.Pages.ReportProblem)
}
