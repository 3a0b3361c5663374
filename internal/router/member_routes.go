package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/reelcampus/student-film-platform/internal/handler"    // member handlers
	"github.com/reelcampus/student-film-platform/internal/middleware" // JWT + role middlewares
)

// MemberHandlers bundles the handlers behind the signed-in member API.
type MemberHandlers struct {
	Films      *handler.FilmHandler
	Ratings    *handler.RatingHandler
	Comments   *handler.CommentHandler
	Favorites  *handler.LibraryHandler
	WatchLater *handler.LibraryHandler
	Profile    *handler.ProfileHandler
}

// RegisterMember registers endpoints that require a signed-in account.
// All routes require a valid JWT; both roles are accepted since
// administrators are regular members too.
func RegisterMember(e *echo.Echo, h MemberHandlers, jwtSecret string) {
	// Attach middlewares at group construction time for clarity.
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("user", "admin"),
	)

	// ---- Uploads ----
	g.POST("/films", h.Films.Upload)
	g.GET("/me/films", h.Films.MyFilms)

	// ---- Ratings ----
	g.PUT("/films/:id/rating", h.Ratings.Rate) // submitting again replaces the previous score
	g.GET("/films/:id/rating", h.Ratings.GetRating)

	// ---- Comments ----
	// Listing comments is handled by the public browse API at GET /v1/films/:id/comments.
	g.POST("/films/:id/comments", h.Comments.Create)

	// ---- Favorites and watch-later ----
	g.PUT("/films/:id/favorite", h.Favorites.Add)
	g.DELETE("/films/:id/favorite", h.Favorites.Remove)
	g.GET("/me/favorites", h.Favorites.Mine)
	g.PUT("/films/:id/watch-later", h.WatchLater.Add)
	g.DELETE("/films/:id/watch-later", h.WatchLater.Remove)
	g.GET("/me/watch-later", h.WatchLater.Mine)

	// ---- Profile and settings ----
	g.GET("/profile", h.Profile.Get)
	g.PUT("/profile", h.Profile.Update)
	g.PATCH("/profile", h.Profile.Update) // allow partial updates via PATCH as well
	g.POST("/profile/avatar", h.Profile.UploadAvatar)
	g.GET("/settings", h.Profile.GetSettings)
	g.PUT("/settings", h.Profile.SaveSettings)
}
