package main // Entry point package

import (
	"context" // Shutdown contexts
	"log"     // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/reelcampus/student-film-platform/internal/config"     // Internal config loader
	"github.com/reelcampus/student-film-platform/internal/database"   // MySQL connection
	"github.com/reelcampus/student-film-platform/internal/handler"    // HTTP handlers
	"github.com/reelcampus/student-film-platform/internal/middleware" // Rate limiting and caching
	"github.com/reelcampus/student-film-platform/internal/model"      // Domain constants
	"github.com/reelcampus/student-film-platform/internal/queue"      // Moderation event consumer
	"github.com/reelcampus/student-film-platform/internal/repository" // Data access layer
	"github.com/reelcampus/student-film-platform/internal/router"     // Route registration
	"github.com/reelcampus/student-film-platform/internal/storage"    // GridFS media store
)

func main() {
	// Load a local .env if present; real deployments set the environment
	// directly and no file is required.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	// Open the relational database holding profiles, films and everything
	// that references them.
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	// Open the media store.  Avatars, thumbnails and videos live in GridFS
	// buckets and are streamed back through /v1/media.
	media, err := storage.Connect(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("connect media store: %v", err)
	}
	defer media.Close(context.Background())

	// Redis backs the rate limiter and the public response cache.  A nil
	// client disables both instead of failing startup.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and caching disabled")
	}

	// Repositories.
	profiles := repository.NewProfileRepo(db)
	tokens := repository.NewTokenRepo(db)
	films := repository.NewFilmRepo(db)
	categories := repository.NewCategoryRepo(db)
	comments := repository.NewCommentRepo(db)
	ratings := repository.NewRatingRepo(db)
	favorites := repository.NewLibraryRepo(db, model.ListFavorites)
	watchLater := repository.NewLibraryRepo(db, model.ListWatchLater)
	messages := repository.NewMessageRepo(db)
	stats := repository.NewStatsRepo(db)

	// Handlers.
	authHandler := handler.NewAuthHandler(cfg, profiles, tokens)
	publicHandler := &handler.PublicHandler{Films: films, Categories: categories}
	commentHandler := handler.NewCommentHandler(comments, films)
	mediaHandler := handler.NewMediaHandler(media)
	pagesHandler := handler.NewPagesHandler(messages)
	filmHandler := handler.NewFilmHandler(cfg, films, categories, profiles, media)
	ratingHandler := handler.NewRatingHandler(ratings, films)
	favHandler := handler.NewLibraryHandler(favorites, films)
	watchHandler := handler.NewLibraryHandler(watchLater, films)
	profileHandler := handler.NewProfileHandler(cfg, profiles, media)

	e := echo.New() // Create Echo instance

	// Global token-bucket rate limiting, keyed by user when signed in and by
	// client IP otherwise.
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	// Cached responses are applied per route inside RegisterPublic.
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)                           // Health check
	router.RegisterAuth(e, authHandler, cfg.JWTSecret) // Register, login, refresh, logout, me
	router.RegisterPublic(e, router.PublicHandlers{    // Guest browse API
		Films:    publicHandler,
		Comments: commentHandler,
		Media:    mediaHandler,
		Pages:    pagesHandler,
	}, cfg.JWTSecret, cacheMW)
	router.RegisterMember(e, router.MemberHandlers{ // Signed-in member API
		Films:      filmHandler,
		Ratings:    ratingHandler,
		Comments:   commentHandler,
		Favorites:  favHandler,
		WatchLater: watchHandler,
		Profile:    profileHandler,
	}, cfg.JWTSecret)
	router.RegisterAdmin(e, router.AdminHandlers{ // Moderation and administration
		Users:      handler.NewAdminUserHandler(profiles, films, media),
		Films:      handler.NewAdminFilmHandler(films, media),
		Categories: handler.NewAdminCategoryHandler(categories),
		Stats:      handler.NewAdminStatsHandler(stats),
	}, profiles, cfg.JWTSecret)

	// The moderation consumer runs for the lifetime of the process and
	// reconnects on broker failures.
	go func() {
		if err := queue.StartModerationConsumer(); err != nil {
			log.Printf("moderation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
