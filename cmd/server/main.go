package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loading for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/xricefarmer/bloglist-server/internal/config"
	"github.com/xricefarmer/bloglist-server/internal/database"
	"github.com/xricefarmer/bloglist-server/internal/handler"
	"github.com/xricefarmer/bloglist-server/internal/middleware"
	"github.com/xricefarmer/bloglist-server/internal/queue"
	"github.com/xricefarmer/bloglist-server/internal/repository"
	"github.com/xricefarmer/bloglist-server/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	blogs := repository.NewBlogRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	blogH := handler.NewBlogHandler(cfg, blogs, users)

	// Redis backs the rate limiter and the blog-list response cache.
	// A nil client disables both and the API runs without them.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Print("redis unavailable; cache and rate limiting disabled")
	}
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	e := echo.New() // Create Echo instance
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterBlogs(e, blogH, cfg.JWTSecret, cacheMW)
	if cfg.Env == "test" {
		// Reset endpoint for the e2e suite only.
		router.RegisterTesting(e, handler.NewTestingHandler(repository.NewResetRepo(db)))
	}

	// Background consumer appending blog activity to logs/activity.log.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
