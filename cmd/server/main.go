package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Optional .env loading for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/conbyt/conbyt-cms/internal/config"
	"github.com/conbyt/conbyt-cms/internal/database"
	"github.com/conbyt/conbyt-cms/internal/handler"
	"github.com/conbyt/conbyt-cms/internal/middleware"
	"github.com/conbyt/conbyt-cms/internal/queue"
	"github.com/conbyt/conbyt-cms/internal/repository"
	"github.com/conbyt/conbyt-cms/internal/router"
	"github.com/conbyt/conbyt-cms/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set env vars directly

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	// Repositories share the single pooled DB handle.
	blogs := repository.NewBlogRepo(db)
	portfolios := repository.NewPortfolioRepo(db)
	clients := repository.NewClientRepo(db)
	projects := repository.NewProjectRepo(db)
	milestones := repository.NewMilestoneRepo(db)
	payments := repository.NewPaymentRepo(db)
	contacts := repository.NewContactRepo(db)
	admins := repository.NewAdminRepo(db)

	publisher := service.NewContentPublisher(cfg.AMQPURL) // nil when no broker is configured
	if cfg.AMQPURL != "" {
		// Consume content.changed events in the background so the sitemap
		// log stays current even when no external worker is attached.
		go func() {
			if err := queue.StartContentConsumer(cfg.AMQPURL); err != nil {
				log.Printf("content consumer stopped: %v", err)
			}
		}()
	}

	authHandler := handler.NewAuthHandler(cfg, admins)
	adminHandler := handler.NewAdminHandler(blogs, portfolios, clients, projects,
		milestones, payments, contacts, admins, publisher, cfg.BcryptCost)
	publicHandler := handler.NewPublicHandler(blogs, portfolios, contacts)

	// Redis backs both the public response cache and the rate limiter.
	// When Redis is unreachable the client is nil and both middlewares
	// become pass-throughs.
	rdb := config.NewRedisClient()
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limiterMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	e := echo.New() // Create Echo instance
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.TokenSecret, limiterMW)
	router.RegisterAdmin(e, adminHandler, cfg.TokenSecret)
	router.RegisterPublic(e, publicHandler, cacheMW, limiterMW)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
