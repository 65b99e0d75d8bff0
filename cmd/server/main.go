package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"storyfeed/internal/auth"
	"storyfeed/internal/config"
	"storyfeed/internal/feedorder"
	"storyfeed/internal/handler"
	"storyfeed/internal/middleware"
	"storyfeed/internal/repository/postgres"
	"storyfeed/internal/service"
	"storyfeed/internal/service/postcard"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier for caller identity
	jwtVerifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	storyRepo := postgres.NewStoryRepository(repoConfig)
	authorRepo := postgres.NewAuthorRepository(repoConfig)
	engagementRepo := postgres.NewEngagementRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Feed order field allow-list
	orders, err := feedorder.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load feed order registry: %v", err)
	}

	// Create services
	guard := service.NewAbuseGuard(storyRepo, authorRepo, logger)
	renderer := postcard.NewFileRenderer(cfg.PostcardDir, logger)
	feedService := service.NewFeedService(storyRepo, authorRepo, orders, logger)
	storyService := service.NewStoryService(storyRepo, authorRepo, guard, renderer, logger)
	engagementService := service.NewEngagementService(engagementRepo, storyRepo, authorRepo, txManager, logger)

	// Create handlers
	feedHandler := handler.NewFeedHandler(feedService, logger)
	storyHandler := handler.NewStoryHandler(storyService, logger)
	engagementHandler := handler.NewEngagementHandler(engagementService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", engagementHandler.HealthCheck)

	// Feed routes
	mux.HandleFunc("GET /{$}", feedHandler.ListFeed)
	mux.HandleFunc("GET /{id}", feedHandler.GetStory)
	mux.HandleFunc("GET /{id}/postcard", feedHandler.GetPostcard)

	// Story routes
	mux.HandleFunc("POST /{$}", storyHandler.CreateStory)
	mux.HandleFunc("PATCH /{id}", storyHandler.UpdateStory)

	// Engagement routes
	mux.HandleFunc("POST /{id}/like", engagementHandler.Like)
	mux.HandleFunc("DELETE /{id}/like", engagementHandler.Unlike)
	mux.HandleFunc("POST /{id}/violation", engagementHandler.Report)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	root = middleware.Auth(jwtVerifier)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Edit-Token"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
