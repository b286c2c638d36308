// Package server contains the HTTP handlers and route wiring for the social API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	_ "snsapi/docs" // swagger docs
	"snsapi/internal/config"
	"snsapi/internal/database"
	"snsapi/internal/featureflags"
	"snsapi/internal/middleware"
	"snsapi/internal/models"
	"snsapi/internal/notifications"
	"snsapi/internal/observability"
	"snsapi/internal/repository"
	"snsapi/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	// BodyLimit caps request bodies; posts and comments are plain text.
	BodyLimit = 1 * 1024 * 1024

	writeRateWindow = time.Minute
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	store          repository.Store
	notifier       *notifications.Notifier
	featureFlags   *featureflags.Manager
	postService    *service.PostService
	commentService *service.CommentService
	likeService    *service.LikeService
}

// NewServer creates a new server instance with all dependencies. Redis is
// optional: when REDIS_URL is empty or unreachable the server runs without
// change events and write rate limiting.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = notifications.Connect(ctx, cfg.RedisURL)
		if err != nil {
			middleware.Logger.Warn("Redis unavailable, continuing without events and write rate limiting",
				slog.String("error", err.Error()))
			redisClient = nil
		} else {
			middleware.Logger.Info("Redis connected successfully")
		}
	}

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis itself.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	store := repository.NewStore(db)
	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics(observability.ServiceName),
		store:          store,
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
		postService:    service.NewPostService(store),
		commentService: service.NewCommentService(store),
		likeService:    service.NewLikeService(store),
	}

	if redisClient != nil {
		server.notifier = notifications.NewNotifier(redisClient)
	}

	return server, nil
}

// NewApp builds the Fiber application with the full middleware stack and routes.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Social Media API",
		BodyLimit:    BodyLimit,
		ErrorHandler: ErrorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	s.app = app
	return app
}

// ErrorHandler renders every error that reaches Fiber (unmatched routes, wrong
// methods, recovered panics, oversized bodies) with the standard error body.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := models.StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "unhandled error",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
	}
	return models.RespondWithError(c, status, err)
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Server span per request; must run before ContextMiddleware so the trace
	// ID is available in locals.
	app.Use(middleware.TracingMiddleware())

	// Context Middleware to propagate Request ID and Trace ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
		MaxAge:       86400, // 24 hours
	}))

	// Global rate limiting per IP
	if s.config.RateLimitMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        s.config.RateLimitMax,
			Expiration: 1 * time.Minute,
			// Never rate-limit preflight requests; they should be handled by CORS.
			Next: func(c *fiber.Ctx) bool {
				return c.Method() == fiber.MethodOptions
			},
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return models.RespondWithError(c, fiber.StatusTooManyRequests, models.NewRateLimitError())
			},
		}))
	}
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	api.Get("/health", s.HealthCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	if s.featureFlags.Enabled("monitor", "") {
		api.Get("/metrics/dashboard", monitor.New(monitor.Config{
			Title: "Social Media API Metrics Dashboard",
		}))
	}

	// Swagger documentation
	if s.featureFlags.Enabled("docs", "") {
		api.Get("/docs/*", swagger.HandlerDefault)
		app.Get("/", func(c *fiber.Ctx) error {
			return c.Redirect("/api/docs/index.html", fiber.StatusFound)
		})
	}

	api.Get("/feature-flags", s.GetFeatureFlags)

	posts := api.Group("/posts")
	posts.Get("/", s.ListPosts)
	posts.Post("/", s.writeLimit("create_post"), s.CreatePost)

	// Define specific /:postId/:resource routes BEFORE generic /:postId route
	posts.Get("/:postId/comments", s.ListComments)
	posts.Post("/:postId/comments", s.writeLimit("create_comment"), s.CreateComment)
	posts.Get("/:postId/comments/:commentId", s.GetComment)
	posts.Patch("/:postId/comments/:commentId", s.writeLimit("update_comment"), s.UpdateComment)
	posts.Delete("/:postId/comments/:commentId", s.writeLimit("delete_comment"), s.DeleteComment)

	posts.Post("/:postId/likes", s.writeLimit("like_post"), s.LikePost)
	posts.Delete("/:postId/likes", s.writeLimit("unlike_post"), s.UnlikePost)

	// Generic /:postId routes (for item detail, update, delete)
	posts.Get("/:postId", s.GetPost)
	posts.Patch("/:postId", s.writeLimit("update_post"), s.UpdatePost)
	posts.Delete("/:postId", s.writeLimit("delete_post"), s.DeletePost)
}

// writeLimit returns the Redis-backed per-client limiter for a write route, or
// a pass-through when Redis is absent, the environment is exempt or the limit
// is disabled.
func (s *Server) writeLimit(name string) fiber.Handler {
	if s.redis == nil || middleware.RateLimitBypassed(s.config.Env) || s.config.WriteRateLimit <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	policy := middleware.FailOpen
	if s.config.WriteRateLimitFailClosed {
		policy = middleware.FailClosed
	}
	return middleware.RateLimitWithPolicy(s.redis, s.config.WriteRateLimit, writeRateWindow, policy, name)
}

// HealthCheck reports that the process is serving requests.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} object{status=string,message=string}
// @Router /health [get]
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "UP",
		"message": "Social App is running successfully!",
	})
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now().UTC(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis only counts against
// readiness when it was configured.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus != "healthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now().UTC(),
	})
}

// GetFeatureFlags returns configured feature flags and their evaluated state
// for the optional ?subject= query parameter.
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	subject := c.Query("subject")
	return c.JSON(fiber.Map{
		"raw":       s.featureFlags.Raw(),
		"evaluated": s.featureFlags.Snapshot(subject),
	})
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return nil
}
