package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"propertyhub-api/internal/handler"
	"propertyhub-api/internal/middleware"
	"propertyhub-api/internal/repository"
	"propertyhub-api/pkg/config"
	"propertyhub-api/pkg/database"
	"propertyhub-api/pkg/hash"
	"propertyhub-api/pkg/jwtutil"
	"propertyhub-api/pkg/logger"
	"propertyhub-api/prometheus"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting PropertyHub API...", cfg.LogConfig()...)

	// Initialize the document store - one process-wide connection, closed on exit
	store, err := database.Connect(context.Background(), &cfg.Mongo)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	log.Info("MongoDB connection established", zap.String("database", cfg.Mongo.Database))

	// Initialize JWT and password hashing from config
	jwtutil.Initialize(&cfg.JWT)
	hash.Initialize(&cfg.Bcrypt)

	// Build repositories and ensure indexes
	users := repository.NewUserRepository(store.Database())
	properties := repository.NewPropertyRepository(store.Database())

	indexCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := users.EnsureIndexes(indexCtx); err != nil {
		cancel()
		log.Fatal("Failed to ensure user indexes", zap.Error(err))
	}
	cancel()

	// Handlers get their stores injected; no ambient database globals
	authHandler := handler.NewAuthHandler(users, properties, cfg.Mongo.Database)
	propertyHandler := handler.NewPropertyHandler(properties)

	// Initialize Echo framework
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpErrorHandler(cfg, log)

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.Secure())
	e.Use(echomiddleware.Gzip())
	e.Use(echomiddleware.BodyLimit("1M"))
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())
	e.Use(middleware.CORSMiddleware(&cfg.CORS))
	e.Use(rateLimiter(&cfg.RateLimit))

	// Metrics endpoint outside the API prefix
	e.GET("/metrics", handler.MetricsHandler)

	api := e.Group(cfg.Server.APIPrefix)
	api.GET("/health", handler.HealthCheck)

	// Authentication routes - public
	auth := api.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	if !cfg.IsProduction() {
		auth.GET("/_debug/users-count", authHandler.DebugUsersCount)
	}

	// Session-scoped routes - require a valid bearer token
	session := auth.Group("")
	session.Use(middleware.AuthMiddleware)
	session.GET("/profile", authHandler.GetProfile)
	session.PUT("/profile", authHandler.UpdateProfile)
	session.PUT("/change-password", authHandler.ChangePassword)
	session.POST("/logout", authHandler.Logout)

	// Property CRUD - public, no auth middleware
	props := api.Group("/properties")
	props.GET("", propertyHandler.List)
	props.POST("", propertyHandler.Create)
	props.GET("/:id", propertyHandler.Get)
	props.PUT("/:id", propertyHandler.Update)
	props.DELETE("/:id", propertyHandler.Delete)

	// Start server
	go func() {
		log.Info("Starting server",
			zap.String("port", cfg.Server.Port),
			zap.String("health", cfg.Server.APIPrefix+"/health"),
			zap.String("signup", cfg.Server.APIPrefix+"/auth/signup"),
			zap.String("login", cfg.Server.APIPrefix+"/auth/login"))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for shutdown signal, then stop the server and close the store
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}
	if err := store.Disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect error", zap.Error(err))
	}
	log.Info("Shutdown complete")
}

// rateLimiter builds the in-memory rate limiter sized from config: at most
// MaxRequests per Window per client IP.
func rateLimiter(cfg *config.RateLimitConfig) echo.MiddlewareFunc {
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(float64(cfg.MaxRequests) / cfg.Window.Seconds()),
			Burst:     cfg.MaxRequests,
			ExpiresIn: cfg.Window,
		}),
	})
}

// httpErrorHandler is the centralized error responder: unmatched routes get
// the 404 body, everything unanticipated gets a generic message with detail
// included only outside production.
func httpErrorHandler(cfg *config.Config, log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := "Something went wrong!"

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			code = httpErr.Code
			if code == http.StatusNotFound {
				_ = c.JSON(code, echo.Map{"message": "Route not found", "path": c.Request().URL.Path})
				return
			}
			if msg, ok := httpErr.Message.(string); ok {
				message = msg
			}
		}

		log.Error("Unhandled request error",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Int("status", code),
			zap.Error(err))

		body := echo.Map{"message": message}
		if !cfg.IsProduction() {
			body["error"] = err.Error()
		}
		_ = c.JSON(code, body)
	}
}
