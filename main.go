package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"shrtr-be/internal/config"
	"shrtr-be/internal/controllers"
	"shrtr-be/internal/database"
	"shrtr-be/internal/jwt"
	"shrtr-be/internal/logger"
	"shrtr-be/internal/middleware"
	"shrtr-be/internal/notifier"
	"shrtr-be/internal/ratelimit"
	"shrtr-be/internal/repository"
	"shrtr-be/internal/service"
)

func main() {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Event publishing over Redis is optional - degrade to a no-op notifier
	// when it is not configured or unreachable
	var events notifier.Notifier
	if cfg.RedisURL != "" {
		events, err = notifier.NewRedisNotifier(cfg.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Redis. Continuing without event publishing.")
			events = notifier.NewNoopNotifier()
		} else {
			logger.Info().Msg("Connected to Redis for event publishing")
		}
	} else {
		events = notifier.NewNoopNotifier()
	}

	// Initialize repositories and the database-backed redirect limiter
	linkRepo := repository.NewLinkRepository(db)
	userRepo := repository.NewUserRepository(db)
	limiter := ratelimit.NewPostgresLimiter(db)

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWTSecret,
		time.Duration(cfg.JWTTTL)*time.Hour,
	)

	// Initialize services
	linkService := service.NewLinkService(linkRepo, userRepo, limiter, events, cfg.BaseURL, cfg.ShortCodeLength)
	authService := service.NewAuthService(userRepo, jwtService, events)
	settingsService := service.NewSettingsService(userRepo)

	// Initialize controllers
	redirectController := controllers.NewRedirectController(linkService)
	linksController := controllers.NewLinksController(linkService)
	settingsController := controllers.NewSettingsController(settingsService)
	authController := controllers.NewAuthController(authService)
	qrcodeController := controllers.NewQRCodeController(cfg.BaseURL)

	// Per-IP rate limiters (transport-level protection)
	generalRateLimiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	authRateLimiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst)
	redirectRateLimiter := middleware.NewIPRateLimiter(30.0, 60) // More lenient for redirects

	router := gin.Default()

	// Health check endpoint (no rate limiting)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Redirect endpoint
	router.GET("/:shortCode", redirectRateLimiter.LimitMiddleware(), redirectController.Redirect)

	// API v1 routes group with general rate limiting
	api := router.Group("/api/v1")
	api.Use(generalRateLimiter.LimitMiddleware())
	{
		// Auth routes with stricter rate limiting
		auth := api.Group("/auth")
		auth.Use(authRateLimiter.LimitMiddleware())
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
		}

		// Protected routes - require JWT authentication
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(jwtService))
		{
			protected.POST("/links", linksController.CreateLink)
			protected.GET("/links", linksController.GetLinks)
			protected.GET("/links/:id", linksController.GetLink)
			protected.DELETE("/links/:id", linksController.DeleteLink)
			protected.GET("/links/:id/metrics", linksController.GetLinkMetrics)

			protected.GET("/settings/rate-limit", settingsController.GetRateLimit)
			protected.PUT("/settings/rate-limit", settingsController.UpdateRateLimit)
		}

		// QR Code generation
		api.GET("/qrcode/:shortCode", qrcodeController.GenerateQRCode)
	}

	logger.Info().Str("port", cfg.Port).Msg("Server starting")
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("Server stopped")
	}
}
