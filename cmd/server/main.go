package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/harukit/civic-report-api/internal/config"
	"github.com/harukit/civic-report-api/internal/constants"
	"github.com/harukit/civic-report-api/internal/database"
	"github.com/harukit/civic-report-api/internal/handlers"
	"github.com/harukit/civic-report-api/internal/middleware"
	"github.com/harukit/civic-report-api/internal/repository"
	"github.com/harukit/civic-report-api/internal/services"
	"github.com/harukit/civic-report-api/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Initialize blob storage
	var blobs storage.BlobStore
	switch cfg.StorageBackend {
	case "minio":
		store, err := storage.NewMinioStore(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize MinIO storage: %v", err)
		}
		blobs = store
	case "local":
		store, err := storage.NewLocalStore(cfg.LocalStorePath)
		if err != nil {
			log.Fatalf("Failed to initialize local storage: %v", err)
		}
		blobs = store
	default:
		log.Fatalf("Unsupported STORAGE_BACKEND: %s", cfg.StorageBackend)
	}

	// Initialize repositories and services
	userRepo := repository.NewUserRepository(database.GetDB())
	submissionRepo := repository.NewSubmissionRepository(database.GetDB())

	authService := services.NewAuthService(userRepo)
	submissionService := services.NewSubmissionService(submissionRepo, blobs)

	// Bootstrap the admin account from config
	if err := authService.EnsureAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to ensure admin account: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	submissionHandler := handlers.NewSubmissionHandler(submissionService, cfg.MaxUploadSize)

	// Root redirects authenticated users to their profile, others to login
	r.GET("/", func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get(constants.ContextKeyUserID) != nil {
			c.Redirect(http.StatusFound, "/api/auth/me")
			return
		}
		c.Redirect(http.StatusFound, "/api/auth/login")
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Civic Report API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Submission routes
		subs := api.Group("/submissions")
		{
			subs.POST("", middleware.RequireAuth(), submissionHandler.Upload)
			subs.GET("/mine", middleware.RequireAuth(), submissionHandler.ListMine)
			subs.GET("/approved", submissionHandler.ListApproved)

			// Admin-only lifecycle routes
			subs.GET("/pending", middleware.RequireAuth(), middleware.RequireAdmin(), submissionHandler.ListPending)
			subs.POST("/:id/approve", middleware.RequireAuth(), middleware.RequireAdmin(), submissionHandler.Approve)
			subs.POST("/:id/disapprove", middleware.RequireAuth(), middleware.RequireAdmin(), submissionHandler.Disapprove)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
