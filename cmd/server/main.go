package main

import (
	"context"
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"

	"github.com/asahina-dev/teamspace-api/internal/config"
	"github.com/asahina-dev/teamspace-api/internal/constants"
	"github.com/asahina-dev/teamspace-api/internal/database"
	"github.com/asahina-dev/teamspace-api/internal/handlers"
	"github.com/asahina-dev/teamspace-api/internal/middleware"
	"github.com/asahina-dev/teamspace-api/internal/repository"
	"github.com/asahina-dev/teamspace-api/internal/services"
	"github.com/asahina-dev/teamspace-api/internal/storage"
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

	// Object storage for workspace/project images
	store, err := storage.NewGCSStorage(context.Background(), cfg.GCSBucket, cfg.GCSCredentials)
	if err != nil {
		log.Fatalf("Failed to create storage client: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	sessionStore, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: 2,            // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionName, sessionStore))

	// Initialize repositories and services
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	wsRepo := repository.NewWorkspaceRepository(db)
	projectRepo := repository.NewProjectRepository(db)

	images := services.NewImageService(store)
	authService := services.NewAuthService(userRepo)
	wsService := services.NewWorkspaceService(wsRepo, images)
	projectService := services.NewProjectService(projectRepo, wsRepo, images)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	wsHandler := handlers.NewWorkspaceHandler(wsService)
	projectHandler := handlers.NewProjectHandler(projectService)
	memberHandler := handlers.NewMemberHandler(wsService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Teamspace API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Public invite link preview (renders before sign-in)
		api.GET("/workspaces/:id/join/:code/info", wsHandler.GetWorkspaceJoinInfo)

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Workspace routes (protected)
		ws := api.Group("/workspaces")
		ws.Use(middleware.RequireAuth())
		{
			ws.GET("", wsHandler.ListWorkspaces)
			ws.POST("", wsHandler.CreateWorkspace)
			ws.GET("/:id", wsHandler.GetWorkspace)
			ws.PATCH("/:id", wsHandler.UpdateWorkspace)
			ws.DELETE("/:id", wsHandler.DeleteWorkspace)
			ws.PATCH("/:id/reset-invite-code", wsHandler.ResetInviteCode)
			ws.GET("/:id/join/:code", wsHandler.GetWorkspaceForJoin)
			ws.POST("/:id/join", wsHandler.JoinWorkspace)
			ws.DELETE("/:id/members", wsHandler.LeaveWorkspace)
			ws.DELETE("/:id/members/:user_id", wsHandler.RemoveMember)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth())
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:id", projectHandler.GetProject)
			projects.PATCH("/:id", projectHandler.UpdateProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)
		}

		// Member listing (protected)
		api.GET("/members", middleware.RequireAuth(), memberHandler.ListMembers)
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
