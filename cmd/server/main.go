package main

import (
	"log/slog"
	"os"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/theshahinrg/crm-api/internal/config"
	"github.com/theshahinrg/crm-api/internal/constants"
	"github.com/theshahinrg/crm-api/internal/database"
	"github.com/theshahinrg/crm-api/internal/handlers"
	"github.com/theshahinrg/crm-api/internal/logging"
	"github.com/theshahinrg/crm-api/internal/middleware"
	"github.com/theshahinrg/crm-api/internal/repository"
	"github.com/theshahinrg/crm-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logging.Setup(cfg.LogLevel)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		slog.Error("failed to add indexes", "error", err)
		os.Exit(1)
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
		slog.Error("failed to create redis store", "error", err)
		os.Exit(1)
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

	// Wire repositories, services, and handlers
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	contactLogRepo := repository.NewContactLogRepository(db)

	authService := services.NewAuthService(userRepo)
	clientService := services.NewClientService(clientRepo, projectRepo, invoiceRepo, contactLogRepo)
	projectService := services.NewProjectService(projectRepo, clientRepo)
	invoiceService := services.NewInvoiceService(invoiceRepo, projectRepo)
	contactLogService := services.NewContactLogService(contactLogRepo, clientRepo, projectRepo)

	authHandler := handlers.NewAuthHandler(authService)
	clientHandler := handlers.NewClientHandler(clientService)
	projectHandler := handlers.NewProjectHandler(projectService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService)
	contactLogHandler := handlers.NewContactLogHandler(contactLogService)

	// Health check endpoint with static site identity
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"author": constants.Site.Author,
			"site":   constants.Site.Site,
			"url":    constants.Site.SiteURL,
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Client routes (protected)
		clients := api.Group("/clients")
		clients.Use(middleware.RequireAuth())
		{
			clients.GET("", clientHandler.ListClients)
			clients.POST("", clientHandler.CreateClient)
			clients.GET("/:id", clientHandler.GetClient)
			clients.PATCH("/:id", clientHandler.UpdateClient)
			clients.DELETE("/:id", clientHandler.DeleteClient)
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

		// Invoice routes (protected)
		invoices := api.Group("/invoices")
		invoices.Use(middleware.RequireAuth())
		{
			invoices.GET("", invoiceHandler.ListInvoices)
			invoices.POST("", invoiceHandler.CreateInvoice)
			invoices.GET("/:id", invoiceHandler.GetInvoice)
			invoices.PATCH("/:id", invoiceHandler.UpdateInvoice)
			invoices.DELETE("/:id", invoiceHandler.DeleteInvoice)
		}

		// Contact log routes (protected)
		logs := api.Group("/contact-logs")
		logs.Use(middleware.RequireAuth())
		{
			logs.GET("", contactLogHandler.ListContactLogs)
			logs.POST("", contactLogHandler.CreateContactLog)
			logs.GET("/:id", contactLogHandler.GetContactLog)
			logs.PATCH("/:id", contactLogHandler.UpdateContactLog)
			logs.DELETE("/:id", contactLogHandler.DeleteContactLog)
		}
	}

	// Start server
	slog.Info("server starting", "addr", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}
