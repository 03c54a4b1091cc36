package main

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"tracker-service/internal/handler"
	"tracker-service/internal/middleware"
	"tracker-service/internal/repository"
	"tracker-service/internal/service"
	"tracker-service/pkg/config"
	"tracker-service/pkg/database"
	"tracker-service/pkg/jwtutil"
	"tracker-service/pkg/logger"
	"tracker-service/prometheus"
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
	log.Info("Starting tracker service...", zap.String("environment", cfg.Server.Env))

	// Initialize database
	if err := database.Initialize(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize the session token codec
	jwtutil.Initialize(&cfg.JWT)
	log.Info("JWT utility initialized")

	// Wire repositories and services
	db := database.GetDB()
	tenants := repository.NewTenantRepository(db)
	users := repository.NewUserRepository(db)
	projects := repository.NewProjectRepository(db)
	tasks := repository.NewTaskRepository(db)

	authService := service.NewAuthService(tenants, users, service.NewBcryptVerifier())
	projectService := service.NewProjectService(projects, cfg.Page)
	taskService := service.NewTaskService(tasks, projects, users, cfg.Page)
	userService := service.NewUserService(users, cfg.Page)

	authHandler := handler.NewAuthHandler(authService)
	projectHandler := handler.NewProjectHandler(projectService)
	taskHandler := handler.NewTaskHandler(taskService)
	userHandler := handler.NewUserHandler(userService)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// Authentication routes
	auth := e.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, middleware.AuthMiddleware)

	// API routes - all require authentication
	api := e.Group("/api")
	api.Use(middleware.AuthMiddleware)

	// Projects
	api.POST("/projects", projectHandler.Create)
	api.GET("/projects", projectHandler.List)
	api.GET("/projects/:projectId", projectHandler.Get)
	api.PUT("/projects/:projectId", projectHandler.Update)
	api.DELETE("/projects/:projectId", projectHandler.Delete)

	// Tasks, nested under their project for create/list
	api.POST("/projects/:projectId/tasks", taskHandler.Create)
	api.GET("/projects/:projectId/tasks", taskHandler.List)
	api.PATCH("/tasks/:taskId/status", taskHandler.UpdateStatus)
	api.PUT("/tasks/:taskId", taskHandler.Update)
	api.DELETE("/tasks/:taskId", taskHandler.Delete)

	// Tenant users (assignee pickers)
	api.GET("/users", userHandler.List)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
