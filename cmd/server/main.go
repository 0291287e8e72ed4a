package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "volunteer-marketplace-backend/internal/api/http"
	"volunteer-marketplace-backend/internal/authz"
	"volunteer-marketplace-backend/internal/config"
	"volunteer-marketplace-backend/internal/logger"
	"volunteer-marketplace-backend/internal/repository/postgres"
	"volunteer-marketplace-backend/internal/security"
	"volunteer-marketplace-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Volunteer Marketplace Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("SMTP configuration", "host", cfg.SMTP.Host, "port", cfg.SMTP.Port)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Minute,
	)

	// Initialize Authorization
	evaluator := authz.NewEvaluator(
		store.UserRepository,
		store.OrgRoleRepository,
		store.ProjectRoleRepository,
		store.TaskRepository,
		store.TaskRoleRepository,
	)
	gate := authz.NewGate(evaluator)

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)

	// Initialize Services
	noteSvc := service.NewNotificationService(store.NotificationRepository, store.UserRepository, emailSvc)
	userSvc := service.NewUserService(store.UserRepository, store, gate, noteSvc)
	authSvc := service.NewAuthService(store.UserRepository, userSvc, emailSvc, tokenManager)
	orgSvc := service.NewOrganizationService(
		store.OrganizationRepository,
		store.OrgRoleRepository,
		store.MembershipRequestRepository,
		store.UserRepository,
		store,
		gate,
		noteSvc,
	)
	projSvc := service.NewProjectService(
		store.ProjectRepository,
		store.ProjectRoleRepository,
		store.TaskRepository,
		store.ProjectLogRepository,
		store,
		gate,
		noteSvc,
	)
	taskSvc := service.NewProjectTaskService(
		store.ProjectRepository,
		store.ProjectRoleRepository,
		store.TaskRepository,
		store.TaskRoleRepository,
		store.ApplicationRepository,
		store.TaskReviewRepository,
		store.ProjectLogRepository,
		store.UserRepository,
		store,
		gate,
		noteSvc,
	)

	// Initialize HTTP handlers and router
	router := httpapi.NewRouter(httpapi.Handlers{
		Auth:         httpapi.NewAuthHandler(authSvc),
		User:         httpapi.NewUserHandler(userSvc),
		Org:          httpapi.NewOrgHandler(orgSvc),
		Project:      httpapi.NewProjectHandler(projSvc),
		Task:         httpapi.NewTaskHandler(taskSvc),
		Notification: httpapi.NewNotificationHandler(noteSvc),
	}, tokenManager)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
