package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	"carrental-backend/internal/api/rest"
	"carrental-backend/internal/config"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository/postgres"
	"carrental-backend/internal/security"
	"carrental-backend/internal/service"
	"carrental-backend/internal/storage"

	_ "github.com/lib/pq"
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
	logger.Info("Starting Car Rental Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

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
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.SessionExpiryDays)

	// Initialize Document Storage
	documentStorage, err := storage.NewLocalStorage(cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize document storage", "error", err)
		log.Fatalf("Failed to initialize document storage: %v", err)
	}
	logger.Info("Document storage ready", "upload_dir", cfg.Storage.UploadDir)

	// Initialize Services
	notifier := service.NewNotificationService(
		store.AppConfigRepository,
		buildFallbackSender(cfg),
		cfg.Email.SMTP.From,
	)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	carSvc := service.NewCarService(store.CarRepository)
	bookingSvc := service.NewBookingService(store.BookingRepository, store.CarRepository, notifier)
	userSvc := service.NewUserService(store.UserRepository)
	settingsSvc := service.NewSettingsService(store.AppConfigRepository)
	setupSvc := service.NewSetupService(store.AppConfigRepository, store.UserRepository)

	// Build the REST API
	server := rest.NewServer(rest.ServerOptions{
		Tokens:         tokenManager,
		Auth:           authSvc,
		Cars:           carSvc,
		Bookings:       bookingSvc,
		Users:          userSvc,
		Settings:       settingsSvc,
		Setup:          setupSvc,
		Documents:      documentStorage,
		Production:     cfg.Server.Production,
		MaxUploadBytes: cfg.Storage.MaxFileSizeMB << 20,
	})

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), server.Router()); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}

// buildFallbackSender returns the boot-time email provider. Admin-saved SMTP
// settings override it at send time.
func buildFallbackSender(cfg *config.Config) service.EmailSender {
	if cfg.Email.Provider == "sendgrid" && cfg.Email.SendGridAPIKey != "" {
		logger.Info("Using SendGrid email provider")
		return service.NewSendGridSender(cfg.Email.SendGridAPIKey)
	}
	if cfg.Email.SMTP.Host == "" {
		logger.Warn("No email provider configured; notification emails disabled until SMTP settings are saved")
		return nil
	}
	logger.Info("Using SMTP email provider", "host", cfg.Email.SMTP.Host, "port", cfg.Email.SMTP.Port)
	return service.NewSMTPSender(cfg.Email.SMTP.Host, cfg.Email.SMTP.Port, cfg.Email.SMTP.User, cfg.Email.SMTP.Password)
}
