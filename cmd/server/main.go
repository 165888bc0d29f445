package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"

	"rentalpos-backend/internal/config"
	"rentalpos-backend/internal/jobs"
	"rentalpos-backend/internal/logger"
	"rentalpos-backend/internal/repository/postgres"
	"rentalpos-backend/internal/scheduler"
	"rentalpos-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	migrationsDir := flag.String("migrations", "migrations", "Path to migration files")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting RentalPOS backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := postgres.Open(cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	if err := postgres.RunMigrations(db, *migrationsDir); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Register settings
	settings := service.Settings{
		TaxRate:           decimal.NewFromFloat(cfg.POS.TaxRate),
		DefaultRentalDays: cfg.POS.DefaultRentalDays,
		LateFeePerDay:     decimal.NewFromFloat(cfg.POS.LateFeePerDay),
		DueSoonDays:       cfg.POS.DueSoonDays,
	}

	// Initialize Services. The register frontend consumes the full
	// service layer; the daemon itself only drives the scheduled jobs.
	emailSvc := service.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)
	inventorySvc := service.NewInventoryService(store)
	rentalSvc := service.NewRentalService(store, settings)

	// Initialize Job Runner and Scheduler
	jobRunner := jobs.NewJobRunner(store, &jobs.Services{
		Email:     emailSvc,
		Rental:    rentalSvc,
		Inventory: inventorySvc,
	}, cfg)
	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()

	logger.Info("RentalPOS backend is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down...")
	cronScheduler.Stop()
	logger.Info("RentalPOS backend stopped. Goodbye!")
}
