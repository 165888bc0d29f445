package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/shopspring/decimal"

	"rentalpos-backend/internal/config"
	"rentalpos-backend/internal/jobs"
	"rentalpos-backend/internal/logger"
	"rentalpos-backend/internal/repository/postgres"
	"rentalpos-backend/internal/service"
)

// Manual job execution, for operators and cron-less deployments. The
// long-running daemon in cmd/server schedules the same jobs itself.
func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	jobName := flag.String("job", "all", "Job to run: 'low-stock-alerts', 'overdue-rental-alerts', or 'all'")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting RentalPOS job runner...", "job", *jobName)

	// Initialize Database
	db, err := postgres.Open(cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	settings := service.Settings{
		TaxRate:           decimal.NewFromFloat(cfg.POS.TaxRate),
		DefaultRentalDays: cfg.POS.DefaultRentalDays,
		LateFeePerDay:     decimal.NewFromFloat(cfg.POS.LateFeePerDay),
		DueSoonDays:       cfg.POS.DueSoonDays,
	}

	// Initialize Services
	emailSvc := service.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)

	jobRunner := jobs.NewJobRunner(store, &jobs.Services{
		Email:     emailSvc,
		Rental:    service.NewRentalService(store, settings),
		Inventory: service.NewInventoryService(store),
	}, cfg)

	switch *jobName {
	case "low-stock-alerts":
		jobRunner.LowStockAlerts()
	case "overdue-rental-alerts":
		jobRunner.OverdueRentalAlerts()
	case "all":
		jobRunner.RunAllDailyJobs()
	default:
		logger.Error("Unknown job name", "job", *jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - low-stock-alerts\n")
		fmt.Printf("  - overdue-rental-alerts\n")
		fmt.Printf("  - all\n")
		os.Exit(1)
	}

	logger.Info("Job execution completed", "job", *jobName)
}
