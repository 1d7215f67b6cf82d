package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"linguabook-backend/internal/config"
	"linguabook-backend/internal/jobs"
	"linguabook-backend/internal/logger"
	"linguabook-backend/internal/repository/docstore"
	"linguabook-backend/internal/scheduler"
	"linguabook-backend/internal/service"
	"linguabook-backend/internal/store"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'complete-elapsed-bookings', 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting LinguaBook Cronjob Runner...", "log_level", cfg.Log.Level)
	logger.Info("Store configuration", "backend", cfg.Store.Backend)

	// Initialize document store
	docs, cleanup, err := openDocStore(cfg)
	if err != nil {
		logger.Error("Failed to initialize document store", "error", err)
		log.Fatalf("Failed to initialize document store: %v", err)
	}
	defer cleanup()

	// Initialize Repositories
	repos := docstore.NewStore(docs)

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	assignmentSvc := service.NewAssignmentService(repos.AssignmentRepository, repos.BookingRepository, repos.UserRepository, emailSvc)

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(
		&jobs.Repositories{
			Booking:       repos.BookingRepository,
			Assignment:    repos.AssignmentRepository,
			ClientInvoice: repos.ClientInvoiceRepository,
			User:          repos.UserRepository,
		},
		&jobs.Services{
			Assignment: assignmentSvc,
			Email:      emailSvc,
		},
		cfg,
	)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "complete-elapsed-bookings":
		jobRunner.CompleteElapsedBookings()
	case "expire-stale-offers":
		jobRunner.ExpireStaleOffers()
	case "send-client-invoice-reminders":
		jobRunner.SendClientInvoiceReminders()
	case "all":
		jobRunner.RunAll()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - complete-elapsed-bookings\n")
		fmt.Printf("  - expire-stale-offers\n")
		fmt.Printf("  - send-client-invoice-reminders\n")
		fmt.Printf("  - all\n")
		os.Exit(1)
	}
}

// openDocStore builds the configured backend wrapped in the local-mirror
// fallback, and returns a cleanup for the underlying connection.
func openDocStore(cfg *config.Config) (*store.FallbackStore, func(), error) {
	local := store.NewMemoryStore()
	probeTimeout := time.Duration(cfg.Store.ProbeTimeoutMillis) * time.Millisecond
	cleanup := func() {}

	var remote store.DocStore
	switch cfg.Store.Backend {
	case "memory":
		remote = store.NewMemoryStore()
	case "postgres":
		db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.Ping(); err != nil {
			logger.Warn("Database unreachable at startup, continuing on local mirror", "error", err)
		}
		remote = store.NewPostgresStore(db)
		cleanup = func() { db.Close() }
	case "firestore":
		fs, err := store.NewFirestoreStore(context.Background(), cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to firestore: %w", err)
		}
		remote = fs
	default:
		return nil, nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}

	return store.NewFallbackStore(remote, local, probeTimeout), cleanup, nil
}
