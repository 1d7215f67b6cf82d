package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "linguabook-backend/internal/api/http"
	"linguabook-backend/internal/config"
	"linguabook-backend/internal/logger"
	"linguabook-backend/internal/repository/docstore"
	"linguabook-backend/internal/security"
	"linguabook-backend/internal/service"
	"linguabook-backend/internal/storage"
	"linguabook-backend/internal/store"
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
	logger.Info("Starting LinguaBook Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
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

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize Storage Service
	localStorage, err := storage.NewLocalStorageService(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize document storage", "error", err)
		log.Fatalf("Failed to initialize document storage: %v", err)
	}

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	bookingSvc := service.NewBookingService(repos.BookingRepository, repos.UserRepository, cfg.Billing.ReferencePrefix)
	assignmentSvc := service.NewAssignmentService(repos.AssignmentRepository, repos.BookingRepository, repos.UserRepository, emailSvc)
	timesheetSvc := service.NewTimesheetService(repos.TimesheetRepository, repos.BookingRepository, repos.RateRepository, repos.UserRepository, emailSvc)
	invoiceSvc := service.NewInvoiceService(
		repos.ClientInvoiceRepository,
		repos.InterpreterInvoiceRepository,
		repos.TimesheetRepository,
		repos.BookingRepository,
		repos.UserRepository,
		emailSvc,
		cfg.Billing.Currency,
		cfg.Billing.InvoiceDueDays,
		cfg.Billing.ReferencePrefix,
	)
	matchingSvc := service.NewMatchingService(repos.BookingRepository, repos.UserRepository)
	documentSvc := service.NewDocumentService(localStorage)

	// Initialize HTTP API
	documentHandler := httpapi.NewDocumentHandler(documentSvc, localStorage)
	router := httpapi.NewRouter(&httpapi.Handlers{
		Booking:    httpapi.NewBookingHandler(bookingSvc, matchingSvc),
		Assignment: httpapi.NewAssignmentHandler(assignmentSvc),
		Timesheet:  httpapi.NewTimesheetHandler(timesheetSvc),
		Invoice:    httpapi.NewInvoiceHandler(invoiceSvc),
		Document:   documentHandler,
		Status:     httpapi.NewStatusHandler(docs, cfg.Store.Backend),
		Auth:       httpapi.NewAuthMiddleware(tokenManager),
	})
	httpapi.RegisterDocumentRoutes(router, documentHandler)

	server := &http.Server{
		Addr:    cfg.GetServerAddress(),
		Handler: router,
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
	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
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
