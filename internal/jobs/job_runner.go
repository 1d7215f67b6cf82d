package jobs

import (
	"linguabook-backend/internal/config"
	"linguabook-backend/internal/logger"
	"linguabook-backend/internal/repository"
	"linguabook-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	repos    *Repositories
	services *Services
	config   *config.Config
}

// Repositories holds the repository dependencies needed by jobs
type Repositories struct {
	Booking       repository.BookingRepository
	Assignment    repository.AssignmentRepository
	ClientInvoice repository.ClientInvoiceRepository
	User          repository.UserRepository
}

// Services holds the service dependencies needed by jobs
type Services struct {
	Assignment service.AssignmentService
	Email      service.EmailService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(repos *Repositories, services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		repos:    repos,
		services: services,
		config:   cfg,
	}
}

// Config exposes the configuration for schedule registration
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.CompleteElapsedBookings()
	jr.ExpireStaleOffers()
	jr.SendClientInvoiceReminders()
}
