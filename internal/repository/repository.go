package repository

import (
	"context"

	"linguabook-backend/internal/domain"
)

// Read methods return (nil, nil) when the entity is absent so callers can
// render "not found" without special-casing.

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	SetStatus(ctx context.Context, id string, status domain.BookingStatus) error

	// AssignInterpreter writes status and interpreter fields in one patch so
	// the store never observes one without the other.
	AssignInterpreter(ctx context.Context, id string, status domain.BookingStatus, interpreterID, interpreterName string) error

	// ConfirmIf is the conditional variant: it commits only while the
	// booking's status is still one of allowed, returning
	// store.ErrPreconditionFailed otherwise.
	ConfirmIf(ctx context.Context, id string, interpreterID, interpreterName string, allowed []domain.BookingStatus) error

	ListByClient(ctx context.Context, clientID string) ([]domain.Booking, error)
	ListByStatus(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error)
	ListConfirmedByInterpreterAndDate(ctx context.Context, interpreterID, date string) ([]domain.Booking, error)
}

type AssignmentRepository interface {
	Create(ctx context.Context, assignment *domain.Assignment) error
	GetByID(ctx context.Context, id string) (*domain.Assignment, error)
	Update(ctx context.Context, assignment *domain.Assignment) error
	ListByBooking(ctx context.Context, bookingID string) ([]domain.Assignment, error)
	ListOfferedForInterpreter(ctx context.Context, interpreterID string) ([]domain.Assignment, error)
	ListByStatus(ctx context.Context, status domain.AssignmentStatus) ([]domain.Assignment, error)
}

type TimesheetRepository interface {
	Create(ctx context.Context, timesheet *domain.Timesheet) error
	GetByID(ctx context.Context, id string) (*domain.Timesheet, error)
	Update(ctx context.Context, timesheet *domain.Timesheet) error
	ListPendingApproval(ctx context.Context) ([]domain.Timesheet, error)
	ListApprovedUnlinkedForClient(ctx context.Context, clientID string) ([]domain.Timesheet, error)
	ListApprovedUnlinkedForInterpreter(ctx context.Context, interpreterID string) ([]domain.Timesheet, error)
}

type ClientInvoiceRepository interface {
	// Create persists the invoice and its lines together.
	Create(ctx context.Context, invoice *domain.ClientInvoice) error
	GetByID(ctx context.Context, id string) (*domain.ClientInvoice, error)
	SetStatus(ctx context.Context, id string, status domain.ClientInvoiceStatus) error
	ListByClient(ctx context.Context, clientID string) ([]domain.ClientInvoice, error)
	ListByStatus(ctx context.Context, status domain.ClientInvoiceStatus) ([]domain.ClientInvoice, error)
}

type InterpreterInvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.InterpreterInvoice) error
	GetByID(ctx context.Context, id string) (*domain.InterpreterInvoice, error)
	SetStatus(ctx context.Context, id string, status domain.InterpreterInvoiceStatus) error
	ListByInterpreter(ctx context.Context, interpreterID string) ([]domain.InterpreterInvoice, error)
}

type RateRepository interface {
	Get(ctx context.Context, rateType domain.RateType, serviceType string) (*domain.Rate, error)
	List(ctx context.Context) ([]domain.Rate, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetClient(ctx context.Context, id string) (*domain.Client, error)
	GetInterpreter(ctx context.Context, id string) (*domain.Interpreter, error)
	ListInterpreters(ctx context.Context) ([]domain.Interpreter, error)
}
