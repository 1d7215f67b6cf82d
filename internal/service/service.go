package service

import (
	"context"

	"linguabook-backend/internal/domain"
)

// BookingDraft is the caller-supplied shape for creating a booking. Status
// and interpreter fields are deliberately absent; the service owns those.
type BookingDraft struct {
	ClientID         string
	ClientName       string
	ServiceType      string
	SourceLanguage   string
	TargetLanguage   string
	Date             string
	StartTime        string
	DurationMinutes  int32
	LocationMode     domain.LocationMode
	Address          string
	Postcode         string
	MeetingLink      string
	CostCode         string
	CaseType         string
	Notes            string
	GenderPreference string
}

// BookingUpdate is an admin edit; nil fields are left unchanged.
type BookingUpdate struct {
	Date            *string
	StartTime       *string
	DurationMinutes *int32
	Address         *string
	Postcode        *string
	MeetingLink     *string
	CostCode        *string
	CaseType        *string
	Notes           *string
}

type BookingService interface {
	Create(ctx context.Context, actor domain.Actor, draft *BookingDraft) (*domain.Booking, error)
	CreateGuest(ctx context.Context, draft *BookingDraft) (*domain.Booking, error)
	Get(ctx context.Context, id string) (*domain.Booking, error)
	ListByClient(ctx context.Context, clientID string) ([]domain.Booking, error)
	Update(ctx context.Context, actor domain.Actor, id string, update *BookingUpdate) (*domain.Booking, error)
	SetStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error)
	AssignInterpreter(ctx context.Context, bookingID, interpreterID string) (*domain.Booking, error)
	Cancel(ctx context.Context, actor domain.Actor, id string) (*domain.Booking, error)
}

type AssignmentService interface {
	CreateOffer(ctx context.Context, bookingID, interpreterID string) (*domain.Assignment, error)
	ListOffersForInterpreter(ctx context.Context, interpreterID string) ([]domain.Assignment, error)
	Accept(ctx context.Context, assignmentID string) (*domain.Assignment, error)
	Decline(ctx context.Context, assignmentID string) (*domain.Assignment, error)
	Expire(ctx context.Context, assignmentID string) (*domain.Assignment, error)
	CheckConflict(ctx context.Context, interpreterID, date, startTime string, durationMinutes int32, excludeBookingID string) (*domain.Booking, error)
}

// TimesheetDraft is the interpreter-supplied shape for submitting actual
// worked time.
type TimesheetDraft struct {
	BookingID     string
	ActualStart   string // RFC 3339
	ActualEnd     string // RFC 3339
	BreakMinutes  int32
	TravelMinutes int32
	EvidenceURL   string
}

type TimesheetService interface {
	Submit(ctx context.Context, actor domain.Actor, draft *TimesheetDraft) (*domain.Timesheet, error)
	Get(ctx context.Context, id string) (*domain.Timesheet, error)
	ListPendingApproval(ctx context.Context) ([]domain.Timesheet, error)
	Approve(ctx context.Context, id string) (*domain.Timesheet, error)
	Reject(ctx context.Context, id string) (*domain.Timesheet, error)
	ListUninvoicedForInterpreter(ctx context.Context, interpreterID string) ([]domain.Timesheet, error)
}

type InvoiceService interface {
	GenerateClientInvoice(ctx context.Context, clientID, periodStart, periodEnd string) (*domain.ClientInvoice, error)
	GenerateFromUpload(ctx context.Context, interpreterID string, timesheetIDs []string, reference string, amountPence int32, documentURL string) (*domain.InterpreterInvoice, error)

	GetClientInvoice(ctx context.Context, id string) (*domain.ClientInvoice, error)
	ListClientInvoices(ctx context.Context, clientID string) ([]domain.ClientInvoice, error)
	SetClientInvoiceStatus(ctx context.Context, id string, status domain.ClientInvoiceStatus) (*domain.ClientInvoice, error)

	GetInterpreterInvoice(ctx context.Context, id string) (*domain.InterpreterInvoice, error)
	ListInterpreterInvoices(ctx context.Context, interpreterID string) ([]domain.InterpreterInvoice, error)
	SetInterpreterInvoiceStatus(ctx context.Context, id string, status domain.InterpreterInvoiceStatus) (*domain.InterpreterInvoice, error)
}

type MatchingService interface {
	// FindInterpreters returns active interpreters whose language list
	// covers the booking's target language, by substring match.
	FindInterpreters(ctx context.Context, bookingID string) ([]domain.Interpreter, error)
}

// DocumentUploadGrant pairs a one-shot upload URL with the durable download
// URL the caller stores on the timesheet or invoice record.
type DocumentUploadGrant struct {
	Key         string `json:"key"`
	UploadURL   string `json:"upload_url"`
	DownloadURL string `json:"download_url"`
}

type DocumentService interface {
	CreateUploadURL(ctx context.Context, actor domain.Actor, purpose, filename, contentType string) (*DocumentUploadGrant, error)
	CreateDownloadURL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type EmailService interface {
	SendOfferNotification(ctx context.Context, email, name, serviceType, date, startTime string) error
	SendOfferAcceptedNotification(ctx context.Context, email, interpreterName, reference string) error
	SendTimesheetApprovedNotification(ctx context.Context, email, name, reference string, amountPence int32) error
	SendClientInvoiceNotification(ctx context.Context, email, reference string, totalPence int32, dueDate string) error
	SendInvoiceReminder(ctx context.Context, email, reference, dueDate string) error
}
