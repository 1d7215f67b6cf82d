package service

import (
	"context"
	"fmt"
	"time"

	"linguabook-backend/internal/domain"
	"linguabook-backend/internal/logger"
	"linguabook-backend/internal/repository"
	"linguabook-backend/internal/utils"
)

type invoiceService struct {
	clientInvoiceRepo      repository.ClientInvoiceRepository
	interpreterInvoiceRepo repository.InterpreterInvoiceRepository
	timesheetRepo          repository.TimesheetRepository
	bookingRepo            repository.BookingRepository
	userRepo               repository.UserRepository
	emailSvc               EmailService
	currency               string
	dueDays                int
	refPrefix              string
}

func NewInvoiceService(
	clientInvoiceRepo repository.ClientInvoiceRepository,
	interpreterInvoiceRepo repository.InterpreterInvoiceRepository,
	timesheetRepo repository.TimesheetRepository,
	bookingRepo repository.BookingRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
	currency string,
	dueDays int,
	refPrefix string,
) InvoiceService {
	return &invoiceService{
		clientInvoiceRepo:      clientInvoiceRepo,
		interpreterInvoiceRepo: interpreterInvoiceRepo,
		timesheetRepo:          timesheetRepo,
		bookingRepo:            bookingRepo,
		userRepo:               userRepo,
		emailSvc:               emailSvc,
		currency:               currency,
		dueDays:                dueDays,
		refPrefix:              refPrefix,
	}
}

// GenerateClientInvoice batches every approved, not-yet-invoiced timesheet for
// the client whose work date falls inside the period into one DRAFT invoice,
// one line per timesheet. Linked timesheets are excluded from future batches.
func (s *invoiceService) GenerateClientInvoice(ctx context.Context, clientID, periodStart, periodEnd string) (*domain.ClientInvoice, error) {
	start, err := utils.ParseDate(periodStart)
	if err != nil {
		return nil, domain.NewValidationError("period_start", err.Error())
	}
	end, err := utils.ParseDate(periodEnd)
	if err != nil {
		return nil, domain.NewValidationError("period_end", err.Error())
	}
	if end < start {
		return nil, domain.NewValidationError("period_end", "period end is before period start")
	}
	client, err := s.userRepo.GetClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.NewNotFoundError("client", clientID)
	}

	candidates, err := s.timesheetRepo.ListApprovedUnlinkedForClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	var timesheets []domain.Timesheet
	for i := range candidates {
		workDate := candidates[i].ActualStart.Format("2006-01-02")
		if workDate >= start && workDate <= end {
			timesheets = append(timesheets, candidates[i])
		}
	}
	if len(timesheets) == 0 {
		return nil, domain.NewValidationError("period_start", "no approved uninvoiced timesheets for client in period")
	}

	now := time.Now().UTC()
	invoice := &domain.ClientInvoice{
		ClientID:    clientID,
		Reference:   utils.GenerateReference(s.refPrefix),
		IssueDate:   now.Format("2006-01-02"),
		DueDate:     now.AddDate(0, 0, s.dueDays).Format("2006-01-02"),
		PeriodStart: start,
		PeriodEnd:   end,
		Status:      domain.ClientInvoiceStatusDraft,
		Currency:    s.currency,
		CreatedAt:   now,
	}
	for i := range timesheets {
		ts := &timesheets[i]
		units := ts.UnitsBillableToClient
		price := int32(0)
		if units > 0 {
			price = ts.TotalClientAmountPence / units
		}
		invoice.Lines = append(invoice.Lines, domain.InvoiceLine{
			TimesheetID:       ts.ID,
			Description:       fmt.Sprintf("Interpreting on %s, booking %s", ts.ActualStart.Format("2006-01-02"), ts.BookingID),
			Units:             units,
			PricePerUnitPence: price,
			TotalPence:        units * price,
		})
	}
	invoice.TotalPence = domain.SumLines(invoice.Lines)

	if err := s.clientInvoiceRepo.Create(ctx, invoice); err != nil {
		return nil, domain.NewInternalError("failed to save invoice")
	}

	for i := range timesheets {
		timesheets[i].ClientInvoiceID = invoice.ID
		timesheets[i].ReadyForClientInvoice = false
		if err := s.timesheetRepo.Update(ctx, &timesheets[i]); err != nil {
			logger.Error("Failed to link timesheet to invoice", "timesheet_id", timesheets[i].ID, "invoice_id", invoice.ID, "error", err)
			continue
		}
		s.markBookingInvoiced(ctx, timesheets[i].BookingID)
	}

	logger.Info("Client invoice generated", "invoice_id", invoice.ID,
		"client_id", clientID, "lines", len(invoice.Lines), "total_pence", invoice.TotalPence)
	return invoice, nil
}

// markBookingInvoiced moves a COMPLETED booking to INVOICED. Best effort: a
// booking in any other state is left alone.
func (s *invoiceService) markBookingInvoiced(ctx context.Context, bookingID string) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil || booking == nil {
		return
	}
	if booking.Status != domain.BookingStatusCompleted {
		return
	}
	if err := s.bookingRepo.SetStatus(ctx, bookingID, domain.BookingStatusInvoiced); err != nil {
		logger.Warn("Failed to mark booking invoiced", "booking_id", bookingID, "error", err)
	}
}

// GenerateFromUpload records an invoice the interpreter produced themselves.
// The selected timesheets must belong to the interpreter, be approved, and not
// already sit on another invoice. The uploaded total is carried as a single
// reconciling line so the sum-of-lines rule still holds.
func (s *invoiceService) GenerateFromUpload(ctx context.Context, interpreterID string, timesheetIDs []string, reference string, amountPence int32, documentURL string) (*domain.InterpreterInvoice, error) {
	if len(timesheetIDs) == 0 {
		return nil, domain.NewValidationError("timesheet_ids", "at least one timesheet is required")
	}
	if amountPence <= 0 {
		return nil, domain.NewValidationError("amount_pence", "amount must be positive")
	}
	interpreter, err := s.userRepo.GetInterpreter(ctx, interpreterID)
	if err != nil {
		return nil, err
	}
	if interpreter == nil {
		return nil, domain.NewNotFoundError("interpreter", interpreterID)
	}

	timesheets := make([]*domain.Timesheet, 0, len(timesheetIDs))
	for _, id := range timesheetIDs {
		ts, err := s.timesheetRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if ts == nil {
			return nil, domain.NewNotFoundError("timesheet", id)
		}
		if ts.InterpreterID != interpreterID {
			return nil, domain.NewValidationError("timesheet_ids", "timesheet "+id+" belongs to another interpreter")
		}
		if ts.Status != domain.TimesheetStatusApproved {
			return nil, domain.NewValidationError("timesheet_ids", "timesheet "+id+" is not approved")
		}
		if ts.InterpreterInvoiceID != "" {
			return nil, domain.NewValidationError("timesheet_ids", "timesheet "+id+" is already invoiced")
		}
		timesheets = append(timesheets, ts)
	}

	if reference == "" {
		reference = utils.GenerateReference(s.refPrefix)
	}
	invoice := &domain.InterpreterInvoice{
		InterpreterID: interpreterID,
		Reference:     reference,
		Model:         domain.InvoiceModelUpload,
		Status:        domain.InterpreterInvoiceStatusSubmitted,
		TotalPence:    amountPence,
		Currency:      s.currency,
		DocumentURL:   documentURL,
		SubmittedAt:   time.Now().UTC(),
		Lines: []domain.InvoiceLine{{
			Description:       fmt.Sprintf("As per uploaded invoice %s covering %d timesheet(s)", reference, len(timesheetIDs)),
			Units:             1,
			PricePerUnitPence: amountPence,
			TotalPence:        amountPence,
		}},
	}
	if err := s.interpreterInvoiceRepo.Create(ctx, invoice); err != nil {
		return nil, domain.NewInternalError("failed to save invoice")
	}

	for _, ts := range timesheets {
		ts.InterpreterInvoiceID = invoice.ID
		ts.ReadyForInterpreterInvoice = false
		if err := s.timesheetRepo.Update(ctx, ts); err != nil {
			logger.Error("Failed to link timesheet to invoice", "timesheet_id", ts.ID, "invoice_id", invoice.ID, "error", err)
		}
	}

	logger.Info("Interpreter invoice submitted", "invoice_id", invoice.ID,
		"interpreter_id", interpreterID, "timesheets", len(timesheetIDs), "total_pence", amountPence)
	return invoice, nil
}

func (s *invoiceService) GetClientInvoice(ctx context.Context, id string) (*domain.ClientInvoice, error) {
	return s.clientInvoiceRepo.GetByID(ctx, id)
}

func (s *invoiceService) ListClientInvoices(ctx context.Context, clientID string) ([]domain.ClientInvoice, error) {
	return s.clientInvoiceRepo.ListByClient(ctx, clientID)
}

func (s *invoiceService) SetClientInvoiceStatus(ctx context.Context, id string, status domain.ClientInvoiceStatus) (*domain.ClientInvoice, error) {
	invoice, err := s.clientInvoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.NewNotFoundError("invoice", id)
	}
	if !invoice.Status.CanTransitionTo(status) {
		return nil, domain.NewInvalidTransitionError("invoice %s cannot move from %s to %s", id, invoice.Status, status)
	}
	if err := s.clientInvoiceRepo.SetStatus(ctx, id, status); err != nil {
		return nil, domain.NewInternalError("failed to save invoice")
	}
	invoice.Status = status

	if status == domain.ClientInvoiceStatusSent {
		if client, err := s.userRepo.GetClient(ctx, invoice.ClientID); err == nil && client != nil {
			email := client.BillingEmail
			if email == "" {
				email = client.Email
			}
			if err := s.emailSvc.SendClientInvoiceNotification(ctx, email, invoice.Reference, invoice.TotalPence, invoice.DueDate); err != nil {
				logger.Warn("Failed to send invoice notification", "invoice_id", id, "error", err)
			}
		}
	}

	logger.Info("Client invoice status changed", "invoice_id", id, "status", status)
	return invoice, nil
}

func (s *invoiceService) GetInterpreterInvoice(ctx context.Context, id string) (*domain.InterpreterInvoice, error) {
	return s.interpreterInvoiceRepo.GetByID(ctx, id)
}

func (s *invoiceService) ListInterpreterInvoices(ctx context.Context, interpreterID string) ([]domain.InterpreterInvoice, error) {
	return s.interpreterInvoiceRepo.ListByInterpreter(ctx, interpreterID)
}

func (s *invoiceService) SetInterpreterInvoiceStatus(ctx context.Context, id string, status domain.InterpreterInvoiceStatus) (*domain.InterpreterInvoice, error) {
	invoice, err := s.interpreterInvoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.NewNotFoundError("invoice", id)
	}
	if !invoice.Status.CanTransitionTo(status) {
		return nil, domain.NewInvalidTransitionError("invoice %s cannot move from %s to %s", id, invoice.Status, status)
	}
	if err := s.interpreterInvoiceRepo.SetStatus(ctx, id, status); err != nil {
		return nil, domain.NewInternalError("failed to save invoice")
	}
	invoice.Status = status
	logger.Info("Interpreter invoice status changed", "invoice_id", id, "status", status)
	return invoice, nil
}
