package service

import (
	"context"
	"time"

	"linguabook-backend/internal/domain"
	"linguabook-backend/internal/logger"
	"linguabook-backend/internal/repository"
	"linguabook-backend/internal/utils"
)

type timesheetService struct {
	timesheetRepo repository.TimesheetRepository
	bookingRepo   repository.BookingRepository
	rateRepo      repository.RateRepository
	userRepo      repository.UserRepository
	emailSvc      EmailService
}

func NewTimesheetService(
	timesheetRepo repository.TimesheetRepository,
	bookingRepo repository.BookingRepository,
	rateRepo repository.RateRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
) TimesheetService {
	return &timesheetService{
		timesheetRepo: timesheetRepo,
		bookingRepo:   bookingRepo,
		rateRepo:      rateRepo,
		userRepo:      userRepo,
		emailSvc:      emailSvc,
	}
}

func (s *timesheetService) Submit(ctx context.Context, actor domain.Actor, draft *TimesheetDraft) (*domain.Timesheet, error) {
	if draft.BookingID == "" {
		return nil, domain.NewValidationError("booking_id", "booking id is required")
	}
	actualStart, err := time.Parse(time.RFC3339, draft.ActualStart)
	if err != nil {
		return nil, domain.NewValidationError("actual_start", "must be an RFC 3339 timestamp")
	}
	actualEnd, err := time.Parse(time.RFC3339, draft.ActualEnd)
	if err != nil {
		return nil, domain.NewValidationError("actual_end", "must be an RFC 3339 timestamp")
	}
	if !actualEnd.After(actualStart) {
		return nil, domain.NewValidationError("actual_end", "end must be after start")
	}
	if draft.BreakMinutes < 0 {
		return nil, domain.NewValidationError("break_minutes", "break cannot be negative")
	}

	booking, err := s.bookingRepo.GetByID(ctx, draft.BookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, domain.NewNotFoundError("booking", draft.BookingID)
	}
	if actor.Role == domain.UserRoleInterpreter && booking.InterpreterID != actor.ID {
		return nil, domain.NewValidationError("booking_id", "booking is assigned to another interpreter")
	}
	if booking.InterpreterID == "" {
		return nil, domain.NewInvalidTransitionError("booking %s has no assigned interpreter", draft.BookingID)
	}

	// Units and amounts stay zero until an admin approves; nothing the
	// interpreter sends is trusted for billing.
	timesheet := &domain.Timesheet{
		BookingID:     booking.ID,
		ClientID:      booking.ClientID,
		InterpreterID: booking.InterpreterID,
		ActualStart:   actualStart.UTC(),
		ActualEnd:     actualEnd.UTC(),
		BreakMinutes:  draft.BreakMinutes,
		TravelMinutes: draft.TravelMinutes,
		EvidenceURL:   draft.EvidenceURL,
		Status:        domain.TimesheetStatusSubmitted,
		SubmittedAt:   time.Now().UTC(),
	}
	if err := s.timesheetRepo.Create(ctx, timesheet); err != nil {
		return nil, domain.NewInternalError("failed to save timesheet")
	}
	logger.Info("Timesheet submitted", "timesheet_id", timesheet.ID, "booking_id", booking.ID)
	return timesheet, nil
}

func (s *timesheetService) Get(ctx context.Context, id string) (*domain.Timesheet, error) {
	return s.timesheetRepo.GetByID(ctx, id)
}

func (s *timesheetService) ListPendingApproval(ctx context.Context) ([]domain.Timesheet, error) {
	return s.timesheetRepo.ListPendingApproval(ctx)
}

func (s *timesheetService) Approve(ctx context.Context, id string) (*domain.Timesheet, error) {
	timesheet, err := s.timesheetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if timesheet == nil {
		return nil, domain.NewNotFoundError("timesheet", id)
	}
	if !timesheet.Approvable() {
		return nil, domain.NewInvalidTransitionError("timesheet %s is %s and cannot be approved", id, timesheet.Status)
	}

	booking, err := s.bookingRepo.GetByID(ctx, timesheet.BookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, domain.NewNotFoundError("booking", timesheet.BookingID)
	}

	clientRate, err := s.rateRepo.Get(ctx, domain.RateTypeClient, booking.ServiceType)
	if err != nil {
		return nil, err
	}
	if clientRate == nil {
		return nil, domain.NewValidationError("service_type", "no client rate configured for service type "+booking.ServiceType)
	}
	interpreterRate, err := s.rateRepo.Get(ctx, domain.RateTypeInterpreter, booking.ServiceType)
	if err != nil {
		return nil, err
	}
	if interpreterRate == nil {
		return nil, domain.NewValidationError("service_type", "no interpreter rate configured for service type "+booking.ServiceType)
	}

	worked := timesheet.WorkedMinutes()
	timesheet.UnitsBillableToClient = utils.ComputeUnits(worked, clientRate)
	timesheet.UnitsPayableToInterpreter = utils.ComputeUnits(worked, interpreterRate)
	timesheet.TotalClientAmountPence = utils.ComputeAmountPence(timesheet.UnitsBillableToClient, clientRate)
	timesheet.TotalInterpreterAmountPence = utils.ComputeAmountPence(timesheet.UnitsPayableToInterpreter, interpreterRate)
	timesheet.AdminApproved = true
	timesheet.Status = domain.TimesheetStatusApproved
	timesheet.ReadyForClientInvoice = true
	timesheet.ReadyForInterpreterInvoice = true

	if err := s.timesheetRepo.Update(ctx, timesheet); err != nil {
		return nil, domain.NewInternalError("failed to save timesheet")
	}

	if interpreter, err := s.userRepo.GetInterpreter(ctx, timesheet.InterpreterID); err == nil && interpreter != nil {
		if err := s.emailSvc.SendTimesheetApprovedNotification(ctx, interpreter.Email, interpreter.Name, booking.Reference, timesheet.TotalInterpreterAmountPence); err != nil {
			logger.Warn("Failed to send approval notification", "timesheet_id", id, "error", err)
		}
	}

	logger.Info("Timesheet approved", "timesheet_id", id,
		"units_billable", timesheet.UnitsBillableToClient,
		"units_payable", timesheet.UnitsPayableToInterpreter)
	return timesheet, nil
}

func (s *timesheetService) Reject(ctx context.Context, id string) (*domain.Timesheet, error) {
	timesheet, err := s.timesheetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if timesheet == nil {
		return nil, domain.NewNotFoundError("timesheet", id)
	}
	if !timesheet.Approvable() {
		return nil, domain.NewInvalidTransitionError("timesheet %s is %s and cannot be rejected", id, timesheet.Status)
	}

	timesheet.Status = domain.TimesheetStatusRejected
	if err := s.timesheetRepo.Update(ctx, timesheet); err != nil {
		return nil, domain.NewInternalError("failed to save timesheet")
	}
	logger.Info("Timesheet rejected", "timesheet_id", id)
	return timesheet, nil
}

func (s *timesheetService) ListUninvoicedForInterpreter(ctx context.Context, interpreterID string) ([]domain.Timesheet, error) {
	return s.timesheetRepo.ListApprovedUnlinkedForInterpreter(ctx, interpreterID)
}
