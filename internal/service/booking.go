package service

import (
	"context"

	"linguabook-backend/internal/domain"
	"linguabook-backend/internal/logger"
	"linguabook-backend/internal/repository"
	"linguabook-backend/internal/store"
	"linguabook-backend/internal/utils"
)

type bookingService struct {
	bookingRepo repository.BookingRepository
	userRepo    repository.UserRepository
	refPrefix   string
}

func NewBookingService(bookingRepo repository.BookingRepository, userRepo repository.UserRepository, refPrefix string) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		refPrefix:   refPrefix,
	}
}

func validateDraft(draft *BookingDraft) error {
	if draft.ServiceType == "" {
		return domain.NewValidationError("service_type", "service type is required")
	}
	if draft.SourceLanguage == "" {
		return domain.NewValidationError("source_language", "source language is required")
	}
	if draft.TargetLanguage == "" {
		return domain.NewValidationError("target_language", "target language is required")
	}
	if _, err := utils.ParseDate(draft.Date); err != nil {
		return domain.NewValidationError("date", err.Error())
	}
	if _, err := utils.MinutesOfDay(draft.StartTime); err != nil {
		return domain.NewValidationError("start_time", err.Error())
	}
	if draft.DurationMinutes <= 0 {
		return domain.NewValidationError("duration_minutes", "duration must be positive")
	}
	switch draft.LocationMode {
	case domain.LocationModeOnsite:
		if draft.Address == "" {
			return domain.NewValidationError("address", "address is required for onsite bookings")
		}
	case domain.LocationModeOnline:
		// Meeting link is optional; it is often supplied later.
	default:
		return domain.NewValidationError("location_mode", "location mode must be ONSITE or ONLINE")
	}
	return nil
}

func (s *bookingService) buildBooking(draft *BookingDraft) (*domain.Booking, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}
	date, _ := utils.ParseDate(draft.Date)
	expectedEnd, err := utils.ExpectedEndTime(draft.StartTime, draft.DurationMinutes)
	if err != nil {
		return nil, domain.NewValidationError("start_time", err.Error())
	}

	// Whatever status or interpreter fields the caller sent are irrelevant:
	// every booking starts REQUESTED and unassigned.
	return &domain.Booking{
		ClientID:         draft.ClientID,
		ClientName:       draft.ClientName,
		ServiceType:      draft.ServiceType,
		SourceLanguage:   draft.SourceLanguage,
		TargetLanguage:   draft.TargetLanguage,
		Date:             date,
		StartTime:        draft.StartTime,
		DurationMinutes:  draft.DurationMinutes,
		ExpectedEndTime:  expectedEnd,
		LocationMode:     draft.LocationMode,
		Address:          draft.Address,
		Postcode:         draft.Postcode,
		MeetingLink:      draft.MeetingLink,
		CostCode:         draft.CostCode,
		CaseType:         draft.CaseType,
		Notes:            draft.Notes,
		GenderPreference: draft.GenderPreference,
		Status:           domain.BookingStatusRequested,
	}, nil
}

func (s *bookingService) Create(ctx context.Context, actor domain.Actor, draft *BookingDraft) (*domain.Booking, error) {
	switch actor.Role {
	case domain.UserRoleClient:
		// Clients always book for themselves.
		draft.ClientID = actor.ID
		draft.ClientName = actor.Name
	case domain.UserRoleAdmin:
		if draft.ClientID == "" {
			return nil, domain.NewValidationError("client_id", "client id is required for admin-created bookings")
		}
	default:
		return nil, domain.NewValidationError("role", "only clients and admins may create bookings")
	}

	booking, err := s.buildBooking(draft)
	if err != nil {
		return nil, err
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, domain.NewInternalError("failed to save booking")
	}
	logger.Info("Booking created", "booking_id", booking.ID, "client_id", booking.ClientID)
	return booking, nil
}

func (s *bookingService) CreateGuest(ctx context.Context, draft *BookingDraft) (*domain.Booking, error) {
	booking, err := s.buildBooking(draft)
	if err != nil {
		return nil, err
	}
	// Guests have no account to find the booking under, so they get a short
	// reference code to quote instead.
	booking.ClientID = ""
	booking.Reference = utils.GenerateReference(s.refPrefix)
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, domain.NewInternalError("failed to save booking")
	}
	logger.Info("Guest booking created", "booking_id", booking.ID, "reference", booking.Reference)
	return booking, nil
}

func (s *bookingService) Get(ctx context.Context, id string) (*domain.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

func (s *bookingService) ListByClient(ctx context.Context, clientID string) ([]domain.Booking, error) {
	return s.bookingRepo.ListByClient(ctx, clientID)
}

func (s *bookingService) Update(ctx context.Context, actor domain.Actor, id string, update *BookingUpdate) (*domain.Booking, error) {
	if actor.Role != domain.UserRoleAdmin {
		return nil, domain.NewValidationError("role", "only admins may edit bookings")
	}
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, domain.NewNotFoundError("booking", id)
	}
	if booking.Status.IsTerminal() {
		return nil, domain.NewInvalidTransitionError("booking %s is %s and can no longer be edited", id, booking.Status)
	}

	scheduleChanged := false
	if update.Date != nil {
		date, err := utils.ParseDate(*update.Date)
		if err != nil {
			return nil, domain.NewValidationError("date", err.Error())
		}
		booking.Date = date
		scheduleChanged = true
	}
	if update.StartTime != nil {
		if _, err := utils.MinutesOfDay(*update.StartTime); err != nil {
			return nil, domain.NewValidationError("start_time", err.Error())
		}
		booking.StartTime = *update.StartTime
		scheduleChanged = true
	}
	if update.DurationMinutes != nil {
		if *update.DurationMinutes <= 0 {
			return nil, domain.NewValidationError("duration_minutes", "duration must be positive")
		}
		booking.DurationMinutes = *update.DurationMinutes
		scheduleChanged = true
	}
	if scheduleChanged {
		booking.ExpectedEndTime, _ = utils.ExpectedEndTime(booking.StartTime, booking.DurationMinutes)
	}
	if update.Address != nil {
		booking.Address = *update.Address
	}
	if update.Postcode != nil {
		booking.Postcode = *update.Postcode
	}
	if update.MeetingLink != nil {
		booking.MeetingLink = *update.MeetingLink
	}
	if update.CostCode != nil {
		booking.CostCode = *update.CostCode
	}
	if update.CaseType != nil {
		booking.CaseType = *update.CaseType
	}
	if update.Notes != nil {
		booking.Notes = *update.Notes
	}

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, domain.NewInternalError("failed to save booking")
	}
	return booking, nil
}

func (s *bookingService) SetStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, domain.NewNotFoundError("booking", id)
	}
	if status == domain.BookingStatusConfirmed {
		// Confirmation must go through AssignInterpreter so the interpreter
		// fields are written with the status.
		return nil, domain.NewInvalidTransitionError("bookings are confirmed by assigning an interpreter")
	}
	if !booking.CanTransitionTo(status) {
		return nil, domain.NewInvalidTransitionError("booking %s cannot move from %s to %s", id, booking.Status, status)
	}

	booking.Status = status
	if status == domain.BookingStatusCancelled {
		booking.InterpreterID = ""
		booking.InterpreterName = ""
	}
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, domain.NewInternalError("failed to save booking")
	}
	logger.Info("Booking status changed", "booking_id", id, "status", status)
	return booking, nil
}

func (s *bookingService) AssignInterpreter(ctx context.Context, bookingID, interpreterID string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, domain.NewNotFoundError("booking", bookingID)
	}
	interpreter, err := s.userRepo.GetInterpreter(ctx, interpreterID)
	if err != nil {
		return nil, err
	}
	if interpreter == nil {
		return nil, domain.NewNotFoundError("interpreter", interpreterID)
	}

	err = s.bookingRepo.ConfirmIf(ctx, bookingID, interpreter.ID, interpreter.Name, []domain.BookingStatus{
		domain.BookingStatusSearching,
		domain.BookingStatusOffered,
	})
	if err == store.ErrPreconditionFailed {
		return nil, domain.NewInvalidTransitionError("booking %s is already confirmed or closed", bookingID)
	}
	if err != nil {
		return nil, domain.NewInternalError("failed to save booking")
	}
	return s.bookingRepo.GetByID(ctx, bookingID)
}

func (s *bookingService) Cancel(ctx context.Context, actor domain.Actor, id string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, domain.NewNotFoundError("booking", id)
	}

	switch actor.Role {
	case domain.UserRoleAdmin:
		if booking.Status.IsTerminal() {
			return nil, domain.NewInvalidTransitionError("booking %s is already %s", id, booking.Status)
		}
	case domain.UserRoleClient:
		if booking.ClientID != actor.ID {
			return nil, domain.NewValidationError("client_id", "booking belongs to another client")
		}
		if !booking.ClientCancellable() {
			return nil, domain.NewInvalidTransitionError("booking %s can no longer be cancelled, contact support", id)
		}
	default:
		return nil, domain.NewValidationError("role", "only the client or an admin may cancel a booking")
	}

	booking.Status = domain.BookingStatusCancelled
	booking.InterpreterID = ""
	booking.InterpreterName = ""
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, domain.NewInternalError("failed to save booking")
	}
	logger.Info("Booking cancelled", "booking_id", id, "by_role", actor.Role)
	return booking, nil
}
