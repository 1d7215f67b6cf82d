package service

import (
	"context"
	"time"

	"linguabook-backend/internal/domain"
	"linguabook-backend/internal/logger"
	"linguabook-backend/internal/repository"
	"linguabook-backend/internal/store"
	"linguabook-backend/internal/utils"
)

type assignmentService struct {
	assignmentRepo repository.AssignmentRepository
	bookingRepo    repository.BookingRepository
	userRepo       repository.UserRepository
	emailSvc       EmailService
}

func NewAssignmentService(
	assignmentRepo repository.AssignmentRepository,
	bookingRepo repository.BookingRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
) AssignmentService {
	return &assignmentService{
		assignmentRepo: assignmentRepo,
		bookingRepo:    bookingRepo,
		userRepo:       userRepo,
		emailSvc:       emailSvc,
	}
}

func snapshotOf(b *domain.Booking) *domain.BookingSnapshot {
	return &domain.BookingSnapshot{
		Reference:       b.Reference,
		ServiceType:     b.ServiceType,
		SourceLanguage:  b.SourceLanguage,
		TargetLanguage:  b.TargetLanguage,
		Date:            b.Date,
		StartTime:       b.StartTime,
		DurationMinutes: b.DurationMinutes,
		LocationMode:    b.LocationMode,
		Address:         b.Address,
		Postcode:        b.Postcode,
	}
}

func (s *assignmentService) CreateOffer(ctx context.Context, bookingID, interpreterID string) (*domain.Assignment, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, domain.NewNotFoundError("booking", bookingID)
	}
	switch booking.Status {
	case domain.BookingStatusRequested, domain.BookingStatusSearching, domain.BookingStatusOffered:
	default:
		return nil, domain.NewInvalidTransitionError("booking %s is %s and cannot be offered", bookingID, booking.Status)
	}

	interpreter, err := s.userRepo.GetInterpreter(ctx, interpreterID)
	if err != nil {
		return nil, err
	}
	if interpreter == nil {
		return nil, domain.NewNotFoundError("interpreter", interpreterID)
	}

	assignment := &domain.Assignment{
		BookingID:     bookingID,
		InterpreterID: interpreterID,
		Status:        domain.AssignmentStatusOffered,
		OfferedAt:     time.Now().UTC(),
		Snapshot:      snapshotOf(booking),
	}
	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, domain.NewInternalError("failed to save assignment")
	}

	// Only the first offer moves the booking forward; re-offering a booking
	// already OFFERED or back in SEARCHING leaves its status alone.
	if booking.Status == domain.BookingStatusRequested {
		if err := s.bookingRepo.SetStatus(ctx, bookingID, domain.BookingStatusOffered); err != nil {
			logger.Error("Failed to mark booking offered", "booking_id", bookingID, "error", err)
		}
	}

	if err := s.emailSvc.SendOfferNotification(ctx, interpreter.Email, interpreter.Name, booking.ServiceType, booking.Date, booking.StartTime); err != nil {
		logger.Warn("Failed to send offer notification", "assignment_id", assignment.ID, "error", err)
	}

	logger.Info("Offer created", "assignment_id", assignment.ID, "booking_id", bookingID, "interpreter_id", interpreterID)
	return assignment, nil
}

func (s *assignmentService) ListOffersForInterpreter(ctx context.Context, interpreterID string) ([]domain.Assignment, error) {
	offers, err := s.assignmentRepo.ListOfferedForInterpreter(ctx, interpreterID)
	if err != nil {
		return nil, err
	}
	for i := range offers {
		if !offers[i].Snapshot.Stale() {
			continue
		}
		// The stored snapshot is missing display fields; refresh it from
		// the booking so the offer card renders without a second trip.
		booking, err := s.bookingRepo.GetByID(ctx, offers[i].BookingID)
		if err != nil || booking == nil {
			continue
		}
		offers[i].Snapshot = snapshotOf(booking)
		if err := s.assignmentRepo.Update(ctx, &offers[i]); err != nil {
			logger.Warn("Failed to refresh offer snapshot", "assignment_id", offers[i].ID, "error", err)
		}
	}
	return offers, nil
}

func (s *assignmentService) Accept(ctx context.Context, assignmentID string) (*domain.Assignment, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, domain.NewNotFoundError("assignment", assignmentID)
	}
	if !assignment.Active() {
		return nil, domain.NewInvalidTransitionError("offer %s was already %s", assignmentID, assignment.Status)
	}

	interpreter, err := s.userRepo.GetInterpreter(ctx, assignment.InterpreterID)
	if err != nil {
		return nil, err
	}
	interpreterName := ""
	if interpreter != nil {
		interpreterName = interpreter.Name
	}

	// The conditional write is what makes accept first-wins: it commits only
	// while the booking is still open, so a concurrent accept that lands
	// second sees the precondition fail instead of overwriting the winner.
	err = s.bookingRepo.ConfirmIf(ctx, assignment.BookingID, assignment.InterpreterID, interpreterName, []domain.BookingStatus{
		domain.BookingStatusOffered,
		domain.BookingStatusSearching,
	})
	if err == store.ErrPreconditionFailed {
		return nil, domain.NewConflictError("booking %s was already confirmed with another interpreter", assignment.BookingID)
	}
	if err != nil {
		return nil, domain.NewInternalError("failed to confirm booking")
	}

	now := time.Now().UTC()
	assignment.Status = domain.AssignmentStatusAccepted
	assignment.RespondedAt = &now
	if err := s.assignmentRepo.Update(ctx, assignment); err != nil {
		return nil, domain.NewInternalError("failed to save assignment")
	}

	booking, err := s.bookingRepo.GetByID(ctx, assignment.BookingID)
	if err == nil && booking != nil && booking.ClientID != "" {
		if client, err := s.userRepo.GetClient(ctx, booking.ClientID); err == nil && client != nil {
			if err := s.emailSvc.SendOfferAcceptedNotification(ctx, client.Email, interpreterName, booking.Reference); err != nil {
				logger.Warn("Failed to send acceptance notification", "booking_id", booking.ID, "error", err)
			}
		}
	}

	logger.Info("Offer accepted", "assignment_id", assignmentID, "booking_id", assignment.BookingID)
	return assignment, nil
}

func (s *assignmentService) Decline(ctx context.Context, assignmentID string) (*domain.Assignment, error) {
	return s.resolveNegative(ctx, assignmentID, domain.AssignmentStatusDeclined)
}

// Expire resolves an offer the interpreter never answered. It follows the
// decline path so the booking becomes searchable again.
func (s *assignmentService) Expire(ctx context.Context, assignmentID string) (*domain.Assignment, error) {
	return s.resolveNegative(ctx, assignmentID, domain.AssignmentStatusExpired)
}

func (s *assignmentService) resolveNegative(ctx context.Context, assignmentID string, status domain.AssignmentStatus) (*domain.Assignment, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, domain.NewNotFoundError("assignment", assignmentID)
	}
	if !assignment.Active() {
		return nil, domain.NewInvalidTransitionError("offer %s was already %s", assignmentID, assignment.Status)
	}

	now := time.Now().UTC()
	assignment.Status = status
	assignment.RespondedAt = &now
	if err := s.assignmentRepo.Update(ctx, assignment); err != nil {
		return nil, domain.NewInternalError("failed to save assignment")
	}

	// Re-query current assignment state rather than trusting anything held
	// in memory: another offer may have resolved while this one was open.
	remaining, err := s.assignmentRepo.ListByBooking(ctx, assignment.BookingID)
	if err != nil {
		return assignment, nil
	}
	anyActive := false
	for i := range remaining {
		if remaining[i].ID != assignment.ID && remaining[i].Active() {
			anyActive = true
			break
		}
	}
	if !anyActive {
		booking, err := s.bookingRepo.GetByID(ctx, assignment.BookingID)
		if err == nil && booking != nil && booking.Status == domain.BookingStatusOffered {
			if err := s.bookingRepo.SetStatus(ctx, assignment.BookingID, domain.BookingStatusSearching); err != nil {
				logger.Error("Failed to revert booking to searching", "booking_id", assignment.BookingID, "error", err)
			}
		}
	}

	logger.Info("Offer resolved", "assignment_id", assignmentID, "status", status)
	return assignment, nil
}

// CheckConflict scans the interpreter's confirmed bookings on the given date
// and returns the first whose half-open interval overlaps the candidate one.
// Intervals that only touch at a boundary do not conflict.
func (s *assignmentService) CheckConflict(ctx context.Context, interpreterID, date, startTime string, durationMinutes int32, excludeBookingID string) (*domain.Booking, error) {
	normDate, err := utils.ParseDate(date)
	if err != nil {
		return nil, domain.NewValidationError("date", err.Error())
	}
	candStart, err := utils.MinutesOfDay(startTime)
	if err != nil {
		return nil, domain.NewValidationError("start_time", err.Error())
	}
	if durationMinutes <= 0 {
		return nil, domain.NewValidationError("duration_minutes", "duration must be positive")
	}
	candEnd := candStart + durationMinutes

	confirmed, err := s.bookingRepo.ListConfirmedByInterpreterAndDate(ctx, interpreterID, normDate)
	if err != nil {
		return nil, err
	}
	for i := range confirmed {
		b := &confirmed[i]
		if b.ID == excludeBookingID {
			continue
		}
		existStart, err := utils.MinutesOfDay(b.StartTime)
		if err != nil {
			continue
		}
		existEnd := existStart + b.DurationMinutes
		if utils.Overlaps(candStart, candEnd, existStart, existEnd) {
			return b, nil
		}
	}
	return nil, nil
}
