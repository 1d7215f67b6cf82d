package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"linguabook-backend/internal/domain"
	"linguabook-backend/internal/service"
	"linguabook-backend/internal/store"
)

func newAssignmentService() (service.AssignmentService, *MockAssignmentRepo, *MockBookingRepo, *MockUserRepo, *MockEmailService) {
	assignmentRepo := new(MockAssignmentRepo)
	bookingRepo := new(MockBookingRepo)
	userRepo := new(MockUserRepo)
	emailSvc := new(MockEmailService)
	svc := service.NewAssignmentService(assignmentRepo, bookingRepo, userRepo, emailSvc)
	return svc, assignmentRepo, bookingRepo, userRepo, emailSvc
}

func TestAssignmentService_CreateOffer(t *testing.T) {
	ctx := context.Background()

	t.Run("First Offer Moves Booking To Offered", func(t *testing.T) {
		svc, assignmentRepo, bookingRepo, userRepo, emailSvc := newAssignmentService()

		booking := &domain.Booking{
			ID: "b1", Status: domain.BookingStatusRequested,
			ServiceType: "COURT", Date: "2026-09-14", StartTime: "09:00", DurationMinutes: 120,
		}
		bookingRepo.On("GetByID", ctx, "b1").Return(booking, nil)
		userRepo.On("GetInterpreter", ctx, "int-1").Return(&domain.Interpreter{ID: "int-1", Name: "Maria", Email: "maria@example.com"}, nil)
		assignmentRepo.On("Create", ctx, mock.AnythingOfType("*domain.Assignment")).Return(nil)
		bookingRepo.On("SetStatus", ctx, "b1", domain.BookingStatusOffered).Return(nil)
		emailSvc.On("SendOfferNotification", ctx, "maria@example.com", "Maria", "COURT", "2026-09-14", "09:00").Return(nil)

		assignment, err := svc.CreateOffer(ctx, "b1", "int-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.AssignmentStatusOffered, assignment.Status)
		assert.NotNil(t, assignment.Snapshot)
		assert.Equal(t, "2026-09-14", assignment.Snapshot.Date)
		bookingRepo.AssertCalled(t, "SetStatus", ctx, "b1", domain.BookingStatusOffered)
	})

	t.Run("Re-Offer Leaves Status Alone", func(t *testing.T) {
		svc, assignmentRepo, bookingRepo, userRepo, emailSvc := newAssignmentService()

		booking := &domain.Booking{
			ID: "b1", Status: domain.BookingStatusOffered,
			ServiceType: "COURT", Date: "2026-09-14", StartTime: "09:00", DurationMinutes: 120,
		}
		bookingRepo.On("GetByID", ctx, "b1").Return(booking, nil)
		userRepo.On("GetInterpreter", ctx, "int-2").Return(&domain.Interpreter{ID: "int-2", Name: "Jan", Email: "jan@example.com"}, nil)
		assignmentRepo.On("Create", ctx, mock.AnythingOfType("*domain.Assignment")).Return(nil)
		emailSvc.On("SendOfferNotification", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		_, err := svc.CreateOffer(ctx, "b1", "int-2")
		assert.NoError(t, err)
		bookingRepo.AssertNotCalled(t, "SetStatus", ctx, "b1", domain.BookingStatusOffered)
	})

	t.Run("Completed Booking Cannot Be Offered", func(t *testing.T) {
		svc, _, bookingRepo, _, _ := newAssignmentService()

		bookingRepo.On("GetByID", ctx, "b1").Return(&domain.Booking{ID: "b1", Status: domain.BookingStatusCompleted}, nil)

		_, err := svc.CreateOffer(ctx, "b1", "int-1")
		assert.Error(t, err)
		assert.Equal(t, domain.ErrKindInvalidTransition, domain.KindOf(err))
	})
}

func TestAssignmentService_Accept(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, assignmentRepo, bookingRepo, userRepo, emailSvc := newAssignmentService()

		assignment := &domain.Assignment{ID: "a1", BookingID: "b1", InterpreterID: "int-1", Status: domain.AssignmentStatusOffered}
		assignmentRepo.On("GetByID", ctx, "a1").Return(assignment, nil)
		userRepo.On("GetInterpreter", ctx, "int-1").Return(&domain.Interpreter{ID: "int-1", Name: "Maria"}, nil)
		bookingRepo.On("ConfirmIf", ctx, "b1", "int-1", "Maria", mock.Anything).Return(nil)
		assignmentRepo.On("Update", ctx, mock.AnythingOfType("*domain.Assignment")).Return(nil)
		bookingRepo.On("GetByID", ctx, "b1").Return(&domain.Booking{ID: "b1", ClientID: "client-1", Reference: "LB-AAAAAA"}, nil)
		userRepo.On("GetClient", ctx, "client-1").Return(&domain.Client{ID: "client-1", Email: "billing@acme.example"}, nil)
		emailSvc.On("SendOfferAcceptedNotification", ctx, "billing@acme.example", "Maria", "LB-AAAAAA").Return(nil)

		accepted, err := svc.Accept(ctx, "a1")
		assert.NoError(t, err)
		assert.Equal(t, domain.AssignmentStatusAccepted, accepted.Status)
		assert.NotNil(t, accepted.RespondedAt)
	})

	t.Run("Second Accept Loses", func(t *testing.T) {
		svc, assignmentRepo, bookingRepo, userRepo, _ := newAssignmentService()

		assignment := &domain.Assignment{ID: "a2", BookingID: "b1", InterpreterID: "int-2", Status: domain.AssignmentStatusOffered}
		assignmentRepo.On("GetByID", ctx, "a2").Return(assignment, nil)
		userRepo.On("GetInterpreter", ctx, "int-2").Return(&domain.Interpreter{ID: "int-2", Name: "Jan"}, nil)
		bookingRepo.On("ConfirmIf", ctx, "b1", "int-2", "Jan", mock.Anything).Return(store.ErrPreconditionFailed)

		_, err := svc.Accept(ctx, "a2")
		assert.Error(t, err)
		assert.Equal(t, domain.ErrKindConflict, domain.KindOf(err))
		assert.Equal(t, domain.AssignmentStatusOffered, assignment.Status)
	})

	t.Run("Already Declined", func(t *testing.T) {
		svc, assignmentRepo, _, _, _ := newAssignmentService()

		assignmentRepo.On("GetByID", ctx, "a1").Return(&domain.Assignment{ID: "a1", Status: domain.AssignmentStatusDeclined}, nil)

		_, err := svc.Accept(ctx, "a1")
		assert.Error(t, err)
		assert.Equal(t, domain.ErrKindInvalidTransition, domain.KindOf(err))
	})
}

func TestAssignmentService_Decline(t *testing.T) {
	ctx := context.Background()

	t.Run("Last Open Offer Reverts Booking To Searching", func(t *testing.T) {
		svc, assignmentRepo, bookingRepo, _, _ := newAssignmentService()

		assignment := &domain.Assignment{ID: "a1", BookingID: "b1", InterpreterID: "int-1", Status: domain.AssignmentStatusOffered}
		assignmentRepo.On("GetByID", ctx, "a1").Return(assignment, nil)
		assignmentRepo.On("Update", ctx, mock.AnythingOfType("*domain.Assignment")).Return(nil)
		assignmentRepo.On("ListByBooking", ctx, "b1").Return([]domain.Assignment{
			{ID: "a1", Status: domain.AssignmentStatusDeclined},
			{ID: "a0", Status: domain.AssignmentStatusDeclined},
		}, nil)
		bookingRepo.On("GetByID", ctx, "b1").Return(&domain.Booking{ID: "b1", Status: domain.BookingStatusOffered}, nil)
		bookingRepo.On("SetStatus", ctx, "b1", domain.BookingStatusSearching).Return(nil)

		declined, err := svc.Decline(ctx, "a1")
		assert.NoError(t, err)
		assert.Equal(t, domain.AssignmentStatusDeclined, declined.Status)
		bookingRepo.AssertCalled(t, "SetStatus", ctx, "b1", domain.BookingStatusSearching)
	})

	t.Run("Other Offers Still Open", func(t *testing.T) {
		svc, assignmentRepo, bookingRepo, _, _ := newAssignmentService()

		assignment := &domain.Assignment{ID: "a1", BookingID: "b1", InterpreterID: "int-1", Status: domain.AssignmentStatusOffered}
		assignmentRepo.On("GetByID", ctx, "a1").Return(assignment, nil)
		assignmentRepo.On("Update", ctx, mock.AnythingOfType("*domain.Assignment")).Return(nil)
		assignmentRepo.On("ListByBooking", ctx, "b1").Return([]domain.Assignment{
			{ID: "a1", Status: domain.AssignmentStatusDeclined},
			{ID: "a2", Status: domain.AssignmentStatusOffered},
		}, nil)

		_, err := svc.Decline(ctx, "a1")
		assert.NoError(t, err)
		bookingRepo.AssertNotCalled(t, "SetStatus", ctx, "b1", domain.BookingStatusSearching)
	})
}

func TestAssignmentService_ListOffersRefreshesStaleSnapshot(t *testing.T) {
	ctx := context.Background()
	svc, assignmentRepo, bookingRepo, _, _ := newAssignmentService()

	stale := domain.Assignment{ID: "a1", BookingID: "b1", Status: domain.AssignmentStatusOffered, OfferedAt: time.Now()}
	assignmentRepo.On("ListOfferedForInterpreter", ctx, "int-1").Return([]domain.Assignment{stale}, nil)
	bookingRepo.On("GetByID", ctx, "b1").Return(&domain.Booking{
		ID: "b1", ServiceType: "COURT", Date: "2026-09-14", StartTime: "09:00", DurationMinutes: 60,
	}, nil)
	assignmentRepo.On("Update", ctx, mock.AnythingOfType("*domain.Assignment")).Return(nil)

	offers, err := svc.ListOffersForInterpreter(ctx, "int-1")
	assert.NoError(t, err)
	assert.Len(t, offers, 1)
	assert.False(t, offers[0].Snapshot.Stale())
	assert.Equal(t, "COURT", offers[0].Snapshot.ServiceType)
}

func TestAssignmentService_CheckConflict(t *testing.T) {
	ctx := context.Background()

	confirmed := []domain.Booking{
		{ID: "b-existing", StartTime: "09:00", DurationMinutes: 60, Status: domain.BookingStatusConfirmed},
	}

	t.Run("Overlapping Slot Conflicts", func(t *testing.T) {
		svc, _, bookingRepo, _, _ := newAssignmentService()
		bookingRepo.On("ListConfirmedByInterpreterAndDate", ctx, "int-1", "2026-09-14").Return(confirmed, nil)

		conflict, err := svc.CheckConflict(ctx, "int-1", "2026-09-14", "09:30", 60, "")
		assert.NoError(t, err)
		assert.NotNil(t, conflict)
		assert.Equal(t, "b-existing", conflict.ID)
	})

	t.Run("Adjacent Slot Is Clear", func(t *testing.T) {
		svc, _, bookingRepo, _, _ := newAssignmentService()
		bookingRepo.On("ListConfirmedByInterpreterAndDate", ctx, "int-1", "2026-09-14").Return(confirmed, nil)

		conflict, err := svc.CheckConflict(ctx, "int-1", "2026-09-14", "10:00", 60, "")
		assert.NoError(t, err)
		assert.Nil(t, conflict)
	})

	t.Run("Excluded Booking Is Skipped", func(t *testing.T) {
		svc, _, bookingRepo, _, _ := newAssignmentService()
		bookingRepo.On("ListConfirmedByInterpreterAndDate", ctx, "int-1", "2026-09-14").Return(confirmed, nil)

		conflict, err := svc.CheckConflict(ctx, "int-1", "2026-09-14", "09:30", 60, "b-existing")
		assert.NoError(t, err)
		assert.Nil(t, conflict)
	})

	t.Run("Bad Start Time", func(t *testing.T) {
		svc, _, _, _, _ := newAssignmentService()
		_, err := svc.CheckConflict(ctx, "int-1", "2026-09-14", "25:99", 60, "")
		assert.Error(t, err)
		assert.Equal(t, domain.ErrKindValidation, domain.KindOf(err))
	})
}
