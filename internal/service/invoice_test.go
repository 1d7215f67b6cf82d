package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"linguabook-backend/internal/domain"
	"linguabook-backend/internal/service"
)

func newInvoiceService() (service.InvoiceService, *MockClientInvoiceRepo, *MockInterpreterInvoiceRepo, *MockTimesheetRepo, *MockBookingRepo, *MockUserRepo, *MockEmailService) {
	clientInvoiceRepo := new(MockClientInvoiceRepo)
	interpreterInvoiceRepo := new(MockInterpreterInvoiceRepo)
	timesheetRepo := new(MockTimesheetRepo)
	bookingRepo := new(MockBookingRepo)
	userRepo := new(MockUserRepo)
	emailSvc := new(MockEmailService)
	svc := service.NewInvoiceService(clientInvoiceRepo, interpreterInvoiceRepo, timesheetRepo, bookingRepo, userRepo, emailSvc, "GBP", 30, "LB")
	return svc, clientInvoiceRepo, interpreterInvoiceRepo, timesheetRepo, bookingRepo, userRepo, emailSvc
}

func approvedTimesheet(id, bookingID string, workDate time.Time, units, totalPence int32) domain.Timesheet {
	return domain.Timesheet{
		ID:                     id,
		BookingID:              bookingID,
		ClientID:               "client-1",
		InterpreterID:          "int-1",
		ActualStart:            workDate,
		ActualEnd:              workDate.Add(2 * time.Hour),
		Status:                 domain.TimesheetStatusApproved,
		AdminApproved:          true,
		UnitsBillableToClient:  units,
		TotalClientAmountPence: totalPence,
		ReadyForClientInvoice:  true,
	}
}

func TestInvoiceService_GenerateClientInvoice(t *testing.T) {
	ctx := context.Background()

	t.Run("Batches Period Timesheets Into Draft", func(t *testing.T) {
		svc, clientInvoiceRepo, _, timesheetRepo, bookingRepo, userRepo, _ := newInvoiceService()

		userRepo.On("GetClient", ctx, "client-1").Return(&domain.Client{ID: "client-1"}, nil)
		inPeriod1 := approvedTimesheet("t1", "b1", time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC), 2, 4000)
		inPeriod2 := approvedTimesheet("t2", "b2", time.Date(2026, 9, 20, 14, 0, 0, 0, time.UTC), 1, 2000)
		outOfPeriod := approvedTimesheet("t3", "b3", time.Date(2026, 10, 2, 9, 0, 0, 0, time.UTC), 3, 6000)
		timesheetRepo.On("ListApprovedUnlinkedForClient", ctx, "client-1").Return(
			[]domain.Timesheet{inPeriod1, inPeriod2, outOfPeriod}, nil)
		clientInvoiceRepo.On("Create", ctx, mock.AnythingOfType("*domain.ClientInvoice")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.ClientInvoice).ID = "inv-1"
			}).Return(nil)
		timesheetRepo.On("Update", ctx, mock.AnythingOfType("*domain.Timesheet")).Return(nil)
		bookingRepo.On("GetByID", ctx, "b1").Return(&domain.Booking{ID: "b1", Status: domain.BookingStatusCompleted}, nil)
		bookingRepo.On("GetByID", ctx, "b2").Return(&domain.Booking{ID: "b2", Status: domain.BookingStatusCompleted}, nil)
		bookingRepo.On("SetStatus", ctx, "b1", domain.BookingStatusInvoiced).Return(nil)
		bookingRepo.On("SetStatus", ctx, "b2", domain.BookingStatusInvoiced).Return(nil)

		invoice, err := svc.GenerateClientInvoice(ctx, "client-1", "2026-09-01", "2026-09-30")
		assert.NoError(t, err)
		assert.Equal(t, domain.ClientInvoiceStatusDraft, invoice.Status)
		assert.Len(t, invoice.Lines, 2)
		assert.Equal(t, int32(6000), invoice.TotalPence)
		assert.Equal(t, invoice.TotalPence, domain.SumLines(invoice.Lines))
		for _, line := range invoice.Lines {
			assert.Equal(t, line.Units*line.PricePerUnitPence, line.TotalPence)
		}
		bookingRepo.AssertCalled(t, "SetStatus", ctx, "b1", domain.BookingStatusInvoiced)
		bookingRepo.AssertNotCalled(t, "SetStatus", ctx, "b3", domain.BookingStatusInvoiced)
	})

	t.Run("Nothing To Invoice", func(t *testing.T) {
		svc, _, _, timesheetRepo, _, userRepo, _ := newInvoiceService()

		userRepo.On("GetClient", ctx, "client-1").Return(&domain.Client{ID: "client-1"}, nil)
		timesheetRepo.On("ListApprovedUnlinkedForClient", ctx, "client-1").Return([]domain.Timesheet{}, nil)

		_, err := svc.GenerateClientInvoice(ctx, "client-1", "2026-09-01", "2026-09-30")
		assert.Error(t, err)
		assert.Equal(t, domain.ErrKindValidation, domain.KindOf(err))
	})

	t.Run("Inverted Period", func(t *testing.T) {
		svc, _, _, _, _, _, _ := newInvoiceService()
		_, err := svc.GenerateClientInvoice(ctx, "client-1", "2026-09-30", "2026-09-01")
		assert.Error(t, err)
		assert.Equal(t, domain.ErrKindValidation, domain.KindOf(err))
	})
}

func TestInvoiceService_GenerateFromUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, _, interpreterInvoiceRepo, timesheetRepo, _, userRepo, _ := newInvoiceService()

		userRepo.On("GetInterpreter", ctx, "int-1").Return(&domain.Interpreter{ID: "int-1"}, nil)
		ts := approvedTimesheet("t1", "b1", time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC), 2, 4000)
		timesheetRepo.On("GetByID", ctx, "t1").Return(&ts, nil)
		interpreterInvoiceRepo.On("Create", ctx, mock.AnythingOfType("*domain.InterpreterInvoice")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.InterpreterInvoice).ID = "inv-2"
			}).Return(nil)
		timesheetRepo.On("Update", ctx, mock.AnythingOfType("*domain.Timesheet")).Return(nil)

		invoice, err := svc.GenerateFromUpload(ctx, "int-1", []string{"t1"}, "INT-042", 2500, "http://files/invoice.pdf")
		assert.NoError(t, err)
		assert.Equal(t, domain.InterpreterInvoiceStatusSubmitted, invoice.Status)
		assert.Equal(t, domain.InvoiceModelUpload, invoice.Model)
		assert.Equal(t, int32(2500), invoice.TotalPence)
		assert.Equal(t, invoice.TotalPence, domain.SumLines(invoice.Lines))
	})

	t.Run("Timesheet Belongs To Another Interpreter", func(t *testing.T) {
		svc, _, _, timesheetRepo, _, userRepo, _ := newInvoiceService()

		userRepo.On("GetInterpreter", ctx, "int-1").Return(&domain.Interpreter{ID: "int-1"}, nil)
		ts := approvedTimesheet("t1", "b1", time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC), 2, 4000)
		ts.InterpreterID = "int-2"
		timesheetRepo.On("GetByID", ctx, "t1").Return(&ts, nil)

		_, err := svc.GenerateFromUpload(ctx, "int-1", []string{"t1"}, "", 2500, "")
		assert.Error(t, err)
		assert.Equal(t, domain.ErrKindValidation, domain.KindOf(err))
	})

	t.Run("Already Invoiced Timesheet", func(t *testing.T) {
		svc, _, _, timesheetRepo, _, userRepo, _ := newInvoiceService()

		userRepo.On("GetInterpreter", ctx, "int-1").Return(&domain.Interpreter{ID: "int-1"}, nil)
		ts := approvedTimesheet("t1", "b1", time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC), 2, 4000)
		ts.InterpreterInvoiceID = "inv-earlier"
		timesheetRepo.On("GetByID", ctx, "t1").Return(&ts, nil)

		_, err := svc.GenerateFromUpload(ctx, "int-1", []string{"t1"}, "", 2500, "")
		assert.Error(t, err)
		assert.Equal(t, domain.ErrKindValidation, domain.KindOf(err))
	})

	t.Run("Empty Selection", func(t *testing.T) {
		svc, _, _, _, _, _, _ := newInvoiceService()
		_, err := svc.GenerateFromUpload(ctx, "int-1", nil, "", 2500, "")
		assert.Error(t, err)
	})
}

func TestInvoiceService_StatusTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("Draft To Sent Notifies Client", func(t *testing.T) {
		svc, clientInvoiceRepo, _, _, _, userRepo, emailSvc := newInvoiceService()

		clientInvoiceRepo.On("GetByID", ctx, "inv-1").Return(&domain.ClientInvoice{
			ID: "inv-1", ClientID: "client-1", Reference: "LB-INV001",
			Status: domain.ClientInvoiceStatusDraft, TotalPence: 6000, DueDate: "2026-10-14",
		}, nil)
		clientInvoiceRepo.On("SetStatus", ctx, "inv-1", domain.ClientInvoiceStatusSent).Return(nil)
		userRepo.On("GetClient", ctx, "client-1").Return(&domain.Client{
			ID: "client-1", Email: "office@acme.example", BillingEmail: "billing@acme.example",
		}, nil)
		emailSvc.On("SendClientInvoiceNotification", ctx, "billing@acme.example", "LB-INV001", int32(6000), "2026-10-14").Return(nil)

		invoice, err := svc.SetClientInvoiceStatus(ctx, "inv-1", domain.ClientInvoiceStatusSent)
		assert.NoError(t, err)
		assert.Equal(t, domain.ClientInvoiceStatusSent, invoice.Status)
		emailSvc.AssertCalled(t, "SendClientInvoiceNotification", ctx, "billing@acme.example", "LB-INV001", int32(6000), "2026-10-14")
	})

	t.Run("Draft Cannot Jump To Paid", func(t *testing.T) {
		svc, clientInvoiceRepo, _, _, _, _, _ := newInvoiceService()

		clientInvoiceRepo.On("GetByID", ctx, "inv-1").Return(&domain.ClientInvoice{
			ID: "inv-1", Status: domain.ClientInvoiceStatusDraft,
		}, nil)

		_, err := svc.SetClientInvoiceStatus(ctx, "inv-1", domain.ClientInvoiceStatusPaid)
		assert.Error(t, err)
		assert.Equal(t, domain.ErrKindInvalidTransition, domain.KindOf(err))
	})

	t.Run("Rejected Upload Cannot Be Paid", func(t *testing.T) {
		svc, _, interpreterInvoiceRepo, _, _, _, _ := newInvoiceService()

		interpreterInvoiceRepo.On("GetByID", ctx, "inv-2").Return(&domain.InterpreterInvoice{
			ID: "inv-2", Status: domain.InterpreterInvoiceStatusRejected,
		}, nil)

		_, err := svc.SetInterpreterInvoiceStatus(ctx, "inv-2", domain.InterpreterInvoiceStatusPaid)
		assert.Error(t, err)
		assert.Equal(t, domain.ErrKindInvalidTransition, domain.KindOf(err))
	})

	t.Run("Approved Upload Can Be Paid", func(t *testing.T) {
		svc, _, interpreterInvoiceRepo, _, _, _, _ := newInvoiceService()

		interpreterInvoiceRepo.On("GetByID", ctx, "inv-2").Return(&domain.InterpreterInvoice{
			ID: "inv-2", Status: domain.InterpreterInvoiceStatusApproved,
		}, nil)
		interpreterInvoiceRepo.On("SetStatus", ctx, "inv-2", domain.InterpreterInvoiceStatusPaid).Return(nil)

		invoice, err := svc.SetInterpreterInvoiceStatus(ctx, "inv-2", domain.InterpreterInvoiceStatusPaid)
		assert.NoError(t, err)
		assert.Equal(t, domain.InterpreterInvoiceStatusPaid, invoice.Status)
	})
}
