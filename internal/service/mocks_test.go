package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"linguabook-backend/internal/domain"
)

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) Update(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockBookingRepo) SetStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockBookingRepo) AssignInterpreter(ctx context.Context, id string, status domain.BookingStatus, interpreterID, interpreterName string) error {
	args := m.Called(ctx, id, status, interpreterID, interpreterName)
	return args.Error(0)
}
func (m *MockBookingRepo) ConfirmIf(ctx context.Context, id string, interpreterID, interpreterName string, allowed []domain.BookingStatus) error {
	args := m.Called(ctx, id, interpreterID, interpreterName, allowed)
	return args.Error(0)
}
func (m *MockBookingRepo) ListByClient(ctx context.Context, clientID string) ([]domain.Booking, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListByStatus(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListConfirmedByInterpreterAndDate(ctx context.Context, interpreterID, date string) ([]domain.Booking, error) {
	args := m.Called(ctx, interpreterID, date)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

// MockAssignmentRepo
type MockAssignmentRepo struct {
	mock.Mock
}

func (m *MockAssignmentRepo) Create(ctx context.Context, assignment *domain.Assignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}
func (m *MockAssignmentRepo) GetByID(ctx context.Context, id string) (*domain.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assignment), args.Error(1)
}
func (m *MockAssignmentRepo) Update(ctx context.Context, assignment *domain.Assignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}
func (m *MockAssignmentRepo) ListByBooking(ctx context.Context, bookingID string) ([]domain.Assignment, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.Assignment), args.Error(1)
}
func (m *MockAssignmentRepo) ListOfferedForInterpreter(ctx context.Context, interpreterID string) ([]domain.Assignment, error) {
	args := m.Called(ctx, interpreterID)
	return args.Get(0).([]domain.Assignment), args.Error(1)
}
func (m *MockAssignmentRepo) ListByStatus(ctx context.Context, status domain.AssignmentStatus) ([]domain.Assignment, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Assignment), args.Error(1)
}

// MockTimesheetRepo
type MockTimesheetRepo struct {
	mock.Mock
}

func (m *MockTimesheetRepo) Create(ctx context.Context, timesheet *domain.Timesheet) error {
	args := m.Called(ctx, timesheet)
	return args.Error(0)
}
func (m *MockTimesheetRepo) GetByID(ctx context.Context, id string) (*domain.Timesheet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Timesheet), args.Error(1)
}
func (m *MockTimesheetRepo) Update(ctx context.Context, timesheet *domain.Timesheet) error {
	args := m.Called(ctx, timesheet)
	return args.Error(0)
}
func (m *MockTimesheetRepo) ListPendingApproval(ctx context.Context) ([]domain.Timesheet, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Timesheet), args.Error(1)
}
func (m *MockTimesheetRepo) ListApprovedUnlinkedForClient(ctx context.Context, clientID string) ([]domain.Timesheet, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).([]domain.Timesheet), args.Error(1)
}
func (m *MockTimesheetRepo) ListApprovedUnlinkedForInterpreter(ctx context.Context, interpreterID string) ([]domain.Timesheet, error) {
	args := m.Called(ctx, interpreterID)
	return args.Get(0).([]domain.Timesheet), args.Error(1)
}

// MockClientInvoiceRepo
type MockClientInvoiceRepo struct {
	mock.Mock
}

func (m *MockClientInvoiceRepo) Create(ctx context.Context, invoice *domain.ClientInvoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}
func (m *MockClientInvoiceRepo) GetByID(ctx context.Context, id string) (*domain.ClientInvoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClientInvoice), args.Error(1)
}
func (m *MockClientInvoiceRepo) SetStatus(ctx context.Context, id string, status domain.ClientInvoiceStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockClientInvoiceRepo) ListByClient(ctx context.Context, clientID string) ([]domain.ClientInvoice, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).([]domain.ClientInvoice), args.Error(1)
}
func (m *MockClientInvoiceRepo) ListByStatus(ctx context.Context, status domain.ClientInvoiceStatus) ([]domain.ClientInvoice, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.ClientInvoice), args.Error(1)
}

// MockInterpreterInvoiceRepo
type MockInterpreterInvoiceRepo struct {
	mock.Mock
}

func (m *MockInterpreterInvoiceRepo) Create(ctx context.Context, invoice *domain.InterpreterInvoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}
func (m *MockInterpreterInvoiceRepo) GetByID(ctx context.Context, id string) (*domain.InterpreterInvoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterpreterInvoice), args.Error(1)
}
func (m *MockInterpreterInvoiceRepo) SetStatus(ctx context.Context, id string, status domain.InterpreterInvoiceStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockInterpreterInvoiceRepo) ListByInterpreter(ctx context.Context, interpreterID string) ([]domain.InterpreterInvoice, error) {
	args := m.Called(ctx, interpreterID)
	return args.Get(0).([]domain.InterpreterInvoice), args.Error(1)
}

// MockRateRepo
type MockRateRepo struct {
	mock.Mock
}

func (m *MockRateRepo) Get(ctx context.Context, rateType domain.RateType, serviceType string) (*domain.Rate, error) {
	args := m.Called(ctx, rateType, serviceType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rate), args.Error(1)
}
func (m *MockRateRepo) List(ctx context.Context) ([]domain.Rate, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Rate), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *MockUserRepo) GetInterpreter(ctx context.Context, id string) (*domain.Interpreter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Interpreter), args.Error(1)
}
func (m *MockUserRepo) ListInterpreters(ctx context.Context) ([]domain.Interpreter, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Interpreter), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendOfferNotification(ctx context.Context, email, name, serviceType, date, startTime string) error {
	args := m.Called(ctx, email, name, serviceType, date, startTime)
	return args.Error(0)
}
func (m *MockEmailService) SendOfferAcceptedNotification(ctx context.Context, email, interpreterName, reference string) error {
	args := m.Called(ctx, email, interpreterName, reference)
	return args.Error(0)
}
func (m *MockEmailService) SendTimesheetApprovedNotification(ctx context.Context, email, name, reference string, amountPence int32) error {
	args := m.Called(ctx, email, name, reference, amountPence)
	return args.Error(0)
}
func (m *MockEmailService) SendClientInvoiceNotification(ctx context.Context, email, reference string, totalPence int32, dueDate string) error {
	args := m.Called(ctx, email, reference, totalPence, dueDate)
	return args.Error(0)
}
func (m *MockEmailService) SendInvoiceReminder(ctx context.Context, email, reference, dueDate string) error {
	args := m.Called(ctx, email, reference, dueDate)
	return args.Error(0)
}
