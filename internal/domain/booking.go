package domain

import "time"

type BookingStatus string

const (
	BookingStatusRequested BookingStatus = "REQUESTED"
	BookingStatusSearching BookingStatus = "SEARCHING"
	BookingStatusOffered   BookingStatus = "OFFERED"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusInvoiced  BookingStatus = "INVOICED"
	BookingStatusPaid      BookingStatus = "PAID"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// IsTerminal reports whether no further transitions are allowed.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCancelled || s == BookingStatusPaid
}

// HasInterpreter reports whether a booking in this status must carry an
// assigned interpreter.
func (s BookingStatus) HasInterpreter() bool {
	switch s {
	case BookingStatusConfirmed, BookingStatusCompleted, BookingStatusInvoiced, BookingStatusPaid:
		return true
	}
	return false
}

type LocationMode string

const (
	LocationModeOnsite LocationMode = "ONSITE"
	LocationModeOnline LocationMode = "ONLINE"
)

type Booking struct {
	ID              string        `json:"id"`
	Reference       string        `json:"reference"`
	ClientID        string        `json:"client_id"`
	ClientName      string        `json:"client_name"`
	ServiceType     string        `json:"service_type"`
	SourceLanguage  string        `json:"source_language"`
	TargetLanguage  string        `json:"target_language"`
	Date            string        `json:"date"`       // yyyy-mm-dd
	StartTime       string        `json:"start_time"` // HH:MM, 24h
	DurationMinutes int32         `json:"duration_minutes"`
	ExpectedEndTime string        `json:"expected_end_time"`
	LocationMode    LocationMode  `json:"location_mode"`
	Address         string        `json:"address"`
	Postcode        string        `json:"postcode"`
	MeetingLink     string        `json:"meeting_link"`
	Status          BookingStatus `json:"status"`
	CostCode        string        `json:"cost_code"`
	CaseType        string        `json:"case_type"`
	Notes           string        `json:"notes"`
	GenderPreference string       `json:"gender_preference"`
	InterpreterID   string        `json:"interpreter_id"`
	InterpreterName string        `json:"interpreter_name"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// bookingTransitions enumerates the forward edges of the lifecycle.
// CANCELLED is reachable from any non-terminal state and is handled
// separately in CanTransitionTo.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusRequested: {BookingStatusOffered, BookingStatusSearching},
	BookingStatusSearching: {BookingStatusOffered, BookingStatusConfirmed},
	BookingStatusOffered:   {BookingStatusSearching, BookingStatusConfirmed},
	BookingStatusConfirmed: {BookingStatusCompleted},
	BookingStatusCompleted: {BookingStatusInvoiced},
	BookingStatusInvoiced:  {BookingStatusPaid},
}

// CanTransitionTo reports whether the state machine permits moving from the
// booking's current status to next.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	if b.Status == next {
		return false
	}
	if next == BookingStatusCancelled {
		return !b.Status.IsTerminal()
	}
	for _, allowed := range bookingTransitions[b.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ClientCancellable reports whether a client (as opposed to an admin) may
// still cancel this booking.
func (b *Booking) ClientCancellable() bool {
	switch b.Status {
	case BookingStatusRequested, BookingStatusSearching, BookingStatusOffered:
		return true
	}
	return false
}
