package domain

import "time"

type AssignmentStatus string

const (
	AssignmentStatusOffered  AssignmentStatus = "OFFERED"
	AssignmentStatusAccepted AssignmentStatus = "ACCEPTED"
	AssignmentStatusDeclined AssignmentStatus = "DECLINED"
	AssignmentStatusExpired  AssignmentStatus = "EXPIRED"
)

// BookingSnapshot is the denormalized slice of booking fields stored on an
// assignment at offer time so offer cards can render without a second fetch.
// It is a display cache, never a source of truth: conflict checks and amount
// computation always go back to the booking record.
type BookingSnapshot struct {
	Reference       string       `json:"reference"`
	ServiceType     string       `json:"service_type"`
	SourceLanguage  string       `json:"source_language"`
	TargetLanguage  string       `json:"target_language"`
	Date            string       `json:"date"`
	StartTime       string       `json:"start_time"`
	DurationMinutes int32        `json:"duration_minutes"`
	LocationMode    LocationMode `json:"location_mode"`
	Address         string       `json:"address"`
	Postcode        string       `json:"postcode"`
}

// Stale reports whether the snapshot is missing a field required for
// display and must be refetched from the booking.
func (s *BookingSnapshot) Stale() bool {
	return s == nil || s.Date == "" || s.StartTime == "" || s.DurationMinutes == 0 || s.ServiceType == ""
}

// Assignment is one interpreter's invitation to take a specific booking.
// Assignments are never deleted; declined and expired rounds remain as an
// audit trail.
type Assignment struct {
	ID            string           `json:"id"`
	BookingID     string           `json:"booking_id"`
	InterpreterID string           `json:"interpreter_id"`
	Status        AssignmentStatus `json:"status"`
	OfferedAt     time.Time        `json:"offered_at"`
	RespondedAt   *time.Time       `json:"responded_at,omitempty"`
	Snapshot      *BookingSnapshot `json:"snapshot,omitempty"`
}

// Active reports whether the offer is still awaiting a response.
func (a *Assignment) Active() bool {
	return a.Status == AssignmentStatusOffered
}
