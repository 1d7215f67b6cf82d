package domain

import "time"

type TimesheetStatus string

const (
	TimesheetStatusSubmitted TimesheetStatus = "SUBMITTED"
	TimesheetStatusApproved  TimesheetStatus = "APPROVED"
	TimesheetStatusRejected  TimesheetStatus = "REJECTED"
)

// Timesheet records the actual worked time an interpreter submits for a
// completed booking. Unit and amount fields are zero until an admin approves
// the timesheet; approval computes them from the applicable rates.
type Timesheet struct {
	ID            string          `json:"id"`
	BookingID     string          `json:"booking_id"`
	ClientID      string          `json:"client_id"`
	InterpreterID string          `json:"interpreter_id"`
	ActualStart   time.Time       `json:"actual_start"`
	ActualEnd     time.Time       `json:"actual_end"`
	BreakMinutes  int32           `json:"break_minutes"`
	TravelMinutes int32           `json:"travel_minutes"`
	EvidenceURL   string          `json:"evidence_url"`
	Status        TimesheetStatus `json:"status"`
	AdminApproved bool            `json:"admin_approved"`
	SubmittedAt   time.Time       `json:"submitted_at"`

	// Computed at approval time.
	UnitsBillableToClient       int32 `json:"units_billable_to_client"`
	UnitsPayableToInterpreter   int32 `json:"units_payable_to_interpreter"`
	TotalClientAmountPence      int32 `json:"total_client_amount_pence"`
	TotalInterpreterAmountPence int32 `json:"total_interpreter_amount_pence"`
	ReadyForClientInvoice       bool  `json:"ready_for_client_invoice"`
	ReadyForInterpreterInvoice  bool  `json:"ready_for_interpreter_invoice"`

	// Set by invoice generation. A timesheet links to at most one invoice
	// on each side; once linked it is excluded from future batches.
	ClientInvoiceID      string `json:"client_invoice_id"`
	InterpreterInvoiceID string `json:"interpreter_invoice_id"`
}

// WorkedMinutes is the actual elapsed time minus break time, floored at zero.
func (t *Timesheet) WorkedMinutes() int32 {
	elapsed := int32(t.ActualEnd.Sub(t.ActualStart).Minutes())
	worked := elapsed - t.BreakMinutes
	if worked < 0 {
		return 0
	}
	return worked
}

// Approvable reports whether the timesheet is still awaiting an admin
// decision.
func (t *Timesheet) Approvable() bool {
	return t.Status == TimesheetStatusSubmitted && !t.AdminApproved
}
