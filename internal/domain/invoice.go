package domain

import "time"

type ClientInvoiceStatus string

const (
	ClientInvoiceStatusDraft     ClientInvoiceStatus = "DRAFT"
	ClientInvoiceStatusSent      ClientInvoiceStatus = "SENT"
	ClientInvoiceStatusPaid      ClientInvoiceStatus = "PAID"
	ClientInvoiceStatusCancelled ClientInvoiceStatus = "CANCELLED"
)

// CanTransitionTo enforces DRAFT -> SENT -> PAID, with CANCELLED reachable
// from DRAFT or SENT.
func (s ClientInvoiceStatus) CanTransitionTo(next ClientInvoiceStatus) bool {
	switch s {
	case ClientInvoiceStatusDraft:
		return next == ClientInvoiceStatusSent || next == ClientInvoiceStatusCancelled
	case ClientInvoiceStatusSent:
		return next == ClientInvoiceStatusPaid || next == ClientInvoiceStatusCancelled
	}
	return false
}

type InterpreterInvoiceStatus string

const (
	InterpreterInvoiceStatusSubmitted InterpreterInvoiceStatus = "SUBMITTED"
	InterpreterInvoiceStatusApproved  InterpreterInvoiceStatus = "APPROVED"
	InterpreterInvoiceStatusRejected  InterpreterInvoiceStatus = "REJECTED"
	InterpreterInvoiceStatusPaid      InterpreterInvoiceStatus = "PAID"
)

// CanTransitionTo enforces SUBMITTED -> APPROVED -> PAID, with REJECTED
// reachable only from SUBMITTED.
func (s InterpreterInvoiceStatus) CanTransitionTo(next InterpreterInvoiceStatus) bool {
	switch s {
	case InterpreterInvoiceStatusSubmitted:
		return next == InterpreterInvoiceStatusApproved || next == InterpreterInvoiceStatusRejected
	case InterpreterInvoiceStatusApproved:
		return next == InterpreterInvoiceStatusPaid
	}
	return false
}

const (
	InvoiceModelGenerated = "GENERATED"
	InvoiceModelUpload    = "UPLOAD"
)

// InvoiceLine is one billed item. TotalPence must always equal
// Units * PricePerUnitPence; generation enforces this.
type InvoiceLine struct {
	ID                string `json:"id"`
	InvoiceID         string `json:"invoice_id"`
	TimesheetID       string `json:"timesheet_id"`
	Description       string `json:"description"`
	Units             int32  `json:"units"`
	PricePerUnitPence int32  `json:"price_per_unit_pence"`
	TotalPence        int32  `json:"total_pence"`
}

type ClientInvoice struct {
	ID          string              `json:"id"`
	ClientID    string              `json:"client_id"`
	Reference   string              `json:"reference"`
	IssueDate   string              `json:"issue_date"`
	DueDate     string              `json:"due_date"`
	PeriodStart string              `json:"period_start"`
	PeriodEnd   string              `json:"period_end"`
	Status      ClientInvoiceStatus `json:"status"`
	TotalPence  int32               `json:"total_pence"`
	Currency    string              `json:"currency"`
	Lines       []InvoiceLine       `json:"-"`
	CreatedAt   time.Time           `json:"created_at"`
}

type InterpreterInvoice struct {
	ID            string                   `json:"id"`
	InterpreterID string                   `json:"interpreter_id"`
	Reference     string                   `json:"reference"`
	Model         string                   `json:"model"`
	Status        InterpreterInvoiceStatus `json:"status"`
	TotalPence    int32                    `json:"total_pence"`
	Currency      string                   `json:"currency"`
	DocumentURL   string                   `json:"document_url"`
	Lines         []InvoiceLine            `json:"-"`
	SubmittedAt   time.Time                `json:"submitted_at"`
}

// SumLines returns the sum of line totals, the value TotalPence must equal.
func SumLines(lines []InvoiceLine) int32 {
	var total int32
	for _, l := range lines {
		total += l.TotalPence
	}
	return total
}
