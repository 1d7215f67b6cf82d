package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"linguabook-backend/internal/domain"
	"linguabook-backend/internal/service"
)

// InvoiceHandler exposes invoice generation and lifecycle over HTTP.
type InvoiceHandler struct {
	invoices service.InvoiceService
}

func NewInvoiceHandler(invoices service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

func (h *InvoiceHandler) GenerateClientInvoice(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, domain.UserRoleAdmin); !ok {
		return
	}
	var req struct {
		ClientID    string `json:"client_id"`
		PeriodStart string `json:"period_start"`
		PeriodEnd   string `json:"period_end"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	invoice, err := h.invoices.GenerateClientInvoice(r.Context(), req.ClientID, req.PeriodStart, req.PeriodEnd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, clientInvoiceResponse(invoice))
}

func (h *InvoiceHandler) GetClientInvoice(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRole(w, r, domain.UserRoleAdmin, domain.UserRoleClient)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]
	invoice, err := h.invoices.GetClientInvoice(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if invoice == nil || (actor.Role == domain.UserRoleClient && invoice.ClientID != actor.ID) {
		writeError(w, domain.NewNotFoundError("invoice", id))
		return
	}
	writeJSON(w, http.StatusOK, clientInvoiceResponse(invoice))
}

func (h *InvoiceHandler) ListClientInvoices(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRole(w, r, domain.UserRoleAdmin, domain.UserRoleClient)
	if !ok {
		return
	}
	clientID := r.URL.Query().Get("client_id")
	if actor.Role == domain.UserRoleClient {
		clientID = actor.ID
	}
	if clientID == "" {
		writeError(w, domain.NewValidationError("client_id", "client id is required"))
		return
	}
	invoices, err := h.invoices.ListClientInvoices(r.Context(), clientID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoices)
}

func (h *InvoiceHandler) SetClientInvoiceStatus(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, domain.UserRoleAdmin); !ok {
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	invoice, err := h.invoices.SetClientInvoiceStatus(r.Context(), mux.Vars(r)["id"], domain.ClientInvoiceStatus(req.Status))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clientInvoiceResponse(invoice))
}

// SubmitUpload records an interpreter-produced invoice against a selection of
// their approved timesheets.
func (h *InvoiceHandler) SubmitUpload(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRole(w, r, domain.UserRoleInterpreter)
	if !ok {
		return
	}
	var req struct {
		TimesheetIDs []string `json:"timesheet_ids"`
		Reference    string   `json:"reference"`
		AmountPence  int32    `json:"amount_pence"`
		DocumentURL  string   `json:"document_url"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	invoice, err := h.invoices.GenerateFromUpload(r.Context(), actor.ID, req.TimesheetIDs, req.Reference, req.AmountPence, req.DocumentURL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, interpreterInvoiceResponse(invoice))
}

func (h *InvoiceHandler) GetInterpreterInvoice(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRole(w, r, domain.UserRoleAdmin, domain.UserRoleInterpreter)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]
	invoice, err := h.invoices.GetInterpreterInvoice(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if invoice == nil || (actor.Role == domain.UserRoleInterpreter && invoice.InterpreterID != actor.ID) {
		writeError(w, domain.NewNotFoundError("invoice", id))
		return
	}
	writeJSON(w, http.StatusOK, interpreterInvoiceResponse(invoice))
}

func (h *InvoiceHandler) ListInterpreterInvoices(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRole(w, r, domain.UserRoleAdmin, domain.UserRoleInterpreter)
	if !ok {
		return
	}
	interpreterID := r.URL.Query().Get("interpreter_id")
	if actor.Role == domain.UserRoleInterpreter {
		interpreterID = actor.ID
	}
	if interpreterID == "" {
		writeError(w, domain.NewValidationError("interpreter_id", "interpreter id is required"))
		return
	}
	invoices, err := h.invoices.ListInterpreterInvoices(r.Context(), interpreterID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoices)
}

func (h *InvoiceHandler) SetInterpreterInvoiceStatus(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, domain.UserRoleAdmin); !ok {
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	invoice, err := h.invoices.SetInterpreterInvoiceStatus(r.Context(), mux.Vars(r)["id"], domain.InterpreterInvoiceStatus(req.Status))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, interpreterInvoiceResponse(invoice))
}

// Lines are stored separately and tagged out of the entity's own JSON, so
// responses that include them wrap the invoice explicitly.

func clientInvoiceResponse(inv *domain.ClientInvoice) map[string]any {
	return map[string]any{"invoice": inv, "lines": inv.Lines}
}

func interpreterInvoiceResponse(inv *domain.InterpreterInvoice) map[string]any {
	return map[string]any{"invoice": inv, "lines": inv.Lines}
}
