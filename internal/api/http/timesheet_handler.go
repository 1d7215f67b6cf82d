package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"linguabook-backend/internal/domain"
	"linguabook-backend/internal/service"
)

// TimesheetHandler exposes timesheet submission and approval over HTTP.
type TimesheetHandler struct {
	timesheets service.TimesheetService
}

func NewTimesheetHandler(timesheets service.TimesheetService) *TimesheetHandler {
	return &TimesheetHandler{timesheets: timesheets}
}

type timesheetDraftRequest struct {
	BookingID     string `json:"booking_id"`
	ActualStart   string `json:"actual_start"`
	ActualEnd     string `json:"actual_end"`
	BreakMinutes  int32  `json:"break_minutes"`
	TravelMinutes int32  `json:"travel_minutes"`
	EvidenceURL   string `json:"evidence_url"`
}

func (h *TimesheetHandler) Submit(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRole(w, r, domain.UserRoleInterpreter, domain.UserRoleAdmin)
	if !ok {
		return
	}
	var req timesheetDraftRequest
	if !decodeBody(w, r, &req) {
		return
	}
	timesheet, err := h.timesheets.Submit(r.Context(), actor, &service.TimesheetDraft{
		BookingID:     req.BookingID,
		ActualStart:   req.ActualStart,
		ActualEnd:     req.ActualEnd,
		BreakMinutes:  req.BreakMinutes,
		TravelMinutes: req.TravelMinutes,
		EvidenceURL:   req.EvidenceURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, timesheet)
}

func (h *TimesheetHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	timesheet, err := h.timesheets.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if timesheet == nil {
		writeError(w, domain.NewNotFoundError("timesheet", id))
		return
	}
	actor := actorFrom(r)
	if actor.Role == domain.UserRoleInterpreter && timesheet.InterpreterID != actor.ID {
		writeError(w, domain.NewNotFoundError("timesheet", id))
		return
	}
	writeJSON(w, http.StatusOK, timesheet)
}

func (h *TimesheetHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, domain.UserRoleAdmin); !ok {
		return
	}
	timesheets, err := h.timesheets.ListPendingApproval(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, timesheets)
}

func (h *TimesheetHandler) Approve(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, domain.UserRoleAdmin); !ok {
		return
	}
	timesheet, err := h.timesheets.Approve(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, timesheet)
}

func (h *TimesheetHandler) Reject(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, domain.UserRoleAdmin); !ok {
		return
	}
	timesheet, err := h.timesheets.Reject(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, timesheet)
}

// ListUninvoiced returns the calling interpreter's approved timesheets not
// yet attached to an invoice.
func (h *TimesheetHandler) ListUninvoiced(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRole(w, r, domain.UserRoleInterpreter)
	if !ok {
		return
	}
	timesheets, err := h.timesheets.ListUninvoicedForInterpreter(r.Context(), actor.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, timesheets)
}
