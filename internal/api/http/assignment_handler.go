package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"linguabook-backend/internal/domain"
	"linguabook-backend/internal/service"
)

// AssignmentHandler exposes the offer workflow over HTTP.
type AssignmentHandler struct {
	assignments service.AssignmentService
}

func NewAssignmentHandler(assignments service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments}
}

func (h *AssignmentHandler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, domain.UserRoleAdmin); !ok {
		return
	}
	var req struct {
		InterpreterID string `json:"interpreter_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	assignment, err := h.assignments.CreateOffer(r.Context(), mux.Vars(r)["id"], req.InterpreterID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, assignment)
}

// ListMyOffers returns the calling interpreter's open offers.
func (h *AssignmentHandler) ListMyOffers(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRole(w, r, domain.UserRoleInterpreter)
	if !ok {
		return
	}
	offers, err := h.assignments.ListOffersForInterpreter(r.Context(), actor.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, offers)
}

func (h *AssignmentHandler) Accept(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, domain.UserRoleInterpreter); !ok {
		return
	}
	assignment, err := h.assignments.Accept(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assignment)
}

func (h *AssignmentHandler) Decline(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, domain.UserRoleInterpreter); !ok {
		return
	}
	assignment, err := h.assignments.Decline(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assignment)
}

// CheckConflict reports whether a candidate slot collides with one of the
// interpreter's confirmed bookings. 200 with a null body means the slot is
// clear.
func (h *AssignmentHandler) CheckConflict(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRole(w, r, domain.UserRoleAdmin, domain.UserRoleInterpreter)
	if !ok {
		return
	}
	q := r.URL.Query()
	interpreterID := q.Get("interpreter_id")
	if actor.Role == domain.UserRoleInterpreter {
		interpreterID = actor.ID
	}
	duration, err := strconv.ParseInt(q.Get("duration_minutes"), 10, 32)
	if err != nil {
		writeError(w, domain.NewValidationError("duration_minutes", "must be an integer"))
		return
	}
	conflict, err := h.assignments.CheckConflict(r.Context(), interpreterID,
		q.Get("date"), q.Get("start_time"), int32(duration), q.Get("exclude_booking_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"conflict": conflict})
}
