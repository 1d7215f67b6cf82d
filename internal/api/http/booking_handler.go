package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"linguabook-backend/internal/domain"
	"linguabook-backend/internal/service"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	bookings service.BookingService
	matching service.MatchingService
}

func NewBookingHandler(bookings service.BookingService, matching service.MatchingService) *BookingHandler {
	return &BookingHandler{bookings: bookings, matching: matching}
}

type bookingDraftRequest struct {
	ClientID         string `json:"client_id"`
	ClientName       string `json:"client_name"`
	ServiceType      string `json:"service_type"`
	SourceLanguage   string `json:"source_language"`
	TargetLanguage   string `json:"target_language"`
	Date             string `json:"date"`
	StartTime        string `json:"start_time"`
	DurationMinutes  int32  `json:"duration_minutes"`
	LocationMode     string `json:"location_mode"`
	Address          string `json:"address"`
	Postcode         string `json:"postcode"`
	MeetingLink      string `json:"meeting_link"`
	CostCode         string `json:"cost_code"`
	CaseType         string `json:"case_type"`
	Notes            string `json:"notes"`
	GenderPreference string `json:"gender_preference"`
}

func (req *bookingDraftRequest) toDraft() *service.BookingDraft {
	return &service.BookingDraft{
		ClientID:         req.ClientID,
		ClientName:       req.ClientName,
		ServiceType:      req.ServiceType,
		SourceLanguage:   req.SourceLanguage,
		TargetLanguage:   req.TargetLanguage,
		Date:             req.Date,
		StartTime:        req.StartTime,
		DurationMinutes:  req.DurationMinutes,
		LocationMode:     domain.LocationMode(req.LocationMode),
		Address:          req.Address,
		Postcode:         req.Postcode,
		MeetingLink:      req.MeetingLink,
		CostCode:         req.CostCode,
		CaseType:         req.CaseType,
		Notes:            req.Notes,
		GenderPreference: req.GenderPreference,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRole(w, r, domain.UserRoleClient, domain.UserRoleAdmin)
	if !ok {
		return
	}
	var req bookingDraftRequest
	if !decodeBody(w, r, &req) {
		return
	}
	booking, err := h.bookings.Create(r.Context(), actor, req.toDraft())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

// CreateGuest takes unauthenticated bookings; the response carries the
// reference code the guest quotes later.
func (h *BookingHandler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	var req bookingDraftRequest
	if !decodeBody(w, r, &req) {
		return
	}
	booking, err := h.bookings.CreateGuest(r.Context(), req.toDraft())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	booking, err := h.bookings.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if booking == nil {
		writeError(w, domain.NewNotFoundError("booking", id))
		return
	}
	actor := actorFrom(r)
	if actor.Role == domain.UserRoleClient && booking.ClientID != actor.ID {
		writeError(w, domain.NewNotFoundError("booking", id))
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r)
	clientID := r.URL.Query().Get("client_id")
	switch actor.Role {
	case domain.UserRoleClient:
		clientID = actor.ID
	case domain.UserRoleAdmin:
		if clientID == "" {
			writeError(w, domain.NewValidationError("client_id", "client id is required"))
			return
		}
	default:
		writeJSON(w, http.StatusForbidden, errorResponse{Error: errorBody{
			Kind: "forbidden", Message: "insufficient role for this operation",
		}})
		return
	}
	bookings, err := h.bookings.ListByClient(r.Context(), clientID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRole(w, r, domain.UserRoleAdmin)
	if !ok {
		return
	}
	var update service.BookingUpdate
	if !decodeBody(w, r, &update) {
		return
	}
	booking, err := h.bookings.Update(r.Context(), actor, mux.Vars(r)["id"], &update)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, domain.UserRoleAdmin); !ok {
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	booking, err := h.bookings.SetStatus(r.Context(), mux.Vars(r)["id"], domain.BookingStatus(req.Status))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) AssignInterpreter(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, domain.UserRoleAdmin); !ok {
		return
	}
	var req struct {
		InterpreterID string `json:"interpreter_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	booking, err := h.bookings.AssignInterpreter(r.Context(), mux.Vars(r)["id"], req.InterpreterID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRole(w, r, domain.UserRoleClient, domain.UserRoleAdmin)
	if !ok {
		return
	}
	booking, err := h.bookings.Cancel(r.Context(), actor, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// FindInterpreters returns the interpreters eligible for a booking.
func (h *BookingHandler) FindInterpreters(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, domain.UserRoleAdmin); !ok {
		return
	}
	interpreters, err := h.matching.FindInterpreters(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, interpreters)
}
