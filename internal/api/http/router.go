package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Booking    *BookingHandler
	Assignment *AssignmentHandler
	Timesheet  *TimesheetHandler
	Invoice    *InvoiceHandler
	Document   *DocumentHandler
	Status     *StatusHandler
	Auth       *AuthMiddleware
}

// NewRouter wires all API routes. Guest booking, the status probe and the
// storage endpoints are public; everything else sits behind the auth
// middleware.
func NewRouter(h *Handlers) *mux.Router {
	router := mux.NewRouter()

	public := router.PathPrefix("/api/v1").Subrouter()
	public.HandleFunc("/status", h.Status.Status).Methods(http.MethodGet)
	public.HandleFunc("/bookings/guest", h.Booking.CreateGuest).Methods(http.MethodPost)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(h.Auth.Authenticate)

	// Bookings
	api.HandleFunc("/bookings", h.Booking.Create).Methods(http.MethodPost)
	api.HandleFunc("/bookings", h.Booking.List).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}", h.Booking.Get).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}", h.Booking.Update).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{id}/status", h.Booking.SetStatus).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/assign", h.Booking.AssignInterpreter).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/cancel", h.Booking.Cancel).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/interpreters", h.Booking.FindInterpreters).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}/offers", h.Assignment.CreateOffer).Methods(http.MethodPost)

	// Offers
	api.HandleFunc("/offers", h.Assignment.ListMyOffers).Methods(http.MethodGet)
	api.HandleFunc("/offers/{id}/accept", h.Assignment.Accept).Methods(http.MethodPost)
	api.HandleFunc("/offers/{id}/decline", h.Assignment.Decline).Methods(http.MethodPost)
	api.HandleFunc("/conflicts", h.Assignment.CheckConflict).Methods(http.MethodGet)

	// Timesheets
	api.HandleFunc("/timesheets", h.Timesheet.Submit).Methods(http.MethodPost)
	api.HandleFunc("/timesheets/pending", h.Timesheet.ListPending).Methods(http.MethodGet)
	api.HandleFunc("/timesheets/uninvoiced", h.Timesheet.ListUninvoiced).Methods(http.MethodGet)
	api.HandleFunc("/timesheets/{id}", h.Timesheet.Get).Methods(http.MethodGet)
	api.HandleFunc("/timesheets/{id}/approve", h.Timesheet.Approve).Methods(http.MethodPost)
	api.HandleFunc("/timesheets/{id}/reject", h.Timesheet.Reject).Methods(http.MethodPost)

	// Invoices
	api.HandleFunc("/invoices/client/generate", h.Invoice.GenerateClientInvoice).Methods(http.MethodPost)
	api.HandleFunc("/invoices/client", h.Invoice.ListClientInvoices).Methods(http.MethodGet)
	api.HandleFunc("/invoices/client/{id}", h.Invoice.GetClientInvoice).Methods(http.MethodGet)
	api.HandleFunc("/invoices/client/{id}/status", h.Invoice.SetClientInvoiceStatus).Methods(http.MethodPost)
	api.HandleFunc("/invoices/interpreter/upload", h.Invoice.SubmitUpload).Methods(http.MethodPost)
	api.HandleFunc("/invoices/interpreter", h.Invoice.ListInterpreterInvoices).Methods(http.MethodGet)
	api.HandleFunc("/invoices/interpreter/{id}", h.Invoice.GetInterpreterInvoice).Methods(http.MethodGet)
	api.HandleFunc("/invoices/interpreter/{id}/status", h.Invoice.SetInterpreterInvoiceStatus).Methods(http.MethodPost)

	// Documents
	api.HandleFunc("/documents/upload-url", h.Document.CreateUploadURL).Methods(http.MethodPost)
	api.HandleFunc("/documents/download-url", h.Document.CreateDownloadURL).Methods(http.MethodGet)
	api.HandleFunc("/documents", h.Document.Delete).Methods(http.MethodDelete)

	return router
}
