// Package docstore implements the repositories over the document store
// adapter, so the same code serves the Firestore, Postgres and in-memory
// backends.
package docstore

import (
	"encoding/json"

	"linguabook-backend/internal/repository"
	"linguabook-backend/internal/store"
)

// Collection names, matching the persisted layout.
const (
	colBookings                = "bookings"
	colAssignments             = "assignments"
	colTimesheets              = "timesheets"
	colClientInvoices          = "clientInvoices"
	colClientInvoiceLines      = "clientInvoiceLines"
	colInterpreterInvoices     = "interpreterInvoices"
	colInterpreterInvoiceLines = "interpreterInvoiceLines"
	colUsers                   = "users"
	colClients                 = "clients"
	colInterpreters            = "interpreters"
	colRates                   = "rates"
)

type Store struct {
	docs store.DocStore
	repository.BookingRepository
	repository.AssignmentRepository
	repository.TimesheetRepository
	repository.ClientInvoiceRepository
	repository.InterpreterInvoiceRepository
	repository.RateRepository
	repository.UserRepository
}

func NewStore(docs store.DocStore) *Store {
	return &Store{
		docs:                         docs,
		BookingRepository:            NewBookingRepository(docs),
		AssignmentRepository:         NewAssignmentRepository(docs),
		TimesheetRepository:          NewTimesheetRepository(docs),
		ClientInvoiceRepository:      NewClientInvoiceRepository(docs),
		InterpreterInvoiceRepository: NewInterpreterInvoiceRepository(docs),
		RateRepository:               NewRateRepository(docs),
		UserRepository:               NewUserRepository(docs),
	}
}

// toDoc flattens an entity into a document body via its JSON tags. The id
// is kept out of the body; the store keys documents by id already.
func toDoc(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	delete(data, "id")
	return data, nil
}

// fromDoc rebuilds an entity from a document, restoring the id field.
func fromDoc(doc *store.Doc, v any) error {
	data := make(map[string]any, len(doc.Data)+1)
	for k, val := range doc.Data {
		data[k] = val
	}
	data["id"] = doc.ID
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
