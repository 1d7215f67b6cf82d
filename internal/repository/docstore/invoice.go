package docstore

import (
	"context"
	"time"

	"linguabook-backend/internal/domain"
	"linguabook-backend/internal/repository"
	"linguabook-backend/internal/store"
)

type clientInvoiceRepository struct {
	docs store.DocStore
}

func NewClientInvoiceRepository(docs store.DocStore) repository.ClientInvoiceRepository {
	return &clientInvoiceRepository{docs: docs}
}

func (r *clientInvoiceRepository) Create(ctx context.Context, inv *domain.ClientInvoice) error {
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now().UTC()
	}
	data, err := toDoc(inv)
	if err != nil {
		return err
	}
	id, err := r.docs.Write(ctx, colClientInvoices, inv.ID, data)
	if err != nil {
		return err
	}
	inv.ID = id
	return writeLines(ctx, r.docs, colClientInvoiceLines, id, inv.Lines)
}

func (r *clientInvoiceRepository) GetByID(ctx context.Context, id string) (*domain.ClientInvoice, error) {
	doc, err := r.docs.FetchOne(ctx, colClientInvoices, id)
	if err != nil || doc == nil {
		return nil, err
	}
	inv := &domain.ClientInvoice{}
	if err := fromDoc(doc, inv); err != nil {
		return nil, err
	}
	inv.Lines, err = fetchLines(ctx, r.docs, colClientInvoiceLines, id)
	return inv, err
}

func (r *clientInvoiceRepository) SetStatus(ctx context.Context, id string, status domain.ClientInvoiceStatus) error {
	return r.docs.Update(ctx, colClientInvoices, id, map[string]any{"status": string(status)})
}

func (r *clientInvoiceRepository) ListByClient(ctx context.Context, clientID string) ([]domain.ClientInvoice, error) {
	docs, err := r.docs.FetchCollection(ctx, colClientInvoices,
		[]store.Filter{store.Eq("client_id", clientID)},
		&store.Order{Field: "issue_date", Desc: true})
	if err != nil {
		return nil, err
	}
	var invoices []domain.ClientInvoice
	for i := range docs {
		var inv domain.ClientInvoice
		if err := fromDoc(&docs[i], &inv); err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

func (r *clientInvoiceRepository) ListByStatus(ctx context.Context, status domain.ClientInvoiceStatus) ([]domain.ClientInvoice, error) {
	docs, err := r.docs.FetchCollection(ctx, colClientInvoices,
		[]store.Filter{store.Eq("status", string(status))},
		&store.Order{Field: "due_date", Desc: false})
	if err != nil {
		return nil, err
	}
	var invoices []domain.ClientInvoice
	for i := range docs {
		var inv domain.ClientInvoice
		if err := fromDoc(&docs[i], &inv); err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

type interpreterInvoiceRepository struct {
	docs store.DocStore
}

func NewInterpreterInvoiceRepository(docs store.DocStore) repository.InterpreterInvoiceRepository {
	return &interpreterInvoiceRepository{docs: docs}
}

func (r *interpreterInvoiceRepository) Create(ctx context.Context, inv *domain.InterpreterInvoice) error {
	if inv.SubmittedAt.IsZero() {
		inv.SubmittedAt = time.Now().UTC()
	}
	data, err := toDoc(inv)
	if err != nil {
		return err
	}
	id, err := r.docs.Write(ctx, colInterpreterInvoices, inv.ID, data)
	if err != nil {
		return err
	}
	inv.ID = id
	return writeLines(ctx, r.docs, colInterpreterInvoiceLines, id, inv.Lines)
}

func (r *interpreterInvoiceRepository) GetByID(ctx context.Context, id string) (*domain.InterpreterInvoice, error) {
	doc, err := r.docs.FetchOne(ctx, colInterpreterInvoices, id)
	if err != nil || doc == nil {
		return nil, err
	}
	inv := &domain.InterpreterInvoice{}
	if err := fromDoc(doc, inv); err != nil {
		return nil, err
	}
	inv.Lines, err = fetchLines(ctx, r.docs, colInterpreterInvoiceLines, id)
	return inv, err
}

func (r *interpreterInvoiceRepository) SetStatus(ctx context.Context, id string, status domain.InterpreterInvoiceStatus) error {
	return r.docs.Update(ctx, colInterpreterInvoices, id, map[string]any{"status": string(status)})
}

func (r *interpreterInvoiceRepository) ListByInterpreter(ctx context.Context, interpreterID string) ([]domain.InterpreterInvoice, error) {
	docs, err := r.docs.FetchCollection(ctx, colInterpreterInvoices,
		[]store.Filter{store.Eq("interpreter_id", interpreterID)},
		&store.Order{Field: "submitted_at", Desc: true})
	if err != nil {
		return nil, err
	}
	var invoices []domain.InterpreterInvoice
	for i := range docs {
		var inv domain.InterpreterInvoice
		if err := fromDoc(&docs[i], &inv); err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

func writeLines(ctx context.Context, docs store.DocStore, collection, invoiceID string, lines []domain.InvoiceLine) error {
	for i := range lines {
		lines[i].InvoiceID = invoiceID
		data, err := toDoc(&lines[i])
		if err != nil {
			return err
		}
		id, err := docs.Write(ctx, collection, lines[i].ID, data)
		if err != nil {
			return err
		}
		lines[i].ID = id
	}
	return nil
}

func fetchLines(ctx context.Context, docs store.DocStore, collection, invoiceID string) ([]domain.InvoiceLine, error) {
	lineDocs, err := docs.FetchCollection(ctx, collection,
		[]store.Filter{store.Eq("invoice_id", invoiceID)}, nil)
	if err != nil {
		return nil, err
	}
	var lines []domain.InvoiceLine
	for i := range lineDocs {
		var l domain.InvoiceLine
		if err := fromDoc(&lineDocs[i], &l); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, nil
}
