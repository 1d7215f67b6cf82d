package docstore

import (
	"context"
	"time"

	"linguabook-backend/internal/domain"
	"linguabook-backend/internal/repository"
	"linguabook-backend/internal/store"
)

type timesheetRepository struct {
	docs store.DocStore
}

func NewTimesheetRepository(docs store.DocStore) repository.TimesheetRepository {
	return &timesheetRepository{docs: docs}
}

func (r *timesheetRepository) Create(ctx context.Context, t *domain.Timesheet) error {
	if t.SubmittedAt.IsZero() {
		t.SubmittedAt = time.Now().UTC()
	}
	data, err := toDoc(t)
	if err != nil {
		return err
	}
	id, err := r.docs.Write(ctx, colTimesheets, t.ID, data)
	if err != nil {
		return err
	}
	t.ID = id
	return nil
}

func (r *timesheetRepository) GetByID(ctx context.Context, id string) (*domain.Timesheet, error) {
	doc, err := r.docs.FetchOne(ctx, colTimesheets, id)
	if err != nil || doc == nil {
		return nil, err
	}
	t := &domain.Timesheet{}
	if err := fromDoc(doc, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *timesheetRepository) Update(ctx context.Context, t *domain.Timesheet) error {
	data, err := toDoc(t)
	if err != nil {
		return err
	}
	_, err = r.docs.Write(ctx, colTimesheets, t.ID, data)
	return err
}

func (r *timesheetRepository) ListPendingApproval(ctx context.Context) ([]domain.Timesheet, error) {
	docs, err := r.docs.FetchCollection(ctx, colTimesheets, []store.Filter{
		store.Eq("status", string(domain.TimesheetStatusSubmitted)),
		store.Eq("admin_approved", false),
	}, &store.Order{Field: "submitted_at", Desc: false})
	if err != nil {
		return nil, err
	}
	return decodeTimesheets(docs)
}

// The unlinked filters rely on invoice id fields being stored as empty
// strings until generation links them; a linked timesheet never matches
// again, which is what prevents double billing.

func (r *timesheetRepository) ListApprovedUnlinkedForClient(ctx context.Context, clientID string) ([]domain.Timesheet, error) {
	docs, err := r.docs.FetchCollection(ctx, colTimesheets, []store.Filter{
		store.Eq("client_id", clientID),
		store.Eq("status", string(domain.TimesheetStatusApproved)),
		store.Eq("client_invoice_id", ""),
	}, nil)
	if err != nil {
		return nil, err
	}
	return decodeTimesheets(docs)
}

func (r *timesheetRepository) ListApprovedUnlinkedForInterpreter(ctx context.Context, interpreterID string) ([]domain.Timesheet, error) {
	docs, err := r.docs.FetchCollection(ctx, colTimesheets, []store.Filter{
		store.Eq("interpreter_id", interpreterID),
		store.Eq("status", string(domain.TimesheetStatusApproved)),
		store.Eq("interpreter_invoice_id", ""),
	}, nil)
	if err != nil {
		return nil, err
	}
	return decodeTimesheets(docs)
}

func decodeTimesheets(docs []store.Doc) ([]domain.Timesheet, error) {
	var timesheets []domain.Timesheet
	for i := range docs {
		var t domain.Timesheet
		if err := fromDoc(&docs[i], &t); err != nil {
			return nil, err
		}
		timesheets = append(timesheets, t)
	}
	return timesheets, nil
}
