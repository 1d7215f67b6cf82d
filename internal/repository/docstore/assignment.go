package docstore

import (
	"context"
	"time"

	"linguabook-backend/internal/domain"
	"linguabook-backend/internal/repository"
	"linguabook-backend/internal/store"
)

type assignmentRepository struct {
	docs store.DocStore
}

func NewAssignmentRepository(docs store.DocStore) repository.AssignmentRepository {
	return &assignmentRepository{docs: docs}
}

func (r *assignmentRepository) Create(ctx context.Context, a *domain.Assignment) error {
	if a.OfferedAt.IsZero() {
		a.OfferedAt = time.Now().UTC()
	}
	data, err := toDoc(a)
	if err != nil {
		return err
	}
	id, err := r.docs.Write(ctx, colAssignments, a.ID, data)
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

func (r *assignmentRepository) GetByID(ctx context.Context, id string) (*domain.Assignment, error) {
	doc, err := r.docs.FetchOne(ctx, colAssignments, id)
	if err != nil || doc == nil {
		return nil, err
	}
	a := &domain.Assignment{}
	if err := fromDoc(doc, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *assignmentRepository) Update(ctx context.Context, a *domain.Assignment) error {
	data, err := toDoc(a)
	if err != nil {
		return err
	}
	_, err = r.docs.Write(ctx, colAssignments, a.ID, data)
	return err
}

func (r *assignmentRepository) ListByBooking(ctx context.Context, bookingID string) ([]domain.Assignment, error) {
	docs, err := r.docs.FetchCollection(ctx, colAssignments,
		[]store.Filter{store.Eq("booking_id", bookingID)}, nil)
	if err != nil {
		return nil, err
	}
	return decodeAssignments(docs)
}

func (r *assignmentRepository) ListOfferedForInterpreter(ctx context.Context, interpreterID string) ([]domain.Assignment, error) {
	docs, err := r.docs.FetchCollection(ctx, colAssignments, []store.Filter{
		store.Eq("interpreter_id", interpreterID),
		store.Eq("status", string(domain.AssignmentStatusOffered)),
	}, &store.Order{Field: "offered_at", Desc: true})
	if err != nil {
		return nil, err
	}
	return decodeAssignments(docs)
}

func (r *assignmentRepository) ListByStatus(ctx context.Context, status domain.AssignmentStatus) ([]domain.Assignment, error) {
	docs, err := r.docs.FetchCollection(ctx, colAssignments,
		[]store.Filter{store.Eq("status", string(status))}, nil)
	if err != nil {
		return nil, err
	}
	return decodeAssignments(docs)
}

func decodeAssignments(docs []store.Doc) ([]domain.Assignment, error) {
	var assignments []domain.Assignment
	for i := range docs {
		var a domain.Assignment
		if err := fromDoc(&docs[i], &a); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, nil
}
