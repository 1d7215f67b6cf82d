package docstore

import (
	"context"
	"time"

	"linguabook-backend/internal/domain"
	"linguabook-backend/internal/repository"
	"linguabook-backend/internal/store"
)

type bookingRepository struct {
	docs store.DocStore
}

func NewBookingRepository(docs store.DocStore) repository.BookingRepository {
	return &bookingRepository{docs: docs}
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	data, err := toDoc(b)
	if err != nil {
		return err
	}
	id, err := r.docs.Write(ctx, colBookings, b.ID, data)
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	doc, err := r.docs.FetchOne(ctx, colBookings, id)
	if err != nil || doc == nil {
		return nil, err
	}
	b := &domain.Booking{}
	if err := fromDoc(doc, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	b.UpdatedAt = time.Now().UTC()
	data, err := toDoc(b)
	if err != nil {
		return err
	}
	_, err = r.docs.Write(ctx, colBookings, b.ID, data)
	return err
}

func (r *bookingRepository) SetStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	return r.docs.Update(ctx, colBookings, id, map[string]any{
		"status":     string(status),
		"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func (r *bookingRepository) AssignInterpreter(ctx context.Context, id string, status domain.BookingStatus, interpreterID, interpreterName string) error {
	return r.docs.Update(ctx, colBookings, id, map[string]any{
		"status":           string(status),
		"interpreter_id":   interpreterID,
		"interpreter_name": interpreterName,
		"updated_at":       time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func (r *bookingRepository) ConfirmIf(ctx context.Context, id string, interpreterID, interpreterName string, allowed []domain.BookingStatus) error {
	allowedVals := make([]any, len(allowed))
	for i, s := range allowed {
		allowedVals[i] = string(s)
	}
	patch := map[string]any{
		"status":           string(domain.BookingStatusConfirmed),
		"interpreter_id":   interpreterID,
		"interpreter_name": interpreterName,
		"updated_at":       time.Now().UTC().Format(time.RFC3339Nano),
	}
	return r.docs.UpdateIf(ctx, colBookings, id, patch, "status", allowedVals)
}

func (r *bookingRepository) ListByClient(ctx context.Context, clientID string) ([]domain.Booking, error) {
	docs, err := r.docs.FetchCollection(ctx, colBookings,
		[]store.Filter{store.Eq("client_id", clientID)},
		&store.Order{Field: "date", Desc: true})
	if err != nil {
		return nil, err
	}
	return decodeBookings(docs)
}

func (r *bookingRepository) ListByStatus(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	docs, err := r.docs.FetchCollection(ctx, colBookings,
		[]store.Filter{store.Eq("status", string(status))},
		&store.Order{Field: "date", Desc: false})
	if err != nil {
		return nil, err
	}
	return decodeBookings(docs)
}

func (r *bookingRepository) ListConfirmedByInterpreterAndDate(ctx context.Context, interpreterID, date string) ([]domain.Booking, error) {
	docs, err := r.docs.FetchCollection(ctx, colBookings, []store.Filter{
		store.Eq("interpreter_id", interpreterID),
		store.Eq("status", string(domain.BookingStatusConfirmed)),
		store.Eq("date", date),
	}, nil)
	if err != nil {
		return nil, err
	}
	return decodeBookings(docs)
}

func decodeBookings(docs []store.Doc) ([]domain.Booking, error) {
	var bookings []domain.Booking
	for i := range docs {
		var b domain.Booking
		if err := fromDoc(&docs[i], &b); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}
