package store

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestPostgresStore_FetchCollection(t *testing.T) {
	ctx := context.Background()

	t.Run("Equality Filters And Order", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		s := NewPostgresStore(db)

		rows := sqlmock.NewRows([]string{"doc_id", "data"}).
			AddRow("b1", []byte(`{"status":"CONFIRMED","date":"2026-09-14"}`)).
			AddRow("b2", []byte(`{"status":"CONFIRMED","date":"2026-09-15"}`))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT doc_id, data FROM documents WHERE collection = $1 AND data->>'status' = $2 ORDER BY data->>'date' ASC`)).
			WithArgs("bookings", "CONFIRMED").
			WillReturnRows(rows)

		docs, err := s.FetchCollection(ctx, "bookings", []Filter{Eq("status", "CONFIRMED")}, &Order{Field: "date"})
		assert.NoError(t, err)
		assert.Len(t, docs, 2)
		assert.Equal(t, "b1", docs[0].ID)
		assert.Equal(t, "CONFIRMED", docs[0].Data["status"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("In Filter Uses Array Binding", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		s := NewPostgresStore(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT doc_id, data FROM documents WHERE collection = $1 AND data->>'status' = ANY($2)`)).
			WithArgs("bookings", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"doc_id", "data"}))

		docs, err := s.FetchCollection(ctx, "bookings", []Filter{
			In("status", []any{"OFFERED", "SEARCHING"}),
		}, nil)
		assert.NoError(t, err)
		assert.Empty(t, docs)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unsupported Operator", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		s := NewPostgresStore(db)

		_, err = s.FetchCollection(ctx, "bookings", []Filter{{Field: "date", Op: ">", Value: "x"}}, nil)
		assert.Error(t, err)
	})
}

func TestPostgresStore_FetchOne(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	s := NewPostgresStore(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT data FROM documents WHERE collection = $1 AND doc_id = $2`)).
		WithArgs("bookings", "b1").
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow([]byte(`{"status":"REQUESTED"}`)))

	doc, err := s.FetchOne(ctx, "bookings", "b1")
	assert.NoError(t, err)
	assert.Equal(t, "REQUESTED", doc.Data["status"])

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT data FROM documents WHERE collection = $1 AND doc_id = $2`)).
		WithArgs("bookings", "missing").
		WillReturnRows(sqlmock.NewRows([]string{"data"}))

	doc, err = s.FetchOne(ctx, "bookings", "missing")
	assert.NoError(t, err)
	assert.Nil(t, doc)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Write(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	s := NewPostgresStore(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO documents (collection, doc_id, data) VALUES ($1, $2, $3)`)).
		WithArgs("bookings", "b1", []byte(`{"status":"REQUESTED"}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := s.Write(ctx, "bookings", "b1", map[string]any{"status": "REQUESTED"})
	assert.NoError(t, err)
	assert.Equal(t, "b1", id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_WriteGeneratesID(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	s := NewPostgresStore(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO documents`)).
		WithArgs("bookings", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := s.Write(ctx, "bookings", "", map[string]any{"status": "REQUESTED"})
	assert.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Update(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	s := NewPostgresStore(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE documents SET data = data || $3::jsonb WHERE collection = $1 AND doc_id = $2`)).
		WithArgs("bookings", "b1", []byte(`{"status":"SEARCHING"}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = s.Update(ctx, "bookings", "b1", map[string]any{"status": "SEARCHING"})
	assert.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE documents SET data = data || $3::jsonb`)).
		WithArgs("bookings", "missing", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = s.Update(ctx, "bookings", "missing", map[string]any{"status": "SEARCHING"})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateIf(t *testing.T) {
	ctx := context.Background()

	t.Run("Guard In Where Clause", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		s := NewPostgresStore(db)

		mock.ExpectExec(regexp.QuoteMeta(`data->>'status' = ANY($4)`)).
			WithArgs("bookings", "b1", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = s.UpdateIf(ctx, "bookings", "b1",
			map[string]any{"status": "CONFIRMED"},
			"status", []any{"OFFERED", "SEARCHING"})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Zero Rows Means Precondition Failed", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		s := NewPostgresStore(db)

		mock.ExpectExec(regexp.QuoteMeta(`data->>'status' = ANY($4)`)).
			WithArgs("bookings", "b1", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = s.UpdateIf(ctx, "bookings", "b1",
			map[string]any{"status": "CONFIRMED"},
			"status", []any{"OFFERED"})
		assert.Equal(t, ErrPreconditionFailed, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresStore_Probe(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	assert.NoError(t, err)
	defer db.Close()
	s := NewPostgresStore(db)

	mock.ExpectPing()
	assert.True(t, s.Probe(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}
