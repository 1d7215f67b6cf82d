package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"linguabook-backend/internal/logger"
)

// PostgresStore implements DocStore over a single JSONB documents table,
// for deployments that self-host instead of using the cloud document store.
//
//	CREATE TABLE documents (
//	    collection TEXT NOT NULL,
//	    doc_id     TEXT NOT NULL,
//	    data       JSONB NOT NULL,
//	    PRIMARY KEY (collection, doc_id)
//	);
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FetchCollection(ctx context.Context, name string, filters []Filter, order *Order) ([]Doc, error) {
	query := `SELECT doc_id, data FROM documents WHERE collection = $1`
	args := []interface{}{name}
	argIdx := 2

	for _, f := range filters {
		switch f.Op {
		case "==":
			query += fmt.Sprintf(" AND data->>'%s' = $%d", f.Field, argIdx)
			args = append(args, fmt.Sprint(f.Value))
			argIdx++
		case "in":
			values, ok := f.Value.([]any)
			if !ok {
				return nil, fmt.Errorf("in filter on %q requires a slice value", f.Field)
			}
			strs := make([]string, len(values))
			for i, v := range values {
				strs[i] = fmt.Sprint(v)
			}
			query += fmt.Sprintf(" AND data->>'%s' = ANY($%d)", f.Field, argIdx)
			args = append(args, pq.Array(strs))
			argIdx++
		default:
			return nil, fmt.Errorf("unsupported filter op %q", f.Op)
		}
	}

	if order != nil {
		dir := "ASC"
		if order.Desc {
			dir = "DESC"
		}
		query += fmt.Sprintf(" ORDER BY data->>'%s' %s", order.Field, dir)
	}

	logger.DatabaseCall("FetchCollection", query)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []Doc
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		var data map[string]any
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, err
		}
		docs = append(docs, Doc{ID: id, Data: data})
	}
	return docs, rows.Err()
}

func (s *PostgresStore) FetchOne(ctx context.Context, name, id string) (*Doc, error) {
	var raw []byte
	query := `SELECT data FROM documents WHERE collection = $1 AND doc_id = $2`
	err := s.db.QueryRowContext(ctx, query, name, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return &Doc{ID: id, Data: data}, nil
}

func (s *PostgresStore) Write(ctx context.Context, name, id string, data map[string]any) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	query := `INSERT INTO documents (collection, doc_id, data) VALUES ($1, $2, $3)
	          ON CONFLICT (collection, doc_id) DO UPDATE SET data = EXCLUDED.data`
	if _, err := s.db.ExecContext(ctx, query, name, id, raw); err != nil {
		return "", err
	}
	return id, nil
}

func (s *PostgresStore) Update(ctx context.Context, name, id string, patch map[string]any) error {
	raw, err := json.Marshal(patch)
	if err != nil {
		return err
	}
	query := `UPDATE documents SET data = data || $3::jsonb WHERE collection = $1 AND doc_id = $2`
	res, err := s.db.ExecContext(ctx, query, name, id, raw)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("document %s/%s does not exist", name, id)
	}
	return nil
}

// UpdateIf pushes the guard into the WHERE clause so the check and the
// write are a single statement.
func (s *PostgresStore) UpdateIf(ctx context.Context, name, id string, patch map[string]any, field string, allowed []any) error {
	raw, err := json.Marshal(patch)
	if err != nil {
		return err
	}
	strs := make([]string, len(allowed))
	for i, v := range allowed {
		strs[i] = fmt.Sprint(v)
	}
	query := fmt.Sprintf(`UPDATE documents SET data = data || $3::jsonb
	          WHERE collection = $1 AND doc_id = $2 AND data->>'%s' = ANY($4)`, field)
	res, err := s.db.ExecContext(ctx, query, name, id, raw, pq.Array(strs))
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPreconditionFailed
	}
	return nil
}

func (s *PostgresStore) Probe(ctx context.Context) bool {
	return s.db.PingContext(ctx) == nil
}
