package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"linguabook-backend/internal/logger"
)

// FirestoreStore implements DocStore against the remote Firestore project.
// This is the system of record; the fallback layer mirrors it locally.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore connects to the configured Firebase project. The
// credentials file is optional; without it the SDK uses application default
// credentials.
func NewFirestoreStore(ctx context.Context, projectID, credentialsFile string) (*FirestoreStore, error) {
	conf := &firebase.Config{ProjectID: projectID}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firestore client: %w", err)
	}
	return &FirestoreStore{client: client}, nil
}

func (s *FirestoreStore) FetchCollection(ctx context.Context, name string, filters []Filter, order *Order) ([]Doc, error) {
	logger.DatabaseCall("FetchCollection", name)
	q := s.client.Collection(name).Query
	for _, f := range filters {
		q = q.Where(f.Field, f.Op, f.Value)
	}
	if order != nil {
		dir := firestore.Asc
		if order.Desc {
			dir = firestore.Desc
		}
		q = q.OrderBy(order.Field, dir)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var docs []Doc
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.DatabaseResult("FetchCollection", int64(len(docs)), err, "collection", name)
			return nil, err
		}
		docs = append(docs, Doc{ID: snap.Ref.ID, Data: snap.Data()})
	}
	logger.DatabaseResult("FetchCollection", int64(len(docs)), nil, "collection", name)
	return docs, nil
}

func (s *FirestoreStore) FetchOne(ctx context.Context, name, id string) (*Doc, error) {
	snap, err := s.client.Collection(name).Doc(id).Get(ctx)
	if snap != nil && !snap.Exists() {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &Doc{ID: snap.Ref.ID, Data: snap.Data()}, nil
}

func (s *FirestoreStore) Write(ctx context.Context, name, id string, data map[string]any) (string, error) {
	col := s.client.Collection(name)
	ref := col.NewDoc()
	if id != "" {
		ref = col.Doc(id)
	}
	if _, err := ref.Set(ctx, data); err != nil {
		return "", err
	}
	return ref.ID, nil
}

func (s *FirestoreStore) Update(ctx context.Context, name, id string, patch map[string]any) error {
	_, err := s.client.Collection(name).Doc(id).Set(ctx, patch, firestore.MergeAll)
	return err
}

// UpdateIf runs a transaction so the guard and the write commit atomically;
// Firestore aborts and retries the transaction on contention, which gives
// accept-first-wins across concurrent callers.
func (s *FirestoreStore) UpdateIf(ctx context.Context, name, id string, patch map[string]any, field string, allowed []any) error {
	ref := s.client.Collection(name).Doc(id)
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if snap != nil && !snap.Exists() {
			return ErrPreconditionFailed
		}
		if err != nil {
			return err
		}
		if !matchFilter(snap.Data(), In(field, allowed)) {
			return ErrPreconditionFailed
		}
		return tx.Set(ref, patch, firestore.MergeAll)
	})
}

// Probe reads the settings document; any response, including not-found,
// proves the store is reachable.
func (s *FirestoreStore) Probe(ctx context.Context) bool {
	snap, err := s.client.Collection("system").Doc("settings").Get(ctx)
	if snap != nil && !snap.Exists() {
		return true
	}
	return err == nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}
