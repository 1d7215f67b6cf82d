package docstore

import (
	"context"

	"linguabook-backend/internal/domain"
	"linguabook-backend/internal/repository"
	"linguabook-backend/internal/store"
)

type userRepository struct {
	docs store.DocStore
}

func NewUserRepository(docs store.DocStore) repository.UserRepository {
	return &userRepository{docs: docs}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	doc, err := r.docs.FetchOne(ctx, colUsers, id)
	if err != nil || doc == nil {
		return nil, err
	}
	u := &domain.User{}
	if err := fromDoc(doc, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	doc, err := r.docs.FetchOne(ctx, colClients, id)
	if err != nil || doc == nil {
		return nil, err
	}
	c := &domain.Client{}
	if err := fromDoc(doc, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *userRepository) GetInterpreter(ctx context.Context, id string) (*domain.Interpreter, error) {
	doc, err := r.docs.FetchOne(ctx, colInterpreters, id)
	if err != nil || doc == nil {
		return nil, err
	}
	i := &domain.Interpreter{}
	if err := fromDoc(doc, i); err != nil {
		return nil, err
	}
	return i, nil
}

func (r *userRepository) ListInterpreters(ctx context.Context) ([]domain.Interpreter, error) {
	docs, err := r.docs.FetchCollection(ctx, colInterpreters,
		[]store.Filter{store.Eq("active", true)}, nil)
	if err != nil {
		return nil, err
	}
	var interpreters []domain.Interpreter
	for i := range docs {
		var in domain.Interpreter
		if err := fromDoc(&docs[i], &in); err != nil {
			return nil, err
		}
		interpreters = append(interpreters, in)
	}
	return interpreters, nil
}
