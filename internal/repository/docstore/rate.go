package docstore

import (
	"context"

	"linguabook-backend/internal/domain"
	"linguabook-backend/internal/repository"
	"linguabook-backend/internal/store"
)

type rateRepository struct {
	docs store.DocStore
}

func NewRateRepository(docs store.DocStore) repository.RateRepository {
	return &rateRepository{docs: docs}
}

func (r *rateRepository) Get(ctx context.Context, rateType domain.RateType, serviceType string) (*domain.Rate, error) {
	docs, err := r.docs.FetchCollection(ctx, colRates, []store.Filter{
		store.Eq("rate_type", string(rateType)),
		store.Eq("service_type", serviceType),
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	rate := &domain.Rate{}
	if err := fromDoc(&docs[0], rate); err != nil {
		return nil, err
	}
	return rate, nil
}

func (r *rateRepository) List(ctx context.Context) ([]domain.Rate, error) {
	docs, err := r.docs.FetchCollection(ctx, colRates, nil, nil)
	if err != nil {
		return nil, err
	}
	var rates []domain.Rate
	for i := range docs {
		var rate domain.Rate
		if err := fromDoc(&docs[i], &rate); err != nil {
			return nil, err
		}
		rates = append(rates, rate)
	}
	return rates, nil
}
