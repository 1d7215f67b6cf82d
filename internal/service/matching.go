package service

import (
	"context"
	"strings"

	"linguabook-backend/internal/domain"
	"linguabook-backend/internal/repository"
	"linguabook-backend/internal/utils"
)

type matchingService struct {
	bookingRepo repository.BookingRepository
	userRepo    repository.UserRepository
}

func NewMatchingService(bookingRepo repository.BookingRepository, userRepo repository.UserRepository) MatchingService {
	return &matchingService{
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
	}
}

func (s *matchingService) FindInterpreters(ctx context.Context, bookingID string) ([]domain.Interpreter, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, domain.NewNotFoundError("booking", bookingID)
	}

	interpreters, err := s.userRepo.ListInterpreters(ctx)
	if err != nil {
		return nil, err
	}

	var matches []domain.Interpreter
	for i := range interpreters {
		interp := &interpreters[i]
		if !interp.Active {
			continue
		}
		if !utils.LanguageMatches(interp.Languages, booking.TargetLanguage) {
			continue
		}
		if booking.GenderPreference != "" && !strings.EqualFold(interp.Gender, booking.GenderPreference) {
			continue
		}
		matches = append(matches, *interp)
	}
	return matches, nil
}
