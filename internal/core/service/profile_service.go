package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/finadvisor/assessment-api/internal/core/domain"
	"github.com/finadvisor/assessment-api/internal/core/ports"
)

// ProfileService handles questionnaire intake. Every submission is a
// merge-patch over the single profile owned by the caller.
type ProfileService struct {
	repo   ports.ProfileRepository
	logger zerolog.Logger
}

func NewProfileService(repo ports.ProfileRepository, logger zerolog.Logger) *ProfileService {
	return &ProfileService{repo: repo, logger: logger}
}

func (s *ProfileService) Submit(ctx context.Context, userID string, fields domain.ProfileFields) (*domain.FinancialProfile, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if fields.IsEmpty() {
		return nil, domain.NewValidationError(domain.FieldError{Field: "body", Message: "at least one field is required"})
	}

	profile, err := s.repo.Upsert(ctx, userID, fields)
	if errors.Is(err, domain.ErrProfileConflict) {
		// Two first-time submissions raced on the unique user index; the
		// loser's retry lands as an update of the winner's document.
		s.logger.Warn().Str("user_id", userID).Msg("profile upsert conflict, retrying once")
		profile, err = s.repo.Upsert(ctx, userID, fields)
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.FinancialProfile, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.FindByUserID(ctx, userID)
}

func (s *ProfileService) Summary(ctx context.Context, userID string) (*domain.FinancialSummary, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary := domain.Summarize(profile.ProfileFields)
	return &summary, nil
}
