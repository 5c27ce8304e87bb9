package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/finadvisor/assessment-api/internal/core/domain"
	"github.com/finadvisor/assessment-api/internal/core/ports"
)

// AdviceService builds a profile snapshot and asks the gateway for advice.
// It reads profiles but never writes them.
type AdviceService struct {
	profiles ports.ProfileRepository
	gateway  ports.AdviceGateway
	quota    ports.AdviceQuota
	logger   zerolog.Logger
}

// NewAdviceService wires the advice workflow. quota may be nil, which disables
// per-user limiting.
func NewAdviceService(profiles ports.ProfileRepository, gateway ports.AdviceGateway, quota ports.AdviceQuota, logger zerolog.Logger) *AdviceService {
	return &AdviceService{profiles: profiles, gateway: gateway, quota: quota, logger: logger}
}

func (s *AdviceService) InvestmentAdvice(ctx context.Context, req ports.AdviceRequest) (*domain.AdviceResult, error) {
	if req.Category == "" {
		return nil, domain.NewValidationError(domain.FieldError{Field: "investmentPreference", Message: "investmentPreference is required"})
	}
	snapshot, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	advice, err := s.gateway.InvestmentAdvice(ctx, snapshot, req.Category)
	if err != nil {
		return nil, fmt.Errorf("investment advice for %q: %w", req.Category, err)
	}
	advice.InvestmentType = req.Category
	return advice, nil
}

func (s *AdviceService) GoalAnalysis(ctx context.Context, req ports.AdviceRequest) (*domain.GoalAnalysis, error) {
	snapshot, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	analysis, err := s.gateway.GoalCompletion(ctx, snapshot)
	if err != nil {
		return nil, fmt.Errorf("goal analysis: %w", err)
	}

	// A user with liquid savings has made some progress; an all-zero answer
	// for them is the model failing quietly.
	if analysis.IsDegenerate() && domain.Summarize(snapshot).LiquidAssets.IsPositive() {
		return nil, fmt.Errorf("goal analysis: degenerate result: %w", domain.ErrSchemaViolation)
	}
	return analysis, nil
}

// prepare resolves the caller's snapshot and consumes one unit of quota.
func (s *AdviceService) prepare(ctx context.Context, req ports.AdviceRequest) (domain.ProfileFields, error) {
	if req.UserID == "" {
		return domain.ProfileFields{}, domain.ErrUnauthorized
	}

	snapshot, err := s.snapshot(ctx, req)
	if err != nil {
		return domain.ProfileFields{}, err
	}

	if err := s.checkQuota(ctx, req.UserID); err != nil {
		return domain.ProfileFields{}, err
	}
	return snapshot, nil
}

func (s *AdviceService) snapshot(ctx context.Context, req ports.AdviceRequest) (domain.ProfileFields, error) {
	var snapshot domain.ProfileFields

	profile, err := s.profiles.FindByUserID(ctx, req.UserID)
	switch {
	case err == nil:
		snapshot = profile.ProfileFields.Clone()
	case errors.Is(err, domain.ErrProfileNotFound):
		s.logger.Info().Str("user_id", req.UserID).Msg("no stored profile, generating advice from request data only")
	default:
		return domain.ProfileFields{}, fmt.Errorf("load profile: %w", err)
	}

	snapshot.Merge(req.Overrides)
	return snapshot, nil
}

func (s *AdviceService) checkQuota(ctx context.Context, userID string) error {
	if s.quota == nil {
		return nil
	}
	allowed, err := s.quota.Allow(ctx, userID)
	if err != nil {
		// Fail open on quota store errors.
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("advice quota check failed, allowing request")
		return nil
	}
	if !allowed {
		return domain.ErrQuotaExceeded
	}
	return nil
}
