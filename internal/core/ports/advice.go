package ports

import (
	"context"

	"github.com/finadvisor/assessment-api/internal/core/domain"
)

// AdviceGateway wraps the remote text-generation model. Implementations fail
// with domain.ErrUpstream or domain.ErrSchemaViolation and never retry.
type AdviceGateway interface {
	InvestmentAdvice(ctx context.Context, snapshot domain.ProfileFields, category domain.InvestmentCategory) (*domain.AdviceResult, error)
	GoalCompletion(ctx context.Context, snapshot domain.ProfileFields) (*domain.GoalAnalysis, error)
}

// AdviceQuota limits how many generation requests a user may issue per window.
type AdviceQuota interface {
	Allow(ctx context.Context, userID string) (bool, error)
}

// AdviceRequest carries the caller's identity, the requested category and
// optional profile fields that override the stored snapshot for this call only.
type AdviceRequest struct {
	UserID    string
	Category  domain.InvestmentCategory
	Overrides domain.ProfileFields
}

// AdviceService is the advice side: it never writes the profile.
type AdviceService interface {
	InvestmentAdvice(ctx context.Context, req AdviceRequest) (*domain.AdviceResult, error)
	GoalAnalysis(ctx context.Context, req AdviceRequest) (*domain.GoalAnalysis, error)
}
