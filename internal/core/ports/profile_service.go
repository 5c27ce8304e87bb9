package ports

import (
	"context"

	"github.com/finadvisor/assessment-api/internal/core/domain"
)

// ProfileService is the intake side: submitting and reading the questionnaire.
type ProfileService interface {
	Submit(ctx context.Context, userID string, fields domain.ProfileFields) (*domain.FinancialProfile, error)
	Get(ctx context.Context, userID string) (*domain.FinancialProfile, error)
	Summary(ctx context.Context, userID string) (*domain.FinancialSummary, error)
}
