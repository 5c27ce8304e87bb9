package ports

import (
	"context"

	"github.com/finadvisor/assessment-api/internal/core/domain"
)

// ProfileRepository stores exactly one financial profile per user.
type ProfileRepository interface {
	// Upsert atomically creates the profile seeded with fields, or merges
	// fields into the existing one, and returns the resulting document.
	Upsert(ctx context.Context, userID string, fields domain.ProfileFields) (*domain.FinancialProfile, error)
	// FindByUserID returns domain.ErrProfileNotFound when nothing was submitted yet.
	FindByUserID(ctx context.Context, userID string) (*domain.FinancialProfile, error)
}
