package ports

import (
	"context"

	"github.com/finadvisor/assessment-api/internal/core/domain"
)

// UserRepository defines persistence for user identities.
type UserRepository interface {
	// Create fails with domain.ErrUserExists when the email is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
