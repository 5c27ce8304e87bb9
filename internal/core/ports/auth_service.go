package ports

import (
	"context"

	"github.com/finadvisor/assessment-api/internal/core/domain"
)

// TokenVerifier validates bearer tokens. The auth middleware depends only on this.
type TokenVerifier interface {
	VerifyToken(token string) (*domain.Claims, error)
}

type AuthService interface {
	TokenVerifier
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	IssueToken(user *domain.User) (string, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
}
