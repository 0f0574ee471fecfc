package ports

import (
	"context"

	"github.com/sirpyerre/proposals-api/internal/core/domain"
)

// CreateUserInput carries the fields accepted at account creation.
// Email and PhoneNumber are optional but at least one must be set.
type CreateUserInput struct {
	Name        string
	Email       string
	PhoneNumber string
	Password    string
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Tokens domain.TokenPair
	User   *domain.User
}

type AuthService interface {
	Register(ctx context.Context, input CreateUserInput) (*AuthResult, error)
	Login(ctx context.Context, identifier, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	Profile(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
}

// TokenVerifier is what the auth middleware needs from the token issuer.
type TokenVerifier interface {
	Verify(token string, want domain.TokenType) (*domain.TokenClaims, error)
}
