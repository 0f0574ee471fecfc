package ports

import (
	"context"
	"time"

	"github.com/sirpyerre/proposals-api/internal/core/domain"
)

// UserRepository defines the persistence operations for user accounts.
// Lookups return domain.ErrUserNotFound when nothing matches.
type UserRepository interface {
	// Create inserts the user and returns it with its ID populated. A
	// colliding email or phone number yields a *domain.ValidationError on
	// that field.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByPhoneNumber(ctx context.Context, phone string) (*domain.User, error)
	// FindByIDs returns the users that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}

// TokenDenylist is the persisted set of revoked token identifiers.
type TokenDenylist interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
	// Revoke adds the token to the set. It returns domain.ErrInvalidToken
	// when the identifier was already revoked.
	Revoke(ctx context.Context, token domain.RevokedToken) error
}
