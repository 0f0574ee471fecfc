package ports

import (
	"context"

	"github.com/sirpyerre/proposals-api/internal/core/domain"
)

// ClientInput holds the writable fields of a client. On update a nil
// pointer leaves the stored value unchanged and an empty string clears it.
type ClientInput struct {
	CompanyName *string
	Address     *string
	PhoneNumber *string
	Email       *string
}

// ClientDetail is a client together with the user who added it.
type ClientDetail struct {
	Client  *domain.Client
	AddedBy domain.UserSummary
}

// ClientService defines owner-scoped use cases for clients. The requester
// is always passed explicitly as ownerID.
type ClientService interface {
	Create(ctx context.Context, ownerID string, input ClientInput) (*ClientDetail, error)
	Get(ctx context.Context, ownerID, id string) (*ClientDetail, error)
	List(ctx context.Context, ownerID string) ([]ClientDetail, error)
	Update(ctx context.Context, ownerID, id string, input ClientInput) (*ClientDetail, error)
	Delete(ctx context.Context, ownerID, id string) error
	// AdminDelete removes any client regardless of owner.
	AdminDelete(ctx context.Context, id string) error
}
