package ports

import (
	"context"

	"github.com/sirpyerre/proposals-api/internal/core/domain"
)

// ClientRepository defines persistence operations for clients.
// Wherever an ownerID is taken, a non-empty value restricts the query to
// that owner and an empty value applies no owner filter (admin paths only).
type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) error
	FindByID(ctx context.Context, id, ownerID string) (*domain.Client, error)
	// FindByIDs is unscoped; it resolves clients embedded in proposals.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Client, error)
	// List returns the owner's clients ordered by company name.
	List(ctx context.Context, ownerID string) ([]*domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
	// Delete removes the client and all of its proposals atomically.
	Delete(ctx context.Context, id, ownerID string) error
}

// ProposalRepository defines persistence operations for proposals.
// ownerID follows the same convention as ClientRepository.
type ProposalRepository interface {
	Create(ctx context.Context, p *domain.Proposal) error
	FindByID(ctx context.Context, id, ownerID string) (*domain.Proposal, error)
	// List returns the owner's proposals, newest first.
	List(ctx context.Context, ownerID string) ([]*domain.Proposal, error)
	Update(ctx context.Context, p *domain.Proposal) error
	Delete(ctx context.Context, id, ownerID string) error
}
