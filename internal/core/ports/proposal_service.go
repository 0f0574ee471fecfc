package ports

import (
	"context"

	"github.com/sirpyerre/proposals-api/internal/core/domain"
)

// ProposalInput holds the writable fields of a proposal. Nil pointers are
// left unchanged on update.
type ProposalInput struct {
	ClientID    *string
	Title       *string
	Description *string
}

// ProposalDetail is a proposal with its client and author resolved.
type ProposalDetail struct {
	Proposal  *domain.Proposal
	Client    ClientDetail
	CreatedBy domain.UserSummary
}

// ProposalService defines owner-scoped use cases for proposals.
type ProposalService interface {
	Create(ctx context.Context, ownerID string, input ProposalInput) (*ProposalDetail, error)
	Get(ctx context.Context, ownerID, id string) (*ProposalDetail, error)
	List(ctx context.Context, ownerID string) ([]ProposalDetail, error)
	Update(ctx context.Context, ownerID, id string, input ProposalInput) (*ProposalDetail, error)
	Delete(ctx context.Context, ownerID, id string) error
	AdminDelete(ctx context.Context, id string) error
}
