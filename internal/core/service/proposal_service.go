package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/proposals-api/internal/core/domain"
	"github.com/sirpyerre/proposals-api/internal/core/ports"
)

type ProposalService struct {
	proposals ports.ProposalRepository
	clients   ports.ClientRepository
	users     ports.UserRepository
	logger    zerolog.Logger
	now       func() time.Time
}

func NewProposalService(
	proposals ports.ProposalRepository,
	clients ports.ClientRepository,
	users ports.UserRepository,
	logger zerolog.Logger,
) *ProposalService {
	return &ProposalService{
		proposals: proposals,
		clients:   clients,
		users:     users,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a proposal owned by ownerID. The referenced client must
// exist but may belong to any user.
func (s *ProposalService) Create(ctx context.Context, ownerID string, input ports.ProposalInput) (*ports.ProposalDetail, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}

	now := s.now()
	p := &domain.Proposal{OwnerID: ownerID, CreatedAt: now, UpdatedAt: now}
	applyProposalInput(p, input)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkClientExists(ctx, p.ClientID); err != nil {
		return nil, err
	}

	if err := s.proposals.Create(ctx, p); err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to create proposal")
		return nil, err
	}

	s.logger.Info().Str("proposal_id", p.ID).Str("client_id", p.ClientID).Str("owner_id", ownerID).Msg("proposal created")
	return s.single(ctx, p)
}

func (s *ProposalService) Get(ctx context.Context, ownerID, id string) (*ports.ProposalDetail, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	p, err := s.proposals.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	return s.single(ctx, p)
}

func (s *ProposalService) List(ctx context.Context, ownerID string) ([]ports.ProposalDetail, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	proposals, err := s.proposals.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, proposals)
}

func (s *ProposalService) Update(ctx context.Context, ownerID, id string, input ports.ProposalInput) (*ports.ProposalDetail, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	p, err := s.proposals.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	previousClient := p.ClientID
	applyProposalInput(p, input)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.ClientID != previousClient {
		if err := s.checkClientExists(ctx, p.ClientID); err != nil {
			return nil, err
		}
	}
	p.UpdatedAt = s.now()

	if err := s.proposals.Update(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info().Str("proposal_id", p.ID).Str("owner_id", ownerID).Msg("proposal updated")
	return s.single(ctx, p)
}

func (s *ProposalService) Delete(ctx context.Context, ownerID, id string) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	if err := s.proposals.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	s.logger.Info().Str("proposal_id", id).Str("owner_id", ownerID).Msg("proposal deleted")
	return nil
}

func (s *ProposalService) AdminDelete(ctx context.Context, id string) error {
	if err := s.proposals.Delete(ctx, id, ""); err != nil {
		return err
	}
	s.logger.Info().Str("proposal_id", id).Msg("proposal deleted by admin")
	return nil
}

// checkClientExists maps a dangling client reference to a field error.
func (s *ProposalService) checkClientExists(ctx context.Context, clientID string) error {
	if _, err := s.clients.FindByID(ctx, clientID, ""); err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return domain.NewValidationError("client_id",
				fmt.Sprintf("Invalid pk %q - object does not exist.", clientID))
		}
		return fmt.Errorf("check client: %w", err)
	}
	return nil
}

func (s *ProposalService) single(ctx context.Context, p *domain.Proposal) (*ports.ProposalDetail, error) {
	out, err := s.details(ctx, []*domain.Proposal{p})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// details resolves the client and author of each proposal with one query
// per collection.
func (s *ProposalService) details(ctx context.Context, proposals []*domain.Proposal) ([]ports.ProposalDetail, error) {
	out := make([]ports.ProposalDetail, len(proposals))
	if len(proposals) == 0 {
		return out, nil
	}

	clientIDs := make([]string, 0, len(proposals))
	for _, p := range proposals {
		clientIDs = append(clientIDs, p.ClientID)
	}
	clients, err := s.clients.FindByIDs(ctx, uniqueIDs(clientIDs))
	if err != nil {
		return nil, fmt.Errorf("resolve clients: %w", err)
	}
	byID := make(map[string]*domain.Client, len(clients))
	for _, c := range clients {
		byID[c.ID] = c
	}

	ownerIDs := make([]string, 0, len(proposals)+len(clients))
	for _, p := range proposals {
		ownerIDs = append(ownerIDs, p.OwnerID)
	}
	for _, c := range clients {
		ownerIDs = append(ownerIDs, c.OwnerID)
	}
	owners, err := resolveOwners(ctx, s.users, ownerIDs)
	if err != nil {
		return nil, err
	}

	for i, p := range proposals {
		client, ok := byID[p.ClientID]
		if !ok {
			client = &domain.Client{ID: p.ClientID}
		}
		out[i] = ports.ProposalDetail{
			Proposal:  p,
			Client:    ports.ClientDetail{Client: client, AddedBy: owners[client.OwnerID]},
			CreatedBy: owners[p.OwnerID],
		}
	}
	return out, nil
}

func applyProposalInput(p *domain.Proposal, in ports.ProposalInput) {
	if in.ClientID != nil {
		p.ClientID = strings.TrimSpace(*in.ClientID)
	}
	if in.Title != nil {
		p.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
}
