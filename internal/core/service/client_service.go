package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/proposals-api/internal/core/domain"
	"github.com/sirpyerre/proposals-api/internal/core/ports"
)

type ClientService struct {
	clients ports.ClientRepository
	users   ports.UserRepository
	logger  zerolog.Logger
	now     func() time.Time
}

func NewClientService(clients ports.ClientRepository, users ports.UserRepository, logger zerolog.Logger) *ClientService {
	return &ClientService{
		clients: clients,
		users:   users,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a new client owned by ownerID.
func (s *ClientService) Create(ctx context.Context, ownerID string, input ports.ClientInput) (*ports.ClientDetail, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}

	now := s.now()
	client := &domain.Client{OwnerID: ownerID, CreatedAt: now, UpdatedAt: now}
	applyClientInput(client, input)
	if err := client.Validate(); err != nil {
		return nil, err
	}

	if err := s.clients.Create(ctx, client); err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to create client")
		return nil, err
	}

	s.logger.Info().Str("client_id", client.ID).Str("owner_id", ownerID).Msg("client created")
	return s.detail(ctx, client)
}

// Get returns the client only when ownerID owns it; otherwise ErrClientNotFound.
func (s *ClientService) Get(ctx context.Context, ownerID, id string) (*ports.ClientDetail, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	client, err := s.clients.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, client)
}

func (s *ClientService) List(ctx context.Context, ownerID string) ([]ports.ClientDetail, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	clients, err := s.clients.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	owners, err := resolveOwners(ctx, s.users, []string{ownerID})
	if err != nil {
		return nil, err
	}

	out := make([]ports.ClientDetail, len(clients))
	for i, c := range clients {
		out[i] = ports.ClientDetail{Client: c, AddedBy: owners[c.OwnerID]}
	}
	return out, nil
}

// Update applies input to the owner's client and re-checks its invariants.
func (s *ClientService) Update(ctx context.Context, ownerID, id string, input ports.ClientInput) (*ports.ClientDetail, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	client, err := s.clients.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	applyClientInput(client, input)
	if err := client.Validate(); err != nil {
		return nil, err
	}
	client.UpdatedAt = s.now()

	if err := s.clients.Update(ctx, client); err != nil {
		return nil, err
	}

	s.logger.Info().Str("client_id", client.ID).Str("owner_id", ownerID).Msg("client updated")
	return s.detail(ctx, client)
}

// Delete removes the owner's client together with its proposals.
func (s *ClientService) Delete(ctx context.Context, ownerID, id string) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	if err := s.clients.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	s.logger.Info().Str("client_id", id).Str("owner_id", ownerID).Msg("client deleted")
	return nil
}

func (s *ClientService) AdminDelete(ctx context.Context, id string) error {
	if err := s.clients.Delete(ctx, id, ""); err != nil {
		return err
	}
	s.logger.Info().Str("client_id", id).Msg("client deleted by admin")
	return nil
}

func (s *ClientService) detail(ctx context.Context, c *domain.Client) (*ports.ClientDetail, error) {
	owners, err := resolveOwners(ctx, s.users, []string{c.OwnerID})
	if err != nil {
		return nil, err
	}
	return &ports.ClientDetail{Client: c, AddedBy: owners[c.OwnerID]}, nil
}

func applyClientInput(c *domain.Client, in ports.ClientInput) {
	if in.CompanyName != nil {
		c.CompanyName = strings.TrimSpace(*in.CompanyName)
	}
	if in.Address != nil {
		c.Address = domain.OptionalString(*in.Address)
	}
	if in.PhoneNumber != nil {
		c.PhoneNumber = domain.OptionalString(*in.PhoneNumber)
	}
	if in.Email != nil {
		c.Email = domain.OptionalString(domain.NormalizeEmail(*in.Email))
	}
}
