package api

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sirpyerre/proposals-api/internal/core/domain"
)

// memoryDB is an in-memory stand-in for the Mongo repositories.
type memoryDB struct {
	mu        sync.Mutex
	seq       int
	users     map[string]domain.User
	revoked   map[string]domain.RevokedToken
	clients   map[string]domain.Client
	proposals map[string]domain.Proposal
}

func newMemoryDB() *memoryDB {
	return &memoryDB{
		users:     make(map[string]domain.User),
		revoked:   make(map[string]domain.RevokedToken),
		clients:   make(map[string]domain.Client),
		proposals: make(map[string]domain.Proposal),
	}
}

func (db *memoryDB) nextID() string {
	db.seq++
	return fmt.Sprintf("%024x", db.seq)
}

func visible(recordOwner, ownerID string) bool {
	return ownerID == "" || recordOwner == ownerID
}

type memoryUsers struct{ *memoryDB }

func (r memoryUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *u
	stored.ID = r.nextID()
	r.users[stored.ID] = stored
	out := stored
	return &out, nil
}

func (r memoryUsers) find(match func(domain.User) bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			out := u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r memoryUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.ID == id })
}

func (r memoryUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Email != nil && *u.Email == email })
}

func (r memoryUsers) FindByPhoneNumber(_ context.Context, phone string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.PhoneNumber != nil && *u.PhoneNumber == phone })
}

func (r memoryUsers) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, &u)
		}
	}
	return out, nil
}

func (r memoryUsers) List(context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, &u)
	}
	return out, nil
}

func (r memoryUsers) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.LastLogin = &at
	r.users[id] = u
	return nil
}

type memoryDenylist struct{ *memoryDB }

func (r memoryDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.revoked[jti]
	return ok, nil
}

func (r memoryDenylist) Revoke(_ context.Context, t domain.RevokedToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.revoked[t.JTI]; ok {
		return domain.ErrInvalidToken
	}
	r.revoked[t.JTI] = t
	return nil
}

type memoryClients struct{ *memoryDB }

func (r memoryClients) Create(_ context.Context, c *domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = r.nextID()
	r.clients[c.ID] = *c
	return nil
}

func (r memoryClients) FindByID(_ context.Context, id, ownerID string) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[id]
	if !ok || !visible(c.OwnerID, ownerID) {
		return nil, domain.ErrClientNotFound
	}
	return &c, nil
}

func (r memoryClients) FindByIDs(_ context.Context, ids []string) ([]*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Client
	for _, id := range ids {
		if c, ok := r.clients[id]; ok {
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r memoryClients) List(_ context.Context, ownerID string) ([]*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Client{}
	for _, c := range r.clients {
		if visible(c.OwnerID, ownerID) {
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompanyName < out[j].CompanyName })
	return out, nil
}

func (r memoryClients) Update(_ context.Context, c *domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c.ID] = *c
	return nil
}

func (r memoryClients) Delete(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[id]
	if !ok || !visible(c.OwnerID, ownerID) {
		return domain.ErrClientNotFound
	}
	delete(r.clients, id)
	for pid, p := range r.proposals {
		if p.ClientID == id {
			delete(r.proposals, pid)
		}
	}
	return nil
}

type memoryProposals struct{ *memoryDB }

func (r memoryProposals) Create(_ context.Context, p *domain.Proposal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.nextID()
	r.proposals[p.ID] = *p
	return nil
}

func (r memoryProposals) FindByID(_ context.Context, id, ownerID string) (*domain.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.proposals[id]
	if !ok || !visible(p.OwnerID, ownerID) {
		return nil, domain.ErrProposalNotFound
	}
	return &p, nil
}

func (r memoryProposals) List(_ context.Context, ownerID string) ([]*domain.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Proposal{}
	for _, p := range r.proposals {
		if visible(p.OwnerID, ownerID) {
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memoryProposals) Update(_ context.Context, p *domain.Proposal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.proposals[p.ID] = *p
	return nil
}

func (r memoryProposals) Delete(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.proposals[id]
	if !ok || !visible(p.OwnerID, ownerID) {
		return domain.ErrProposalNotFound
	}
	delete(r.proposals, id)
	return nil
}
