package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sirpyerre/proposals-api/internal/core/domain"
)

type stubUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	stored := cloneUser(user)
	stored.ID = fmt.Sprintf("user-%d", r.seq)
	r.users[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if domain.Deref(u.Email) == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByPhoneNumber(_ context.Context, phone string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if domain.Deref(u.PhoneNumber) == phone {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) List(context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.LastLogin = &at
	return nil
}

type stubDenylist struct {
	mu      sync.Mutex
	revoked map[string]domain.RevokedToken
}

func newStubDenylist() *stubDenylist {
	return &stubDenylist{revoked: make(map[string]domain.RevokedToken)}
}

func (d *stubDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.revoked[jti]
	return ok, nil
}

func (d *stubDenylist) Revoke(_ context.Context, token domain.RevokedToken) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.revoked[token.JTI]; ok {
		return domain.ErrInvalidToken
	}
	d.revoked[token.JTI] = token
	return nil
}

// stubStore backs both record repositories so client deletion can cascade.
type stubStore struct {
	mu        sync.Mutex
	seq       int
	clients   map[string]*domain.Client
	proposals map[string]*domain.Proposal
}

func newStubStore() *stubStore {
	return &stubStore{
		clients:   make(map[string]*domain.Client),
		proposals: make(map[string]*domain.Proposal),
	}
}

func (s *stubStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func owned(recordOwner, ownerID string) bool {
	return ownerID == "" || recordOwner == ownerID
}

type stubClientRepo struct{ *stubStore }

func (r stubClientRepo) Create(_ context.Context, c *domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = r.nextID("client")
	clone := *c
	r.clients[c.ID] = &clone
	return nil
}

func (r stubClientRepo) FindByID(_ context.Context, id, ownerID string) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[id]
	if !ok || !owned(c.OwnerID, ownerID) {
		return nil, domain.ErrClientNotFound
	}
	clone := *c
	return &clone, nil
}

func (r stubClientRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Client
	for _, id := range ids {
		if c, ok := r.clients[id]; ok {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r stubClientRepo) List(_ context.Context, ownerID string) ([]*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Client{}
	for _, c := range r.clients {
		if owned(c.OwnerID, ownerID) {
			clone := *c
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompanyName < out[j].CompanyName })
	return out, nil
}

func (r stubClientRepo) Update(_ context.Context, c *domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[c.ID]; !ok {
		return domain.ErrClientNotFound
	}
	clone := *c
	r.clients[c.ID] = &clone
	return nil
}

func (r stubClientRepo) Delete(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[id]
	if !ok || !owned(c.OwnerID, ownerID) {
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

type stubProposalRepo struct{ *stubStore }

func (r stubProposalRepo) Create(_ context.Context, p *domain.Proposal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.nextID("proposal")
	clone := *p
	r.proposals[p.ID] = &clone
	return nil
}

func (r stubProposalRepo) FindByID(_ context.Context, id, ownerID string) (*domain.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.proposals[id]
	if !ok || !owned(p.OwnerID, ownerID) {
		return nil, domain.ErrProposalNotFound
	}
	clone := *p
	return &clone, nil
}

func (r stubProposalRepo) List(_ context.Context, ownerID string) ([]*domain.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Proposal{}
	for _, p := range r.proposals {
		if owned(p.OwnerID, ownerID) {
			clone := *p
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r stubProposalRepo) Update(_ context.Context, p *domain.Proposal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.proposals[p.ID]; !ok {
		return domain.ErrProposalNotFound
	}
	clone := *p
	r.proposals[p.ID] = &clone
	return nil
}

func (r stubProposalRepo) Delete(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.proposals[id]
	if !ok || !owned(p.OwnerID, ownerID) {
		return domain.ErrProposalNotFound
	}
	delete(r.proposals, id)
	return nil
}
