package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/sirpyerre/proposals-api/internal/api/middleware"
	"github.com/sirpyerre/proposals-api/internal/core/domain"
	"github.com/sirpyerre/proposals-api/internal/core/ports"
)

type stubProposalService struct {
	createFn func(ctx context.Context, ownerID string, input ports.ProposalInput) (*ports.ProposalDetail, error)
}

func (s *stubProposalService) Create(ctx context.Context, ownerID string, input ports.ProposalInput) (*ports.ProposalDetail, error) {
	return s.createFn(ctx, ownerID, input)
}

func (s *stubProposalService) Get(context.Context, string, string) (*ports.ProposalDetail, error) {
	return nil, domain.ErrProposalNotFound
}

func (s *stubProposalService) List(context.Context, string) ([]ports.ProposalDetail, error) {
	return nil, nil
}

func (s *stubProposalService) Update(context.Context, string, string, ports.ProposalInput) (*ports.ProposalDetail, error) {
	return nil, domain.ErrProposalNotFound
}

func (s *stubProposalService) Delete(context.Context, string, string) error {
	return domain.ErrProposalNotFound
}

func (s *stubProposalService) AdminDelete(context.Context, string) error {
	return nil
}

func TestProposalHandler_Create(t *testing.T) {
	e := newEcho()
	stub := &stubProposalService{
		createFn: func(_ context.Context, ownerID string, input ports.ProposalInput) (*ports.ProposalDetail, error) {
			if ownerID != "u1" || *input.ClientID != "c1" || *input.Title != "Website redesign" {
				t.Fatalf("unexpected call: owner=%q input=%+v", ownerID, input)
			}
			return &ports.ProposalDetail{
				Proposal:  &domain.Proposal{ID: "p1", ClientID: "c1", Title: *input.Title, Description: *input.Description, OwnerID: ownerID},
				Client:    *acmeDetail(ownerID),
				CreatedBy: domain.UserSummary{ID: ownerID, Name: "John Doe"},
			}, nil
		},
	}

	c, rec := jsonContext(e, http.MethodPost, "/proposals",
		`{"client_id":"c1","title":"Website redesign","description":"Full rebuild"}`)
	c.Set(middleware.CtxUserID, "u1")
	if err := NewProposalHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp proposalResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Client.ID != "c1" || resp.Client.CompanyName != "Acme Corp" {
		t.Fatalf("expected embedded client, got %+v", resp.Client)
	}
	if resp.CreatedBy.ID != "u1" {
		t.Fatalf("unexpected created_by: %+v", resp.CreatedBy)
	}
}

func TestProposalHandler_Create_TitleTooLong(t *testing.T) {
	e := newEcho()
	stub := &stubProposalService{
		createFn: func(context.Context, string, ports.ProposalInput) (*ports.ProposalDetail, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}

	long := make([]byte, 256)
	for i := range long {
		long[i] = 'x'
	}
	c, _ := jsonContext(e, http.MethodPost, "/proposals",
		`{"client_id":"c1","title":"`+string(long)+`","description":"d"}`)
	c.Set(middleware.CtxUserID, "u1")

	verr, ok := domain.IsValidationError(NewProposalHandler(stub).Create(c))
	if !ok || verr.Fields["title"] == "" {
		t.Fatalf("expected title validation error, got %v", verr)
	}
}
