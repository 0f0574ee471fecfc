package handler

import (
	"github.com/sirpyerre/proposals-api/internal/core/domain"
	"github.com/sirpyerre/proposals-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateUserInput(req registerRequest) ports.CreateUserInput {
	return ports.CreateUserInput{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	}
}

// toClientInput maps a client request. When partial is false every field
// is considered present, so omitted optional fields are cleared.
func toClientInput(req clientRequest, partial bool) ports.ClientInput {
	in := ports.ClientInput{
		CompanyName: req.CompanyName,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
	}
	if partial {
		return in
	}
	in.CompanyName = orEmpty(in.CompanyName)
	in.Address = orEmpty(in.Address)
	in.PhoneNumber = orEmpty(in.PhoneNumber)
	in.Email = orEmpty(in.Email)
	return in
}

func toProposalInput(req proposalRequest, partial bool) ports.ProposalInput {
	in := ports.ProposalInput{
		ClientID:    req.ClientID,
		Title:       req.Title,
		Description: req.Description,
	}
	if partial {
		return in
	}
	in.ClientID = orEmpty(in.ClientID)
	in.Title = orEmpty(in.Title)
	in.Description = orEmpty(in.Description)
	return in
}

func orEmpty(s *string) *string {
	if s != nil {
		return s
	}
	empty := ""
	return &empty
}

// --- Service result → HTTP response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		IsActive:    u.IsActive,
		IsStaff:     u.IsStaff,
		CreatedAt:   u.CreatedAt.UTC(),
	}
}

func toUserSummaryResponse(s domain.UserSummary) userSummaryResponse {
	return userSummaryResponse{
		ID:          s.ID,
		Name:        s.Name,
		Email:       s.Email,
		PhoneNumber: s.PhoneNumber,
	}
}

func toAuthResponse(r *ports.AuthResult) authResponse {
	return authResponse{
		Access:  r.Tokens.Access,
		Refresh: r.Tokens.Refresh,
		User:    toUserResponse(r.User),
	}
}

func toClientResponse(d ports.ClientDetail) clientResponse {
	c := d.Client
	return clientResponse{
		ID:          c.ID,
		CompanyName: c.CompanyName,
		Address:     c.Address,
		PhoneNumber: c.PhoneNumber,
		Email:       c.Email,
		AddedBy:     toUserSummaryResponse(d.AddedBy),
		CreatedAt:   c.CreatedAt.UTC(),
		UpdatedAt:   c.UpdatedAt.UTC(),
	}
}

func toClientListResponse(items []ports.ClientDetail) []clientResponse {
	out := make([]clientResponse, len(items))
	for i, d := range items {
		out[i] = toClientResponse(d)
	}
	return out
}

func toProposalResponse(d ports.ProposalDetail) proposalResponse {
	p := d.Proposal
	return proposalResponse{
		ID:          p.ID,
		Client:      toClientResponse(d.Client),
		Title:       p.Title,
		Description: p.Description,
		CreatedBy:   toUserSummaryResponse(d.CreatedBy),
		CreatedAt:   p.CreatedAt.UTC(),
		UpdatedAt:   p.UpdatedAt.UTC(),
	}
}

func toProposalListResponse(items []ports.ProposalDetail) []proposalResponse {
	out := make([]proposalResponse, len(items))
	for i, d := range items {
		out[i] = toProposalResponse(d)
	}
	return out
}
