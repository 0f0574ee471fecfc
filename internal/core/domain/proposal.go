package domain

import "time"

// Proposal is an offer prepared for a client. Removing the client removes
// its proposals.
type Proposal struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OwnerID     string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate checks the proposal's required fields.
func (p *Proposal) Validate() error {
	verr := &ValidationError{}
	if p.Title == "" {
		verr.Add("title", "This field is required.")
	}
	if p.Description == "" {
		verr.Add("description", "This field is required.")
	}
	if p.ClientID == "" {
		verr.Add("client_id", "This field is required.")
	}
	return verr.OrNil()
}
