package domain

import "time"

// Client is a business contact owned by the user who added it.
type Client struct {
	ID          string    `json:"id"`
	CompanyName string    `json:"company_name"`
	Address     *string   `json:"address"`
	PhoneNumber *string   `json:"phone_number"`
	Email       *string   `json:"email"`
	OwnerID     string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MsgContactRequired is reported when a client has neither email nor phone.
const MsgContactRequired = "Either phone_number or email must be provided."

// Validate checks the invariants that must hold after every create or update.
func (c *Client) Validate() error {
	verr := &ValidationError{}
	if c.CompanyName == "" {
		verr.Add("company_name", "This field is required.")
	}
	if Deref(c.Email) == "" && Deref(c.PhoneNumber) == "" {
		verr.Add(NonFieldErrors, MsgContactRequired)
	}
	return verr.OrNil()
}
