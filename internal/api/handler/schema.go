package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// userResponse is the public view of an account.
type userResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       *string   `json:"email"`
	PhoneNumber *string   `json:"phone_number"`
	IsActive    bool      `json:"is_active"`
	IsStaff     bool      `json:"is_staff"`
	CreatedAt   time.Time `json:"created_at"`
}

// userSummaryResponse is embedded in clients and proposals.
type userSummaryResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
}

// --- Auth ---

type registerRequest struct {
	Name        string `json:"name"         validate:"required,max=255"`
	Email       string `json:"email"        validate:"omitempty,email,max=254"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,e164"`
	Password    string `json:"password"     validate:"required,min=8"`
}

type loginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password"   validate:"required"`
}

// refreshRequest is the body of both logout and token refresh.
type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type authResponse struct {
	Access  string       `json:"access"`
	Refresh string       `json:"refresh"`
	User    userResponse `json:"user"`
}

type tokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// --- Clients ---

// clientRequest serves create, full update and partial update. Ownership
// fields are not bound: the owner always comes from the access token.
// An empty optional field clears the stored value.
type clientRequest struct {
	CompanyName *string `json:"company_name" validate:"omitempty,max=255"`
	Address     *string `json:"address"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=20"`
	Email       *string `json:"email"        validate:"omitempty,max=254,email|eq="`
}

type clientResponse struct {
	ID          string              `json:"id"`
	CompanyName string              `json:"company_name"`
	Address     *string             `json:"address"`
	PhoneNumber *string             `json:"phone_number"`
	Email       *string             `json:"email"`
	AddedBy     userSummaryResponse `json:"added_by"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// --- Proposals ---

type proposalRequest struct {
	ClientID    *string `json:"client_id"`
	Title       *string `json:"title" validate:"omitempty,max=255"`
	Description *string `json:"description"`
}

type proposalResponse struct {
	ID          string              `json:"id"`
	Client      clientResponse      `json:"client"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	CreatedBy   userSummaryResponse `json:"created_by"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}
