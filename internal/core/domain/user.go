package domain

import (
	"strings"
	"time"
)

const (
	RoleStaff = "staff"
	RoleUser  = "user"
)

// User models an account that authenticates with an email or a phone number.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        *string    `json:"email"`
	PhoneNumber  *string    `json:"phone_number"`
	PasswordHash string     `json:"-"`
	IsActive     bool       `json:"is_active"`
	IsStaff      bool       `json:"is_staff"`
	IsSuperuser  bool       `json:"is_superuser"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// Role is the coarse role carried in access tokens.
func (u *User) Role() string {
	if u.IsStaff {
		return RoleStaff
	}
	return RoleUser
}

// UserSummary is the public subset of a user embedded in owned records.
type UserSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
}

// Summary returns the public subset of u.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, PhoneNumber: u.PhoneNumber}
}

// NormalizeEmail lower-cases the domain part of an address. The local part
// is left untouched.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}

// OptionalString returns nil for blank strings and a pointer to the trimmed
// value otherwise.
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
