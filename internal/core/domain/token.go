package domain

import "time"

// TokenType distinguishes the two halves of a session pair.
type TokenType string

const (
	TokenAccess  TokenType = "access"
	TokenRefresh TokenType = "refresh"
)

// TokenPair is issued on register, login and refresh.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// TokenClaims is the verified content of a token.
type TokenClaims struct {
	ID        string
	UserID    string
	Type      TokenType
	IsStaff   bool
	ExpiresAt time.Time
}

// RevokedToken is an entry of the persisted revocation set.
type RevokedToken struct {
	JTI       string
	UserID    string
	ExpiresAt time.Time
	RevokedAt time.Time
}
