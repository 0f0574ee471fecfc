package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/sirpyerre/proposals-api/internal/core/domain"
)

const (
	defaultAccessTTL  = 5 * time.Minute
	defaultRefreshTTL = 24 * time.Hour
)

type tokenClaims struct {
	TokenType domain.TokenType `json:"token_type"`
	IsStaff   bool             `json:"is_staff,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 access and refresh tokens.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &TokenIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// Issue returns a fresh access/refresh pair for user.
func (t *TokenIssuer) Issue(user *domain.User) (domain.TokenPair, error) {
	access, err := t.sign(user, domain.TokenAccess, t.accessTTL)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := t.sign(user, domain.TokenRefresh, t.refreshTTL)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{Access: access, Refresh: refresh}, nil
}

func (t *TokenIssuer) sign(user *domain.User, typ domain.TokenType, ttl time.Duration) (string, error) {
	now := t.now()
	claims := tokenClaims{
		TokenType: typ,
		IsStaff:   user.IsStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", typ, err)
	}
	return signed, nil
}

// Verify parses token, checks its signature, expiry and type, and returns
// the claims. Every failure is reported as domain.ErrInvalidToken.
func (t *TokenIssuer) Verify(token string, want domain.TokenType) (*domain.TokenClaims, error) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, errors.Join(domain.ErrInvalidToken, err)
	}
	if claims.TokenType != want || claims.Subject == "" || claims.ID == "" {
		return nil, domain.ErrInvalidToken
	}

	return &domain.TokenClaims{
		ID:        claims.ID,
		UserID:    claims.Subject,
		Type:      claims.TokenType,
		IsStaff:   claims.IsStaff,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
