package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sirpyerre/proposals-api/internal/core/domain"
	"github.com/sirpyerre/proposals-api/internal/core/ports"
)

const (
	msgRequired      = "This field is required."
	msgEmailTaken    = "A user with that email already exists."
	msgPhoneTaken    = "A user with that phone number already exists."
	msgIdentifierReq = "Either phone_number or email must be provided."
)

// AuthService implements registration, identifier-based login and the
// refresh token lifecycle.
type AuthService struct {
	users    ports.UserRepository
	denylist ports.TokenDenylist
	tokens   *TokenIssuer
	log      zerolog.Logger
	now      func() time.Time
}

func NewAuthService(users ports.UserRepository, denylist ports.TokenDenylist, tokens *TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		denylist: denylist,
		tokens:   tokens,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateUser validates input, hashes the password and persists a regular account.
func (s *AuthService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	return s.createUser(ctx, input, false)
}

// CreateSuperuser persists an account with staff and superuser rights.
func (s *AuthService) CreateSuperuser(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	return s.createUser(ctx, input, true)
}

func (s *AuthService) createUser(ctx context.Context, input ports.CreateUserInput, superuser bool) (*domain.User, error) {
	name := strings.TrimSpace(input.Name)
	email := domain.OptionalString(domain.NormalizeEmail(input.Email))
	phone := domain.OptionalString(input.PhoneNumber)

	verr := &domain.ValidationError{}
	if name == "" {
		verr.Add("name", msgRequired)
	}
	if input.Password == "" {
		verr.Add("password", msgRequired)
	}
	if email == nil && phone == nil {
		verr.Add(domain.NonFieldErrors, msgIdentifierReq)
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if err := s.checkIdentifiersFree(ctx, email, phone); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PhoneNumber:  phone,
		PasswordHash: string(hash),
		IsActive:     true,
		IsStaff:      superuser,
		IsSuperuser:  superuser,
		CreatedAt:    s.now(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Bool("superuser", superuser).Msg("user created")
	return created, nil
}

// checkIdentifiersFree reports collisions on the specific field, ahead of
// the unique index which remains the final arbiter.
func (s *AuthService) checkIdentifiersFree(ctx context.Context, email, phone *string) error {
	verr := &domain.ValidationError{}
	if email != nil {
		if _, err := s.users.FindByEmail(ctx, *email); err == nil {
			verr.Add("email", msgEmailTaken)
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return fmt.Errorf("check email: %w", err)
		}
	}
	if phone != nil {
		if _, err := s.users.FindByPhoneNumber(ctx, *phone); err == nil {
			verr.Add("phone_number", msgPhoneTaken)
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return fmt.Errorf("check phone number: %w", err)
		}
	}
	return verr.OrNil()
}

// FindByIdentifier looks the identifier up as an email first, then as a
// phone number.
func (s *AuthService) FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, domain.ErrUserNotFound
	}

	user, err := s.users.FindByEmail(ctx, domain.NormalizeEmail(identifier))
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	return s.users.FindByPhoneNumber(ctx, identifier)
}

// Authenticate verifies an identifier/password pair. An unknown identifier,
// a wrong password and an inactive account all yield ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, identifier, password string) (*domain.User, error) {
	if identifier == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) Register(ctx context.Context, input ports.CreateUserInput) (*ports.AuthResult, error) {
	user, err := s.CreateUser(ctx, input)
	if err != nil {
		return nil, err
	}

	pair, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Tokens: pair, User: user}, nil
}

func (s *AuthService) Login(ctx context.Context, identifier, password string) (*ports.AuthResult, error) {
	user, err := s.Authenticate(ctx, identifier, password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to record last login")
	} else {
		user.LastLogin = &now
	}

	pair, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return &ports.AuthResult{Tokens: pair, User: user}, nil
}

// Refresh exchanges a refresh token for a new pair. The presented token is
// revoked, so each refresh token mints at most one pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.usableRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("refresh: %w", err)
	}
	if !user.IsActive {
		return nil, domain.ErrInvalidToken
	}

	if err := s.revoke(ctx, claims); err != nil {
		return nil, err
	}

	pair, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

// Logout adds the refresh token to the revocation set.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.usableRefreshToken(ctx, refreshToken)
	if err != nil {
		return err
	}
	if err := s.revoke(ctx, claims); err != nil {
		return err
	}

	s.log.Info().Str("user_id", claims.UserID).Msg("user logged out")
	return nil
}

func (s *AuthService) usableRefreshToken(ctx context.Context, token string) (*domain.TokenClaims, error) {
	if token == "" {
		return nil, domain.ErrInvalidToken
	}
	claims, err := s.tokens.Verify(token, domain.TokenRefresh)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) revoke(ctx context.Context, claims *domain.TokenClaims) error {
	err := s.denylist.Revoke(ctx, domain.RevokedToken{
		JTI:       claims.ID,
		UserID:    claims.UserID,
		ExpiresAt: claims.ExpiresAt,
		RevokedAt: s.now(),
	})
	if err != nil && !errors.Is(err, domain.ErrInvalidToken) {
		return fmt.Errorf("revoke token: %w", err)
	}
	return err
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}
