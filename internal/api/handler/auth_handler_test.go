package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/proposals-api/internal/api/middleware"
	"github.com/sirpyerre/proposals-api/internal/core/domain"
	"github.com/sirpyerre/proposals-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, input ports.CreateUserInput) (*ports.AuthResult, error)
	loginFn    func(ctx context.Context, identifier, password string) (*ports.AuthResult, error)
	refreshFn  func(ctx context.Context, token string) (*domain.TokenPair, error)
	logoutFn   func(ctx context.Context, token string) error
	profileFn  func(ctx context.Context, userID string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, input ports.CreateUserInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, identifier, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, identifier, password)
}

func (s *stubAuthService) Refresh(ctx context.Context, token string) (*domain.TokenPair, error) {
	return s.refreshFn(ctx, token)
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	return s.logoutFn(ctx, token)
}

func (s *stubAuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.profileFn(ctx, userID)
}

func (s *stubAuthService) ListUsers(context.Context) ([]*domain.User, error) {
	return nil, nil
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func ptr(s string) *string { return &s }

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(_ context.Context, input ports.CreateUserInput) (*ports.AuthResult, error) {
			if input.Name != "John Doe" || input.Email != "john@example.com" || input.PhoneNumber != "" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &ports.AuthResult{
				Tokens: domain.TokenPair{Access: "a", Refresh: "r"},
				User:   &domain.User{ID: "u1", Name: input.Name, Email: ptr(input.Email), IsActive: true, CreatedAt: time.Now()},
			}, nil
		},
	}

	c, rec := jsonContext(e, http.MethodPost, "/auth/register",
		`{"name":"John Doe","email":"john@example.com","password":"password123"}`)
	if err := NewAuthHandler(stub).Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access"] != "a" || resp["refresh"] != "r" {
		t.Fatalf("unexpected tokens: %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["email"] != "john@example.com" || user["phone_number"] != nil {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["password"]; leaked {
		t.Fatalf("password must not be serialized")
	}
}

func TestAuthHandler_Register_ValidationError(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.CreateUserInput) (*ports.AuthResult, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}

	c, _ := jsonContext(e, http.MethodPost, "/auth/register", `{"name":"John Doe","email":"not-an-email"}`)
	err := NewAuthHandler(stub).Register(c)

	verr, ok := domain.IsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Fields["password"] != "This field is required." {
		t.Fatalf("unexpected password message: %q", verr.Fields["password"])
	}
	if verr.Fields["email"] == "" {
		t.Fatalf("expected email field error, got %+v", verr.Fields)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(_ context.Context, identifier, _ string) (*ports.AuthResult, error) {
			if identifier != "+14155550100" {
				t.Fatalf("unexpected identifier %q", identifier)
			}
			return nil, domain.ErrInvalidCredentials
		},
	}

	c, _ := jsonContext(e, http.MethodPost, "/auth/login", `{"identifier":"+14155550100","password":"wrong"}`)
	if err := NewAuthHandler(stub).Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		refreshFn: func(_ context.Context, token string) (*domain.TokenPair, error) {
			if token != "old" {
				t.Fatalf("unexpected token %q", token)
			}
			return &domain.TokenPair{Access: "a2", Refresh: "r2"}, nil
		},
	}

	c, rec := jsonContext(e, http.MethodPost, "/auth/token/refresh", `{"refresh":"old"}`)
	if err := NewAuthHandler(stub).Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp tokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Access != "a2" || resp.Refresh != "r2" {
		t.Fatalf("unexpected pair: %+v", resp)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newEcho()
	var revoked string
	stub := &stubAuthService{
		logoutFn: func(_ context.Context, token string) error {
			revoked = token
			return nil
		},
	}

	c, rec := jsonContext(e, http.MethodPost, "/auth/logout", `{"refresh":"r"}`)
	if err := NewAuthHandler(stub).Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusResetContent {
		t.Fatalf("expected 205, got %d", rec.Code)
	}
	if revoked != "r" {
		t.Fatalf("expected token r to be revoked, got %q", revoked)
	}
}

func TestAuthHandler_Logout_InvalidToken(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		logoutFn: func(context.Context, string) error { return domain.ErrInvalidToken },
	}

	c, _ := jsonContext(e, http.MethodPost, "/auth/logout", `{"refresh":"r"}`)
	if err := NewAuthHandler(stub).Logout(c); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthHandler_Profile(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		profileFn: func(_ context.Context, userID string) (*domain.User, error) {
			return &domain.User{ID: userID, Name: "John Doe"}, nil
		},
	}

	c, rec := jsonContext(e, http.MethodGet, "/auth/profile", "")
	c.Set(middleware.CtxUserID, "u1")
	if err := NewAuthHandler(stub).Profile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp userResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != "u1" || resp.Name != "John Doe" {
		t.Fatalf("unexpected profile: %+v", resp)
	}
}

func TestAuthHandler_Profile_DeletedUser(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		profileFn: func(context.Context, string) (*domain.User, error) { return nil, domain.ErrUserNotFound },
	}

	c, _ := jsonContext(e, http.MethodGet, "/auth/profile", "")
	c.Set(middleware.CtxUserID, "gone")
	if err := NewAuthHandler(stub).Profile(c); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthHandler_Profile_MissingIdentity(t *testing.T) {
	e := newEcho()
	c, _ := jsonContext(e, http.MethodGet, "/auth/profile", "")

	err := NewAuthHandler(&stubAuthService{}).Profile(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
