package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/proposals-api/internal/core/domain"
)

func TestRBAC_AllowsRole(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(CtxRole, domain.RoleStaff)

	called := false
	h := RBAC(domain.RoleStaff)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatalf("expected next to be called")
	}
}

func TestRBAC_DeniesRole(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(CtxRole, domain.RoleUser)

	h := RBAC(domain.RoleStaff)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := h(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRBAC_MissingRole(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	h := RBAC(domain.RoleStaff)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := h(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
