package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/proposals-api/internal/core/domain"
	"github.com/sirpyerre/proposals-api/internal/core/ports"
)

// Context keys set by Auth.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// Auth validates the bearer access token and injects the requester's
// identity into the echo context.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication credentials were not provided")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := verifier.Verify(strings.TrimSpace(parts[1]), domain.TokenAccess)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			role := domain.RoleUser
			if claims.IsStaff {
				role = domain.RoleStaff
			}
			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxRole, role)

			return next(c)
		}
	}
}
