package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/proposals-api/internal/api/metrics"
	"github.com/sirpyerre/proposals-api/internal/core/domain"
	"github.com/sirpyerre/proposals-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account and opens a session.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.authService.Register(c.Request().Context(), toCreateUserInput(req))
	if err != nil {
		return err
	}

	metrics.UsersRegisteredTotal.WithLabelValues(metrics.IdentifierKind(req.Email, req.PhoneNumber)).Inc()
	return c.JSON(http.StatusCreated, toAuthResponse(result))
}

// Login authenticates with an email or phone number and returns a token pair.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.authService.Login(c.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		}
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, toAuthResponse(result))
}

// Refresh exchanges a refresh token for a new token pair.
//
// @Summary      Refresh tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Refresh token"
// @Success      200   {object}  tokenResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/token/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	pair, err := h.authService.Refresh(c.Request().Context(), req.Refresh)
	if err != nil {
		return err
	}

	metrics.TokensRevokedTotal.WithLabelValues("refresh").Inc()
	return c.JSON(http.StatusOK, tokenResponse{Access: pair.Access, Refresh: pair.Refresh})
}

// Logout revokes the supplied refresh token.
//
// @Summary      Logout
// @Tags         auth
// @Accept       json
// @Security     BearerAuth
// @Param        body  body      refreshRequest  true  "Refresh token to revoke"
// @Success      205
// @Failure      401   {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.authService.Logout(c.Request().Context(), req.Refresh); err != nil {
		return err
	}

	metrics.TokensRevokedTotal.WithLabelValues("logout").Inc()
	return c.NoContent(http.StatusResetContent)
}

// Profile returns the requester's own account.
//
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Profile(c.Request().Context(), userID)
	if err != nil {
		// A valid token for a vanished account is still an authentication failure.
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidToken
		}
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}
