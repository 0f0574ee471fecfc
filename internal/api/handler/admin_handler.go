package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/proposals-api/internal/api/metrics"
	"github.com/sirpyerre/proposals-api/internal/core/ports"
)

// AdminHandler serves staff-only endpoints. Routes are guarded by RBAC.
type AdminHandler struct {
	auth      ports.AuthService
	clients   ports.ClientService
	proposals ports.ProposalService
}

func NewAdminHandler(auth ports.AuthService, clients ports.ClientService, proposals ports.ProposalService) *AdminHandler {
	return &AdminHandler{auth: auth, clients: clients, proposals: proposals}
}

// ListUsers handles GET /admin/users.
//
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.auth.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	return c.JSON(http.StatusOK, out)
}

// DeleteClient handles DELETE /admin/clients/:id.
//
// @Summary      Delete any client
// @Tags         admin
// @Security     BearerAuth
// @Param        id   path  string  true  "Client ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/clients/{id} [delete]
func (h *AdminHandler) DeleteClient(c echo.Context) error {
	if err := h.clients.AdminDelete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.RecordsMutatedTotal.WithLabelValues(resourceClient, "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

// DeleteProposal handles DELETE /admin/proposals/:id.
//
// @Summary      Delete any proposal
// @Tags         admin
// @Security     BearerAuth
// @Param        id   path  string  true  "Proposal ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/proposals/{id} [delete]
func (h *AdminHandler) DeleteProposal(c echo.Context) error {
	if err := h.proposals.AdminDelete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.RecordsMutatedTotal.WithLabelValues(resourceProposal, "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}
