package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/proposals-api/internal/api/metrics"
	"github.com/sirpyerre/proposals-api/internal/core/ports"
)

const resourceProposal = "proposal"

// ProposalHandler handles HTTP requests for the requester's proposals.
type ProposalHandler struct {
	service ports.ProposalService
}

func NewProposalHandler(service ports.ProposalService) *ProposalHandler {
	return &ProposalHandler{service: service}
}

// List handles GET /proposals.
//
// @Summary      List own proposals
// @Tags         proposals
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   proposalResponse
// @Failure      401  {object}  errorResponse
// @Router       /proposals [get]
func (h *ProposalHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	items, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProposalListResponse(items))
}

// Create handles POST /proposals.
//
// @Summary      Create a proposal
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      proposalRequest  true  "Proposal details"
// @Success      201   {object}  proposalResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /proposals [post]
func (h *ProposalHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	req, err := bindProposal(c)
	if err != nil {
		return err
	}

	detail, err := h.service.Create(c.Request().Context(), userID, toProposalInput(req, false))
	if err != nil {
		return err
	}

	metrics.RecordsMutatedTotal.WithLabelValues(resourceProposal, "create").Inc()
	return c.JSON(http.StatusCreated, toProposalResponse(*detail))
}

// Get handles GET /proposals/:id.
//
// @Summary      Get an own proposal
// @Tags         proposals
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Proposal ID"
// @Success      200  {object}  proposalResponse
// @Failure      404  {object}  errorResponse
// @Router       /proposals/{id} [get]
func (h *ProposalHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	detail, err := h.service.Get(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProposalResponse(*detail))
}

// Update handles PUT /proposals/:id.
//
// @Summary      Replace an own proposal
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Proposal ID"
// @Param        body  body      proposalRequest  true  "Proposal details"
// @Success      200   {object}  proposalResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /proposals/{id} [put]
func (h *ProposalHandler) Update(c echo.Context) error {
	return h.update(c, false)
}

// Patch handles PATCH /proposals/:id.
//
// @Summary      Partially update an own proposal
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Proposal ID"
// @Param        body  body      proposalRequest  true  "Fields to change"
// @Success      200   {object}  proposalResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /proposals/{id} [patch]
func (h *ProposalHandler) Patch(c echo.Context) error {
	return h.update(c, true)
}

func (h *ProposalHandler) update(c echo.Context, partial bool) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	req, err := bindProposal(c)
	if err != nil {
		return err
	}

	detail, err := h.service.Update(c.Request().Context(), userID, c.Param("id"), toProposalInput(req, partial))
	if err != nil {
		return err
	}

	metrics.RecordsMutatedTotal.WithLabelValues(resourceProposal, "update").Inc()
	return c.JSON(http.StatusOK, toProposalResponse(*detail))
}

// Delete handles DELETE /proposals/:id.
//
// @Summary      Delete an own proposal
// @Tags         proposals
// @Security     BearerAuth
// @Param        id   path  string  true  "Proposal ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /proposals/{id} [delete]
func (h *ProposalHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}

	metrics.RecordsMutatedTotal.WithLabelValues(resourceProposal, "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

func bindProposal(c echo.Context) (proposalRequest, error) {
	var req proposalRequest
	if err := c.Bind(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return req, err
	}
	return req, nil
}
