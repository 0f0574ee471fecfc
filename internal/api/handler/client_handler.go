package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/proposals-api/internal/api/metrics"
	"github.com/sirpyerre/proposals-api/internal/core/ports"
)

const resourceClient = "client"

// ClientHandler handles HTTP requests for the requester's clients.
type ClientHandler struct {
	service ports.ClientService
}

func NewClientHandler(service ports.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// List handles GET /clients.
//
// @Summary      List own clients
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   clientResponse
// @Failure      401  {object}  errorResponse
// @Router       /clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	items, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientListResponse(items))
}

// Create handles POST /clients.
//
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      clientRequest  true  "Client details"
// @Success      201   {object}  clientResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	req, err := bindClient(c)
	if err != nil {
		return err
	}

	detail, err := h.service.Create(c.Request().Context(), userID, toClientInput(req, false))
	if err != nil {
		return err
	}

	metrics.RecordsMutatedTotal.WithLabelValues(resourceClient, "create").Inc()
	return c.JSON(http.StatusCreated, toClientResponse(*detail))
}

// Get handles GET /clients/:id.
//
// @Summary      Get an own client
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  clientResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	detail, err := h.service.Get(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientResponse(*detail))
}

// Update handles PUT /clients/:id (full replacement).
//
// @Summary      Replace an own client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Client ID"
// @Param        body  body      clientRequest  true  "Client details"
// @Success      200   {object}  clientResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /clients/{id} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	return h.update(c, false)
}

// Patch handles PATCH /clients/:id (partial update).
//
// @Summary      Partially update an own client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Client ID"
// @Param        body  body      clientRequest  true  "Fields to change"
// @Success      200   {object}  clientResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /clients/{id} [patch]
func (h *ClientHandler) Patch(c echo.Context) error {
	return h.update(c, true)
}

func (h *ClientHandler) update(c echo.Context, partial bool) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	req, err := bindClient(c)
	if err != nil {
		return err
	}

	detail, err := h.service.Update(c.Request().Context(), userID, c.Param("id"), toClientInput(req, partial))
	if err != nil {
		return err
	}

	metrics.RecordsMutatedTotal.WithLabelValues(resourceClient, "update").Inc()
	return c.JSON(http.StatusOK, toClientResponse(*detail))
}

// Delete handles DELETE /clients/:id. The client's proposals are removed too.
//
// @Summary      Delete an own client
// @Tags         clients
// @Security     BearerAuth
// @Param        id   path  string  true  "Client ID"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /clients/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}

	metrics.RecordsMutatedTotal.WithLabelValues(resourceClient, "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

func bindClient(c echo.Context) (clientRequest, error) {
	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return req, err
	}
	return req, nil
}
