package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Ryan-Badaloo/Inventory-Back-End/internal/repository"
)

// ClientHandler implements CRUD for equipment recipients.
type ClientHandler struct {
	Clients *repository.ClientRepo
}

func NewClientHandler(cl *repository.ClientRepo) *ClientHandler {
	return &ClientHandler{Clients: cl}
}

type createClientReq struct {
	Firstname   string  `json:"firstname"`
	Lastname    string  `json:"lastname"`
	Email       string  `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	Position    *string `json:"position"`
	DivisionID  *uint64 `json:"division_id"`
}

// CreateClient handles POST /create-client/.  The acting user's full name is
// stamped into added_by.
func (h *ClientHandler) CreateClient(c echo.Context) error {
	var req createClientReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Firstname == "" || req.Lastname == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "firstname/lastname/email required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	cl := repository.Client{
		Firstname:   req.Firstname,
		Lastname:    req.Lastname,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Position:    req.Position,
		DivisionID:  req.DivisionID,
	}
	if err := h.Clients.Create(ctx, &cl, actorName(c)); err != nil {
		if errors.Is(err, repository.ErrClientEmailExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "client already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create client failed"})
	}
	return c.JSON(http.StatusCreated, cl)
}

type deleteClientReq struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// DeleteClient handles DELETE /delete-client/.  The match is firstname AND
// lastname only; email is not part of it.  Devices assigned to the client are
// unassigned in the same transaction.
func (h *ClientHandler) DeleteClient(c echo.Context) error {
	var req deleteClientReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Firstname == "" || req.Lastname == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "firstname/lastname required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Clients.Delete(ctx, req.Firstname, req.Lastname); err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Client deleted successfully"})
}

// GetClients handles GET /get-clients/.  The optional ?name= query narrows
// the list by a case-insensitive substring of "firstname lastname".
func (h *ClientHandler) GetClients(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	out, err := h.Clients.List(ctx, c.QueryParam("name"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, out)
}
