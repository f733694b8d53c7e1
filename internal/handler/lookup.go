package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Ryan-Badaloo/Inventory-Back-End/internal/repository"
)

// LookupHandler serves the uniform add/list/delete trio for every reference
// table.  Handlers are built per kind by the router.
type LookupHandler struct {
	Lookups *repository.LookupRepo
}

func NewLookupHandler(l *repository.LookupRepo) *LookupHandler {
	return &LookupHandler{Lookups: l}
}

type lookupReq struct {
	Description string `json:"description"`
	Name        string `json:"name"`
}

func (r lookupReq) value() string {
	if v := strings.TrimSpace(r.Description); v != "" {
		return v
	}
	return strings.TrimSpace(r.Name)
}

// Add returns the POST handler for one lookup kind.
func (h *LookupHandler) Add(kind string) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req lookupReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
		}
		name := req.value()
		if name == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "description required"})
		}

		ctx, cancel := reqCtx(c)
		defer cancel()

		l, err := h.Lookups.Add(ctx, kind, name, actorName(c))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, l)
	}
}

// List returns the GET handler for one lookup kind.
func (h *LookupHandler) List(kind string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := reqCtx(c)
		defer cancel()

		out, err := h.Lookups.List(ctx, kind)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		return c.JSON(http.StatusOK, out)
	}
}

// Delete returns the DELETE handler for one lookup kind.  Rows referencing
// the deleted entry are detached first; the whole move commits or rolls back
// together.
func (h *LookupHandler) Delete(kind string) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req lookupReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
		}
		name := req.value()
		if name == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "description required"})
		}

		ctx, cancel := reqCtx(c)
		defer cancel()

		if err := h.Lookups.Delete(ctx, kind, name); err != nil {
			if errors.Is(err, repository.ErrLookupNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "entry not found"})
			}
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "Entry deleted successfully"})
	}
}
