package handler // handler defines http handlers

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Ryan-Badaloo/Inventory-Back-End/internal/middleware"
	"github.com/Ryan-Badaloo/Inventory-Back-End/internal/repository"
)

// reqCtx bounds a handler's database work to five seconds.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// actorName returns the authenticated caller's "firstname lastname" string
// for attribution stamps.  Protected routes always have it set by JWTAuth.
func actorName(c echo.Context) string {
	if v, ok := c.Get(middleware.CtxFullName).(string); ok {
		return v
	}
	return ""
}

// currentUser returns the authenticated caller stored by JWTAuth.
func currentUser(c echo.Context) (repository.User, bool) {
	u, ok := c.Get(middleware.CtxUser).(repository.User)
	return u, ok
}
