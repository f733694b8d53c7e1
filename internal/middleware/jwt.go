package middleware // middleware contains reusable HTTP middleware functions

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/Ryan-Badaloo/Inventory-Back-End/internal/repository"
)

// UserLookup resolves a token subject back to a staff user.  UserRepo
// satisfies it; tests substitute a stub.
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (repository.User, error)
}

// Context keys set by JWTAuth for downstream handlers.
const (
	CtxUser     = "current_user" // repository.User of the authenticated caller
	CtxFullName = "full_name"    // "firstname lastname" for attribution stamps
)

// unauthorized writes a 401 with the bearer challenge header.  Every token
// failure, whatever its cause, takes this one path.
func unauthorized(c echo.Context, msg string) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": msg})
}

// JWTAuth returns an Echo middleware that validates a Bearer access token and
// re-resolves its subject email against the users table.  A token whose
// signature fails, that is malformed or expired, or whose subject no longer
// names a known user is rejected with 401 and a WWW-Authenticate: Bearer
// challenge.  On success the user and their full name are stored in the
// request context for handlers to stamp into audit fields.
func JWTAuth(secret string, users UserLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return unauthorized(c, "missing bearer token")
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return unauthorized(c, "could not validate credentials")
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return unauthorized(c, "could not validate credentials")
			}
			email, _ := claims["sub"].(string)
			if email == "" {
				return unauthorized(c, "could not validate credentials")
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			u, err := users.GetByEmail(ctx, email)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					return unauthorized(c, "could not validate credentials")
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "user lookup failed"})
			}

			c.Set(CtxUser, u)
			c.Set(CtxFullName, u.Firstname+" "+u.Lastname)
			return next(c)
		}
	}
}
