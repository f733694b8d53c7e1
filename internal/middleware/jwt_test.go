package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/Ryan-Badaloo/Inventory-Back-End/internal/repository"
	"github.com/Ryan-Badaloo/Inventory-Back-End/internal/utils"
)

type stubUsers struct {
	users map[string]repository.User
}

func (s stubUsers) GetByEmail(_ context.Context, email string) (repository.User, error) {
	u, ok := s.users[email]
	if !ok {
		return repository.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

const testSecret = "jwt-test-secret"

func signedToken(t *testing.T, email string) string {
	t.Helper()
	at, err := utils.NewAccessToken(testSecret, utils.IdentityClaims{
		Email: email, Firstname: "Pat", Lastname: "Rivers",
	}, 30)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	return at.Token
}

func expiredToken(t *testing.T, email string) string {
	t.Helper()
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": email,
		"exp": now.Add(-time.Minute).Unix(),
		"iat": now.Add(-time.Hour).Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign expired token: %v", err)
	}
	return raw
}

// invoke runs a request with the given Authorization header through JWTAuth
// and a handler that records whether it was reached.
func invoke(t *testing.T, authHeader string, users UserLookup) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/get-items/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	h := JWTAuth(testSecret, users)(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec, reached
}

func TestJWTAuthValidToken(t *testing.T) {
	users := stubUsers{users: map[string]repository.User{
		"pat@example.com": {ID: 7, Firstname: "Pat", Lastname: "Rivers", Email: "pat@example.com"},
	}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/get-items/", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "pat@example.com"))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := JWTAuth(testSecret, users)(func(c echo.Context) error {
		u, ok := c.Get(CtxUser).(repository.User)
		if !ok || u.ID != 7 {
			t.Errorf("CtxUser = %#v, want user 7", c.Get(CtxUser))
		}
		if got := c.Get(CtxFullName); got != "Pat Rivers" {
			t.Errorf("CtxFullName = %v, want Pat Rivers", got)
		}
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestJWTAuthRejections(t *testing.T) {
	users := stubUsers{users: map[string]repository.User{
		"pat@example.com": {ID: 7, Firstname: "Pat", Lastname: "Rivers", Email: "pat@example.com"},
	}}

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"garbage token", "Bearer not.a.jwt"},
		{"expired token", "Bearer " + expiredToken(t, "pat@example.com")},
		{"unknown subject", "Bearer " + signedToken(t, "gone@example.com")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, reached := invoke(t, tc.header, users)
			if reached {
				t.Fatal("handler ran despite invalid credentials")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
			if got := rec.Header().Get(echo.HeaderWWWAuthenticate); got != "Bearer" {
				t.Errorf("WWW-Authenticate = %q, want Bearer", got)
			}
		})
	}
}
