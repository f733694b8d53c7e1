package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Ryan-Badaloo/Inventory-Back-End/internal/config"
	"github.com/Ryan-Badaloo/Inventory-Back-End/internal/repository"
	"github.com/Ryan-Badaloo/Inventory-Back-End/internal/utils"
)

// AuthHandler bundles dependencies for the login and self-service endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

type tokenResp struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Token handles POST /token.  Credentials arrive form-encoded as username and
// password; username is the staff email.  A bad email and a bad password are
// deliberately indistinguishable: both produce the same 401 with a bearer
// challenge.
func (h *AuthHandler) Token(c echo.Context) error {
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")
	if username == "" || password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, ok, err := h.Users.Authenticate(ctx, username, password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !ok {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "incorrect username or password"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, utils.IdentityClaims{
		Email:     u.Email,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		RoleID:    u.RoleID,
	}, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, tokenResp{AccessToken: access.Token, TokenType: "bearer"})
}

// Me handles GET /users/me/ and returns the authenticated user's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, u)
}

type changePasswordReq struct {
	Password string `json:"password"`
}

// ChangePassword handles PUT /change-password/ for the authenticated user.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req changePasswordReq
	if err := c.Bind(&req); err != nil || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Users.UpdatePassword(ctx, u.Email, req.Password, h.Cfg.BcryptCost); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "password updated"})
}
