package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Ryan-Badaloo/Inventory-Back-End/internal/config"
	"github.com/Ryan-Badaloo/Inventory-Back-End/internal/repository"
)

// UserHandler implements staff account administration.
type UserHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewUserHandler(cfg config.Config, u *repository.UserRepo) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: u}
}

type createUserReq struct {
	Firstname string  `json:"firstname"`
	Lastname  string  `json:"lastname"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	RoleID    *uint64 `json:"role_id"`
	Active    bool    `json:"active"`
}

// CreateUser handles POST /create-user/.  Email uniqueness is case sensitive;
// an existing email yields a 400 and leaves the original account untouched.
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Firstname == "" || req.Lastname == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "firstname/lastname/email/password required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u := repository.User{
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Email:     req.Email,
		RoleID:    req.RoleID,
		Active:    req.Active,
	}
	if _, err := h.Users.Create(ctx, &u, req.Password, h.Cfg.BcryptCost); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "user already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "User created successfully"})
}

type deleteUserReq struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
}

// DeleteUser handles DELETE /delete-user/.  All three identity fields must
// match one row exactly; anything less is a 404.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	var req deleteUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Firstname == "" || req.Lastname == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "firstname/lastname/email required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Users.Delete(ctx, req.Firstname, req.Lastname, req.Email); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted successfully"})
}
