package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/repository"
	"github.com/iliyamo/event-ticketing/internal/utils"
)

// UserHandler lets administrators open staff and organizer accounts.
// There is no self sign-up.
type UserHandler struct {
	Users      UserStore
	BcryptCost int
	logger     *slog.Logger
}

func NewUserHandler(u UserStore, bcryptCost int, logger *slog.Logger) *UserHandler {
	return &UserHandler{Users: u, BcryptCost: bcryptCost, logger: logger}
}

type createUserReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
	DNI      string `json:"dni"`
	Phone    string `json:"phone"`
}

func validRole(role string) bool {
	switch role {
	case model.RoleAdmin, model.RoleChiefOrganizer, model.RoleOrganizer, model.RoleTicketing:
		return true
	}
	return false
}

// Create opens an account.
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email", "field": "email"})
	}
	if len(req.Password) < utils.MinPasswordLen {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password too short", "field": "password"})
	}
	req.Role = strings.ToUpper(strings.TrimSpace(req.Role))
	if !validRole(req.Role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid role", "field": "role"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	id, err := h.Users.Create(ctx, repository.NewUser{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		FullName: req.FullName,
		DNI:      req.DNI,
		Phone:    req.Phone,
	}, h.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, userPart{ID: id, Email: req.Email, Role: req.Role})
}
