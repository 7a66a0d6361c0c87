package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"carrental/internal/service"
)

// UserHandler bundles user directory endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// UpdateAccountRequest is the self-service account update payload. Empty
// fields are left unchanged; a non-empty password is re-hashed.
type UpdateAccountRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Username string `json:"username" validate:"omitempty,min=3"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Router /user/all [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.List(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return ok(c, "retrieving all users", users)
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	user, err := h.svc.Get(c.Request().Context(), uint(id))
	if err != nil {
		return domainError(err)
	}
	return ok(c, "retrieving user by ID", user)
}

// UpdateAccount godoc
// @Summary Update the authenticated user's own account
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateAccountRequest true "Account fields"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Router /user [put]
func (h *UserHandler) UpdateAccount(c echo.Context) error {
	principal, found := currentPrincipal(c)
	if !found {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing principal")
	}

	var req UpdateAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// The account is resolved from the token, not the payload, so a rider
	// can only ever update themselves.
	user, err := h.svc.GetByUsername(c.Request().Context(), principal.Username)
	if err != nil {
		return domainError(err)
	}

	updated, err := h.svc.Update(c.Request().Context(), service.UpdateUserParams{
		ID:       user.ID,
		Name:     req.Name,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if err == service.ErrUsernameTaken {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return domainError(err)
	}
	return ok(c, "user updated", updated)
}

// DeleteUser godoc
// @Summary Delete a user account
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Router /user/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), uint(id)); err != nil {
		return domainError(err)
	}
	return ok(c, "user deleted", nil)
}
