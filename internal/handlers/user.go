package handlers

import (
	"net/http"

	"github.com/anonto42/yatube/backend/internal/apperrors"
	"github.com/anonto42/yatube/backend/internal/middleware"
	"github.com/anonto42/yatube/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// UserHandler serves the viewer's own account
type UserHandler struct {
	userRepository repositories.UserRepository
}

// UpdateProfileRequest defines the editable account fields
type UpdateProfileRequest struct {
	Name string `json:"name" validate:"max=50"`
}

func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/me", h.GetProfile, middleware.RequireViewer)
	g.PUT("/me", h.UpdateProfile, middleware.RequireViewer)
}

// GetProfile returns the authenticated user
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.userRepository.GetUserByID(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success(user))
}

// UpdateProfile changes the display name of the authenticated user
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest("invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(ctx, getUserIDFromContext(c))
	if err != nil {
		return err
	}
	user.Name = req.Name
	if err := h.userRepository.UpdateUser(ctx, user); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success(user))
}
