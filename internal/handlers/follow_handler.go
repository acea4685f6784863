package handlers

import (
	"net/http"

	"github.com/anonto42/yatube/backend/internal/feed"
	"github.com/anonto42/yatube/backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	feeds *feed.Service
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(feeds *feed.Service) *FollowHandler {
	return &FollowHandler{feeds: feeds}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/profile/:username/follow", h.FollowUser, middleware.RequireViewer)
	g.DELETE("/profile/:username/follow", h.UnfollowUser, middleware.RequireViewer)
}

// FollowUser subscribes the viewer to an author. Following yourself or an
// author you already follow succeeds without changes.
func (h *FollowHandler) FollowUser(c echo.Context) error {
	username := c.Param("username")
	if err := h.feeds.Follow(c.Request().Context(), getUserIDFromContext(c), username); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Followed " + username})
}

// UnfollowUser removes the viewer's subscription to an author
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	username := c.Param("username")
	if err := h.feeds.Unfollow(c.Request().Context(), getUserIDFromContext(c), username); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Unfollowed " + username})
}
