package handlers

import (
	"net/http"

	"github.com/anonto42/yatube/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// GroupHandler lists the groups posts can be published to
type GroupHandler struct {
	groupRepository repositories.GroupRepository
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(groupRepo repositories.GroupRepository) *GroupHandler {
	return &GroupHandler{groupRepository: groupRepo}
}

// RegisterGroupRoutes registers group-related routes
func (h *GroupHandler) RegisterGroupRoutes(g *echo.Group) {
	g.GET("/groups", h.ListGroups)
}

// ListGroups returns every group ordered by title
func (h *GroupHandler) ListGroups(c echo.Context) error {
	groups, err := h.groupRepository.ListGroups(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success(echo.Map{"groups": groups}))
}
