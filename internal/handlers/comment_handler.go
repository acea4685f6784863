package handlers

import (
	"net/http"

	"github.com/anonto42/yatube/backend/internal/apperrors"
	"github.com/anonto42/yatube/backend/internal/middleware"
	"github.com/anonto42/yatube/backend/internal/models"
	"github.com/anonto42/yatube/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		postRepository:    postRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:id/comments", h.CreateComment, middleware.RequireViewer)
}

// CreateComment attaches a comment by the viewer to an existing post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	ctx := c.Request().Context()
	postID := c.Param("id")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest("invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Verify post exists
	if _, err := h.postRepository.GetPostByID(ctx, postID); err != nil {
		return err
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: getUserIDFromContext(c),
		Text:     req.Text,
	}
	if err := h.commentRepository.CreateComment(ctx, comment); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, success(comment))
}
