package handlers

import (
	"context"
	"net/http"

	"github.com/anonto42/yatube/backend/internal/apperrors"
	"github.com/anonto42/yatube/backend/internal/feed"
	"github.com/anonto42/yatube/backend/internal/middleware"
	"github.com/anonto42/yatube/backend/internal/models"
	"github.com/anonto42/yatube/backend/internal/repositories"
	"github.com/anonto42/yatube/backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository    repositories.PostRepository
	groupRepository   repositories.GroupRepository
	commentRepository repositories.CommentRepository
	userRepository    repositories.UserRepository
	feeds             *feed.Service
	log               *zap.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	postRepo repositories.PostRepository,
	groupRepo repositories.GroupRepository,
	commentRepo repositories.CommentRepository,
	userRepo repositories.UserRepository,
	feeds *feed.Service,
	log *zap.Logger,
) *PostHandler {
	return &PostHandler{
		postRepository:    postRepo,
		groupRepository:   groupRepo,
		commentRepository: commentRepo,
		userRepository:    userRepo,
		feeds:             feeds,
		log:               log,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost, middleware.RequireViewer)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.UpdatePost, middleware.RequireViewer)
}

// CreatePost publishes a post as the viewer. New posts reach the global
// feed once its cached pages expire.
func (h *PostHandler) CreatePost(c echo.Context) error {
	ctx := c.Request().Context()
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest("invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.checkGroup(ctx, req.GroupID); err != nil {
		return err
	}

	post := &models.Post{
		AuthorID: getUserIDFromContext(c),
		GroupID:  req.GroupID,
		Text:     req.Text,
		Image:    req.Image,
	}
	if err := h.postRepository.CreatePost(ctx, post); err != nil {
		return err
	}
	h.log.Info("Post created", logger.WithPostID(post.ID), zap.Uint("author_id", post.AuthorID))

	return c.JSON(http.StatusCreated, success(post))
}

// GetPost returns a post with its author and comments
func (h *PostHandler) GetPost(c echo.Context) error {
	ctx := c.Request().Context()
	post, err := h.postRepository.GetPostByID(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	views, err := h.feeds.Views(ctx, []models.Post{*post})
	if err != nil {
		return err
	}
	authorPosts, err := h.postRepository.CountPosts(ctx, repositories.PostFilter{AuthorIDs: []uint{post.AuthorID}})
	if err != nil {
		return err
	}
	comments, err := h.commentViews(ctx, post.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, success(echo.Map{
		"post":               views[0],
		"author_posts_count": authorPosts,
		"comments":           comments,
	}))
}

// UpdatePost edits the text, group and image of the viewer's own post
func (h *PostHandler) UpdatePost(c echo.Context) error {
	ctx := c.Request().Context()
	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest("invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	if post.AuthorID != getUserIDFromContext(c) {
		return apperrors.Forbidden("only the author can edit this post")
	}
	if err := h.checkGroup(ctx, req.GroupID); err != nil {
		return err
	}

	post.Text = req.Text
	post.GroupID = req.GroupID
	post.Image = req.Image
	if err := h.postRepository.UpdatePost(ctx, post); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, success(post))
}

func (h *PostHandler) checkGroup(ctx context.Context, groupID *uint) error {
	if groupID == nil {
		return nil
	}
	if _, err := h.groupRepository.GetGroupByID(ctx, *groupID); err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return apperrors.BadRequest("unknown group")
		}
		return err
	}
	return nil
}

func (h *PostHandler) commentViews(ctx context.Context, postID string) ([]models.CommentView, error) {
	comments, err := h.commentRepository.GetCommentsByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}

	authorIDs := make([]uint, 0, len(comments))
	for _, cm := range comments {
		authorIDs = append(authorIDs, cm.AuthorID)
	}
	users, err := h.userRepository.GetUsersByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	userMap := make(map[uint]models.UserCompact, len(users))
	for i := range users {
		userMap[users[i].ID] = users[i].ToCompact()
	}

	views := make([]models.CommentView, len(comments))
	for i, cm := range comments {
		views[i] = models.CommentView{Comment: cm, Author: userMap[cm.AuthorID]}
	}
	return views, nil
}
