package repositories

import (
	"context"

	"github.com/anonto42/yatube/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	// GetCommentsByPostID returns the comments of a post, oldest first.
	GetCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error)
}

// SQLCommentRepository implements CommentRepository with GORM
type SQLCommentRepository struct {
	db *gorm.DB
}

// NewSQLCommentRepository creates a new SQLCommentRepository
func NewSQLCommentRepository(db *gorm.DB) *SQLCommentRepository {
	return &SQLCommentRepository{db: db}
}

// CreateComment creates a new comment
func (r *SQLCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// GetCommentsByPostID retrieves all comments for a specific post
func (r *SQLCommentRepository) GetCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := r.db.WithContext(ctx).Where("post_id = ?", postID).Order("created_at ASC, id ASC").Find(&comments).Error
	return comments, err
}
