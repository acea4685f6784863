package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/anonto42/yatube/backend/internal/apperrors"
	"github.com/anonto42/yatube/backend/internal/models"
	"gorm.io/gorm"
)

// postOrder is the feed order for the posts table.
const postOrder = "created_at DESC, id DESC"

// SQLPostRepository implements PostRepository on the relational database
type SQLPostRepository struct {
	db *gorm.DB
}

// NewSQLPostRepository creates a new SQLPostRepository
func NewSQLPostRepository(db *gorm.DB) *SQLPostRepository {
	return &SQLPostRepository{db: db}
}

func (r *SQLPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	preparePost(post)
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *SQLPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("post")
		}
		return nil, err
	}
	return &post, nil
}

func (r *SQLPostRepository) UpdatePost(ctx context.Context, post *models.Post) error {
	post.UpdatedAt = time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", post.ID).Updates(map[string]interface{}{
		"text":       post.Text,
		"group_id":   post.GroupID,
		"image":      post.Image,
		"updated_at": post.UpdatedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("post")
	}
	return nil
}

func (r *SQLPostRepository) CountPosts(ctx context.Context, filter PostFilter) (int, error) {
	if filter.matchesNothing() {
		return 0, nil
	}
	var count int64
	if err := r.scoped(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *SQLPostRepository) FindPosts(ctx context.Context, filter PostFilter, skip, limit int) ([]models.Post, error) {
	posts := []models.Post{}
	if filter.matchesNothing() || limit <= 0 {
		return posts, nil
	}
	err := r.scoped(ctx, filter).Order(postOrder).Offset(skip).Limit(limit).Find(&posts).Error
	return posts, err
}

func (r *SQLPostRepository) scoped(ctx context.Context, f PostFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Post{})
	if f.GroupID != nil {
		q = q.Where("group_id = ?", *f.GroupID)
	}
	if f.AuthorIDs != nil {
		q = q.Where("author_id IN ?", f.AuthorIDs)
	}
	if f.ExcludeAuthorID != 0 {
		q = q.Where("author_id <> ?", f.ExcludeAuthorID)
	}
	return q
}
