package repositories

import (
	"context"

	"github.com/anonto42/yatube/backend/internal/apperrors"
	"github.com/anonto42/yatube/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines the interface for the follow graph
type FollowRepository interface {
	// Follow adds the edge follower -> author and reports whether it was new.
	Follow(ctx context.Context, followerID, authorID uint) (bool, error)
	// Unfollow removes the edge; a missing edge is not an error.
	Unfollow(ctx context.Context, followerID, authorID uint) error
	IsFollowing(ctx context.Context, followerID, authorID uint) (bool, error)
	FolloweeIDs(ctx context.Context, followerID uint) ([]uint, error)
	FollowersCount(ctx context.Context, authorID uint) (int64, error)
	FollowingCount(ctx context.Context, followerID uint) (int64, error)
}

// SQLFollowRepository implements FollowRepository with GORM
type SQLFollowRepository struct {
	db *gorm.DB
}

// NewSQLFollowRepository creates a new SQLFollowRepository
func NewSQLFollowRepository(db *gorm.DB) *SQLFollowRepository {
	return &SQLFollowRepository{db: db}
}

func (r *SQLFollowRepository) Follow(ctx context.Context, followerID, authorID uint) (bool, error) {
	if followerID == authorID {
		return false, apperrors.InvalidOperation("cannot follow yourself")
	}
	follow := &models.Follow{UserID: followerID, AuthorID: authorID}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(follow)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *SQLFollowRepository) Unfollow(ctx context.Context, followerID, authorID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", followerID, authorID).
		Delete(&models.Follow{}).Error
}

func (r *SQLFollowRepository) IsFollowing(ctx context.Context, followerID, authorID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", followerID, authorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *SQLFollowRepository) FolloweeIDs(ctx context.Context, followerID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_id = ?", followerID).
		Pluck("author_id", &ids).Error
	return ids, err
}

func (r *SQLFollowRepository) FollowersCount(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

func (r *SQLFollowRepository) FollowingCount(ctx context.Context, followerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("user_id = ?", followerID).Count(&count).Error
	return count, err
}
