package repositories

import (
	"context"
	"errors"

	"github.com/anonto42/yatube/backend/internal/apperrors"
	"github.com/anonto42/yatube/backend/internal/models"
	"gorm.io/gorm"
)

// GroupRepository defines the interface for group lookups
type GroupRepository interface {
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroupByID(ctx context.Context, id uint) (*models.Group, error)
	GetGroupBySlug(ctx context.Context, slug string) (*models.Group, error)
	GetGroupsByIDs(ctx context.Context, ids []uint) ([]models.Group, error)
	ListGroups(ctx context.Context) ([]models.Group, error)
}

// SQLGroupRepository implements GroupRepository with GORM
type SQLGroupRepository struct {
	db *gorm.DB
}

// NewSQLGroupRepository creates a new SQLGroupRepository
func NewSQLGroupRepository(db *gorm.DB) *SQLGroupRepository {
	return &SQLGroupRepository{db: db}
}

func (r *SQLGroupRepository) CreateGroup(ctx context.Context, group *models.Group) error {
	if err := r.db.WithContext(ctx).Create(group).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("group")
		}
		return err
	}
	return nil
}

func (r *SQLGroupRepository) GetGroupByID(ctx context.Context, id uint) (*models.Group, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *SQLGroupRepository) GetGroupBySlug(ctx context.Context, slug string) (*models.Group, error) {
	return r.first(ctx, "slug = ?", slug)
}

func (r *SQLGroupRepository) GetGroupsByIDs(ctx context.Context, ids []uint) ([]models.Group, error) {
	groups := []models.Group{}
	if len(ids) == 0 {
		return groups, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&groups).Error
	return groups, err
}

func (r *SQLGroupRepository) ListGroups(ctx context.Context) ([]models.Group, error) {
	groups := []models.Group{}
	err := r.db.WithContext(ctx).Order("title").Find(&groups).Error
	return groups, err
}

func (r *SQLGroupRepository) first(ctx context.Context, query string, arg interface{}) (*models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).Where(query, arg).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("group")
		}
		return nil, err
	}
	return &group, nil
}
