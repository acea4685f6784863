package repositories

import (
	"fmt"

	"github.com/anonto42/yatube/backend/internal/models"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the relational schema. The posts table is
// only managed when posts live in the SQL database.
func AutoMigrate(db *gorm.DB, withPosts bool) error {
	tables := []interface{}{
		&models.User{},
		&models.Group{},
		&models.Follow{},
		&models.Comment{},
	}
	if withPosts {
		tables = append(tables, &models.Post{})
	}
	if err := db.AutoMigrate(tables...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
