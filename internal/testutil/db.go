// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/anonto42/yatube/backend/internal/models"
	"github.com/anonto42/yatube/backend/internal/repositories"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteDB opens a migrated in-memory SQLite database that lives for the
// duration of the test.
func NewSQLiteDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every new connection would get its own empty in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, repositories.AutoMigrate(db, true))
	return db
}

// BaseTime is the creation time of the first fixture post.
var BaseTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// CreateUser stores a user with the given username.
func CreateUser(t testing.TB, users repositories.UserRepository, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com"}
	require.NoError(t, users.CreateUser(context.Background(), user))
	return user
}

// CreateGroup stores a group with the given slug.
func CreateGroup(t testing.TB, groups repositories.GroupRepository, slug string) *models.Group {
	t.Helper()
	group := &models.Group{Title: "Group " + slug, Slug: slug}
	require.NoError(t, groups.CreateGroup(context.Background(), group))
	return group
}

// CreatePosts stores n posts by author, one second apart starting at start.
func CreatePosts(t testing.TB, posts repositories.PostRepository, author uint, groupID *uint, start time.Time, n int) []models.Post {
	t.Helper()
	created := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		post := &models.Post{
			AuthorID:  author,
			GroupID:   groupID,
			Text:      fmt.Sprintf("post %d by %d", i, author),
			CreatedAt: start.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, posts.CreatePost(context.Background(), post))
		created = append(created, *post)
	}
	return created
}
