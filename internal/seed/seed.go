// Package seed fills an empty installation with demo content.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/anonto42/yatube/backend/internal/models"
	"github.com/anonto42/yatube/backend/internal/repositories"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// DemoPassword is the password of every demo account.
const DemoPassword = "demo-password"

var demoUsers = []string{"leo", "tolstoy", "chekhov"}

// Demo creates a group, three users, a few follow edges and posts unless
// users already exist. It reports whether anything was created.
func Demo(
	ctx context.Context,
	users repositories.UserRepository,
	groups repositories.GroupRepository,
	follows repositories.FollowRepository,
	posts repositories.PostRepository,
	log *zap.Logger,
) (bool, error) {
	count, err := users.CountUsers(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		log.Debug("Skipping demo seed, users exist", zap.Int64("users", count))
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	group := &models.Group{Title: "Russian classics", Slug: "classics", Description: "Notes on the great novels"}
	if err := groups.CreateGroup(ctx, group); err != nil {
		return false, fmt.Errorf("seed group: %w", err)
	}

	created := make([]*models.User, 0, len(demoUsers))
	for _, name := range demoUsers {
		u := &models.User{Username: name, Name: name, Email: name + "@example.com", Password: string(hash)}
		if err := users.CreateUser(ctx, u); err != nil {
			return false, fmt.Errorf("seed user %s: %w", name, err)
		}
		created = append(created, u)
	}

	// leo follows everyone else
	for _, author := range created[1:] {
		if _, err := follows.Follow(ctx, created[0].ID, author.ID); err != nil {
			return false, fmt.Errorf("seed follow: %w", err)
		}
	}

	start := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 24; i++ {
		author := created[i%len(created)]
		post := &models.Post{
			AuthorID:  author.ID,
			Text:      fmt.Sprintf("Demo post %d by %s", i+1, author.Username),
			CreatedAt: start.Add(time.Duration(i) * time.Minute),
		}
		if i%2 == 0 {
			post.GroupID = &group.ID
		}
		if err := posts.CreatePost(ctx, post); err != nil {
			return false, fmt.Errorf("seed post: %w", err)
		}
	}

	log.Info("Demo content created", zap.Int("users", len(created)), zap.Int("posts", 24))
	return true, nil
}
