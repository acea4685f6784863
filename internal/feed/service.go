// Package feed assembles the paginated post listings: the global index,
// group pages, author profiles and the following feed.
package feed

import (
	"context"
	"fmt"

	"github.com/anonto42/yatube/backend/internal/apperrors"
	"github.com/anonto42/yatube/backend/internal/models"
	"github.com/anonto42/yatube/backend/internal/pagination"
	"github.com/anonto42/yatube/backend/internal/repositories"
	"github.com/anonto42/yatube/backend/pkg/logger"
	"go.uber.org/zap"
)

// Page is one page of a feed. It is rebuilt on every request.
type Page struct {
	Posts []models.Post `json:"posts"`
	Total int           `json:"totalItems"`
	pagination.Window
}

// Profile is an author's page together with the viewer's relation to them.
type Profile struct {
	*Page
	Author         *models.User
	Following      bool
	FollowersCount int64
	FollowingCount int64
}

// Service reads posts and the follow graph to build feeds. It never
// mutates posts; Follow and Unfollow only touch the follow graph.
type Service struct {
	posts    repositories.PostRepository
	follows  repositories.FollowRepository
	users    repositories.UserRepository
	groups   repositories.GroupRepository
	pageSize int
	log      *zap.Logger
}

// NewService creates a feed Service showing pageSize posts per page
func NewService(
	posts repositories.PostRepository,
	follows repositories.FollowRepository,
	users repositories.UserRepository,
	groups repositories.GroupRepository,
	pageSize int,
	log *zap.Logger,
) *Service {
	if pageSize < 1 {
		pageSize = pagination.DefaultPageSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		posts:    posts,
		follows:  follows,
		users:    users,
		groups:   groups,
		pageSize: pageSize,
		log:      log,
	}
}

// PageSize is the number of posts per page
func (s *Service) PageSize() int {
	return s.pageSize
}

// GlobalFeed returns a page of all posts
func (s *Service) GlobalFeed(ctx context.Context, page int) (*Page, error) {
	return s.paginate(ctx, repositories.PostFilter{}, page)
}

// GroupFeed returns a page of the posts published to the group with slug
func (s *Service) GroupFeed(ctx context.Context, slug string, page int) (*Page, *models.Group, error) {
	group, err := s.groups.GetGroupBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	p, err := s.paginate(ctx, repositories.PostFilter{GroupID: &group.ID}, page)
	if err != nil {
		return nil, nil, err
	}
	return p, group, nil
}

// ProfileFeed returns a page of username's posts. viewerID is 0 for
// anonymous viewers, who never follow anyone.
func (s *Service) ProfileFeed(ctx context.Context, username string, page int, viewerID uint) (*Profile, error) {
	author, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	p, err := s.paginate(ctx, repositories.PostFilter{AuthorIDs: []uint{author.ID}}, page)
	if err != nil {
		return nil, err
	}

	profile := &Profile{Page: p, Author: author}
	if viewerID != 0 && viewerID != author.ID {
		if profile.Following, err = s.follows.IsFollowing(ctx, viewerID, author.ID); err != nil {
			return nil, fmt.Errorf("check following: %w", err)
		}
	}
	if profile.FollowersCount, err = s.follows.FollowersCount(ctx, author.ID); err != nil {
		return nil, fmt.Errorf("count followers: %w", err)
	}
	if profile.FollowingCount, err = s.follows.FollowingCount(ctx, author.ID); err != nil {
		return nil, fmt.Errorf("count following: %w", err)
	}
	return profile, nil
}

// FollowingFeed returns a page of posts by the authors viewerID follows.
// The viewer's own posts never appear, even if a self edge exists.
func (s *Service) FollowingFeed(ctx context.Context, viewerID uint, page int) (*Page, error) {
	if viewerID == 0 {
		return nil, apperrors.Unauthorized("login required to read the following feed")
	}

	authorIDs, err := s.follows.FolloweeIDs(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("load followees: %w", err)
	}
	if authorIDs == nil {
		authorIDs = []uint{}
	}

	return s.paginate(ctx, repositories.PostFilter{AuthorIDs: authorIDs, ExcludeAuthorID: viewerID}, page)
}

// Follow subscribes viewerID to username. Following yourself or following
// twice does nothing.
func (s *Service) Follow(ctx context.Context, viewerID uint, username string) error {
	if viewerID == 0 {
		return apperrors.Unauthorized("login required to follow authors")
	}
	author, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	if author.ID == viewerID {
		return nil
	}

	created, err := s.follows.Follow(ctx, viewerID, author.ID)
	if err != nil {
		return fmt.Errorf("follow %s: %w", username, err)
	}
	if created {
		s.log.Info("User followed author", logger.WithUserID(viewerID), zap.Uint("author_id", author.ID))
	}
	return nil
}

// Unfollow removes viewerID's subscription to username if there is one.
func (s *Service) Unfollow(ctx context.Context, viewerID uint, username string) error {
	if viewerID == 0 {
		return apperrors.Unauthorized("login required to unfollow authors")
	}
	author, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	if err := s.follows.Unfollow(ctx, viewerID, author.ID); err != nil {
		return fmt.Errorf("unfollow %s: %w", username, err)
	}
	s.log.Debug("User unfollowed author", logger.WithUserID(viewerID), zap.Uint("author_id", author.ID))
	return nil
}

func (s *Service) paginate(ctx context.Context, filter repositories.PostFilter, requested int) (*Page, error) {
	total, err := s.posts.CountPosts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}

	window := pagination.Paginate(total, s.pageSize, requested)
	posts, err := s.posts.FindPosts(ctx, filter, window.Start, window.Limit())
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}

	return &Page{Posts: posts, Total: total, Window: window}, nil
}
