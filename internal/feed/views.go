package feed

import (
	"context"
	"fmt"

	"github.com/anonto42/yatube/backend/internal/models"
)

// Views attaches authors and groups to posts, loading each in one query.
func (s *Service) Views(ctx context.Context, posts []models.Post) ([]models.PostView, error) {
	views := make([]models.PostView, len(posts))
	if len(posts) == 0 {
		return views, nil
	}

	authorSet := make(map[uint]struct{})
	groupSet := make(map[uint]struct{})
	for _, p := range posts {
		authorSet[p.AuthorID] = struct{}{}
		if p.GroupID != nil {
			groupSet[*p.GroupID] = struct{}{}
		}
	}

	users, err := s.users.GetUsersByIDs(ctx, keys(authorSet))
	if err != nil {
		return nil, fmt.Errorf("load authors: %w", err)
	}
	userMap := make(map[uint]models.UserCompact, len(users))
	for i := range users {
		userMap[users[i].ID] = users[i].ToCompact()
	}

	groups, err := s.groups.GetGroupsByIDs(ctx, keys(groupSet))
	if err != nil {
		return nil, fmt.Errorf("load groups: %w", err)
	}
	groupMap := make(map[uint]*models.GroupRef, len(groups))
	for i := range groups {
		groupMap[groups[i].ID] = groups[i].ToRef()
	}

	for i, p := range posts {
		views[i] = models.PostView{Post: p, Author: userMap[p.AuthorID]}
		if p.GroupID != nil {
			views[i].Group = groupMap[*p.GroupID]
		}
	}
	return views, nil
}

func keys(set map[uint]struct{}) []uint {
	out := make([]uint, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}
