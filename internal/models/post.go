package models

import (
	"time"
)

// Post is a blog entry. It is stored in MongoDB by default and in the SQL
// database when the relational post store is selected.
type Post struct {
	ID        string    `json:"id" bson:"_id" gorm:"primaryKey;size:24"`
	AuthorID  uint      `json:"author_id" bson:"author_id" gorm:"not null;index"`
	GroupID   *uint     `json:"group_id,omitempty" bson:"group_id,omitempty" gorm:"index"`
	Text      string    `json:"text" bson:"text" gorm:"type:text;not null"`
	Image     string    `json:"image,omitempty" bson:"image,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// NewerFirst reports whether a sorts before b in every feed: newest first,
// higher id first on equal timestamps.
func NewerFirst(a, b Post) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Text    string `json:"text" validate:"required,min=1,max=5000"`
	GroupID *uint  `json:"group_id,omitempty" validate:"omitempty,min=1"`
	Image   string `json:"image,omitempty" validate:"omitempty,max=255"`
}

// UpdatePostRequest defines the request body for editing a post. Text is
// required like on creation; a nil group detaches the post.
type UpdatePostRequest struct {
	Text    string `json:"text" validate:"required,min=1,max=5000"`
	GroupID *uint  `json:"group_id,omitempty" validate:"omitempty,min=1"`
	Image   string `json:"image,omitempty" validate:"omitempty,max=255"`
}

// PostView is a post as rendered in feeds.
type PostView struct {
	Post
	Author UserCompact `json:"author"`
	Group  *GroupRef   `json:"group,omitempty"`
}
