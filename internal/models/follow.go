package models

import "time"

// Follow is a directed subscription: UserID reads AuthorID's posts in the
// following feed.
type Follow struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_follow_user_author"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index;uniqueIndex:idx_follow_user_author"`
	CreatedAt time.Time `json:"created_at"`
}
