package models

// Group is a community posts can be published to.
type Group struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"size:200;not null"`
	Slug        string `json:"slug" gorm:"size:100;uniqueIndex;not null"`
	Description string `json:"description"`
}

// GroupRef is the short form of a group embedded in posts.
type GroupRef struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// ToRef returns the short form of the group
func (g *Group) ToRef() *GroupRef {
	return &GroupRef{ID: g.ID, Title: g.Title, Slug: g.Slug}
}
