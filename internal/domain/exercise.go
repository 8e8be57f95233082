package domain

import "time"

// Exercise is a wiki entry authored by a coach. Entries are visible only
// within the coach's cohort: the coach themselves and their students.
type Exercise struct {
	ID string `bson:"_id,omitempty" json:"id"`

	// AuthorID is the immutable owner key used for all visibility and
	// ownership checks. AuthorName is carried for rendering only; two
	// coaches may share a display name.
	AuthorID   string `bson:"authorId" json:"authorId"`
	AuthorName string `bson:"authorName" json:"authorName"`

	Name     string `bson:"name" json:"name"`
	Muscle   string `bson:"muscle" json:"muscle"` // muscle group tag
	Guide    string `bson:"guide,omitempty" json:"guide,omitempty"`
	ImageURL string `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Level    int    `bson:"level,omitempty" json:"level,omitempty"` // 1..5
	Tools    string `bson:"tools,omitempty" json:"tools,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
