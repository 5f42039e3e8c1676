package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostVisibility controls who can read a post
type PostVisibility string

const (
	VisibilityPublic      PostVisibility = "public"
	VisibilityConnections PostVisibility = "connections"
	VisibilityPrivate     PostVisibility = "private"
)

// Valid reports whether v is a known visibility
func (v PostVisibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityConnections, VisibilityPrivate:
		return true
	}
	return false
}

// MediaItem attached to a post
type MediaItem struct {
	URL  string `bson:"url" json:"url"`
	Type string `bson:"type" json:"type"`
}

// Like on a post
type Like struct {
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Comment on a post
type Comment struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Post is a member's status update
type Post struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	AuthorID   primitive.ObjectID `bson:"authorId" json:"authorId"`
	Content    string             `bson:"content" json:"content"`
	Media      []MediaItem        `bson:"media,omitempty" json:"media,omitempty"`
	Visibility PostVisibility     `bson:"visibility" json:"visibility"`
	Likes      []Like             `bson:"likes" json:"likes"`
	Comments   []Comment          `bson:"comments" json:"comments"`
	Tags       []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// LikedBy reports whether userID has liked the post
func (p *Post) LikedBy(userID primitive.ObjectID) bool {
	for _, l := range p.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}
