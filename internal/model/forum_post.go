package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ForumCategories = []string{"general", "crops", "livestock", "equipment", "pricing", "weather", "other"}

const ForumCategoryDefault = "general"

// IsForumCategory reports whether c is one of the fixed category values.
func IsForumCategory(c string) bool {
	for _, v := range ForumCategories {
		if v == c {
			return true
		}
	}
	return false
}

type ForumPost struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title        string               `bson:"title" json:"title"`
	Content      string               `bson:"content" json:"content"`
	Author       primitive.ObjectID   `bson:"author" json:"author"`
	IsQuestion   bool                 `bson:"isQuestion" json:"isQuestion"`
	Category     string               `bson:"category" json:"category"`
	Tags         []string             `bson:"tags" json:"tags"`
	Images       []PostImage          `bson:"images" json:"images"`
	Likes        []primitive.ObjectID `bson:"likes" json:"likes"`
	Comments     []Comment            `bson:"comments" json:"comments"`
	CommentCount int                  `bson:"commentCount" json:"commentCount"`
	Views        int64                `bson:"views" json:"views"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// PostImage carries its own id so single images can be addressed for deletion.
type PostImage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	URL       string             `bson:"url" json:"url"`
	StorageID string             `bson:"storageId" json:"storageId"`
}

// Comment is embedded in its parent post and never outlives it.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Author    primitive.ObjectID `bson:"author" json:"author"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ForumPostView is the query planner projection: post core fields plus
// the joined author summary.
type ForumPostView struct {
	ID           primitive.ObjectID   `bson:"_id" json:"id"`
	Title        string               `bson:"title" json:"title"`
	Content      string               `bson:"content" json:"content"`
	IsQuestion   bool                 `bson:"isQuestion" json:"isQuestion"`
	Category     string               `bson:"category" json:"category"`
	Tags         []string             `bson:"tags" json:"tags"`
	Images       []PostImage          `bson:"images" json:"images"`
	Likes        []primitive.ObjectID `bson:"likes" json:"likes"`
	CommentCount int                  `bson:"commentCount" json:"commentCount"`
	Views        int64                `bson:"views" json:"views"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt" json:"updatedAt"`
	Author       AuthorSummary        `bson:"author" json:"author"`
}
