package dto

import (
	"Sabzee/internal/model"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ForumListDTO binds the listing filters; every field is optional.
type ForumListDTO struct {
	Category   string `form:"category" binding:"omitempty,oneof=general crops livestock equipment pricing weather other"`
	UserType   string `form:"userType" binding:"omitempty,oneof=farmer consumer"`
	IsQuestion *bool  `form:"isQuestion"`
	Author     string `form:"author"`
	Search     string `form:"search"`
	Sort       string `form:"sort"`
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}

type CreatePostDTO struct {
	Title      string   `form:"title" binding:"required,min=1,max=255"`
	Content    string   `form:"content" binding:"required,min=1"`
	Category   string   `form:"category" binding:"omitempty,oneof=general crops livestock equipment pricing weather other"`
	IsQuestion *bool    `form:"isQuestion"`
	Tags       []string `form:"tags" binding:"omitempty,max=20,dive,max=50"`
}

type UpdatePostDTO struct {
	Title    *string   `json:"title" binding:"omitempty,min=1,max=255"`
	Content  *string   `json:"content" binding:"omitempty,min=1"`
	Category *string   `json:"category" binding:"omitempty,oneof=general crops livestock equipment pricing weather other"`
	Tags     *[]string `json:"tags" binding:"omitempty,max=20,dive,max=50"`
}

type CreateCommentDTO struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// ForumPageDTO is the listing envelope: one shaped page plus the total
// computed before pagination.
type ForumPageDTO struct {
	Posts []*model.ForumPostView `json:"posts"`
	Page  int                    `json:"page"`
	Pages int                    `json:"pages"`
	Total int64                  `json:"total"`
}

type CommentDTO struct {
	ID        primitive.ObjectID   `json:"id"`
	Content   string               `json:"content"`
	Author    *model.AuthorSummary `json:"author"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

// ForumPostDTO is the detail shape: core fields plus the populated
// author and comment authors.
type ForumPostDTO struct {
	ID           primitive.ObjectID   `json:"id"`
	Title        string               `json:"title"`
	Content      string               `json:"content"`
	IsQuestion   bool                 `json:"isQuestion"`
	Category     string               `json:"category"`
	Tags         []string             `json:"tags"`
	Images       []model.PostImage    `json:"images"`
	Likes        []primitive.ObjectID `json:"likes"`
	Comments     []*CommentDTO        `json:"comments"`
	CommentCount int                  `json:"commentCount"`
	Views        int64                `json:"views"`
	Author       *model.AuthorSummary `json:"author"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

// PostDetailDTO pairs the post with the refreshed view marker the client
// stores and echoes on its next fetch.
type PostDetailDTO struct {
	Post         *ForumPostDTO `json:"post"`
	LastViewTime time.Time     `json:"lastViewTime"`
}
