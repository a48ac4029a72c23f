package model

import (
	"time"
)

// CreatePostRequest POST /posts のリクエストボディ
type CreatePostRequest struct {
	Text        string    `json:"text" validate:"required"`
	Location    *Location `json:"location" validate:"required"`
	IsAnonymous bool      `json:"is_anonymous"`
}

type Location struct {
	Latitude  float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"required,min=-180,max=180"`
}

type CreatePostResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	PostID  string `json:"post_id"`
}

// PostSummary 一覧取得時の投稿表現
type PostSummary struct {
	ID           string    `json:"id"`
	Text         string    `json:"text"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	LikeCount    int       `json:"like_count"`
	CommentCount int       `json:"comment_count"`
	IsAnonymous  bool      `json:"is_anonymous"`
	CreatedAt    time.Time `json:"created_at"`
}

type GetPostsResponse struct {
	Posts []PostSummary `json:"posts"`
}
