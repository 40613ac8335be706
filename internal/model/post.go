package model

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	Id             uuid.UUID
	AuthorId       uuid.UUID
	Content        string
	CreateDatetime time.Time
	UpdateDatetime time.Time
}

type PostCreateRequest struct {
	Content string `json:"content"`
}

type PostUpdateRequest struct {
	Content string `json:"content"`
}

type PostResponse struct {
	Id             uuid.UUID `json:"id"`
	AuthorId       uuid.UUID `json:"authorId"`
	AuthorUsername string    `json:"authorUsername"`
	Content        string    `json:"content"`
	LikeCount      int       `json:"likeCount"`
	Liked          bool      `json:"liked"`
	CreateDatetime time.Time `json:"createDatetime"`
	UpdateDatetime time.Time `json:"updateDatetime"`
}

type FeedFilter string

const (
	FeedFilterAll  FeedFilter = "all"
	FeedFilterMine FeedFilter = "mine"
)

type FeedRequest struct {
	Query  string
	Filter FeedFilter
	Cursor string
	Limit  int
}

type FeedResponse struct {
	Posts      []PostResponse `json:"posts"`
	NextCursor string         `json:"nextCursor,omitempty"`
	HasMore    bool           `json:"hasMore"`
}
