package model

import (
	"time"

	"github.com/google/uuid"
)

// Like rows are keyed by (post_id, user_id); the store's primary key is
// what guarantees at most one like per user per post.
type Like struct {
	PostId         uuid.UUID
	UserId         uuid.UUID
	CreateDatetime time.Time
}
