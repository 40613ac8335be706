package feed

import (
	"github.com/oladokun-o/Micro-Feed/internal/model"

	"github.com/google/uuid"
)

// Snapshot is the client-held view of the feed. It is a value: every
// transition produces a new snapshot and never mutates the posts of an
// old one, so a sequence of actions can be replayed deterministically.
type Snapshot struct {
	Posts      []model.PostResponse
	Loading    bool
	Error      string
	Query      string
	Filter     model.FeedFilter
	NextCursor string
	HasMore    bool
}

func newSnapshot(filter model.FeedFilter) Snapshot {
	return Snapshot{
		Posts:   []model.PostResponse{},
		Filter:  filter,
		HasMore: true,
	}
}

func (s Snapshot) clone() Snapshot {
	posts := make([]model.PostResponse, len(s.Posts))
	copy(posts, s.Posts)
	s.Posts = posts
	return s
}

// WithPage merges a fetched page. Replace discards the accumulated list
// (refresh, query or filter change); otherwise the page is appended
// (load more).
func (s Snapshot) WithPage(page model.FeedResponse, replace bool) Snapshot {
	next := s.clone()
	if replace {
		next.Posts = append([]model.PostResponse{}, page.Posts...)
	} else {
		next.Posts = append(next.Posts, page.Posts...)
	}
	next.NextCursor = page.NextCursor
	next.HasMore = page.HasMore
	next.Loading = false
	next.Error = ""
	return next
}

// WithPostPrepended puts a freshly created post at the head of the feed.
func (s Snapshot) WithPostPrepended(post model.PostResponse) Snapshot {
	next := s.clone()
	next.Posts = append([]model.PostResponse{post}, next.Posts...)
	return next
}

// WithPostPatched replaces the post with the same id in place; other
// posts keep their positions.
func (s Snapshot) WithPostPatched(post model.PostResponse) Snapshot {
	next := s.clone()
	for i := range next.Posts {
		if next.Posts[i].Id == post.Id {
			next.Posts[i] = post
			break
		}
	}
	return next
}

// WithPostRemoved splices the post out of the list.
func (s Snapshot) WithPostRemoved(postId uuid.UUID) Snapshot {
	next := s.clone()
	posts := next.Posts[:0]
	for _, post := range next.Posts {
		if post.Id != postId {
			posts = append(posts, post)
		}
	}
	next.Posts = posts
	return next
}

// WithLike sets the post's liked flag and shifts its like count by delta,
// floored at zero. A rollback passes the prior flag and the exact inverse
// delta, so it undoes one specific optimistic apply even when other
// mutations landed in between.
func (s Snapshot) WithLike(postId uuid.UUID, liked bool, delta int) Snapshot {
	next := s.clone()
	for i := range next.Posts {
		if next.Posts[i].Id == postId {
			next.Posts[i].Liked = liked
			count := next.Posts[i].LikeCount + delta
			if count < 0 {
				count = 0
			}
			next.Posts[i].LikeCount = count
			break
		}
	}
	return next
}

func (s Snapshot) withLoading() Snapshot {
	next := s.clone()
	next.Loading = true
	next.Error = ""
	return next
}

func (s Snapshot) withError(message string) Snapshot {
	next := s.clone()
	next.Loading = false
	next.Error = message
	return next
}

// Post looks a post up by id in the current snapshot.
func (s Snapshot) Post(postId uuid.UUID) (model.PostResponse, bool) {
	for _, post := range s.Posts {
		if post.Id == postId {
			return post, true
		}
	}
	return model.PostResponse{}, false
}
