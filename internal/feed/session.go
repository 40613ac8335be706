package feed

import (
	"context"
	"errors"
	"sync"

	"github.com/oladokun-o/Micro-Feed/internal/model"

	"github.com/google/uuid"
)

// Status is the independent {loading, error} pair kept per mutation kind,
// so a delete in flight never blocks an unrelated edit.
type Status struct {
	Loading bool
	Error   string
}

// LikeState is the per-post like affordance: settled in Liked or NotLiked,
// or pending toward a target while a toggle is in flight. There is no
// terminal state; the affordance is re-toggleable once settled.
type LikeState int

const (
	NotLiked LikeState = iota
	Liked
	PendingLiked
	PendingNotLiked
)

// pendingLike tracks overlapping in-flight toggles on one post: toggles
// counts requests still out, target is the direction of the newest one.
// The affordance stays pending until every request has settled.
type pendingLike struct {
	toggles int
	target  bool
}

// Session owns the feed view for one user for the duration of a feed
// screen. Mutations apply to the local snapshot before the store
// confirms them and are rolled back exactly if the store refuses.
//
// Load-more and refresh share one sequence counter: a response is merged
// only if it belongs to the newest fetch issued, so a refresh fired while
// a load-more is pending can never have the stale page appended after it.
type Session struct {
	mu      sync.Mutex
	gateway Gateway

	snapshot Snapshot
	seq      uint64

	pendingLikes map[uuid.UUID]*pendingLike

	create Status
	update Status
	remove Status
	like   Status
}

func NewSession(gateway Gateway, filter model.FeedFilter) *Session {
	if filter == "" {
		filter = model.FeedFilterAll
	}

	return &Session{
		gateway:      gateway,
		snapshot:     newSnapshot(filter),
		pendingLikes: map[uuid.UUID]*pendingLike{},
	}
}

// Snapshot returns the current feed state value.
func (session *Session) Snapshot() Snapshot {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.snapshot
}

func (session *Session) CreateStatus() Status {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.create
}

func (session *Session) UpdateStatus() Status {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.update
}

func (session *Session) DeleteStatus() Status {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.remove
}

func (session *Session) LikeStatus() Status {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.like
}

// LikeState reports the like affordance for a post: pending while a
// toggle is in flight, otherwise whatever the snapshot says.
func (session *Session) LikeState(postId uuid.UUID) LikeState {
	session.mu.Lock()
	defer session.mu.Unlock()

	if pending, ok := session.pendingLikes[postId]; ok {
		if pending.target {
			return PendingLiked
		}
		return PendingNotLiked
	}

	if post, ok := session.snapshot.Post(postId); ok && post.Liked {
		return Liked
	}
	return NotLiked
}

// Refresh replaces the feed from the top of the scan, dropping any held
// cursor and accumulated pages.
func (session *Session) Refresh(ctx context.Context) error {
	session.mu.Lock()
	query, filter := session.snapshot.Query, session.snapshot.Filter
	session.mu.Unlock()

	return session.fetch(ctx, query, filter, "", true)
}

// Search switches the active query. The outstanding cursor belongs to the
// old query and is invalidated: the fetch starts from the top and replaces.
func (session *Session) Search(ctx context.Context, query string) error {
	session.mu.Lock()
	filter := session.snapshot.Filter
	session.mu.Unlock()

	return session.fetch(ctx, query, filter, "", true)
}

// ChangeFilter switches between the full feed and the user's own posts,
// with the same cursor invalidation as Search.
func (session *Session) ChangeFilter(ctx context.Context, filter model.FeedFilter) error {
	session.mu.Lock()
	query := session.snapshot.Query
	session.mu.Unlock()

	return session.fetch(ctx, query, filter, "", true)
}

// LoadMore extends the feed by one page. It is a guarded no-op while a
// fetch is in flight or when the scan is exhausted; the returned bool
// says whether a fetch was actually issued.
func (session *Session) LoadMore(ctx context.Context) (bool, error) {
	session.mu.Lock()
	if session.snapshot.Loading || !session.snapshot.HasMore || session.snapshot.NextCursor == "" {
		session.mu.Unlock()
		return false, nil
	}
	query, filter, cursor := session.snapshot.Query, session.snapshot.Filter, session.snapshot.NextCursor
	session.mu.Unlock()

	return true, session.fetch(ctx, query, filter, cursor, false)
}

func (session *Session) fetch(ctx context.Context, query string, filter model.FeedFilter, cursor string, replace bool) error {
	session.mu.Lock()
	session.seq++
	seq := session.seq
	session.snapshot = session.snapshot.withLoading()
	session.snapshot.Query = query
	session.snapshot.Filter = filter
	session.mu.Unlock()

	page, err := session.gateway.ListPosts(ctx, model.FeedRequest{
		Query:  query,
		Filter: filter,
		Cursor: cursor,
	})

	session.mu.Lock()
	defer session.mu.Unlock()

	// Latest query wins: a response that is no longer the newest issued
	// fetch is discarded, whatever order the responses arrived in.
	if seq != session.seq {
		return nil
	}

	if err != nil {
		session.snapshot = session.snapshot.withError(err.Error())
		return err
	}

	session.snapshot = session.snapshot.WithPage(page, replace)
	return nil
}

// CreatePost validates nothing locally; the gateway is authoritative. On
// success the new post is prepended to the visible feed.
func (session *Session) CreatePost(ctx context.Context, content string) (model.PostResponse, error) {
	session.setCreate(Status{Loading: true})

	post, err := session.gateway.CreatePost(ctx, model.PostCreateRequest{Content: content})
	if err != nil {
		session.setCreate(Status{Error: err.Error()})
		return model.PostResponse{}, err
	}

	session.mu.Lock()
	session.snapshot = session.snapshot.WithPostPrepended(post)
	session.create = Status{}
	session.mu.Unlock()

	return post, nil
}

// UpdatePost patches the post in place on success.
func (session *Session) UpdatePost(ctx context.Context, postId uuid.UUID, content string) (model.PostResponse, error) {
	session.setUpdate(Status{Loading: true})

	post, err := session.gateway.UpdatePost(ctx, postId, model.PostUpdateRequest{Content: content})
	if err != nil {
		session.setUpdate(Status{Error: err.Error()})
		return model.PostResponse{}, err
	}

	session.mu.Lock()
	session.snapshot = session.snapshot.WithPostPatched(post)
	session.update = Status{}
	session.mu.Unlock()

	return post, nil
}

// DeletePost splices the post out of the feed on success.
func (session *Session) DeletePost(ctx context.Context, postId uuid.UUID) error {
	session.setDelete(Status{Loading: true})

	err := session.gateway.DeletePost(ctx, postId)
	if err != nil {
		session.setDelete(Status{Error: err.Error()})
		return err
	}

	session.mu.Lock()
	session.snapshot = session.snapshot.WithPostRemoved(postId)
	session.remove = Status{}
	session.mu.Unlock()

	return nil
}

// ToggleLike flips the post's like. The flip lands in the snapshot before
// the request goes out; the request's outcome then decides whether it
// stays:
//
//   - success: the optimistic state is the committed state
//   - duplicate like: another tab or request got there first — the
//     optimistic state already matches the store, nothing to show
//   - any other failure: the exact inverse delta is applied and the prior
//     flag restored, and the error is surfaced
//
// Rapid toggles are not queued or debounced; each call races to the store
// and the store's uniqueness constraint settles who wins.
func (session *Session) ToggleLike(ctx context.Context, postId uuid.UUID) error {
	session.mu.Lock()

	post, ok := session.snapshot.Post(postId)
	if !ok {
		session.mu.Unlock()
		return model.ErrPostNotFound
	}

	currentlyLiked := post.Liked
	nextLiked := !currentlyLiked
	delta := 1
	if !nextLiked {
		delta = -1
	}

	session.snapshot = session.snapshot.WithLike(postId, nextLiked, delta)

	pending := session.pendingLikes[postId]
	if pending == nil {
		pending = &pendingLike{}
		session.pendingLikes[postId] = pending
	}
	pending.toggles++
	pending.target = nextLiked

	session.like = Status{Loading: true}
	session.mu.Unlock()

	var err error
	if nextLiked {
		err = session.gateway.LikePost(ctx, postId)
	} else {
		err = session.gateway.UnlikePost(ctx, postId)
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	pending.toggles--
	if pending.toggles <= 0 {
		delete(session.pendingLikes, postId)
	}

	if err == nil {
		session.like = Status{}
		return nil
	}

	if nextLiked && errors.Is(err, model.ErrLikeExists) {
		// Benign race; the store already holds the like we predicted.
		session.like = Status{}
		return nil
	}

	session.snapshot = session.snapshot.WithLike(postId, currentlyLiked, -delta)
	session.like = Status{Error: err.Error()}
	return err
}

func (session *Session) setCreate(status Status) {
	session.mu.Lock()
	session.create = status
	session.mu.Unlock()
}

func (session *Session) setUpdate(status Status) {
	session.mu.Lock()
	session.update = status
	session.mu.Unlock()
}

func (session *Session) setDelete(status Status) {
	session.mu.Lock()
	session.remove = status
	session.mu.Unlock()
}
