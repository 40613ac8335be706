package feed

import (
	"context"

	"github.com/oladokun-o/Micro-Feed/internal/model"
	"github.com/oladokun-o/Micro-Feed/internal/usecase"

	"github.com/google/uuid"
)

// Gateway is the post store as one authenticated user sees it. A session
// binds to a single identity; the identity travels inside the gateway
// implementation, never through ambient state.
type Gateway interface {
	ListPosts(ctx context.Context, request model.FeedRequest) (model.FeedResponse, error)
	CreatePost(ctx context.Context, payload model.PostCreateRequest) (model.PostResponse, error)
	UpdatePost(ctx context.Context, postId uuid.UUID, payload model.PostUpdateRequest) (model.PostResponse, error)
	DeletePost(ctx context.Context, postId uuid.UUID) error
	LikePost(ctx context.Context, postId uuid.UUID) error
	UnlikePost(ctx context.Context, postId uuid.UUID) error
}

// UsecaseGateway adapts the server-side post usecase to the Gateway
// contract for in-process use (tests, embedded clients).
type UsecaseGateway struct {
	Posts  *usecase.PostUsecase
	UserId uuid.UUID
}

func NewUsecaseGateway(posts *usecase.PostUsecase, userId uuid.UUID) *UsecaseGateway {
	return &UsecaseGateway{
		Posts:  posts,
		UserId: userId,
	}
}

func (gateway *UsecaseGateway) ListPosts(ctx context.Context, request model.FeedRequest) (model.FeedResponse, error) {
	return gateway.Posts.GetFeed(ctx, gateway.UserId, request)
}

func (gateway *UsecaseGateway) CreatePost(ctx context.Context, payload model.PostCreateRequest) (model.PostResponse, error) {
	return gateway.Posts.CreatePost(ctx, gateway.UserId, payload)
}

func (gateway *UsecaseGateway) UpdatePost(ctx context.Context, postId uuid.UUID, payload model.PostUpdateRequest) (model.PostResponse, error) {
	return gateway.Posts.UpdatePost(ctx, gateway.UserId, postId, payload)
}

func (gateway *UsecaseGateway) DeletePost(ctx context.Context, postId uuid.UUID) error {
	return gateway.Posts.DeletePost(ctx, gateway.UserId, postId)
}

func (gateway *UsecaseGateway) LikePost(ctx context.Context, postId uuid.UUID) error {
	return gateway.Posts.LikePost(ctx, gateway.UserId, postId)
}

func (gateway *UsecaseGateway) UnlikePost(ctx context.Context, postId uuid.UUID) error {
	return gateway.Posts.UnlikePost(ctx, gateway.UserId, postId)
}
