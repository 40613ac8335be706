package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/oladokun-o/Micro-Feed/internal/constant"
	"github.com/oladokun-o/Micro-Feed/internal/model"
	"github.com/oladokun-o/Micro-Feed/internal/pagination"
	"github.com/oladokun-o/Micro-Feed/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

type PostUsecase struct {
	PostRepository *repository.PostRepository
	DB             *pgxpool.Pool
	Log            *zap.Logger
	Config         *koanf.Koanf
}

func NewPostUsecase(postRepository *repository.PostRepository, db *pgxpool.Pool, zap *zap.Logger, koanf *koanf.Koanf) *PostUsecase {
	return &PostUsecase{
		PostRepository: postRepository,
		DB:             db,
		Log:            zap,
		Config:         koanf,
	}
}

// validateContent trims and bounds post content. Length is counted after
// trimming, so a post of only whitespace is rejected as empty.
func validateContent(content string) (string, error) {
	content = strings.TrimSpace(content)

	if content == "" {
		return "", &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Content is required",
			Param:   "content",
		}
	}

	if len([]rune(content)) > constant.MAX_CONTENT_LENGTH {
		return "", &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Content must be 280 characters or less",
			Param:   "content",
		}
	}

	return content, nil
}

// clampLimit bounds the page size server-side regardless of what the
// client asked for.
func clampLimit(limit int) int {
	if limit == 0 {
		return constant.DEFAULT_LIMIT
	}
	if limit < constant.MIN_LIMIT {
		return constant.MIN_LIMIT
	}
	if limit > constant.MAX_LIMIT {
		return constant.MAX_LIMIT
	}

	return limit
}

// GetFeed plans and runs one page of the feed scan.
//
// It fetches limit+1 rows to learn whether more pages remain without a
// count query, trims the extra row, and issues the next cursor from the
// last row actually returned. An undecodable cursor is ignored and the
// scan restarts from the top.
func (usecase *PostUsecase) GetFeed(ctx context.Context, userId uuid.UUID, request model.FeedRequest) (model.FeedResponse, error) {
	response := model.FeedResponse{Posts: []model.PostResponse{}}

	filter := request.Filter
	if filter == "" {
		filter = model.FeedFilterAll
	}

	if filter != model.FeedFilterAll && filter != model.FeedFilterMine {
		return response, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Filter must be one of: all, mine",
			Param:   "filter",
		}
	}

	limit := clampLimit(request.Limit)

	var cursor *pagination.Cursor
	if decoded, ok := pagination.Decode(request.Cursor); ok {
		cursor = &decoded
	}

	posts, err := usecase.PostRepository.GetFeedPosts(ctx, userId, request.Query, filter, cursor, limit+1)
	if err != nil {
		return response, err
	}

	if len(posts) > limit {
		response.Posts = posts[:limit]
		response.HasMore = true

		last := response.Posts[limit-1]
		nextCursor, err := pagination.Encode(pagination.Cursor{
			CreateDatetime: last.CreateDatetime,
			Id:             last.Id,
		})
		if err != nil {
			return response, err
		}

		response.NextCursor = nextCursor
	} else {
		response.Posts = posts
	}

	return response, nil
}

func (usecase *PostUsecase) CreatePost(ctx context.Context, userId uuid.UUID, payload model.PostCreateRequest) (model.PostResponse, error) {
	content, err := validateContent(payload.Content)
	if err != nil {
		return model.PostResponse{}, err
	}

	now := time.Now().UTC()
	post := model.Post{
		Id:             uuid.New(),
		AuthorId:       userId,
		Content:        content,
		CreateDatetime: now,
		UpdateDatetime: now,
	}

	err = usecase.PostRepository.CreatePost(ctx, post)
	if err != nil {
		return model.PostResponse{}, err
	}

	return usecase.PostRepository.GetPost(ctx, post.Id, userId)
}

func (usecase *PostUsecase) UpdatePost(ctx context.Context, userId uuid.UUID, postId uuid.UUID, payload model.PostUpdateRequest) (model.PostResponse, error) {
	content, err := validateContent(payload.Content)
	if err != nil {
		return model.PostResponse{}, err
	}

	// Ownership is decided here, server-side; the client's optimism is
	// never trusted.
	authorId, err := usecase.PostRepository.GetPostAuthor(ctx, postId)
	if err != nil {
		return model.PostResponse{}, err
	}

	if authorId != userId {
		return model.PostResponse{}, model.ErrNotPostAuthor
	}

	err = usecase.PostRepository.UpdatePostContent(ctx, postId, content, time.Now().UTC())
	if err != nil {
		return model.PostResponse{}, err
	}

	return usecase.PostRepository.GetPost(ctx, postId, userId)
}

func (usecase *PostUsecase) DeletePost(ctx context.Context, userId uuid.UUID, postId uuid.UUID) error {
	authorId, err := usecase.PostRepository.GetPostAuthor(ctx, postId)
	if err != nil {
		return err
	}

	if authorId != userId {
		return model.ErrNotPostAuthor
	}

	// Likes are removed by the store's cascade as part of this delete.
	return usecase.PostRepository.DeletePost(ctx, postId)
}

// LikePost inserts the like without checking whether one exists. Two
// racing toggles both reach the store; the primary key picks the winner
// and the loser surfaces as model.ErrLikeExists.
func (usecase *PostUsecase) LikePost(ctx context.Context, userId uuid.UUID, postId uuid.UUID) error {
	like := model.Like{
		PostId:         postId,
		UserId:         userId,
		CreateDatetime: time.Now().UTC(),
	}

	return usecase.PostRepository.CreatePostLike(ctx, like)
}

// UnlikePost is idempotent; unliking a post that was never liked succeeds.
func (usecase *PostUsecase) UnlikePost(ctx context.Context, userId uuid.UUID, postId uuid.UUID) error {
	return usecase.PostRepository.DeletePostLike(ctx, postId, userId)
}
