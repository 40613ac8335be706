package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oladokun-o/Micro-Feed/internal/model"
	"github.com/oladokun-o/Micro-Feed/internal/pagination"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Postgres error codes the gateway translates into typed outcomes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type PostRepository struct {
	Log *zap.Logger
	DB  *pgxpool.Pool
}

func NewPostRepository(zap *zap.Logger, db *pgxpool.Pool) *PostRepository {
	return &PostRepository{
		Log: zap,
		DB:  db,
	}
}

const feedSelect = `
	SELECT p.id, p.author_id, u.username, p.content, p.create_datetime, p.update_datetime,
	       COALESCE(like_counts.like_count, 0) AS like_count,
	       EXISTS (
	           SELECT 1 FROM likes l WHERE l.post_id = p.id AND l.user_id = $1
	       ) AS liked
	FROM posts p
	INNER JOIN users u ON p.author_id = u.id
	LEFT JOIN (
		SELECT post_id, COUNT(*) AS like_count
		FROM likes
		GROUP BY post_id
	) like_counts ON p.id = like_counts.post_id
`

// GetFeedPosts runs the cursor-bounded range read. Results are ordered by
// (create_datetime DESC, id DESC); the compound cursor predicate keeps rows
// sharing a timestamp from being skipped or repeated across pages.
func (repository *PostRepository) GetFeedPosts(ctx context.Context, userId uuid.UUID, searchText string, filter model.FeedFilter, cursor *pagination.Cursor, limit int) ([]model.PostResponse, error) {
	args := []interface{}{userId}
	conditions := []string{}

	if searchText != "" {
		args = append(args, "%"+searchText+"%")
		conditions = append(conditions, fmt.Sprintf("p.content ILIKE $%d", len(args)))
	}

	if filter == model.FeedFilterMine {
		args = append(args, userId)
		conditions = append(conditions, fmt.Sprintf("p.author_id = $%d", len(args)))
	}

	if cursor != nil {
		args = append(args, cursor.CreateDatetime, cursor.Id)
		conditions = append(conditions, fmt.Sprintf(
			"(p.create_datetime < $%d OR (p.create_datetime = $%d AND p.id < $%d))",
			len(args)-1, len(args)-1, len(args),
		))
	}

	query := feedSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY p.create_datetime DESC, p.id DESC LIMIT $%d", len(args))

	rows, err := repository.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []model.PostResponse{}

	for rows.Next() {
		var post model.PostResponse
		err := rows.Scan(&post.Id, &post.AuthorId, &post.AuthorUsername, &post.Content, &post.CreateDatetime, &post.UpdateDatetime, &post.LikeCount, &post.Liked)
		if err != nil {
			return nil, err
		}

		posts = append(posts, post)
	}

	return posts, rows.Err()
}

func (repository *PostRepository) GetPost(ctx context.Context, postId uuid.UUID, userId uuid.UUID) (model.PostResponse, error) {
	query := feedSelect + " WHERE p.id = $2"

	var post model.PostResponse
	err := repository.DB.QueryRow(ctx, query, userId, postId).Scan(
		&post.Id, &post.AuthorId, &post.AuthorUsername, &post.Content,
		&post.CreateDatetime, &post.UpdateDatetime, &post.LikeCount, &post.Liked,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return post, model.ErrPostNotFound
		}
		return post, err
	}

	return post, nil
}

func (repository *PostRepository) GetPostAuthor(ctx context.Context, postId uuid.UUID) (uuid.UUID, error) {
	query := "SELECT author_id FROM posts WHERE id = $1"

	var authorId uuid.UUID
	err := repository.DB.QueryRow(ctx, query, postId).Scan(&authorId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, model.ErrPostNotFound
		}
		return uuid.Nil, err
	}

	return authorId, nil
}

func (repository *PostRepository) CreatePost(ctx context.Context, post model.Post) error {
	query := "INSERT INTO posts (id, author_id, content, create_datetime, update_datetime) VALUES ($1, $2, $3, $4, $5)"

	_, err := repository.DB.Exec(ctx, query, post.Id, post.AuthorId, post.Content, post.CreateDatetime, post.UpdateDatetime)
	if err != nil {
		return err
	}

	return nil
}

func (repository *PostRepository) UpdatePostContent(ctx context.Context, postId uuid.UUID, content string, updateDatetime time.Time) error {
	query := "UPDATE posts SET content = $1, update_datetime = $2 WHERE id = $3"

	tag, err := repository.DB.Exec(ctx, query, content, updateDatetime, postId)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}

	return nil
}

// DeletePost removes the post; its likes go with it through the schema's
// ON DELETE CASCADE, not a second statement.
func (repository *PostRepository) DeletePost(ctx context.Context, postId uuid.UUID) error {
	query := "DELETE FROM posts WHERE id = $1"

	tag, err := repository.DB.Exec(ctx, query, postId)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}

	return nil
}

// CreatePostLike inserts the like row without checking for an existing one
// first. Concurrent toggles race on the primary key and the loser gets
// ErrLikeExists, which callers treat as a benign duplicate.
func (repository *PostRepository) CreatePostLike(ctx context.Context, like model.Like) error {
	query := "INSERT INTO likes (post_id, user_id, create_datetime) VALUES ($1, $2, $3)"

	_, err := repository.DB.Exec(ctx, query, like.PostId, like.UserId, like.CreateDatetime)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				return model.ErrLikeExists
			case pgForeignKeyViolation:
				return model.ErrPostNotFound
			}
		}

		return err
	}

	return nil
}

// DeletePostLike is idempotent: removing a like that is not there is not
// an error.
func (repository *PostRepository) DeletePostLike(ctx context.Context, postId uuid.UUID, userId uuid.UUID) error {
	query := "DELETE FROM likes WHERE post_id = $1 AND user_id = $2"

	_, err := repository.DB.Exec(ctx, query, postId, userId)
	if err != nil {
		return err
	}

	return nil
}
