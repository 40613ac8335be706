package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/oladokun-o/Micro-Feed/internal/constant"
	"github.com/oladokun-o/Micro-Feed/internal/model"
	"github.com/oladokun-o/Micro-Feed/internal/util"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type UserRepository struct {
	Log     *zap.Logger
	DB      *pgxpool.Pool
	DBCache *redis.Client
}

func NewUserRepository(zap *zap.Logger, db *pgxpool.Pool, dbCache *redis.Client) *UserRepository {
	return &UserRepository{
		Log:     zap,
		DB:      db,
		DBCache: dbCache,
	}
}

func (repository *UserRepository) CreateUser(ctx context.Context, user model.User) error {
	query := "INSERT INTO users (id, username, email, password, create_datetime, update_datetime) VALUES ($1, $2, $3, $4, $5, $6)"

	_, err := repository.DB.Exec(ctx, query, user.Id, user.Username, user.Email, user.Password, user.CreateDatetime, user.UpdateDatetime)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return &model.ValidationError{
				Code:    constant.ERR_VALIDATION_CODE,
				Message: "Username or email is already taken",
				Param:   "username",
			}
		}

		return err
	}

	return nil
}

func (repository *UserRepository) GetUserAuth(ctx context.Context, username string) (uuid.UUID, string, error) {
	query := "SELECT id, password FROM users WHERE username = $1"

	var userId uuid.UUID
	var password string
	err := repository.DB.QueryRow(ctx, query, username).Scan(&userId, &password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, "", model.ErrUserNotFound
		}

		return uuid.Nil, "", err
	}

	return userId, password, nil
}

func (repository *UserRepository) GetUserInfo(ctx context.Context, userId uuid.UUID) (model.UserResponse, error) {
	query := "SELECT id, username, email, create_datetime, update_datetime FROM users WHERE id = $1"

	var user model.UserResponse
	err := repository.DB.QueryRow(ctx, query, userId).Scan(&user.Id, &user.Username, &user.Email, &user.CreateDatetime, &user.UpdateDatetime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user, model.ErrUserNotFound
		}

		return user, err
	}

	return user, nil
}

// Tokens are cached hashed; the middleware compares hashes, never raw
// token material.
func (repository *UserRepository) SetAuthTokenInCache(ctx context.Context, accessToken string, refreshToken string, userId uuid.UUID) error {
	accessTokenKey := fmt.Sprintf("user:%s:accesstoken", userId)
	refreshTokenKey := fmt.Sprintf("user:%s:refreshtoken", userId)

	hashedAccessToken := util.HashToken(accessToken)
	hashedRefreshToken := util.HashToken(refreshToken)

	err := repository.DBCache.Set(ctx, accessTokenKey, hashedAccessToken, util.AccessTokenDuration).Err()
	if err != nil {
		return err
	}

	err = repository.DBCache.Set(ctx, refreshTokenKey, hashedRefreshToken, util.RefreshTokenDuration).Err()
	if err != nil {
		return err
	}

	return nil
}

func (repository *UserRepository) GetAccessTokenInCache(ctx context.Context, userId uuid.UUID) (string, error) {
	accessTokenKey := fmt.Sprintf("user:%s:accesstoken", userId)

	hashedToken, err := repository.DBCache.Get(ctx, accessTokenKey).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	return hashedToken, nil
}

func (repository *UserRepository) RemoveAuthToken(ctx context.Context, userId uuid.UUID) error {
	accessTokenKey := fmt.Sprintf("user:%s:accesstoken", userId)
	refreshTokenKey := fmt.Sprintf("user:%s:refreshtoken", userId)

	err := repository.DBCache.Del(ctx, accessTokenKey).Err()
	if err != nil {
		return err
	}

	err = repository.DBCache.Del(ctx, refreshTokenKey).Err()
	if err != nil {
		return err
	}

	return nil
}
