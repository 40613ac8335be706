package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/oladokun-o/Micro-Feed/internal/constant"
	"github.com/oladokun-o/Micro-Feed/internal/model"
	"github.com/oladokun-o/Micro-Feed/internal/repository"
	"github.com/oladokun-o/Micro-Feed/internal/util"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"

	"golang.org/x/crypto/bcrypt"

	"time"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

type UserUsecase struct {
	UserRepository *repository.UserRepository
	DB             *pgxpool.Pool
	Log            *zap.Logger
	Config         *koanf.Koanf
}

func NewUserUsecase(userRepository *repository.UserRepository, db *pgxpool.Pool, zap *zap.Logger, koanf *koanf.Koanf) *UserUsecase {
	return &UserUsecase{
		UserRepository: userRepository,
		DB:             db,
		Log:            zap,
		Config:         koanf,
	}
}

func validateUsername(username string) (string, error) {
	username = strings.TrimSpace(username)

	if len(username) < 3 {
		return "", &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Username must be at least 3 characters",
			Param:   "username",
		}
	}

	if len(username) > 50 {
		return "", &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Username must be 50 characters or less",
			Param:   "username",
		}
	}

	if !usernamePattern.MatchString(username) {
		return "", &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Username can only contain letters, numbers, and underscores",
			Param:   "username",
		}
	}

	return strings.ToLower(username), nil
}

func validatePassword(password string) error {
	if password == "" {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Password is required to not be empty",
			Param:   "password",
		}
	}

	if len(password) < 8 {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Password must be at least 8 characters",
			Param:   "password",
		}
	}

	if len(password) > 72 {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Password must be at most 72 characters",
			Param:   "password",
		}
	}

	return nil
}

func (usecase *UserUsecase) Register(ctx context.Context, payload model.UserRegisterRequest) (model.TokenResponse, error) {
	token := model.TokenResponse{}

	username, err := validateUsername(payload.Username)
	if err != nil {
		return token, err
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if email == "" || !strings.Contains(email, "@") {
		return token, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Email is not valid",
			Param:   "email",
		}
	}

	err = validatePassword(payload.Password)
	if err != nil {
		return token, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return token, err
	}

	now := time.Now().UTC()
	user := model.User{
		Id:             uuid.New(),
		Username:       username,
		Email:          email,
		Password:       string(hashedPassword),
		CreateDatetime: now,
		UpdateDatetime: now,
	}

	err = usecase.UserRepository.CreateUser(ctx, user)
	if err != nil {
		return token, err
	}

	token, err = util.GenerateTokenPair(user.Id, usecase.Config.String("JWT_SECRET_KEY"))
	if err != nil {
		return token, err
	}

	err = usecase.UserRepository.SetAuthTokenInCache(ctx, token.AccessToken, token.RefreshToken, user.Id)
	if err != nil {
		return token, err
	}

	return token, nil
}

func (usecase *UserUsecase) Login(ctx context.Context, payload model.UserLoginRequest) (model.TokenResponse, error) {
	token := model.TokenResponse{}

	if payload.Username == "" || payload.Password == "" {
		return token, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Username and password are required",
			Param:   "username",
		}
	}

	username := strings.ToLower(strings.TrimSpace(payload.Username))

	userId, password, err := usecase.UserRepository.GetUserAuth(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			// Same message as a bad password, so usernames cannot be probed.
			return token, &model.ValidationError{
				Code:    constant.ERR_VALIDATION_CODE,
				Message: "Username or password is incorrect",
				Param:   "password",
			}
		}

		return token, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(password), []byte(payload.Password))
	if err != nil {
		return token, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Username or password is incorrect",
			Param:   "password",
		}
	}

	token, err = util.GenerateTokenPair(userId, usecase.Config.String("JWT_SECRET_KEY"))
	if err != nil {
		return token, err
	}

	err = usecase.UserRepository.SetAuthTokenInCache(ctx, token.AccessToken, token.RefreshToken, userId)
	if err != nil {
		return token, err
	}

	return token, nil
}

func (usecase *UserUsecase) GetUserInfo(ctx context.Context, userId uuid.UUID) (model.UserResponse, error) {
	return usecase.UserRepository.GetUserInfo(ctx, userId)
}

// GetAccessToken verifies a presented token against the hashed copy cached
// at login; a missing or different hash means the session is gone.
func (usecase *UserUsecase) GetAccessToken(ctx context.Context, userId uuid.UUID, accessToken string) error {
	hashedTokenFromCache, err := usecase.UserRepository.GetAccessTokenInCache(ctx, userId)
	if err != nil {
		return err
	}

	hashedTokenFromClient := util.HashToken(accessToken)

	if hashedTokenFromCache == "" || hashedTokenFromClient != hashedTokenFromCache {
		return &model.ValidationError{
			Code:    constant.ERR_UNATHORIZED_ERROR,
			Message: "Authorization token is expired",
			Param:   "accessToken",
		}
	}

	return nil
}

func (usecase *UserUsecase) Logout(ctx context.Context, userId uuid.UUID) error {
	return usecase.UserRepository.RemoveAuthToken(ctx, userId)
}
