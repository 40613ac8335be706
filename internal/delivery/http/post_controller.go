package http

import (
	"errors"

	"github.com/oladokun-o/Micro-Feed/internal/constant"
	"github.com/oladokun-o/Micro-Feed/internal/model"
	"github.com/oladokun-o/Micro-Feed/internal/usecase"
	"github.com/oladokun-o/Micro-Feed/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

type PostController struct {
	PostUsecase *usecase.PostUsecase
	Log         *zap.Logger
	Config      *koanf.Koanf
}

func NewPostController(postUsecase *usecase.PostUsecase, zap *zap.Logger, koanf *koanf.Koanf) *PostController {
	return &PostController{
		PostUsecase: postUsecase,
		Log:         zap,
		Config:      koanf,
	}
}

func parsePostId(ctx *fiber.Ctx) (uuid.UUID, error) {
	postId, err := uuid.Parse(ctx.Params("postId"))
	if err != nil {
		return uuid.Nil, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Invalid post id",
			Param:   "postId",
		}
	}

	return postId, nil
}

func (controller *PostController) GetFeed(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	request := model.FeedRequest{
		Query:  ctx.Query("query"),
		Filter: model.FeedFilter(ctx.Query("filter")),
		Cursor: ctx.Query("cursor"),
		Limit:  ctx.QueryInt("limit"),
	}

	var validationErr *model.ValidationError

	response, err := controller.PostUsecase.GetFeed(ctx.UserContext(), userId, request)
	if err != nil {
		if errors.As(err, &validationErr) {
			return util.SendErrorResponse(ctx, err)
		}

		return util.SendErrorResponseInternalServer(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller *PostController) CreatePost(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	var payload model.PostCreateRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, &model.ValidationError{
			Code:    constant.ERR_INVALID_REQUEST_BODY_ERROR_CODE,
			Message: constant.ERR_INVALID_REQUEST_BODY_MESSAGE,
		})
	}

	var validationErr *model.ValidationError

	response, err := controller.PostUsecase.CreatePost(ctx.UserContext(), userId, payload)
	if err != nil {
		if errors.As(err, &validationErr) {
			return util.SendErrorResponse(ctx, err)
		}

		return util.SendErrorResponseInternalServer(ctx, controller.Log, err)
	}

	return util.SendCreatedResponseWithData(ctx, response)
}

func (controller *PostController) UpdatePost(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	postId, err := parsePostId(ctx)
	if err != nil {
		return util.SendErrorResponse(ctx, err)
	}

	var payload model.PostUpdateRequest
	err = util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, &model.ValidationError{
			Code:    constant.ERR_INVALID_REQUEST_BODY_ERROR_CODE,
			Message: constant.ERR_INVALID_REQUEST_BODY_MESSAGE,
		})
	}

	var validationErr *model.ValidationError

	response, err := controller.PostUsecase.UpdatePost(ctx.UserContext(), userId, postId, payload)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			return util.SendErrorResponseNotFound(ctx, &model.ValidationError{
				Code:    constant.ERR_NOT_FOUND_ERROR,
				Message: "Post is not found",
				Param:   "postId",
			})
		}

		if errors.Is(err, model.ErrNotPostAuthor) {
			return util.SendErrorResponseForbidden(ctx)
		}

		if errors.As(err, &validationErr) {
			return util.SendErrorResponse(ctx, err)
		}

		return util.SendErrorResponseInternalServer(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller *PostController) DeletePost(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	postId, err := parsePostId(ctx)
	if err != nil {
		return util.SendErrorResponse(ctx, err)
	}

	err = controller.PostUsecase.DeletePost(ctx.UserContext(), userId, postId)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			return util.SendErrorResponseNotFound(ctx, &model.ValidationError{
				Code:    constant.ERR_NOT_FOUND_ERROR,
				Message: "Post is not found",
				Param:   "postId",
			})
		}

		if errors.Is(err, model.ErrNotPostAuthor) {
			return util.SendErrorResponseForbidden(ctx)
		}

		return util.SendErrorResponseInternalServer(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseNoData(ctx)
}

func (controller *PostController) LikePost(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	postId, err := parsePostId(ctx)
	if err != nil {
		return util.SendErrorResponse(ctx, err)
	}

	err = controller.PostUsecase.LikePost(ctx.UserContext(), userId, postId)
	if err != nil {
		if errors.Is(err, model.ErrLikeExists) {
			return util.SendErrorResponseConflict(ctx)
		}

		if errors.Is(err, model.ErrPostNotFound) {
			return util.SendErrorResponseNotFound(ctx, &model.ValidationError{
				Code:    constant.ERR_NOT_FOUND_ERROR,
				Message: "Post is not found",
				Param:   "postId",
			})
		}

		return util.SendErrorResponseInternalServer(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseNoData(ctx)
}

func (controller *PostController) UnlikePost(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	postId, err := parsePostId(ctx)
	if err != nil {
		return util.SendErrorResponse(ctx, err)
	}

	err = controller.PostUsecase.UnlikePost(ctx.UserContext(), userId, postId)
	if err != nil {
		return util.SendErrorResponseInternalServer(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseNoData(ctx)
}
