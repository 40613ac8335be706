package config

import (
	http "github.com/oladokun-o/Micro-Feed/internal/delivery/http"
	"github.com/oladokun-o/Micro-Feed/internal/delivery/http/middleware"
	"github.com/oladokun-o/Micro-Feed/internal/delivery/http/route"
	"github.com/oladokun-o/Micro-Feed/internal/repository"
	"github.com/oladokun-o/Micro-Feed/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knadh/koanf/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type ServerConfig struct {
	Router  *fiber.App
	DB      *pgxpool.Pool
	DBCache *redis.Client
	Log     *zap.Logger
	Config  *koanf.Koanf
}

func Server(config *ServerConfig) {
	userRepository := repository.NewUserRepository(config.Log, config.DB, config.DBCache)
	userUsecase := usecase.NewUserUsecase(userRepository, config.DB, config.Log, config.Config)
	userController := http.NewUserController(userUsecase, config.Log, config.Config)

	postRepository := repository.NewPostRepository(config.Log, config.DB)
	postUsecase := usecase.NewPostUsecase(postRepository, config.DB, config.Log, config.Config)
	postController := http.NewPostController(postUsecase, config.Log, config.Config)

	authMiddleware := middleware.NewAuthMiddleware(config.Router, config.Log, config.Config, userUsecase)

	routeConfig := route.RouteConfig{
		App:            config.Router,
		UserController: userController,
		PostController: postController,
		AuthMiddleware: authMiddleware,
	}

	routeConfig.SetupRoute()
}
