package setup

import (
	"context"
	"testing"

	"github.com/oladokun-o/Micro-Feed/internal/delivery/http"
	"github.com/oladokun-o/Micro-Feed/internal/delivery/http/middleware"
	"github.com/oladokun-o/Micro-Feed/internal/delivery/http/route"
	"github.com/oladokun-o/Micro-Feed/internal/repository"
	"github.com/oladokun-o/Micro-Feed/internal/usecase"
	"github.com/redis/go-redis/v9"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

func SetupTestApp(t *testing.T, pgURL, redisURL string) (*fiber.App, *pgxpool.Pool, *redis.Client) {
	t.Log("Setting up test application...")

	ctx := context.Background()

	testConfig := koanf.New(".")
	_ = testConfig.Set("POSTGRES_URL", pgURL)
	_ = testConfig.Set("REDIS_URL", redisURL)
	_ = testConfig.Set("JWT_SECRET_KEY", "test-secret-key-for-jwt-token-generation")

	t.Log("Connecting to test PostgreSQL...")
	dbPool, err := pgxpool.New(ctx, pgURL)
	if err != nil {
		t.Fatalf("failed to connect to test db: %v", err)
	}

	t.Log("Connecting to test Redis...")
	redisClient := redis.NewClient(&redis.Options{
		Addr: redisURL,
		DB:   0,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		t.Fatalf("failed to connect to test redis: %v", err)
	}

	zapLogger := zap.NewExample()

	userRepository := repository.NewUserRepository(zapLogger, dbPool, redisClient)
	postRepository := repository.NewPostRepository(zapLogger, dbPool)

	userUsecase := usecase.NewUserUsecase(userRepository, dbPool, zapLogger, testConfig)
	postUsecase := usecase.NewPostUsecase(postRepository, dbPool, zapLogger, testConfig)

	userController := http.NewUserController(userUsecase, zapLogger, testConfig)
	postController := http.NewPostController(postUsecase, zapLogger, testConfig)

	authMiddleware := middleware.NewAuthMiddleware(nil, zapLogger, testConfig, userUsecase)

	fiberApp := fiber.New(fiber.Config{
		AppName:               "micro-feed-test",
		DisableStartupMessage: true,
		DisableKeepalive:      true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	routeConfig := route.RouteConfig{
		App:            fiberApp,
		UserController: userController,
		PostController: postController,
		AuthMiddleware: authMiddleware,
	}

	routeConfig.SetupRoute()

	t.Log("Test application setup completed successfully")

	return fiberApp, dbPool, redisClient
}
