package route

import (
	"github.com/oladokun-o/Micro-Feed/internal/delivery/http"
	"github.com/oladokun-o/Micro-Feed/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v2"
)

type RouteConfig struct {
	App            *fiber.App
	AuthMiddleware *middleware.AuthMiddleware
	UserController *http.UserController
	PostController *http.PostController
}

func (c *RouteConfig) SetupRoute() {
	api := c.App.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	authGroup := api.Group("/auth")
	authGroup.Post("/register", c.UserController.Register)
	authGroup.Post("/login", c.UserController.Login)

	userGroup := api.Group("/users", c.AuthMiddleware.ProtectedRoute())
	userGroup.Get("/me", c.UserController.GetUserInfo)
	userGroup.Post("/logout", c.UserController.Logout)

	postGroup := api.Group("/posts", c.AuthMiddleware.ProtectedRoute())
	postGroup.Get("/", c.PostController.GetFeed)
	postGroup.Post("/", c.PostController.CreatePost)
	postGroup.Patch("/:postId", c.PostController.UpdatePost)
	postGroup.Delete("/:postId", c.PostController.DeletePost)
	postGroup.Post("/:postId/like", c.PostController.LikePost)
	postGroup.Delete("/:postId/like", c.PostController.UnlikePost)
}
