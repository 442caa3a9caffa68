package routes

import (
	"github.com/gofiber/fiber/v2"

	"couplesync/interfaces/api/handlers"
	"couplesync/interfaces/api/middleware"
)

func SetupUserRoutes(api fiber.Router, h *handlers.Handlers) {
	users := api.Group("/users")
	users.Use(middleware.Protected())
	users.Put("/me", h.UserHandler.UpdateProfile)
	users.Put("/me/avatar", h.UserHandler.UpdateAvatar)
}
