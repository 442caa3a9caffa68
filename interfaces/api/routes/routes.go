package routes

import (
	"github.com/gofiber/fiber/v2"

	"couplesync/domain/services"
	"couplesync/interfaces/api/handlers"
)

func SetupRoutes(app *fiber.App, h *handlers.Handlers, coupleService services.CoupleService) {
	// Setup health and root routes
	SetupHealthRoutes(app)

	// API version group
	api := app.Group("/api/v1")

	// Setup all route groups
	SetupAuthRoutes(api, h)
	SetupUserRoutes(api, h)
	SetupCoupleRoutes(api, h)
	SetupTaskRoutes(api, h)

	// Setup WebSocket routes (needs app, not api group)
	SetupWebSocketRoutes(app, coupleService)
}
