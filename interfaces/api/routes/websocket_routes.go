package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"couplesync/domain/services"
	"couplesync/interfaces/api/middleware"
	websocketHandler "couplesync/interfaces/api/websocket"
)

func SetupWebSocketRoutes(app *fiber.App, coupleService services.CoupleService) {
	wsHandler := websocketHandler.NewWebSocketHandler(coupleService)

	// WebSocket with optional authentication (token query param fallback ใน upgrade)
	app.Use("/ws", middleware.Optional(), wsHandler.WebSocketUpgrade)
	app.Get("/ws", websocket.New(wsHandler.HandleWebSocket))
}
