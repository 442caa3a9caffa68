package routes

import (
	"github.com/gofiber/fiber/v2"

	"couplesync/interfaces/api/handlers"
	"couplesync/interfaces/api/middleware"
)

func SetupCoupleRoutes(api fiber.Router, h *handlers.Handlers) {
	couples := api.Group("/couples")
	couples.Use(middleware.Protected())
	couples.Get("/my", h.CoupleHandler.GetMyCouple)
	couples.Get("/code/:code", h.CoupleHandler.GetCoupleByInviteCode)
	couples.Post("/", h.CoupleHandler.CreateCouple)
	couples.Post("/join", h.CoupleHandler.JoinCouple)
}
