package handlers

import (
	"github.com/gofiber/fiber/v2"

	"couplesync/domain/apperrors"
	"couplesync/domain/services"
	"couplesync/pkg/utils"
)

// Services contains all the services needed for handlers
type Services struct {
	UserService   services.UserService
	CoupleService services.CoupleService
	TaskService   services.TaskService
}

// Handlers contains all HTTP handlers
type Handlers struct {
	AuthHandler   *AuthHandler
	UserHandler   *UserHandler
	CoupleHandler *CoupleHandler
	TaskHandler   *TaskHandler
}

// NewHandlers creates a new instance of Handlers with all dependencies
func NewHandlers(services *Services) *Handlers {
	return &Handlers{
		AuthHandler:   NewAuthHandler(services.UserService),
		UserHandler:   NewUserHandler(services.UserService),
		CoupleHandler: NewCoupleHandler(services.CoupleService),
		TaskHandler:   NewTaskHandler(services.TaskService),
	}
}

// appErrorResponse แปลง error จาก service layer เป็น HTTP response ตาม Kind
func appErrorResponse(c *fiber.Ctx, err error) error {
	switch apperrors.KindOf(err) {
	case apperrors.KindAuth:
		return utils.UnauthorizedResponse(c, err.Error())
	case apperrors.KindValidation:
		return utils.BadRequestResponse(c, err.Error())
	case apperrors.KindLookup:
		return utils.NotFoundResponse(c, err.Error())
	case apperrors.KindConflict:
		return utils.ConflictResponse(c, err.Error())
	default:
		return utils.InternalServerErrorResponse(c)
	}
}
