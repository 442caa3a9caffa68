package handlers

import (
	"github.com/gofiber/fiber/v2"

	"couplesync/domain/dto"
	"couplesync/domain/services"
	"couplesync/pkg/logger"
	"couplesync/pkg/utils"
)

type CoupleHandler struct {
	coupleService services.CoupleService
}

func NewCoupleHandler(coupleService services.CoupleService) *CoupleHandler {
	return &CoupleHandler{
		coupleService: coupleService,
	}
}

// GetMyCouple คืน couple ของ user - 200 พร้อม data: null ถ้ายังไม่มี
// (ยังไม่มี couple ไม่ใช่ error ฝั่ง client ต้องแสดงหน้า pairing)
func (h *CoupleHandler) GetMyCouple(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		logger.WarnContext(ctx, "Unauthorized access attempt")
		return utils.UnauthorizedResponse(c, "")
	}

	couple, err := h.coupleService.GetMyCouple(ctx, user.ID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load couple", "user_id", user.ID, "error", err)
		return appErrorResponse(c, err)
	}

	if couple == nil {
		return utils.SuccessResponse(c, nil)
	}

	return utils.SuccessResponse(c, dto.CoupleToCoupleResponse(couple))
}

func (h *CoupleHandler) CreateCouple(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		logger.WarnContext(ctx, "Unauthorized access attempt")
		return utils.UnauthorizedResponse(c, "")
	}

	logger.InfoContext(ctx, "Couple creation attempt", "user_id", user.ID)

	couple, err := h.coupleService.CreateCouple(ctx, user.ID)
	if err != nil {
		logger.WarnContext(ctx, "Couple creation failed", "user_id", user.ID, "error", err)
		return appErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Couple ready", "couple_id", couple.ID, "user_id", user.ID)

	return utils.CreatedResponse(c, dto.CoupleToCoupleResponse(couple))
}

// GetCoupleByInviteCode ให้ client ตรวจ code ก่อน join - 404 ถ้าไม่พบ
func (h *CoupleHandler) GetCoupleByInviteCode(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if _, err := utils.GetUserFromContext(c); err != nil {
		logger.WarnContext(ctx, "Unauthorized access attempt")
		return utils.UnauthorizedResponse(c, "")
	}

	couple, err := h.coupleService.GetCoupleByInviteCode(ctx, c.Params("code"))
	if err != nil {
		return appErrorResponse(c, err)
	}
	if couple == nil {
		return utils.NotFoundResponse(c, "Invalid invite code")
	}

	return utils.SuccessResponse(c, dto.CoupleToCoupleResponse(couple))
}

func (h *CoupleHandler) JoinCouple(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		logger.WarnContext(ctx, "Unauthorized access attempt")
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.JoinCoupleRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	logger.InfoContext(ctx, "Join attempt", "user_id", user.ID)

	couple, err := h.coupleService.JoinCouple(ctx, user.ID, req.InviteCode)
	if err != nil {
		logger.WarnContext(ctx, "Join failed", "user_id", user.ID, "error", err)
		return appErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "User joined couple", "couple_id", couple.ID, "user_id", user.ID)

	return utils.SuccessResponse(c, dto.CoupleToCoupleResponse(couple))
}
