package handlers

import (
	"github.com/gofiber/fiber/v2"

	"couplesync/domain/dto"
	"couplesync/domain/services"
	"couplesync/pkg/logger"
	"couplesync/pkg/utils"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		logger.WarnContext(ctx, "Unauthorized access attempt")
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		errors := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", errors)
		return utils.ValidationErrorResponse(c, errors)
	}

	logger.InfoContext(ctx, "Profile update attempt", "user_id", user.ID)

	updatedUser, err := h.userService.UpdateProfile(ctx, user.ID, &req)
	if err != nil {
		logger.WarnContext(ctx, "Profile update failed", "user_id", user.ID, "error", err)
		return appErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Profile updated", "user_id", user.ID)

	return utils.SuccessResponse(c, dto.UserToUserResponse(updatedUser))
}

// UpdateAvatar รับไฟล์ avatar เป็น multipart form field "avatar"
func (h *UserHandler) UpdateAvatar(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		logger.WarnContext(ctx, "Unauthorized access attempt")
		return utils.UnauthorizedResponse(c, "")
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		logger.WarnContext(ctx, "Missing avatar file", "error", err)
		return utils.BadRequestResponse(c, "Avatar file is required")
	}

	// จำกัดขนาด 5MB
	if fileHeader.Size > 5*1024*1024 {
		return utils.BadRequestResponse(c, "Avatar must be smaller than 5MB")
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.ErrorContext(ctx, "Failed to open uploaded file", "error", err)
		return utils.InternalServerErrorResponse(c)
	}
	defer file.Close()

	logger.InfoContext(ctx, "Avatar upload attempt", "user_id", user.ID, "filename", fileHeader.Filename, "size", fileHeader.Size)

	updatedUser, err := h.userService.UpdateAvatar(ctx, user.ID, fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		logger.WarnContext(ctx, "Avatar upload failed", "user_id", user.ID, "error", err)
		return appErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Avatar updated", "user_id", user.ID)

	return utils.SuccessResponse(c, &dto.AvatarResponse{Avatar: updatedUser.Avatar})
}
