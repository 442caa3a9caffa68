package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"couplesync/domain/dto"
	"couplesync/domain/services"
	"couplesync/pkg/logger"
	"couplesync/pkg/utils"
)

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		logger.WarnContext(ctx, "Unauthorized access attempt")
		return utils.UnauthorizedResponse(c, "")
	}

	tasks, err := h.taskService.ListCoupleTasks(ctx, user.ID)
	if err != nil {
		logger.WarnContext(ctx, "Task list failed", "user_id", user.ID, "error", err)
		return appErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.TasksToTaskListResponse(tasks))
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		logger.WarnContext(ctx, "Unauthorized access attempt")
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	// ไม่เรียก ValidateStruct ตรงนี้ - service ตรวจ title เองเพื่อให้
	// ข้อความ error ตรงกับที่ frontend แสดง ("Please enter a task title")
	logger.InfoContext(ctx, "Task creation attempt", "user_id", user.ID, "title", req.Title)

	task, err := h.taskService.CreateTask(ctx, user.ID, &req)
	if err != nil {
		logger.WarnContext(ctx, "Task creation failed", "user_id", user.ID, "error", err)
		return appErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Task created", "task_id", task.ID, "user_id", user.ID)

	return utils.CreatedResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) ToggleTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		logger.WarnContext(ctx, "Unauthorized access attempt")
		return utils.UnauthorizedResponse(c, "")
	}

	taskIDStr := c.Params("id")
	taskID, err := uuid.Parse(taskIDStr)
	if err != nil {
		logger.WarnContext(ctx, "Invalid task ID", "task_id", taskIDStr)
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	var req dto.ToggleTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	task, err := h.taskService.ToggleTask(ctx, user.ID, taskID, req.Completed)
	if err != nil {
		logger.WarnContext(ctx, "Task toggle failed", "task_id", taskID, "error", err)
		return appErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Task toggled", "task_id", taskID, "completed", req.Completed)

	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		logger.WarnContext(ctx, "Unauthorized access attempt")
		return utils.UnauthorizedResponse(c, "")
	}

	taskIDStr := c.Params("id")
	taskID, err := uuid.Parse(taskIDStr)
	if err != nil {
		logger.WarnContext(ctx, "Invalid task ID", "task_id", taskIDStr)
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	var req dto.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		errors := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", errors)
		return utils.ValidationErrorResponse(c, errors)
	}

	logger.InfoContext(ctx, "Task update attempt", "task_id", taskID)

	task, err := h.taskService.UpdateTask(ctx, user.ID, taskID, &req)
	if err != nil {
		logger.WarnContext(ctx, "Task update failed", "task_id", taskID, "error", err)
		return appErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Task updated", "task_id", taskID)

	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		logger.WarnContext(ctx, "Unauthorized access attempt")
		return utils.UnauthorizedResponse(c, "")
	}

	taskIDStr := c.Params("id")
	taskID, err := uuid.Parse(taskIDStr)
	if err != nil {
		logger.WarnContext(ctx, "Invalid task ID", "task_id", taskIDStr)
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	logger.InfoContext(ctx, "Task deletion attempt", "task_id", taskID)

	if err := h.taskService.DeleteTask(ctx, user.ID, taskID); err != nil {
		logger.WarnContext(ctx, "Task deletion failed", "task_id", taskID, "error", err)
		return appErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Task deleted", "task_id", taskID)

	return utils.NoContentResponse(c)
}
