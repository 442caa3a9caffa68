package serviceimpl

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"couplesync/domain/apperrors"
	"couplesync/domain/dto"
	"couplesync/domain/models"
	"couplesync/domain/ports"
	"couplesync/domain/repositories"
	"couplesync/domain/services"
	"couplesync/pkg/logger"
)

type TaskServiceImpl struct {
	taskRepo   repositories.TaskRepository
	coupleRepo repositories.CoupleRepository
	changePub  ports.ChangePublisherPort
}

func NewTaskService(taskRepo repositories.TaskRepository, coupleRepo repositories.CoupleRepository, changePub ports.ChangePublisherPort) services.TaskService {
	return &TaskServiceImpl{
		taskRepo:   taskRepo,
		coupleRepo: coupleRepo,
		changePub:  changePub,
	}
}

// requireCouple คืน couple ของ user - task ทุก operation ต้องผ่านตรงนี้ก่อน
// (ทำหน้าที่แทน row-level security: user เห็นเฉพาะ task ใน couple ของตัวเอง)
func (s *TaskServiceImpl) requireCouple(ctx context.Context, userID uuid.UUID) (*models.Couple, error) {
	couple, err := s.coupleRepo.GetByUserID(ctx, userID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to resolve couple for task operation", "user_id", userID, "error", err)
		return nil, apperrors.Wrap(apperrors.KindData, "Failed to load couple", err)
	}
	if couple == nil {
		return nil, apperrors.New(apperrors.KindConflict, "You need to pair up before managing tasks")
	}
	return couple, nil
}

// requireTask ตรวจว่า task มีอยู่และเป็นของ couple ของ user
func (s *TaskServiceImpl) requireTask(ctx context.Context, userID, taskID uuid.UUID) (*models.Task, *models.Couple, error) {
	couple, err := s.requireCouple(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, nil, apperrors.New(apperrors.KindLookup, "Task not found")
	}
	if task.CoupleID != couple.ID {
		// ไม่เปิดเผยว่า task มีอยู่จริงนอก couple
		return nil, nil, apperrors.New(apperrors.KindLookup, "Task not found")
	}

	return task, couple, nil
}

func (s *TaskServiceImpl) ListCoupleTasks(ctx context.Context, userID uuid.UUID) ([]*models.Task, error) {
	couple, err := s.requireCouple(ctx, userID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByCoupleID(ctx, couple.ID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list tasks", "couple_id", couple.ID, "error", err)
		return nil, apperrors.Wrap(apperrors.KindData, "Failed to load tasks", err)
	}

	return tasks, nil
}

func (s *TaskServiceImpl) CreateTask(ctx context.Context, userID uuid.UUID, req *dto.CreateTaskRequest) (*models.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.New(apperrors.KindValidation, "Please enter a task title")
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.ValidPriority(priority) {
		return nil, apperrors.New(apperrors.KindValidation, "Priority must be high, medium or low")
	}

	assignedTo := req.AssignedTo
	if assignedTo == "" {
		assignedTo = models.AssigneeUnassigned
	}
	if !models.ValidAssignee(assignedTo) {
		return nil, apperrors.New(apperrors.KindValidation, "Assignee must be partner1, partner2 or unassigned")
	}

	couple, err := s.requireCouple(ctx, userID)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		ID:         uuid.New(),
		CoupleID:   couple.ID,
		Title:      title,
		Priority:   priority,
		AssignedTo: assignedTo,
		Completed:  false,
		CreatedBy:  userID,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		logger.ErrorContext(ctx, "Failed to create task", "couple_id", couple.ID, "error", err)
		return nil, apperrors.Wrap(apperrors.KindData, "Failed to create task", err)
	}

	logger.InfoContext(ctx, "Task created", "task_id", task.ID, "couple_id", couple.ID)

	s.publishTaskChange(ctx, ports.ActionInsert, task)

	return task, nil
}

func (s *TaskServiceImpl) ToggleTask(ctx context.Context, userID, taskID uuid.UUID, completed bool) (*models.Task, error) {
	_, _, err := s.requireTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	// เปลี่ยนเฉพาะ completed - field อื่นไม่ถูกแตะ
	updated, err := s.taskRepo.Update(ctx, taskID, repositories.TaskPatch{Completed: &completed})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to toggle task", "task_id", taskID, "error", err)
		return nil, apperrors.Wrap(apperrors.KindData, "Failed to update task", err)
	}

	s.publishTaskChange(ctx, ports.ActionUpdate, updated)

	return updated, nil
}

func (s *TaskServiceImpl) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*models.Task, error) {
	_, _, err := s.requireTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, apperrors.New(apperrors.KindValidation, "Please enter a task title")
	}

	patch := repositories.TaskPatch{
		Title:      req.Title,
		Priority:   req.Priority,
		AssignedTo: req.AssignedTo,
	}

	updated, err := s.taskRepo.Update(ctx, taskID, patch)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to update task", "task_id", taskID, "error", err)
		return nil, apperrors.Wrap(apperrors.KindData, "Failed to update task", err)
	}

	logger.InfoContext(ctx, "Task updated", "task_id", taskID)

	s.publishTaskChange(ctx, ports.ActionUpdate, updated)

	return updated, nil
}

func (s *TaskServiceImpl) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	task, _, err := s.requireTask(ctx, userID, taskID)
	if err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		logger.ErrorContext(ctx, "Failed to delete task", "task_id", taskID, "error", err)
		return apperrors.Wrap(apperrors.KindData, "Failed to delete task", err)
	}

	logger.InfoContext(ctx, "Task deleted", "task_id", taskID)

	s.publishTaskChange(ctx, ports.ActionDelete, task)

	return nil
}

func (s *TaskServiceImpl) publishTaskChange(ctx context.Context, action string, task *models.Task) {
	if s.changePub == nil {
		return
	}

	event := &ports.ChangeEvent{
		Table:    ports.TableTasks,
		Action:   action,
		EntityID: task.ID.String(),
		CoupleID: task.CoupleID.String(),
	}
	if err := s.changePub.PublishChange(ctx, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish task change", "task_id", task.ID, "error", err)
	}
}
