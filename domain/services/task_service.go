package services

import (
	"context"

	"github.com/google/uuid"

	"couplesync/domain/dto"
	"couplesync/domain/models"
)

type TaskService interface {
	ListCoupleTasks(ctx context.Context, userID uuid.UUID) ([]*models.Task, error)
	CreateTask(ctx context.Context, userID uuid.UUID, req *dto.CreateTaskRequest) (*models.Task, error)
	ToggleTask(ctx context.Context, userID, taskID uuid.UUID, completed bool) (*models.Task, error)
	UpdateTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error
}
