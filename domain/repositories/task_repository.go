package repositories

import (
	"context"

	"github.com/google/uuid"

	"couplesync/domain/models"
)

// TaskPatch เป็น partial update - nil field จะไม่ถูกแตะ
type TaskPatch struct {
	Title      *string
	Priority   *string
	AssignedTo *string
	Completed  *bool
}

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	// ListByCoupleID เรียงตาม created_at ใหม่สุดก่อน
	ListByCoupleID(ctx context.Context, coupleID uuid.UUID) ([]*models.Task, error)
	Update(ctx context.Context, id uuid.UUID, patch TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountIncompleteByCoupleID(ctx context.Context, coupleID uuid.UUID) (int64, error)
	ListIncompleteByPriority(ctx context.Context, coupleID uuid.UUID, priority string) ([]*models.Task, error)
}
