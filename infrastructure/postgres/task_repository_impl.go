package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"couplesync/domain/models"
	"couplesync/domain/repositories"
)

type TaskRepositoryImpl struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) repositories.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepositoryImpl) ListByCoupleID(ctx context.Context, coupleID uuid.UUID) ([]*models.Task, error) {
	var tasks []*models.Task
	err := r.db.WithContext(ctx).
		Where("couple_id = ?", coupleID).
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, id uuid.UUID, patch repositories.TaskPatch) (*models.Task, error) {
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Priority != nil {
		updates["priority"] = *patch.Priority
	}
	if patch.AssignedTo != nil {
		updates["assigned_to"] = *patch.AssignedTo
	}
	if patch.Completed != nil {
		updates["completed"] = *patch.Completed
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		result := r.db.WithContext(ctx).
			Model(&models.Task{}).
			Where("id = ?", id).
			Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}

	return r.GetByID(ctx, id)
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Task{}).Error
}

func (r *TaskRepositoryImpl) CountIncompleteByCoupleID(ctx context.Context, coupleID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("couple_id = ? AND completed = false", coupleID).
		Count(&count).Error
	return count, err
}

func (r *TaskRepositoryImpl) ListIncompleteByPriority(ctx context.Context, coupleID uuid.UUID, priority string) ([]*models.Task, error) {
	var tasks []*models.Task
	err := r.db.WithContext(ctx).
		Where("couple_id = ? AND completed = false AND priority = ?", coupleID, priority).
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, err
}
