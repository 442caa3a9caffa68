package serviceimpl

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"couplesync/domain/models"
	"couplesync/domain/ports"
	"couplesync/domain/repositories"
)

// ========== In-memory fakes สำหรับทดสอบ service layer ==========

type fakeCoupleRepo struct {
	mu      sync.Mutex
	couples map[uuid.UUID]*models.Couple

	createErr error
	selectErr error
}

func newFakeCoupleRepo() *fakeCoupleRepo {
	return &fakeCoupleRepo{couples: make(map[uuid.UUID]*models.Couple)}
}

func (r *fakeCoupleRepo) Create(ctx context.Context, couple *models.Couple) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *couple
	r.couples[couple.ID] = &clone
	return nil
}

func (r *fakeCoupleRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Couple, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	couple, ok := r.couples[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	clone := *couple
	return &clone, nil
}

func (r *fakeCoupleRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Couple, error) {
	if r.selectErr != nil {
		return nil, r.selectErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var earliest *models.Couple
	for _, couple := range r.couples {
		if couple.Partner1ID != userID && (couple.Partner2ID == nil || *couple.Partner2ID != userID) {
			continue
		}
		if earliest == nil || couple.CreatedAt.Before(earliest.CreatedAt) {
			earliest = couple
		}
	}
	if earliest == nil {
		return nil, nil
	}
	clone := *earliest
	return &clone, nil
}

func (r *fakeCoupleRepo) GetByInviteCode(ctx context.Context, inviteCode string) (*models.Couple, error) {
	if r.selectErr != nil {
		return nil, r.selectErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, couple := range r.couples {
		if couple.InviteCode == inviteCode {
			clone := *couple
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeCoupleRepo) SetPartner2(ctx context.Context, coupleID, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	couple, ok := r.couples[coupleID]
	if !ok || couple.Partner2ID != nil {
		return errors.New("record not found")
	}
	id := userID
	couple.Partner2ID = &id
	return nil
}

func (r *fakeCoupleRepo) ListAll(ctx context.Context) ([]*models.Couple, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Couple, 0, len(r.couples))
	for _, couple := range r.couples {
		clone := *couple
		out = append(out, &clone)
	}
	return out, nil
}

type fakeTaskRepo struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*models.Task

	createErr error
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[uuid.UUID]*models.Task)}
}

func (r *fakeTaskRepo) Create(ctx context.Context, task *models.Task) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *task
	r.tasks[task.ID] = &clone
	return nil
}

func (r *fakeTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	clone := *task
	return &clone, nil
}

func (r *fakeTaskRepo) ListByCoupleID(ctx context.Context, coupleID uuid.UUID) ([]*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Task
	for _, task := range r.tasks {
		if task.CoupleID == coupleID {
			clone := *task
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) Update(ctx context.Context, id uuid.UUID, patch repositories.TaskPatch) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.AssignedTo != nil {
		task.AssignedTo = *patch.AssignedTo
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
	}
	task.UpdatedAt = time.Now()
	clone := *task
	return &clone, nil
}

func (r *fakeTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return errors.New("record not found")
	}
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) CountIncompleteByCoupleID(ctx context.Context, coupleID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, task := range r.tasks {
		if task.CoupleID == coupleID && !task.Completed {
			count++
		}
	}
	return count, nil
}

func (r *fakeTaskRepo) ListIncompleteByPriority(ctx context.Context, coupleID uuid.UUID, priority string) ([]*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Task
	for _, task := range r.tasks {
		if task.CoupleID == coupleID && !task.Completed && task.Priority == priority {
			clone := *task
			out = append(out, &clone)
		}
	}
	return out, nil
}

// fakeChangePublisher บันทึก event ที่ถูก publish ไว้ให้ตรวจ
type fakeChangePublisher struct {
	mu     sync.Mutex
	events []*ports.ChangeEvent
}

func (p *fakeChangePublisher) PublishChange(ctx context.Context, event *ports.ChangeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *fakeChangePublisher) published() []*ports.ChangeEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*ports.ChangeEvent, len(p.events))
	copy(out, p.events)
	return out
}
