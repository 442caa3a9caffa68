package sync

import (
	"context"
	"strings"
	stdsync "sync"
)

// TaskStore ดูแล task list ของ couple เดียว:
// โหลด, เพิ่ม, toggle, แก้ไข, ลบ และ refresh เมื่อมี change notification
// ทุก mutation ที่สำเร็จจะ refresh list ให้ caller เห็นผลทันที
type TaskStore struct {
	auth     AuthProvider
	data     TaskData
	realtime Realtime
	coupleID string

	mu      stdsync.Mutex
	tasks   []Task
	loading bool
	lastErr error
	closed  bool
	sub     Subscription

	// deliverMu ถูกถือตลอดการส่ง onChange - Close ต้องรอ delivery ที่ค้างอยู่ให้จบ
	deliverMu stdsync.Mutex
}

func NewTaskStore(auth AuthProvider, data TaskData, realtime Realtime, coupleID string) *TaskStore {
	return &TaskStore{
		auth:     auth,
		data:     data,
		realtime: realtime,
		coupleID: coupleID,
		loading:  true,
	}
}

// Tasks คืน snapshot ล่าสุด เรียง created_at ใหม่สุดก่อน
func (s *TaskStore) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Loading เป็น true จนกว่า refresh แรกจะจบ
func (s *TaskStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err คืน error ล่าสุด - ถูกล้างเมื่อ operation ถัดไปสำเร็จ
func (s *TaskStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Refresh โหลด task list ใหม่ - ล้มเหลว snapshot เดิมคงอยู่
func (s *TaskStore) Refresh(ctx context.Context) ([]Task, error) {
	tasks, err := s.data.SelectByCouple(ctx, s.coupleID)
	if err != nil {
		return nil, s.fail(WrapError(KindData, "Failed to load tasks", err))
	}

	s.commit(func() {
		s.tasks = tasks
		s.lastErr = nil
	})
	return tasks, nil
}

// Add สร้าง task ใหม่ - title ว่างและ enum ผิดถูกปฏิเสธก่อนแตะ network
func (s *TaskStore) Add(ctx context.Context, title, priority, assignedTo string) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, s.fail(NewError(KindValidation, "Please enter a task title"))
	}

	if priority == "" {
		priority = PriorityMedium
	}
	if !ValidPriority(priority) {
		return nil, s.fail(NewError(KindValidation, "Priority must be high, medium or low"))
	}
	if assignedTo == "" {
		assignedTo = AssigneeUnassigned
	}
	if !ValidAssignee(assignedTo) {
		return nil, s.fail(NewError(KindValidation, "Assignee must be partner1, partner2 or unassigned"))
	}

	identity, err := s.auth.CurrentIdentity(ctx)
	if err != nil || identity == nil {
		return nil, s.fail(WrapError(KindAuth, "You need to sign in first", err))
	}

	task, err := s.data.Insert(ctx, NewTask{
		CoupleID:   s.coupleID,
		Title:      title,
		Priority:   priority,
		AssignedTo: assignedTo,
		CreatedBy:  identity.ID,
	})
	if err != nil {
		return nil, s.fail(WrapError(KindData, "Failed to create task", err))
	}

	// task ถูกสร้างไปแล้ว - reload ที่ล้มเหลวไม่ทำให้ mutation fail
	// snapshot เดิมคงอยู่ และ error อ่านได้จาก Err()
	s.Refresh(ctx)
	return task, nil
}

// Toggle เปลี่ยนเฉพาะ completed field
func (s *TaskStore) Toggle(ctx context.Context, taskID string, completed bool) (*Task, error) {
	task, err := s.data.Update(ctx, taskID, TaskPatch{Completed: &completed})
	if err != nil {
		return nil, s.fail(WrapError(KindData, "Failed to update task", err))
	}

	s.Refresh(ctx)
	return task, nil
}

// Update แก้ไขเฉพาะ field ที่ไม่เป็น nil (partial update)
func (s *TaskStore) Update(ctx context.Context, taskID string, patch TaskPatch) (*Task, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, s.fail(NewError(KindValidation, "Please enter a task title"))
	}

	task, err := s.data.Update(ctx, taskID, patch)
	if err != nil {
		return nil, s.fail(WrapError(KindData, "Failed to update task", err))
	}

	s.Refresh(ctx)
	return task, nil
}

// Delete ลบถาวร
func (s *TaskStore) Delete(ctx context.Context, taskID string) error {
	if err := s.data.Delete(ctx, taskID); err != nil {
		return s.fail(WrapError(KindData, "Failed to delete task", err))
	}

	s.Refresh(ctx)
	return nil
}

// Subscribe ลงทะเบียนรับ change notifications ของ couple นี้
// ทุก event จะ re-run Refresh แล้วเรียก onChange ด้วย list ล่าสุด
func (s *TaskStore) Subscribe(onChange func([]Task)) error {
	scope := Scope{Table: TableTasks, CoupleID: s.coupleID}
	sub, err := s.realtime.Subscribe(scope, func() {
		tasks, err := s.Refresh(context.Background())
		if err != nil {
			return
		}
		s.deliverMu.Lock()
		defer s.deliverMu.Unlock()
		s.mu.Lock()
		closed := s.closed
		s.mu.Unlock()
		if !closed && onChange != nil {
			onChange(tasks)
		}
	})
	if err != nil {
		return s.fail(WrapError(KindTransport, "Failed to subscribe to changes", err))
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		sub.Unsubscribe()
		return NewError(KindTransport, "Store is closed")
	}
	s.sub = sub
	s.mu.Unlock()
	return nil
}

// Close ยกเลิก subscription และ freeze state - หลัง return ต้องไม่มี callback อีก
func (s *TaskStore) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	sub := s.sub
	s.sub = nil
	s.mu.Unlock()

	// รอ onChange ที่กำลังส่งอยู่ให้จบก่อน - delivery ใหม่จะเห็น closed แล้วไม่ยิง
	s.deliverMu.Lock()
	s.deliverMu.Unlock()

	if sub != nil {
		return sub.Unsubscribe()
	}
	return nil
}

// commit no-op ถ้า store ถูก Close ไปแล้ว - ผลของ request ค้างถูกทิ้ง
func (s *TaskStore) commit(apply func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	apply()
	s.loading = false
}

func (s *TaskStore) fail(err *Error) error {
	s.commit(func() {
		s.lastErr = err
	})
	return err
}
