package sync

import (
	"context"
	"fmt"
	"time"
)

// ========== In-memory fakes สำหรับทดสอบ store ==========

type fakeAuth struct {
	identity *Identity
	err      error
}

func (f *fakeAuth) CurrentIdentity(ctx context.Context) (*Identity, error) {
	return f.identity, f.err
}

type fakeCoupleData struct {
	couples []Couple
	nextID  int

	selectErr error
	insertErr error
	joinErr   error
}

func (f *fakeCoupleData) SelectByMember(ctx context.Context, identityID string) ([]Couple, error) {
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	var out []Couple
	for _, c := range f.couples {
		if c.Partner1ID == identityID || c.Partner2ID == identityID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCoupleData) SelectByInviteCode(ctx context.Context, inviteCode string) (*Couple, error) {
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	for _, c := range f.couples {
		if c.InviteCode == inviteCode {
			couple := c
			return &couple, nil
		}
	}
	return nil, nil
}

func (f *fakeCoupleData) Insert(ctx context.Context, firstMemberID string) (*Couple, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.nextID++
	couple := Couple{
		ID:         fmt.Sprintf("couple-%d", f.nextID),
		InviteCode: fmt.Sprintf("code%02d", f.nextID),
		Partner1ID: firstMemberID,
		CreatedAt:  time.Now(),
	}
	f.couples = append(f.couples, couple)
	return &couple, nil
}

func (f *fakeCoupleData) SetSecondMember(ctx context.Context, couple *Couple, identityID string) (*Couple, error) {
	if f.joinErr != nil {
		return nil, f.joinErr
	}
	for i := range f.couples {
		if f.couples[i].ID == couple.ID {
			f.couples[i].Partner2ID = identityID
			updated := f.couples[i]
			return &updated, nil
		}
	}
	return nil, fmt.Errorf("couple %s not found", couple.ID)
}

type fakeTaskData struct {
	tasks   []Task
	nextID  int
	inserts int

	selectErr error
	insertErr error
	updateErr error
	deleteErr error
}

func (f *fakeTaskData) SelectByCouple(ctx context.Context, coupleID string) ([]Task, error) {
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	// เรียงใหม่สุดก่อนเหมือน backend จริง
	var out []Task
	for i := len(f.tasks) - 1; i >= 0; i-- {
		if f.tasks[i].CoupleID == coupleID {
			out = append(out, f.tasks[i])
		}
	}
	return out, nil
}

func (f *fakeTaskData) Insert(ctx context.Context, task NewTask) (*Task, error) {
	f.inserts++
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.nextID++
	created := Task{
		ID:         fmt.Sprintf("task-%d", f.nextID),
		CoupleID:   task.CoupleID,
		Title:      task.Title,
		Priority:   task.Priority,
		AssignedTo: task.AssignedTo,
		Completed:  false,
		CreatedBy:  task.CreatedBy,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	f.tasks = append(f.tasks, created)
	return &created, nil
}

func (f *fakeTaskData) Update(ctx context.Context, taskID string, patch TaskPatch) (*Task, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID != taskID {
			continue
		}
		if patch.Title != nil {
			f.tasks[i].Title = *patch.Title
		}
		if patch.Priority != nil {
			f.tasks[i].Priority = *patch.Priority
		}
		if patch.AssignedTo != nil {
			f.tasks[i].AssignedTo = *patch.AssignedTo
		}
		if patch.Completed != nil {
			f.tasks[i].Completed = *patch.Completed
		}
		f.tasks[i].UpdatedAt = time.Now()
		updated := f.tasks[i]
		return &updated, nil
	}
	return nil, fmt.Errorf("task %s not found", taskID)
}

func (f *fakeTaskData) Delete(ctx context.Context, taskID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID == taskID {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("task %s not found", taskID)
}

// fakeRealtime เก็บ handler ไว้ให้ test ยิง event เองด้วย fire()
type fakeRealtime struct {
	handlers []func()
	subErr   error
}

type fakeSubscription struct {
	parent *fakeRealtime
	index  int
	active bool
}

func (f *fakeRealtime) Subscribe(scope Scope, onEvent func()) (Subscription, error) {
	if f.subErr != nil {
		return nil, f.subErr
	}
	f.handlers = append(f.handlers, onEvent)
	return &fakeSubscription{parent: f, index: len(f.handlers) - 1, active: true}, nil
}

func (f *fakeRealtime) fire() {
	for _, h := range f.handlers {
		if h != nil {
			h()
		}
	}
}

func (s *fakeSubscription) Unsubscribe() error {
	if s.active {
		s.parent.handlers[s.index] = nil
		s.active = false
	}
	return nil
}
