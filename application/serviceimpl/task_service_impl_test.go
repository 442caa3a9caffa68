package serviceimpl

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"couplesync/domain/apperrors"
	"couplesync/domain/dto"
	"couplesync/domain/models"
	"couplesync/domain/ports"
)

type taskTestEnv struct {
	taskRepo   *fakeTaskRepo
	coupleRepo *fakeCoupleRepo
	pub        *fakeChangePublisher
	alice      uuid.UUID
	bob        uuid.UUID
	coupleID   uuid.UUID
}

func newTaskTestEnv() *taskTestEnv {
	env := &taskTestEnv{
		taskRepo:   newFakeTaskRepo(),
		coupleRepo: newFakeCoupleRepo(),
		pub:        &fakeChangePublisher{},
		alice:      uuid.New(),
		bob:        uuid.New(),
		coupleID:   uuid.New(),
	}
	env.coupleRepo.couples[env.coupleID] = &models.Couple{
		ID:         env.coupleID,
		InviteCode: "abc123",
		Partner1ID: env.alice,
		Partner2ID: &env.bob,
		CreatedAt:  time.Now(),
	}
	return env
}

func TestCreateTask(t *testing.T) {
	ctx := context.Background()

	t.Run("empty title rejected before repo", func(t *testing.T) {
		env := newTaskTestEnv()
		svc := NewTaskService(env.taskRepo, env.coupleRepo, env.pub)

		for _, title := range []string{"", "   "} {
			_, err := svc.CreateTask(ctx, env.alice, &dto.CreateTaskRequest{Title: title})
			if apperrors.KindOf(err) != apperrors.KindValidation {
				t.Errorf("CreateTask(%q) kind = %v, want KindValidation", title, apperrors.KindOf(err))
			}
			if err.Error() != "Please enter a task title" {
				t.Errorf("CreateTask(%q) message = %q", title, err.Error())
			}
		}
		if len(env.taskRepo.tasks) != 0 {
			t.Error("task persisted despite validation failure")
		}
	})

	t.Run("unknown priority or assignee rejected before repo", func(t *testing.T) {
		env := newTaskTestEnv()
		svc := NewTaskService(env.taskRepo, env.coupleRepo, env.pub)

		_, err := svc.CreateTask(ctx, env.alice, &dto.CreateTaskRequest{Title: "Buy milk", Priority: "urgent"})
		if apperrors.KindOf(err) != apperrors.KindValidation {
			t.Errorf("priority=urgent kind = %v, want KindValidation", apperrors.KindOf(err))
		}

		_, err = svc.CreateTask(ctx, env.alice, &dto.CreateTaskRequest{Title: "Buy milk", AssignedTo: "grandma"})
		if apperrors.KindOf(err) != apperrors.KindValidation {
			t.Errorf("assignedTo=grandma kind = %v, want KindValidation", apperrors.KindOf(err))
		}

		if len(env.taskRepo.tasks) != 0 {
			t.Error("task persisted despite validation failure")
		}
		if len(env.pub.published()) != 0 {
			t.Error("change event published for rejected task")
		}
	})

	t.Run("unpaired user rejected", func(t *testing.T) {
		env := newTaskTestEnv()
		svc := NewTaskService(env.taskRepo, env.coupleRepo, env.pub)

		stranger := uuid.New()
		_, err := svc.CreateTask(ctx, stranger, &dto.CreateTaskRequest{Title: "Nope"})
		if apperrors.KindOf(err) != apperrors.KindConflict {
			t.Errorf("kind = %v, want KindConflict", apperrors.KindOf(err))
		}
	})

	t.Run("defaults and change event", func(t *testing.T) {
		env := newTaskTestEnv()
		svc := NewTaskService(env.taskRepo, env.coupleRepo, env.pub)

		task, err := svc.CreateTask(ctx, env.alice, &dto.CreateTaskRequest{Title: "  Buy milk  "})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if task.Title != "Buy milk" {
			t.Errorf("title = %q, want trimmed", task.Title)
		}
		if task.Priority != models.PriorityMedium || task.AssignedTo != models.AssigneeUnassigned {
			t.Errorf("defaults not applied: %+v", task)
		}
		if task.CoupleID != env.coupleID || task.CreatedBy != env.alice {
			t.Errorf("ownership fields wrong: %+v", task)
		}

		events := env.pub.published()
		if len(events) != 1 || events[0].Table != ports.TableTasks || events[0].Action != ports.ActionInsert {
			t.Errorf("events = %+v", events)
		}
		if events[0].CoupleID != env.coupleID.String() {
			t.Errorf("event couple id = %q", events[0].CoupleID)
		}
	})
}

func TestToggleTask(t *testing.T) {
	ctx := context.Background()
	env := newTaskTestEnv()
	svc := NewTaskService(env.taskRepo, env.coupleRepo, env.pub)

	task, err := svc.CreateTask(ctx, env.alice, &dto.CreateTaskRequest{Title: "Laundry", Priority: models.PriorityLow})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	t.Run("partner can toggle", func(t *testing.T) {
		updated, err := svc.ToggleTask(ctx, env.bob, task.ID, true)
		if err != nil {
			t.Fatalf("toggle: %v", err)
		}
		if !updated.Completed {
			t.Error("not completed after toggle")
		}
		if updated.Priority != models.PriorityLow {
			t.Error("toggle touched priority")
		}
	})

	t.Run("round trip", func(t *testing.T) {
		updated, err := svc.ToggleTask(ctx, env.alice, task.ID, false)
		if err != nil {
			t.Fatalf("toggle back: %v", err)
		}
		if updated.Completed {
			t.Error("still completed after toggle false")
		}
	})

	t.Run("outsider sees not found", func(t *testing.T) {
		stranger := uuid.New()
		other := uuid.New()
		env.coupleRepo.couples[other] = &models.Couple{
			ID:         other,
			InviteCode: "zzz999",
			Partner1ID: stranger,
			CreatedAt:  time.Now(),
		}

		_, err := svc.ToggleTask(ctx, stranger, task.ID, true)
		if apperrors.KindOf(err) != apperrors.KindLookup {
			t.Errorf("kind = %v, want KindLookup", apperrors.KindOf(err))
		}
		if err.Error() != "Task not found" {
			t.Errorf("message = %q (must not reveal task existence)", err.Error())
		}
	})
}

func TestUpdateTask(t *testing.T) {
	ctx := context.Background()
	env := newTaskTestEnv()
	svc := NewTaskService(env.taskRepo, env.coupleRepo, env.pub)

	task, _ := svc.CreateTask(ctx, env.alice, &dto.CreateTaskRequest{Title: "Groceries"})

	t.Run("partial update", func(t *testing.T) {
		high := models.PriorityHigh
		updated, err := svc.UpdateTask(ctx, env.alice, task.ID, &dto.UpdateTaskRequest{Priority: &high})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.Priority != models.PriorityHigh {
			t.Errorf("priority = %q", updated.Priority)
		}
		if updated.Title != "Groceries" {
			t.Error("title changed by priority-only patch")
		}
	})

	t.Run("empty title rejected", func(t *testing.T) {
		empty := "   "
		_, err := svc.UpdateTask(ctx, env.alice, task.ID, &dto.UpdateTaskRequest{Title: &empty})
		if apperrors.KindOf(err) != apperrors.KindValidation {
			t.Errorf("kind = %v, want KindValidation", apperrors.KindOf(err))
		}
	})
}

func TestDeleteTask(t *testing.T) {
	ctx := context.Background()
	env := newTaskTestEnv()
	svc := NewTaskService(env.taskRepo, env.coupleRepo, env.pub)

	task, _ := svc.CreateTask(ctx, env.alice, &dto.CreateTaskRequest{Title: "Temp"})

	if err := svc.DeleteTask(ctx, env.bob, task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	tasks, err := svc.ListCoupleTasks(ctx, env.alice)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, got := range tasks {
		if got.ID == task.ID {
			t.Error("deleted task still listed")
		}
	}

	events := env.pub.published()
	last := events[len(events)-1]
	if last.Action != ports.ActionDelete {
		t.Errorf("last event action = %q, want delete", last.Action)
	}
}

func TestListCoupleTasks(t *testing.T) {
	ctx := context.Background()
	env := newTaskTestEnv()
	svc := NewTaskService(env.taskRepo, env.coupleRepo, env.pub)

	t.Run("unpaired user rejected", func(t *testing.T) {
		_, err := svc.ListCoupleTasks(ctx, uuid.New())
		if apperrors.KindOf(err) != apperrors.KindConflict {
			t.Errorf("kind = %v, want KindConflict", apperrors.KindOf(err))
		}
	})

	t.Run("both partners see the same list", func(t *testing.T) {
		svc.CreateTask(ctx, env.alice, &dto.CreateTaskRequest{Title: "One"})
		svc.CreateTask(ctx, env.bob, &dto.CreateTaskRequest{Title: "Two"})

		fromAlice, err := svc.ListCoupleTasks(ctx, env.alice)
		if err != nil {
			t.Fatalf("list alice: %v", err)
		}
		fromBob, err := svc.ListCoupleTasks(ctx, env.bob)
		if err != nil {
			t.Fatalf("list bob: %v", err)
		}
		if len(fromAlice) != 2 || len(fromBob) != 2 {
			t.Errorf("lists differ: alice=%d bob=%d", len(fromAlice), len(fromBob))
		}
	})
}
