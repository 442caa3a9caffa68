package sync

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTaskStoreWith(data *fakeTaskData, rt *fakeRealtime) *TaskStore {
	return NewTaskStore(&fakeAuth{identity: newTestIdentity("alice")}, data, rt, "c1")
}

func TestTaskStoreAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("empty title never reaches data layer", func(t *testing.T) {
		data := &fakeTaskData{}
		store := newTaskStoreWith(data, &fakeRealtime{})

		for _, title := range []string{"", "   ", "\t\n"} {
			_, err := store.Add(ctx, title, PriorityHigh, AssigneePartner1)
			if KindOf(err) != KindValidation {
				t.Errorf("Add(%q) kind = %v, want KindValidation", title, KindOf(err))
			}
			if err.Error() != "Please enter a task title" {
				t.Errorf("Add(%q) message = %q", title, err.Error())
			}
		}
		if data.inserts != 0 {
			t.Errorf("data layer called %d times, want 0", data.inserts)
		}
	})

	t.Run("unknown priority or assignee never reaches data layer", func(t *testing.T) {
		data := &fakeTaskData{}
		store := newTaskStoreWith(data, &fakeRealtime{})

		_, err := store.Add(ctx, "Buy milk", "urgent", "")
		if KindOf(err) != KindValidation {
			t.Errorf("Add(priority=urgent) kind = %v, want KindValidation", KindOf(err))
		}

		_, err = store.Add(ctx, "Buy milk", "", "grandma")
		if KindOf(err) != KindValidation {
			t.Errorf("Add(assignedTo=grandma) kind = %v, want KindValidation", KindOf(err))
		}

		if data.inserts != 0 {
			t.Errorf("data layer called %d times, want 0", data.inserts)
		}
	})

	t.Run("add then list includes new task", func(t *testing.T) {
		data := &fakeTaskData{}
		store := newTaskStoreWith(data, &fakeRealtime{})

		created, err := store.Add(ctx, "Buy milk", PriorityHigh, AssigneePartner1)
		if err != nil {
			t.Fatalf("add: %v", err)
		}

		tasks := store.Tasks()
		if len(tasks) != 1 {
			t.Fatalf("got %d tasks, want 1", len(tasks))
		}
		got := tasks[0]
		if got.ID != created.ID || got.Title != "Buy milk" || got.Priority != PriorityHigh ||
			got.AssignedTo != AssigneePartner1 || got.Completed {
			t.Errorf("task = %+v", got)
		}
	})

	t.Run("defaults applied", func(t *testing.T) {
		data := &fakeTaskData{}
		store := newTaskStoreWith(data, &fakeRealtime{})

		created, err := store.Add(ctx, "Dishes", "", "")
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		if created.Priority != PriorityMedium {
			t.Errorf("priority = %q, want medium", created.Priority)
		}
		if created.AssignedTo != AssigneeUnassigned {
			t.Errorf("assignedTo = %q, want unassigned", created.AssignedTo)
		}
	})

	t.Run("reload failure does not fail the mutation", func(t *testing.T) {
		data := &fakeTaskData{}
		store := newTaskStoreWith(data, &fakeRealtime{})

		store.Add(ctx, "First", "", "")

		data.selectErr = errors.New("connection refused")
		created, err := store.Add(ctx, "Second", "", "")
		if err != nil || created == nil {
			t.Fatalf("Add = (%v, %v), want created task", created, err)
		}
		if store.Err() == nil {
			t.Error("reload failure not recorded")
		}
		tasks := store.Tasks()
		if len(tasks) != 1 || tasks[0].Title != "First" {
			t.Errorf("snapshot = %+v, want the pre-failure list", tasks)
		}
	})

	t.Run("newest first ordering", func(t *testing.T) {
		data := &fakeTaskData{}
		store := newTaskStoreWith(data, &fakeRealtime{})

		store.Add(ctx, "first", "", "")
		store.Add(ctx, "second", "", "")

		tasks := store.Tasks()
		if len(tasks) != 2 || tasks[0].Title != "second" {
			t.Errorf("tasks[0].Title = %q, want second (newest first)", tasks[0].Title)
		}
	})
}

func TestTaskStoreToggle(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		data := &fakeTaskData{}
		store := newTaskStoreWith(data, &fakeRealtime{})

		created, err := store.Add(ctx, "Laundry", "", "")
		if err != nil {
			t.Fatalf("add: %v", err)
		}

		if _, err := store.Toggle(ctx, created.ID, true); err != nil {
			t.Fatalf("toggle true: %v", err)
		}
		if !store.Tasks()[0].Completed {
			t.Error("task not completed after toggle true")
		}

		if _, err := store.Toggle(ctx, created.ID, false); err != nil {
			t.Fatalf("toggle false: %v", err)
		}
		if store.Tasks()[0].Completed {
			t.Error("task still completed after toggle false")
		}
	})

	t.Run("toggle leaves other fields untouched", func(t *testing.T) {
		data := &fakeTaskData{}
		store := newTaskStoreWith(data, &fakeRealtime{})

		created, _ := store.Add(ctx, "Laundry", PriorityLow, AssigneePartner2)
		store.Toggle(ctx, created.ID, true)

		got := store.Tasks()[0]
		if got.Title != "Laundry" || got.Priority != PriorityLow || got.AssignedTo != AssigneePartner2 {
			t.Errorf("fields changed by toggle: %+v", got)
		}
	})
}

func TestTaskStoreUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update touches only provided fields", func(t *testing.T) {
		data := &fakeTaskData{}
		store := newTaskStoreWith(data, &fakeRealtime{})

		created, _ := store.Add(ctx, "Groceries", PriorityMedium, AssigneeUnassigned)

		high := PriorityHigh
		if _, err := store.Update(ctx, created.ID, TaskPatch{Priority: &high}); err != nil {
			t.Fatalf("update: %v", err)
		}

		got := store.Tasks()[0]
		if got.Priority != PriorityHigh {
			t.Errorf("priority = %q, want high", got.Priority)
		}
		if got.Title != "Groceries" || got.AssignedTo != AssigneeUnassigned {
			t.Errorf("untouched fields changed: %+v", got)
		}
	})

	t.Run("empty title patch rejected locally", func(t *testing.T) {
		data := &fakeTaskData{}
		store := newTaskStoreWith(data, &fakeRealtime{})

		created, _ := store.Add(ctx, "Groceries", "", "")

		empty := "  "
		_, err := store.Update(ctx, created.ID, TaskPatch{Title: &empty})
		if KindOf(err) != KindValidation {
			t.Errorf("kind = %v, want KindValidation", KindOf(err))
		}
		if store.Tasks()[0].Title != "Groceries" {
			t.Error("title changed by rejected update")
		}
	})
}

func TestTaskStoreDelete(t *testing.T) {
	ctx := context.Background()

	data := &fakeTaskData{}
	store := newTaskStoreWith(data, &fakeRealtime{})

	created, _ := store.Add(ctx, "Temp", "", "")
	if err := store.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	for _, task := range store.Tasks() {
		if task.ID == created.ID {
			t.Error("deleted task still present")
		}
	}
}

func TestTaskStoreFailureKeepsSnapshot(t *testing.T) {
	ctx := context.Background()

	data := &fakeTaskData{}
	store := newTaskStoreWith(data, &fakeRealtime{})

	store.Add(ctx, "Keep me", "", "")
	before := store.Tasks()

	data.insertErr = errors.New("permission denied")
	_, err := store.Add(ctx, "New task", "", "")
	if KindOf(err) != KindData {
		t.Errorf("kind = %v, want KindData", KindOf(err))
	}

	after := store.Tasks()
	if len(after) != len(before) || after[0].ID != before[0].ID {
		t.Error("snapshot changed after failed mutation")
	}
	if store.Err() == nil {
		t.Error("last error not retained")
	}

	// operation สำเร็จถัดไปต้องล้าง error
	data.insertErr = nil
	if _, err := store.Add(ctx, "New task", "", ""); err != nil {
		t.Fatalf("add after recovery: %v", err)
	}
	if store.Err() != nil {
		t.Error("error not cleared after successful operation")
	}
}

func TestTaskStoreSubscribe(t *testing.T) {
	ctx := context.Background()

	t.Run("notification refreshes and notifies", func(t *testing.T) {
		data := &fakeTaskData{}
		rt := &fakeRealtime{}
		store := newTaskStoreWith(data, rt)

		var got []Task
		if err := store.Subscribe(func(tasks []Task) { got = tasks }); err != nil {
			t.Fatalf("subscribe: %v", err)
		}

		// partner อีกคนเพิ่ม task ตรงเข้า data layer
		data.Insert(ctx, NewTask{CoupleID: "c1", Title: "From partner", CreatedBy: "bob"})
		rt.fire()

		if len(got) != 1 || got[0].Title != "From partner" {
			t.Errorf("callback got %+v", got)
		}
	})

	t.Run("no mutation after close", func(t *testing.T) {
		data := &fakeTaskData{}
		rt := &fakeRealtime{}
		store := newTaskStoreWith(data, rt)

		store.Refresh(ctx)
		if err := store.Subscribe(func([]Task) {}); err != nil {
			t.Fatalf("subscribe: %v", err)
		}
		if err := store.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}

		data.Insert(ctx, NewTask{CoupleID: "c1", Title: "Late", CreatedBy: "bob"})
		rt.fire()

		if len(store.Tasks()) != 0 {
			t.Error("state mutated after close")
		}
	})

	t.Run("close waits for in-flight callback", func(t *testing.T) {
		data := &fakeTaskData{}
		rt := &fakeRealtime{}
		store := newTaskStoreWith(data, rt)

		entered := make(chan struct{})
		release := make(chan struct{})
		if err := store.Subscribe(func([]Task) {
			close(entered)
			<-release
		}); err != nil {
			t.Fatalf("subscribe: %v", err)
		}

		go rt.fire()
		<-entered

		closed := make(chan struct{})
		go func() {
			store.Close()
			close(closed)
		}()

		select {
		case <-closed:
			t.Fatal("Close returned while a callback was still running")
		case <-time.After(50 * time.Millisecond):
		}

		close(release)
		select {
		case <-closed:
		case <-time.After(time.Second):
			t.Fatal("Close did not return after the callback finished")
		}
	})
}
