package rest

import (
	"context"
	"net/url"
	"time"

	"couplesync/client/sync"
)

// TaskDataClient implement sync.TaskData ผ่าน /tasks endpoints
type TaskDataClient struct {
	client *Client
}

func NewTaskDataClient(client *Client) *TaskDataClient {
	return &TaskDataClient{client: client}
}

type taskWire struct {
	ID         string    `json:"id"`
	CoupleID   string    `json:"coupleId"`
	Title      string    `json:"title"`
	Priority   string    `json:"priority"`
	AssignedTo string    `json:"assignedTo"`
	Completed  bool      `json:"completed"`
	CreatedBy  string    `json:"createdBy"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type taskListWire struct {
	Tasks []taskWire `json:"tasks"`
}

func taskFromWire(w taskWire) sync.Task {
	return sync.Task{
		ID:         w.ID,
		CoupleID:   w.CoupleID,
		Title:      w.Title,
		Priority:   w.Priority,
		AssignedTo: w.AssignedTo,
		Completed:  w.Completed,
		CreatedBy:  w.CreatedBy,
		CreatedAt:  w.CreatedAt,
		UpdatedAt:  w.UpdatedAt,
	}
}

// SelectByCouple - server จำกัด scope เป็น couple ของ token อยู่แล้ว
func (d *TaskDataClient) SelectByCouple(ctx context.Context, coupleID string) ([]sync.Task, error) {
	var wire taskListWire
	if err := d.client.get(ctx, "/api/v1/tasks", &wire); err != nil {
		return nil, err
	}

	tasks := make([]sync.Task, 0, len(wire.Tasks))
	for _, w := range wire.Tasks {
		tasks = append(tasks, taskFromWire(w))
	}
	return tasks, nil
}

func (d *TaskDataClient) Insert(ctx context.Context, task sync.NewTask) (*sync.Task, error) {
	var wire taskWire
	err := d.client.post(ctx, "/api/v1/tasks", map[string]string{
		"title":      task.Title,
		"priority":   task.Priority,
		"assignedTo": task.AssignedTo,
	}, &wire)
	if err != nil {
		return nil, err
	}

	created := taskFromWire(wire)
	return &created, nil
}

func (d *TaskDataClient) Update(ctx context.Context, taskID string, patch sync.TaskPatch) (*sync.Task, error) {
	var wire taskWire
	path := "/api/v1/tasks/" + url.PathEscape(taskID)

	// toggle-only patch ใช้ complete endpoint แยกต่างหาก
	if patch.Completed != nil && patch.Title == nil && patch.Priority == nil && patch.AssignedTo == nil {
		err := d.client.patch(ctx, path+"/complete", map[string]bool{
			"completed": *patch.Completed,
		}, &wire)
		if err != nil {
			return nil, err
		}
		updated := taskFromWire(wire)
		return &updated, nil
	}

	body := map[string]any{}
	if patch.Title != nil {
		body["title"] = *patch.Title
	}
	if patch.Priority != nil {
		body["priority"] = *patch.Priority
	}
	if patch.AssignedTo != nil {
		body["assignedTo"] = *patch.AssignedTo
	}

	if err := d.client.put(ctx, path, body, &wire); err != nil {
		return nil, err
	}
	updated := taskFromWire(wire)
	return &updated, nil
}

func (d *TaskDataClient) Delete(ctx context.Context, taskID string) error {
	return d.client.delete(ctx, "/api/v1/tasks/"+url.PathEscape(taskID))
}
