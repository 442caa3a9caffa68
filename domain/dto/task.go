package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	Title      string `json:"title" validate:"required,min=1,max=200"`
	Priority   string `json:"priority" validate:"omitempty,oneof=high medium low"`
	AssignedTo string `json:"assignedTo" validate:"omitempty,oneof=partner1 partner2 unassigned"`
}

// UpdateTaskRequest เป็น partial update - field ที่เป็น nil จะไม่ถูกแตะ
type UpdateTaskRequest struct {
	Title      *string `json:"title" validate:"omitempty,min=1,max=200"`
	Priority   *string `json:"priority" validate:"omitempty,oneof=high medium low"`
	AssignedTo *string `json:"assignedTo" validate:"omitempty,oneof=partner1 partner2 unassigned"`
}

type ToggleTaskRequest struct {
	Completed bool `json:"completed"`
}

type TaskResponse struct {
	ID         uuid.UUID `json:"id"`
	CoupleID   uuid.UUID `json:"coupleId"`
	Title      string    `json:"title"`
	Priority   string    `json:"priority"`
	AssignedTo string    `json:"assignedTo"`
	Completed  bool      `json:"completed"`
	CreatedBy  uuid.UUID `json:"createdBy"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}
