package models

import (
	"time"

	"github.com/google/uuid"
)

// Task priority levels
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Task assignment values
const (
	AssigneePartner1   = "partner1"
	AssigneePartner2   = "partner2"
	AssigneeUnassigned = "unassigned"
)

type Task struct {
	ID         uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CoupleID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Couple     Couple    `gorm:"foreignKey:CoupleID"`
	Title      string    `gorm:"not null"`
	Priority   string    `gorm:"default:'medium'"`
	AssignedTo string    `gorm:"default:'unassigned'"`
	Completed  bool      `gorm:"default:false"`
	CreatedBy  uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Task) TableName() string {
	return "tasks"
}

// ValidPriority ตรวจสอบค่า priority
func ValidPriority(p string) bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// ValidAssignee ตรวจสอบค่า assigned_to
func ValidAssignee(a string) bool {
	return a == AssigneePartner1 || a == AssigneePartner2 || a == AssigneeUnassigned
}
