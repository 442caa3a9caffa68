package models

import (
	"time"

	"github.com/google/uuid"
)

// Couple คือการจับคู่ 2 users ที่แชร์ task list เดียวกัน
// Partner2ID เป็น nil จนกว่าจะมีคน join ด้วย invite code
type Couple struct {
	ID         uuid.UUID  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	InviteCode string     `gorm:"uniqueIndex;size:12;not null"`
	Partner1ID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Partner2ID *uuid.UUID `gorm:"type:uuid;index"`
	Partner1   User       `gorm:"foreignKey:Partner1ID"`
	Partner2   *User      `gorm:"foreignKey:Partner2ID"`
	CreatedAt  time.Time
}

func (Couple) TableName() string {
	return "couples"
}

// IsComplete ตรวจสอบว่าจับคู่ครบสองคนแล้ว
func (c *Couple) IsComplete() bool {
	return c.Partner2ID != nil
}

// HasMember ตรวจสอบว่า user อยู่ใน couple นี้หรือไม่
func (c *Couple) HasMember(userID uuid.UUID) bool {
	if c.Partner1ID == userID {
		return true
	}
	return c.Partner2ID != nil && *c.Partner2ID == userID
}
