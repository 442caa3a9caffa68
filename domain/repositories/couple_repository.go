package repositories

import (
	"context"

	"github.com/google/uuid"

	"couplesync/domain/models"
)

type CoupleRepository interface {
	Create(ctx context.Context, couple *models.Couple) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Couple, error)
	// GetByUserID คืน couple ที่ user เป็น partner1 หรือ partner2
	// ถ้ามีมากกว่าหนึ่ง (ไม่ควรเกิด) เลือกตัวที่สร้างก่อน
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Couple, error)
	GetByInviteCode(ctx context.Context, inviteCode string) (*models.Couple, error)
	// SetPartner2 เป็น mutation path เดียวของ partner2_id
	SetPartner2(ctx context.Context, coupleID, userID uuid.UUID) error
	// ListAll ใช้โดย reminder job เท่านั้น
	ListAll(ctx context.Context) ([]*models.Couple, error)
}
