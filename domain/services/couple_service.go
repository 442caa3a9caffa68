package services

import (
	"context"

	"github.com/google/uuid"

	"couplesync/domain/models"
)

type CoupleService interface {
	// GetMyCouple คืน couple ของ user หรือ nil ถ้ายังไม่มี
	GetMyCouple(ctx context.Context, userID uuid.UUID) (*models.Couple, error)
	// CreateCouple เป็น idempotent - ถ้า user มี couple อยู่แล้วจะคืนตัวเดิม
	CreateCouple(ctx context.Context, userID uuid.UUID) (*models.Couple, error)
	// JoinCouple ตรวจสอบตามลำดับ: code ไม่พบ → paired แล้ว → join ตัวเอง
	JoinCouple(ctx context.Context, userID uuid.UUID, inviteCode string) (*models.Couple, error)
	// GetCoupleByInviteCode ใช้โดย client ก่อน join - คืน nil ถ้าไม่พบ
	GetCoupleByInviteCode(ctx context.Context, inviteCode string) (*models.Couple, error)
}
