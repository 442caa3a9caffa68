package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"couplesync/domain/models"
	"couplesync/domain/repositories"
)

type CoupleRepositoryImpl struct {
	db *gorm.DB
}

func NewCoupleRepository(db *gorm.DB) repositories.CoupleRepository {
	return &CoupleRepositoryImpl{db: db}
}

func (r *CoupleRepositoryImpl) Create(ctx context.Context, couple *models.Couple) error {
	return r.db.WithContext(ctx).Create(couple).Error
}

func (r *CoupleRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Couple, error) {
	var couple models.Couple
	err := r.db.WithContext(ctx).
		Preload("Partner1").Preload("Partner2").
		Where("id = ?", id).First(&couple).Error
	if err != nil {
		return nil, err
	}
	return &couple, nil
}

// GetByUserID เรียง created_at ASC แล้วหยิบตัวแรก - ถ้า invariant
// "หนึ่ง user หนึ่ง couple" พังจาก race ตัวที่สร้างก่อนจะชนะเสมอ
func (r *CoupleRepositoryImpl) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Couple, error) {
	var couple models.Couple
	err := r.db.WithContext(ctx).
		Preload("Partner1").Preload("Partner2").
		Where("partner1_id = ? OR partner2_id = ?", userID, userID).
		Order("created_at ASC, id ASC").
		First(&couple).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &couple, nil
}

func (r *CoupleRepositoryImpl) GetByInviteCode(ctx context.Context, inviteCode string) (*models.Couple, error) {
	var couple models.Couple
	err := r.db.WithContext(ctx).
		Preload("Partner1").Preload("Partner2").
		Where("invite_code = ?", inviteCode).
		First(&couple).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &couple, nil
}

// SetPartner2 เซ็ตเฉพาะเมื่อ partner2_id ยังว่าง
func (r *CoupleRepositoryImpl) SetPartner2(ctx context.Context, coupleID, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.Couple{}).
		Where("id = ? AND partner2_id IS NULL", coupleID).
		Update("partner2_id", userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *CoupleRepositoryImpl) ListAll(ctx context.Context) ([]*models.Couple, error) {
	var couples []*models.Couple
	err := r.db.WithContext(ctx).
		Preload("Partner1").Preload("Partner2").
		Find(&couples).Error
	return couples, err
}
