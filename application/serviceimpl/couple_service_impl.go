package serviceimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"couplesync/domain/apperrors"
	"couplesync/domain/models"
	"couplesync/domain/ports"
	"couplesync/domain/repositories"
	"couplesync/domain/services"
	redispkg "couplesync/infrastructure/redis"
	"couplesync/pkg/logger"
	"couplesync/pkg/utils"
)

const (
	coupleCacheTTL       = 5 * time.Minute
	inviteCodeMaxRetries = 5
)

type CoupleServiceImpl struct {
	coupleRepo repositories.CoupleRepository
	changePub  ports.ChangePublisherPort
	cache      *redispkg.Client // optional - nil ถ้าไม่มี Redis
}

func NewCoupleService(coupleRepo repositories.CoupleRepository, changePub ports.ChangePublisherPort) services.CoupleService {
	return &CoupleServiceImpl{
		coupleRepo: coupleRepo,
		changePub:  changePub,
	}
}

// NewCoupleServiceWithCache เหมือน NewCoupleService แต่ cache การ lookup
// couple-by-user ใน Redis
func NewCoupleServiceWithCache(coupleRepo repositories.CoupleRepository, changePub ports.ChangePublisherPort, cache *redispkg.Client) services.CoupleService {
	return &CoupleServiceImpl{
		coupleRepo: coupleRepo,
		changePub:  changePub,
		cache:      cache,
	}
}

func coupleCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("couple:user:%s", userID)
}

func (s *CoupleServiceImpl) GetMyCouple(ctx context.Context, userID uuid.UUID) (*models.Couple, error) {
	if cached := s.cacheGet(ctx, userID); cached != nil {
		return cached, nil
	}

	couple, err := s.coupleRepo.GetByUserID(ctx, userID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to look up couple", "user_id", userID, "error", err)
		return nil, apperrors.Wrap(apperrors.KindData, "Failed to load couple", err)
	}

	if couple != nil {
		s.cacheSet(ctx, userID, couple)
	}
	return couple, nil
}

// CreateCouple เป็น idempotent: ถ้า user มี couple อยู่แล้วคืนตัวเดิม
// ไม่สร้างซ้ำ
func (s *CoupleServiceImpl) CreateCouple(ctx context.Context, userID uuid.UUID) (*models.Couple, error) {
	existing, err := s.GetMyCouple(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		logger.InfoContext(ctx, "Create requested but couple already exists", "couple_id", existing.ID, "user_id", userID)
		return existing, nil
	}

	inviteCode, err := s.generateUniqueInviteCode(ctx)
	if err != nil {
		return nil, err
	}

	couple := &models.Couple{
		ID:         uuid.New(),
		InviteCode: inviteCode,
		Partner1ID: userID,
		CreatedAt:  time.Now(),
	}

	if err := s.coupleRepo.Create(ctx, couple); err != nil {
		logger.ErrorContext(ctx, "Failed to create couple", "user_id", userID, "error", err)
		return nil, apperrors.Wrap(apperrors.KindData, "Failed to create couple", err)
	}

	logger.InfoContext(ctx, "Couple created", "couple_id", couple.ID, "user_id", userID)

	s.cacheInvalidate(ctx, userID)
	s.publishCoupleChange(ctx, ports.ActionInsert, couple)

	return couple, nil
}

// JoinCouple ตรวจสอบตามลำดับ เจอ error ไหนก่อนหยุดที่ตัวนั้น:
// 1. code ไม่พบ  2. paired ครบแล้ว  3. พยายาม join couple ของตัวเอง
func (s *CoupleServiceImpl) JoinCouple(ctx context.Context, userID uuid.UUID, inviteCode string) (*models.Couple, error) {
	inviteCode = strings.TrimSpace(inviteCode)
	if inviteCode == "" {
		return nil, apperrors.New(apperrors.KindValidation, "Please enter an invite code")
	}

	existing, err := s.coupleRepo.GetByInviteCode(ctx, inviteCode)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to look up invite code", "error", err)
		return nil, apperrors.Wrap(apperrors.KindData, "Failed to look up invite code", err)
	}

	if existing == nil {
		return nil, apperrors.New(apperrors.KindLookup, "Invalid invite code")
	}
	if existing.Partner2ID != nil {
		return nil, apperrors.New(apperrors.KindConflict, "This couple is already paired")
	}
	if existing.Partner1ID == userID {
		return nil, apperrors.New(apperrors.KindConflict, "You can't join your own couple")
	}

	if err := s.coupleRepo.SetPartner2(ctx, existing.ID, userID); err != nil {
		// แพ้ race กับ joiner อีกคน - partner2 ถูกเซ็ตไปแล้ว
		logger.WarnContext(ctx, "Join lost to concurrent update", "couple_id", existing.ID, "error", err)
		return nil, apperrors.New(apperrors.KindConflict, "This couple is already paired")
	}

	couple, err := s.coupleRepo.GetByID(ctx, existing.ID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindData, "Failed to reload couple", err)
	}

	logger.InfoContext(ctx, "User joined couple", "couple_id", couple.ID, "user_id", userID)

	s.cacheInvalidate(ctx, couple.Partner1ID, userID)
	s.publishCoupleChange(ctx, ports.ActionUpdate, couple)

	return couple, nil
}

func (s *CoupleServiceImpl) GetCoupleByInviteCode(ctx context.Context, inviteCode string) (*models.Couple, error) {
	inviteCode = strings.TrimSpace(inviteCode)
	if inviteCode == "" {
		return nil, apperrors.New(apperrors.KindValidation, "Please enter an invite code")
	}

	couple, err := s.coupleRepo.GetByInviteCode(ctx, inviteCode)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to look up invite code", "error", err)
		return nil, apperrors.Wrap(apperrors.KindData, "Failed to look up invite code", err)
	}
	return couple, nil
}

// generateUniqueInviteCode สุ่ม code แล้วตรวจชนกับที่มีอยู่
// unique index เป็นด่านสุดท้ายถ้า race หลุดมา
func (s *CoupleServiceImpl) generateUniqueInviteCode(ctx context.Context) (string, error) {
	for i := 0; i < inviteCodeMaxRetries; i++ {
		code := utils.GenerateInviteCode()
		existing, err := s.coupleRepo.GetByInviteCode(ctx, code)
		if err != nil {
			return "", apperrors.Wrap(apperrors.KindData, "Failed to generate invite code", err)
		}
		if existing == nil {
			return code, nil
		}
	}
	return "", apperrors.New(apperrors.KindData, "Failed to generate a unique invite code")
}

func (s *CoupleServiceImpl) publishCoupleChange(ctx context.Context, action string, couple *models.Couple) {
	if s.changePub == nil {
		return
	}

	userIDs := []string{couple.Partner1ID.String()}
	if couple.Partner2ID != nil {
		userIDs = append(userIDs, couple.Partner2ID.String())
	}

	event := &ports.ChangeEvent{
		Table:    ports.TableCouples,
		Action:   action,
		EntityID: couple.ID.String(),
		CoupleID: couple.ID.String(),
		UserIDs:  userIDs,
	}
	if err := s.changePub.PublishChange(ctx, event); err != nil {
		// event เป็นแค่ refetch hint - mutation สำเร็จไปแล้ว ไม่ถือว่า fail
		logger.WarnContext(ctx, "Failed to publish couple change", "couple_id", couple.ID, "error", err)
	}
}

// ========== Redis cache helpers ==========

func (s *CoupleServiceImpl) cacheGet(ctx context.Context, userID uuid.UUID) *models.Couple {
	if s.cache == nil {
		return nil
	}

	data, err := s.cache.Get(ctx, coupleCacheKey(userID))
	if err != nil {
		if !redispkg.IsNotFound(err) {
			logger.WarnContext(ctx, "Couple cache read failed", "error", err)
		}
		return nil
	}

	var couple models.Couple
	if err := json.Unmarshal([]byte(data), &couple); err != nil {
		return nil
	}
	return &couple
}

func (s *CoupleServiceImpl) cacheSet(ctx context.Context, userID uuid.UUID, couple *models.Couple) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(couple)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, coupleCacheKey(userID), data, coupleCacheTTL); err != nil {
		logger.WarnContext(ctx, "Couple cache write failed", "error", err)
	}
}

func (s *CoupleServiceImpl) cacheInvalidate(ctx context.Context, userIDs ...uuid.UUID) {
	if s.cache == nil {
		return
	}

	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = coupleCacheKey(id)
	}
	if err := s.cache.Del(ctx, keys...); err != nil {
		logger.WarnContext(ctx, "Couple cache invalidation failed", "error", err)
	}
}
