package sync

import (
	"context"
	"sort"
	"strings"
	stdsync "sync"
)

// CoupleStore ดูแล lifecycle ของ pairing ฝั่ง client:
// resolve couple ปัจจุบัน, สร้างใหม่, join ด้วย invite code
// และ refresh เมื่อได้รับ change notification
type CoupleStore struct {
	auth     AuthProvider
	data     CoupleData
	realtime Realtime

	mu      stdsync.Mutex
	couple  *Couple
	loading bool
	lastErr error
	closed  bool
	sub     Subscription

	// deliverMu ถูกถือตลอดการส่ง onChange - Close ต้องรอ delivery ที่ค้างอยู่ให้จบ
	deliverMu stdsync.Mutex
}

func NewCoupleStore(auth AuthProvider, data CoupleData, realtime Realtime) *CoupleStore {
	return &CoupleStore{
		auth:     auth,
		data:     data,
		realtime: realtime,
		loading:  true,
	}
}

// Couple คืน snapshot ล่าสุด - nil ถ้ายังไม่มี pairing
func (s *CoupleStore) Couple() *Couple {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.couple
}

// Loading เป็น true จนกว่า resolve แรกจะจบ (สำเร็จหรือไม่ก็ตาม)
func (s *CoupleStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err คืน error ล่าสุด - ถูกล้างเมื่อ operation ถัดไปสำเร็จ
func (s *CoupleStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Resolve หา couple ที่ identity ปัจจุบันเป็นสมาชิก
// ถ้า data layer คืนหลายตัว (ผิด invariant) เลือกตัวที่สร้างก่อนสุด
// ล้มเหลว → snapshot เดิมคงอยู่ error ถูกเก็บไว้ให้อ่าน
func (s *CoupleStore) Resolve(ctx context.Context) (*Couple, error) {
	identity, err := s.auth.CurrentIdentity(ctx)
	if err != nil || identity == nil {
		return nil, s.fail(WrapError(KindAuth, "You need to sign in first", err))
	}

	couples, err := s.data.SelectByMember(ctx, identity.ID)
	if err != nil {
		return nil, s.fail(WrapError(KindData, "Failed to load couple", err))
	}

	couple := pickEarliest(couples)
	s.commit(func() {
		s.couple = couple
		s.lastErr = nil
	})
	return couple, nil
}

// Create สร้าง pairing ใหม่ - idempotent: ถ้ามีอยู่แล้วคืนตัวเดิม
func (s *CoupleStore) Create(ctx context.Context) (*Couple, error) {
	existing, err := s.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	identity, err := s.auth.CurrentIdentity(ctx)
	if err != nil || identity == nil {
		return nil, s.fail(WrapError(KindAuth, "You need to sign in first", err))
	}

	couple, err := s.data.Insert(ctx, identity.ID)
	if err != nil {
		return nil, s.fail(WrapError(KindData, "Failed to create couple", err))
	}

	s.commit(func() {
		s.couple = couple
		s.lastErr = nil
	})
	return couple, nil
}

// Join ตรวจสอบตามลำดับ หยุดที่ error แรกที่เจอ:
// 1. code ไม่พบ  2. paired ครบแล้ว  3. พยายาม join couple ของตัวเอง
func (s *CoupleStore) Join(ctx context.Context, inviteCode string) (*Couple, error) {
	inviteCode = strings.TrimSpace(inviteCode)
	if inviteCode == "" {
		return nil, s.fail(NewError(KindValidation, "Please enter an invite code"))
	}

	identity, err := s.auth.CurrentIdentity(ctx)
	if err != nil || identity == nil {
		return nil, s.fail(WrapError(KindAuth, "You need to sign in first", err))
	}

	target, err := s.data.SelectByInviteCode(ctx, inviteCode)
	if err != nil {
		return nil, s.fail(WrapError(KindData, "Failed to look up invite code", err))
	}

	if target == nil {
		return nil, s.fail(NewError(KindLookup, "Invalid invite code"))
	}
	if target.Paired() {
		return nil, s.fail(NewError(KindConflict, "This couple is already paired"))
	}
	if target.Partner1ID == identity.ID {
		return nil, s.fail(NewError(KindConflict, "You can't join your own couple"))
	}

	couple, err := s.data.SetSecondMember(ctx, target, identity.ID)
	if err != nil {
		return nil, s.fail(WrapError(KindData, "Failed to join couple", err))
	}

	s.commit(func() {
		s.couple = couple
		s.lastErr = nil
	})
	return couple, nil
}

// Subscribe ลงทะเบียนรับ change notifications - ทุก event จะ re-resolve
// แล้วเรียก onChange ด้วยค่าล่าสุด (nil ได้ถ้า couple หายไป)
func (s *CoupleStore) Subscribe(onChange func(*Couple)) error {
	identity, err := s.auth.CurrentIdentity(context.Background())
	if err != nil || identity == nil {
		return s.fail(WrapError(KindAuth, "You need to sign in first", err))
	}

	scope := Scope{Table: TableCouples, IdentityID: identity.ID}
	sub, err := s.realtime.Subscribe(scope, func() {
		couple, err := s.Resolve(context.Background())
		if err != nil {
			return
		}
		s.deliverMu.Lock()
		defer s.deliverMu.Unlock()
		s.mu.Lock()
		closed := s.closed
		s.mu.Unlock()
		if !closed && onChange != nil {
			onChange(couple)
		}
	})
	if err != nil {
		return s.fail(WrapError(KindTransport, "Failed to subscribe to changes", err))
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		sub.Unsubscribe()
		return NewError(KindTransport, "Store is closed")
	}
	s.sub = sub
	s.mu.Unlock()
	return nil
}

// Close ยกเลิก subscription และ freeze state - ไม่มี mutation หลังจากนี้
// และหลัง return ต้องไม่มี callback อีก
func (s *CoupleStore) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	sub := s.sub
	s.sub = nil
	s.mu.Unlock()

	// รอ onChange ที่กำลังส่งอยู่ให้จบก่อน - delivery ใหม่จะเห็น closed แล้วไม่ยิง
	s.deliverMu.Lock()
	s.deliverMu.Unlock()

	if sub != nil {
		return sub.Unsubscribe()
	}
	return nil
}

// commit ใช้กับทุก state mutation - no-op ถ้า store ถูก Close ไปแล้ว
// (ผลของ request ที่ค้างอยู่ตอน dispose จะถูกทิ้ง)
func (s *CoupleStore) commit(apply func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	apply()
	s.loading = false
}

func (s *CoupleStore) fail(err *Error) error {
	s.commit(func() {
		s.lastErr = err
	})
	return err
}

// pickEarliest เลือก couple ที่สร้างก่อนสุด (tie-break ด้วย id)
func pickEarliest(couples []Couple) *Couple {
	if len(couples) == 0 {
		return nil
	}
	sorted := make([]Couple, len(couples))
	copy(sorted, couples)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})
	return &sorted[0]
}
