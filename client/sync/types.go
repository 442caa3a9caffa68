package sync

import (
	"context"
	"time"
)

// Priority values ตรงกับฝั่ง server
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Assignee values
const (
	AssigneePartner1   = "partner1"
	AssigneePartner2   = "partner2"
	AssigneeUnassigned = "unassigned"
)

// ValidPriority ตรวจว่าค่าอยู่ในชุด priority ที่ server ยอมรับ
func ValidPriority(p string) bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// ValidAssignee ตรวจว่าค่าอยู่ในชุด assignee ที่ server ยอมรับ
func ValidAssignee(a string) bool {
	return a == AssigneePartner1 || a == AssigneePartner2 || a == AssigneeUnassigned
}

// Identity คือ user ที่ sign in อยู่ - อ่านอย่างเดียวจาก AuthProvider
type Identity struct {
	ID          string
	DisplayName string
	Email       string
}

// Couple คือ pairing record หนึ่งคู่
// Partner2ID ว่าง = ยังรอคู่ join
type Couple struct {
	ID         string
	InviteCode string
	Partner1ID string
	Partner2ID string
	CreatedAt  time.Time
}

// Paired คืน true เมื่อมีสมาชิกครบสองคน
func (c *Couple) Paired() bool {
	return c.Partner2ID != ""
}

type Task struct {
	ID         string
	CoupleID   string
	Title      string
	Priority   string
	AssignedTo string
	Completed  bool
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewTask คือ payload สำหรับสร้าง task ใหม่
type NewTask struct {
	CoupleID   string
	Title      string
	Priority   string
	AssignedTo string
	CreatedBy  string
}

// TaskPatch เป็น partial update - nil field จะไม่ถูกแตะ
type TaskPatch struct {
	Title      *string
	Priority   *string
	AssignedTo *string
	Completed  *bool
}

// AuthProvider คืน identity ปัจจุบัน - nil ถ้ายังไม่ sign in
type AuthProvider interface {
	CurrentIdentity(ctx context.Context) (*Identity, error)
}

// CoupleData คือ record store ของ pairings
type CoupleData interface {
	// SelectByMember คืนทุก couple ที่ identity เป็นสมาชิก (ปกติ 0 หรือ 1)
	SelectByMember(ctx context.Context, identityID string) ([]Couple, error)
	// SelectByInviteCode คืน nil ถ้าไม่พบ
	SelectByInviteCode(ctx context.Context, inviteCode string) (*Couple, error)
	// Insert สร้าง couple ใหม่ให้ identity เป็น partner1 - invite code ถูก generate ฝั่ง store
	Insert(ctx context.Context, firstMemberID string) (*Couple, error)
	// SetSecondMember ผูก identity เป็น partner2 ของ couple
	SetSecondMember(ctx context.Context, couple *Couple, identityID string) (*Couple, error)
}

// TaskData คือ record store ของ tasks
type TaskData interface {
	// SelectByCouple เรียง created_at ใหม่สุดก่อน
	SelectByCouple(ctx context.Context, coupleID string) ([]Task, error)
	Insert(ctx context.Context, task NewTask) (*Task, error)
	Update(ctx context.Context, taskID string, patch TaskPatch) (*Task, error)
	Delete(ctx context.Context, taskID string) error
}

// Table names สำหรับ realtime scope
const (
	TableCouples = "couples"
	TableTasks   = "tasks"
)

// Scope จำกัดว่า subscription สนใจ event ไหน
type Scope struct {
	Table      string
	CoupleID   string // สำหรับ task events
	IdentityID string // สำหรับ couple events
}

// Realtime ส่งสัญญาณว่า "มีอะไรเปลี่ยน" - ไม่มี payload, subscriber ต้อง refetch
type Realtime interface {
	Subscribe(scope Scope, onEvent func()) (Subscription, error)
}

// Subscription handle - Unsubscribe แล้วต้องไม่มี callback อีก
type Subscription interface {
	Unsubscribe() error
}
