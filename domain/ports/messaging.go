package ports

import "context"

// Change-event tables
const (
	TableCouples = "couples"
	TableTasks   = "tasks"
)

// Change-event actions
const (
	ActionInsert = "insert"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// ChangeEvent บอกแค่ว่า "มีอะไรเปลี่ยน" - ไม่มี payload ของ record
// ผู้รับต้อง refetch เอง
type ChangeEvent struct {
	Table    string   `json:"table"`
	Action   string   `json:"action"`
	EntityID string   `json:"entity_id"`
	CoupleID string   `json:"couple_id,omitempty"`
	UserIDs  []string `json:"user_ids,omitempty"` // users ที่เกี่ยวข้อง (สำหรับ couple events)
}

// ChangePublisherPort ส่ง change events ออกไปยัง message bus
type ChangePublisherPort interface {
	PublishChange(ctx context.Context, event *ChangeEvent) error
}

// ChangeSubscriberPort รับ change events จาก message bus
// Subscribe ลงทะเบียน handler แล้ว return ทันที - handler ถูกเรียกใน callback goroutine
type ChangeSubscriberPort interface {
	Subscribe(ctx context.Context, handler func(*ChangeEvent)) error
	Unsubscribe() error
}
