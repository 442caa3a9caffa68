package nats

// Subjects สำหรับ change events
// Pattern: changes.<table> - fire-and-forget core pub/sub
// ไม่ใช้ JetStream เพราะ event เป็นแค่ "refetch hint" ไม่ต้อง durable
const (
	SubjectCoupleChanges = "changes.couples"
	SubjectTaskChanges   = "changes.tasks"
	SubjectAllChanges    = "changes.>"
)
