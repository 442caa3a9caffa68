package sync

import "errors"

// Kind จำแนกประเภทความผิดพลาดฝั่ง client
type Kind int

const (
	KindUnknown    Kind = iota
	KindAuth            // ไม่มี identity ที่ sign in อยู่
	KindValidation      // input ไม่ผ่าน ยังไม่แตะ network
	KindLookup          // หา record ไม่เจอ (invite code ผิด)
	KindConflict        // ขัดกับ state ปัจจุบัน (paired แล้ว, join ตัวเอง)
	KindData            // backend ปฏิเสธ read/write
	KindTransport       // notification channel ล่ม
)

// Error เป็น error type เดียวที่หลุดออกจาก package นี้
// Message เป็นข้อความพร้อมแสดงให้ user เห็น
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func WrapError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf คืน Kind ของ error หรือ KindUnknown
func KindOf(err error) Kind {
	var syncErr *Error
	if errors.As(err, &syncErr) {
		return syncErr.Kind
	}
	return KindUnknown
}
