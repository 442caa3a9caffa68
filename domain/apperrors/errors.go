package apperrors

import "errors"

// Kind จำแนกประเภท error เพื่อให้ handler เลือก HTTP status ได้ถูก
type Kind int

const (
	KindUnknown Kind = iota
	KindAuth         // ไม่มี identity
	KindValidation   // input ไม่ผ่านการตรวจสอบ (ก่อนแตะ database)
	KindLookup       // หา record ไม่เจอ
	KindConflict     // ขัดกับ state ปัจจุบัน (paired แล้ว, join ตัวเอง)
	KindData         // database ปฏิเสธ read/write
)

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

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf คืน Kind ของ error หรือ KindUnknown
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}
