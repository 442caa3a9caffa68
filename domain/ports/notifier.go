package ports

import "context"

// NotifierPort ส่ง notification ออกนอกระบบ (Telegram ฯลฯ)
type NotifierPort interface {
	SendTaskReminder(ctx context.Context, coupleLabel string, pendingCount int, highPriorityTitles []string) error
	IsEnabled() bool
}
