package websocket

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"couplesync/domain/ports"
	"couplesync/pkg/logger"
)

// WebSocket message types ที่ frontend รอฟัง
const (
	MessageCoupleChanged = "couple_changed"
	MessageTaskChanged   = "task_changed"
)

// ChangeBroadcaster รับ change events จาก messaging และ broadcast
// ไปยัง websocket room ของ couple ที่เกี่ยวข้อง
// Event ไม่มี payload ของ record - client ต้อง refetch เอง
type ChangeBroadcaster struct {
	changeSub ports.ChangeSubscriberPort
	manager   *WebSocketManager
	running   bool
	runningMu sync.Mutex
	cancelCtx context.CancelFunc
}

func NewChangeBroadcaster(changeSub ports.ChangeSubscriberPort) *ChangeBroadcaster {
	return &ChangeBroadcaster{
		changeSub: changeSub,
		manager:   Manager, // ใช้ global Manager
	}
}

// Start เริ่ม broadcaster
func (cb *ChangeBroadcaster) Start() error {
	cb.runningMu.Lock()
	if cb.running {
		cb.runningMu.Unlock()
		return nil
	}
	cb.running = true
	cb.runningMu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	cb.cancelCtx = cancel

	if err := cb.changeSub.Subscribe(ctx, cb.handleChangeEvent); err != nil {
		cb.runningMu.Lock()
		cb.running = false
		cb.runningMu.Unlock()
		return err
	}

	logger.Info("Change broadcaster started")
	return nil
}

// Stop หยุด broadcaster - ไม่มี broadcast หลังจาก return
func (cb *ChangeBroadcaster) Stop() {
	cb.runningMu.Lock()
	defer cb.runningMu.Unlock()

	if !cb.running {
		return
	}

	if cb.cancelCtx != nil {
		cb.cancelCtx()
	}
	if err := cb.changeSub.Unsubscribe(); err != nil {
		logger.Warn("Failed to unsubscribe change events", "error", err)
	}
	cb.running = false
	logger.Info("Change broadcaster stopped")
}

func (cb *ChangeBroadcaster) handleChangeEvent(event *ports.ChangeEvent) {
	if event == nil || event.Table == "" {
		logger.Warn("Invalid change event received")
		return
	}

	messageType := MessageTaskChanged
	if event.Table == ports.TableCouples {
		messageType = MessageCoupleChanged
	}

	payload := map[string]string{
		"table":    event.Table,
		"action":   event.Action,
		"entityId": event.EntityID,
	}

	// Task events ส่งเข้า room ของ couple
	if event.CoupleID != "" {
		cb.manager.BroadcastToRoom(event.CoupleID, messageType, payload)
	}

	// Couple events ส่งตรงถึง user ที่เกี่ยวข้องด้วย
	// (คนสร้าง couple ยังอยู่ใน room "user:<id>" จนกว่าจะ reconnect)
	for _, userIDStr := range event.UserIDs {
		if userID, err := uuid.Parse(userIDStr); err == nil {
			cb.manager.BroadcastToUser(userID, messageType, payload)
		}
	}

	logger.Debug("Change event broadcasted",
		"table", event.Table,
		"action", event.Action,
		"couple_id", event.CoupleID,
		"clients", cb.manager.GetTotalClients(),
	)
}
