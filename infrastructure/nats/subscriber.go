package nats

import (
	"fmt"
	"sync"

	"github.com/nats-io/nats.go"

	"couplesync/pkg/logger"
)

// Subscriber รับ messages จาก NATS subject
type Subscriber struct {
	conn *nats.Conn

	mu   sync.Mutex
	subs []*nats.Subscription
}

func NewSubscriber(conn *nats.Conn) *Subscriber {
	return &Subscriber{conn: conn}
}

// Subscribe สมัครรับ subject - handler ถูกเรียกใน NATS callback goroutine
func (s *Subscriber) Subscribe(subject string, handler func(data []byte)) error {
	sub, err := s.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Data)
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", subject, err)
	}

	s.mu.Lock()
	s.subs = append(s.subs, sub)
	s.mu.Unlock()

	logger.Info("NATS subscription active", "subject", subject)
	return nil
}

// UnsubscribeAll ยกเลิกทุก subscription - ไม่มี callback หลังจาก return
func (s *Subscriber) UnsubscribeAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	for _, sub := range s.subs {
		if err := sub.Unsubscribe(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.subs = nil
	return firstErr
}
