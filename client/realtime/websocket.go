package realtime

import (
	"encoding/json"
	"net/url"
	stdsync "sync"
	"time"

	"github.com/gorilla/websocket"

	"couplesync/client/sync"
)

// message types ที่ server ส่งมา
const (
	messageCoupleChanged = "couple_changed"
	messageTaskChanged   = "task_changed"
)

const (
	reconnectMinDelay = time.Second
	reconnectMaxDelay = 30 * time.Second
)

// WebSocketRealtime implement sync.Realtime ด้วย websocket connection
// ไปยัง /ws ของ server - ขาดแล้วต่อใหม่เองด้วย exponential backoff
type WebSocketRealtime struct {
	wsURL string
	token func() string
}

// NewWebSocketRealtime - wsURL เช่น "ws://localhost:8080/ws"
// token ถูกเรียกตอน dial เพื่อให้ใช้ token ล่าสุดเสมอหลัง re-login
func NewWebSocketRealtime(wsURL string, token func() string) *WebSocketRealtime {
	return &WebSocketRealtime{
		wsURL: wsURL,
		token: token,
	}
}

type serverMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type subscription struct {
	done     chan struct{}
	mu       stdsync.Mutex
	conn     *websocket.Conn
	closed   bool
	onEvent  func()
	wantType string

	// deliverMu ถูกถือตลอดการส่ง onEvent - Unsubscribe ต้องรอ delivery ที่ค้างอยู่ให้จบ
	deliverMu stdsync.Mutex
}

func (r *WebSocketRealtime) Subscribe(scope sync.Scope, onEvent func()) (sync.Subscription, error) {
	wantType := messageTaskChanged
	if scope.Table == sync.TableCouples {
		wantType = messageCoupleChanged
	}

	s := &subscription{
		done:     make(chan struct{}),
		onEvent:  onEvent,
		wantType: wantType,
	}

	go r.run(s)
	return s, nil
}

// run วน dial → read จนกว่า Unsubscribe
func (r *WebSocketRealtime) run(s *subscription) {
	delay := reconnectMinDelay

	for {
		select {
		case <-s.done:
			return
		default:
		}

		conn, err := r.dial()
		if err != nil {
			select {
			case <-s.done:
				return
			case <-time.After(delay):
			}
			delay *= 2
			if delay > reconnectMaxDelay {
				delay = reconnectMaxDelay
			}
			continue
		}

		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			conn.Close()
			return
		}
		s.conn = conn
		s.mu.Unlock()

		delay = reconnectMinDelay
		r.readLoop(s, conn)

		s.mu.Lock()
		s.conn = nil
		s.mu.Unlock()
	}
}

func (r *WebSocketRealtime) dial() (*websocket.Conn, error) {
	dialURL := r.wsURL
	if r.token != nil {
		if token := r.token(); token != "" {
			dialURL = r.wsURL + "?token=" + url.QueryEscape(token)
		}
	}

	conn, _, err := websocket.DefaultDialer.Dial(dialURL, nil)
	return conn, err
}

func (r *WebSocketRealtime) readLoop(s *subscription, conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			conn.Close()
			return
		}

		var msg serverMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg.Type != s.wantType {
			continue
		}

		s.deliverMu.Lock()
		s.mu.Lock()
		closed := s.closed
		s.mu.Unlock()
		if closed {
			s.deliverMu.Unlock()
			return
		}
		if s.onEvent != nil {
			s.onEvent()
		}
		s.deliverMu.Unlock()
	}
}

// Unsubscribe ปิด connection - ไม่มี callback หลังจาก return
func (s *subscription) Unsubscribe() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	conn := s.conn
	s.conn = nil
	s.mu.Unlock()

	close(s.done)

	var err error
	if conn != nil {
		err = conn.Close()
	}

	// รอ onEvent ที่กำลังส่งอยู่ให้จบก่อน - delivery ใหม่จะเห็น closed แล้วหยุดอ่าน
	s.deliverMu.Lock()
	s.deliverMu.Unlock()

	return err
}
