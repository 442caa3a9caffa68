package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"couplesync/client/sync"
)

// wsServer เปิด httptest server ที่ upgrade เป็น websocket
// แล้วส่งทุก message จาก channel ให้ client ที่ต่อเข้ามา
func wsServer(t *testing.T, send chan string) string {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for msg := range send {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(send) })

	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestWebSocketRealtimeDeliversMatchingEvents(t *testing.T) {
	send := make(chan string, 4)
	rt := NewWebSocketRealtime(wsServer(t, send), nil)

	events := make(chan struct{}, 4)
	sub, err := rt.Subscribe(sync.Scope{Table: sync.TableTasks, CoupleID: "c1"}, func() {
		events <- struct{}{}
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer sub.Unsubscribe()

	send <- `{"type":"couple_changed","data":{}}`
	send <- `{"type":"task_changed","data":{"table":"tasks","action":"insert","entityId":"t1"}}`

	select {
	case <-events:
	case <-time.After(2 * time.Second):
		t.Fatal("task_changed not delivered")
	}

	// couple_changed ต้องถูกกรองทิ้ง - ห้ามมี event ที่สอง
	select {
	case <-events:
		t.Fatal("non-matching event delivered")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWebSocketRealtimeUnsubscribeWaitsForDelivery(t *testing.T) {
	send := make(chan string, 1)
	rt := NewWebSocketRealtime(wsServer(t, send), nil)

	entered := make(chan struct{})
	release := make(chan struct{})
	sub, err := rt.Subscribe(sync.Scope{Table: sync.TableTasks, CoupleID: "c1"}, func() {
		close(entered)
		<-release
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	send <- `{"type":"task_changed","data":{}}`
	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}

	done := make(chan struct{})
	go func() {
		sub.Unsubscribe()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Unsubscribe returned while a callback was still running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Unsubscribe did not return after the callback finished")
	}
}
