package websocket

import (
	"sync"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"couplesync/pkg/logger"
)

// WebSocketManager ดูแล client connections และ rooms
// room = couple id สำหรับ user ที่จับคู่แล้ว หรือ "user:<id>" ระหว่างรอจับคู่
type WebSocketManager struct {
	clients         map[*websocket.Conn]Client
	userConnections map[uuid.UUID]*websocket.Conn // 1 user = 1 connection (prevent duplicates)
	rooms           map[string]map[*websocket.Conn]bool
	register        chan Client
	unregister      chan *websocket.Conn
	broadcast       chan BroadcastMessage
	mutex           sync.RWMutex
}

type Client struct {
	Conn   *websocket.Conn
	UserID uuid.UUID
	RoomID string
}

type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

type BroadcastMessage struct {
	Message Message
	RoomID  string
	UserID  *uuid.UUID
}

var Manager *WebSocketManager

func init() {
	Manager = &WebSocketManager{
		clients:         make(map[*websocket.Conn]Client),
		userConnections: make(map[uuid.UUID]*websocket.Conn),
		rooms:           make(map[string]map[*websocket.Conn]bool),
		register:        make(chan Client),
		unregister:      make(chan *websocket.Conn),
		broadcast:       make(chan BroadcastMessage),
	}
	go Manager.run()
}

func (m *WebSocketManager) run() {
	for {
		select {
		case client := <-m.register:
			m.mutex.Lock()

			// ปิด connection เก่าถ้า user มีอยู่แล้ว (กัน duplicate จาก reconnect)
			if oldConn, exists := m.userConnections[client.UserID]; exists {
				if oldClient, ok := m.clients[oldConn]; ok {
					m.leaveRoomLocked(oldConn, oldClient.RoomID)
					delete(m.clients, oldConn)
				}
				oldConn.Close()
			}

			m.clients[client.Conn] = client
			m.userConnections[client.UserID] = client.Conn

			if client.RoomID != "" {
				if m.rooms[client.RoomID] == nil {
					m.rooms[client.RoomID] = make(map[*websocket.Conn]bool)
				}
				m.rooms[client.RoomID][client.Conn] = true
			}
			m.mutex.Unlock()

			logger.Debug("WebSocket client connected", "user_id", client.UserID, "room_id", client.RoomID)

		case conn := <-m.unregister:
			m.mutex.Lock()
			if client, ok := m.clients[conn]; ok {
				delete(m.clients, conn)

				// ลบจาก userConnections เฉพาะถ้ายังเป็น connection ปัจจุบัน
				if currentConn, exists := m.userConnections[client.UserID]; exists && currentConn == conn {
					delete(m.userConnections, client.UserID)
				}

				m.leaveRoomLocked(conn, client.RoomID)

				conn.Close()
				logger.Debug("WebSocket client disconnected", "user_id", client.UserID, "room_id", client.RoomID)
			}
			m.mutex.Unlock()

		case message := <-m.broadcast:
			m.mutex.RLock()
			if message.RoomID != "" {
				if clients, ok := m.rooms[message.RoomID]; ok {
					for conn := range clients {
						m.sendMessage(conn, message.Message)
					}
				}
			} else if message.UserID != nil {
				if conn, exists := m.userConnections[*message.UserID]; exists {
					m.sendMessage(conn, message.Message)
				}
			} else {
				for conn := range m.clients {
					m.sendMessage(conn, message.Message)
				}
			}
			m.mutex.RUnlock()
		}
	}
}

// leaveRoomLocked ต้องถือ mutex ก่อนเรียก
func (m *WebSocketManager) leaveRoomLocked(conn *websocket.Conn, roomID string) {
	if roomID == "" || m.rooms[roomID] == nil {
		return
	}
	delete(m.rooms[roomID], conn)
	if len(m.rooms[roomID]) == 0 {
		delete(m.rooms, roomID)
	}
}

func (m *WebSocketManager) sendMessage(conn *websocket.Conn, message Message) {
	if err := conn.WriteJSON(message); err != nil {
		logger.Warn("WebSocket send failed", "error", err)
		go func() { m.unregister <- conn }()
	}
}

func (m *WebSocketManager) RegisterClient(conn *websocket.Conn, userID uuid.UUID, roomID string) {
	m.register <- Client{
		Conn:   conn,
		UserID: userID,
		RoomID: roomID,
	}
}

func (m *WebSocketManager) UnregisterClient(conn *websocket.Conn) {
	m.unregister <- conn
}

// BroadcastToRoom ส่ง message ไปทุก client ใน room
func (m *WebSocketManager) BroadcastToRoom(roomID, messageType string, data interface{}) {
	m.broadcast <- BroadcastMessage{
		Message: Message{Type: messageType, Data: data},
		RoomID:  roomID,
	}
}

// BroadcastToUser ส่ง message ไปยัง user เดียว
func (m *WebSocketManager) BroadcastToUser(userID uuid.UUID, messageType string, data interface{}) {
	m.broadcast <- BroadcastMessage{
		Message: Message{Type: messageType, Data: data},
		UserID:  &userID,
	}
}

func (m *WebSocketManager) GetTotalClients() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients)
}
