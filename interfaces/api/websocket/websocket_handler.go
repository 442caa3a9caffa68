package websocket

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"couplesync/domain/services"
	websocketManager "couplesync/infrastructure/websocket"
	"couplesync/pkg/logger"
	"couplesync/pkg/utils"
)

type WebSocketHandler struct {
	coupleService services.CoupleService
}

func NewWebSocketHandler(coupleService services.CoupleService) *WebSocketHandler {
	return &WebSocketHandler{
		coupleService: coupleService,
	}
}

// WebSocketUpgrade ตรวจ token ก่อน upgrade - รับจาก Authorization header
// (ผ่าน Optional middleware) หรือ query param "token" สำหรับ browser client
func (h *WebSocketHandler) WebSocketUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	userCtx, err := utils.GetUserFromContext(c)
	if err != nil {
		token := c.Query("token")
		if token == "" {
			return utils.UnauthorizedResponse(c, "Missing token")
		}
		userCtx, err = utils.ValidateTokenStringToUUID(token, os.Getenv("JWT_SECRET"))
		if err != nil {
			return utils.UnauthorizedResponse(c, "Invalid token")
		}
	}

	// Resolve room ฝั่ง server - client เลือก room เองไม่ได้
	roomID := fmt.Sprintf("user:%s", userCtx.ID)
	couple, err := h.coupleService.GetMyCouple(c.UserContext(), userCtx.ID)
	if err == nil && couple != nil {
		roomID = couple.ID.String()
	}

	c.Locals("ws_user_id", userCtx.ID)
	c.Locals("ws_room_id", roomID)

	return c.Next()
}

func (h *WebSocketHandler) HandleWebSocket(c *websocket.Conn) {
	userID, ok := c.Locals("ws_user_id").(uuid.UUID)
	if !ok {
		c.Close()
		return
	}
	roomID, _ := c.Locals("ws_room_id").(string)

	logger.Debug("WebSocket connected", "user_id", userID, "room_id", roomID)

	websocketManager.Manager.RegisterClient(c, userID, roomID)

	defer func() {
		websocketManager.Manager.UnregisterClient(c)
	}()

	// อ่านทิ้งจนกว่า connection ปิด - server เป็นฝ่ายส่งอย่างเดียว
	// client ที่อยากเปลี่ยน room (เพิ่งจับคู่เสร็จ) ต้อง reconnect
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}
