package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"couplesync/domain/ports"
	"couplesync/pkg/config"
	"couplesync/pkg/logger"
)

// TelegramNotifier - Telegram implementation of NotifierPort
// ใช้ส่ง daily reminder digest
type TelegramNotifier struct {
	cfg        config.TelegramConfig
	httpClient *http.Client
}

// NewTelegramNotifier สร้าง TelegramNotifier
func NewTelegramNotifier(cfg config.TelegramConfig) ports.NotifierPort {
	return &TelegramNotifier{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// IsEnabled ตรวจสอบว่า configure ครบหรือไม่
func (n *TelegramNotifier) IsEnabled() bool {
	return n.cfg.BotToken != "" && n.cfg.ChatID != ""
}

func (n *TelegramNotifier) SendTaskReminder(ctx context.Context, coupleLabel string, pendingCount int, highPriorityTitles []string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 <b>%s</b>: %d task(s) pending", coupleLabel, pendingCount)
	if len(highPriorityTitles) > 0 {
		b.WriteString("\n🔥 High priority:")
		for _, title := range highPriorityTitles {
			fmt.Fprintf(&b, "\n• %s", title)
		}
	}
	return n.sendMessage(ctx, b.String())
}

// sendMessage ส่งข้อความไปยัง Telegram
func (n *TelegramNotifier) sendMessage(ctx context.Context, message string) error {
	if !n.IsEnabled() {
		logger.InfoContext(ctx, "Telegram notification disabled, skipping")
		return nil
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", n.cfg.BotToken)

	payload := map[string]interface{}{
		"chat_id":    n.cfg.ChatID,
		"text":       message,
		"parse_mode": "HTML",
	}

	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API returned status %d", resp.StatusCode)
	}

	return nil
}
