package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	stdsync "sync"
	"time"

	"couplesync/client/sync"
)

// Client คือ HTTP client พื้นฐานสำหรับ CoupleSync API
// ทุก adapter (auth, couples, tasks) ใช้ client เดียวกันแชร์ token
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    stdsync.RWMutex
	token string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// SetToken เก็บ JWT หลัง login - ใส่ใน Authorization header ทุก request
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// envelope ตรงกับ response format ของ server
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// do ยิง request แล้ว unmarshal data เข้า out (out เป็น nil ได้)
// error ถูกแปลงเป็น sync.Error ตาม HTTP status
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return sync.WrapError(sync.KindData, "Failed to encode request", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return sync.WrapError(sync.KindData, "Failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return sync.WrapError(sync.KindData, "Failed to reach server", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return sync.WrapError(sync.KindData, "Failed to decode response", err)
	}

	if !env.Success || resp.StatusCode >= 400 {
		message := "Request failed"
		if env.Error != nil && env.Error.Message != "" {
			message = env.Error.Message
		}
		return sync.NewError(kindForStatus(resp.StatusCode), message)
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return sync.WrapError(sync.KindData, "Failed to decode response", err)
		}
	}
	return nil
}

func kindForStatus(status int) sync.Kind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return sync.KindAuth
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return sync.KindValidation
	case http.StatusNotFound:
		return sync.KindLookup
	case http.StatusConflict:
		return sync.KindConflict
	default:
		return sync.KindData
	}
}

// IsNotFound ช่วย adapter แยก "ไม่พบ" ออกจาก error จริง
func IsNotFound(err error) bool {
	return sync.KindOf(err) == sync.KindLookup
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
