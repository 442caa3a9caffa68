package rest

import (
	"context"

	"couplesync/client/sync"
)

// AuthClient implement sync.AuthProvider ผ่าน /auth endpoints
type AuthClient struct {
	client *Client
}

func NewAuthClient(client *Client) *AuthClient {
	return &AuthClient{client: client}
}

type userWire struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar,omitempty"`
}

type sessionWire struct {
	Token string   `json:"token"`
	User  userWire `json:"user"`
}

// Login แลก credentials เป็น token แล้วเก็บใน client
func (a *AuthClient) Login(ctx context.Context, email, password string) (*sync.Identity, error) {
	var session sessionWire
	err := a.client.post(ctx, "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &session)
	if err != nil {
		return nil, err
	}

	a.client.SetToken(session.Token)
	return identityFromWire(session.User), nil
}

// Register สมัครสมาชิกใหม่และ sign in ทันที
func (a *AuthClient) Register(ctx context.Context, email, username, password, displayName string) (*sync.Identity, error) {
	var session sessionWire
	err := a.client.post(ctx, "/api/v1/auth/register", map[string]string{
		"email":       email,
		"username":    username,
		"password":    password,
		"displayName": displayName,
	}, &session)
	if err != nil {
		return nil, err
	}

	a.client.SetToken(session.Token)
	return identityFromWire(session.User), nil
}

// CurrentIdentity คืน nil ถ้าไม่มี token หรือ token หมดอายุ
func (a *AuthClient) CurrentIdentity(ctx context.Context) (*sync.Identity, error) {
	if a.client.Token() == "" {
		return nil, nil
	}

	var user userWire
	if err := a.client.get(ctx, "/api/v1/auth/me", &user); err != nil {
		if sync.KindOf(err) == sync.KindAuth {
			return nil, nil
		}
		return nil, err
	}
	return identityFromWire(user), nil
}

func identityFromWire(u userWire) *sync.Identity {
	return &sync.Identity{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
	}
}
