package rest

import (
	"context"
	"net/url"
	"time"

	"couplesync/client/sync"
)

// CoupleDataClient implement sync.CoupleData ผ่าน /couples endpoints
type CoupleDataClient struct {
	client *Client
}

func NewCoupleDataClient(client *Client) *CoupleDataClient {
	return &CoupleDataClient{client: client}
}

type coupleWire struct {
	ID         string    `json:"id"`
	InviteCode string    `json:"inviteCode"`
	Partner1ID string    `json:"partner1Id"`
	Partner2ID *string   `json:"partner2Id"`
	CreatedAt  time.Time `json:"createdAt"`
}

func coupleFromWire(w *coupleWire) *sync.Couple {
	if w == nil || w.ID == "" {
		return nil
	}
	couple := &sync.Couple{
		ID:         w.ID,
		InviteCode: w.InviteCode,
		Partner1ID: w.Partner1ID,
		CreatedAt:  w.CreatedAt,
	}
	if w.Partner2ID != nil {
		couple.Partner2ID = *w.Partner2ID
	}
	return couple
}

// SelectByMember - server scope ด้วย token อยู่แล้ว identityID ใช้แค่ฝั่ง fake
func (d *CoupleDataClient) SelectByMember(ctx context.Context, identityID string) ([]sync.Couple, error) {
	var wire coupleWire
	if err := d.client.get(ctx, "/api/v1/couples/my", &wire); err != nil {
		return nil, err
	}

	couple := coupleFromWire(&wire)
	if couple == nil {
		return nil, nil
	}
	return []sync.Couple{*couple}, nil
}

func (d *CoupleDataClient) SelectByInviteCode(ctx context.Context, inviteCode string) (*sync.Couple, error) {
	var wire coupleWire
	err := d.client.get(ctx, "/api/v1/couples/code/"+url.PathEscape(inviteCode), &wire)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return coupleFromWire(&wire), nil
}

func (d *CoupleDataClient) Insert(ctx context.Context, firstMemberID string) (*sync.Couple, error) {
	var wire coupleWire
	if err := d.client.post(ctx, "/api/v1/couples", nil, &wire); err != nil {
		return nil, err
	}
	return coupleFromWire(&wire), nil
}

// SetSecondMember ใช้ join endpoint - server ตรวจ validation chain ซ้ำอีกรอบ
func (d *CoupleDataClient) SetSecondMember(ctx context.Context, couple *sync.Couple, identityID string) (*sync.Couple, error) {
	var wire coupleWire
	err := d.client.post(ctx, "/api/v1/couples/join", map[string]string{
		"inviteCode": couple.InviteCode,
	}, &wire)
	if err != nil {
		return nil, err
	}
	return coupleFromWire(&wire), nil
}
