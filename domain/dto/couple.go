package dto

import (
	"time"

	"github.com/google/uuid"
)

type JoinCoupleRequest struct {
	InviteCode string `json:"inviteCode" validate:"required,min=1,max=12"`
}

type CoupleResponse struct {
	ID         uuid.UUID     `json:"id"`
	InviteCode string        `json:"inviteCode"`
	Partner1ID uuid.UUID     `json:"partner1Id"`
	Partner2ID *uuid.UUID    `json:"partner2Id"`
	Partner1   *UserResponse `json:"partner1,omitempty"`
	Partner2   *UserResponse `json:"partner2,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
}
