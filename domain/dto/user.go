package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	Avatar      string    `json:"avatar,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type UpdateProfileRequest struct {
	DisplayName string `json:"displayName" validate:"omitempty,min=1,max=50"`
}

type AvatarResponse struct {
	Avatar string `json:"avatar"`
}
