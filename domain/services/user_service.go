package services

import (
	"context"
	"io"

	"github.com/google/uuid"

	"couplesync/domain/dto"
	"couplesync/domain/models"
)

type UserService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (string, *models.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (string, *models.User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.User, error)
	UpdateAvatar(ctx context.Context, userID uuid.UUID, filename string, content io.Reader, size int64) (*models.User, error)
}
