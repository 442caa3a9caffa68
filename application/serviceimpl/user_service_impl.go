package serviceimpl

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"couplesync/domain/apperrors"
	"couplesync/domain/dto"
	"couplesync/domain/models"
	"couplesync/domain/ports"
	"couplesync/domain/repositories"
	"couplesync/domain/services"
	"couplesync/pkg/logger"
	"couplesync/pkg/utils"
)

type UserServiceImpl struct {
	userRepo  repositories.UserRepository
	storage   ports.StoragePort
	jwtSecret string
}

func NewUserService(userRepo repositories.UserRepository, storage ports.StoragePort, jwtSecret string) services.UserService {
	return &UserServiceImpl{
		userRepo:  userRepo,
		storage:   storage,
		jwtSecret: jwtSecret,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (string, *models.User, error) {
	existingUser, _ := s.userRepo.GetByEmail(ctx, req.Email)
	if existingUser != nil {
		logger.WarnContext(ctx, "Email already exists", "email", req.Email)
		return "", nil, apperrors.New(apperrors.KindConflict, "Email already exists")
	}

	existingUser, _ = s.userRepo.GetByUsername(ctx, req.Username)
	if existingUser != nil {
		logger.WarnContext(ctx, "Username already exists", "username", req.Username)
		return "", nil, apperrors.New(apperrors.KindConflict, "Username already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to hash password", "error", err)
		return "", nil, apperrors.Wrap(apperrors.KindData, "Failed to create account", err)
	}

	user := &models.User{
		ID:          uuid.New(),
		Email:       req.Email,
		Username:    req.Username,
		Password:    string(hashedPassword),
		DisplayName: req.DisplayName,
		IsActive:    true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.ErrorContext(ctx, "Failed to create user in database", "error", err)
		return "", nil, apperrors.Wrap(apperrors.KindData, "Failed to create account", err)
	}

	token, err := utils.GenerateToken(user.ID, user.Username, user.Email, s.jwtSecret)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to generate JWT", "user_id", user.ID, "error", err)
		return "", nil, apperrors.Wrap(apperrors.KindData, "Failed to create session", err)
	}

	logger.InfoContext(ctx, "User created", "user_id", user.ID, "email", user.Email)

	return token, user, nil
}

func (s *UserServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		logger.WarnContext(ctx, "Login failed - email not found", "email", req.Email)
		return "", nil, apperrors.New(apperrors.KindAuth, "Invalid email or password")
	}

	if !user.IsActive {
		logger.WarnContext(ctx, "Login failed - account disabled", "user_id", user.ID)
		return "", nil, apperrors.New(apperrors.KindAuth, "Account is disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		logger.WarnContext(ctx, "Login failed - invalid password", "user_id", user.ID)
		return "", nil, apperrors.New(apperrors.KindAuth, "Invalid email or password")
	}

	token, err := utils.GenerateToken(user.ID, user.Username, user.Email, s.jwtSecret)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to generate JWT", "user_id", user.ID, "error", err)
		return "", nil, apperrors.Wrap(apperrors.KindData, "Failed to create session", err)
	}

	logger.InfoContext(ctx, "User logged in", "user_id", user.ID)

	return token, user, nil
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.New(apperrors.KindLookup, "User not found")
	}
	return user, nil
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.New(apperrors.KindLookup, "User not found")
	}

	if req.DisplayName != "" {
		user.DisplayName = req.DisplayName
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		logger.ErrorContext(ctx, "Failed to update profile", "user_id", userID, "error", err)
		return nil, apperrors.Wrap(apperrors.KindData, "Failed to update profile", err)
	}

	return user, nil
}

func (s *UserServiceImpl) UpdateAvatar(ctx context.Context, userID uuid.UUID, filename string, content io.Reader, size int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.New(apperrors.KindLookup, "User not found")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".webp" {
		return nil, apperrors.New(apperrors.KindValidation, "Avatar must be a jpg, png or webp image")
	}

	contentType := mime.TypeByExtension(ext)
	key := fmt.Sprintf("avatars/%s%s", userID, ext)

	url, err := s.storage.Upload(ctx, key, content, size, contentType)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to upload avatar", "user_id", userID, "error", err)
		return nil, apperrors.Wrap(apperrors.KindData, "Failed to upload avatar", err)
	}

	user.Avatar = url
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		logger.ErrorContext(ctx, "Failed to save avatar URL", "user_id", userID, "error", err)
		return nil, apperrors.Wrap(apperrors.KindData, "Failed to update profile", err)
	}

	logger.InfoContext(ctx, "Avatar updated", "user_id", userID)

	return user, nil
}
