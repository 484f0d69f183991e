package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	repository "github.com/restobook/restaurant-backend/internal/database/postgres"
	"github.com/restobook/restaurant-backend/internal/entity"
	"github.com/restobook/restaurant-backend/pkg/auth"

	"golang.org/x/crypto/bcrypt"
)

const defaultRole = "staff"

type authService struct {
	userRepo     repository.UserRepository
	tokenManager *auth.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokenManager *auth.TokenManager) AuthService {
	return &authService{
		userRepo:     userRepo,
		tokenManager: tokenManager,
	}
}

func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         defaultRole,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login проверяет пароль и выдает access-токен.
// Несуществующий email и неверный пароль неразличимы для вызывающего.
func (s *authService) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return "", nil, entity.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, entity.ErrInvalidCredentials
	}

	token, err := s.tokenManager.CreateAccessToken(strconv.FormatInt(user.ID, 10), user.Email, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create token: %w", err)
	}

	return token, user, nil
}
