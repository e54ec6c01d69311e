package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"fleettrack-backend/internal/domain"
	"fleettrack-backend/internal/logger"
	"fleettrack-backend/internal/repository"
	"fleettrack-backend/internal/security"
)

type authService struct {
	users  repository.UserRepository
	tokens security.TokenManager
}

func NewAuthService(users repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{users: users, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, code, password string) (string, *domain.User, error) {
	if code == "" || password == "" {
		return "", nil, fmt.Errorf("%w: code and password are required", domain.ErrInvalidInput)
	}

	user, err := s.users.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Same failure as a wrong password so login does not leak
			// which codes exist.
			return "", nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
		}
		return "", nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Warn("login rejected", "code", code)
		return "", nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}

	if !user.Active {
		return "", nil, fmt.Errorf("%w: account is deactivated", domain.ErrForbidden)
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Code, user.IsAdmin)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	logger.Info("user logged in", "user_id", user.ID, "code", user.Code)
	return token, user, nil
}
