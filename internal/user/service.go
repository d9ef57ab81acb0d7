package user

import (
	"context"
	"fmt"
	"strings"

	"bookmart-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, username, email, password string) (string, User, error)
	Login(username, password string) (string, User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, username, email, password string) (string, User, error) {
	log := logger.FromCtx(ctx)

	if len(password) < 6 {
		return "", User{}, ErrPasswordTooShort
	}

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", User{}, err
	}

	u, err := s.repo.Create(ctx, username, email, hashed)
	if err != nil {
		log.Error("failed to create user", zap.String("username", username), zap.Error(err))
		if strings.Contains(err.Error(), "users_username_key") {
			return "", User{}, ErrUsernameExists
		}
		return "", User{}, err
	}

	token, err := GenerateJWT(u.ID, u.Username)
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", fmt.Sprint(u.ID)), zap.Error(err))
		return "", User{}, err
	}

	log.Info("register service completed",
		zap.String("user_id", fmt.Sprint(u.ID)),
		zap.String("username", username),
	)

	return token, u, nil
}

func (s *service) Login(username, password string) (string, User, error) {
	u, err := s.repo.FindByUsername(username)
	if err != nil {
		return "", User{}, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, u.Password) {
		return "", User{}, ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, u.Username)
	return token, u, err
}
