package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"portfolio/internal/models"
	"portfolio/internal/utils"
)

type CredentialStore interface {
	FindByUsername(ctx context.Context, username string) (*models.AdminUser, error)
	CreateIfAbsent(ctx context.Context, user *models.AdminUser) (bool, error)
}

// AuthService is the credential layer. It owns password hashing; nothing
// outside it sees a hash or the hash function.
type AuthService struct {
	store  CredentialStore
	logger *zap.Logger
}

func NewAuthService(store CredentialStore, logger *zap.Logger) *AuthService {
	return &AuthService{store: store, logger: logger.Named("auth")}
}

// Verify reports whether plaintext is the password stored for username. A
// missing user is a plain false, never an error.
func (s *AuthService) Verify(ctx context.Context, username, plaintext string) (bool, error) {
	user, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		return false, persistence("find admin user", err)
	}
	if user == nil {
		return false, nil
	}

	ok, err := utils.CheckPassword(user.PasswordHash, plaintext)
	if err != nil {
		s.logger.Warn("stored password hash is unreadable", zap.String("username", username), zap.Error(err))
		return false, nil
	}
	return ok, nil
}

// Bootstrap makes sure an admin named username exists. It is safe to call on
// every start.
func (s *AuthService) Bootstrap(ctx context.Context, username, plaintext string) error {
	existing, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		return persistence("find admin user", err)
	}
	if existing != nil {
		s.logger.Debug("admin user already present", zap.String("username", username))
		return nil
	}

	hash, err := utils.HashPassword(plaintext)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	created, err := s.store.CreateIfAbsent(ctx, &models.AdminUser{
		Username:     username,
		PasswordHash: hash,
	})
	if err != nil {
		return persistence("create admin user", err)
	}
	if created {
		s.logger.Info("seeded admin user", zap.String("username", username))
	}
	return nil
}
