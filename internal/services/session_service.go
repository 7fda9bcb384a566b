package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"portfolio/internal/metrics"
	"portfolio/internal/models"
	"portfolio/internal/utils"
)

// AdminFlag is the session field marking an authenticated administrator.
const AdminFlag = "admin_authenticated"

type SessionStore interface {
	Create(ctx context.Context, id string, ttl time.Duration) error
	Exists(ctx context.Context, id string) (bool, error)
	SetFlag(ctx context.Context, id, field string) error
	DeleteFlag(ctx context.Context, id, field string) error
	HasFlag(ctx context.Context, id, field string) (bool, error)
	PushFlash(ctx context.Context, id string, flash models.Flash, ttl time.Duration) error
	PopFlashes(ctx context.Context, id string) ([]models.Flash, error)
}

type Verifier interface {
	Verify(ctx context.Context, username, plaintext string) (bool, error)
}

// SessionService moves a session between Anonymous and AdminAuthenticated.
// Expiry is the store's TTL; an expired session reads as Anonymous.
type SessionService struct {
	store    SessionStore
	verifier Verifier
	secret   []byte
	ttl      time.Duration
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func NewSessionService(store SessionStore, verifier Verifier, secret []byte, ttl time.Duration, m *metrics.Metrics, logger *zap.Logger) *SessionService {
	return &SessionService{
		store:    store,
		verifier: verifier,
		secret:   secret,
		ttl:      ttl,
		metrics:  m,
		logger:   logger.Named("session"),
	}
}

func (s *SessionService) TTL() time.Duration { return s.ttl }

// Start creates an anonymous session and returns it with its signed token.
func (s *SessionService) Start(ctx context.Context) (*models.Session, string, error) {
	id, err := utils.GenerateSessionID()
	if err != nil {
		return nil, "", fmt.Errorf("generate session id: %w", err)
	}
	if err := s.store.Create(ctx, id, s.ttl); err != nil {
		return nil, "", persistence("create session", err)
	}

	token, err := utils.SignSessionToken(id, s.ttl, s.secret)
	if err != nil {
		return nil, "", fmt.Errorf("sign session token: %w", err)
	}

	now := time.Now().UTC()
	return &models.Session{ID: id, CreatedAt: now, ExpiresAt: now.Add(s.ttl)}, token, nil
}

// Resume returns the live session named by token, or nil when the token is
// missing, forged, expired or points at a session the store no longer has.
func (s *SessionService) Resume(ctx context.Context, token string) (*models.Session, error) {
	id, err := utils.SessionIDFromCookie(token, s.secret)
	if err != nil {
		return nil, nil
	}

	ok, err := s.store.Exists(ctx, id)
	if err != nil {
		return nil, persistence("load session", err)
	}
	if !ok {
		return nil, nil
	}
	return &models.Session{ID: id}, nil
}

// Login verifies the credentials and, only on success, marks sess as
// authenticated. ErrInvalidCredentials leaves the session untouched.
func (s *SessionService) Login(ctx context.Context, sess *models.Session, username, password string) error {
	ok, err := s.verifier.Verify(ctx, username, password)
	if err != nil {
		s.metrics.Login("error")
		return err
	}
	if !ok {
		s.metrics.Login("failure")
		s.logger.Info("rejected admin login", zap.String("username", username))
		return ErrInvalidCredentials
	}

	if err := s.store.SetFlag(ctx, sess.ID, AdminFlag); err != nil {
		s.metrics.Login("error")
		return persistence("mark session authenticated", err)
	}
	s.metrics.Login("success")
	s.logger.Info("admin logged in", zap.String("username", username))
	return nil
}

// Logout removes the flag from the session rather than storing false.
func (s *SessionService) Logout(ctx context.Context, sess *models.Session) error {
	if err := s.store.DeleteFlag(ctx, sess.ID, AdminFlag); err != nil {
		return persistence("clear session flag", err)
	}
	return nil
}

func (s *SessionService) IsAuthenticated(ctx context.Context, sess *models.Session) (bool, error) {
	if sess == nil {
		return false, nil
	}
	ok, err := s.store.HasFlag(ctx, sess.ID, AdminFlag)
	if err != nil {
		return false, persistence("read session flag", err)
	}
	return ok, nil
}

func (s *SessionService) AddFlash(ctx context.Context, sess *models.Session, category, message string) {
	if sess == nil {
		return
	}
	flash := models.Flash{Category: category, Message: message}
	if err := s.store.PushFlash(ctx, sess.ID, flash, s.ttl); err != nil {
		s.logger.Error("failed to queue flash message", zap.String("message", message), zap.Error(err))
	}
}

func (s *SessionService) PopFlashes(ctx context.Context, sess *models.Session) []models.Flash {
	if sess == nil {
		return nil
	}
	flashes, err := s.store.PopFlashes(ctx, sess.ID)
	if err != nil {
		s.logger.Error("failed to read flash messages", zap.Error(err))
		return nil
	}
	return flashes
}
