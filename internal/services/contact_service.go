package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"portfolio/internal/mailer"
	"portfolio/internal/metrics"
	"portfolio/internal/models"
)

type ContactStore interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	ListRecent(ctx context.Context, n int) ([]models.ContactMessage, error)
}

type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// ContactService persists every submission first and then tries to forward
// it by mail. A mail failure never undoes the saved message.
type ContactService struct {
	store   ContactStore
	mailer  Mailer
	mailbox string
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

func NewContactService(store ContactStore, m Mailer, mailbox string, mt *metrics.Metrics, logger *zap.Logger) *ContactService {
	return &ContactService{
		store:   store,
		mailer:  m,
		mailbox: mailbox,
		metrics: mt,
		logger:  logger.Named("contact"),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *ContactService) Save(ctx context.Context, in models.ContactInput) (*models.ContactMessage, error) {
	msg := in.ToMessage(s.now())
	if err := s.store.Create(ctx, msg); err != nil {
		s.logger.Error("failed to save contact message", zap.Error(err))
		return nil, persistence("save contact message", err)
	}
	return msg, nil
}

func (s *ContactService) Notify(ctx context.Context, msg *models.ContactMessage) error {
	err := s.mailer.Send(ctx, mailer.Message{
		From:    s.mailbox,
		To:      []string{s.mailbox},
		Subject: fmt.Sprintf("New Contact: %s", msg.Subject),
		Body:    fmt.Sprintf("From: %s <%s>\n\n%s", msg.Name, msg.Email, msg.Message),
	})
	if err != nil {
		s.logger.Warn("contact notification failed", zap.String("id", msg.ID.String()), zap.Error(err))
		return &MailDeliveryError{Err: err}
	}
	return nil
}

// Submit saves then notifies. On a mail failure the saved message is still
// returned with a *MailDeliveryError.
func (s *ContactService) Submit(ctx context.Context, in models.ContactInput) (*models.ContactMessage, error) {
	msg, err := s.Save(ctx, in)
	if err != nil {
		s.metrics.Contact("failed")
		return nil, err
	}

	if err := s.Notify(ctx, msg); err != nil {
		s.metrics.Contact("mail_failed")
		return msg, err
	}

	s.metrics.Contact("delivered")
	return msg, nil
}

func (s *ContactService) ListRecent(ctx context.Context, n int) ([]models.ContactMessage, error) {
	messages, err := s.store.ListRecent(ctx, n)
	if err != nil {
		return nil, persistence("list contact messages", err)
	}
	return messages, nil
}
