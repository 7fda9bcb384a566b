package mailer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"portfolio/internal/config"
)

func TestLogMailer_Send(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	m := NewLogMailer(zap.New(core))

	err := m.Send(context.Background(), Message{
		From:    "me@example.com",
		To:      []string{"me@example.com"},
		Subject: "New Contact: Hi",
		Body:    "From: Alice <a@x.com>\n\nTest",
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("mail transport disabled, message not sent").Len())
}

func TestSMTPMailer_RejectsBadAddresses(t *testing.T) {
	m := NewSMTPMailer(config.MailConfig{Server: "localhost", Port: 2525})

	err := m.Send(context.Background(), Message{From: "not an address", To: []string{"a@x.com"}})
	assert.ErrorContains(t, err, "invalid sender")

	err = m.Send(context.Background(), Message{From: "a@x.com", To: []string{"nope"}})
	assert.ErrorContains(t, err, "invalid recipient")
}
