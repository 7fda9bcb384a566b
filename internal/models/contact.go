package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactMessage is append-only; there is no update or delete path.
type ContactMessage struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Subject  string    `json:"subject"`
	Message  string    `json:"message"`
	DateSent time.Time `json:"date_sent"`
}

type ContactInput struct {
	Name    string `form:"name"`
	Email   string `form:"email"`
	Subject string `form:"subject"`
	Message string `form:"message"`
}

func (in ContactInput) ToMessage(now time.Time) *ContactMessage {
	return &ContactMessage{
		ID:       uuid.New(),
		Name:     in.Name,
		Email:    in.Email,
		Subject:  in.Subject,
		Message:  in.Message,
		DateSent: now,
	}
}
