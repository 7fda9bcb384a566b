package models

import (
	"strings"

	"github.com/google/uuid"
)

// AdminUser matches the admin_user table. PasswordHash is an encoded Argon2id
// string and never leaves the credential layer.
type AdminUser struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
}

func (u *AdminUser) Prepare() {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.Username = strings.TrimSpace(u.Username)
}
