package models

import "time"

// Session is the request-scoped view of a server-side session. The browser
// only ever holds a signed token naming ID.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}
