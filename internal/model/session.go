package model

import "time"

// Session represents an authenticated browser or API session
type Session struct {
	Token     string    `json:"token"`
	AccountID AccountID `json:"account_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is no longer valid at the given time
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
