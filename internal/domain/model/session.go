package model

import "time"

// Session binds an opaque bearer token to a user.
type Session struct {
	Token     string
	UserID    string
	CreatedAt time.Time
}

// Expired reports whether the session outlived ttl at the given moment.
func (s Session) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.CreatedAt) > ttl
}
