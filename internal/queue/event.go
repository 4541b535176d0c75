// Package queue defines message payloads exchanged over the message
// broker plus the publisher and background consumer for them.
package queue

// UserRegisteredEvent is published after an account is created. It
// carries enough for downstream consumers (welcome email, analytics)
// without querying the primary database. No credential material is
// ever included.
type UserRegisteredEvent struct {
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	FullName     string `json:"full_name"`
	RegisteredAt string `json:"registered_at"`
}
