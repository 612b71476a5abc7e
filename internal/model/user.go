package model

import "time"

// User mirrors the `users` table. Handlers expose separate response
// types; the password hash never leaves the repository layer.
type User struct {
	ID                       uint64
	Username                 string
	Email                    string
	PasswordHash             string
	Role                     string // USER or ADMIN
	IsEmailVerified          bool
	VerificationToken        *string
	VerificationTokenExpires *time.Time
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// UserEvent is an outbox row written in the same transaction as the
// user it describes. The relay publishes pending rows to the message
// broker and marks them published, giving at-least-once delivery for
// post-signup work such as pet creation.
type UserEvent struct {
	ID          uint64
	UserID      uint64
	EventType   string // e.g. "user.created"
	Payload     []byte // JSON body published to the broker
	PublishedAt *time.Time
	CreatedAt   time.Time
}
