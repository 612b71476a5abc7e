// Package queue defines the message payloads exchanged over the broker
// and the background consumer that turns signup events into pets.
package queue

// UserCreatedQueue is the durable queue carrying signup events. The
// name doubles as the outbox event_type.
const UserCreatedQueue = "user.created"

// UserCreatedEvent is published after a user row is committed. The pet
// consumer needs only the user's identity and a display name to derive
// the default pet from.
type UserCreatedEvent struct {
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
