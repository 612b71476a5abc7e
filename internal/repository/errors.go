// Package repository implements data access over MySQL. This file
// defines sentinel errors shared across repositories so that handlers
// can map failure modes onto HTTP statuses with errors.Is: not-found
// errors become 404, conflicts become 409.
package repository

import "errors"

// ErrEmailExists is returned when registration hits the unique email
// constraint.
var ErrEmailExists = errors.New("email already exists")

// ErrUsernameExists is returned when registration hits the unique
// username constraint.
var ErrUsernameExists = errors.New("username already exists")

// ErrUserNotFound is returned when a user row is required but absent.
var ErrUserNotFound = errors.New("user not found")

// ErrPetNotFound is returned when a user has no pet row.
var ErrPetNotFound = errors.New("pet not found")

// ErrPetExists is returned when creating a pet for a user who already
// has one. Handlers translate this into HTTP 409.
var ErrPetExists = errors.New("user already has a pet")

// ErrPetNotDead is returned when resurrecting a pet that is alive.
var ErrPetNotDead = errors.New("pet is not dead")

// ErrPlanNotFound is returned when a workout plan is absent or owned by
// another user.
var ErrPlanNotFound = errors.New("workout plan not found")

// ErrLogNotFound is returned when a workout log is absent or owned by
// another user.
var ErrLogNotFound = errors.New("workout log not found")

// ErrLogConflict is returned when starting a session that the user
// already has open, or has already completed today, for the same plan.
var ErrLogConflict = errors.New("conflicting workout log")

// ErrEntryNotFound is returned when a schedule entry for a weekday is
// missing. getOrCreate keeps all seven present, so this signals data
// damage rather than normal flow.
var ErrEntryNotFound = errors.New("schedule entry not found")
