// Package service implements the pet lifecycle engine: streak
// computation, healing and decay, XP and evolution, and the
// missed-workout reschedule allocator. Services depend on narrow store
// interfaces satisfied by the repository layer so the date-sensitive
// logic is testable against in-memory fakes and a fake clock.
package service

import (
	"context"
	"time"

	"github.com/kayan2004/dracofit-backend/internal/model"
)

// PetStore is the persistence surface for pets. Mutate must apply fn
// to the user's pet as one atomic read-modify-write (the SQL
// implementation holds a row lock for the duration).
type PetStore interface {
	GetByUser(ctx context.Context, userID uint64) (model.Pet, error)
	Create(ctx context.Context, p *model.Pet) error
	DeleteByUser(ctx context.Context, userID uint64) error
	Mutate(ctx context.Context, userID uint64, fn func(p *model.Pet) error) (model.Pet, error)
	ListActive(ctx context.Context) ([]model.Pet, error)
}

// ScheduleStore supplies base weekly schedules and their mutations.
type ScheduleStore interface {
	GetOrCreate(ctx context.Context, userID uint64) (*model.WeeklySchedule, error)
	UpdateEntry(ctx context.Context, scheduleID uint64, day model.WeekDay, planID *uint64, preferredTime, notes *string) error
	ResetEntries(ctx context.Context, scheduleID uint64) error
	UpdateName(ctx context.Context, scheduleID uint64, name string) error
}

// LogStore is the slice of the workout log repository the daily jobs
// need.
type LogStore interface {
	CompletedInRange(ctx context.Context, userID uint64, start, end time.Time, planID uint64) ([]model.WorkoutLog, error)
}

// RescheduleStore persists temporary reschedules.
type RescheduleStore interface {
	Exists(ctx context.Context, userID, planID uint64, originalDay model.WeekDay, weekStart time.Time) (bool, error)
	Create(ctx context.Context, t *model.TemporaryReschedule) error
	ListForWeek(ctx context.Context, userID uint64, weekStart time.Time) ([]model.TemporaryReschedule, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// UserDirectory lists the users the daily jobs iterate.
type UserDirectory interface {
	ListIDs(ctx context.Context) ([]uint64, error)
}
