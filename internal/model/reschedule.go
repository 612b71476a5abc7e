package model

import "time"

// TemporaryReschedule moves one skipped scheduled workout to a rest day
// within the same week. At most one row exists per (user, plan, original
// day, week); the allocator enforces this with an existence check before
// inserting. Rows older than the previous week are purged by the weekly
// cleanup job.
type TemporaryReschedule struct {
	ID                uint64    `json:"id"`
	UserID            uint64    `json:"user_id"`
	WorkoutPlanID     uint64    `json:"workout_plan_id"`
	OriginalDayOfWeek WeekDay   `json:"original_day_of_week"`
	RescheduledToDay  WeekDay   `json:"rescheduled_to_day_of_week"`
	WeekStartDate     time.Time `json:"week_start_date"` // Sunday midnight of the applicable week
	CreatedAt         time.Time `json:"created_at"`
}
