package model

import "time"

// Base XP for completing any workout, plus a bonus per exercise in the
// plan.
const (
	BaseWorkoutXP = 20
	XPPerExercise = 5
)

// WorkoutPlanType categorizes a plan.
type WorkoutPlanType string

const (
	PlanStrength    WorkoutPlanType = "strength"
	PlanCardio      WorkoutPlanType = "cardio"
	PlanHIIT        WorkoutPlanType = "hiit"
	PlanFlexibility WorkoutPlanType = "flexibility"
	PlanHybrid      WorkoutPlanType = "hybrid"
)

// ValidPlanType reports whether t is a known plan type.
func ValidPlanType(t WorkoutPlanType) bool {
	switch t {
	case PlanStrength, PlanCardio, PlanHIIT, PlanFlexibility, PlanHybrid:
		return true
	}
	return false
}

// WorkoutPlan is a user-owned workout template referenced by schedule
// entries and logs.
type WorkoutPlan struct {
	ID              uint64          `json:"id"`
	UserID          uint64          `json:"user_id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Type            WorkoutPlanType `json:"type"`
	DurationMinutes int             `json:"duration_minutes"`
	ExerciseCount   int             `json:"exercise_count"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CompletionXP is the XP awarded for completing this plan.
func (p *WorkoutPlan) CompletionXP() int {
	return BaseWorkoutXP + p.ExerciseCount*XPPerExercise
}

// WorkoutLog records one workout session. EndTime is nil while the
// session is in progress; once set the log is immutable and its EndTime
// date is what the streak and reschedule logic consult.
type WorkoutLog struct {
	ID            uint64     `json:"id"`
	UserID        uint64     `json:"user_id"`
	WorkoutPlanID uint64     `json:"workout_plan_id"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	XPEarned      int        `json:"xp_earned"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Completed reports whether the session has been finished.
func (l *WorkoutLog) Completed() bool { return l.EndTime != nil }
