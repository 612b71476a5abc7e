package model

import "time"

// WeekDay is the lowercase weekday name stored in schedule and
// reschedule rows.
type WeekDay string

const (
	Sunday    WeekDay = "sunday"
	Monday    WeekDay = "monday"
	Tuesday   WeekDay = "tuesday"
	Wednesday WeekDay = "wednesday"
	Thursday  WeekDay = "thursday"
	Friday    WeekDay = "friday"
	Saturday  WeekDay = "saturday"
)

// weekDays is indexed by time.Weekday (Sunday == 0).
var weekDays = [7]WeekDay{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// WeekDayOf maps a date to its WeekDay.
func WeekDayOf(t time.Time) WeekDay { return weekDays[int(t.Weekday())] }

// WeekDayAt returns the WeekDay for a 0-based index (0 = Sunday),
// wrapping modulo 7.
func WeekDayAt(i int) WeekDay { return weekDays[((i%7)+7)%7] }

// Index returns the 0-based position of the day within the week
// (Sunday == 0). Unknown values return -1.
func (d WeekDay) Index() int {
	for i, wd := range weekDays {
		if wd == d {
			return i
		}
	}
	return -1
}

// Valid reports whether d is one of the seven known weekday values.
func (d WeekDay) Valid() bool { return d.Index() >= 0 }

// AllWeekDays returns the seven days in calendar order starting Sunday.
func AllWeekDays() []WeekDay { return weekDays[:] }

// ScheduleEntry assigns a workout plan (or rest, when WorkoutPlanID is
// nil) to one weekday of a user's schedule. Exactly one entry exists
// per (schedule, weekday).
type ScheduleEntry struct {
	ID            uint64  `json:"id"`
	ScheduleID    uint64  `json:"schedule_id"`
	DayOfWeek     WeekDay `json:"day_of_week"`
	WorkoutPlanID *uint64 `json:"workout_plan_id"`
	PreferredTime *string `json:"preferred_time"`
	Notes         *string `json:"notes"`
}

// WeeklySchedule is a user's base weekly plan: seven entries, one per
// weekday, created lazily with every day set to rest. Temporary
// reschedules are never written into these entries; they are merged
// only into the weekly view returned to clients.
type WeeklySchedule struct {
	ID        uint64          `json:"id"`
	UserID    uint64          `json:"user_id"`
	Name      string          `json:"name"`
	Entries   []ScheduleEntry `json:"entries"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// EntryFor returns the entry for the given weekday, or nil when absent.
func (s *WeeklySchedule) EntryFor(day WeekDay) *ScheduleEntry {
	if s == nil {
		return nil
	}
	for i := range s.Entries {
		if s.Entries[i].DayOfWeek == day {
			return &s.Entries[i]
		}
	}
	return nil
}

// IsWorkoutDay reports whether the entry for date's weekday has a plan
// assigned. A nil schedule or one with no entries answers false, so
// missing schedule data never penalizes the user.
func (s *WeeklySchedule) IsWorkoutDay(date time.Time) bool {
	if s == nil || len(s.Entries) == 0 {
		return false
	}
	e := s.EntryFor(WeekDayOf(date))
	return e != nil && e.WorkoutPlanID != nil
}
