package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekDayOf(t *testing.T) {
	// 2025-06-08 is a Sunday.
	sun := time.Date(2025, time.June, 8, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, Sunday, WeekDayOf(sun))
	assert.Equal(t, Wednesday, WeekDayOf(sun.AddDate(0, 0, 3)))
	assert.Equal(t, Saturday, WeekDayOf(sun.AddDate(0, 0, 6)))
}

func TestWeekDayIndexRoundTrip(t *testing.T) {
	for i, d := range AllWeekDays() {
		assert.Equal(t, i, d.Index())
		assert.Equal(t, d, WeekDayAt(i))
	}
	assert.Equal(t, Sunday, WeekDayAt(7))
	assert.Equal(t, -1, WeekDay("noday").Index())
	assert.False(t, WeekDay("noday").Valid())
}

func TestIsWorkoutDayFailsSafe(t *testing.T) {
	var nilSchedule *WeeklySchedule
	date := time.Date(2025, time.June, 9, 0, 0, 0, 0, time.UTC) // Monday

	assert.False(t, nilSchedule.IsWorkoutDay(date))
	assert.False(t, (&WeeklySchedule{}).IsWorkoutDay(date))

	plan := uint64(3)
	s := &WeeklySchedule{Entries: []ScheduleEntry{
		{DayOfWeek: Monday, WorkoutPlanID: &plan},
		{DayOfWeek: Tuesday},
	}}
	assert.True(t, s.IsWorkoutDay(date))
	assert.False(t, s.IsWorkoutDay(date.AddDate(0, 0, 1)))
	// Day with no entry at all is a rest day.
	assert.False(t, s.IsWorkoutDay(date.AddDate(0, 0, 2)))
}
