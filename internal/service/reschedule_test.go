package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kayan2004/dracofit-backend/internal/clock"
	"github.com/kayan2004/dracofit-backend/internal/model"
)

func newRescheduleFixture(t *testing.T, now time.Time) (*RescheduleService, *fakeScheduleStore, *fakeLogStore, *fakeRescheduleStore, *fakeUserDirectory) {
	t.Helper()
	schedules := newFakeScheduleStore()
	logs := &fakeLogStore{}
	reschedules := &fakeRescheduleStore{}
	users := &fakeUserDirectory{ids: []uint64{1}}
	svc := NewRescheduleService(users, schedules, logs, reschedules, clock.NewFake(now), zap.NewNop().Sugar())
	return svc, schedules, logs, reschedules, users
}

func TestCheckSkippedWorkouts_BooksFirstRestDay(t *testing.T) {
	// Today is Tuesday, Monday's workout was skipped. Tuesday also has
	// a workout, so the reschedule lands on Wednesday.
	svc, schedules, _, reschedules, _ := newRescheduleFixture(t, tuesday)
	s, err := schedules.GetOrCreate(context.Background(), 1)
	require.NoError(t, err)
	setWorkoutDays(s, 7, model.Monday, model.Tuesday)

	svc.CheckSkippedWorkouts(context.Background())

	rows, err := reschedules.ListForWeek(context.Background(), 1, clock.WeekStart(tuesday))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, model.Monday, rows[0].OriginalDayOfWeek)
	assert.Equal(t, model.Wednesday, rows[0].RescheduledToDay)
	assert.Equal(t, uint64(7), rows[0].WorkoutPlanID)
}

func TestCheckSkippedWorkouts_CompletedWorkoutNotRescheduled(t *testing.T) {
	svc, schedules, logs, reschedules, _ := newRescheduleFixture(t, tuesday)
	s, err := schedules.GetOrCreate(context.Background(), 1)
	require.NoError(t, err)
	setWorkoutDays(s, 7, model.Monday)

	done := monday.Add(19 * time.Hour)
	logs.logs = append(logs.logs, model.WorkoutLog{
		UserID: 1, WorkoutPlanID: 7,
		StartTime: monday.Add(18 * time.Hour), EndTime: &done,
	})

	svc.CheckSkippedWorkouts(context.Background())

	rows, _ := reschedules.ListForWeek(context.Background(), 1, clock.WeekStart(tuesday))
	assert.Empty(t, rows)
}

func TestCheckSkippedWorkouts_MidnightFinishBelongsToNextDay(t *testing.T) {
	// A session finishing exactly at Tuesday 00:00 is Tuesday's workout,
	// not Monday's: the day window is end-exclusive, so Monday still
	// counts as skipped and gets rescheduled.
	svc, schedules, logs, reschedules, _ := newRescheduleFixture(t, tuesday)
	s, err := schedules.GetOrCreate(context.Background(), 1)
	require.NoError(t, err)
	setWorkoutDays(s, 7, model.Monday)

	done := tuesday
	logs.logs = append(logs.logs, model.WorkoutLog{
		UserID: 1, WorkoutPlanID: 7,
		StartTime: monday.Add(23 * time.Hour), EndTime: &done,
	})

	svc.CheckSkippedWorkouts(context.Background())

	rows, _ := reschedules.ListForWeek(context.Background(), 1, clock.WeekStart(tuesday))
	require.Len(t, rows, 1)
	assert.Equal(t, model.Monday, rows[0].OriginalDayOfWeek)
}

func TestCheckSkippedWorkouts_OncePerWeek(t *testing.T) {
	svc, schedules, _, reschedules, _ := newRescheduleFixture(t, tuesday)
	s, err := schedules.GetOrCreate(context.Background(), 1)
	require.NoError(t, err)
	setWorkoutDays(s, 7, model.Monday)

	svc.CheckSkippedWorkouts(context.Background())
	svc.CheckSkippedWorkouts(context.Background())

	rows, _ := reschedules.ListForWeek(context.Background(), 1, clock.WeekStart(tuesday))
	assert.Len(t, rows, 1)
}

func TestCheckSkippedWorkouts_RestYesterdayIgnored(t *testing.T) {
	svc, schedules, _, reschedules, _ := newRescheduleFixture(t, tuesday)
	_, err := schedules.GetOrCreate(context.Background(), 1)
	require.NoError(t, err)

	svc.CheckSkippedWorkouts(context.Background())

	rows, _ := reschedules.ListForWeek(context.Background(), 1, clock.WeekStart(tuesday))
	assert.Empty(t, rows)
}

func TestCheckSkippedWorkouts_FullWeekHasNoSlot(t *testing.T) {
	svc, schedules, _, reschedules, _ := newRescheduleFixture(t, tuesday)
	s, err := schedules.GetOrCreate(context.Background(), 1)
	require.NoError(t, err)
	setWorkoutDays(s, 7, model.AllWeekDays()...)

	svc.CheckSkippedWorkouts(context.Background())

	rows, _ := reschedules.ListForWeek(context.Background(), 1, clock.WeekStart(tuesday))
	assert.Empty(t, rows)
}

func TestCleanupOldReschedules(t *testing.T) {
	svc, _, _, reschedules, _ := newRescheduleFixture(t, tuesday)
	thisWeek := clock.WeekStart(tuesday)
	lastWeek := thisWeek.AddDate(0, 0, -7)
	twoWeeksAgo := thisWeek.AddDate(0, 0, -14)

	for _, ws := range []time.Time{thisWeek, lastWeek, twoWeeksAgo} {
		err := reschedules.Create(context.Background(), &model.TemporaryReschedule{
			UserID: 1, WorkoutPlanID: 7,
			OriginalDayOfWeek: model.Monday, RescheduledToDay: model.Wednesday,
			WeekStartDate: ws,
		})
		require.NoError(t, err)
	}

	svc.CleanupOldReschedules(context.Background())

	reschedules.mu.Lock()
	defer reschedules.mu.Unlock()
	require.Len(t, reschedules.rows, 2)
	for _, r := range reschedules.rows {
		assert.False(t, r.WeekStartDate.Before(lastWeek))
	}
}
