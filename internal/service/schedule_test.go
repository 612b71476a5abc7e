package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kayan2004/dracofit-backend/internal/clock"
	"github.com/kayan2004/dracofit-backend/internal/model"
)

func TestScheduleService_WeekViewMergesReschedules(t *testing.T) {
	schedules := newFakeScheduleStore()
	reschedules := &fakeRescheduleStore{}
	svc := NewScheduleService(schedules, reschedules, clock.NewFake(tuesday), zap.NewNop().Sugar())

	s, err := schedules.GetOrCreate(context.Background(), 1)
	require.NoError(t, err)
	setWorkoutDays(s, 7, model.Monday)

	require.NoError(t, reschedules.Create(context.Background(), &model.TemporaryReschedule{
		UserID: 1, WorkoutPlanID: 7,
		OriginalDayOfWeek: model.Monday, RescheduledToDay: model.Wednesday,
		WeekStartDate: clock.WeekStart(tuesday),
	}))
	// A stale row from last week must not show up.
	require.NoError(t, reschedules.Create(context.Background(), &model.TemporaryReschedule{
		UserID: 1, WorkoutPlanID: 7,
		OriginalDayOfWeek: model.Friday, RescheduledToDay: model.Saturday,
		WeekStartDate: clock.WeekStart(tuesday).AddDate(0, 0, -7),
	}))

	view, err := svc.WeekView(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, view, 7)

	byDay := make(map[model.WeekDay]DayView, len(view))
	for _, dv := range view {
		byDay[dv.DayOfWeek] = dv
	}

	assert.True(t, byDay[model.Tuesday].IsToday)
	assert.False(t, byDay[model.Monday].IsToday)
	assert.True(t, byDay[model.Monday].Date.Equal(monday))

	assert.True(t, byDay[model.Wednesday].IsRescheduled)
	require.NotNil(t, byDay[model.Wednesday].Rescheduled)
	assert.Equal(t, model.Monday, byDay[model.Wednesday].Rescheduled.OriginalDayOfWeek)

	assert.False(t, byDay[model.Saturday].IsRescheduled)
	assert.Nil(t, byDay[model.Saturday].MovedTo)

	// The original day is cleared and points at where the workout went.
	assert.False(t, byDay[model.Monday].IsRescheduled)
	assert.Nil(t, byDay[model.Monday].Entry)
	require.NotNil(t, byDay[model.Monday].MovedTo)
	assert.Equal(t, model.Wednesday, *byDay[model.Monday].MovedTo)
}

func TestScheduleService_UpdateEntryAndReset(t *testing.T) {
	schedules := newFakeScheduleStore()
	svc := NewScheduleService(schedules, &fakeRescheduleStore{}, clock.NewFake(tuesday), zap.NewNop().Sugar())

	planID := uint64(3)
	s, err := svc.UpdateEntry(context.Background(), 1, model.Friday, &planID, nil, nil)
	require.NoError(t, err)
	e := s.EntryFor(model.Friday)
	require.NotNil(t, e)
	require.NotNil(t, e.WorkoutPlanID)
	assert.Equal(t, planID, *e.WorkoutPlanID)

	s, err = svc.Reset(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, s.EntryFor(model.Friday).WorkoutPlanID)
}
