package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kayan2004/dracofit-backend/internal/clock"
	"github.com/kayan2004/dracofit-backend/internal/model"
)

// ScheduleService serves the user's weekly schedule, including the
// week view with temporary reschedules layered on top of the base
// entries.
type ScheduleService struct {
	schedules   ScheduleStore
	reschedules RescheduleStore
	clock       clock.Clock
	log         *zap.SugaredLogger
}

func NewScheduleService(schedules ScheduleStore, reschedules RescheduleStore, clk clock.Clock, log *zap.SugaredLogger) *ScheduleService {
	return &ScheduleService{schedules: schedules, reschedules: reschedules, clock: clk, log: log}
}

// DayView is one day of the effective week, anchored to its calendar
// date in the current week. A temporary reschedule shows up twice: the
// target day carries the moved workout, and the original day is
// cleared with MovedTo pointing at where it went.
type DayView struct {
	DayOfWeek     model.WeekDay              `json:"dayOfWeek"`
	Date          time.Time                  `json:"date"`
	IsToday       bool                       `json:"isToday"`
	Entry         *model.ScheduleEntry       `json:"entry"`
	Rescheduled   *model.TemporaryReschedule `json:"rescheduled,omitempty"`
	IsRescheduled bool                       `json:"isRescheduled"`
	MovedTo       *model.WeekDay             `json:"movedTo,omitempty"`
}

// Get returns the user's base schedule, creating the default all-rest
// one on first access.
func (s *ScheduleService) Get(ctx context.Context, userID uint64) (*model.WeeklySchedule, error) {
	return s.schedules.GetOrCreate(ctx, userID)
}

// UpdateEntry edits one day of the base schedule. A nil planID makes
// the day a rest day.
func (s *ScheduleService) UpdateEntry(ctx context.Context, userID uint64, day model.WeekDay, planID *uint64, preferredTime, notes *string) (*model.WeeklySchedule, error) {
	schedule, err := s.schedules.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.schedules.UpdateEntry(ctx, schedule.ID, day, planID, preferredTime, notes); err != nil {
		return nil, err
	}
	return s.schedules.GetOrCreate(ctx, userID)
}

// Reset clears every day back to rest.
func (s *ScheduleService) Reset(ctx context.Context, userID uint64) (*model.WeeklySchedule, error) {
	schedule, err := s.schedules.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.schedules.ResetEntries(ctx, schedule.ID); err != nil {
		return nil, err
	}
	s.log.Infow("schedule reset", "user_id", userID, "schedule_id", schedule.ID)
	return s.schedules.GetOrCreate(ctx, userID)
}

// Rename sets the schedule's display name.
func (s *ScheduleService) Rename(ctx context.Context, userID uint64, name string) (*model.WeeklySchedule, error) {
	schedule, err := s.schedules.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.schedules.UpdateName(ctx, schedule.ID, name); err != nil {
		return nil, err
	}
	return s.schedules.GetOrCreate(ctx, userID)
}

// WeekView returns all seven days with this week's temporary
// reschedules merged in. A reschedule fetch failure degrades to the
// base schedule rather than failing the view.
func (s *ScheduleService) WeekView(ctx context.Context, userID uint64) ([]DayView, error) {
	schedule, err := s.schedules.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := s.clock.Today()
	weekStart := clock.WeekStart(today)
	moved, err := s.reschedules.ListForWeek(ctx, userID, weekStart)
	if err != nil {
		s.log.Warnw("schedule: reschedule lookup failed, serving base week", "user_id", userID, "error", err)
		moved = nil
	}
	byTarget := make(map[model.WeekDay]*model.TemporaryReschedule, len(moved))
	byOrigin := make(map[model.WeekDay]*model.TemporaryReschedule, len(moved))
	for i := range moved {
		byTarget[moved[i].RescheduledToDay] = &moved[i]
		byOrigin[moved[i].OriginalDayOfWeek] = &moved[i]
	}

	view := make([]DayView, 0, 7)
	for i, day := range model.AllWeekDays() {
		date := weekStart.AddDate(0, 0, i)
		dv := DayView{
			DayOfWeek: day,
			Date:      date,
			IsToday:   date.Equal(today),
			Entry:     schedule.EntryFor(day),
		}
		if r, ok := byTarget[day]; ok {
			dv.Rescheduled = r
			dv.IsRescheduled = true
		}
		if r, ok := byOrigin[day]; ok {
			dv.Entry = nil
			to := r.RescheduledToDay
			dv.MovedTo = &to
		}
		view = append(view, dv)
	}
	return view, nil
}
