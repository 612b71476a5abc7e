package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kayan2004/dracofit-backend/internal/clock"
	"github.com/kayan2004/dracofit-backend/internal/model"
)

// RescheduleService moves yesterday's skipped workouts onto the next
// free rest day of the current week, and sweeps out reschedules from
// past weeks.
type RescheduleService struct {
	users       UserDirectory
	schedules   ScheduleStore
	logs        LogStore
	reschedules RescheduleStore
	clock       clock.Clock
	log         *zap.SugaredLogger
}

func NewRescheduleService(users UserDirectory, schedules ScheduleStore, logs LogStore, reschedules RescheduleStore, clk clock.Clock, log *zap.SugaredLogger) *RescheduleService {
	return &RescheduleService{users: users, schedules: schedules, logs: logs, reschedules: reschedules, clock: clk, log: log}
}

// CheckSkippedWorkouts scans every user for a workout scheduled
// yesterday that was never completed, and books it onto the first rest
// day of the remaining week. Each plan is rescheduled at most once per
// week. Per-user failures are logged and do not stop the scan.
func (s *RescheduleService) CheckSkippedWorkouts(ctx context.Context) {
	ids, err := s.users.ListIDs(ctx)
	if err != nil {
		s.log.Errorw("reschedule: listing users failed", "error", err)
		return
	}

	s.log.Infow("reschedule: skipped-workout scan started", "users", len(ids))
	var booked int
	for _, id := range ids {
		ok, err := s.checkUser(ctx, id)
		if err != nil {
			s.log.Errorw("reschedule: user check failed", "user_id", id, "error", err)
			continue
		}
		if ok {
			booked++
		}
	}
	s.log.Infow("reschedule: skipped-workout scan finished", "booked", booked)
}

func (s *RescheduleService) checkUser(ctx context.Context, userID uint64) (bool, error) {
	today := s.clock.Today()
	yesterday := today.AddDate(0, 0, -1)
	yesterdayDay := model.WeekDayOf(yesterday)

	schedule, err := s.schedules.GetOrCreate(ctx, userID)
	if err != nil {
		return false, err
	}
	entry := schedule.EntryFor(yesterdayDay)
	if entry == nil || entry.WorkoutPlanID == nil {
		return false, nil
	}
	planID := *entry.WorkoutPlanID

	// Did a completed log land inside yesterday's calendar day?
	dayStart := clock.Midnight(yesterday)
	dayEnd := dayStart.AddDate(0, 0, 1)
	logs, err := s.logs.CompletedInRange(ctx, userID, dayStart, dayEnd, planID)
	if err != nil {
		return false, err
	}
	if len(logs) > 0 {
		return false, nil
	}

	weekStart := clock.WeekStart(today)
	already, err := s.reschedules.Exists(ctx, userID, planID, yesterdayDay, weekStart)
	if err != nil {
		return false, err
	}
	if already {
		return false, nil
	}

	target := s.findRestDay(schedule, today, yesterday)
	if target == nil {
		s.log.Infow("reschedule: no free rest day this week", "user_id", userID, "plan_id", planID)
		return false, nil
	}

	r := model.TemporaryReschedule{
		UserID:            userID,
		WorkoutPlanID:     planID,
		OriginalDayOfWeek: yesterdayDay,
		RescheduledToDay:  *target,
		WeekStartDate:     weekStart,
		CreatedAt:         s.clock.Now(),
	}
	if err := s.reschedules.Create(ctx, &r); err != nil {
		return false, err
	}
	s.log.Infow("reschedule: workout moved",
		"user_id", userID, "plan_id", planID,
		"from", yesterdayDay, "to", *target)
	return true, nil
}

// findRestDay walks forward from today looking for the first day with
// no planned workout, never landing back on the skipped day itself.
func (s *RescheduleService) findRestDay(schedule *model.WeeklySchedule, today, yesterday time.Time) *model.WeekDay {
	todayIdx := int(today.Weekday())
	yesterdayIdx := int(yesterday.Weekday())
	for i := 0; i < 7; i++ {
		idx := (todayIdx + i) % 7
		if idx == yesterdayIdx {
			continue
		}
		day := model.WeekDayAt(idx)
		entry := schedule.EntryFor(day)
		if entry == nil || entry.WorkoutPlanID == nil {
			return &day
		}
	}
	return nil
}

// CleanupOldReschedules deletes reschedules from before the previous
// week, keeping the current and previous weeks' rows.
func (s *RescheduleService) CleanupOldReschedules(ctx context.Context) {
	cutoff := clock.WeekStart(s.clock.Today()).AddDate(0, 0, -7)
	n, err := s.reschedules.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		s.log.Errorw("reschedule: cleanup failed", "error", err)
		return
	}
	s.log.Infow("reschedule: cleanup finished", "deleted", n, "cutoff", cutoff.Format("2006-01-02"))
}
