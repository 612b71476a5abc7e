package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kayan2004/dracofit-backend/internal/clock"
	"github.com/kayan2004/dracofit-backend/internal/model"
)

// StreakService credits workout completions against the pet: streak
// bookkeeping against the user's weekly schedule, the once-per-day
// heal, and the streak-driven mood.
type StreakService struct {
	pets      PetStore
	schedules ScheduleStore
	clock     clock.Clock
	log       *zap.SugaredLogger
}

func NewStreakService(pets PetStore, schedules ScheduleStore, clk clock.Clock, log *zap.SugaredLogger) *StreakService {
	return &StreakService{pets: pets, schedules: schedules, clock: clk, log: log}
}

// RecordWorkoutCompletion updates the user's pet for a workout finished
// now. Consecutive calendar days extend the streak. A gap resets it
// only when a scheduled workout day was skipped; gaps made entirely of
// rest days continue the streak. The pet heals once per calendar day.
// Dead pets are left untouched.
//
// A schedule fetch failure is tolerated: the streak then resets
// conservatively on any gap, and the completion is still credited.
func (s *StreakService) RecordWorkoutCompletion(ctx context.Context, userID uint64) (model.Pet, error) {
	schedule, err := s.schedules.GetOrCreate(ctx, userID)
	if err != nil {
		s.log.Errorw("streak: schedule fetch failed, using conservative reset", "user_id", userID, "error", err)
		schedule = nil
	}

	today := s.clock.Today()

	return s.pets.Mutate(ctx, userID, func(p *model.Pet) error {
		if p.IsDead {
			s.log.Infow("streak: pet is dead, completion not credited", "user_id", userID, "pet_id", p.ID)
			return nil
		}

		var lastDay *int // days from lastStreakDate to today
		if p.LastStreakDate != nil {
			d := clock.DaysBetween(*p.LastStreakDate, today)
			lastDay = &d
		}

		switch {
		case lastDay == nil:
			// First ever workout.
			p.CurrentStreak = 1
		case *lastDay == 0:
			// Same-day repeat: streak unchanged.
			if p.CurrentStreak == 0 {
				p.CurrentStreak = 1
			}
		case *lastDay == 1:
			p.CurrentStreak++
		case *lastDay > 1:
			if s.missedScheduledDay(*p.LastStreakDate, *lastDay, schedule, userID) {
				p.CurrentStreak = 1
			} else {
				p.CurrentStreak++
			}
		default:
			// lastStreakDate in the future: bad data or clock skew.
			s.log.Warnw("streak: last streak date is in the future, resetting",
				"user_id", userID, "pet_id", p.ID, "last_streak_date", *p.LastStreakDate)
			p.CurrentStreak = 1
		}

		if p.CurrentStreak > p.LongestStreak {
			p.LongestStreak = p.CurrentStreak
		}

		healedToday := lastDay != nil && *lastDay <= 0
		if !healedToday {
			p.Heal(model.HealPerWorkout)
		}
		p.LastStreakDate = &today

		p.RefreshStreakAnimation()

		s.log.Infow("streak: completion credited",
			"user_id", userID, "pet_id", p.ID,
			"streak", p.CurrentStreak, "longest", p.LongestStreak,
			"health", p.HealthPoints, "animation", p.CurrentAnimation)
		return nil
	})
}

// missedScheduledDay scans the skipped days between the last credited
// day (exclusive) and today (exclusive). Without a schedule the answer
// is conservatively true.
func (s *StreakService) missedScheduledDay(lastDay time.Time, gap int, schedule *model.WeeklySchedule, userID uint64) bool {
	if schedule == nil {
		return true
	}
	last := clock.Midnight(lastDay)
	for i := 1; i < gap; i++ {
		skipped := last.AddDate(0, 0, i)
		if schedule.IsWorkoutDay(skipped) {
			s.log.Infow("streak: missed scheduled day in gap, resetting",
				"user_id", userID, "missed_day", skipped.Format("2006-01-02"))
			return true
		}
	}
	return false
}
