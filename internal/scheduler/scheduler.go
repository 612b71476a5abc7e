// Package scheduler runs the daily and weekly background jobs (health
// decay, skipped-workout rescheduling, reschedule cleanup) on a plain
// timer loop. Next-run times are computed by pure functions so the
// calendar math is testable without waiting.
package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kayan2004/dracofit-backend/internal/clock"
)

// Job is one scheduled task. Run receives the context the scheduler
// was started with.
type Job struct {
	Name string
	Run  func(ctx context.Context)
	// Next returns the first run time strictly after now.
	Next func(now time.Time) time.Time
}

// Daily builds a job firing every day at the given hour.
func Daily(name string, hour int, run func(ctx context.Context)) Job {
	return Job{
		Name: name,
		Run:  run,
		Next: func(now time.Time) time.Time { return NextDaily(now, hour) },
	}
}

// Weekly builds a job firing once a week on the given weekday and hour.
func Weekly(name string, day time.Weekday, hour int, run func(ctx context.Context)) Job {
	return Job{
		Name: name,
		Run:  run,
		Next: func(now time.Time) time.Time { return NextWeekly(now, day, hour) },
	}
}

// NextDaily returns the next occurrence of hour o'clock after now.
func NextDaily(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// NextWeekly returns the next occurrence of the weekday at hour
// o'clock after now.
func NextWeekly(now time.Time, day time.Weekday, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	next = next.AddDate(0, 0, (int(day)-int(now.Weekday())+7)%7)
	if !next.After(now) {
		next = next.AddDate(0, 0, 7)
	}
	return next
}

// Scheduler drives a set of jobs, one goroutine per job.
type Scheduler struct {
	clock clock.Clock
	log   *zap.SugaredLogger
	jobs  []Job
}

func New(clk clock.Clock, log *zap.SugaredLogger, jobs ...Job) *Scheduler {
	return &Scheduler{clock: clk, log: log, jobs: jobs}
}

// Start launches every job loop. The loops stop when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	for _, j := range s.jobs {
		go s.loop(ctx, j)
	}
}

func (s *Scheduler) loop(ctx context.Context, j Job) {
	for {
		now := s.clock.Now()
		next := j.Next(now)
		s.log.Infow("job scheduled", "job", j.Name, "next_run", next)

		timer := time.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		start := s.clock.Now()
		s.run(ctx, j)
		s.log.Infow("job finished", "job", j.Name, "took", s.clock.Now().Sub(start))
	}
}

// run isolates a panicking job so the loop keeps its schedule.
func (s *Scheduler) run(ctx context.Context, j Job) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorw("job panicked", "job", j.Name, "panic", r)
		}
	}()
	j.Run(ctx)
}
