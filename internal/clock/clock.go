// Package clock abstracts "now" so that streak and decay logic can be
// driven deterministically in tests. Every component that does date math
// receives a Clock; nothing in the codebase reads time.Now directly.
package clock

import (
	"sync"
	"time"
)

// Clock supplies the current instant and the current calendar day.
type Clock interface {
	// Now returns the current instant in the clock's location.
	Now() time.Time
	// Today returns Now truncated to midnight in the clock's location.
	Today() time.Time
}

// System is the production clock. The zero value uses time.Local; use
// NewSystem to pin a specific location (e.g. the deployment timezone).
type System struct {
	loc *time.Location
}

// NewSystem returns a System clock in the given location. A nil location
// falls back to time.Local.
func NewSystem(loc *time.Location) *System {
	if loc == nil {
		loc = time.Local
	}
	return &System{loc: loc}
}

func (s *System) location() *time.Location {
	if s == nil || s.loc == nil {
		return time.Local
	}
	return s.loc
}

func (s *System) Now() time.Time { return time.Now().In(s.location()) }

func (s *System) Today() time.Time { return Midnight(s.Now()) }

// Fake is a settable clock for tests and the debug endpoints. It is safe
// for concurrent use. When no time has been set it falls through to the
// real clock, matching System behavior.
type Fake struct {
	mu  sync.Mutex
	t   time.Time
	loc *time.Location
}

// NewFake returns a Fake clock pinned at t.
func NewFake(t time.Time) *Fake {
	return &Fake{t: t, loc: t.Location()}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.t.IsZero() {
		return time.Now().In(f.locationLocked())
	}
	return f.t
}

func (f *Fake) Today() time.Time { return Midnight(f.Now()) }

// Set pins the clock at t. A zero time resets to the real clock.
func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = t
	if !t.IsZero() {
		f.loc = t.Location()
	}
}

// AdvanceDays moves the pinned time forward by n calendar days. When the
// clock is not pinned it pins at the real time first.
func (f *Fake) AdvanceDays(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.t.IsZero() {
		f.t = time.Now().In(f.locationLocked())
	}
	f.t = f.t.AddDate(0, 0, n)
}

// Reset returns the clock to real time.
func (f *Fake) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = time.Time{}
}

func (f *Fake) locationLocked() *time.Location {
	if f.loc == nil {
		return time.Local
	}
	return f.loc
}

// Midnight truncates t to 00:00:00 in t's location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekStart returns the Sunday midnight anchoring the week containing t.
// Reschedule rows are keyed by this date.
func WeekStart(t time.Time) time.Time {
	day := Midnight(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// DaysBetween returns the whole calendar days from a to b (b-a), both
// normalized to midnight first. Negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	a = Midnight(a)
	b = Midnight(b)
	return int(b.Sub(a).Hours() / 24)
}
