package service

import (
	"context"
	"sync"
	"time"

	"github.com/kayan2004/dracofit-backend/internal/model"
	"github.com/kayan2004/dracofit-backend/internal/repository"
)

// In-memory stores backing the service tests. Each fake mirrors the
// contract of its SQL counterpart, including the sentinel errors.

type fakePetStore struct {
	mu     sync.Mutex
	pets   map[uint64]model.Pet // keyed by user id
	nextID uint64
}

func newFakePetStore() *fakePetStore {
	return &fakePetStore{pets: make(map[uint64]model.Pet), nextID: 1}
}

func (f *fakePetStore) GetByUser(_ context.Context, userID uint64) (model.Pet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pets[userID]
	if !ok {
		return model.Pet{}, repository.ErrPetNotFound
	}
	return p, nil
}

func (f *fakePetStore) Create(_ context.Context, p *model.Pet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.pets[p.UserID]; ok {
		return repository.ErrPetExists
	}
	p.ID = f.nextID
	f.nextID++
	f.pets[p.UserID] = *p
	return nil
}

func (f *fakePetStore) DeleteByUser(_ context.Context, userID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.pets[userID]; !ok {
		return repository.ErrPetNotFound
	}
	delete(f.pets, userID)
	return nil
}

func (f *fakePetStore) Mutate(_ context.Context, userID uint64, fn func(p *model.Pet) error) (model.Pet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pets[userID]
	if !ok {
		return model.Pet{}, repository.ErrPetNotFound
	}
	if err := fn(&p); err != nil {
		return model.Pet{}, err
	}
	f.pets[userID] = p
	return p, nil
}

func (f *fakePetStore) ListActive(_ context.Context) ([]model.Pet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Pet
	for _, p := range f.pets {
		if !p.IsDead {
			out = append(out, p)
		}
	}
	return out, nil
}

// put seeds a pet directly, bypassing Create's duplicate check.
func (f *fakePetStore) put(p model.Pet) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID == 0 {
		p.ID = f.nextID
		f.nextID++
	}
	f.pets[p.UserID] = p
}

type fakeScheduleStore struct {
	mu        sync.Mutex
	schedules map[uint64]*model.WeeklySchedule
	err       error // returned by GetOrCreate when set
}

func newFakeScheduleStore() *fakeScheduleStore {
	return &fakeScheduleStore{schedules: make(map[uint64]*model.WeeklySchedule)}
}

func (f *fakeScheduleStore) GetOrCreate(_ context.Context, userID uint64) (*model.WeeklySchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.schedules[userID]
	if !ok {
		s = restWeek(userID)
		f.schedules[userID] = s
	}
	return s, nil
}

func (f *fakeScheduleStore) UpdateEntry(_ context.Context, scheduleID uint64, day model.WeekDay, planID *uint64, preferredTime, notes *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.schedules {
		if s.ID != scheduleID {
			continue
		}
		e := s.EntryFor(day)
		if e == nil {
			return repository.ErrEntryNotFound
		}
		e.WorkoutPlanID = planID
		e.PreferredTime = preferredTime
		e.Notes = notes
		return nil
	}
	return repository.ErrEntryNotFound
}

func (f *fakeScheduleStore) ResetEntries(_ context.Context, scheduleID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.schedules {
		if s.ID != scheduleID {
			continue
		}
		for i := range s.Entries {
			s.Entries[i].WorkoutPlanID = nil
			s.Entries[i].PreferredTime = nil
			s.Entries[i].Notes = nil
		}
		return nil
	}
	return nil
}

func (f *fakeScheduleStore) UpdateName(_ context.Context, scheduleID uint64, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.schedules {
		if s.ID == scheduleID {
			s.Name = name
		}
	}
	return nil
}

// restWeek builds an all-rest-day schedule for the user.
func restWeek(userID uint64) *model.WeeklySchedule {
	s := &model.WeeklySchedule{ID: userID, UserID: userID, Name: "My Weekly Schedule"}
	for _, d := range model.AllWeekDays() {
		s.Entries = append(s.Entries, model.ScheduleEntry{ScheduleID: s.ID, DayOfWeek: d})
	}
	return s
}

// setWorkoutDays marks the given days with a plan id.
func setWorkoutDays(s *model.WeeklySchedule, planID uint64, days ...model.WeekDay) {
	for _, d := range days {
		if e := s.EntryFor(d); e != nil {
			id := planID
			e.WorkoutPlanID = &id
		}
	}
}

type fakeLogStore struct {
	mu   sync.Mutex
	logs []model.WorkoutLog
}

func (f *fakeLogStore) CompletedInRange(_ context.Context, userID uint64, start, end time.Time, planID uint64) ([]model.WorkoutLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.WorkoutLog
	for _, l := range f.logs {
		if l.UserID != userID || l.EndTime == nil {
			continue
		}
		if planID != 0 && l.WorkoutPlanID != planID {
			continue
		}
		if l.EndTime.Before(start) || !l.EndTime.Before(end) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

type fakeRescheduleStore struct {
	mu     sync.Mutex
	rows   []model.TemporaryReschedule
	nextID uint64
}

func (f *fakeRescheduleStore) Exists(_ context.Context, userID, planID uint64, originalDay model.WeekDay, weekStart time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.UserID == userID && r.WorkoutPlanID == planID && r.OriginalDayOfWeek == originalDay && r.WeekStartDate.Equal(weekStart) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRescheduleStore) Create(_ context.Context, t *model.TemporaryReschedule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	t.ID = f.nextID
	f.rows = append(f.rows, *t)
	return nil
}

func (f *fakeRescheduleStore) ListForWeek(_ context.Context, userID uint64, weekStart time.Time) ([]model.TemporaryReschedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.TemporaryReschedule
	for _, r := range f.rows {
		if r.UserID == userID && r.WeekStartDate.Equal(weekStart) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRescheduleStore) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var kept []model.TemporaryReschedule
	var deleted int64
	for _, r := range f.rows {
		if r.WeekStartDate.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	f.rows = kept
	return deleted, nil
}

type fakeUserDirectory struct {
	ids []uint64
}

func (f *fakeUserDirectory) ListIDs(context.Context) ([]uint64, error) {
	return f.ids, nil
}
