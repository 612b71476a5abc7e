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
	"github.com/kayan2004/dracofit-backend/internal/repository"
)

func newPetFixture(t *testing.T, now time.Time) (*PetService, *fakePetStore, *fakeScheduleStore, *fakeUserDirectory) {
	t.Helper()
	pets := newFakePetStore()
	schedules := newFakeScheduleStore()
	users := &fakeUserDirectory{}
	svc := NewPetService(pets, schedules, users, clock.NewFake(now), zap.NewNop().Sugar())
	return svc, pets, schedules, users
}

func TestPetService_CreateAndDuplicate(t *testing.T) {
	svc, _, _, _ := newPetFixture(t, monday)

	pet, err := svc.Create(context.Background(), 1, "Draco")
	require.NoError(t, err)
	assert.Equal(t, model.StageBaby, pet.Stage)
	assert.Equal(t, model.MaxHealth, pet.HealthPoints)

	_, err = svc.Create(context.Background(), 1, "Again")
	assert.ErrorIs(t, err, repository.ErrPetExists)
}

func TestPetService_ResurrectRequiresDeath(t *testing.T) {
	svc, pets, _, _ := newPetFixture(t, monday)
	seededPet(pets, nil)

	_, err := svc.Resurrect(context.Background(), 1)
	assert.ErrorIs(t, err, repository.ErrPetNotDead)

	_, err = svc.SetHealth(context.Background(), 1, 0)
	require.NoError(t, err)

	got, err := svc.Resurrect(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, got.IsDead)
	assert.Equal(t, model.ResurrectHealth, got.HealthPoints)
	assert.Equal(t, 1, got.ResurrectionCount)
}

func TestPetService_RestartJourneyKeepsName(t *testing.T) {
	svc, pets, _, _ := newPetFixture(t, monday)
	seededPet(pets, func(p *model.Pet) {
		p.Name = "Smaug"
		p.Level = 7
		p.Stage = model.StageTeen
		p.CurrentStreak = 12
	})

	got, err := svc.RestartJourney(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Smaug", got.Name)
	assert.Equal(t, 1, got.Level)
	assert.Equal(t, model.StageBaby, got.Stage)
	assert.Equal(t, 0, got.CurrentStreak)
}

func TestPetService_AddXPDeadGainsNothing(t *testing.T) {
	svc, pets, _, _ := newPetFixture(t, monday)
	seededPet(pets, func(p *model.Pet) {
		p.IsDead = true
		p.HealthPoints = 0
		p.CurrentAnimation = model.AnimDead
	})

	got, err := svc.AddXP(context.Background(), 1, 500)
	require.NoError(t, err)
	assert.Equal(t, 0, got.XP)
	assert.Equal(t, 1, got.Level)
}

func TestDailyHealthDecay_MissedScheduledDay(t *testing.T) {
	// Today is Tuesday; Monday was scheduled and the last completion
	// was Sunday, so Monday was missed.
	svc, pets, schedules, _ := newPetFixture(t, tuesday)
	seededPet(pets, func(p *model.Pet) {
		p.HealthPoints = 50
		last := sunday
		p.LastStreakDate = &last
	})
	s, err := schedules.GetOrCreate(context.Background(), 1)
	require.NoError(t, err)
	setWorkoutDays(s, 7, model.Monday)

	require.NoError(t, svc.DailyHealthDecayForPet(context.Background(), 1))

	got, err := pets.GetByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 50-model.DecayPerMissedDay, got.HealthPoints)
}

func TestDailyHealthDecay_CompletedYesterdayIsSpared(t *testing.T) {
	svc, pets, schedules, _ := newPetFixture(t, tuesday)
	seededPet(pets, func(p *model.Pet) {
		p.HealthPoints = 50
		last := monday
		p.LastStreakDate = &last
	})
	s, err := schedules.GetOrCreate(context.Background(), 1)
	require.NoError(t, err)
	setWorkoutDays(s, 7, model.Monday)

	require.NoError(t, svc.DailyHealthDecayForPet(context.Background(), 1))

	got, _ := pets.GetByUser(context.Background(), 1)
	assert.Equal(t, 50, got.HealthPoints)
}

func TestDailyHealthDecay_RestDayIsSpared(t *testing.T) {
	svc, pets, schedules, _ := newPetFixture(t, tuesday)
	seededPet(pets, func(p *model.Pet) {
		p.HealthPoints = 50
		last := sunday
		p.LastStreakDate = &last
	})
	// Everything stays a rest day.
	_, err := schedules.GetOrCreate(context.Background(), 1)
	require.NoError(t, err)

	require.NoError(t, svc.DailyHealthDecayForPet(context.Background(), 1))

	got, _ := pets.GetByUser(context.Background(), 1)
	assert.Equal(t, 50, got.HealthPoints)
}

func TestDailyHealthDecay_NeverWorkedOutOnScheduledDay(t *testing.T) {
	svc, pets, schedules, _ := newPetFixture(t, tuesday)
	seededPet(pets, func(p *model.Pet) {
		p.HealthPoints = model.DecayPerMissedDay // one miss from death
	})
	s, err := schedules.GetOrCreate(context.Background(), 1)
	require.NoError(t, err)
	setWorkoutDays(s, 7, model.Monday)

	require.NoError(t, svc.DailyHealthDecayForPet(context.Background(), 1))

	got, _ := pets.GetByUser(context.Background(), 1)
	assert.Equal(t, 0, got.HealthPoints)
	assert.True(t, got.IsDead)
	assert.Equal(t, model.AnimDead, got.CurrentAnimation)
}

func TestDailyHealthDecay_DeadPetSkipped(t *testing.T) {
	svc, pets, schedules, _ := newPetFixture(t, tuesday)
	seededPet(pets, func(p *model.Pet) {
		p.IsDead = true
		p.HealthPoints = 0
		p.CurrentAnimation = model.AnimDead
	})
	s, err := schedules.GetOrCreate(context.Background(), 1)
	require.NoError(t, err)
	setWorkoutDays(s, 7, model.Monday)

	require.NoError(t, svc.DailyHealthDecayForPet(context.Background(), 1))

	got, _ := pets.GetByUser(context.Background(), 1)
	assert.Equal(t, 0, got.HealthPoints)
}

func TestApplyDailyHealthDecayToAllActivePets(t *testing.T) {
	svc, pets, schedules, _ := newPetFixture(t, tuesday)
	// User 1 missed Monday, user 2 has a rest-only week.
	p1 := *model.NewDefaultPet(1, "A")
	p1.HealthPoints = 40
	pets.put(p1)
	p2 := *model.NewDefaultPet(2, "B")
	p2.HealthPoints = 40
	pets.put(p2)

	s1, err := schedules.GetOrCreate(context.Background(), 1)
	require.NoError(t, err)
	setWorkoutDays(s1, 7, model.Monday)
	_, err = schedules.GetOrCreate(context.Background(), 2)
	require.NoError(t, err)

	svc.ApplyDailyHealthDecayToAllActivePets(context.Background())

	g1, _ := pets.GetByUser(context.Background(), 1)
	g2, _ := pets.GetByUser(context.Background(), 2)
	assert.Equal(t, 40-model.DecayPerMissedDay, g1.HealthPoints)
	assert.Equal(t, 40, g2.HealthPoints)
}
