package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultPet(t *testing.T) {
	p := NewDefaultPet(7, "Draco")

	assert.Equal(t, uint64(7), p.UserID)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 0, p.XP)
	assert.Equal(t, StageBaby, p.Stage)
	assert.Equal(t, MaxHealth, p.HealthPoints)
	assert.Equal(t, 0, p.CurrentStreak)
	assert.Equal(t, 0, p.LongestStreak)
	assert.Nil(t, p.LastStreakDate)
	assert.Equal(t, AnimIdle, p.CurrentAnimation)
	assert.False(t, p.IsDead)
}

func TestAddXPLeveling(t *testing.T) {
	p := NewDefaultPet(1, "d")
	p.Level = 1
	p.XP = 90

	leveled := p.AddXP(30) // 120 >= 100 -> level 2, xp 20; 20 < 200 stops

	assert.True(t, leveled)
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 20, p.XP)
	assert.Equal(t, AnimHappy, p.CurrentAnimation)
}

func TestAddXPMultipleLevels(t *testing.T) {
	p := NewDefaultPet(1, "d")
	// 100 (l1) + 200 (l2) + 50 remaining
	p.AddXP(350)
	assert.Equal(t, 3, p.Level)
	assert.Equal(t, 50, p.XP)
}

func TestEvolutionThresholds(t *testing.T) {
	p := NewDefaultPet(1, "d")
	p.Level = 4
	p.Stage = StageBaby

	p.AddXP(4 * XPPerLevel) // exactly one level
	assert.Equal(t, 5, p.Level)
	assert.Equal(t, StageTeen, p.Stage)

	// Push through levels 6..10.
	for p.Level < 10 {
		p.AddXP(p.Level * XPPerLevel)
	}
	assert.Equal(t, StageAdult, p.Stage)

	// Stage never regresses.
	p.Level = 1
	p.evolve()
	assert.Equal(t, StageAdult, p.Stage)
}

func TestHealCapsAtMax(t *testing.T) {
	p := NewDefaultPet(1, "d")
	p.HealthPoints = 98

	require.True(t, p.Heal(HealPerWorkout))
	assert.Equal(t, MaxHealth, p.HealthPoints)

	// Already at max: no change.
	assert.False(t, p.Heal(HealPerWorkout))
	assert.Equal(t, MaxHealth, p.HealthPoints)
}

func TestHealRecoversSadPet(t *testing.T) {
	p := NewDefaultPet(1, "d")
	p.HealthPoints = 28
	p.CurrentAnimation = AnimSad

	p.Heal(HealPerWorkout)

	assert.Equal(t, 33, p.HealthPoints)
	assert.Equal(t, AnimIdle, p.CurrentAnimation)
}

func TestDecayToSadAndDeath(t *testing.T) {
	p := NewDefaultPet(1, "d")
	p.HealthPoints = 35

	p.Decay(DecayPerMissedDay)
	assert.Equal(t, 25, p.HealthPoints)
	assert.Equal(t, AnimSad, p.CurrentAnimation)
	assert.False(t, p.IsDead)

	p.HealthPoints = 10
	p.Decay(DecayPerMissedDay)
	assert.Equal(t, 0, p.HealthPoints)
	assert.True(t, p.IsDead)
	assert.Equal(t, AnimDead, p.CurrentAnimation)
}

func TestDeadPetIsFrozen(t *testing.T) {
	p := NewDefaultPet(1, "d")
	p.Decay(MaxHealth) // kill it
	require.True(t, p.IsDead)

	before := *p
	p.Decay(10)
	assert.False(t, p.AddXP(500))
	assert.False(t, p.Heal(50))
	p.RefreshStreakAnimation()

	assert.Equal(t, before.HealthPoints, p.HealthPoints)
	assert.Equal(t, before.Level, p.Level)
	assert.Equal(t, before.XP, p.XP)
	assert.Equal(t, AnimDead, p.CurrentAnimation)
}

func TestResurrect(t *testing.T) {
	p := NewDefaultPet(1, "d")

	// Not dead: conflict.
	assert.False(t, p.Resurrect())

	p.Decay(MaxHealth)
	require.True(t, p.IsDead)
	require.True(t, p.Resurrect())

	assert.Equal(t, ResurrectHealth, p.HealthPoints)
	assert.False(t, p.IsDead)
	assert.Equal(t, 1, p.ResurrectionCount)
	assert.Equal(t, AnimHappy, p.CurrentAnimation)
}

func TestRefreshStreakAnimation(t *testing.T) {
	p := NewDefaultPet(1, "d")

	p.CurrentStreak = 2
	p.RefreshStreakAnimation()
	assert.Equal(t, AnimHappy, p.CurrentAnimation)

	// Streak drops while healthy: idle.
	p.CurrentStreak = 1
	p.RefreshStreakAnimation()
	assert.Equal(t, AnimIdle, p.CurrentAnimation)

	// Streak drops while unhealthy: sad.
	p.CurrentAnimation = AnimHappy
	p.HealthPoints = 20
	p.RefreshStreakAnimation()
	assert.Equal(t, AnimSad, p.CurrentAnimation)
}

func TestSetHealthClampsAndReconciles(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*Pet)
		hp       int
		wantHP   int
		wantDead bool
		wantAnim PetAnimation
	}{
		{"clamps above max", func(p *Pet) {}, 150, MaxHealth, false, AnimIdle},
		{"zero kills", func(p *Pet) {}, 0, 0, true, AnimDead},
		{"negative clamps to dead", func(p *Pet) {}, -5, 0, true, AnimDead},
		{"revives dead pet", func(p *Pet) { p.Decay(MaxHealth) }, 40, 40, false, AnimHappy},
		{"low health saddens", func(p *Pet) {}, 10, 10, false, AnimSad},
		{"recovery returns sad to idle", func(p *Pet) { p.HealthPoints = 10; p.CurrentAnimation = AnimSad }, 80, 80, false, AnimIdle},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewDefaultPet(1, "d")
			tc.setup(p)
			p.SetHealth(tc.hp)
			assert.Equal(t, tc.wantHP, p.HealthPoints)
			assert.Equal(t, tc.wantDead, p.IsDead)
			assert.Equal(t, tc.wantAnim, p.CurrentAnimation)
		})
	}
}
