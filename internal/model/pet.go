package model

import "time"

// Tunables for the pet lifecycle. Health is always clamped to
// [0, MaxHealth]; the XP threshold for the next level is level*XPPerLevel.
const (
	MaxHealth         = 100
	HealPerWorkout    = 5
	DecayPerMissedDay = 10
	SadHealthBelow    = 30 // below this the pet looks sad
	XPPerLevel        = 100
	TeenAtLevel       = 5
	AdultAtLevel      = 10
	ResurrectHealth   = MaxHealth / 2
)

// PetStage is the evolution stage. Stages only ever advance.
type PetStage string

const (
	StageBaby  PetStage = "baby"
	StageTeen  PetStage = "teen"
	StageAdult PetStage = "adult"
)

// PetAnimation is the mood/animation shown by the client.
type PetAnimation string

const (
	AnimIdle  PetAnimation = "idle"
	AnimHappy PetAnimation = "happy"
	AnimSad   PetAnimation = "sad"
	AnimDead  PetAnimation = "dead"
)

// Pet is the per-user virtual pet, one row per user. All state
// transitions live on this type so they can be exercised without a
// database; services persist the result under a row lock.
//
// Invariants:
//   - HealthPoints ∈ [0, MaxHealth]
//   - HealthPoints == 0 ⟺ IsDead ⟺ CurrentAnimation == dead
//   - LongestStreak ≥ CurrentStreak
//   - Stage never regresses
type Pet struct {
	ID                uint64       `json:"id"`
	UserID            uint64       `json:"user_id"`
	Name              string       `json:"name"`
	Level             int          `json:"level"`
	XP                int          `json:"xp"`
	Stage             PetStage     `json:"stage"`
	HealthPoints      int          `json:"health_points"`
	CurrentStreak     int          `json:"current_streak"`
	LongestStreak     int          `json:"longest_streak"`
	LastStreakDate    *time.Time   `json:"last_streak_date"`
	CurrentAnimation  PetAnimation `json:"current_animation"`
	IsDead            bool         `json:"is_dead"`
	ResurrectionCount int          `json:"resurrection_count"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// NewDefaultPet returns the freshly-hatched pet a user starts (and
// restarts) with.
func NewDefaultPet(userID uint64, name string) *Pet {
	return &Pet{
		UserID:           userID,
		Name:             name,
		Level:            1,
		XP:               0,
		Stage:            StageBaby,
		HealthPoints:     MaxHealth,
		CurrentStreak:    0,
		LongestStreak:    0,
		CurrentAnimation: AnimIdle,
	}
}

// Heal raises health by amount, capped at MaxHealth. A sad pet that
// recovers to SadHealthBelow or more goes back to idle. Dead pets are
// frozen and do not heal. Reports whether health actually changed.
func (p *Pet) Heal(amount int) bool {
	if p.IsDead || amount <= 0 || p.HealthPoints >= MaxHealth {
		return false
	}
	p.HealthPoints += amount
	if p.HealthPoints > MaxHealth {
		p.HealthPoints = MaxHealth
	}
	if p.CurrentAnimation == AnimSad && p.HealthPoints >= SadHealthBelow {
		p.CurrentAnimation = AnimIdle
	}
	return true
}

// Decay lowers health by amount, flooring at zero. Reaching zero kills
// the pet; dropping under SadHealthBelow turns it sad. Dead pets are
// frozen and do not decay further.
func (p *Pet) Decay(amount int) {
	if p.IsDead || amount <= 0 {
		return
	}
	p.HealthPoints -= amount
	if p.HealthPoints <= 0 {
		p.HealthPoints = 0
		p.IsDead = true
		p.CurrentAnimation = AnimDead
		return
	}
	if p.HealthPoints < SadHealthBelow {
		p.CurrentAnimation = AnimSad
	}
}

// AddXP grants XP and applies leveling: while xp ≥ level*XPPerLevel the
// threshold is subtracted and the level increments. Any level-up makes
// the pet happy and may evolve it (baby→teen at TeenAtLevel, teen→adult
// at AdultAtLevel). No-op on dead pets. Reports whether a level-up
// happened.
func (p *Pet) AddXP(amount int) bool {
	if p.IsDead || amount <= 0 {
		return false
	}
	p.XP += amount
	leveled := false
	for p.XP >= p.Level*XPPerLevel {
		p.XP -= p.Level * XPPerLevel
		p.Level++
		leveled = true
		p.evolve()
	}
	if leveled {
		p.CurrentAnimation = AnimHappy
	}
	return leveled
}

// evolve advances the stage when a level threshold is reached. Checked
// after every level increment; never regresses.
func (p *Pet) evolve() {
	switch {
	case p.Level >= AdultAtLevel && p.Stage == StageTeen:
		p.Stage = StageAdult
	case p.Level >= TeenAtLevel && p.Stage == StageBaby:
		p.Stage = StageTeen
	}
}

// RefreshStreakAnimation applies the streak-driven mood: a streak of 2+
// means happy; when the streak falls back under 2 a previously happy pet
// reverts to sad (low health) or idle. Dead pets keep the dead animation.
func (p *Pet) RefreshStreakAnimation() {
	if p.IsDead {
		return
	}
	if p.CurrentStreak >= 2 {
		p.CurrentAnimation = AnimHappy
		return
	}
	if p.CurrentAnimation == AnimHappy {
		if p.HealthPoints < SadHealthBelow {
			p.CurrentAnimation = AnimSad
		} else {
			p.CurrentAnimation = AnimIdle
		}
	}
}

// Resurrect revives a dead pet at half health. Reports false when the
// pet is not dead; callers surface that as a conflict.
func (p *Pet) Resurrect() bool {
	if !p.IsDead {
		return false
	}
	p.HealthPoints = ResurrectHealth
	p.IsDead = false
	p.ResurrectionCount++
	p.CurrentAnimation = AnimHappy
	return true
}

// SetHealth clamps hp into [0, MaxHealth] and reconciles the life and
// animation state with the new value: zero kills, a positive value
// revives a dead pet (happy), low health saddens, recovered health
// returns a sad pet to idle.
func (p *Pet) SetHealth(hp int) {
	if hp < 0 {
		hp = 0
	}
	if hp > MaxHealth {
		hp = MaxHealth
	}
	p.HealthPoints = hp

	if p.HealthPoints == 0 {
		p.IsDead = true
		p.CurrentAnimation = AnimDead
		return
	}
	if p.IsDead {
		p.IsDead = false
		p.CurrentAnimation = AnimHappy
		return
	}
	if p.HealthPoints < SadHealthBelow && p.CurrentAnimation != AnimSad {
		p.CurrentAnimation = AnimSad
	} else if p.HealthPoints >= SadHealthBelow && p.CurrentAnimation == AnimSad {
		p.CurrentAnimation = AnimIdle
	}
}
