package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/kayan2004/dracofit-backend/internal/clock"
	"github.com/kayan2004/dracofit-backend/internal/model"
	"github.com/kayan2004/dracofit-backend/internal/repository"
)

// PetService owns the pet lifecycle: creation, XP, resurrection, the
// restart-journey wipe, and the daily health decay sweep.
type PetService struct {
	pets      PetStore
	schedules ScheduleStore
	users     UserDirectory
	clock     clock.Clock
	log       *zap.SugaredLogger
}

func NewPetService(pets PetStore, schedules ScheduleStore, users UserDirectory, clk clock.Clock, log *zap.SugaredLogger) *PetService {
	return &PetService{pets: pets, schedules: schedules, users: users, clock: clk, log: log}
}

// Create makes a default pet for the user. Returns
// repository.ErrPetExists when the user already has one.
func (s *PetService) Create(ctx context.Context, userID uint64, name string) (model.Pet, error) {
	pet := model.NewDefaultPet(userID, name)
	if err := s.pets.Create(ctx, pet); err != nil {
		return model.Pet{}, err
	}
	s.log.Infow("pet created", "user_id", userID, "pet_id", pet.ID, "name", pet.Name)
	return *pet, nil
}

func (s *PetService) FindByUser(ctx context.Context, userID uint64) (model.Pet, error) {
	return s.pets.GetByUser(ctx, userID)
}

// Rename changes the pet's display name.
func (s *PetService) Rename(ctx context.Context, userID uint64, name string) (model.Pet, error) {
	return s.pets.Mutate(ctx, userID, func(p *model.Pet) error {
		p.Name = name
		return nil
	})
}

// SetHealth force-sets health points, clamped to [0, max]. Used by the
// admin surface; crossing zero kills the pet and leaving zero revives
// it.
func (s *PetService) SetHealth(ctx context.Context, userID uint64, hp int) (model.Pet, error) {
	return s.pets.Mutate(ctx, userID, func(p *model.Pet) error {
		p.SetHealth(hp)
		return nil
	})
}

// AddXP grants experience and applies any level-ups and evolutions.
// Dead pets gain nothing.
func (s *PetService) AddXP(ctx context.Context, userID uint64, amount int) (model.Pet, error) {
	return s.pets.Mutate(ctx, userID, func(p *model.Pet) error {
		if p.IsDead {
			return nil
		}
		if p.AddXP(amount) {
			s.log.Infow("pet leveled up", "user_id", userID, "pet_id", p.ID, "level", p.Level, "stage", p.Stage)
		}
		return nil
	})
}

// Resurrect revives a dead pet at half health with streaks cleared.
// Returns repository.ErrPetNotDead when the pet is alive.
func (s *PetService) Resurrect(ctx context.Context, userID uint64) (model.Pet, error) {
	return s.pets.Mutate(ctx, userID, func(p *model.Pet) error {
		if !p.Resurrect() {
			return repository.ErrPetNotDead
		}
		s.log.Infow("pet resurrected", "user_id", userID, "pet_id", p.ID)
		return nil
	})
}

// RestartJourney deletes the user's pet and replaces it with a fresh
// default one, keeping the old name.
func (s *PetService) RestartJourney(ctx context.Context, userID uint64) (model.Pet, error) {
	old, err := s.pets.GetByUser(ctx, userID)
	if err != nil {
		return model.Pet{}, err
	}
	if err := s.pets.DeleteByUser(ctx, userID); err != nil {
		return model.Pet{}, err
	}
	fresh := model.NewDefaultPet(userID, old.Name)
	if err := s.pets.Create(ctx, fresh); err != nil {
		return model.Pet{}, err
	}
	s.log.Infow("pet journey restarted", "user_id", userID, "pet_id", fresh.ID)
	return *fresh, nil
}

// DailyHealthDecayForPet docks health when yesterday was a scheduled
// workout day and the user did not complete a workout on it. Dead pets
// are skipped, and a missing schedule skips the pet rather than
// punishing it.
func (s *PetService) DailyHealthDecayForPet(ctx context.Context, userID uint64) error {
	schedule, err := s.schedules.GetOrCreate(ctx, userID)
	if err != nil {
		s.log.Warnw("decay: schedule unavailable, skipping pet", "user_id", userID, "error", err)
		return nil
	}

	yesterday := s.clock.Today().AddDate(0, 0, -1)
	if !schedule.IsWorkoutDay(yesterday) {
		return nil
	}

	_, err = s.pets.Mutate(ctx, userID, func(p *model.Pet) error {
		if p.IsDead {
			return nil
		}
		// A completion on or after yesterday means yesterday was not
		// missed.
		if p.LastStreakDate != nil && !clock.Midnight(*p.LastStreakDate).Before(clock.Midnight(yesterday)) {
			return nil
		}
		p.Decay(model.DecayPerMissedDay)
		s.log.Infow("decay: missed scheduled workout",
			"user_id", userID, "pet_id", p.ID,
			"health", p.HealthPoints, "dead", p.IsDead)
		return nil
	})
	return err
}

// ApplyDailyHealthDecayToAllActivePets runs the decay check for every
// living pet. Per-pet failures are logged and do not stop the sweep.
func (s *PetService) ApplyDailyHealthDecayToAllActivePets(ctx context.Context) {
	pets, err := s.pets.ListActive(ctx)
	if err != nil {
		s.log.Errorw("decay: listing active pets failed", "error", err)
		return
	}

	s.log.Infow("decay: sweep started", "pets", len(pets))
	var decayed, failed int
	for _, p := range pets {
		if err := s.DailyHealthDecayForPet(ctx, p.UserID); err != nil {
			if errors.Is(err, repository.ErrPetNotFound) {
				continue
			}
			failed++
			s.log.Errorw("decay: pet check failed", "user_id", p.UserID, "pet_id", p.ID, "error", err)
			continue
		}
		decayed++
	}
	s.log.Infow("decay: sweep finished", "checked", decayed, "failed", failed)
}
