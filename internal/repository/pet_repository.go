package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/kayan2004/dracofit-backend/internal/model"
)

// PetRepo provides access to the pets table. Every mutation of an
// existing pet goes through Mutate, which locks the user's single pet
// row for the duration of the read-modify-write so concurrent workout
// completions, XP awards and decay ticks for the same user serialize
// instead of losing updates. Different users proceed concurrently.
type PetRepo struct{ DB *sql.DB }

func NewPetRepo(db *sql.DB) *PetRepo { return &PetRepo{DB: db} }

const petCols = "id,user_id,name,level,xp,stage,health_points,current_streak,longest_streak,last_streak_date,current_animation,is_dead,resurrection_count,created_at,updated_at"

func scanPet(scan func(dest ...any) error) (model.Pet, error) {
	var p model.Pet
	var lastStreak sql.NullTime
	err := scan(&p.ID, &p.UserID, &p.Name, &p.Level, &p.XP, &p.Stage,
		&p.HealthPoints, &p.CurrentStreak, &p.LongestStreak, &lastStreak,
		&p.CurrentAnimation, &p.IsDead, &p.ResurrectionCount,
		&p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return p, ErrPetNotFound
	}
	if err != nil {
		return p, err
	}
	if lastStreak.Valid {
		t := lastStreak.Time
		p.LastStreakDate = &t
	}
	return p, nil
}

// GetByUser fetches the pet owned by userID.
func (r *PetRepo) GetByUser(ctx context.Context, userID uint64) (model.Pet, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+petCols+" FROM pets WHERE user_id=? LIMIT 1", userID)
	return scanPet(row.Scan)
}

// Create inserts a new pet row. The unique index on user_id enforces
// the one-pet-per-user rule; duplicate inserts map to ErrPetExists.
func (r *PetRepo) Create(ctx context.Context, p *model.Pet) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO pets (user_id, name, level, xp, stage, health_points,
		   current_streak, longest_streak, last_streak_date, current_animation,
		   is_dead, resurrection_count)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		p.UserID, p.Name, p.Level, p.XP, p.Stage, p.HealthPoints,
		p.CurrentStreak, p.LongestStreak, nullTime(p.LastStreakDate),
		p.CurrentAnimation, p.IsDead, p.ResurrectionCount)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrPetExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// DeleteByUser removes the user's pet row, if any. Used by the restart
// journey flow before creating a fresh default pet.
func (r *PetRepo) DeleteByUser(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM pets WHERE user_id=?", userID)
	return err
}

// Mutate loads the user's pet under SELECT ... FOR UPDATE, applies fn
// to it and writes the result back before committing. fn returning an
// error rolls the transaction back and the error is returned unchanged.
func (r *PetRepo) Mutate(ctx context.Context, userID uint64, fn func(p *model.Pet) error) (model.Pet, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Pet{}, err
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx,
		"SELECT "+petCols+" FROM pets WHERE user_id=? LIMIT 1 FOR UPDATE", userID)
	p, err := scanPet(row.Scan)
	if err != nil {
		return model.Pet{}, err
	}

	if err = fn(&p); err != nil {
		return model.Pet{}, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE pets SET name=?, level=?, xp=?, stage=?, health_points=?,
		   current_streak=?, longest_streak=?, last_streak_date=?,
		   current_animation=?, is_dead=?, resurrection_count=?
		 WHERE id=?`,
		p.Name, p.Level, p.XP, p.Stage, p.HealthPoints,
		p.CurrentStreak, p.LongestStreak, nullTime(p.LastStreakDate),
		p.CurrentAnimation, p.IsDead, p.ResurrectionCount, p.ID)
	if err != nil {
		return model.Pet{}, err
	}
	if err = tx.Commit(); err != nil {
		return model.Pet{}, err
	}
	return p, nil
}

// ListActive returns all pets that are not dead, for the daily decay
// batch.
func (r *PetRepo) ListActive(ctx context.Context) ([]model.Pet, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+petCols+" FROM pets WHERE is_dead=0 ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var pets []model.Pet
	for rows.Next() {
		p, err := scanPet(rows.Scan)
		if err != nil {
			return nil, err
		}
		pets = append(pets, p)
	}
	return pets, rows.Err()
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
