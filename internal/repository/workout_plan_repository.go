package repository

import (
	"context"
	"database/sql"

	"github.com/kayan2004/dracofit-backend/internal/model"
)

// WorkoutPlanRepo provides CRUD over the workout_plans table. Plans are
// scoped to their owning user; lookups always filter by user_id so one
// user can never read or mutate another's plans.
type WorkoutPlanRepo struct{ DB *sql.DB }

func NewWorkoutPlanRepo(db *sql.DB) *WorkoutPlanRepo { return &WorkoutPlanRepo{DB: db} }

const planCols = "id,user_id,name,description,type,duration_minutes,exercise_count,created_at,updated_at"

func scanPlan(scan func(dest ...any) error) (model.WorkoutPlan, error) {
	var p model.WorkoutPlan
	err := scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.Type,
		&p.DurationMinutes, &p.ExerciseCount, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return p, ErrPlanNotFound
	}
	return p, err
}

// Create inserts a plan and populates its ID.
func (r *WorkoutPlanRepo) Create(ctx context.Context, p *model.WorkoutPlan) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO workout_plans (user_id, name, description, type, duration_minutes, exercise_count) VALUES (?,?,?,?,?,?)",
		p.UserID, p.Name, p.Description, p.Type, p.DurationMinutes, p.ExerciseCount)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// GetByID fetches one plan owned by userID.
func (r *WorkoutPlanRepo) GetByID(ctx context.Context, id, userID uint64) (model.WorkoutPlan, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+planCols+" FROM workout_plans WHERE id=? AND user_id=? LIMIT 1", id, userID)
	return scanPlan(row.Scan)
}

// ListByUser returns the user's plans, newest first.
func (r *WorkoutPlanRepo) ListByUser(ctx context.Context, userID uint64) ([]model.WorkoutPlan, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+planCols+" FROM workout_plans WHERE user_id=? ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var plans []model.WorkoutPlan
	for rows.Next() {
		p, err := scanPlan(rows.Scan)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// Update rewrites the mutable columns of a plan the user owns.
func (r *WorkoutPlanRepo) Update(ctx context.Context, p *model.WorkoutPlan) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE workout_plans SET name=?, description=?, type=?, duration_minutes=?, exercise_count=? WHERE id=? AND user_id=?",
		p.Name, p.Description, p.Type, p.DurationMinutes, p.ExerciseCount, p.ID, p.UserID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, p.ID, p.UserID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a plan the user owns. Schedule entries referencing it
// fall back to rest via ON DELETE SET NULL.
func (r *WorkoutPlanRepo) Delete(ctx context.Context, id, userID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM workout_plans WHERE id=? AND user_id=?", id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPlanNotFound
	}
	return nil
}
