package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/kayan2004/dracofit-backend/internal/model"
)

// RescheduleRepo provides access to the temporary_reschedules table.
// Uniqueness per (user, plan, original day, week) is enforced by the
// allocator's Exists check rather than a database constraint, matching
// how the rows are produced by a single daily job.
type RescheduleRepo struct{ DB *sql.DB }

func NewRescheduleRepo(db *sql.DB) *RescheduleRepo { return &RescheduleRepo{DB: db} }

const reschedCols = "id,user_id,workout_plan_id,original_day_of_week,rescheduled_to_day_of_week,week_start_date,created_at"

// Exists reports whether a reschedule row is already present for the
// given user, plan, original day and week.
func (r *RescheduleRepo) Exists(ctx context.Context, userID, planID uint64, originalDay model.WeekDay, weekStart time.Time) (bool, error) {
	var id uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM temporary_reschedules WHERE user_id=? AND workout_plan_id=? AND original_day_of_week=? AND week_start_date=? LIMIT 1",
		userID, planID, originalDay, weekStart).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create inserts a reschedule row and populates its ID.
func (r *RescheduleRepo) Create(ctx context.Context, t *model.TemporaryReschedule) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO temporary_reschedules (user_id, workout_plan_id, original_day_of_week, rescheduled_to_day_of_week, week_start_date) VALUES (?,?,?,?,?)",
		t.UserID, t.WorkoutPlanID, t.OriginalDayOfWeek, t.RescheduledToDay, t.WeekStartDate)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// ListForWeek returns the user's reschedules for the week starting at
// weekStart, oldest first. The weekly schedule view merges these.
func (r *RescheduleRepo) ListForWeek(ctx context.Context, userID uint64, weekStart time.Time) ([]model.TemporaryReschedule, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+reschedCols+" FROM temporary_reschedules WHERE user_id=? AND week_start_date=? ORDER BY created_at",
		userID, weekStart)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.TemporaryReschedule
	for rows.Next() {
		var t model.TemporaryReschedule
		if err := rows.Scan(&t.ID, &t.UserID, &t.WorkoutPlanID, &t.OriginalDayOfWeek,
			&t.RescheduledToDay, &t.WeekStartDate, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// DeleteOlderThan purges rows whose week_start_date precedes cutoff and
// returns how many were removed.
func (r *RescheduleRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM temporary_reschedules WHERE week_start_date < ?", cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
