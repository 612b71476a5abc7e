package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/kayan2004/dracofit-backend/internal/model"
)

// WorkoutLogRepo provides access to the workout_logs table. Logs are
// append-only once completed; the streak and reschedule logic consult
// them only through their existence and end_time date.
type WorkoutLogRepo struct{ DB *sql.DB }

func NewWorkoutLogRepo(db *sql.DB) *WorkoutLogRepo { return &WorkoutLogRepo{DB: db} }

const logCols = "id,user_id,workout_plan_id,start_time,end_time,xp_earned,created_at"

func scanLog(scan func(dest ...any) error) (model.WorkoutLog, error) {
	var l model.WorkoutLog
	var end sql.NullTime
	err := scan(&l.ID, &l.UserID, &l.WorkoutPlanID, &l.StartTime, &end, &l.XPEarned, &l.CreatedAt)
	if err == sql.ErrNoRows {
		return l, ErrLogNotFound
	}
	if err != nil {
		return l, err
	}
	if end.Valid {
		t := end.Time
		l.EndTime = &t
	}
	return l, nil
}

// Create inserts a new in-progress log (no end time yet).
func (r *WorkoutLogRepo) Create(ctx context.Context, l *model.WorkoutLog) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO workout_logs (user_id, workout_plan_id, start_time, xp_earned) VALUES (?,?,?,0)",
		l.UserID, l.WorkoutPlanID, l.StartTime)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = uint64(id)
	return nil
}

// GetByID fetches one log owned by userID.
func (r *WorkoutLogRepo) GetByID(ctx context.Context, id, userID uint64) (model.WorkoutLog, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+logCols+" FROM workout_logs WHERE id=? AND user_id=? LIMIT 1", id, userID)
	return scanLog(row.Scan)
}

// ListByUser returns the user's logs, most recently started first.
func (r *WorkoutLogRepo) ListByUser(ctx context.Context, userID uint64) ([]model.WorkoutLog, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+logCols+" FROM workout_logs WHERE user_id=? ORDER BY start_time DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLogs(rows)
}

// Finish stamps the end time and earned XP on an in-progress log.
func (r *WorkoutLogRepo) Finish(ctx context.Context, id uint64, endTime time.Time, xp int) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE workout_logs SET end_time=?, xp_earned=? WHERE id=?", endTime, xp, id)
	return err
}

// Delete removes a log the user owns.
func (r *WorkoutLogRepo) Delete(ctx context.Context, id, userID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM workout_logs WHERE id=? AND user_id=?", id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrLogNotFound
	}
	return nil
}

// FindOpen returns the user's in-progress log for a plan, if any.
func (r *WorkoutLogRepo) FindOpen(ctx context.Context, userID, planID uint64) (model.WorkoutLog, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+logCols+" FROM workout_logs WHERE user_id=? AND workout_plan_id=? AND end_time IS NULL LIMIT 1",
		userID, planID)
	return scanLog(row.Scan)
}

// CompletedInRange returns logs whose end_time falls inside
// [start, end), optionally filtered to one plan (planID > 0). The end
// bound is exclusive so callers can pass midnights without a session
// finishing exactly on the boundary counting toward both days. The
// skip detection job uses this to decide whether yesterday's scheduled
// workout actually happened.
func (r *WorkoutLogRepo) CompletedInRange(ctx context.Context, userID uint64, start, end time.Time, planID uint64) ([]model.WorkoutLog, error) {
	q := "SELECT " + logCols + " FROM workout_logs WHERE user_id=? AND end_time IS NOT NULL AND end_time >= ? AND end_time < ?"
	args := []any{userID, start, end}
	if planID > 0 {
		q += " AND workout_plan_id=?"
		args = append(args, planID)
	}
	q += " ORDER BY end_time DESC"

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLogs(rows)
}

func collectLogs(rows *sql.Rows) ([]model.WorkoutLog, error) {
	var logs []model.WorkoutLog
	for rows.Next() {
		l, err := scanLog(rows.Scan)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
