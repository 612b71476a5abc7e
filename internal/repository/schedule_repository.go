package repository

import (
	"context"
	"database/sql"

	"github.com/kayan2004/dracofit-backend/internal/model"
)

// ScheduleRepo provides access to the schedules and schedule_entries
// tables. A user's schedule is created lazily: the first read inserts
// the schedule row plus its seven rest-day entries in one transaction,
// so callers can always rely on all seven weekdays being present.
type ScheduleRepo struct{ DB *sql.DB }

func NewScheduleRepo(db *sql.DB) *ScheduleRepo { return &ScheduleRepo{DB: db} }

// GetOrCreate returns the user's base schedule with all seven entries,
// creating it when absent.
func (r *ScheduleRepo) GetOrCreate(ctx context.Context, userID uint64) (*model.WeeklySchedule, error) {
	s, err := r.getByUser(ctx, userID)
	if err == nil {
		return s, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}
	if err := r.createDefault(ctx, userID); err != nil {
		return nil, err
	}
	s, err = r.getByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *ScheduleRepo) getByUser(ctx context.Context, userID uint64) (*model.WeeklySchedule, error) {
	var s model.WeeklySchedule
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,user_id,name,created_at,updated_at FROM schedules WHERE user_id=? LIMIT 1",
		userID).Scan(&s.ID, &s.UserID, &s.Name, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx,
		`SELECT id,schedule_id,day_of_week,workout_plan_id,preferred_time,notes
		 FROM schedule_entries WHERE schedule_id=?`, s.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var e model.ScheduleEntry
		var planID sql.NullInt64
		var pref, notes sql.NullString
		if err := rows.Scan(&e.ID, &e.ScheduleID, &e.DayOfWeek, &planID, &pref, &notes); err != nil {
			return nil, err
		}
		if planID.Valid {
			v := uint64(planID.Int64)
			e.WorkoutPlanID = &v
		}
		if pref.Valid {
			e.PreferredTime = &pref.String
		}
		if notes.Valid {
			e.Notes = &notes.String
		}
		s.Entries = append(s.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &s, nil
}

// createDefault inserts the schedule row and one rest entry per weekday
// atomically. A concurrent creator losing the race on the unique
// user_id index is fine: the caller re-reads afterwards.
func (r *ScheduleRepo) createDefault(ctx context.Context, userID uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO schedules (user_id, name) VALUES (?, 'My Weekly Schedule')", userID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	for _, day := range model.AllWeekDays() {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO schedule_entries (schedule_id, day_of_week) VALUES (?,?)",
			id, day); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// UpdateEntry assigns (or clears, with nil values) the plan, preferred
// time and notes of the entry for one weekday.
func (r *ScheduleRepo) UpdateEntry(ctx context.Context, scheduleID uint64, day model.WeekDay, planID *uint64, preferredTime, notes *string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE schedule_entries SET workout_plan_id=?, preferred_time=?, notes=? WHERE schedule_id=? AND day_of_week=?",
		nullUint(planID), nullStr(preferredTime), nullStr(notes), scheduleID, day)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Zero can also mean no-change; confirm the entry exists.
		var id uint64
		err = r.DB.QueryRowContext(ctx,
			"SELECT id FROM schedule_entries WHERE schedule_id=? AND day_of_week=? LIMIT 1",
			scheduleID, day).Scan(&id)
		if err == sql.ErrNoRows {
			return ErrEntryNotFound
		}
		return err
	}
	return nil
}

// ResetEntries sets every entry of the schedule back to rest.
func (r *ScheduleRepo) ResetEntries(ctx context.Context, scheduleID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE schedule_entries SET workout_plan_id=NULL, preferred_time=NULL, notes=NULL WHERE schedule_id=?",
		scheduleID)
	return err
}

// UpdateName renames the schedule.
func (r *ScheduleRepo) UpdateName(ctx context.Context, scheduleID uint64, name string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE schedules SET name=? WHERE id=?", name, scheduleID)
	return err
}

func nullUint(v *uint64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullStr(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}
