package repository

import (
	"context"
	"database/sql"

	"github.com/kayan2004/dracofit-backend/internal/model"
)

// OutboxRepo reads and settles user_events rows. Rows are written by
// the signup transaction (see UserRepo.Register); the relay fetches
// pending rows, publishes them to the broker and marks them published.
type OutboxRepo struct{ DB *sql.DB }

func NewOutboxRepo(db *sql.DB) *OutboxRepo { return &OutboxRepo{DB: db} }

// Pending returns up to limit unpublished events, oldest first.
func (r *OutboxRepo) Pending(ctx context.Context, limit int) ([]model.UserEvent, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,user_id,event_type,payload,published_at,created_at FROM user_events WHERE published_at IS NULL ORDER BY id LIMIT ?",
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var events []model.UserEvent
	for rows.Next() {
		var e model.UserEvent
		var pub sql.NullTime
		if err := rows.Scan(&e.ID, &e.UserID, &e.EventType, &e.Payload, &pub, &e.CreatedAt); err != nil {
			return nil, err
		}
		if pub.Valid {
			t := pub.Time
			e.PublishedAt = &t
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// MarkPublished stamps the event as delivered to the broker.
func (r *OutboxRepo) MarkPublished(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE user_events SET published_at=NOW() WHERE id=? AND published_at IS NULL", id)
	return err
}
