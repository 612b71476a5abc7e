package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/kayan2004/dracofit-backend/internal/model"
	"github.com/kayan2004/dracofit-backend/internal/utils"
)

// UserRepo provides access to the users table and the signup
// transaction. Registration must atomically write the user, its email
// verification token and a user.created outbox row; pet creation then
// happens asynchronously off the outbox and is allowed to fail and
// retry independently.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = "id,username,email,password_hash,role,is_email_verified,verification_token,verification_token_expires,created_at,updated_at"

// Register inserts the user, its verification token and an outbox row
// of the given event type in one transaction and returns the new user
// ID. eventPayload is called with the generated id to build the JSON
// body stored in the outbox. Duplicate email/username map to
// ErrEmailExists/ErrUsernameExists.
func (r *UserRepo) Register(ctx context.Context, username, email, password string, cost int, verifyToken string, verifyExpires time.Time, eventType string, eventPayload func(userID uint64) ([]byte, error)) (uint64, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, role, verification_token, verification_token_expires) VALUES (?,?,?,?,?,?)",
		username, email, hash, "USER", verifyToken, verifyExpires)
	if err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "1062") {
			if strings.Contains(low, "username") {
				return 0, ErrUsernameExists
			}
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	uid := uint64(id)

	payload, err := eventPayload(uid)
	if err != nil {
		return 0, err
	}
	if _, err = tx.ExecContext(ctx,
		"INSERT INTO user_events (user_id, event_type, payload) VALUES (?,?,?)",
		uid, eventType, payload); err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return uid, nil
}

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	var token sql.NullString
	var tokenExp sql.NullTime
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role,
		&u.IsEmailVerified, &token, &tokenExp, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return u, ErrUserNotFound
	}
	if err != nil {
		return u, err
	}
	if token.Valid {
		u.VerificationToken = &token.String
	}
	if tokenExp.Valid {
		u.VerificationTokenExpires = &tokenExp.Time
	}
	return u, nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE id=? LIMIT 1", id))
}

// ListIDs returns every user id. The daily jobs iterate this set.
func (r *UserRepo) ListIDs(ctx context.Context) ([]uint64, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// MarkEmailVerified clears the verification token and flags the user.
func (r *UserRepo) MarkEmailVerified(ctx context.Context, token string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET is_email_verified=1, verification_token=NULL, verification_token_expires=NULL WHERE verification_token=? AND verification_token_expires > NOW()",
		token)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}
