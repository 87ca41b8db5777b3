package sqlite

import (
	"context"
	"time"

	"github.com/hallpass-io/hallpass/internal/auth/domain"
	"github.com/hallpass-io/hallpass/internal/auth/store"
)

type usersRepo struct {
	q querier
}

const userColumns = `id, username, password_hash, failed_attempts, last_failure_at, created_at, updated_at`

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash) VALUES (?, ?, ?)`,
		u.ID, u.Username, u.PasswordHash)
	return mapConflict(err)
}

func (r *usersRepo) RecordLoginFailure(ctx context.Context, username string, at time.Time) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users
		    SET failed_attempts = failed_attempts + 1,
		        last_failure_at = ?,
		        updated_at = CURRENT_TIMESTAMP
		  WHERE username = ?`,
		at.UTC(), username)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) ResetLoginFailures(ctx context.Context, username string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users
		    SET failed_attempts = 0,
		        last_failure_at = NULL,
		        updated_at = CURRENT_TIMESTAMP
		  WHERE username = ?`,
		username)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res interface{ RowsAffected() (int64, error) }) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
