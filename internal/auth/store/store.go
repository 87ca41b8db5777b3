// Package store defines the data access contracts for the credential store.
// Concrete drivers live under drivers/.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/hallpass-io/hallpass/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Every mutation commits atomically
// per call; multi-step sequences that must not interleave (the lockout
// read-modify-write) go through WithTx.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn returns
	// nil and rolling back otherwise. Prefer this over Tx directly.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store with Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByUsername looks a user up during login; ErrNotFound when the
	// username is unknown.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByID fetches a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the username is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// RecordLoginFailure atomically increments failed_attempts and sets
	// last_failure_at. A single SQL statement, so parallel attempts never
	// lose an update.
	RecordLoginFailure(ctx context.Context, username string, at time.Time) error

	// ResetLoginFailures zeroes failed_attempts and clears last_failure_at.
	ResetLoginFailures(ctx context.Context, username string) error
}
