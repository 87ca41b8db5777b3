package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hallpass-io/hallpass/internal/auth/store"
	"github.com/hallpass-io/hallpass/internal/auth/store/drivers/sqlite"
)

const testPassword = "Str0ng!Pw"

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func registerTestUser(t *testing.T, st store.Store, username string) {
	t.Helper()

	reg := &RegisterService{Store: st}
	_, err := reg.Register(context.Background(), username, testPassword)
	require.NoError(t, err)
}

func TestLoginInvalidInput(t *testing.T) {
	t.Parallel()

	svc := &LoginService{Store: newTestStore(t)}
	ctx := context.Background()

	_, err := svc.Login(ctx, "", testPassword)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Login(ctx, "alice", "")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestLoginUnknownUserAndWrongPasswordAreIndistinguishable(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	registerTestUser(t, st, "alice")
	svc := &LoginService{Store: st}
	ctx := context.Background()

	_, unknownErr := svc.Login(ctx, "nobody", testPassword)
	_, mismatchErr := svc.Login(ctx, "alice", "wrong-password")

	require.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	require.ErrorIs(t, mismatchErr, ErrInvalidCredentials)
	require.Equal(t, unknownErr.Error(), mismatchErr.Error(),
		"error text must not disclose whether the username exists")
}

func TestLoginSuccessKeepsCounterAtZero(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	registerTestUser(t, st, "alice")
	svc := &LoginService{Store: st}
	ctx := context.Background()

	u, err := svc.Login(ctx, "alice", testPassword)
	require.NoError(t, err)
	require.Equal(t, "alice", u.Username)

	stored, err := st.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, 0, stored.FailedAttempts)
	require.Nil(t, stored.LastFailureAt)
}

func TestLoginLockoutAfterThresholdFailures(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	registerTestUser(t, st, "alice")
	svc := &LoginService{Store: st}
	ctx := context.Background()

	// Five failures; every one of them, including the threshold-crossing
	// fifth, reports a generic mismatch rather than a lockout.
	for i := 0; i < DefaultLockoutThreshold; i++ {
		_, err := svc.Login(ctx, "alice", "wrong-password")
		require.ErrorIs(t, err, ErrInvalidCredentials, "attempt %d", i+1)
		require.NotErrorIs(t, err, ErrAccountLocked, "attempt %d", i+1)
	}

	// The sixth attempt is rejected outright, correct password or not.
	_, err := svc.Login(ctx, "alice", testPassword)
	require.ErrorIs(t, err, ErrAccountLocked)

	var locked *AccountLockedError
	require.ErrorAs(t, err, &locked)
	require.Greater(t, locked.RetryAfter, time.Duration(0))
	require.LessOrEqual(t, locked.RetryAfter, DefaultLockoutWindow)

	// The stored hash was never consulted: the counter did not move.
	stored, err2 := st.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err2)
	require.Equal(t, DefaultLockoutThreshold, stored.FailedAttempts)
}

func TestLoginLockoutExpiresAndResetsCounter(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	registerTestUser(t, st, "alice")

	now := time.Now().UTC()
	svc := &LoginService{Store: st, Now: func() time.Time { return now }}
	ctx := context.Background()

	for i := 0; i < DefaultLockoutThreshold; i++ {
		_, err := svc.Login(ctx, "alice", "wrong-password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}

	_, err := svc.Login(ctx, "alice", testPassword)
	require.ErrorIs(t, err, ErrAccountLocked)

	// Advance past the lockout window; the next correct attempt succeeds
	// and the counter is back to zero.
	now = now.Add(DefaultLockoutWindow + time.Second)

	u, err := svc.Login(ctx, "alice", testPassword)
	require.NoError(t, err)
	require.Equal(t, "alice", u.Username)

	stored, err := st.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, 0, stored.FailedAttempts)
	require.Nil(t, stored.LastFailureAt)
}

func TestLoginLockoutExpiryWithWrongPasswordStartsOver(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	registerTestUser(t, st, "alice")

	now := time.Now().UTC()
	svc := &LoginService{Store: st, Now: func() time.Time { return now }}
	ctx := context.Background()

	for i := 0; i < DefaultLockoutThreshold; i++ {
		_, err := svc.Login(ctx, "alice", "wrong-password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}

	now = now.Add(DefaultLockoutWindow + time.Second)

	// Counter resets before the comparison, then the mismatch records a
	// fresh first failure.
	_, err := svc.Login(ctx, "alice", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	stored, err := st.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, 1, stored.FailedAttempts)
}

func TestLoginConcurrentFailuresNeverUndercount(t *testing.T) {
	st := newTestStore(t)
	registerTestUser(t, st, "alice")
	svc := &LoginService{Store: st, LockoutThreshold: 100}
	ctx := context.Background()

	const attempts = 10
	var wg sync.WaitGroup
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Login(ctx, "alice", "wrong-password")
			require.ErrorIs(t, err, ErrInvalidCredentials)
		}()
	}
	wg.Wait()

	stored, err := st.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, attempts, stored.FailedAttempts,
		"parallel attempts must count exactly like sequential ones")
}
