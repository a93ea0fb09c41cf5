package postgres

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
)

// SessionStore persists scs sessions in the sessions table. Column names
// (sid, sess, expire) are fixed by the persisted layout, which predates this
// implementation. Expired rows are reaped by the store's own background
// cleanup, not by the storage contract.
type SessionStore struct {
	db     *DB
	logger *slog.Logger

	stopCleanup chan struct{}
	stopOnce    sync.Once
}

// NewSessionStore creates a session store over an established pool. The stop
// channel is created here, not in StartCleanup, so a shutdown that races the
// reaper's startup still terminates it.
func NewSessionStore(db *DB, logger *slog.Logger) *SessionStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionStore{
		db:          db,
		logger:      logger.With(slog.String("component", "session_store")),
		stopCleanup: make(chan struct{}),
	}
}

// Find implements scs.Store. Expired rows are treated as absent even before
// the reaper removes them.
func (s *SessionStore) Find(token string) ([]byte, bool, error) {
	const q = `SELECT sess FROM sessions WHERE sid = $1 AND expire > now()`

	var data []byte
	err := s.db.Pool.QueryRow(context.Background(), q, token).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Commit implements scs.Store with an upsert keyed on sid.
func (s *SessionStore) Commit(token string, b []byte, expiry time.Time) error {
	const q = `
INSERT INTO sessions (sid, sess, expire)
VALUES ($1, $2, $3)
ON CONFLICT (sid) DO UPDATE SET sess = EXCLUDED.sess, expire = EXCLUDED.expire`

	_, err := s.db.Pool.Exec(context.Background(), q, token, b, expiry)
	return err
}

// Delete implements scs.Store. Idempotent.
func (s *SessionStore) Delete(token string) error {
	const q = `DELETE FROM sessions WHERE sid = $1`
	_, err := s.db.Pool.Exec(context.Background(), q, token)
	return err
}

// StartCleanup reaps expired sessions every interval until StopCleanup is
// called. Run it in its own goroutine. Returns immediately if StopCleanup
// already ran.
func (s *SessionStore) StartCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.deleteExpired(); err != nil {
				s.logger.Error("session cleanup failed", slog.String("error", err.Error()))
			}
		case <-s.stopCleanup:
			return
		}
	}
}

// StopCleanup terminates the reaper started by StartCleanup. Safe to call
// more than once, and safe to call before StartCleanup.
func (s *SessionStore) StopCleanup() {
	s.stopOnce.Do(func() { close(s.stopCleanup) })
}

func (s *SessionStore) deleteExpired() error {
	const q = `DELETE FROM sessions WHERE expire < now()`
	tag, err := s.db.Pool.Exec(context.Background(), q)
	if err != nil {
		return err
	}
	if n := tag.RowsAffected(); n > 0 {
		s.logger.Debug("expired sessions reaped", slog.Int64("count", n))
	}
	return nil
}
