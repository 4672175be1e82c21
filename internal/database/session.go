package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Session is a request-scoped handle to one database connection. It is
// created by Manager.Acquire and must be released exactly once. Sessions are
// never shared between requests; the owning request is the only user, so no
// locking is needed here.
type Session struct {
	conn     *sql.Conn
	tx       *sql.Tx
	released bool
}

// Exec runs a statement on the session and returns the result. Inside
// Manager.Run the statement executes on the open transaction, otherwise it
// autocommits on the connection.
func (s *Session) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if s.tx != nil {
		return s.tx.ExecContext(ctx, query, args...)
	}
	return s.conn.ExecContext(ctx, query, args...)
}

// Query runs a query on the session and returns the rows.
func (s *Session) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	if s.tx != nil {
		return s.tx.QueryContext(ctx, query, args...)
	}
	return s.conn.QueryContext(ctx, query, args...)
}

// QueryRow runs a single-row query on the session.
func (s *Session) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	if s.tx != nil {
		return s.tx.QueryRowContext(ctx, query, args...)
	}
	return s.conn.QueryRowContext(ctx, query, args...)
}

// Manager hands out request-scoped sessions and wraps units of work in
// commit-or-rollback semantics.
type Manager struct {
	db *DB
}

// NewManager creates a session manager on top of the database.
func NewManager(db *DB) *Manager {
	return &Manager{db: db}
}

// Acquire checks a dedicated connection out of the pool and returns it as a
// session. A failure to obtain the connection is reported as ErrUnavailable;
// it is the caller's decision how to surface it, and it is never retried
// here.
func (m *Manager) Acquire(ctx context.Context) (*Session, error) {
	conn, err := m.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &Session{conn: conn}, nil
}

// Run executes work inside a transaction on the session. On a nil return
// from work the transaction is committed; on any error it is rolled back and
// the error is returned unchanged. Run does not release the session, so two
// Run calls on the same session are two independent transactions. Operations
// that must be atomic together belong in the same work closure.
func (m *Manager) Run(ctx context.Context, s *Session, work func(s *Session) error) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	s.tx = tx
	defer func() {
		s.tx = nil
		// A panic in work must not leave the transaction open; roll it
		// back before the panic continues unwinding.
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("Failed to rollback transaction")
			}
			panic(p)
		}
	}()

	if err := work(s); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("Failed to rollback transaction")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Release returns the session's connection to the pool. It is safe to call
// on a nil or already-released session.
func (m *Manager) Release(s *Session) {
	if s == nil || s.released {
		return
	}
	s.released = true
	if err := s.conn.Close(); err != nil {
		log.Debug().Err(err).Msg("Failed to close session connection")
	}
}

// Transact is the acquire → run → release composition used by request
// handlers: one session for the lifetime of the unit of work, committed on
// success, rolled back on failure, released on every path.
func (m *Manager) Transact(ctx context.Context, work func(s *Session) error) error {
	s, err := m.Acquire(ctx)
	if err != nil {
		return err
	}
	defer m.Release(s)

	return m.Run(ctx, s, work)
}
