package database

import (
	"context"
	"database/sql"
	"log/slog"
	"sync"
)

// Session is a request-scoped unit of database work backed by a single
// pooled connection. It is exclusively owned by one request context and
// must never be shared across requests. A session is released exactly
// once: Commit and Rollback are both terminal and idempotent.
type Session struct {
	tx     *sql.Tx
	logger *slog.Logger
	echo   bool

	mu       sync.Mutex
	released bool
}

// ExecContext executes a statement within the session.
func (s *Session) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	s.logQuery(ctx, query)
	return s.tx.ExecContext(ctx, query, args...)
}

// QueryContext runs a query within the session.
func (s *Session) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	s.logQuery(ctx, query)
	return s.tx.QueryContext(ctx, query, args...)
}

// QueryRowContext runs a single-row query within the session.
func (s *Session) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	s.logQuery(ctx, query)
	return s.tx.QueryRowContext(ctx, query, args...)
}

// Commit finalizes pending work and returns the connection to the pool.
func (s *Session) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return nil
	}
	s.released = true
	return s.tx.Commit()
}

// Rollback discards pending work and returns the connection to the pool.
func (s *Session) Rollback() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return nil
	}
	s.released = true
	return s.tx.Rollback()
}

// logQuery echoes the statement when DATABASE_ECHO is enabled.
func (s *Session) logQuery(ctx context.Context, query string) {
	if s.echo {
		s.logger.DebugContext(ctx, "executing statement", slog.String("query", query))
	}
}
