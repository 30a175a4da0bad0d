package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"ariaforge/internal/config"
)

// Provider owns the process-wide connection pool and issues scoped,
// per-request sessions. One Provider exists for the process lifetime.
type Provider struct {
	db     *sql.DB
	logger *slog.Logger
	echo   bool
}

// NewProvider creates a Provider from the database configuration.
// The pool is opened lazily; no connection is made until InitSchema
// or the first session touches the database.
func NewProvider(cfg config.DatabaseConfig, logger *slog.Logger) (*Provider, error) {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return &Provider{
		db:     db,
		logger: logger.With(slog.String("component", "database")),
		echo:   cfg.Echo,
	}, nil
}

// NewProviderWithDB wraps an existing handle. Used by tests to inject
// a mocked pool.
func NewProviderWithDB(db *sql.DB, echo bool, logger *slog.Logger) *Provider {
	return &Provider{
		db:     db,
		logger: logger.With(slog.String("component", "database")),
		echo:   echo,
	}
}

// Acquire begins a scoped session bound to the caller's request context.
// The caller must release the session on every exit path: Commit on
// success, Rollback otherwise. Prefer WithSession, which guarantees this.
func (p *Provider) Acquire(ctx context.Context) (*Session, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire session: %w", err)
	}
	return &Session{
		tx:     tx,
		logger: p.logger,
		echo:   p.echo,
	}, nil
}

// WithSession runs fn inside a scoped session. On error (or panic) all
// pending work is rolled back before the underlying connection returns
// to the pool; on success the session is committed. The session is
// released exactly once on every exit path.
func (p *Provider) WithSession(ctx context.Context, fn func(*Session) error) (err error) {
	session, err := p.Acquire(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if rec := recover(); rec != nil {
			session.Rollback()
			panic(rec)
		}
		if err != nil {
			session.Rollback()
		}
	}()

	if err = fn(session); err != nil {
		return err
	}
	return session.Commit()
}

// CheckConnection executes a trivial query through a scoped session.
// Used by the database readiness check.
func (p *Provider) CheckConnection(ctx context.Context) error {
	return p.WithSession(ctx, func(s *Session) error {
		var one int
		return s.QueryRowContext(ctx, "SELECT 1").Scan(&one)
	})
}

// Ping verifies a connection to the database is still alive.
func (p *Provider) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// Stats returns pool statistics.
func (p *Provider) Stats() sql.DBStats {
	return p.db.Stats()
}

// Close releases the connection pool.
func (p *Provider) Close() error {
	return p.db.Close()
}
