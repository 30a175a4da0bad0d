package database

import (
	"context"
	"fmt"
	"log/slog"
)

// schemaStatements creates the entity tables in dependency order.
// Each statement is idempotent so InitSchema can run on every startup.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		hashed_password TEXT NOT NULL,
		display_name TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS projects (
		id UUID PRIMARY KEY,
		owner_id UUID NOT NULL REFERENCES users(id),
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		tempo_bpm INTEGER NOT NULL DEFAULT 120,
		key_signature TEXT NOT NULL DEFAULT 'C',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS tracks (
		id UUID PRIMARY KEY,
		project_id UUID NOT NULL REFERENCES projects(id),
		name TEXT NOT NULL,
		instrument TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id UUID PRIMARY KEY,
		project_id UUID NOT NULL REFERENCES projects(id),
		started_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		ended_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS exports (
		id UUID PRIMARY KEY,
		project_id UUID NOT NULL REFERENCES projects(id),
		format TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		file_url TEXT,
		requested_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		completed_at TIMESTAMPTZ
	)`,
}

// InitSchema idempotently ensures all entity tables exist. It is called
// once at startup; failure is fatal and the process must not begin
// serving.
func (p *Provider) InitSchema(ctx context.Context) error {
	err := p.WithSession(ctx, func(s *Session) error {
		for _, stmt := range schemaStatements {
			if _, err := s.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to create table: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to initialize database", slog.String("error", err.Error()))
		return err
	}

	p.logger.InfoContext(ctx, "database tables created successfully")
	return nil
}
