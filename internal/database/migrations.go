package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// RunMigrations creates the schema. Every statement is idempotent so it runs
// on each start.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	migrations := []string{
		createProjectTable,
		createAdminUserTable,
		createContactInfoTable,
	}

	for i, migration := range migrations {
		logger.Debug("running migration", zap.Int("step", i+1), zap.Int("total", len(migrations)))
		if _, err := pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	logger.Info("all migrations completed successfully")
	return nil
}

const createProjectTable = `
CREATE TABLE IF NOT EXISTS project (
  id UUID PRIMARY KEY,
  title VARCHAR(100) NOT NULL CHECK (btrim(title) <> ''),
  description TEXT NOT NULL CHECK (btrim(description) <> ''),
  category VARCHAR(50) NOT NULL CHECK (btrim(category) <> ''),
  tools TEXT[] NOT NULL DEFAULT '{}',
  skills TEXT[] NOT NULL DEFAULT '{}',
  objective TEXT NOT NULL DEFAULT '',
  summary TEXT NOT NULL DEFAULT '',
  image_url TEXT NOT NULL DEFAULT '',
  date_created TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_project_category ON project(category);
CREATE INDEX IF NOT EXISTS idx_project_date_created ON project(date_created);
`

const createAdminUserTable = `
CREATE TABLE IF NOT EXISTS admin_user (
  id UUID PRIMARY KEY,
  username VARCHAR(80) NOT NULL UNIQUE,
  password_hash TEXT NOT NULL
);
`

const createContactInfoTable = `
CREATE TABLE IF NOT EXISTS contact_info (
  id UUID PRIMARY KEY,
  name VARCHAR(100) NOT NULL DEFAULT '',
  email VARCHAR(120) NOT NULL DEFAULT '',
  subject VARCHAR(150) NOT NULL DEFAULT '',
  message TEXT NOT NULL DEFAULT '',
  date_sent TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_contact_info_date_sent ON contact_info(date_sent);
`
