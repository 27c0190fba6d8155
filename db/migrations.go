package db

import (
	"database/sql"
	"strconv"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// Migration represents a database migration
type Migration struct {
	Version     int
	Description string
	SQL         string
}

// migrations list all database migrations in order
var migrations = []Migration{
	{
		Version:     1,
		Description: "Create initial schema",
		SQL: `
			-- Create plans table
			CREATE TABLE IF NOT EXISTS plans (
				id TEXT PRIMARY KEY,
				title TEXT NOT NULL,
				status TEXT NOT NULL CHECK (status IN ('draft', 'approved', 'in_progress', 'completed')),
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL,
				details JSON NOT NULL
			);

			-- Create migrations table
			CREATE TABLE IF NOT EXISTS migrations (
				version INTEGER PRIMARY KEY,
				description TEXT NOT NULL,
				applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			);
		`,
	},
	{
		Version:     2,
		Description: "Create knowledge base chunks",
		SQL: `
			CREATE TABLE IF NOT EXISTS knowledge_chunks (
				id INTEGER PRIMARY KEY,
				location TEXT NOT NULL,
				content TEXT NOT NULL,
				keywords TEXT NOT NULL
			);
		`,
	},
}

// Migrate runs all pending migrations
func (db *DB) Migrate() error {
	// Migrations table may not exist yet on a fresh database
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return serr.Wrap(err, "failed to create migrations table")
	}

	for _, m := range migrations {
		applied, err := db.migrationApplied(m.Version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		logger.Info("Applying migration", "version", m.Version, "description", m.Description)

		if _, err := db.Exec(m.SQL); err != nil {
			return serr.Wrap(err, "failed to apply migration", "version", strconv.Itoa(m.Version))
		}

		_, err = db.Exec(`INSERT INTO migrations (version, description) VALUES (?, ?)`,
			m.Version, m.Description)
		if err != nil {
			return serr.Wrap(err, "failed to record migration", "version", strconv.Itoa(m.Version))
		}
	}

	return nil
}

func (db *DB) migrationApplied(version int) (bool, error) {
	var v int
	err := db.QueryRow(`SELECT version FROM migrations WHERE version = ?`, version).Scan(&v)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, serr.Wrap(err, "failed to check migration status")
	}
	return true, nil
}
