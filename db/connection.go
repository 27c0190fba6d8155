package db

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb/v2"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"

	"precisionturn/config"
)

// DB represents the database connection
type DB struct {
	conn *sql.DB
	path string
}

// singleton instance
var instance *DB

// GetDB returns the database instance, creating it if necessary
func GetDB() (*DB, error) {
	if instance != nil {
		return instance, nil
	}

	dbPath := config.Get().DBPath
	if dbPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, serr.Wrap(err, "failed to get home directory")
		}

		dataDir := filepath.Join(homeDir, ".local", "share", "precisionturn")
		if err := os.MkdirAll(dataDir, 0700); err != nil {
			return nil, serr.Wrap(err, "failed to create data directory")
		}
		dbPath = filepath.Join(dataDir, "precisionturn.db")
	}

	conn, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, serr.Wrap(err, "failed to open database")
	}

	if err := conn.Ping(); err != nil {
		return nil, serr.Wrap(err, "failed to ping database")
	}

	instance = &DB{
		conn: conn,
		path: dbPath,
	}

	logger.Info("Database connected", "path", dbPath)

	if err := instance.Migrate(); err != nil {
		return nil, serr.Wrap(err, "failed to run migrations")
	}

	return instance, nil
}

// Conn returns the underlying database connection
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Close closes the database connection
func (db *DB) Close() error {
	if db.conn != nil {
		err := db.conn.Close()
		instance = nil
		return err
	}
	return nil
}

// Exec executes a query without returning rows
func (db *DB) Exec(query string, args ...interface{}) (sql.Result, error) {
	return db.conn.Exec(query, args...)
}

// Query executes a query that returns rows
func (db *DB) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return db.conn.Query(query, args...)
}

// QueryRow executes a query that returns at most one row
func (db *DB) QueryRow(query string, args ...interface{}) *sql.Row {
	return db.conn.QueryRow(query, args...)
}
