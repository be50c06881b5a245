// Package sqlstore implements the domain repositories on a relational
// database through sqlx. Supported drivers are "postgres" and "mysql".
package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

// Store wraps a *sqlx.DB. The repository types in this package share one
// Store and its connection pool.
type Store struct {
	db     *sqlx.DB
	driver string
}

// Open connects to the database, pings, and runs migrations.
func Open(driver, dsn string) (*Store, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Store{db: db, driver: driver}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	var stmts []string
	switch s.driver {
	case "mysql":
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS users (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				username VARCHAR(255) NOT NULL UNIQUE,
				password VARCHAR(255) NOT NULL
			);`,
			`CREATE TABLE IF NOT EXISTS todos (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				description TEXT NOT NULL,
				completed BOOLEAN NOT NULL DEFAULT FALSE,
				create_by BIGINT NOT NULL,
				create_at DATETIME NOT NULL,
				FOREIGN KEY (create_by) REFERENCES users(id)
			);`,
			`CREATE TABLE IF NOT EXISTS sessions (
				token VARCHAR(64) PRIMARY KEY,
				user_id BIGINT NOT NULL,
				expires_at DATETIME NOT NULL,
				created_at DATETIME NOT NULL,
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
			);`,
		}
	default:
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS users (
				id BIGSERIAL PRIMARY KEY,
				username TEXT NOT NULL UNIQUE,
				password TEXT NOT NULL
			);`,
			`CREATE TABLE IF NOT EXISTS todos (
				id BIGSERIAL PRIMARY KEY,
				description TEXT NOT NULL,
				completed BOOLEAN NOT NULL DEFAULT FALSE,
				create_by BIGINT NOT NULL REFERENCES users(id),
				create_at TIMESTAMPTZ NOT NULL
			);`,
			`CREATE INDEX IF NOT EXISTS idx_todos_create_by ON todos(create_by);`,
			`CREATE TABLE IF NOT EXISTS sessions (
				token TEXT PRIMARY KEY,
				user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				expires_at TIMESTAMPTZ NOT NULL,
				created_at TIMESTAMPTZ NOT NULL
			);`,
			`CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);`,
		}
	}

	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
