package benchmark

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// sqlStatements holds the dialect-specific statements against test_table
type sqlStatements struct {
	upsert string
	query  string
}

// SQLDatabase implements the Database interface on top of database/sql.
// The PostgreSQL and MySQL backends differ only in driver and statements.
type SQLDatabase struct {
	db    *sql.DB
	name  string
	stmts sqlStatements
}

// openSQLDatabase opens the driver and pings the server. sql.Open never
// dials, so the ping decides whether the store is reachable.
func openSQLDatabase(ctx context.Context, driver, dsn, name string, stmts sqlStatements) (*SQLDatabase, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", driver, err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}

	return newSQLDatabase(db, name, stmts), nil
}

func newSQLDatabase(db *sql.DB, name string, stmts sqlStatements) *SQLDatabase {
	return &SQLDatabase{
		db:    db,
		name:  name,
		stmts: stmts,
	}
}

func (s *SQLDatabase) Name() string {
	return s.name
}

// Set runs the upsert in its own transaction and commits it
func (s *SQLDatabase) Set(ctx context.Context, key, value []byte) error {
	if s.db == nil {
		return ErrDatabaseClosed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, s.stmts.upsert, string(key), string(value)); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to upsert key: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Get implements Database.Get for SQL backends
func (s *SQLDatabase) Get(ctx context.Context, key []byte) ([]byte, error) {
	if s.db == nil {
		return nil, ErrDatabaseClosed
	}

	var value string
	err := s.db.QueryRowContext(ctx, s.stmts.query, string(key)).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return []byte(value), nil
}

// Close implements Database.Close for SQL backends
func (s *SQLDatabase) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
