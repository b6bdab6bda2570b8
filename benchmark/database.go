package benchmark

import (
	"context"
	"errors"
	"fmt"
)

// Database defines the interface that all store backends must implement.
// Every backend exposes the same three operations so the timing loops stay
// identical across stores.
type Database interface {
	// Name returns the label used in the printed results (e.g. "RedisDB")
	Name() string

	// Set upserts a single key-value pair
	Set(ctx context.Context, key, value []byte) error

	// Get retrieves the value for the given key
	// Returns ErrKeyNotFound if key doesn't exist
	Get(ctx context.Context, key []byte) ([]byte, error)

	// Close releases the connection or file handles held by the backend
	Close() error
}

// Database backend types
type DatabaseType string

const (
	DatabaseTypeRedis    DatabaseType = "redis"
	DatabaseTypePostgres DatabaseType = "postgres"
	DatabaseTypeMySQL    DatabaseType = "mysql"
	DatabaseTypePebble   DatabaseType = "pebble"
	DatabaseTypeBolt     DatabaseType = "bolt"
)

// DefaultDatabaseTypes is the store order of a run when none is configured
var DefaultDatabaseTypes = []DatabaseType{
	DatabaseTypeRedis,
	DatabaseTypePostgres,
	DatabaseTypeMySQL,
}

// DatabaseConfig holds configuration for database creation
type DatabaseConfig struct {
	Type DatabaseType

	// Redis-specific options
	RedisConfig RedisConfig

	// SQL backends take a driver DSN
	PostgresDSN string
	MySQLDSN    string

	// Embedded backends take a local path
	PebblePath string
	BoltPath   string
}

// RedisConfig holds Redis-specific connection options
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Common database errors
var (
	ErrKeyNotFound     = errors.New("key not found")
	ErrDatabaseClosed  = errors.New("database is closed")
	ErrBackendNotFound = errors.New("database backend not found")
)

// NewDatabase opens a connection to the configured backend and verifies it
// is usable. Any error returned here is a connection failure.
func NewDatabase(ctx context.Context, cfg DatabaseConfig) (Database, error) {
	switch cfg.Type {
	case DatabaseTypeRedis:
		return NewRedisDatabase(ctx, cfg.RedisConfig)
	case DatabaseTypePostgres:
		return NewPostgresDatabase(ctx, cfg.PostgresDSN)
	case DatabaseTypeMySQL:
		return NewMySQLDatabase(ctx, cfg.MySQLDSN)
	case DatabaseTypePebble:
		return NewPebbleDatabase(cfg.PebblePath)
	case DatabaseTypeBolt:
		return NewBoltDatabase(cfg.BoltPath)
	default:
		return nil, fmt.Errorf("%w: %q", ErrBackendNotFound, cfg.Type)
	}
}

// DisplayName returns the result label of a backend type without connecting
func (t DatabaseType) DisplayName() string {
	switch t {
	case DatabaseTypeRedis:
		return "RedisDB"
	case DatabaseTypePostgres:
		return "PostgresDB"
	case DatabaseTypeMySQL:
		return "MySQLDB"
	case DatabaseTypePebble:
		return "PebbleDB"
	case DatabaseTypeBolt:
		return "BoltDB"
	default:
		return string(t)
	}
}

// ParseDatabaseType validates a backend name
func ParseDatabaseType(name string) (DatabaseType, error) {
	t := DatabaseType(name)
	switch t {
	case DatabaseTypeRedis, DatabaseTypePostgres, DatabaseTypeMySQL, DatabaseTypePebble, DatabaseTypeBolt:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrBackendNotFound, name)
	}
}

// Helper function to check if an error is "key not found"
// This abstracts away backend-specific error types
func IsKeyNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}
