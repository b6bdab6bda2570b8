package benchmark

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	bolt "go.etcd.io/bbolt"
)

// boltBucket mirrors the table name used by the SQL backends
var boltBucket = []byte("test_table")

// BoltDatabase implements the Database interface for an embedded bbolt file
type BoltDatabase struct {
	db *bolt.DB
}

// NewBoltDatabase opens (or creates) a bbolt file at path and ensures the
// bucket exists
func NewBoltDatabase(path string) (Database, error) {
	if path == "" {
		return nil, fmt.Errorf("bolt path is required")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// A held file lock would otherwise block forever
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt at %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	log.Info().Str("path", path).Msg("Opened bbolt")

	return &BoltDatabase{db: db}, nil
}

func (b *BoltDatabase) Name() string {
	return DatabaseTypeBolt.DisplayName()
}

// Set implements Database.Set for bbolt
func (b *BoltDatabase) Set(_ context.Context, key, value []byte) error {
	if b.db == nil {
		return ErrDatabaseClosed
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Put(key, value)
	})
}

// Get implements Database.Get for bbolt. Values are only valid inside the
// transaction, so the result is copied out.
func (b *BoltDatabase) Get(_ context.Context, key []byte) ([]byte, error) {
	if b.db == nil {
		return nil, ErrDatabaseClosed
	}

	var value []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(boltBucket).Get(key)
		if v == nil {
			return ErrKeyNotFound
		}
		value = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Close implements Database.Close for bbolt
func (b *BoltDatabase) Close() error {
	if b.db == nil {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	return err
}
