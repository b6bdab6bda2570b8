package benchmark

import (
	"context"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/rs/zerolog/log"
)

// PebbleDatabase implements the Database interface for an embedded Pebble store
type PebbleDatabase struct {
	db *pebble.DB
}

// NewPebbleDatabase opens (or creates) a Pebble store at path
func NewPebbleDatabase(path string) (Database, error) {
	if path == "" {
		return nil, fmt.Errorf("pebble path is required")
	}

	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open pebble at %s: %w", path, err)
	}

	log.Info().Str("path", path).Msg("Opened Pebble")

	return &PebbleDatabase{db: db}, nil
}

func (p *PebbleDatabase) Name() string {
	return DatabaseTypePebble.DisplayName()
}

// Set implements Database.Set for Pebble. Writes are synced so the
// measurement mirrors the committed writes of the SQL backends.
func (p *PebbleDatabase) Set(_ context.Context, key, value []byte) error {
	if p.db == nil {
		return ErrDatabaseClosed
	}
	return p.db.Set(key, value, pebble.Sync)
}

// Get implements Database.Get for Pebble. The returned slice is only valid
// until the closer is released, so it is copied first.
func (p *PebbleDatabase) Get(_ context.Context, key []byte) ([]byte, error) {
	if p.db == nil {
		return nil, ErrDatabaseClosed
	}
	value, closer, err := p.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	defer closer.Close()

	return append([]byte(nil), value...), nil
}

// Close implements Database.Close for Pebble
func (p *PebbleDatabase) Close() error {
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	return err
}
