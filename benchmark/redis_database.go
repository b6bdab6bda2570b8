package benchmark

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

// RedisDatabase implements the Database interface for a Redis server
type RedisDatabase struct {
	client *redis.Client
}

// NewRedisDatabase creates a client and pings the server. The go-redis client
// dials lazily, so the ping is what surfaces an unreachable server.
func NewRedisDatabase(ctx context.Context, cfg RedisConfig) (Database, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	log.Info().
		Str("addr", cfg.Addr).
		Int("db", cfg.DB).
		Msg("Connected to Redis")

	return &RedisDatabase{client: client}, nil
}

func (r *RedisDatabase) Name() string {
	return DatabaseTypeRedis.DisplayName()
}

// Set implements Database.Set for Redis. The key never expires.
func (r *RedisDatabase) Set(ctx context.Context, key, value []byte) error {
	if r.client == nil {
		return ErrDatabaseClosed
	}
	return r.client.Set(ctx, string(key), value, 0).Err()
}

// Get implements Database.Get for Redis
func (r *RedisDatabase) Get(ctx context.Context, key []byte) ([]byte, error) {
	if r.client == nil {
		return nil, ErrDatabaseClosed
	}
	value, err := r.client.Get(ctx, string(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return value, nil
}

// Close implements Database.Close for Redis
func (r *RedisDatabase) Close() error {
	if r.client == nil {
		return nil
	}
	err := r.client.Close()
	r.client = nil
	return err
}
