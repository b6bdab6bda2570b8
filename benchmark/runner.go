package benchmark

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config defines the benchmark parameters passed from CLI
type Config struct {
	Stores      []string // store backends to run, in order
	Hashes      []string // hash functions to time, in order
	Iterations  int      // timed calls per loop, DefaultIterations when zero
	BenchmarkID string   // optional label for this benchmark run
	LogFormat   string   // "json" or "console", default is "console"

	// Fixture, zero fields take the Default* values
	Key          string
	ValuePattern string
	ValueRepeat  int

	// Store connection settings
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	PostgresDSN    string
	MySQLDSN       string
	PebblePath     string
	BoltPath       string
	ConnectTimeout time.Duration // zero means no deadline

	// HashOnce times each hash function once per run instead of once per store
	HashOnce bool

	// Out receives the result lines, os.Stdout when nil
	Out io.Writer
}

// Opener connects to a store backend
type Opener func(ctx context.Context, cfg DatabaseConfig) (Database, error)

type runner struct {
	cfg     Config
	open    Opener
	out     io.Writer
	stores  []DatabaseType
	hashers []Hasher
	fixture Fixture

	// hash timings computed up front when HashOnce is set
	hashed map[string]Samples
}

// hashSink keeps digests reachable so the hash calls are not optimized away
var hashSink string

// RunBenchmark orchestrates the full benchmark lifecycle
func RunBenchmark(ctx context.Context, cfg Config) error {
	setupLog(cfg)
	return runWith(ctx, cfg, NewDatabase)
}

func runWith(ctx context.Context, cfg Config, open Opener) error {
	r, err := newRunner(cfg, open)
	if err != nil {
		return err
	}
	initialLog(r)
	return r.run(ctx)
}

func newRunner(cfg Config, open Opener) (*runner, error) {
	applyDefaults(&cfg)
	if cfg.Iterations < 1 {
		return nil, ErrInvalidIterations
	}

	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}

	stores := DefaultDatabaseTypes
	if len(cfg.Stores) > 0 {
		stores = make([]DatabaseType, 0, len(cfg.Stores))
		for _, name := range cfg.Stores {
			t, err := ParseDatabaseType(strings.TrimSpace(name))
			if err != nil {
				return nil, err
			}
			stores = append(stores, t)
		}
	}

	hashNames := cfg.Hashes
	if len(hashNames) == 0 {
		hashNames = DefaultHashes
	}
	hashers := make([]Hasher, 0, len(hashNames))
	for _, name := range hashNames {
		h, err := NewHasher(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		hashers = append(hashers, h)
	}

	return &runner{
		cfg:     cfg,
		open:    open,
		out:     out,
		stores:  stores,
		hashers: hashers,
		fixture: NewFixture(cfg.Key, cfg.ValuePattern, cfg.ValueRepeat),
	}, nil
}

// applyDefaults fills zero fields with the values of a bare CLI run
func applyDefaults(cfg *Config) {
	if cfg.Iterations == 0 {
		cfg.Iterations = DefaultIterations
	}
	if cfg.Key == "" {
		cfg.Key = DefaultKey
	}
	if cfg.ValuePattern == "" {
		cfg.ValuePattern = DefaultValuePattern
	}
	if cfg.ValueRepeat == 0 {
		cfg.ValueRepeat = DefaultValueRepeat
	}
}

func (r *runner) run(ctx context.Context) error {
	if r.cfg.HashOnce {
		r.hashed = make(map[string]Samples, len(r.hashers))
		for _, h := range r.hashers {
			samples, err := r.timeHash(h)
			if err != nil {
				return err
			}
			r.hashed[h.Name()] = samples
		}
	}

	for _, t := range r.stores {
		if err := r.runStore(ctx, t); err != nil {
			return err
		}
	}

	log.Info().Str("benchmark_id", r.cfg.BenchmarkID).Msg("Benchmark complete")
	return nil
}

// runStore benchmarks a single backend. A connection failure is reported
// and swallowed so the next store still runs.
func (r *runner) runStore(ctx context.Context, t DatabaseType) error {
	db, err := r.connect(ctx, t)
	if err != nil {
		log.Warn().Err(err).Str("store", t.DisplayName()).Msg("Unable to connect")
		fmt.Fprintf(r.out, "Skipping tests for %s due to connection failure.\n", t.DisplayName())
		return nil
	}

	for _, h := range r.hashers {
		res, err := r.runPair(ctx, db, h)
		if err != nil {
			db.Close()
			return fmt.Errorf("%s with %s: %w", db.Name(), h.Name(), err)
		}
		r.report(res)
	}

	if err := db.Close(); err != nil {
		log.Error().Err(err).Str("store", db.Name()).Msg("Close failed")
	}
	return nil
}

func (r *runner) connect(ctx context.Context, t DatabaseType) (Database, error) {
	if r.cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.ConnectTimeout)
		defer cancel()
	}
	return r.open(ctx, r.databaseConfig(t))
}

func (r *runner) databaseConfig(t DatabaseType) DatabaseConfig {
	return DatabaseConfig{
		Type: t,
		RedisConfig: RedisConfig{
			Addr:     r.cfg.RedisAddr,
			Password: r.cfg.RedisPassword,
			DB:       r.cfg.RedisDB,
		},
		PostgresDSN: r.cfg.PostgresDSN,
		MySQLDSN:    r.cfg.MySQLDSN,
		PebblePath:  r.cfg.PebblePath,
		BoltPath:    r.cfg.BoltPath,
	}
}

// runPair writes the fixture, then times reads of it and hashes of its value
func (r *runner) runPair(ctx context.Context, db Database, h Hasher) (Result, error) {
	res := Result{Store: db.Name(), Hash: h.Name()}

	if err := db.Set(ctx, r.fixture.Key, r.fixture.Value); err != nil {
		return res, fmt.Errorf("failed to write fixture: %w", err)
	}

	query, err := Measure(r.cfg.Iterations, func() error {
		_, err := db.Get(ctx, r.fixture.Key)
		return err
	})
	if err != nil {
		return res, fmt.Errorf("query failed: %w", err)
	}
	res.Query = query

	if samples, ok := r.hashed[h.Name()]; ok {
		res.Hashing = samples
		return res, nil
	}

	res.Hashing, err = r.timeHash(h)
	return res, err
}

func (r *runner) timeHash(h Hasher) (Samples, error) {
	return Measure(r.cfg.Iterations, func() error {
		hashSink = h.Sum(r.fixture.Value)
		return nil
	})
}

func (r *runner) report(res Result) {
	fmt.Fprintf(r.out, "Average %s query time: %.6f seconds\n", res.Store, res.Query.Mean())
	fmt.Fprintf(r.out, "Average %s computation time: %.6f seconds\n", res.Hash, res.Hashing.Mean())

	log.Info().
		Str("benchmark_id", r.cfg.BenchmarkID).
		Str("store", res.Store).
		Str("hash", res.Hash).
		Int("iterations", len(res.Query)).
		Dur("query_total_elapsed", res.Query.Total()).
		Float64("query_avg_latency_ms", res.Query.Mean()*1000).
		Float64("query_p50_latency_ms", res.Query.Median()*1000).
		Float64("query_p99_latency_ms", res.Query.Percentile(99)*1000).
		Float64("hash_avg_latency_ms", res.Hashing.Mean()*1000).
		Float64("hash_p99_latency_ms", res.Hashing.Percentile(99)*1000).
		Msg("Store benchmark complete")
}

func initialLog(r *runner) {
	stores := make([]string, len(r.stores))
	for i, t := range r.stores {
		stores[i] = string(t)
	}
	hashes := make([]string, len(r.hashers))
	for i, h := range r.hashers {
		hashes[i] = h.Name()
	}

	log.Info().
		Str("benchmark_id", r.cfg.BenchmarkID).
		Strs("stores", stores).
		Strs("hashes", hashes).
		Int("iterations", r.cfg.Iterations).
		Int("value_size", len(r.fixture.Value)).
		Bool("hash_once", r.cfg.HashOnce).
		Msg("Starting benchmark")
}

// setupLog routes logs to stderr so stdout only carries the results
func setupLog(cfg Config) {
	if strings.ToLower(cfg.LogFormat) == "json" {
		zerolog.TimeFieldFormat = time.RFC3339Nano
		log.Logger = log.Output(os.Stderr)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	}
}
