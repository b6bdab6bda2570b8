package benchmark

import (
	"context"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/rs/zerolog/log"
)

var postgresStatements = sqlStatements{
	upsert: "INSERT INTO test_table (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value",
	query:  "SELECT value FROM test_table WHERE key = $1",
}

// NewPostgresDatabase connects to PostgreSQL through the pgx stdlib driver
func NewPostgresDatabase(ctx context.Context, dsn string) (Database, error) {
	db, err := openSQLDatabase(ctx, "pgx", dsn, DatabaseTypePostgres.DisplayName(), postgresStatements)
	if err != nil {
		return nil, err
	}

	log.Info().Msg("Connected to PostgreSQL")
	return db, nil
}
