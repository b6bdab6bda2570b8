package benchmark

import (
	"context"

	_ "github.com/go-sql-driver/mysql" // registers the "mysql" driver
	"github.com/rs/zerolog/log"
)

// key is a reserved word in MySQL, hence the backticks
var mysqlStatements = sqlStatements{
	upsert: "INSERT INTO test_table (`key`, value) VALUES (?, ?) ON DUPLICATE KEY UPDATE value = VALUES(value)",
	query:  "SELECT value FROM test_table WHERE `key` = ?",
}

// NewMySQLDatabase connects to MySQL through go-sql-driver
func NewMySQLDatabase(ctx context.Context, dsn string) (Database, error) {
	db, err := openSQLDatabase(ctx, "mysql", dsn, DatabaseTypeMySQL.DisplayName(), mysqlStatements)
	if err != nil {
		return nil, err
	}

	log.Info().Msg("Connected to MySQL")
	return db, nil
}
