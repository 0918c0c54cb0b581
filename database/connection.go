package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/justbri/cinelog/config"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var DB *sql.DB

// Connect opens the Postgres pool. An empty DATABASE_URL is not an
// error here; the server runs with DB-backed routes answering 503.
func Connect(cfg *config.Config) error {
	if cfg.DatabaseURL == "" {
		return nil
	}

	var err error
	DB, err = sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if err = DB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	// Pool limits to prevent "too many clients" errors from PostgreSQL
	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(5)
	DB.SetConnMaxLifetime(5 * time.Minute)

	return nil
}

// Configured reports whether a database connection is available.
func Configured() bool {
	return DB != nil
}

func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
