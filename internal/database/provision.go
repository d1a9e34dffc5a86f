package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"hiresynapse/internal/config"
	"hiresynapse/internal/middleware"

	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// maintenanceDSN points at the server's default "postgres" database.
func maintenanceDSN(cfg *config.Config) string {
	sslMode := cfg.DBSSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=%s",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, sslMode)
}

// EnsureDatabase creates the configured Postgres database when it does not exist yet.
// SQLite files are created on open, so the sqlite driver is a no-op.
func EnsureDatabase(ctx context.Context, cfg *config.Config) error {
	if cfg.DBDriver == "sqlite" {
		return nil
	}

	db, err := sql.Open("pgx", maintenanceDSN(cfg))
	if err != nil {
		return fmt.Errorf("open maintenance database: %w", err)
	}
	defer func() { _ = db.Close() }()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("ping maintenance database: %w", err)
	}

	return createDatabaseIfMissing(ctx, db, cfg.DBName)
}

func createDatabaseIfMissing(ctx context.Context, db *sql.DB, name string) error {
	var exists bool
	if err := db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)`, name).Scan(&exists); err != nil {
		return fmt.Errorf("check database %q: %w", name, err)
	}
	if exists {
		return nil
	}

	// CREATE DATABASE takes no bind parameters.
	if _, err := db.ExecContext(ctx, "CREATE DATABASE "+pgx.Identifier{name}.Sanitize()); err != nil {
		return fmt.Errorf("create database %q: %w", name, err)
	}
	middleware.Logger.InfoContext(ctx, "database created", slog.String("name", name))
	return nil
}
