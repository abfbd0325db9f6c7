package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const defaultTimeout = 10 * time.Second

// Open creates a PostgreSQL connection pool and verifies connectivity.
func Open(ctx context.Context, databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	return db, nil
}

// EnsureSchema creates the users and products tables when they do not exist.
// The (name, category) unique constraint makes duplicate detection atomic
// under concurrent writers instead of a check-then-insert.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            BIGSERIAL PRIMARY KEY,
			username      VARCHAR(50)  NOT NULL UNIQUE,
			email         VARCHAR(100) NOT NULL UNIQUE,
			password_hash VARCHAR(100) NOT NULL,
			first_name    VARCHAR(50),
			last_name     VARCHAR(50),
			role          VARCHAR(20)  NOT NULL,
			enabled       BOOLEAN      NOT NULL DEFAULT TRUE,
			created_at    TIMESTAMPTZ  NOT NULL,
			updated_at    TIMESTAMPTZ  NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id             BIGSERIAL PRIMARY KEY,
			name           VARCHAR(100)  NOT NULL,
			description    VARCHAR(500),
			price          NUMERIC(12,2) NOT NULL CHECK (price > 0),
			category       VARCHAR(50)   NOT NULL,
			stock_quantity INTEGER       NOT NULL CHECK (stock_quantity >= 0),
			brand          VARCHAR(50),
			active         BOOLEAN       NOT NULL DEFAULT TRUE,
			created_at     TIMESTAMPTZ   NOT NULL,
			updated_at     TIMESTAMPTZ   NOT NULL,
			CONSTRAINT products_name_category_key UNIQUE (name, category)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_products_category ON products (category)`,
		`CREATE INDEX IF NOT EXISTS idx_products_price ON products (price)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("postgres ensure schema: %w", err)
		}
	}
	return nil
}
