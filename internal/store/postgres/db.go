package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open opens a PostgreSQL database using the pgx stdlib driver.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// Migrate runs idempotent DDL migrations for the college-connect schema
// on PostgreSQL.
func Migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id                       BIGSERIAL    PRIMARY KEY,
			name                     VARCHAR(100) NOT NULL,
			email                    VARCHAR(100) UNIQUE NOT NULL,
			hashed_password          VARCHAR(255) NOT NULL,
			contact_number           VARCHAR(30)  NOT NULL DEFAULT '',
			college_name             VARCHAR(100) NOT NULL DEFAULT '',
			branch                   VARCHAR(10)  NOT NULL,
			year                     VARCHAR(10)  NOT NULL,
			roll_no                  VARCHAR(30)  NOT NULL DEFAULT '',
			bio                      TEXT         NOT NULL DEFAULT '',
			profile_photo            TEXT         NOT NULL DEFAULT '',
			skills                   TEXT         NOT NULL DEFAULT '[]',
			current_learning         TEXT         NOT NULL DEFAULT '[]',
			hackathon_participation  TEXT         NOT NULL DEFAULT '',
			coding_contest_ranks     TEXT         NOT NULL DEFAULT '',
			internship               TEXT         NOT NULL DEFAULT '',
			college_clubs            TEXT         NOT NULL DEFAULT '',
			profile_links            TEXT         NOT NULL DEFAULT '{}',
			created_at               TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
			updated_at               TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id          BIGSERIAL   PRIMARY KEY,
			sender_id   BIGINT      NOT NULL REFERENCES users(id),
			receiver_id BIGINT      NOT NULL REFERENCES users(id),
			content     TEXT        NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_sender ON messages(sender_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_receiver ON messages(receiver_id, created_at DESC)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
