package store

import (
	"database/sql"
	"fmt"

	_ "github.com/tursodatabase/go-libsql"
)

func Migrate(db *sql.DB) error {
	schema := []string{
		// runs: one row per generation request
		`CREATE TABLE IF NOT EXISTS runs (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			window_length  INTEGER NOT NULL,
			seed           INTEGER,
			initial_text   TEXT NOT NULL,
			target_length  INTEGER NOT NULL,
			output         TEXT NOT NULL,
			stop_reason    TEXT NOT NULL,
			corpus_key     TEXT NOT NULL DEFAULT '',
			corpus_hash    TEXT NOT NULL,
			corpus_mtime   INTEGER NOT NULL DEFAULT 0,
			created_at     INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_corpus_hash ON runs(corpus_hash);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to run migration statement: %w", err)
		}
	}

	return nil
}
