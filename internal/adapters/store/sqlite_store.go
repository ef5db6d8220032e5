package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// SQLiteStore is a SQLite-backed core.CategoryConfigStore.
type SQLiteStore struct {
	sqlStore
}

// NewSQLiteStore opens (and migrates) a SQLite category store.
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	ddl := []string{
		`CREATE TABLE IF NOT EXISTS user_category_configs (
			user_id TEXT NOT NULL,
			category_id TEXT NOT NULL,
			display_order INTEGER,
			custom_label TEXT,
			custom_color TEXT,
			is_hidden BOOLEAN,
			PRIMARY KEY (user_id, category_id)
		)`,
		`CREATE TABLE IF NOT EXISTS custom_categories (
			user_id TEXT NOT NULL,
			category_id TEXT NOT NULL,
			label TEXT NOT NULL,
			short_label TEXT NOT NULL DEFAULT '',
			group_name TEXT NOT NULL,
			color TEXT NOT NULL DEFAULT '',
			icon TEXT NOT NULL DEFAULT '',
			sort_order INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (user_id, category_id)
		)`,
	}
	for _, stmt := range ddl {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create table: %w", err)
		}
	}

	return &SQLiteStore{sqlStore{db: db, logger: logger}}, nil
}
