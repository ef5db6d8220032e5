package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// MySQLStore is a MySQL-backed core.CategoryConfigStore.
type MySQLStore struct {
	sqlStore
}

// NewMySQLStore opens (and migrates) a MySQL category store. The DSN
// follows the go-sql-driver format, e.g.
// "user:pass@tcp(localhost:3306)/mailmind".
func NewMySQLStore(dsn string, logger *zap.Logger) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	db.SetConnMaxLifetime(3 * time.Minute)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}

	ddl := []string{
		`CREATE TABLE IF NOT EXISTS user_category_configs (
			user_id VARCHAR(128) NOT NULL,
			category_id VARCHAR(128) NOT NULL,
			display_order INT,
			custom_label VARCHAR(255),
			custom_color VARCHAR(32),
			is_hidden BOOLEAN,
			PRIMARY KEY (user_id, category_id)
		)`,
		`CREATE TABLE IF NOT EXISTS custom_categories (
			user_id VARCHAR(128) NOT NULL,
			category_id VARCHAR(128) NOT NULL,
			label VARCHAR(255) NOT NULL,
			short_label VARCHAR(64) NOT NULL DEFAULT '',
			group_name VARCHAR(64) NOT NULL,
			color VARCHAR(32) NOT NULL DEFAULT '',
			icon VARCHAR(64) NOT NULL DEFAULT '',
			sort_order INT NOT NULL DEFAULT 0,
			PRIMARY KEY (user_id, category_id)
		)`,
	}
	for _, stmt := range ddl {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create table: %w", err)
		}
	}

	return &MySQLStore{sqlStore{db: db, logger: logger}}, nil
}
