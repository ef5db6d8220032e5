package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Vict0rexpl0rer/SAAS-MailMind-sub000/internal/core"
	"go.uber.org/zap"
)

// sqlStore implements core.CategoryConfigStore on top of database/sql. Both
// the SQLite and MySQL backends share it; only DDL and DSN handling differ.
type sqlStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// GetConfig retrieves an override row, or nil when absent.
func (s *sqlStore) GetConfig(ctx context.Context, userID string, category core.Category) (*core.UserCategoryConfig, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT display_order, custom_label, custom_color, is_hidden
		FROM user_category_configs
		WHERE user_id = ? AND category_id = ?
	`, userID, string(category))

	var (
		displayOrder sql.NullInt64
		customLabel  sql.NullString
		customColor  sql.NullString
		isHidden     sql.NullBool
	)
	if err := row.Scan(&displayOrder, &customLabel, &customColor, &isHidden); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query category config: %w", err)
	}

	return buildConfig(userID, category, displayOrder, customLabel, customColor, isHidden), nil
}

// PutConfig stores an override row, replacing any previous one.
func (s *sqlStore) PutConfig(ctx context.Context, config *core.UserCategoryConfig) error {
	_, err := s.db.ExecContext(ctx, `
		REPLACE INTO user_category_configs (user_id, category_id, display_order, custom_label, custom_color, is_hidden)
		VALUES (?, ?, ?, ?, ?, ?)
	`, config.UserID, string(config.CategoryID),
		nullInt(config.DisplayOrder), nullString(config.CustomLabel),
		nullString(config.CustomColor), nullBool(config.IsHidden))
	if err != nil {
		return fmt.Errorf("failed to store category config: %w", err)
	}
	return nil
}

// DeleteConfig removes an override row.
func (s *sqlStore) DeleteConfig(ctx context.Context, userID string, category core.Category) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM user_category_configs
		WHERE user_id = ? AND category_id = ?
	`, userID, string(category))
	if err != nil {
		return fmt.Errorf("failed to delete category config: %w", err)
	}
	return nil
}

// ListConfigs returns all override rows for a user.
func (s *sqlStore) ListConfigs(ctx context.Context, userID string) ([]*core.UserCategoryConfig, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category_id, display_order, custom_label, custom_color, is_hidden
		FROM user_category_configs
		WHERE user_id = ?
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list category configs: %w", err)
	}
	defer rows.Close()

	var configs []*core.UserCategoryConfig
	for rows.Next() {
		var (
			categoryID   string
			displayOrder sql.NullInt64
			customLabel  sql.NullString
			customColor  sql.NullString
			isHidden     sql.NullBool
		)
		if err := rows.Scan(&categoryID, &displayOrder, &customLabel, &customColor, &isHidden); err != nil {
			return nil, fmt.Errorf("failed to scan category config: %w", err)
		}
		configs = append(configs, buildConfig(userID, core.Category(categoryID), displayOrder, customLabel, customColor, isHidden))
	}
	return configs, rows.Err()
}

// GetCustomCategory retrieves a custom category row, or nil when absent.
func (s *sqlStore) GetCustomCategory(ctx context.Context, userID string, category core.Category) (*core.CustomCategory, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT label, short_label, group_name, color, icon, sort_order
		FROM custom_categories
		WHERE user_id = ? AND category_id = ?
	`, userID, string(category))

	custom := &core.CustomCategory{ID: category, UserID: userID}
	var group string
	if err := row.Scan(&custom.Label, &custom.ShortLabel, &group, &custom.Color, &custom.Icon, &custom.Order); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query custom category: %w", err)
	}
	custom.Group = core.Group(group)
	return custom, nil
}

// PutCustomCategory stores a custom category row.
func (s *sqlStore) PutCustomCategory(ctx context.Context, custom *core.CustomCategory) error {
	_, err := s.db.ExecContext(ctx, `
		REPLACE INTO custom_categories (user_id, category_id, label, short_label, group_name, color, icon, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, custom.UserID, string(custom.ID), custom.Label, custom.ShortLabel,
		string(custom.Group), custom.Color, custom.Icon, custom.Order)
	if err != nil {
		return fmt.Errorf("failed to store custom category: %w", err)
	}
	return nil
}

// DeleteCustomCategory removes a custom category row.
func (s *sqlStore) DeleteCustomCategory(ctx context.Context, userID string, category core.Category) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM custom_categories
		WHERE user_id = ? AND category_id = ?
	`, userID, string(category))
	if err != nil {
		return fmt.Errorf("failed to delete custom category: %w", err)
	}
	return nil
}

// ListCustomCategories returns all custom categories for a user.
func (s *sqlStore) ListCustomCategories(ctx context.Context, userID string) ([]*core.CustomCategory, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category_id, label, short_label, group_name, color, icon, sort_order
		FROM custom_categories
		WHERE user_id = ?
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list custom categories: %w", err)
	}
	defer rows.Close()

	var customs []*core.CustomCategory
	for rows.Next() {
		custom := &core.CustomCategory{UserID: userID}
		var categoryID, group string
		if err := rows.Scan(&categoryID, &custom.Label, &custom.ShortLabel, &group, &custom.Color, &custom.Icon, &custom.Order); err != nil {
			return nil, fmt.Errorf("failed to scan custom category: %w", err)
		}
		custom.ID = core.Category(categoryID)
		custom.Group = core.Group(group)
		customs = append(customs, custom)
	}
	return customs, rows.Err()
}

// Stop closes the database connection.
func (s *sqlStore) Stop() {
	if err := s.db.Close(); err != nil {
		s.logger.Error("Failed to close category store database", zap.Error(err))
	}
}

func buildConfig(
	userID string,
	category core.Category,
	displayOrder sql.NullInt64,
	customLabel, customColor sql.NullString,
	isHidden sql.NullBool,
) *core.UserCategoryConfig {
	config := &core.UserCategoryConfig{UserID: userID, CategoryID: category}
	if displayOrder.Valid {
		order := int(displayOrder.Int64)
		config.DisplayOrder = &order
	}
	if customLabel.Valid {
		label := customLabel.String
		config.CustomLabel = &label
	}
	if customColor.Valid {
		color := customColor.String
		config.CustomColor = &color
	}
	if isHidden.Valid {
		hidden := isHidden.Bool
		config.IsHidden = &hidden
	}
	return config
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullBool(v *bool) sql.NullBool {
	if v == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *v, Valid: true}
}
