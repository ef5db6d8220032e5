package core

import (
	"context"
)

// ExtractorClient is the expensive extraction provider behind the CV funnel.
// Implementations call out to a text-completion provider or the simulator.
type ExtractorClient interface {
	// ExtractCandidate produces structured candidate data from an email.
	ExtractCandidate(ctx context.Context, email *Email) (*CVExtractionResult, error)
}

// CategoryConfigStore persists per-user category overrides and custom
// categories. The registry serializes mutations per (user, category) key, so
// implementations only need atomic single-row reads and writes.
type CategoryConfigStore interface {
	// GetConfig returns the override row for (user, category), or nil when
	// no override exists.
	GetConfig(ctx context.Context, userID string, category Category) (*UserCategoryConfig, error)

	// PutConfig stores an override row, replacing any previous one.
	PutConfig(ctx context.Context, config *UserCategoryConfig) error

	// DeleteConfig removes an override row. Removing an absent row is not
	// an error.
	DeleteConfig(ctx context.Context, userID string, category Category) error

	// ListConfigs returns all override rows for a user.
	ListConfigs(ctx context.Context, userID string) ([]*UserCategoryConfig, error)

	// GetCustomCategory returns a user-created category, or nil when absent.
	GetCustomCategory(ctx context.Context, userID string, category Category) (*CustomCategory, error)

	// PutCustomCategory stores a user-created category row.
	PutCustomCategory(ctx context.Context, custom *CustomCategory) error

	// DeleteCustomCategory removes a user-created category row.
	DeleteCustomCategory(ctx context.Context, userID string, category Category) error

	// ListCustomCategories returns all user-created categories for a user.
	ListCustomCategories(ctx context.Context, userID string) ([]*CustomCategory, error)
}
