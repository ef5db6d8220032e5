package store

import (
	"context"
	"sync"

	"github.com/Vict0rexpl0rer/SAAS-MailMind-sub000/internal/core"
	"go.uber.org/zap"
)

// MemoryStore is an in-memory implementation of core.CategoryConfigStore,
// used by default and in tests. Rows are copied on the way in and out so
// callers never share memory with the store.
type MemoryStore struct {
	mu      sync.RWMutex
	configs map[string]map[core.Category]*core.UserCategoryConfig
	customs map[string]map[core.Category]*core.CustomCategory
	logger  *zap.Logger
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		configs: make(map[string]map[core.Category]*core.UserCategoryConfig),
		customs: make(map[string]map[core.Category]*core.CustomCategory),
		logger:  logger,
	}
}

// GetConfig retrieves an override row, or nil when absent.
func (s *MemoryStore) GetConfig(_ context.Context, userID string, category core.Category) (*core.UserCategoryConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	config, ok := s.configs[userID][category]
	if !ok {
		return nil, nil
	}
	return copyConfig(config), nil
}

// PutConfig stores an override row.
func (s *MemoryStore) PutConfig(_ context.Context, config *core.UserCategoryConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.configs[config.UserID] == nil {
		s.configs[config.UserID] = make(map[core.Category]*core.UserCategoryConfig)
	}
	s.configs[config.UserID][config.CategoryID] = copyConfig(config)
	return nil
}

// DeleteConfig removes an override row.
func (s *MemoryStore) DeleteConfig(_ context.Context, userID string, category core.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.configs[userID], category)
	return nil
}

// ListConfigs returns all override rows for a user.
func (s *MemoryStore) ListConfigs(_ context.Context, userID string) ([]*core.UserCategoryConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	configs := make([]*core.UserCategoryConfig, 0, len(s.configs[userID]))
	for _, config := range s.configs[userID] {
		configs = append(configs, copyConfig(config))
	}
	return configs, nil
}

// GetCustomCategory retrieves a custom category row, or nil when absent.
func (s *MemoryStore) GetCustomCategory(_ context.Context, userID string, category core.Category) (*core.CustomCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	custom, ok := s.customs[userID][category]
	if !ok {
		return nil, nil
	}
	clone := *custom
	return &clone, nil
}

// PutCustomCategory stores a custom category row.
func (s *MemoryStore) PutCustomCategory(_ context.Context, custom *core.CustomCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.customs[custom.UserID] == nil {
		s.customs[custom.UserID] = make(map[core.Category]*core.CustomCategory)
	}
	clone := *custom
	s.customs[custom.UserID][custom.ID] = &clone
	return nil
}

// DeleteCustomCategory removes a custom category row.
func (s *MemoryStore) DeleteCustomCategory(_ context.Context, userID string, category core.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.customs[userID], category)
	return nil
}

// ListCustomCategories returns all custom categories for a user.
func (s *MemoryStore) ListCustomCategories(_ context.Context, userID string) ([]*core.CustomCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customs := make([]*core.CustomCategory, 0, len(s.customs[userID]))
	for _, custom := range s.customs[userID] {
		clone := *custom
		customs = append(customs, &clone)
	}
	return customs, nil
}

// copyConfig deep-copies an override row, including its pointer fields.
func copyConfig(config *core.UserCategoryConfig) *core.UserCategoryConfig {
	clone := &core.UserCategoryConfig{
		UserID:     config.UserID,
		CategoryID: config.CategoryID,
	}
	if config.DisplayOrder != nil {
		order := *config.DisplayOrder
		clone.DisplayOrder = &order
	}
	if config.CustomLabel != nil {
		label := *config.CustomLabel
		clone.CustomLabel = &label
	}
	if config.CustomColor != nil {
		color := *config.CustomColor
		clone.CustomColor = &color
	}
	if config.IsHidden != nil {
		hidden := *config.IsHidden
		clone.IsHidden = &hidden
	}
	return clone
}
