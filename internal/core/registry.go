package core

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// SystemCategoryError is returned when a mutation would touch the identity of
// a system category (unclassified, doubtful).
type SystemCategoryError struct {
	Category Category
}

func (e *SystemCategoryError) Error() string {
	return fmt.Sprintf("category %q is a system category and cannot be modified or deleted", e.Category)
}

// CategoryNotFoundError is returned when a mutation references an id that is
// neither a default category nor one of the user's custom categories.
type CategoryNotFoundError struct {
	Category Category
}

func (e *CategoryNotFoundError) Error() string {
	return fmt.Sprintf("category %q not found", e.Category)
}

// CategoryRegistry resolves effective category metadata per user and applies
// override mutations. Mutators are serialized per (user, category) key;
// concurrent same-key writes race last-write-wins, which is the documented
// behavior, not an accident. Validation happens before any write, so a failed
// mutation never changes the store.
type CategoryRegistry struct {
	store  CategoryConfigStore
	logger *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewCategoryRegistry creates a registry over the given store.
func NewCategoryRegistry(store CategoryConfigStore, logger *zap.Logger) *CategoryRegistry {
	return &CategoryRegistry{
		store:  store,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

// keyLock returns the mutex serializing one (user, category) key.
func (r *CategoryRegistry) keyLock(userID string, category Category) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := userID + "\x00" + string(category)
	lock, ok := r.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[key] = lock
	}
	return lock
}

// Resolve returns the user's effective category list: the 21 defaults with
// override rows overlaid field by field, plus the user's custom categories,
// sorted by group declaration order then display order.
func (r *CategoryRegistry) Resolve(ctx context.Context, userID string) ([]CategoryMetadata, error) {
	configs, err := r.store.ListConfigs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list category configs: %w", err)
	}
	overrides := make(map[Category]*UserCategoryConfig, len(configs))
	for _, config := range configs {
		overrides[config.CategoryID] = config
	}

	resolved := make([]CategoryMetadata, 0, len(allCategories))
	for _, category := range allCategories {
		meta := defaultMetadata[category]
		if config, ok := overrides[category]; ok {
			applyOverride(&meta, config)
		}
		resolved = append(resolved, meta)
	}

	customs, err := r.store.ListCustomCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list custom categories: %w", err)
	}
	for _, custom := range customs {
		resolved = append(resolved, CategoryMetadata{
			ID:         custom.ID,
			Label:      custom.Label,
			ShortLabel: custom.ShortLabel,
			Group:      custom.Group,
			Color:      custom.Color,
			Icon:       custom.Icon,
			Order:      custom.Order,
		})
	}

	sort.SliceStable(resolved, func(i, j int) bool {
		if gi, gj := groupRank(resolved[i].Group), groupRank(resolved[j].Group); gi != gj {
			return gi < gj
		}
		return resolved[i].Order < resolved[j].Order
	})

	return resolved, nil
}

// applyOverride overlays the non-nil override fields onto a default row.
func applyOverride(meta *CategoryMetadata, config *UserCategoryConfig) {
	if config.CustomLabel != nil {
		meta.Label = *config.CustomLabel
	}
	if config.CustomColor != nil {
		meta.Color = *config.CustomColor
	}
	if config.DisplayOrder != nil {
		meta.Order = *config.DisplayOrder
	}
	if config.IsHidden != nil {
		meta.Hidden = *config.IsHidden
	}
}

// IsHidden reports whether the user has hidden a category.
func (r *CategoryRegistry) IsHidden(ctx context.Context, userID string, category Category) (bool, error) {
	config, err := r.store.GetConfig(ctx, userID, category)
	if err != nil {
		return false, fmt.Errorf("failed to read category config: %w", err)
	}
	return config != nil && config.IsHidden != nil && *config.IsHidden, nil
}

// Rename sets a custom label. System categories keep their identity.
func (r *CategoryRegistry) Rename(ctx context.Context, userID string, category Category, label string) error {
	return r.mutate(ctx, userID, category, true, func(config *UserCategoryConfig) {
		config.CustomLabel = &label
	}, func(custom *CustomCategory) {
		custom.Label = label
	})
}

// Recolor sets a custom color. System categories keep their identity.
func (r *CategoryRegistry) Recolor(ctx context.Context, userID string, category Category, color string) error {
	return r.mutate(ctx, userID, category, true, func(config *UserCategoryConfig) {
		config.CustomColor = &color
	}, func(custom *CustomCategory) {
		custom.Color = color
	})
}

// Reorder sets the display order. Allowed for every category, system ones
// included: position is not identity.
func (r *CategoryRegistry) Reorder(ctx context.Context, userID string, category Category, order int) error {
	return r.mutate(ctx, userID, category, false, func(config *UserCategoryConfig) {
		config.DisplayOrder = &order
	}, func(custom *CustomCategory) {
		custom.Order = order
	})
}

// Hide marks a category hidden for display. System categories cannot be
// hidden: they are the fallback targets.
func (r *CategoryRegistry) Hide(ctx context.Context, userID string, category Category, hidden bool) error {
	return r.mutate(ctx, userID, category, true, func(config *UserCategoryConfig) {
		config.IsHidden = &hidden
	}, nil)
}

// mutate validates and applies one override mutation under the key lock.
// protected guards system-category identity; defaultFn edits the override row
// of a default category, customFn edits a custom category row directly (nil
// means the mutation does not apply to custom categories).
func (r *CategoryRegistry) mutate(
	ctx context.Context,
	userID string,
	category Category,
	protected bool,
	defaultFn func(*UserCategoryConfig),
	customFn func(*CustomCategory),
) error {
	if protected && IsSystemCategory(category) {
		return &SystemCategoryError{Category: category}
	}

	lock := r.keyLock(userID, category)
	lock.Lock()
	defer lock.Unlock()

	if _, isDefault := defaultMetadata[category]; isDefault {
		config, err := r.store.GetConfig(ctx, userID, category)
		if err != nil {
			return fmt.Errorf("failed to read category config: %w", err)
		}
		if config == nil {
			config = &UserCategoryConfig{UserID: userID, CategoryID: category}
		}
		defaultFn(config)
		if err := r.store.PutConfig(ctx, config); err != nil {
			return fmt.Errorf("failed to write category config: %w", err)
		}
		return nil
	}

	custom, err := r.store.GetCustomCategory(ctx, userID, category)
	if err != nil {
		return fmt.Errorf("failed to read custom category: %w", err)
	}
	if custom == nil {
		return &CategoryNotFoundError{Category: category}
	}
	if customFn == nil {
		return &CategoryNotFoundError{Category: category}
	}
	customFn(custom)
	if err := r.store.PutCustomCategory(ctx, custom); err != nil {
		return fmt.Errorf("failed to write custom category: %w", err)
	}
	return nil
}

// CreateCustomCategory appends a user-created category.
func (r *CategoryRegistry) CreateCustomCategory(ctx context.Context, custom *CustomCategory) error {
	if custom.ID == "" || custom.Label == "" {
		return fmt.Errorf("custom category requires an id and a label")
	}
	if _, isDefault := defaultMetadata[custom.ID]; isDefault {
		return fmt.Errorf("custom category id %q collides with a default category", custom.ID)
	}
	if groupRank(custom.Group) >= len(allGroups) {
		return fmt.Errorf("unknown group %q", custom.Group)
	}

	lock := r.keyLock(custom.UserID, custom.ID)
	lock.Lock()
	defer lock.Unlock()

	if err := r.store.PutCustomCategory(ctx, custom); err != nil {
		return fmt.Errorf("failed to create custom category: %w", err)
	}
	r.logger.Info("Created custom category",
		zap.String("user_id", custom.UserID),
		zap.String("category", string(custom.ID)),
		zap.String("group", string(custom.Group)))
	return nil
}

// DeleteCategory removes a category from the user's view. System categories
// can never be deleted. Deleting a default category only hides it (already
// triaged mail keeps its label); deleting a custom category removes its row.
func (r *CategoryRegistry) DeleteCategory(ctx context.Context, userID string, category Category) error {
	if IsSystemCategory(category) {
		return &SystemCategoryError{Category: category}
	}

	if _, isDefault := defaultMetadata[category]; isDefault {
		hidden := true
		return r.Hide(ctx, userID, category, hidden)
	}

	lock := r.keyLock(userID, category)
	lock.Lock()
	defer lock.Unlock()

	custom, err := r.store.GetCustomCategory(ctx, userID, category)
	if err != nil {
		return fmt.Errorf("failed to read custom category: %w", err)
	}
	if custom == nil {
		return &CategoryNotFoundError{Category: category}
	}
	if err := r.store.DeleteCustomCategory(ctx, userID, category); err != nil {
		return fmt.Errorf("failed to delete custom category: %w", err)
	}

	r.logger.Info("Deleted custom category",
		zap.String("user_id", userID),
		zap.String("category", string(category)))
	return nil
}
