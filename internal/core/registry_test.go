package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeStore is a minimal in-memory CategoryConfigStore for registry tests.
type fakeStore struct {
	configs map[string]map[Category]*UserCategoryConfig
	customs map[string]map[Category]*CustomCategory
	err     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		configs: make(map[string]map[Category]*UserCategoryConfig),
		customs: make(map[string]map[Category]*CustomCategory),
	}
}

func (s *fakeStore) GetConfig(_ context.Context, userID string, category Category) (*UserCategoryConfig, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.configs[userID][category], nil
}

func (s *fakeStore) PutConfig(_ context.Context, config *UserCategoryConfig) error {
	if s.err != nil {
		return s.err
	}
	if s.configs[config.UserID] == nil {
		s.configs[config.UserID] = make(map[Category]*UserCategoryConfig)
	}
	s.configs[config.UserID][config.CategoryID] = config
	return nil
}

func (s *fakeStore) DeleteConfig(_ context.Context, userID string, category Category) error {
	delete(s.configs[userID], category)
	return nil
}

func (s *fakeStore) ListConfigs(_ context.Context, userID string) ([]*UserCategoryConfig, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*UserCategoryConfig
	for _, config := range s.configs[userID] {
		out = append(out, config)
	}
	return out, nil
}

func (s *fakeStore) GetCustomCategory(_ context.Context, userID string, category Category) (*CustomCategory, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.customs[userID][category], nil
}

func (s *fakeStore) PutCustomCategory(_ context.Context, custom *CustomCategory) error {
	if s.err != nil {
		return s.err
	}
	if s.customs[custom.UserID] == nil {
		s.customs[custom.UserID] = make(map[Category]*CustomCategory)
	}
	s.customs[custom.UserID][custom.ID] = custom
	return nil
}

func (s *fakeStore) DeleteCustomCategory(_ context.Context, userID string, category Category) error {
	delete(s.customs[userID], category)
	return nil
}

func (s *fakeStore) ListCustomCategories(_ context.Context, userID string) ([]*CustomCategory, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*CustomCategory
	for _, custom := range s.customs[userID] {
		out = append(out, custom)
	}
	return out, nil
}

const testUser = "user-1"

func TestResolve_DefaultsOnly(t *testing.T) {
	registry := NewCategoryRegistry(newFakeStore(), zap.NewNop())

	resolved, err := registry.Resolve(context.Background(), testUser)
	require.NoError(t, err)
	require.Len(t, resolved, 21)

	// Sorted by group declaration order, then display order.
	assert.Equal(t, CategoryCVUnsolicited, resolved[0].ID)
	assert.Equal(t, GroupRecruitment, resolved[0].Group)
	assert.Equal(t, CategoryDoubtful, resolved[len(resolved)-1].ID)

	lastRank := -1
	for _, meta := range resolved {
		rank := groupRank(meta.Group)
		assert.GreaterOrEqual(t, rank, lastRank, "groups out of order at %q", meta.ID)
		lastRank = rank
	}
}

func TestRename_OverlaysLabelOnly(t *testing.T) {
	registry := NewCategoryRegistry(newFakeStore(), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, registry.Rename(ctx, testUser, CategoryInvoice, "Factures"))

	resolved, err := registry.Resolve(ctx, testUser)
	require.NoError(t, err)

	var invoice *CategoryMetadata
	for i := range resolved {
		if resolved[i].ID == CategoryInvoice {
			invoice = &resolved[i]
		}
	}
	require.NotNil(t, invoice)
	assert.Equal(t, "Factures", invoice.Label)

	// Everything else keeps its defaults.
	def, _ := DefaultMetadata(CategoryInvoice)
	assert.Equal(t, def.Color, invoice.Color)
	assert.Equal(t, def.Order, invoice.Order)
	assert.False(t, invoice.Hidden)

	// Other users are unaffected.
	other, err := registry.Resolve(ctx, "user-2")
	require.NoError(t, err)
	for _, meta := range other {
		if meta.ID == CategoryInvoice {
			assert.Equal(t, def.Label, meta.Label)
		}
	}
}

func TestRename_Idempotent(t *testing.T) {
	registry := NewCategoryRegistry(newFakeStore(), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, registry.Rename(ctx, testUser, CategoryQuote, "Devis"))
	require.NoError(t, registry.Rename(ctx, testUser, CategoryQuote, "Devis"))

	resolved, err := registry.Resolve(ctx, testUser)
	require.NoError(t, err)
	count := 0
	for _, meta := range resolved {
		if meta.ID == CategoryQuote {
			count++
			assert.Equal(t, "Devis", meta.Label)
		}
	}
	assert.Equal(t, 1, count)
}

func TestSystemCategoryProtection(t *testing.T) {
	registry := NewCategoryRegistry(newFakeStore(), zap.NewNop())
	ctx := context.Background()

	for _, category := range []Category{CategoryUnclassified, CategoryDoubtful} {
		var sysErr *SystemCategoryError

		err := registry.Rename(ctx, testUser, category, "nope")
		require.ErrorAs(t, err, &sysErr)

		err = registry.Recolor(ctx, testUser, category, "#000000")
		require.ErrorAs(t, err, &sysErr)

		err = registry.Hide(ctx, testUser, category, true)
		require.ErrorAs(t, err, &sysErr)

		err = registry.DeleteCategory(ctx, testUser, category)
		require.ErrorAs(t, err, &sysErr)

		// Reordering is allowed: position is not identity.
		assert.NoError(t, registry.Reorder(ctx, testUser, category, 50))
	}
}

func TestHide_AndIsHidden(t *testing.T) {
	registry := NewCategoryRegistry(newFakeStore(), zap.NewNop())
	ctx := context.Background()

	hidden, err := registry.IsHidden(ctx, testUser, CategoryNewsletter)
	require.NoError(t, err)
	assert.False(t, hidden)

	require.NoError(t, registry.Hide(ctx, testUser, CategoryNewsletter, true))

	hidden, err = registry.IsHidden(ctx, testUser, CategoryNewsletter)
	require.NoError(t, err)
	assert.True(t, hidden)

	// The hidden category stays in the resolved list, flagged.
	resolved, err := registry.Resolve(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, resolved, 21)
	for _, meta := range resolved {
		if meta.ID == CategoryNewsletter {
			assert.True(t, meta.Hidden)
		}
	}
}

func TestDeleteDefaultCategoryHidesIt(t *testing.T) {
	registry := NewCategoryRegistry(newFakeStore(), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, registry.DeleteCategory(ctx, testUser, CategoryAdvertising))

	hidden, err := registry.IsHidden(ctx, testUser, CategoryAdvertising)
	require.NoError(t, err)
	assert.True(t, hidden)

	resolved, err := registry.Resolve(ctx, testUser)
	require.NoError(t, err)
	assert.Len(t, resolved, 21, "defaults are never removed from the resolved list")
}

func TestCustomCategoryLifecycle(t *testing.T) {
	registry := NewCategoryRegistry(newFakeStore(), zap.NewNop())
	ctx := context.Background()

	custom := &CustomCategory{
		ID:     "legal",
		UserID: testUser,
		Label:  "Legal",
		Group:  GroupBusiness,
		Color:  "#475569",
		Order:  9,
	}
	require.NoError(t, registry.CreateCustomCategory(ctx, custom))

	resolved, err := registry.Resolve(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, resolved, 22)

	found := false
	for _, meta := range resolved {
		if meta.ID == "legal" {
			found = true
			assert.Equal(t, GroupBusiness, meta.Group)
			assert.False(t, meta.IsDefault)
		}
	}
	assert.True(t, found)

	require.NoError(t, registry.Rename(ctx, testUser, "legal", "Legal & Compliance"))
	require.NoError(t, registry.DeleteCategory(ctx, testUser, "legal"))

	resolved, err = registry.Resolve(ctx, testUser)
	require.NoError(t, err)
	assert.Len(t, resolved, 21)
}

func TestCreateCustomCategory_Validation(t *testing.T) {
	registry := NewCategoryRegistry(newFakeStore(), zap.NewNop())
	ctx := context.Background()

	err := registry.CreateCustomCategory(ctx, &CustomCategory{UserID: testUser, Group: GroupOther})
	assert.Error(t, err)

	err = registry.CreateCustomCategory(ctx, &CustomCategory{
		ID: CategoryInvoice, UserID: testUser, Label: "Shadow invoice", Group: GroupBusiness,
	})
	assert.ErrorContains(t, err, "collides")

	err = registry.CreateCustomCategory(ctx, &CustomCategory{
		ID: "misc", UserID: testUser, Label: "Misc", Group: "made-up-group",
	})
	assert.ErrorContains(t, err, "unknown group")
}

func TestMutateUnknownCategory(t *testing.T) {
	registry := NewCategoryRegistry(newFakeStore(), zap.NewNop())
	ctx := context.Background()

	var notFound *CategoryNotFoundError
	err := registry.Rename(ctx, testUser, "ghost", "Ghost")
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, Category("ghost"), notFound.Category)

	err = registry.DeleteCategory(ctx, testUser, "ghost")
	require.ErrorAs(t, err, &notFound)
}

func TestMutate_FailedValidationWritesNothing(t *testing.T) {
	store := newFakeStore()
	registry := NewCategoryRegistry(store, zap.NewNop())
	ctx := context.Background()

	err := registry.Rename(ctx, testUser, CategoryDoubtful, "nope")
	require.Error(t, err)
	assert.Empty(t, store.configs[testUser])
}

func TestRegistry_StoreErrorPropagates(t *testing.T) {
	store := newFakeStore()
	store.err = errors.New("store down")
	registry := NewCategoryRegistry(store, zap.NewNop())

	_, err := registry.Resolve(context.Background(), testUser)
	assert.ErrorContains(t, err, "store down")

	err = registry.Rename(context.Background(), testUser, CategoryInvoice, "x")
	assert.ErrorContains(t, err, "store down")
}
