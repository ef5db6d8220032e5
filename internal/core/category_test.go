package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllCategories(t *testing.T) {
	categories := AllCategories()
	require.Len(t, categories, 21)

	assert.Equal(t, CategoryCVUnsolicited, categories[0])
	assert.Equal(t, CategoryDoubtful, categories[len(categories)-1])

	seen := make(map[Category]bool, len(categories))
	for _, c := range categories {
		assert.False(t, seen[c], "duplicate category %q", c)
		seen[c] = true
	}
}

func TestGroupOf_Totality(t *testing.T) {
	validGroups := make(map[Group]bool)
	for _, g := range AllGroups() {
		validGroups[g] = true
	}

	for _, c := range AllCategories() {
		group, ok := GroupOf(c)
		require.True(t, ok, "category %q has no group", c)
		assert.True(t, validGroups[group], "category %q maps to unknown group %q", c, group)
	}
}

func TestGroupOf_UnknownCategory(t *testing.T) {
	_, ok := GroupOf(Category("definitely_not_a_category"))
	assert.False(t, ok)
}

func TestDefaultMetadata(t *testing.T) {
	for _, c := range AllCategories() {
		meta, ok := DefaultMetadata(c)
		require.True(t, ok, "category %q has no default metadata", c)
		assert.Equal(t, c, meta.ID)
		assert.True(t, meta.IsDefault)
		assert.NotEmpty(t, meta.Label)
		assert.NotEmpty(t, meta.Color)
		assert.Positive(t, meta.Order)
	}
}

func TestSystemCategories(t *testing.T) {
	assert.True(t, IsSystemCategory(CategoryUnclassified))
	assert.True(t, IsSystemCategory(CategoryDoubtful))

	for _, c := range AllCategories() {
		if c == CategoryUnclassified || c == CategoryDoubtful {
			continue
		}
		assert.False(t, IsSystemCategory(c), "category %q should not be a system category", c)
	}
}

func TestGroupRank_FollowsDeclarationOrder(t *testing.T) {
	groups := AllGroups()
	require.Len(t, groups, 5)
	for i, g := range groups {
		assert.Equal(t, i, groupRank(g))
	}
	assert.Equal(t, len(groups), groupRank(Group("nope")))
}
