package shop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind(t *testing.T) {
	item, ok := Find("symbol_stars")
	require.True(t, ok)
	assert.Equal(t, CategorySymbol, item.Category)
	assert.Equal(t, int64(500), item.Price)

	_, ok = Find("nonexistent")
	assert.False(t, ok)
}

func TestByCategory(t *testing.T) {
	for _, category := range []string{
		CategorySymbol, CategoryEmojiPack, CategoryBg, CategoryAnimation,
	} {
		items := ByCategory(category)
		require.NotEmpty(t, items, category)
		for _, item := range items {
			assert.Equal(t, category, item.Category)
			assert.Positive(t, item.Price)
		}
	}
	assert.Empty(t, ByCategory("hats"))
}

func TestEquippedColumn(t *testing.T) {
	column, ok := equippedColumn(CategorySymbol)
	require.True(t, ok)
	assert.Equal(t, "equipped_symbol", column)

	_, ok = equippedColumn("hats")
	assert.False(t, ok)
}
