package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCartAddAndList(t *testing.T) {
	cart := NewCartService(newTestDB(t))

	line, err := cart.AddItem(1, 1, 9.99, 2)
	require.NoError(t, err)
	assert.NotZero(t, line.ID)

	items, err := cart.ListItems()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].ItemID)
	assert.Equal(t, 1, items[0].SizeIndex)
	assert.Equal(t, 9.99, items[0].UnitPrice)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestCartAddSameItemTwice(t *testing.T) {
	cart := NewCartService(newTestDB(t))

	_, err := cart.AddItem(1, 0, 6.99, 1)
	require.NoError(t, err)
	_, err = cart.AddItem(1, 0, 6.99, 1)
	require.NoError(t, err)

	// No deduplication: the same catalog item yields separate lines.
	items, err := cart.ListItems()
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestCartRemoveItem(t *testing.T) {
	cart := NewCartService(newTestDB(t))

	line, err := cart.AddItem(1, 0, 6.99, 1)
	require.NoError(t, err)
	keep, err := cart.AddItem(2, 2, 12.49, 1)
	require.NoError(t, err)

	require.NoError(t, cart.RemoveItem(line))

	_, err = cart.GetItem(line.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	items, err := cart.ListItems()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, keep.ID, items[0].ID)
}

func TestCartClearAll(t *testing.T) {
	cart := NewCartService(newTestDB(t))

	_, err := cart.AddItem(1, 0, 6.99, 1)
	require.NoError(t, err)
	_, err = cart.AddItem(2, 1, 10.49, 3)
	require.NoError(t, err)

	items, err := cart.ListItems()
	require.NoError(t, err)
	require.NoError(t, cart.ClearAll(items))

	items, err = cart.ListItems()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartClearAllEmpty(t *testing.T) {
	cart := NewCartService(newTestDB(t))
	assert.NoError(t, cart.ClearAll(nil))
}
