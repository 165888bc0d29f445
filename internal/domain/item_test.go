package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestItem_RemoveStock(t *testing.T) {
	item := &Item{ItemID: "SAL001", Quantity: 50, Price: decimal.RequireFromString("9.99")}

	t.Run("Decrements", func(t *testing.T) {
		err := item.RemoveStock(5)
		assert.NoError(t, err)
		assert.Equal(t, int32(45), item.Quantity)
	})

	t.Run("RejectsOverdraw", func(t *testing.T) {
		err := item.RemoveStock(100)
		var stockErr *InsufficientStockError
		assert.True(t, errors.As(err, &stockErr))
		assert.Equal(t, int32(100), stockErr.Requested)
		assert.Equal(t, int32(45), stockErr.Available)
		// quantity untouched on rejection
		assert.Equal(t, int32(45), item.Quantity)
	})

	t.Run("RejectsNonPositive", func(t *testing.T) {
		assert.ErrorIs(t, item.RemoveStock(0), ErrInvalidQuantity)
		assert.ErrorIs(t, item.RemoveStock(-3), ErrInvalidQuantity)
	})

	t.Run("ExactDrain", func(t *testing.T) {
		err := item.RemoveStock(45)
		assert.NoError(t, err)
		assert.Equal(t, int32(0), item.Quantity)
		assert.True(t, item.IsOutOfStock())
	})
}

func TestItem_AddStock(t *testing.T) {
	item := &Item{ItemID: "SAL001", Quantity: 2}

	assert.NoError(t, item.AddStock(8))
	assert.Equal(t, int32(10), item.Quantity)

	assert.ErrorIs(t, item.AddStock(0), ErrInvalidQuantity)
	assert.ErrorIs(t, item.AddStock(-1), ErrInvalidQuantity)
}

func TestItem_LowStock(t *testing.T) {
	item := &Item{Quantity: 10, LowStockThreshold: 10}
	assert.True(t, item.IsLowStock())

	item.Quantity = 11
	assert.False(t, item.IsLowStock())
}

func TestItem_Type(t *testing.T) {
	sale := &Item{ItemType: ItemTypeSale}
	rental := &Item{ItemType: ItemTypeRental}

	assert.True(t, sale.IsSaleItem())
	assert.False(t, sale.IsRentalItem())
	assert.True(t, rental.IsRentalItem())
	assert.False(t, rental.IsSaleItem())
}
