package service

import (
	"context"
	"testing"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rentalpos-backend/internal/domain"
)

func TestInventoryService_CreateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Defaults", func(t *testing.T) {
		store := NewMockStore()
		svc := NewInventoryService(store)

		store.ItemRepo.On("GetByItemID", ctx, "SAL001").Return(nil, domain.ErrItemNotFound).Once()
		store.ItemRepo.On("Create", ctx, mock.MatchedBy(func(i *domain.Item) bool {
			return i.ItemType == domain.ItemTypeSale && i.LowStockThreshold == 10 && i.IsActive
		})).Return(nil).Once()

		item, err := svc.CreateItem(ctx, CreateItemInput{
			ItemID:   "SAL001",
			Name:     "Widget",
			Price:    decimal.RequireFromString("9.99"),
			Quantity: 50,
		})
		require.NoError(t, err)
		assert.Equal(t, "SAL001", item.ItemID)
		store.AssertExpectations(t)
	})

	t.Run("RejectsDuplicate", func(t *testing.T) {
		store := NewMockStore()
		svc := NewInventoryService(store)

		existing := &domain.Item{ItemID: "SAL001"}
		store.ItemRepo.On("GetByItemID", ctx, "SAL001").Return(existing, nil).Once()

		_, err := svc.CreateItem(ctx, CreateItemInput{ItemID: "SAL001", Name: "Widget"})
		assert.Error(t, err)
		store.ItemRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("RejectsDuplicateInsertedConcurrently", func(t *testing.T) {
		store := NewMockStore()
		svc := NewInventoryService(store)

		// The duplicate lands between the pre-check and the insert, so
		// only the unique constraint can catch it.
		store.ItemRepo.On("GetByItemID", ctx, "SAL001").Return(nil, domain.ErrItemNotFound).Once()
		store.ItemRepo.On("Create", ctx, mock.Anything).
			Return(&pq.Error{Code: "23505"}).Once()

		_, err := svc.CreateItem(ctx, CreateItemInput{
			ItemID: "SAL001",
			Name:   "Widget",
			Price:  decimal.RequireFromString("9.99"),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("RejectsNegativePrice", func(t *testing.T) {
		store := NewMockStore()
		svc := NewInventoryService(store)

		_, err := svc.CreateItem(ctx, CreateItemInput{
			ItemID: "SAL001",
			Price:  decimal.NewFromInt(-1),
		})
		assert.Error(t, err)
	})
}

func TestInventoryService_Stock(t *testing.T) {
	ctx := context.Background()

	t.Run("AddStock", func(t *testing.T) {
		store := NewMockStore()
		svc := NewInventoryService(store)

		item := &domain.Item{ID: 1, ItemID: "SAL001", Quantity: 5}
		store.ItemRepo.On("GetByItemIDForUpdate", ctx, "SAL001").Return(item, nil).Once()
		store.ItemRepo.On("UpdateQuantity", ctx, int32(1), int32(15)).Return(nil).Once()

		updated, err := svc.AddStock(ctx, "SAL001", 10)
		require.NoError(t, err)
		assert.Equal(t, int32(15), updated.Quantity)
	})

	t.Run("RemoveStockRejectsOverdraw", func(t *testing.T) {
		store := NewMockStore()
		svc := NewInventoryService(store)

		item := &domain.Item{ID: 1, ItemID: "SAL001", Quantity: 5}
		store.ItemRepo.On("GetByItemIDForUpdate", ctx, "SAL001").Return(item, nil).Once()

		_, err := svc.RemoveStock(ctx, "SAL001", 6)
		var stockErr *domain.InsufficientStockError
		assert.ErrorAs(t, err, &stockErr)
		store.ItemRepo.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
	})
}
