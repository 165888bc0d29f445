package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rentalpos-backend/internal/domain"
	"rentalpos-backend/internal/logger"
	"rentalpos-backend/internal/repository"
	"rentalpos-backend/internal/repository/postgres"
)

type inventoryService struct {
	store repository.Store
}

func NewInventoryService(store repository.Store) InventoryService {
	return &inventoryService{store: store}
}

func (s *inventoryService) CreateItem(ctx context.Context, input CreateItemInput) (*domain.Item, error) {
	itemID := strings.TrimSpace(input.ItemID)
	if itemID == "" {
		return nil, errors.New("item id is required")
	}
	if input.Price.IsNegative() {
		return nil, errors.New("price cannot be negative")
	}
	if input.Quantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}

	if _, err := s.store.Items().GetByItemID(ctx, itemID); err == nil {
		return nil, fmt.Errorf("item id %s already exists", itemID)
	} else if !errors.Is(err, domain.ErrItemNotFound) {
		return nil, err
	}

	itemType := input.ItemType
	if itemType == "" {
		itemType = domain.ItemTypeSale
	}
	threshold := input.LowStockThreshold
	if threshold <= 0 {
		threshold = 10
	}

	item := &domain.Item{
		ItemID:            itemID,
		Name:              input.Name,
		Price:             input.Price,
		Quantity:          input.Quantity,
		ItemType:          itemType,
		Description:       input.Description,
		IsActive:          true,
		LowStockThreshold: threshold,
	}
	// The pre-check cannot see a concurrent insert; the unique
	// constraint is the authority.
	if err := s.store.Items().Create(ctx, item); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, fmt.Errorf("item id %s already exists", itemID)
		}
		return nil, err
	}

	logger.Info("Item added", "item_id", item.ItemID, "name", item.Name)
	return item, nil
}

func (s *inventoryService) GetItem(ctx context.Context, itemID string) (*domain.Item, error) {
	return s.store.Items().GetByItemID(ctx, itemID)
}

func (s *inventoryService) UpdateItem(ctx context.Context, item *domain.Item) error {
	if item.Price.IsNegative() {
		return errors.New("price cannot be negative")
	}
	if item.Quantity < 0 {
		return domain.ErrInvalidQuantity
	}
	if err := s.store.Items().Update(ctx, item); err != nil {
		return err
	}
	logger.Info("Item updated", "item_id", item.ItemID)
	return nil
}

// AddStock durably increments quantity; the read and write share one
// transaction so a crash cannot leave a partial update.
func (s *inventoryService) AddStock(ctx context.Context, itemID string, amount int32) (*domain.Item, error) {
	var item *domain.Item
	err := s.store.WithinTx(ctx, func(st repository.Store) error {
		var err error
		item, err = st.Items().GetByItemIDForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		if err := item.AddStock(amount); err != nil {
			return err
		}
		return st.Items().UpdateQuantity(ctx, item.ID, item.Quantity)
	})
	if err != nil {
		return nil, err
	}
	logger.Info("Stock added", "item_id", itemID, "amount", amount, "quantity", item.Quantity)
	return item, nil
}

func (s *inventoryService) RemoveStock(ctx context.Context, itemID string, amount int32) (*domain.Item, error) {
	var item *domain.Item
	err := s.store.WithinTx(ctx, func(st repository.Store) error {
		var err error
		item, err = st.Items().GetByItemIDForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		if err := item.RemoveStock(amount); err != nil {
			return err
		}
		return st.Items().UpdateQuantity(ctx, item.ID, item.Quantity)
	})
	if err != nil {
		return nil, err
	}
	logger.Info("Stock removed", "item_id", itemID, "amount", amount, "quantity", item.Quantity)
	return item, nil
}

func (s *inventoryService) setActive(ctx context.Context, itemID string, active bool) error {
	item, err := s.store.Items().GetByItemID(ctx, itemID)
	if err != nil {
		return err
	}
	item.IsActive = active
	return s.store.Items().Update(ctx, item)
}

func (s *inventoryService) DeactivateItem(ctx context.Context, itemID string) error {
	if err := s.setActive(ctx, itemID, false); err != nil {
		return err
	}
	logger.Info("Item deactivated", "item_id", itemID)
	return nil
}

func (s *inventoryService) ActivateItem(ctx context.Context, itemID string) error {
	if err := s.setActive(ctx, itemID, true); err != nil {
		return err
	}
	logger.Info("Item activated", "item_id", itemID)
	return nil
}

func (s *inventoryService) ListItems(ctx context.Context, itemType domain.ItemType, activeOnly bool) ([]domain.Item, error) {
	return s.store.Items().List(ctx, itemType, activeOnly)
}

func (s *inventoryService) SearchItems(ctx context.Context, query string, itemType domain.ItemType) ([]domain.Item, error) {
	return s.store.Items().Search(ctx, query, itemType)
}

func (s *inventoryService) LowStockItems(ctx context.Context) ([]domain.Item, error) {
	return s.store.Items().ListLowStock(ctx)
}

func (s *inventoryService) OutOfStockItems(ctx context.Context) ([]domain.Item, error) {
	return s.store.Items().ListOutOfStock(ctx)
}

func (s *inventoryService) Stats(ctx context.Context) (*domain.InventoryStats, error) {
	return s.store.Items().Stats(ctx)
}
