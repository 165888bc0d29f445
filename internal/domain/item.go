package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ItemType string

const (
	ItemTypeSale   ItemType = "SALE"
	ItemTypeRental ItemType = "RENTAL"
)

// Item represents a product in inventory. ItemID is the business key
// printed on tags (e.g. "SAL001"); ID is the database row.
type Item struct {
	ID                int32           `json:"id"`
	ItemID            string          `json:"item_id"`
	Name              string          `json:"name"`
	Price             decimal.Decimal `json:"price"`
	Quantity          int32           `json:"quantity"`
	ItemType          ItemType        `json:"item_type"`
	Description       string          `json:"description,omitempty"`
	IsActive          bool            `json:"is_active"`
	LowStockThreshold int32           `json:"low_stock_threshold"`
	CreatedOn         time.Time       `json:"created_on"`
	UpdatedOn         time.Time       `json:"updated_on"`
}

// AddStock increments on-hand quantity. Amount must be positive.
func (i *Item) AddStock(amount int32) error {
	if amount <= 0 {
		return ErrInvalidQuantity
	}
	i.Quantity += amount
	return nil
}

// RemoveStock decrements on-hand quantity. The quantity invariant is
// never violated: a decrement past zero is rejected, not clamped.
func (i *Item) RemoveStock(amount int32) error {
	if amount <= 0 {
		return ErrInvalidQuantity
	}
	if amount > i.Quantity {
		return &InsufficientStockError{ItemID: i.ItemID, Requested: amount, Available: i.Quantity}
	}
	i.Quantity -= amount
	return nil
}

func (i *Item) IsOutOfStock() bool {
	return i.Quantity == 0
}

func (i *Item) IsLowStock() bool {
	return i.Quantity <= i.LowStockThreshold
}

func (i *Item) IsRentalItem() bool {
	return i.ItemType == ItemTypeRental
}

func (i *Item) IsSaleItem() bool {
	return i.ItemType == ItemTypeSale
}
