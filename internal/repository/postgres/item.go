package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentalpos-backend/internal/domain"
	"rentalpos-backend/internal/repository"
)

type itemRepository struct {
	db DBTX
}

func NewItemRepository(db DBTX) repository.ItemRepository {
	return &itemRepository{db: db}
}

const itemColumns = `id, item_id, name, price, quantity, item_type, description, is_active, low_stock_threshold, created_on, updated_on`

func (r *itemRepository) Create(ctx context.Context, it *domain.Item) error {
	query := `INSERT INTO items (item_id, name, price, quantity, item_type, description, is_active, low_stock_threshold, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, it.ItemID, it.Name, it.Price, it.Quantity, it.ItemType,
		it.Description, it.IsActive, it.LowStockThreshold, now, now).Scan(&it.ID)
}

func (r *itemRepository) scanItem(row *sql.Row) (*domain.Item, error) {
	it := &domain.Item{}
	err := row.Scan(&it.ID, &it.ItemID, &it.Name, &it.Price, &it.Quantity, &it.ItemType,
		&it.Description, &it.IsActive, &it.LowStockThreshold, &it.CreatedOn, &it.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (r *itemRepository) GetByID(ctx context.Context, id int32) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	return r.scanItem(r.db.QueryRowContext(ctx, query, id))
}

func (r *itemRepository) GetByItemID(ctx context.Context, itemID string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE item_id = $1`
	return r.scanItem(r.db.QueryRowContext(ctx, query, itemID))
}

func (r *itemRepository) GetByItemIDForUpdate(ctx context.Context, itemID string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE item_id = $1 FOR UPDATE`
	return r.scanItem(r.db.QueryRowContext(ctx, query, itemID))
}

func (r *itemRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`
	return r.scanItem(r.db.QueryRowContext(ctx, query, id))
}

func (r *itemRepository) Update(ctx context.Context, it *domain.Item) error {
	query := `UPDATE items SET name=$1, price=$2, quantity=$3, item_type=$4, description=$5,
	          is_active=$6, low_stock_threshold=$7, updated_on=$8 WHERE id=$9`
	_, err := r.db.ExecContext(ctx, query, it.Name, it.Price, it.Quantity, it.ItemType,
		it.Description, it.IsActive, it.LowStockThreshold, time.Now(), it.ID)
	return err
}

func (r *itemRepository) UpdateQuantity(ctx context.Context, id int32, quantity int32) error {
	query := `UPDATE items SET quantity=$1, updated_on=$2 WHERE id=$3`
	result, err := r.db.ExecContext(ctx, query, quantity, time.Now(), id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *itemRepository) List(ctx context.Context, itemType domain.ItemType, activeOnly bool) ([]domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE 1=1`
	var args []any
	if itemType != "" {
		args = append(args, itemType)
		query += ` AND item_type = $1`
	}
	if activeOnly {
		query += ` AND is_active = true`
	}
	query += ` ORDER BY name`
	return r.queryItems(ctx, query, args...)
}

func (r *itemRepository) Search(ctx context.Context, search string, itemType domain.ItemType) ([]domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE name ILIKE $1 AND is_active = true`
	args := []any{"%" + search + "%"}
	if itemType != "" {
		args = append(args, itemType)
		query += ` AND item_type = $2`
	}
	query += ` ORDER BY name`
	return r.queryItems(ctx, query, args...)
}

func (r *itemRepository) ListLowStock(ctx context.Context) ([]domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items
	          WHERE quantity <= low_stock_threshold AND is_active = true ORDER BY quantity`
	return r.queryItems(ctx, query)
}

func (r *itemRepository) ListOutOfStock(ctx context.Context) ([]domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items
	          WHERE quantity = 0 AND is_active = true ORDER BY name`
	return r.queryItems(ctx, query)
}

func (r *itemRepository) Stats(ctx context.Context) (*domain.InventoryStats, error) {
	query := `SELECT count(*),
	                 count(*) FILTER (WHERE item_type = 'SALE'),
	                 count(*) FILTER (WHERE item_type = 'RENTAL'),
	                 count(*) FILTER (WHERE quantity <= low_stock_threshold),
	                 count(*) FILTER (WHERE quantity = 0),
	                 COALESCE(sum(price * quantity), 0)
	          FROM items WHERE is_active = true`
	stats := &domain.InventoryStats{}
	err := r.db.QueryRowContext(ctx, query).Scan(&stats.TotalItems, &stats.SaleItems,
		&stats.RentalItems, &stats.LowStockItems, &stats.OutOfStockItems, &stats.TotalValue)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *itemRepository) queryItems(ctx context.Context, query string, args ...any) ([]domain.Item, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(&it.ID, &it.ItemID, &it.Name, &it.Price, &it.Quantity, &it.ItemType,
			&it.Description, &it.IsActive, &it.LowStockThreshold, &it.CreatedOn, &it.UpdatedOn); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
