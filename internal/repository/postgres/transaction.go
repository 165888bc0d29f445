package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentalpos-backend/internal/domain"
	"rentalpos-backend/internal/repository"
)

type transactionRepository struct {
	db DBTX
}

func NewTransactionRepository(db DBTX) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

const transactionColumns = `id, transaction_number, transaction_type, employee_id, customer_id, coupon_id,
	subtotal, discount_amount, tax_amount, total, payment_method, amount_tendered, change_given, created_on`

func (r *transactionRepository) Create(ctx context.Context, t *domain.Transaction) error {
	query := `INSERT INTO transactions (transaction_number, transaction_type, employee_id, customer_id, coupon_id,
	          subtotal, discount_amount, tax_amount, total, payment_method, amount_tendered, change_given, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	if t.CreatedOn.IsZero() {
		t.CreatedOn = time.Now()
	}
	err := r.db.QueryRowContext(ctx, query, t.TransactionNumber, t.Type, t.EmployeeID, t.CustomerID, t.CouponID,
		t.Subtotal, t.DiscountAmount, t.TaxAmount, t.Total, t.PaymentMethod,
		t.AmountTendered, t.ChangeGiven, t.CreatedOn).Scan(&t.ID)
	if err != nil {
		return err
	}

	itemQuery := `INSERT INTO transaction_items (transaction_id, item_id, quantity, unit_price)
	              VALUES ($1, $2, $3, $4) RETURNING id`
	for i := range t.Items {
		t.Items[i].TransactionID = t.ID
		err := r.db.QueryRowContext(ctx, itemQuery, t.ID, t.Items[i].ItemID,
			t.Items[i].Quantity, t.Items[i].UnitPrice).Scan(&t.Items[i].ID)
		if err != nil {
			return fmt.Errorf("insert transaction item: %w", err)
		}
	}
	return nil
}

func (r *transactionRepository) GetByNumber(ctx context.Context, number string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_number = $1`
	t := &domain.Transaction{}
	err := r.db.QueryRowContext(ctx, query, number).Scan(&t.ID, &t.TransactionNumber, &t.Type,
		&t.EmployeeID, &t.CustomerID, &t.CouponID, &t.Subtotal, &t.DiscountAmount, &t.TaxAmount,
		&t.Total, &t.PaymentMethod, &t.AmountTendered, &t.ChangeGiven, &t.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.itemsFor(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	t.Items = items
	return t, nil
}

func (r *transactionRepository) itemsFor(ctx context.Context, transactionID int32) ([]domain.TransactionItem, error) {
	query := `SELECT ti.id, ti.transaction_id, ti.item_id, i.name, ti.quantity, ti.unit_price
	          FROM transaction_items ti JOIN items i ON i.id = ti.item_id
	          WHERE ti.transaction_id = $1 ORDER BY ti.id`
	rows, err := r.db.QueryContext(ctx, query, transactionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.TransactionItem
	for rows.Next() {
		var ti domain.TransactionItem
		if err := rows.Scan(&ti.ID, &ti.TransactionID, &ti.ItemID, &ti.ItemName, &ti.Quantity, &ti.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, ti)
	}
	return items, rows.Err()
}

func (r *transactionRepository) List(ctx context.Context, filter repository.TransactionFilter) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE 1=1`
	var args []any
	argIdx := 1

	if filter.Type != "" {
		query += fmt.Sprintf(" AND transaction_type = $%d", argIdx)
		args = append(args, filter.Type)
		argIdx++
	}
	if filter.EmployeeID != 0 {
		query += fmt.Sprintf(" AND employee_id = $%d", argIdx)
		args = append(args, filter.EmployeeID)
		argIdx++
	}
	if !filter.Start.IsZero() {
		query += fmt.Sprintf(" AND created_on >= $%d", argIdx)
		args = append(args, filter.Start)
		argIdx++
	}
	if !filter.End.IsZero() {
		query += fmt.Sprintf(" AND created_on <= $%d", argIdx)
		args = append(args, filter.End)
		argIdx++
	}

	query += " ORDER BY created_on DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, filter.Limit)
	}

	return r.queryTransactions(ctx, query, args...)
}

func (r *transactionRepository) ListBetween(ctx context.Context, start, end time.Time) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
	          WHERE created_on >= $1 AND created_on <= $2 ORDER BY created_on`
	return r.queryTransactions(ctx, query, start, end)
}

func (r *transactionRepository) EmployeeTotals(ctx context.Context) ([]domain.EmployeeStats, error) {
	query := `SELECT e.id, e.first_name || ' ' || e.last_name, count(t.id), COALESCE(sum(t.total), 0)
	          FROM employees e LEFT JOIN transactions t ON t.employee_id = e.id
	          WHERE e.is_active = true
	          GROUP BY e.id, e.first_name, e.last_name
	          ORDER BY e.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []domain.EmployeeStats
	for rows.Next() {
		var s domain.EmployeeStats
		if err := rows.Scan(&s.EmployeeID, &s.EmployeeName, &s.TransactionCount, &s.TotalAmount); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *transactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.ID, &t.TransactionNumber, &t.Type, &t.EmployeeID, &t.CustomerID,
			&t.CouponID, &t.Subtotal, &t.DiscountAmount, &t.TaxAmount, &t.Total,
			&t.PaymentMethod, &t.AmountTendered, &t.ChangeGiven, &t.CreatedOn); err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}
