package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"rentalpos-backend/internal/domain"
	"rentalpos-backend/internal/repository"
)

type rentalRepository struct {
	db DBTX
}

func NewRentalRepository(db DBTX) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, customer_id, item_id, transaction_id, quantity, rental_price,
	rental_date, due_date, returned, return_date, late_fee, notes, created_on`

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (customer_id, item_id, transaction_id, quantity, rental_price,
	          rental_date, due_date, returned, return_date, late_fee, notes, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	if rt.CreatedOn.IsZero() {
		rt.CreatedOn = time.Now()
	}
	return r.db.QueryRowContext(ctx, query, rt.CustomerID, rt.ItemID, rt.TransactionID, rt.Quantity,
		rt.RentalPrice, rt.RentalDate, rt.DueDate, rt.Returned, rt.ReturnDate, rt.LateFee,
		rt.Notes, rt.CreatedOn).Scan(&rt.ID)
}

func (r *rentalRepository) scanRental(row *sql.Row, notFound error) (*domain.Rental, error) {
	rt := &domain.Rental{}
	err := row.Scan(&rt.ID, &rt.CustomerID, &rt.ItemID, &rt.TransactionID, &rt.Quantity,
		&rt.RentalPrice, &rt.RentalDate, &rt.DueDate, &rt.Returned, &rt.ReturnDate,
		&rt.LateFee, &rt.Notes, &rt.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	return r.scanRental(r.db.QueryRowContext(ctx, query, id), domain.ErrRentalNotFound)
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	query := `UPDATE rentals SET due_date=$1, returned=$2, return_date=$3, late_fee=$4, notes=$5 WHERE id=$6`
	_, err := r.db.ExecContext(ctx, query, rt.DueDate, rt.Returned, rt.ReturnDate, rt.LateFee, rt.Notes, rt.ID)
	return err
}

func (r *rentalRepository) FindActiveByCustomerAndItem(ctx context.Context, customerID, itemID int32) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals
	          WHERE customer_id = $1 AND item_id = $2 AND returned = false
	          ORDER BY rental_date LIMIT 1`
	return r.scanRental(r.db.QueryRowContext(ctx, query, customerID, itemID), domain.ErrNoActiveRental)
}

func (r *rentalRepository) ListActive(ctx context.Context, customerID *int32) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE returned = false`
	var args []any
	if customerID != nil {
		args = append(args, *customerID)
		query += ` AND customer_id = $1`
	}
	query += ` ORDER BY due_date`
	return r.queryRentals(ctx, query, args...)
}

func (r *rentalRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals
	          WHERE returned = false AND due_date < $1 ORDER BY due_date`
	return r.queryRentals(ctx, query, asOf)
}

func (r *rentalRepository) ListDueSoon(ctx context.Context, from, to time.Time) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals
	          WHERE returned = false AND due_date >= $1 AND due_date <= $2 ORDER BY due_date`
	return r.queryRentals(ctx, query, from, to)
}

func (r *rentalRepository) ListByCustomer(ctx context.Context, customerID int32) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals
	          WHERE customer_id = $1 ORDER BY rental_date DESC`
	return r.queryRentals(ctx, query, customerID)
}

func (r *rentalRepository) CollectedLateFees(ctx context.Context) (decimal.Decimal, error) {
	query := `SELECT COALESCE(sum(late_fee), 0) FROM rentals WHERE returned = true`
	var total decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query).Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *rentalRepository) CountByState(ctx context.Context, asOf time.Time) (active, overdue, returned int32, err error) {
	query := `SELECT count(*) FILTER (WHERE returned = false),
	                 count(*) FILTER (WHERE returned = false AND due_date < $1),
	                 count(*) FILTER (WHERE returned = true)
	          FROM rentals`
	err = r.db.QueryRowContext(ctx, query, asOf).Scan(&active, &overdue, &returned)
	return active, overdue, returned, err
}

func (r *rentalRepository) queryRentals(ctx context.Context, query string, args ...any) ([]domain.Rental, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := rows.Scan(&rt.ID, &rt.CustomerID, &rt.ItemID, &rt.TransactionID, &rt.Quantity,
			&rt.RentalPrice, &rt.RentalDate, &rt.DueDate, &rt.Returned, &rt.ReturnDate,
			&rt.LateFee, &rt.Notes, &rt.CreatedOn); err != nil {
			return nil, err
		}
		rentals = append(rentals, rt)
	}
	return rentals, rows.Err()
}
