package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentalpos-backend/internal/domain"
	"rentalpos-backend/internal/repository"
)

type customerRepository struct {
	db DBTX
}

func NewCustomerRepository(db DBTX) repository.CustomerRepository {
	return &customerRepository{db: db}
}

const customerColumns = `id, phone, name, email, address, is_active, created_on, updated_on`

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (phone, name, email, address, is_active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, c.Phone, c.Name, c.Email, c.Address, c.IsActive, now, now).Scan(&c.ID)
}

func (r *customerRepository) scanCustomer(row *sql.Row) (*domain.Customer, error) {
	c := &domain.Customer{}
	err := row.Scan(&c.ID, &c.Phone, &c.Name, &c.Email, &c.Address, &c.IsActive, &c.CreatedOn, &c.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *customerRepository) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return r.scanCustomer(r.db.QueryRowContext(ctx, query, id))
}

func (r *customerRepository) GetByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE phone = $1`
	return r.scanCustomer(r.db.QueryRowContext(ctx, query, phone))
}

func (r *customerRepository) Update(ctx context.Context, c *domain.Customer) error {
	query := `UPDATE customers SET name=$1, email=$2, address=$3, is_active=$4, updated_on=$5 WHERE id=$6`
	_, err := r.db.ExecContext(ctx, query, c.Name, c.Email, c.Address, c.IsActive, time.Now(), c.ID)
	return err
}
