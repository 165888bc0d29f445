package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"rentalpos-backend/internal/logger"
	"rentalpos-backend/internal/repository"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, so every repository
// works either standalone or inside a settlement transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db   *sql.DB
	inTx bool

	items        repository.ItemRepository
	customers    repository.CustomerRepository
	coupons      repository.CouponRepository
	transactions repository.TransactionRepository
	rentals      repository.RentalRepository
	employees    repository.EmployeeRepository
}

func NewStore(db *sql.DB) *Store {
	return newStore(db, db, false)
}

func newStore(db *sql.DB, q DBTX, inTx bool) *Store {
	return &Store{
		db:           db,
		inTx:         inTx,
		items:        NewItemRepository(q),
		customers:    NewCustomerRepository(q),
		coupons:      NewCouponRepository(q),
		transactions: NewTransactionRepository(q),
		rentals:      NewRentalRepository(q),
		employees:    NewEmployeeRepository(q),
	}
}

func (s *Store) Items() repository.ItemRepository               { return s.items }
func (s *Store) Customers() repository.CustomerRepository       { return s.customers }
func (s *Store) Coupons() repository.CouponRepository           { return s.coupons }
func (s *Store) Transactions() repository.TransactionRepository { return s.transactions }
func (s *Store) Rentals() repository.RentalRepository           { return s.rentals }
func (s *Store) Employees() repository.EmployeeRepository       { return s.employees }

// WithinTx runs fn against a Store bound to a single database
// transaction. A nested call reuses the transaction already in
// flight.
func (s *Store) WithinTx(ctx context.Context, fn func(repository.Store) error) error {
	if s.inTx {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txStore := newStore(s.db, tx, true)
	if err := fn(txStore); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logger.Error("transaction rollback failed", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// IsUniqueViolation reports whether err is a Postgres unique
// constraint violation, used to retry generated transaction numbers.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
