package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"rentalpos-backend/internal/domain"
)

type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id int32) (*domain.Item, error)
	GetByItemID(ctx context.Context, itemID string) (*domain.Item, error)
	// GetByItemIDForUpdate locks the item row for the remainder of the
	// enclosing transaction so check-then-decrement cannot interleave
	// with another settlement.
	GetByItemIDForUpdate(ctx context.Context, itemID string) (*domain.Item, error)
	// GetByIDForUpdate is the same row lock keyed by database id.
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	UpdateQuantity(ctx context.Context, id int32, quantity int32) error
	List(ctx context.Context, itemType domain.ItemType, activeOnly bool) ([]domain.Item, error)
	Search(ctx context.Context, query string, itemType domain.ItemType) ([]domain.Item, error)
	ListLowStock(ctx context.Context) ([]domain.Item, error)
	ListOutOfStock(ctx context.Context) ([]domain.Item, error)
	Stats(ctx context.Context) (*domain.InventoryStats, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id int32) (*domain.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
}

type CouponRepository interface {
	Create(ctx context.Context, coupon *domain.Coupon) error
	GetByID(ctx context.Context, id int32) (*domain.Coupon, error)
	// GetByCode expects an already-uppercased code.
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
	// GetByCodeForUpdate locks the coupon row so concurrent settlements
	// cannot both consume the last remaining use.
	GetByCodeForUpdate(ctx context.Context, code string) (*domain.Coupon, error)
	Update(ctx context.Context, coupon *domain.Coupon) error
	List(ctx context.Context, activeOnly bool) ([]domain.Coupon, error)
}

// TransactionFilter narrows ListTransactions. Zero values mean "no
// filter" for their field.
type TransactionFilter struct {
	Type       domain.TransactionType
	EmployeeID int32
	Start      time.Time
	End        time.Time
	Limit      int32
}

type TransactionRepository interface {
	// Create persists the transaction and its line items together and
	// fills in the generated ids.
	Create(ctx context.Context, txn *domain.Transaction) error
	GetByNumber(ctx context.Context, number string) (*domain.Transaction, error)
	List(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, error)
	ListBetween(ctx context.Context, start, end time.Time) ([]domain.Transaction, error)
	EmployeeTotals(ctx context.Context) ([]domain.EmployeeStats, error)
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	Update(ctx context.Context, rental *domain.Rental) error
	// FindActiveByCustomerAndItem returns domain.ErrNoActiveRental when
	// the customer has no unreturned rental of the item.
	FindActiveByCustomerAndItem(ctx context.Context, customerID, itemID int32) (*domain.Rental, error)
	ListActive(ctx context.Context, customerID *int32) ([]domain.Rental, error)
	ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Rental, error)
	ListDueSoon(ctx context.Context, from, to time.Time) ([]domain.Rental, error)
	ListByCustomer(ctx context.Context, customerID int32) ([]domain.Rental, error)
	CollectedLateFees(ctx context.Context) (decimal.Decimal, error)
	CountByState(ctx context.Context, asOf time.Time) (active, overdue, returned int32, err error)
}

type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) error
	GetByID(ctx context.Context, id int32) (*domain.Employee, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*domain.Employee, error)
	GetByUsername(ctx context.Context, username string) (*domain.Employee, error)
	Update(ctx context.Context, employee *domain.Employee) error
	List(ctx context.Context, activeOnly bool) ([]domain.Employee, error)
}

// Store bundles the repositories and the transactional boundary.
// WithinTx runs fn against a Store whose repositories share one
// database transaction; fn returning an error rolls everything back.
type Store interface {
	Items() ItemRepository
	Customers() CustomerRepository
	Coupons() CouponRepository
	Transactions() TransactionRepository
	Rentals() RentalRepository
	Employees() EmployeeRepository
	WithinTx(ctx context.Context, fn func(Store) error) error
}
