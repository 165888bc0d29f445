package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"rentalpos-backend/internal/domain"
	"rentalpos-backend/internal/repository"
)

type MockItemRepo struct{ mock.Mock }

func (m *MockItemRepo) Create(ctx context.Context, item *domain.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockItemRepo) GetByID(ctx context.Context, id int32) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemRepo) GetByItemID(ctx context.Context, itemID string) (*domain.Item, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemRepo) GetByItemIDForUpdate(ctx context.Context, itemID string) (*domain.Item, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemRepo) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemRepo) Update(ctx context.Context, item *domain.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockItemRepo) UpdateQuantity(ctx context.Context, id int32, quantity int32) error {
	return m.Called(ctx, id, quantity).Error(0)
}

func (m *MockItemRepo) List(ctx context.Context, itemType domain.ItemType, activeOnly bool) ([]domain.Item, error) {
	args := m.Called(ctx, itemType, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemRepo) Search(ctx context.Context, query string, itemType domain.ItemType) ([]domain.Item, error) {
	args := m.Called(ctx, query, itemType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemRepo) ListLowStock(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemRepo) ListOutOfStock(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemRepo) Stats(ctx context.Context) (*domain.InventoryStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryStats), args.Error(1)
}

type MockCustomerRepo struct{ mock.Mock }

func (m *MockCustomerRepo) Create(ctx context.Context, customer *domain.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *MockCustomerRepo) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepo) GetByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepo) Update(ctx context.Context, customer *domain.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

type MockCouponRepo struct{ mock.Mock }

func (m *MockCouponRepo) Create(ctx context.Context, coupon *domain.Coupon) error {
	return m.Called(ctx, coupon).Error(0)
}

func (m *MockCouponRepo) GetByID(ctx context.Context, id int32) (*domain.Coupon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coupon), args.Error(1)
}

func (m *MockCouponRepo) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coupon), args.Error(1)
}

func (m *MockCouponRepo) GetByCodeForUpdate(ctx context.Context, code string) (*domain.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coupon), args.Error(1)
}

func (m *MockCouponRepo) Update(ctx context.Context, coupon *domain.Coupon) error {
	return m.Called(ctx, coupon).Error(0)
}

func (m *MockCouponRepo) List(ctx context.Context, activeOnly bool) ([]domain.Coupon, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Coupon), args.Error(1)
}

type MockTransactionRepo struct{ mock.Mock }

func (m *MockTransactionRepo) Create(ctx context.Context, txn *domain.Transaction) error {
	return m.Called(ctx, txn).Error(0)
}

func (m *MockTransactionRepo) GetByNumber(ctx context.Context, number string) (*domain.Transaction, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepo) List(ctx context.Context, filter repository.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepo) ListBetween(ctx context.Context, start, end time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepo) EmployeeTotals(ctx context.Context) ([]domain.EmployeeStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EmployeeStats), args.Error(1)
}

type MockRentalRepo struct{ mock.Mock }

func (m *MockRentalRepo) Create(ctx context.Context, rental *domain.Rental) error {
	return m.Called(ctx, rental).Error(0)
}

func (m *MockRentalRepo) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalRepo) Update(ctx context.Context, rental *domain.Rental) error {
	return m.Called(ctx, rental).Error(0)
}

func (m *MockRentalRepo) FindActiveByCustomerAndItem(ctx context.Context, customerID, itemID int32) (*domain.Rental, error) {
	args := m.Called(ctx, customerID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalRepo) ListActive(ctx context.Context, customerID *int32) ([]domain.Rental, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}

func (m *MockRentalRepo) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}

func (m *MockRentalRepo) ListDueSoon(ctx context.Context, from, to time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}

func (m *MockRentalRepo) ListByCustomer(ctx context.Context, customerID int32) ([]domain.Rental, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}

func (m *MockRentalRepo) CollectedLateFees(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRentalRepo) CountByState(ctx context.Context, asOf time.Time) (int32, int32, int32, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).(int32), args.Get(1).(int32), args.Get(2).(int32), args.Error(3)
}

type MockEmployeeRepo struct{ mock.Mock }

func (m *MockEmployeeRepo) Create(ctx context.Context, employee *domain.Employee) error {
	return m.Called(ctx, employee).Error(0)
}

func (m *MockEmployeeRepo) GetByID(ctx context.Context, id int32) (*domain.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepo) GetByEmployeeID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepo) GetByUsername(ctx context.Context, username string) (*domain.Employee, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepo) Update(ctx context.Context, employee *domain.Employee) error {
	return m.Called(ctx, employee).Error(0)
}

func (m *MockEmployeeRepo) List(ctx context.Context, activeOnly bool) ([]domain.Employee, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employee), args.Error(1)
}

// MockStore bundles the repository mocks. WithinTx invokes fn against
// the store itself, so repository expectations cover both transactional
// and direct access.
type MockStore struct {
	ItemRepo        *MockItemRepo
	CustomerRepo    *MockCustomerRepo
	CouponRepo      *MockCouponRepo
	TransactionRepo *MockTransactionRepo
	RentalRepo      *MockRentalRepo
	EmployeeRepo    *MockEmployeeRepo

	TxErr error // forced WithinTx failure, when set
}

func NewMockStore() *MockStore {
	return &MockStore{
		ItemRepo:        new(MockItemRepo),
		CustomerRepo:    new(MockCustomerRepo),
		CouponRepo:      new(MockCouponRepo),
		TransactionRepo: new(MockTransactionRepo),
		RentalRepo:      new(MockRentalRepo),
		EmployeeRepo:    new(MockEmployeeRepo),
	}
}

func (s *MockStore) Items() repository.ItemRepository               { return s.ItemRepo }
func (s *MockStore) Customers() repository.CustomerRepository       { return s.CustomerRepo }
func (s *MockStore) Coupons() repository.CouponRepository           { return s.CouponRepo }
func (s *MockStore) Transactions() repository.TransactionRepository { return s.TransactionRepo }
func (s *MockStore) Rentals() repository.RentalRepository           { return s.RentalRepo }
func (s *MockStore) Employees() repository.EmployeeRepository       { return s.EmployeeRepo }

func (s *MockStore) WithinTx(ctx context.Context, fn func(repository.Store) error) error {
	if s.TxErr != nil {
		return s.TxErr
	}
	return fn(s)
}

func (s *MockStore) AssertExpectations(t mock.TestingT) {
	s.ItemRepo.AssertExpectations(t)
	s.CustomerRepo.AssertExpectations(t)
	s.CouponRepo.AssertExpectations(t)
	s.TransactionRepo.AssertExpectations(t)
	s.RentalRepo.AssertExpectations(t)
	s.EmployeeRepo.AssertExpectations(t)
}
