package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"rentalpos-backend/internal/domain"
	"rentalpos-backend/internal/repository"
)

// Settings carries process-wide register configuration. It is passed
// in at construction so tests can vary tax rate and rental period.
type Settings struct {
	TaxRate           decimal.Decimal
	DefaultRentalDays int32
	LateFeePerDay     decimal.Decimal
	DueSoonDays       int32
}

// CartLine is one submitted line of a sale or rental cart, keyed by
// the item's business id.
type CartLine struct {
	ItemID   string
	Quantity int32
}

type SaleRequest struct {
	EmployeeID     int32
	Lines          []CartLine
	PaymentMethod  domain.PaymentMethod
	AmountTendered decimal.Decimal
	CouponCode     string // optional; an invalid coupon is ignored
	CustomerPhone  string // optional; sales may be anonymous
}

type RentalRequest struct {
	EmployeeID     int32
	CustomerPhone  string // required
	Lines          []CartLine
	RentalDays     int32 // 0 uses the configured default
	PaymentMethod  domain.PaymentMethod
	AmountTendered decimal.Decimal
}

// ReturnResult reports a processed return. Transaction is nil unless
// a late fee was charged.
type ReturnResult struct {
	Rental      *domain.Rental
	Item        *domain.Item
	LateFee     decimal.Decimal
	Transaction *domain.Transaction
}

type SettlementService interface {
	CreateSale(ctx context.Context, req SaleRequest) (*domain.Transaction, error)
	CreateRental(ctx context.Context, req RentalRequest) (*domain.Transaction, error)
	ProcessReturn(ctx context.Context, employeeID int32, customerPhone, itemID string) (*ReturnResult, error)
	GetTransaction(ctx context.Context, number string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, filter repository.TransactionFilter) ([]domain.Transaction, error)
}

type CreateItemInput struct {
	ItemID            string
	Name              string
	Price             decimal.Decimal
	Quantity          int32
	ItemType          domain.ItemType
	Description       string
	LowStockThreshold int32
}

type InventoryService interface {
	CreateItem(ctx context.Context, input CreateItemInput) (*domain.Item, error)
	GetItem(ctx context.Context, itemID string) (*domain.Item, error)
	UpdateItem(ctx context.Context, item *domain.Item) error
	AddStock(ctx context.Context, itemID string, amount int32) (*domain.Item, error)
	RemoveStock(ctx context.Context, itemID string, amount int32) (*domain.Item, error)
	DeactivateItem(ctx context.Context, itemID string) error
	ActivateItem(ctx context.Context, itemID string) error
	ListItems(ctx context.Context, itemType domain.ItemType, activeOnly bool) ([]domain.Item, error)
	SearchItems(ctx context.Context, query string, itemType domain.ItemType) ([]domain.Item, error)
	LowStockItems(ctx context.Context) ([]domain.Item, error)
	OutOfStockItems(ctx context.Context) ([]domain.Item, error)
	Stats(ctx context.Context) (*domain.InventoryStats, error)
}

type CreateCouponInput struct {
	Code            string
	Description     string
	DiscountPercent decimal.Decimal
	DiscountAmount  decimal.Decimal
	MinimumPurchase decimal.Decimal
	MaxUses         *int32
	ExpiresAt       *time.Time
}

type CouponService interface {
	CreateCoupon(ctx context.Context, input CreateCouponInput) (*domain.Coupon, error)
	GetCoupon(ctx context.Context, code string) (*domain.Coupon, error)
	Validate(ctx context.Context, code string, purchaseAmount decimal.Decimal) (*domain.CouponValidation, error)
	DeactivateCoupon(ctx context.Context, code string) error
	ActivateCoupon(ctx context.Context, code string) error
	ListCoupons(ctx context.Context, activeOnly bool) ([]domain.Coupon, error)
}

type RentalService interface {
	ActiveRentals(ctx context.Context, customerPhone string) ([]domain.Rental, error)
	OverdueRentals(ctx context.Context) ([]domain.Rental, error)
	DueSoonRentals(ctx context.Context) ([]domain.Rental, error)
	CustomerRentals(ctx context.Context, customerPhone string) ([]domain.Rental, error)
	CustomerHasOverdue(ctx context.Context, customerPhone string) (bool, error)
	ProcessReturn(ctx context.Context, rentalID int32) (*domain.Rental, error)
	ExtendRental(ctx context.Context, rentalID, additionalDays int32) (*domain.Rental, error)
	Stats(ctx context.Context) (*domain.RentalStats, error)
}

type ReportService interface {
	DailySales(ctx context.Context, day time.Time) (*domain.DailySales, error)
	InventoryStats(ctx context.Context) (*domain.InventoryStats, error)
	RentalStats(ctx context.Context) (*domain.RentalStats, error)
	EmployeeStats(ctx context.Context) ([]domain.EmployeeStats, error)
}

type CreateEmployeeInput struct {
	EmployeeID string
	Username   string
	Password   string
	FirstName  string
	LastName   string
	Role       domain.EmployeeRole
}

type EmployeeService interface {
	Login(ctx context.Context, username, password string) (*domain.Employee, string, error)
	CreateEmployee(ctx context.Context, input CreateEmployeeInput) (*domain.Employee, error)
	ChangePassword(ctx context.Context, employeeID int32, oldPassword, newPassword string) error
	ResetPassword(ctx context.Context, employeeID int32, newPassword string) error
	GetEmployee(ctx context.Context, id int32) (*domain.Employee, error)
	ListEmployees(ctx context.Context, activeOnly bool) ([]domain.Employee, error)
	DeactivateEmployee(ctx context.Context, id int32) error
	RestoreEmployee(ctx context.Context, id int32) error
}

type EmailService interface {
	SendOverdueReminder(ctx context.Context, to, customerName, itemName string, dueDate time.Time, daysOverdue int32) error
}
