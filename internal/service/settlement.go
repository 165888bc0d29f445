package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"rentalpos-backend/internal/domain"
	"rentalpos-backend/internal/logger"
	"rentalpos-backend/internal/repository"
	"rentalpos-backend/internal/repository/postgres"
)

// maxTxnNumberAttempts bounds regeneration of a colliding transaction
// number. Uniqueness is ultimately enforced by the database constraint.
const maxTxnNumberAttempts = 3

// TxnNumberFunc generates a human-readable transaction number.
type TxnNumberFunc func(now time.Time) string

// DefaultTxnNumber is a time-based prefix plus a random suffix, so
// collisions are negligible but not impossible.
func DefaultTxnNumber(now time.Time) string {
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return "TXN" + now.Format("20060102150405") + "-" + suffix
}

type settlementService struct {
	store     repository.Store
	settings  Settings
	now       func() time.Time
	txnNumber TxnNumberFunc
}

func NewSettlementService(store repository.Store, settings Settings) SettlementService {
	return &settlementService{
		store:     store,
		settings:  settings,
		now:       time.Now,
		txnNumber: DefaultTxnNumber,
	}
}

// CreateSale settles a cart as a single atomic unit: stock checks and
// decrements, coupon usage, totals and the persisted transaction all
// commit together or not at all.
func (s *settlementService) CreateSale(ctx context.Context, req SaleRequest) (*domain.Transaction, error) {
	if len(req.Lines) == 0 {
		return nil, &domain.TransactionError{Op: "sale", Cause: domain.ErrEmptyCart}
	}

	var txn *domain.Transaction
	err := s.withNumberRetry(func() error {
		txn = nil
		return s.store.WithinTx(ctx, func(st repository.Store) error {
			var err error
			txn, err = s.settleSale(ctx, st, req)
			return err
		})
	})
	if err != nil {
		logger.Error("Sale failed", "error", err)
		return nil, &domain.TransactionError{Op: "sale", Cause: err}
	}

	logger.Info("Sale completed",
		"transaction_number", txn.TransactionNumber, "total", txn.Total.StringFixed(2))
	return txn, nil
}

func (s *settlementService) settleSale(ctx context.Context, st repository.Store, req SaleRequest) (*domain.Transaction, error) {
	now := s.now()
	txn := &domain.Transaction{
		Type:          domain.TransactionTypeSale,
		EmployeeID:    req.EmployeeID,
		PaymentMethod: paymentOrDefault(req.PaymentMethod),
		CreatedOn:     now,
	}

	if req.CustomerPhone != "" {
		customer, err := getOrCreateCustomer(ctx, st, req.CustomerPhone)
		if err != nil {
			return nil, err
		}
		txn.CustomerID = &customer.ID
	}

	if _, err := s.fillLines(ctx, st, txn, req.Lines, false); err != nil {
		return nil, err
	}

	coupon, err := s.applyCoupon(ctx, st, txn, req.CouponCode, now)
	if err != nil {
		return nil, err
	}

	txn.CalculateTotals(coupon, s.settings.TaxRate, now)
	txn.ApplyPayment(req.AmountTendered)

	txn.TransactionNumber = s.txnNumber(now)
	if err := st.Transactions().Create(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// CreateRental is CreateSale with a mandatory customer, rental-only
// items, no coupon support, and a rental record per line inside the
// same atomic unit as the stock decrements.
func (s *settlementService) CreateRental(ctx context.Context, req RentalRequest) (*domain.Transaction, error) {
	if req.CustomerPhone == "" {
		return nil, &domain.TransactionError{Op: "rental", Cause: domain.ErrCustomerRequired}
	}
	if len(req.Lines) == 0 {
		return nil, &domain.TransactionError{Op: "rental", Cause: domain.ErrEmptyCart}
	}

	days := req.RentalDays
	if days <= 0 {
		days = s.settings.DefaultRentalDays
	}

	var txn *domain.Transaction
	err := s.withNumberRetry(func() error {
		txn = nil
		return s.store.WithinTx(ctx, func(st repository.Store) error {
			var err error
			txn, err = s.settleRental(ctx, st, req, days)
			return err
		})
	})
	if err != nil {
		logger.Error("Rental failed", "error", err)
		return nil, &domain.TransactionError{Op: "rental", Cause: err}
	}

	logger.Info("Rental completed",
		"transaction_number", txn.TransactionNumber, "total", txn.Total.StringFixed(2))
	return txn, nil
}

func (s *settlementService) settleRental(ctx context.Context, st repository.Store, req RentalRequest, days int32) (*domain.Transaction, error) {
	now := s.now()
	customer, err := getOrCreateCustomer(ctx, st, req.CustomerPhone)
	if err != nil {
		return nil, err
	}

	txn := &domain.Transaction{
		Type:          domain.TransactionTypeRental,
		EmployeeID:    req.EmployeeID,
		CustomerID:    &customer.ID,
		PaymentMethod: paymentOrDefault(req.PaymentMethod),
		CreatedOn:     now,
	}

	items, err := s.fillLines(ctx, st, txn, req.Lines, true)
	if err != nil {
		return nil, err
	}

	txn.CalculateTotals(nil, s.settings.TaxRate, now)
	txn.ApplyPayment(req.AmountTendered)

	txn.TransactionNumber = s.txnNumber(now)
	if err := st.Transactions().Create(ctx, txn); err != nil {
		return nil, err
	}

	dueDate := now.AddDate(0, 0, int(days))
	for i, line := range txn.Items {
		rental := &domain.Rental{
			CustomerID:    customer.ID,
			ItemID:        items[i].ID,
			TransactionID: &txn.ID,
			Quantity:      line.Quantity,
			RentalPrice:   items[i].Price,
			RentalDate:    now,
			DueDate:       dueDate,
		}
		if err := st.Rentals().Create(ctx, rental); err != nil {
			return nil, err
		}
	}
	return txn, nil
}

// ProcessReturn closes the customer's active rental of an item,
// restocks the returned units and, when a late fee applies, records a
// RETURN transaction for it. Late fees carry no tax.
func (s *settlementService) ProcessReturn(ctx context.Context, employeeID int32, customerPhone, itemID string) (*ReturnResult, error) {
	var result *ReturnResult
	err := s.withNumberRetry(func() error {
		result = nil
		return s.store.WithinTx(ctx, func(st repository.Store) error {
			now := s.now()

			customer, err := st.Customers().GetByPhone(ctx, customerPhone)
			if err != nil {
				return err
			}
			item, err := st.Items().GetByItemIDForUpdate(ctx, itemID)
			if err != nil {
				return err
			}
			rental, err := st.Rentals().FindActiveByCustomerAndItem(ctx, customer.ID, item.ID)
			if err != nil {
				return err
			}

			fee, err := rental.ProcessReturn(s.settings.LateFeePerDay, now)
			if err != nil {
				return err
			}
			if err := st.Rentals().Update(ctx, rental); err != nil {
				return err
			}

			if err := item.AddStock(rental.Quantity); err != nil {
				return err
			}
			if err := st.Items().UpdateQuantity(ctx, item.ID, item.Quantity); err != nil {
				return err
			}

			var txn *domain.Transaction
			if fee.IsPositive() {
				txn = &domain.Transaction{
					TransactionNumber: s.txnNumber(now),
					Type:              domain.TransactionTypeReturn,
					EmployeeID:        employeeID,
					CustomerID:        &customer.ID,
					Subtotal:          fee,
					Total:             fee,
					PaymentMethod:     domain.PaymentMethodCash,
					CreatedOn:         now,
				}
				if err := st.Transactions().Create(ctx, txn); err != nil {
					return err
				}
			}

			result = &ReturnResult{Rental: rental, Item: item, LateFee: fee, Transaction: txn}
			return nil
		})
	})
	if err != nil {
		logger.Error("Return failed", "error", err)
		return nil, &domain.TransactionError{Op: "return", Cause: err}
	}

	logger.Info("Return processed",
		"item", result.Item.ItemID, "late_fee", result.LateFee.StringFixed(2))
	return result, nil
}

func (s *settlementService) GetTransaction(ctx context.Context, number string) (*domain.Transaction, error) {
	return s.store.Transactions().GetByNumber(ctx, number)
}

func (s *settlementService) ListTransactions(ctx context.Context, filter repository.TransactionFilter) ([]domain.Transaction, error) {
	return s.store.Transactions().List(ctx, filter)
}

// fillLines resolves and locks each cart line in submitted order,
// snapshots quantity and unit price onto the transaction, and
// decrements stock. The stock check precedes any mutation of the
// line's item. Returns the resolved items, index-aligned with
// txn.Items.
func (s *settlementService) fillLines(ctx context.Context, st repository.Store, txn *domain.Transaction, lines []CartLine, rentalOnly bool) ([]*domain.Item, error) {
	items := make([]*domain.Item, 0, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}

		item, err := st.Items().GetByItemIDForUpdate(ctx, line.ItemID)
		if err != nil {
			return nil, err
		}
		if rentalOnly && !item.IsRentalItem() {
			return nil, fmt.Errorf("%s: %w", item.Name, domain.ErrNotRentable)
		}

		if err := item.RemoveStock(line.Quantity); err != nil {
			return nil, err
		}
		if err := st.Items().UpdateQuantity(ctx, item.ID, item.Quantity); err != nil {
			return nil, err
		}

		txn.Items = append(txn.Items, domain.TransactionItem{
			ItemID:    item.ID,
			Quantity:  line.Quantity,
			UnitPrice: item.Price,
		})
		items = append(items, item)
	}
	return items, nil
}

// applyCoupon associates a coupon with a sale and marks it used. The
// coupon row stays locked until commit so the usage cap holds across
// concurrent sales. An unknown or invalid coupon is ignored rather
// than failing the sale;
// the register validates codes explicitly before settling when it
// wants a hard answer. Fixed-amount discounts are computed here
// against the running subtotal; percentage discounts are derived in
// CalculateTotals.
func (s *settlementService) applyCoupon(ctx context.Context, st repository.Store, txn *domain.Transaction, code string, now time.Time) (*domain.Coupon, error) {
	if code == "" {
		return nil, nil
	}

	coupon, err := st.Coupons().GetByCodeForUpdate(ctx, normalizeCouponCode(code))
	if errors.Is(err, domain.ErrCouponNotFound) {
		logger.Warn("Unknown coupon code ignored", "code", code)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	subtotal := txn.LineSubtotal()
	if !coupon.CanApplyTo(subtotal, now) {
		logger.Warn("Invalid coupon ignored", "code", coupon.Code)
		return nil, nil
	}

	txn.CouponID = &coupon.ID
	if coupon.DiscountAmount.IsPositive() {
		txn.DiscountAmount = coupon.CalculateDiscount(subtotal, now)
	}
	coupon.Use()
	if err := st.Coupons().Update(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// withNumberRetry reruns a whole settlement attempt when the commit
// hit a unique-constraint violation, which in practice means the
// generated transaction number collided. The prior attempt was rolled
// back, so rerunning is safe.
func (s *settlementService) withNumberRetry(attempt func() error) error {
	var err error
	for i := 0; i < maxTxnNumberAttempts; i++ {
		err = attempt()
		if err == nil || !postgres.IsUniqueViolation(err) {
			return err
		}
		logger.Warn("Transaction number collision, regenerating")
	}
	return err
}

func getOrCreateCustomer(ctx context.Context, st repository.Store, phone string) (*domain.Customer, error) {
	customer, err := st.Customers().GetByPhone(ctx, phone)
	if errors.Is(err, domain.ErrCustomerNotFound) {
		customer = &domain.Customer{Phone: phone, IsActive: true}
		if err := st.Customers().Create(ctx, customer); err != nil {
			return nil, err
		}
		return customer, nil
	}
	return customer, err
}

func paymentOrDefault(method domain.PaymentMethod) domain.PaymentMethod {
	if method == "" {
		return domain.PaymentMethodCash
	}
	return method
}
