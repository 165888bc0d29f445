package domain

import (
	"errors"
	"fmt"
)

var (
	ErrItemNotFound        = errors.New("item not found")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrCouponNotFound      = errors.New("coupon not found")
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrRentalNotFound      = errors.New("rental not found")
	ErrTransactionNotFound = errors.New("transaction not found")

	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrNotRentable      = errors.New("item is not available for rental")
	ErrCustomerRequired = errors.New("customer phone is required for rentals")
	ErrNoActiveRental   = errors.New("no active rental found for this item")
	ErrAlreadyReturned  = errors.New("rental has already been returned")
	ErrInvalidDuration  = errors.New("extension days must be positive")
	ErrEmptyCart        = errors.New("transaction requires at least one line item")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrEmployeeInactive   = errors.New("employee account is deactivated")
)

// InsufficientStockError reports the quantity still available when a
// stock decrement is rejected.
type InsufficientStockError struct {
	ItemID    string
	Requested int32
	Available int32
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for item %s: requested %d, available %d",
		e.ItemID, e.Requested, e.Available)
}

// CouponValidationError names the specific creation rule a coupon violated.
type CouponValidationError struct {
	Rule string
}

func (e *CouponValidationError) Error() string {
	return "coupon validation failed: " + e.Rule
}

// TransactionError wraps the cause of a failed settlement. The whole
// operation was rolled back when one of these is returned.
type TransactionError struct {
	Op    string // "sale", "rental" or "return"
	Cause error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("%s transaction failed: %v", e.Op, e.Cause)
}

func (e *TransactionError) Unwrap() error {
	return e.Cause
}
