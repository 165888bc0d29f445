package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rental tracks physical custody of rented units. It references its
// originating transaction for lookup only; deleting a transaction
// must not delete the rental.
type Rental struct {
	ID            int32  `json:"id"`
	CustomerID    int32  `json:"customer_id"`
	ItemID        int32  `json:"item_id"`
	TransactionID *int32 `json:"transaction_id,omitempty"`

	Quantity    int32           `json:"quantity"`
	RentalPrice decimal.Decimal `json:"rental_price"` // per unit, snapshot at rental time
	RentalDate  time.Time       `json:"rental_date"`
	DueDate     time.Time       `json:"due_date"`

	Returned   bool            `json:"returned"`
	ReturnDate *time.Time      `json:"return_date,omitempty"`
	LateFee    decimal.Decimal `json:"late_fee"`

	Notes     string    `json:"notes,omitempty"`
	CreatedOn time.Time `json:"created_on"`
}

func (r *Rental) IsOverdue(now time.Time) bool {
	if r.Returned {
		return false
	}
	return now.After(r.DueDate)
}

// DaysOverdue counts whole days past the due date, zero when on time
// or already returned.
func (r *Rental) DaysOverdue(now time.Time) int32 {
	if !r.IsOverdue(now) {
		return 0
	}
	days := int32(now.Sub(r.DueDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

func (r *Rental) DaysRemaining(now time.Time) int32 {
	if r.Returned {
		return 0
	}
	days := int32(r.DueDate.Sub(now).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// CalculateLateFee is feePerDay per overdue day per rented unit.
func (r *Rental) CalculateLateFee(feePerDay decimal.Decimal, now time.Time) decimal.Decimal {
	days := r.DaysOverdue(now)
	if days == 0 {
		return decimal.Zero
	}
	return feePerDay.Mul(decimal.NewFromInt32(days)).Mul(decimal.NewFromInt32(r.Quantity))
}

// ProcessReturn marks the rental returned and fixes the late fee,
// exactly once. Restocking the item is the caller's responsibility
// within the same atomic unit.
func (r *Rental) ProcessReturn(feePerDay decimal.Decimal, now time.Time) (decimal.Decimal, error) {
	if r.Returned {
		return decimal.Zero, ErrAlreadyReturned
	}
	r.LateFee = r.CalculateLateFee(feePerDay, now)
	r.Returned = true
	r.ReturnDate = &now
	return r.LateFee, nil
}

// Extend pushes the due date forward by a positive number of days.
func (r *Rental) Extend(additionalDays int32) error {
	if r.Returned {
		return ErrAlreadyReturned
	}
	if additionalDays <= 0 {
		return ErrInvalidDuration
	}
	r.DueDate = r.DueDate.AddDate(0, 0, int(additionalDays))
	return nil
}

// TotalPrice is the rental charge plus any late fee.
func (r *Rental) TotalPrice() decimal.Decimal {
	return r.RentalPrice.Mul(decimal.NewFromInt32(r.Quantity)).Add(r.LateFee)
}
