package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeSale   TransactionType = "SALE"
	TransactionTypeRental TransactionType = "RENTAL"
	TransactionTypeReturn TransactionType = "RETURN"
)

type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "CASH"
	PaymentMethodCredit PaymentMethod = "CREDIT"
	PaymentMethodDebit  PaymentMethod = "DEBIT"
)

// Transaction is one settled sale, rental or return. Its financial
// fields are derived by CalculateTotals and ApplyPayment, never set
// directly.
type Transaction struct {
	ID                int32           `json:"id"`
	TransactionNumber string          `json:"transaction_number"`
	Type              TransactionType `json:"transaction_type"`
	EmployeeID        int32           `json:"employee_id"`
	CustomerID        *int32          `json:"customer_id,omitempty"`
	CouponID          *int32          `json:"coupon_id,omitempty"`

	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	Total          decimal.Decimal `json:"total"`

	PaymentMethod  PaymentMethod   `json:"payment_method"`
	AmountTendered decimal.Decimal `json:"amount_tendered"`
	ChangeGiven    decimal.Decimal `json:"change_given"`

	CreatedOn time.Time         `json:"created_on"`
	Items     []TransactionItem `json:"items,omitempty"`
}

// TransactionItem snapshots quantity and unit price at settlement
// time. ItemName is a display convenience filled on reads.
type TransactionItem struct {
	ID            int32           `json:"id"`
	TransactionID int32           `json:"transaction_id"`
	ItemID        int32           `json:"item_id"`
	ItemName      string          `json:"item_name,omitempty"`
	Quantity      int32           `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
}

func (ti TransactionItem) LineTotal() decimal.Decimal {
	return ti.UnitPrice.Mul(decimal.NewFromInt32(ti.Quantity))
}

// LineSubtotal sums the line snapshots without rounding.
func (t *Transaction) LineSubtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range t.Items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}

// CalculateTotals derives subtotal, discount, tax and total.
//
// Percentage coupons are recomputed here against the subtotal.
// Fixed-amount coupons were already applied (DiscountAmount set) when
// the coupon was validated, and are left untouched. Intermediate sums
// stay unrounded; rounding to currency precision happens at display
// or persistence of the final total.
func (t *Transaction) CalculateTotals(coupon *Coupon, taxRate decimal.Decimal, now time.Time) {
	t.Subtotal = t.LineSubtotal()

	if coupon != nil && coupon.DiscountPercent.IsPositive() && coupon.IsValid(now) {
		t.DiscountAmount = t.Subtotal.Mul(coupon.DiscountPercent).Div(oneHundred)
	}

	taxable := t.Subtotal.Sub(t.DiscountAmount)
	t.TaxAmount = taxable.Mul(taxRate)
	t.Total = taxable.Add(t.TaxAmount)
}

// ApplyPayment records the tendered amount. Change is computed for
// cash only, against the total rounded to currency precision, and is
// never negative.
func (t *Transaction) ApplyPayment(amountTendered decimal.Decimal) {
	t.AmountTendered = amountTendered
	t.ChangeGiven = decimal.Zero
	if t.PaymentMethod == PaymentMethodCash {
		change := amountTendered.Sub(t.Total.Round(2))
		if change.IsPositive() {
			t.ChangeGiven = change
		}
	}
}

func (t *Transaction) IsSale() bool {
	return t.Type == TransactionTypeSale
}

func (t *Transaction) IsRental() bool {
	return t.Type == TransactionTypeRental
}

func (t *Transaction) IsReturn() bool {
	return t.Type == TransactionTypeReturn
}
