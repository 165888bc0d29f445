package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// Coupon carries exactly one discount kind: a percentage in [0,100] or
// a fixed amount. Codes are stored uppercase and looked up uppercase.
type Coupon struct {
	ID              int32           `json:"id"`
	Code            string          `json:"code"`
	Description     string          `json:"description,omitempty"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	MinimumPurchase decimal.Decimal `json:"minimum_purchase"`
	MaxUses         *int32          `json:"max_uses,omitempty"` // nil = unlimited
	TimesUsed       int32           `json:"times_used"`
	IsActive        bool            `json:"is_active"`
	CreatedOn       time.Time       `json:"created_on"`
	ExpiresAt       *time.Time      `json:"expires_at,omitempty"`
}

func (c *Coupon) IsExpired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return now.After(*c.ExpiresAt)
}

func (c *Coupon) IsUsageExceeded() bool {
	if c.MaxUses == nil {
		return false
	}
	return c.TimesUsed >= *c.MaxUses
}

// IsValid reports whether the coupon may still be applied at all:
// active, not expired, not past its usage cap.
func (c *Coupon) IsValid(now time.Time) bool {
	return c.IsActive && !c.IsExpired(now) && !c.IsUsageExceeded()
}

// CanApplyTo additionally checks the minimum purchase threshold.
func (c *Coupon) CanApplyTo(amount decimal.Decimal, now time.Time) bool {
	return c.IsValid(now) && amount.GreaterThanOrEqual(c.MinimumPurchase)
}

// CalculateDiscount returns the discount for a purchase amount. The
// result never exceeds the amount itself: fixed discounts are capped
// and percentages are bounded by 100 at creation.
func (c *Coupon) CalculateDiscount(amount decimal.Decimal, now time.Time) decimal.Decimal {
	if !c.CanApplyTo(amount, now) {
		return decimal.Zero
	}
	if c.DiscountPercent.IsPositive() {
		return amount.Mul(c.DiscountPercent).Div(oneHundred)
	}
	if c.DiscountAmount.IsPositive() {
		return decimal.Min(c.DiscountAmount, amount)
	}
	return decimal.Zero
}

// Use records one application of the coupon. The caller must invoke
// it exactly once per settled transaction that applied the coupon.
func (c *Coupon) Use() {
	c.TimesUsed++
}

// RemainingUses returns nil for uncapped coupons.
func (c *Coupon) RemainingUses() *int32 {
	if c.MaxUses == nil {
		return nil
	}
	left := *c.MaxUses - c.TimesUsed
	if left < 0 {
		left = 0
	}
	return &left
}
