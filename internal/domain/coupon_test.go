package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCoupon_CalculateDiscount(t *testing.T) {
	now := time.Now()

	t.Run("Percentage", func(t *testing.T) {
		coupon := &Coupon{
			Code:            "SAVE10",
			DiscountPercent: decimal.NewFromInt(10),
			IsActive:        true,
		}
		discount := coupon.CalculateDiscount(decimal.NewFromInt(100), now)
		assert.True(t, discount.Equal(decimal.NewFromInt(10)), "got %s", discount)
	})

	t.Run("FixedCappedAtAmount", func(t *testing.T) {
		coupon := &Coupon{
			Code:           "FLAT5",
			DiscountAmount: decimal.NewFromInt(5),
			IsActive:       true,
		}
		discount := coupon.CalculateDiscount(decimal.NewFromInt(3), now)
		assert.True(t, discount.Equal(decimal.NewFromInt(3)), "got %s", discount)

		discount = coupon.CalculateDiscount(decimal.NewFromInt(50), now)
		assert.True(t, discount.Equal(decimal.NewFromInt(5)), "got %s", discount)
	})

	t.Run("BelowMinimumPurchase", func(t *testing.T) {
		coupon := &Coupon{
			Code:            "SAVE10",
			DiscountPercent: decimal.NewFromInt(10),
			MinimumPurchase: decimal.NewFromInt(50),
			IsActive:        true,
		}
		assert.True(t, coupon.CalculateDiscount(decimal.NewFromInt(49), now).IsZero())
		assert.False(t, coupon.CalculateDiscount(decimal.NewFromInt(50), now).IsZero())
	})
}

func TestCoupon_Validity(t *testing.T) {
	now := time.Now()

	t.Run("Inactive", func(t *testing.T) {
		coupon := &Coupon{DiscountPercent: decimal.NewFromInt(10)}
		assert.False(t, coupon.IsValid(now))
	})

	t.Run("Expired", func(t *testing.T) {
		past := now.Add(-time.Hour)
		coupon := &Coupon{DiscountPercent: decimal.NewFromInt(10), IsActive: true, ExpiresAt: &past}
		assert.True(t, coupon.IsExpired(now))
		assert.False(t, coupon.IsValid(now))
	})

	t.Run("NoExpiryNeverExpires", func(t *testing.T) {
		coupon := &Coupon{DiscountPercent: decimal.NewFromInt(10), IsActive: true}
		assert.False(t, coupon.IsExpired(now))
		assert.True(t, coupon.IsValid(now))
	})

	t.Run("UsageCap", func(t *testing.T) {
		max := int32(2)
		coupon := &Coupon{DiscountPercent: decimal.NewFromInt(10), IsActive: true, MaxUses: &max}
		assert.True(t, coupon.IsValid(now))

		coupon.Use()
		coupon.Use()
		assert.True(t, coupon.IsUsageExceeded())
		assert.False(t, coupon.IsValid(now))

		left := coupon.RemainingUses()
		assert.NotNil(t, left)
		assert.Equal(t, int32(0), *left)
	})

	t.Run("UnlimitedUses", func(t *testing.T) {
		coupon := &Coupon{DiscountPercent: decimal.NewFromInt(10), IsActive: true, TimesUsed: 1000}
		assert.False(t, coupon.IsUsageExceeded())
		assert.Nil(t, coupon.RemainingUses())
	})
}
