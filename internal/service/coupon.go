package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"rentalpos-backend/internal/domain"
	"rentalpos-backend/internal/logger"
	"rentalpos-backend/internal/repository"
	"rentalpos-backend/internal/repository/postgres"
)

type couponService struct {
	store repository.Store
	now   func() time.Time
}

func NewCouponService(store repository.Store) CouponService {
	return &couponService{store: store, now: time.Now}
}

func normalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *couponService) CreateCoupon(ctx context.Context, input CreateCouponInput) (*domain.Coupon, error) {
	code := normalizeCouponCode(input.Code)
	if code == "" {
		return nil, &domain.CouponValidationError{Rule: "code is required"}
	}

	hasPercent := input.DiscountPercent.IsPositive()
	hasAmount := input.DiscountAmount.IsPositive()
	switch {
	case input.DiscountPercent.IsNegative():
		return nil, &domain.CouponValidationError{Rule: "discount percentage must be between 0 and 100"}
	case input.DiscountPercent.GreaterThan(decimal.NewFromInt(100)):
		return nil, &domain.CouponValidationError{Rule: "discount percentage must be between 0 and 100"}
	case input.DiscountAmount.IsNegative():
		return nil, &domain.CouponValidationError{Rule: "discount amount cannot be negative"}
	case hasPercent && hasAmount:
		return nil, &domain.CouponValidationError{Rule: "cannot have both percentage and amount discount"}
	case !hasPercent && !hasAmount:
		return nil, &domain.CouponValidationError{Rule: "must specify either percentage or amount discount"}
	case input.MinimumPurchase.IsNegative():
		return nil, &domain.CouponValidationError{Rule: "minimum purchase cannot be negative"}
	}

	if _, err := s.store.Coupons().GetByCode(ctx, code); err == nil {
		return nil, &domain.CouponValidationError{Rule: fmt.Sprintf("coupon code %s already exists", code)}
	} else if !errors.Is(err, domain.ErrCouponNotFound) {
		return nil, err
	}

	coupon := &domain.Coupon{
		Code:            code,
		Description:     input.Description,
		DiscountPercent: input.DiscountPercent,
		DiscountAmount:  input.DiscountAmount,
		MinimumPurchase: input.MinimumPurchase,
		MaxUses:         input.MaxUses,
		IsActive:        true,
		ExpiresAt:       input.ExpiresAt,
	}
	// The pre-check cannot see a concurrent insert; the unique
	// constraint is the authority.
	if err := s.store.Coupons().Create(ctx, coupon); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, &domain.CouponValidationError{Rule: fmt.Sprintf("coupon code %s already exists", code)}
		}
		return nil, err
	}

	logger.Info("Coupon created", "code", coupon.Code)
	return coupon, nil
}

func (s *couponService) GetCoupon(ctx context.Context, code string) (*domain.Coupon, error) {
	return s.store.Coupons().GetByCode(ctx, normalizeCouponCode(code))
}

// Validate checks a code against a purchase amount. Checks run in
// precedence order and short-circuit on the first failure; only when
// all pass is a discount computed.
func (s *couponService) Validate(ctx context.Context, code string, purchaseAmount decimal.Decimal) (*domain.CouponValidation, error) {
	coupon, err := s.store.Coupons().GetByCode(ctx, normalizeCouponCode(code))
	if errors.Is(err, domain.ErrCouponNotFound) {
		return &domain.CouponValidation{Valid: false, Message: "Coupon not found"}, nil
	}
	if err != nil {
		return nil, err
	}

	now := s.now()
	switch {
	case !coupon.IsActive:
		return &domain.CouponValidation{Valid: false, Message: "Coupon is inactive"}, nil
	case coupon.IsExpired(now):
		return &domain.CouponValidation{Valid: false, Message: "Coupon has expired"}, nil
	case coupon.IsUsageExceeded():
		return &domain.CouponValidation{Valid: false, Message: "Coupon usage limit reached"}, nil
	case purchaseAmount.LessThan(coupon.MinimumPurchase):
		return &domain.CouponValidation{
			Valid:   false,
			Message: fmt.Sprintf("Minimum purchase of $%s required", coupon.MinimumPurchase.StringFixed(2)),
		}, nil
	}

	discount := coupon.CalculateDiscount(purchaseAmount, now)
	return &domain.CouponValidation{
		Valid:    true,
		Discount: discount,
		Message:  fmt.Sprintf("Coupon valid! Discount: $%s", discount.StringFixed(2)),
		Coupon:   coupon,
	}, nil
}

func (s *couponService) setActive(ctx context.Context, code string, active bool) error {
	coupon, err := s.store.Coupons().GetByCode(ctx, normalizeCouponCode(code))
	if err != nil {
		return err
	}
	coupon.IsActive = active
	return s.store.Coupons().Update(ctx, coupon)
}

func (s *couponService) DeactivateCoupon(ctx context.Context, code string) error {
	if err := s.setActive(ctx, code, false); err != nil {
		return err
	}
	logger.Info("Coupon deactivated", "code", normalizeCouponCode(code))
	return nil
}

func (s *couponService) ActivateCoupon(ctx context.Context, code string) error {
	if err := s.setActive(ctx, code, true); err != nil {
		return err
	}
	logger.Info("Coupon activated", "code", normalizeCouponCode(code))
	return nil
}

func (s *couponService) ListCoupons(ctx context.Context, activeOnly bool) ([]domain.Coupon, error) {
	return s.store.Coupons().List(ctx, activeOnly)
}
