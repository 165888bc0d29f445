package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentalpos-backend/internal/domain"
	"rentalpos-backend/internal/repository"
)

type couponRepository struct {
	db DBTX
}

func NewCouponRepository(db DBTX) repository.CouponRepository {
	return &couponRepository{db: db}
}

const couponColumns = `id, code, description, discount_percent, discount_amount, minimum_purchase, max_uses, times_used, is_active, created_on, expires_at`

func (r *couponRepository) Create(ctx context.Context, c *domain.Coupon) error {
	query := `INSERT INTO coupons (code, description, discount_percent, discount_amount, minimum_purchase, max_uses, times_used, is_active, created_on, expires_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	return r.db.QueryRowContext(ctx, query, c.Code, c.Description, c.DiscountPercent, c.DiscountAmount,
		c.MinimumPurchase, c.MaxUses, c.TimesUsed, c.IsActive, time.Now(), c.ExpiresAt).Scan(&c.ID)
}

func (r *couponRepository) scanCoupon(row *sql.Row) (*domain.Coupon, error) {
	c := &domain.Coupon{}
	err := row.Scan(&c.ID, &c.Code, &c.Description, &c.DiscountPercent, &c.DiscountAmount,
		&c.MinimumPurchase, &c.MaxUses, &c.TimesUsed, &c.IsActive, &c.CreatedOn, &c.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCouponNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *couponRepository) GetByID(ctx context.Context, id int32) (*domain.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE id = $1`
	return r.scanCoupon(r.db.QueryRowContext(ctx, query, id))
}

func (r *couponRepository) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE code = $1`
	return r.scanCoupon(r.db.QueryRowContext(ctx, query, code))
}

func (r *couponRepository) GetByCodeForUpdate(ctx context.Context, code string) (*domain.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE code = $1 FOR UPDATE`
	return r.scanCoupon(r.db.QueryRowContext(ctx, query, code))
}

func (r *couponRepository) Update(ctx context.Context, c *domain.Coupon) error {
	query := `UPDATE coupons SET description=$1, minimum_purchase=$2, max_uses=$3, times_used=$4,
	          is_active=$5, expires_at=$6 WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query, c.Description, c.MinimumPurchase, c.MaxUses,
		c.TimesUsed, c.IsActive, c.ExpiresAt, c.ID)
	return err
}

func (r *couponRepository) List(ctx context.Context, activeOnly bool) ([]domain.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY code`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var coupons []domain.Coupon
	for rows.Next() {
		var c domain.Coupon
		if err := rows.Scan(&c.ID, &c.Code, &c.Description, &c.DiscountPercent, &c.DiscountAmount,
			&c.MinimumPurchase, &c.MaxUses, &c.TimesUsed, &c.IsActive, &c.CreatedOn, &c.ExpiresAt); err != nil {
			return nil, err
		}
		coupons = append(coupons, c)
	}
	return coupons, rows.Err()
}
