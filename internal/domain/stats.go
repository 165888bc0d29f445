package domain

import "github.com/shopspring/decimal"

// Read-side rollups. All of these are computed on demand from the
// persisted entities; none are cached.

type DailySales struct {
	Date             string          `json:"date"`
	TransactionCount int32           `json:"transaction_count"`
	TotalSales       decimal.Decimal `json:"total_sales"`
	TotalRentals     decimal.Decimal `json:"total_rentals"`
	TotalReturns     decimal.Decimal `json:"total_returns"`
	GrandTotal       decimal.Decimal `json:"grand_total"`
}

type InventoryStats struct {
	TotalItems      int32           `json:"total_items"`
	SaleItems       int32           `json:"sale_items"`
	RentalItems     int32           `json:"rental_items"`
	LowStockItems   int32           `json:"low_stock_items"`
	OutOfStockItems int32           `json:"out_of_stock_items"`
	TotalValue      decimal.Decimal `json:"total_value"`
}

type RentalStats struct {
	ActiveRentals     int32           `json:"active_rentals"`
	OverdueRentals    int32           `json:"overdue_rentals"`
	ReturnedRentals   int32           `json:"returned_rentals"`
	LateFeesCollected decimal.Decimal `json:"late_fees_collected"`
	PendingLateFees   decimal.Decimal `json:"pending_late_fees"`
}

type EmployeeStats struct {
	EmployeeID       int32           `json:"employee_id"`
	EmployeeName     string          `json:"employee_name"`
	TransactionCount int32           `json:"transaction_count"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
}

// CouponValidation is the result of checking a code against a
// purchase amount at the register.
type CouponValidation struct {
	Valid    bool            `json:"valid"`
	Discount decimal.Decimal `json:"discount"`
	Message  string          `json:"message"`
	Coupon   *Coupon         `json:"coupon,omitempty"`
}
