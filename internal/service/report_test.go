package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentalpos-backend/internal/domain"
)

func TestReportService_DailySales(t *testing.T) {
	ctx := context.Background()
	store := NewMockStore()
	svc := &reportService{store: store, settings: testSettings, now: func() time.Time { return testNow }}

	day := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	txns := []domain.Transaction{
		{Type: domain.TransactionTypeSale, Total: decimal.RequireFromString("53.946")},
		{Type: domain.TransactionTypeSale, Total: decimal.RequireFromString("10.80")},
		{Type: domain.TransactionTypeRental, Total: decimal.RequireFromString("32.40")},
		{Type: domain.TransactionTypeReturn, Total: decimal.RequireFromString("12.00")},
	}
	store.TransactionRepo.On("ListBetween", ctx, day, day.AddDate(0, 0, 1)).Return(txns, nil).Once()

	report, err := svc.DailySales(ctx, testNow)
	require.NoError(t, err)

	assert.Equal(t, "2026-08-20", report.Date)
	assert.Equal(t, int32(4), report.TransactionCount)
	assert.True(t, report.TotalSales.Equal(decimal.RequireFromString("64.746")), "sales %s", report.TotalSales)
	assert.True(t, report.TotalRentals.Equal(decimal.RequireFromString("32.40")))
	assert.True(t, report.TotalReturns.Equal(decimal.RequireFromString("12.00")))
	assert.True(t, report.GrandTotal.Equal(decimal.RequireFromString("109.146")), "grand %s", report.GrandTotal)
	store.AssertExpectations(t)
}

func TestReportService_EmployeeStats(t *testing.T) {
	ctx := context.Background()
	store := NewMockStore()
	svc := NewReportService(store, testSettings)

	stats := []domain.EmployeeStats{
		{EmployeeID: 1, EmployeeName: "Pat Jones", TransactionCount: 12, TotalAmount: decimal.NewFromInt(500)},
	}
	store.TransactionRepo.On("EmployeeTotals", ctx).Return(stats, nil).Once()

	got, err := svc.EmployeeStats(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "Pat Jones", got[0].EmployeeName)
}

func TestReportService_RentalStats(t *testing.T) {
	ctx := context.Background()
	store := NewMockStore()
	svc := &reportService{store: store, settings: testSettings, now: func() time.Time { return testNow }}

	store.RentalRepo.On("CountByState", ctx, testNow).Return(int32(3), int32(1), int32(7), nil).Once()
	store.RentalRepo.On("CollectedLateFees", ctx).Return(decimal.NewFromInt(20), nil).Once()
	store.RentalRepo.On("ListOverdue", ctx, testNow).Return([]domain.Rental{
		{Quantity: 1, DueDate: testNow.AddDate(0, 0, -2)},
	}, nil).Once()

	stats, err := svc.RentalStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(3), stats.ActiveRentals)
	assert.True(t, stats.PendingLateFees.Equal(decimal.NewFromInt(4)), "pending %s", stats.PendingLateFees)
}
