package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"rentalpos-backend/internal/domain"
	"rentalpos-backend/internal/repository"
)

type reportService struct {
	store    repository.Store
	settings Settings
	now      func() time.Time
}

func NewReportService(store repository.Store, settings Settings) ReportService {
	return &reportService{store: store, settings: settings, now: time.Now}
}

// DailySales rolls up the calendar day containing the given instant,
// bucketed by transaction type.
func (s *reportService) DailySales(ctx context.Context, day time.Time) (*domain.DailySales, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	txns, err := s.store.Transactions().ListBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	report := &domain.DailySales{Date: start.Format("2006-01-02")}
	for i := range txns {
		report.TransactionCount++
		switch txns[i].Type {
		case domain.TransactionTypeSale:
			report.TotalSales = report.TotalSales.Add(txns[i].Total)
		case domain.TransactionTypeRental:
			report.TotalRentals = report.TotalRentals.Add(txns[i].Total)
		case domain.TransactionTypeReturn:
			report.TotalReturns = report.TotalReturns.Add(txns[i].Total)
		}
		report.GrandTotal = report.GrandTotal.Add(txns[i].Total)
	}
	return report, nil
}

func (s *reportService) InventoryStats(ctx context.Context) (*domain.InventoryStats, error) {
	return s.store.Items().Stats(ctx)
}

func (s *reportService) RentalStats(ctx context.Context) (*domain.RentalStats, error) {
	now := s.now()
	active, overdue, returned, err := s.store.Rentals().CountByState(ctx, now)
	if err != nil {
		return nil, err
	}
	collected, err := s.store.Rentals().CollectedLateFees(ctx)
	if err != nil {
		return nil, err
	}

	overdueRentals, err := s.store.Rentals().ListOverdue(ctx, now)
	if err != nil {
		return nil, err
	}
	pending := decimal.Zero
	for i := range overdueRentals {
		pending = pending.Add(overdueRentals[i].CalculateLateFee(s.settings.LateFeePerDay, now))
	}

	return &domain.RentalStats{
		ActiveRentals:     active,
		OverdueRentals:    overdue,
		ReturnedRentals:   returned,
		LateFeesCollected: collected,
		PendingLateFees:   pending,
	}, nil
}

func (s *reportService) EmployeeStats(ctx context.Context) ([]domain.EmployeeStats, error) {
	return s.store.Transactions().EmployeeTotals(ctx)
}
