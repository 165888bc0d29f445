package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"rentalpos-backend/internal/domain"
	"rentalpos-backend/internal/logger"
	"rentalpos-backend/internal/repository"
)

type rentalService struct {
	store    repository.Store
	settings Settings
	now      func() time.Time
}

func NewRentalService(store repository.Store, settings Settings) RentalService {
	return &rentalService{store: store, settings: settings, now: time.Now}
}

// ActiveRentals lists unreturned rentals, for everyone when the phone
// is empty. An unknown phone is an error, not an empty list, so the
// register can tell a missing customer from one with nothing out.
func (s *rentalService) ActiveRentals(ctx context.Context, customerPhone string) ([]domain.Rental, error) {
	if customerPhone == "" {
		return s.store.Rentals().ListActive(ctx, nil)
	}
	customer, err := s.store.Customers().GetByPhone(ctx, customerPhone)
	if err != nil {
		return nil, err
	}
	return s.store.Rentals().ListActive(ctx, &customer.ID)
}

func (s *rentalService) OverdueRentals(ctx context.Context) ([]domain.Rental, error) {
	return s.store.Rentals().ListOverdue(ctx, s.now())
}

func (s *rentalService) DueSoonRentals(ctx context.Context) ([]domain.Rental, error) {
	now := s.now()
	return s.store.Rentals().ListDueSoon(ctx, now, now.AddDate(0, 0, int(s.settings.DueSoonDays)))
}

func (s *rentalService) CustomerRentals(ctx context.Context, customerPhone string) ([]domain.Rental, error) {
	customer, err := s.store.Customers().GetByPhone(ctx, customerPhone)
	if err != nil {
		return nil, err
	}
	return s.store.Rentals().ListByCustomer(ctx, customer.ID)
}

func (s *rentalService) CustomerHasOverdue(ctx context.Context, customerPhone string) (bool, error) {
	rentals, err := s.ActiveRentals(ctx, customerPhone)
	if err != nil {
		return false, err
	}
	now := s.now()
	for i := range rentals {
		if rentals[i].IsOverdue(now) {
			return true, nil
		}
	}
	return false, nil
}

// ProcessReturn closes a rental by id: fixes the late fee, restores
// the rented units to stock, all in one transaction. Returning an
// already-returned rental fails.
func (s *rentalService) ProcessReturn(ctx context.Context, rentalID int32) (*domain.Rental, error) {
	var rental *domain.Rental
	err := s.store.WithinTx(ctx, func(st repository.Store) error {
		var err error
		rental, err = st.Rentals().GetByID(ctx, rentalID)
		if err != nil {
			return err
		}

		item, err := st.Items().GetByIDForUpdate(ctx, rental.ItemID)
		if err != nil {
			return err
		}

		fee, err := rental.ProcessReturn(s.settings.LateFeePerDay, s.now())
		if err != nil {
			return err
		}
		if err := st.Rentals().Update(ctx, rental); err != nil {
			return err
		}

		if err := item.AddStock(rental.Quantity); err != nil {
			return err
		}
		if err := st.Items().UpdateQuantity(ctx, item.ID, item.Quantity); err != nil {
			return err
		}

		logger.Info("Rental returned", "rental_id", rental.ID, "late_fee", fee.StringFixed(2))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rental, nil
}

func (s *rentalService) ExtendRental(ctx context.Context, rentalID, additionalDays int32) (*domain.Rental, error) {
	rental, err := s.store.Rentals().GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if err := rental.Extend(additionalDays); err != nil {
		return nil, err
	}
	if err := s.store.Rentals().Update(ctx, rental); err != nil {
		return nil, err
	}
	logger.Info("Rental extended", "rental_id", rental.ID, "days", additionalDays, "due_date", rental.DueDate)
	return rental, nil
}

func (s *rentalService) Stats(ctx context.Context) (*domain.RentalStats, error) {
	now := s.now()
	active, overdue, returned, err := s.store.Rentals().CountByState(ctx, now)
	if err != nil {
		return nil, err
	}
	collected, err := s.store.Rentals().CollectedLateFees(ctx)
	if err != nil {
		return nil, err
	}

	// Pending fees are derived from current time, never stored.
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
