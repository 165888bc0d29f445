package jobs

import (
	"context"
	"time"

	"rentalpos-backend/internal/logger"
)

// LowStockAlerts reports every active item at or below its low stock
// threshold so the morning shift can reorder.
func (jr *JobRunner) LowStockAlerts() {
	jr.runWithRecovery("LowStockAlerts", func() {
		ctx := context.Background()

		items, err := jr.services.Inventory.LowStockItems(ctx)
		if err != nil {
			logger.Error("Failed to list low stock items", "error", err)
			return
		}
		if len(items) == 0 {
			logger.Info("No low stock items")
			return
		}

		for i := range items {
			logger.Warn("Low stock",
				"item_id", items[i].ItemID,
				"name", items[i].Name,
				"quantity", items[i].Quantity,
				"threshold", items[i].LowStockThreshold)
		}
		logger.Info("Low stock alert summary", "count", len(items))
	})
}

// OverdueRentalAlerts emails a reminder to every customer with an
// overdue rental. Customers without an email address are only logged.
func (jr *JobRunner) OverdueRentalAlerts() {
	jr.runWithRecovery("OverdueRentalAlerts", func() {
		ctx := context.Background()
		now := time.Now()

		rentals, err := jr.services.Rental.OverdueRentals(ctx)
		if err != nil {
			logger.Error("Failed to list overdue rentals", "error", err)
			return
		}

		sent := 0
		for i := range rentals {
			rental := &rentals[i]

			customer, err := jr.store.Customers().GetByID(ctx, rental.CustomerID)
			if err != nil {
				logger.Error("Failed to load customer for overdue rental",
					"rental_id", rental.ID, "customer_id", rental.CustomerID, "error", err)
				continue
			}
			item, err := jr.store.Items().GetByID(ctx, rental.ItemID)
			if err != nil {
				logger.Error("Failed to load item for overdue rental",
					"rental_id", rental.ID, "item_id", rental.ItemID, "error", err)
				continue
			}

			daysOverdue := rental.DaysOverdue(now)
			if customer.Email == "" {
				logger.Warn("Overdue rental, customer has no email",
					"rental_id", rental.ID, "phone", customer.Phone,
					"item", item.Name, "days_overdue", daysOverdue)
				continue
			}

			name := customer.Name
			if name == "" {
				name = customer.Phone
			}
			if err := jr.services.Email.SendOverdueReminder(ctx, customer.Email, name, item.Name, rental.DueDate, daysOverdue); err != nil {
				logger.Error("Failed to send overdue reminder",
					"rental_id", rental.ID, "email", customer.Email, "error", err)
				continue
			}
			sent++
		}

		logger.Info("Overdue rental alerts", "overdue", len(rentals), "reminders_sent", sent)
	})
}
