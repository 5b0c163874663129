package jobs

import (
	"context"
	"time"

	"bikerent-backend/internal/logger"
)

// MarkOverdueRentals marks active contracts as OVERDUE once they are past
// their agreed end time. Reservations are left alone; they only become
// billable contracts when checked out.
func (jr *JobRunner) MarkOverdueRentals() {
	jr.runWithRecovery("MarkOverdueRentals", func() {
		ctx := context.Background()

		query := `
			UPDATE rentals
			SET status = 'OVERDUE',
			    updated_on = NOW()
			WHERE status = 'IN_USE'
			  AND end_at IS NOT NULL
			  AND end_at < $1
			RETURNING id, contract_no, customer_name
		`

		rows, err := jr.db.QueryContext(ctx, query, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to mark overdue rentals", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var id, contractNo, customerName string
			if err := rows.Scan(&id, &contractNo, &customerName); err != nil {
				logger.Error("Failed to scan overdue rental", "error", err)
				continue
			}
			logger.Info("Rental marked overdue",
				"rental_id", id,
				"contract_no", contractNo,
				"customer", customerName)
			count++
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating overdue rentals", "error", err)
			return
		}

		logger.Info("Marked rentals as overdue", "count", count)
	})
}

// SendOverdueReminders emails customers whose contracts are marked OVERDUE
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx := context.Background()

		rentals, err := jr.store.ListOverdue(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to list overdue rentals", "error", err)
			return
		}

		sent := 0
		for _, rental := range rentals {
			if rental.CustomerEmail == "" || rental.EndAt == nil {
				continue
			}
			err := jr.services.Email.SendOverdueNotice(ctx,
				rental.CustomerEmail,
				rental.CustomerName,
				rental.ContractNo,
				*rental.EndAt)
			if err != nil {
				logger.Error("Failed to send overdue reminder",
					"rental_id", rental.ID,
					"contract_no", rental.ContractNo,
					"error", err)
				continue
			}
			sent++
		}

		logger.Info("Sent overdue reminders", "count", sent, "overdue", len(rentals))
	})
}
