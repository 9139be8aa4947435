package jobs

import (
	"context"
	"log/slog"
	"time"

	"carrental-backend/internal/metrics"
)

// SendPickupReminders emails customers whose confirmed booking starts
// within the next day.
func (jr *JobRunner) SendPickupReminders() {
	jr.runWithRecovery("SendPickupReminders", func(log *slog.Logger) {
		ctx := context.Background()

		from := time.Now().UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
		to := from.Add(24 * time.Hour)

		bookings, err := jr.store.BookingRepository.ListConfirmedStartingBetween(ctx, from, to)
		if err != nil {
			log.Error("Failed to query upcoming pickups", "error", err)
			return
		}

		sent := 0
		for i := range bookings {
			b := &bookings[i]
			if err := jr.notifier.SendPickupReminder(ctx, b); err != nil {
				metrics.RemindersSent.WithLabelValues("pickup", "failed").Inc()
				log.Error("Failed to send pickup reminder",
					"booking_id", b.ID,
					"email", b.CustomerEmail,
					"error", err)
				continue
			}
			metrics.RemindersSent.WithLabelValues("pickup", "sent").Inc()
			sent++
			log.Debug("Sent pickup reminder", "booking_id", b.ID, "email", b.CustomerEmail)
		}

		log.Info("Pickup reminders processed", "matched", len(bookings), "sent", sent)
	})
}

// SendReturnReminders emails customers whose active booking is past its
// end date. The booking status is left alone; chasing the return is an
// admin decision.
func (jr *JobRunner) SendReturnReminders() {
	jr.runWithRecovery("SendReturnReminders", func(log *slog.Logger) {
		ctx := context.Background()

		bookings, err := jr.store.BookingRepository.ListActivePastEndDate(ctx, time.Now().UTC())
		if err != nil {
			log.Error("Failed to query overdue returns", "error", err)
			return
		}

		sent := 0
		for i := range bookings {
			b := &bookings[i]
			if err := jr.notifier.SendReturnReminder(ctx, b); err != nil {
				metrics.RemindersSent.WithLabelValues("return", "failed").Inc()
				log.Error("Failed to send return reminder",
					"booking_id", b.ID,
					"email", b.CustomerEmail,
					"error", err)
				continue
			}
			metrics.RemindersSent.WithLabelValues("return", "sent").Inc()
			sent++
			log.Debug("Sent return reminder", "booking_id", b.ID, "email", b.CustomerEmail)
		}

		log.Info("Return reminders processed", "matched", len(bookings), "sent", sent)
	})
}
