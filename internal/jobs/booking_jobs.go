package jobs

import (
	"context"
	"time"

	"linguabook-backend/internal/domain"
	"linguabook-backend/internal/logger"
	"linguabook-backend/internal/utils"
)

// CompleteElapsedBookings moves CONFIRMED bookings whose scheduled end has
// passed to COMPLETED so interpreters can submit timesheets against them.
func (jr *JobRunner) CompleteElapsedBookings() {
	jr.runWithRecovery("CompleteElapsedBookings", func() {
		ctx := context.Background()
		now := time.Now().UTC()

		confirmed, err := jr.repos.Booking.ListByStatus(ctx, domain.BookingStatusConfirmed)
		if err != nil {
			logger.Error("Failed to list confirmed bookings", "error", err)
			return
		}

		count := 0
		for i := range confirmed {
			b := &confirmed[i]
			end, err := bookingEnd(b)
			if err != nil {
				logger.Warn("Skipping booking with unparseable schedule", "booking_id", b.ID, "error", err)
				continue
			}
			if end.After(now) {
				continue
			}
			if err := jr.repos.Booking.SetStatus(ctx, b.ID, domain.BookingStatusCompleted); err != nil {
				logger.Error("Failed to complete booking", "booking_id", b.ID, "error", err)
				continue
			}
			logger.Debug("Marked booking completed", "booking_id", b.ID, "scheduled_end", end)
			count++
		}
		logger.Info("Marked bookings completed", "count", count)
	})
}

// bookingEnd resolves the scheduled end instant of a booking in UTC.
func bookingEnd(b *domain.Booking) (time.Time, error) {
	day, err := time.Parse("2006-01-02", b.Date)
	if err != nil {
		return time.Time{}, err
	}
	start, err := utils.MinutesOfDay(b.StartTime)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(start+b.DurationMinutes) * time.Minute), nil
}
