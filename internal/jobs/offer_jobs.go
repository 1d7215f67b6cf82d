package jobs

import (
	"context"
	"time"

	"linguabook-backend/internal/domain"
	"linguabook-backend/internal/logger"
)

// ExpireStaleOffers resolves offers the interpreter never answered within the
// configured window. Expiry runs through the assignment service so the parent
// booking falls back to SEARCHING when its last open offer lapses.
func (jr *JobRunner) ExpireStaleOffers() {
	jr.runWithRecovery("ExpireStaleOffers", func() {
		ctx := context.Background()
		cutoff := time.Now().UTC().Add(-time.Duration(jr.config.Billing.OfferExpiryHours) * time.Hour)

		open, err := jr.repos.Assignment.ListByStatus(ctx, domain.AssignmentStatusOffered)
		if err != nil {
			logger.Error("Failed to list open offers", "error", err)
			return
		}

		count := 0
		for i := range open {
			a := &open[i]
			if a.OfferedAt.After(cutoff) {
				continue
			}
			if _, err := jr.services.Assignment.Expire(ctx, a.ID); err != nil {
				logger.Error("Failed to expire offer", "assignment_id", a.ID, "error", err)
				continue
			}
			logger.Debug("Expired offer", "assignment_id", a.ID, "offered_at", a.OfferedAt)
			count++
		}
		logger.Info("Expired stale offers", "count", count)
	})
}
