package jobs

import (
	"context"
	"time"

	"linguabook-backend/internal/domain"
	"linguabook-backend/internal/logger"
)

// SendClientInvoiceReminders emails clients whose SENT invoices are due within
// the next three days or already overdue.
func (jr *JobRunner) SendClientInvoiceReminders() {
	jr.runWithRecovery("SendClientInvoiceReminders", func() {
		ctx := context.Background()
		horizon := time.Now().UTC().AddDate(0, 0, 3).Format("2006-01-02")

		sent, err := jr.repos.ClientInvoice.ListByStatus(ctx, domain.ClientInvoiceStatusSent)
		if err != nil {
			logger.Error("Failed to list sent invoices", "error", err)
			return
		}

		count := 0
		for i := range sent {
			inv := &sent[i]
			if inv.DueDate > horizon {
				continue
			}
			client, err := jr.repos.User.GetClient(ctx, inv.ClientID)
			if err != nil || client == nil {
				logger.Warn("Skipping reminder, client not found", "invoice_id", inv.ID, "client_id", inv.ClientID)
				continue
			}
			email := client.BillingEmail
			if email == "" {
				email = client.Email
			}
			if err := jr.services.Email.SendInvoiceReminder(ctx, email, inv.Reference, inv.DueDate); err != nil {
				logger.Error("Failed to send invoice reminder", "invoice_id", inv.ID, "error", err)
				continue
			}
			logger.Debug("Sent invoice reminder", "invoice_id", inv.ID, "due_date", inv.DueDate)
			count++
		}
		logger.Info("Sent invoice reminders", "count", count)
	})
}
