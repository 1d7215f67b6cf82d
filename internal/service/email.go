package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"linguabook-backend/internal/logger"
	"linguabook-backend/internal/utils"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(ctx context.Context, toEmail, toName, subject, plainText string) error {
	if s.apiKey == "" {
		// Local and test environments run without a key; log instead of send.
		logger.Debug("Email suppressed (no API key)", "to", toEmail, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	logger.ExternalServiceCall("sendgrid", "Send", "to", toEmail, "subject", subject)
	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "Send", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "Send", err)
		return err
	}
	logger.ExternalServiceResult("sendgrid", "Send", nil)
	return nil
}

func (s *emailService) SendOfferNotification(ctx context.Context, email, name, serviceType, date, startTime string) error {
	subject := "New interpreting offer"
	body := fmt.Sprintf("Hello %s,\n\nYou have a new %s offer on %s at %s.\n\nPlease open the app to accept or decline.\n\nBest regards,\nThe LinguaBook Team",
		name, serviceType, date, startTime)
	return s.send(ctx, email, name, subject, body)
}

func (s *emailService) SendOfferAcceptedNotification(ctx context.Context, email, interpreterName, reference string) error {
	subject := fmt.Sprintf("Booking %s confirmed", reference)
	body := fmt.Sprintf("Hello,\n\n%s has accepted your booking %s. The booking is now confirmed.\n\nBest regards,\nThe LinguaBook Team",
		interpreterName, reference)
	return s.send(ctx, email, "", subject, body)
}

func (s *emailService) SendTimesheetApprovedNotification(ctx context.Context, email, name, reference string, amountPence int32) error {
	subject := "Timesheet approved"
	body := fmt.Sprintf("Hello %s,\n\nYour timesheet for booking %s has been approved. Amount payable: %s.\n\nBest regards,\nThe LinguaBook Team",
		name, reference, utils.FormatPence(amountPence))
	return s.send(ctx, email, name, subject, body)
}

func (s *emailService) SendClientInvoiceNotification(ctx context.Context, email, reference string, totalPence int32, dueDate string) error {
	subject := fmt.Sprintf("Invoice %s", reference)
	body := fmt.Sprintf("Hello,\n\nInvoice %s for %s has been issued. Payment is due by %s.\n\nBest regards,\nThe LinguaBook Team",
		reference, utils.FormatPence(totalPence), dueDate)
	return s.send(ctx, email, "", subject, body)
}

func (s *emailService) SendInvoiceReminder(ctx context.Context, email, reference, dueDate string) error {
	subject := fmt.Sprintf("Reminder: invoice %s", reference)
	body := fmt.Sprintf("Hello,\n\nThis is a reminder that invoice %s is due by %s.\n\nBest regards,\nThe LinguaBook Team",
		reference, dueDate)
	return s.send(ctx, email, "", subject, body)
}
