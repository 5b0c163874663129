package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"bikerent-backend/internal/logger"
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

func (s *emailService) send(ctx context.Context, to, toName, subject, plainText string) error {
	logger.ExternalServiceCall("sendgrid", "send", "to", to, "subject", subject)

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}

	logger.ExternalServiceResult("sendgrid", "send", nil)
	return nil
}

func (s *emailService) SendOverdueNotice(ctx context.Context, email, customerName, contractNo string, endAt time.Time) error {
	subject := fmt.Sprintf("Rental %s is overdue", contractNo)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour rental contract %s was due back on %s. Please return the bikes to the shop as soon as possible; the rental keeps accruing charges until everything is returned.\n\nThank you,\nThe Rental Team",
		customerName, contractNo, endAt.Format("2006-01-02 15:04"))
	return s.send(ctx, email, customerName, subject, body)
}

func (s *emailService) SendContractReceipt(ctx context.Context, email, customerName, contractNo string, total float64) error {
	subject := fmt.Sprintf("Receipt for rental %s", contractNo)
	body := fmt.Sprintf(
		"Hello %s,\n\nThanks for renting with us. Contract %s is settled for a total of %.2f.\n\nWe hope to see you again,\nThe Rental Team",
		customerName, contractNo, total)
	return s.send(ctx, email, customerName, subject, body)
}
