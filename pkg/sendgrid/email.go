package sendgrid

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailService sends transactional mail. Checkout uses it for the
// order confirmation; failures there are logged, never fatal.
type EmailService interface {
	SendOrderConfirmation(toEmail string, orderID int64, totalAmount float64) error
	GetSendGridClient() *sendgrid.Client
}

type emailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) GetSendGridClient() *sendgrid.Client {
	return s.client
}

func (s *emailService) SendOrderConfirmation(toEmail string, orderID int64, totalAmount float64) error {

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail("", toEmail)

	subject := fmt.Sprintf("Order #%d confirmed", orderID)
	plain := fmt.Sprintf("Your order #%d has been accepted. Total amount: %.2f.", orderID, totalAmount)
	html := fmt.Sprintf("<p>Your order <strong>#%d</strong> has been accepted.</p><p>Total amount: %.2f</p>", orderID, totalAmount)

	message := mail.NewSingleEmail(from, subject, to, plain, html)

	resp, err := s.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send order confirmation: %w", err)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected order confirmation: status %d", resp.StatusCode)
	}

	return nil
}
