package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"

	appErrors "github.com/shopverse/ecommerce-backend/internal/errors"
	"github.com/shopverse/ecommerce-backend/internal/models"
	repository "github.com/shopverse/ecommerce-backend/internal/repositories"
	"github.com/shopverse/ecommerce-backend/pkg/stripe"
)

const paymentGatewayName = "stripe"

type PaymentService interface {
	CreatePaymentIntent(ctx context.Context, req *models.CreatePaymentIntentRequest) (*models.PaymentIntentResponse, error)
	GetPayment(ctx context.Context, orderID int64) (*models.Payment, error)
	HandleWebhookEvent(ctx context.Context, payload []byte, signature string) error
}

type paymentService struct {
	orderRepo    repository.OrderRepository
	stripeClient stripe.Client
	currency     string
	logger       *slog.Logger
}

func NewPaymentService(orderRepo repository.OrderRepository, stripeClient stripe.Client, currency string, logger *slog.Logger) PaymentService {
	return &paymentService{
		orderRepo:    orderRepo,
		stripeClient: stripeClient,
		currency:     currency,
		logger:       logger,
	}
}

func (s *paymentService) CreatePaymentIntent(ctx context.Context, req *models.CreatePaymentIntentRequest) (*models.PaymentIntentResponse, error) {

	order, err := s.orderRepo.GetOrderByID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Order not found")
		}

		return nil, appErrors.DatabaseError("Failed to fetch order").WithError(err)
	}

	amount := int64(math.Round(order.TotalAmount * 100))

	intent, err := s.stripeClient.CreatePaymentIntent(amount, s.currency, fmt.Sprintf("Order #%d", order.ID))
	if err != nil {
		return nil, appErrors.ThirdPartyError("Failed to create payment intent").WithError(err)
	}

	if err := s.orderRepo.UpdatePaymentGateway(ctx, order.PaymentID, paymentGatewayName, intent.ID, string(intent.Status)); err != nil {
		return nil, appErrors.DatabaseError("Failed to store payment intent reference").WithError(err)
	}

	return &models.PaymentIntentResponse{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Amount:          order.TotalAmount,
		Status:          string(intent.Status),
	}, nil
}

func (s *paymentService) GetPayment(ctx context.Context, orderID int64) (*models.Payment, error) {

	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Order not found")
		}

		return nil, appErrors.DatabaseError("Failed to fetch order").WithError(err)
	}

	return order.Payment, nil
}

func (s *paymentService) HandleWebhookEvent(ctx context.Context, payload []byte, signature string) error {

	event, err := s.stripeClient.VerifyWebhookSignature(payload, signature)
	if err != nil {
		return appErrors.UnauthorizedError("Invalid webhook signature").WithError(err)
	}

	switch event.Type {
	case "payment_intent.succeeded", "payment_intent.payment_failed", "payment_intent.canceled":
	default:
		s.logger.Info("Ignoring webhook event", slog.String("type", string(event.Type)))

		return nil
	}

	intentID, ok := event.Data.Object["id"].(string)
	if !ok || intentID == "" {
		return appErrors.BadRequestError("Webhook event has no payment intent id")
	}

	status, _ := event.Data.Object["status"].(string)
	if status == "" {
		status = string(event.Type)
	}

	if err := s.orderRepo.UpdatePaymentStatus(ctx, intentID, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("Payment not found for intent")
		}

		return appErrors.DatabaseError("Failed to update payment status").WithError(err)
	}

	return nil
}
