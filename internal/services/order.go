package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	appErrors "github.com/shopverse/ecommerce-backend/internal/errors"
	"github.com/shopverse/ecommerce-backend/internal/models"
	repository "github.com/shopverse/ecommerce-backend/internal/repositories"
	"github.com/shopverse/ecommerce-backend/pkg/sendgrid"
)

// OrderService turns a cart into an order: payment record, order with
// items, stock decrement and cart cleanup, all inside one transaction.
type OrderService interface {
	PlaceOrder(ctx context.Context, email string, req *models.PlaceOrderRequest) (*models.OrderResponse, error)
	GetOrderByID(ctx context.Context, id int64) (*models.OrderResponse, error)
	ListOrdersByEmail(ctx context.Context, email string) ([]models.OrderResponse, error)
}

type orderService struct {
	tx          repository.TxRunner
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	addressRepo repository.AddressRepository
	emailer     sendgrid.EmailService
	logger      *slog.Logger
}

func NewOrderService(
	tx repository.TxRunner,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	addressRepo repository.AddressRepository,
	emailer sendgrid.EmailService,
	logger *slog.Logger,
) OrderService {
	return &orderService{
		tx:          tx,
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		addressRepo: addressRepo,
		emailer:     emailer,
		logger:      logger,
	}
}

func (s *orderService) PlaceOrder(ctx context.Context, email string, req *models.PlaceOrderRequest) (*models.OrderResponse, error) {

	var (
		order   *models.Order
		address *models.Address
		payment *models.Payment
	)

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {

		cart, err := s.cartRepo.GetCartByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.NotFoundError("Cart not found")
			}

			return appErrors.DatabaseError("Failed to fetch cart").WithError(err)
		}

		address, err = s.addressRepo.GetAddressByID(ctx, req.AddressID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.NotFoundError("Address not found")
			}

			return appErrors.DatabaseError("Failed to fetch address").WithError(err)
		}

		items, err := s.cartRepo.ListCartItems(ctx, cart.ID)
		if err != nil {
			return appErrors.DatabaseError("Failed to fetch cart items").WithError(err)
		}

		// Reject before the first write; an empty cart must not leave a
		// stray payment or order row behind.
		if len(items) == 0 {
			return appErrors.InvalidStateError("Cart is empty")
		}

		payment = &models.Payment{
			PaymentMethod:     req.PaymentMethod,
			PgName:            req.PgName,
			PgPaymentID:       req.PgPaymentID,
			PgStatus:          req.PgStatus,
			PgResponseMessage: req.PgResponseMessage,
		}

		if err := s.orderRepo.CreatePayment(ctx, payment); err != nil {
			return appErrors.DatabaseError("Failed to create payment").WithError(err)
		}

		order = &models.Order{
			Email:       email,
			OrderDate:   time.Now(),
			AddressID:   address.ID,
			PaymentID:   payment.ID,
			TotalAmount: cart.TotalPrice,
			Status:      models.OrderStatusAccepted,
		}

		if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
			return appErrors.DatabaseError("Failed to create order").WithError(err)
		}

		orderItems := make([]models.OrderItem, 0, len(items))

		for _, item := range items {
			orderItems = append(orderItems, models.OrderItem{
				OrderID:             order.ID,
				ProductID:           item.ProductID,
				Quantity:            item.Quantity,
				OrderedProductPrice: item.ProductPrice,
				Discount:            item.Discount,
				Product:             item.Product,
			})
		}

		orderItems, err = s.orderRepo.CreateOrderItems(ctx, orderItems)
		if err != nil {
			return appErrors.DatabaseError("Failed to create order items").WithError(err)
		}

		order.Items = orderItems

		// Conditional decrement; a concurrent checkout that drained the
		// stock first fails this guard and rolls the whole order back.
		for _, item := range items {
			ok, err := s.productRepo.DecrementStock(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return appErrors.DatabaseError("Failed to update product stock").WithError(err)
			}

			if !ok {
				return appErrors.InvalidStateError(fmt.Sprintf(
					"Insufficient stock for product %s", item.Product.Name))
			}
		}

		if err := s.cartRepo.DeleteCartItems(ctx, cart.ID); err != nil {
			return appErrors.DatabaseError("Failed to clear cart").WithError(err)
		}

		if err := s.cartRepo.UpdateCartTotal(ctx, cart.ID, 0); err != nil {
			return appErrors.DatabaseError("Failed to reset cart total").WithError(err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Post-commit, best effort only.
	if s.emailer != nil {
		if err := s.emailer.SendOrderConfirmation(email, order.ID, order.TotalAmount); err != nil {
			s.logger.Warn("Order confirmation email failed",
				slog.Int64("orderId", order.ID), slog.String("error", err.Error()))
		}
	}

	order.Address = address
	order.Payment = payment

	return orderResponse(order), nil
}

func (s *orderService) GetOrderByID(ctx context.Context, id int64) (*models.OrderResponse, error) {

	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Order not found")
		}

		return nil, appErrors.DatabaseError("Failed to fetch order").WithError(err)
	}

	return orderResponse(order), nil
}

func (s *orderService) ListOrdersByEmail(ctx context.Context, email string) ([]models.OrderResponse, error) {

	orders, err := s.orderRepo.ListOrdersByEmail(ctx, email)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	if len(orders) == 0 {
		return nil, appErrors.InvalidStateError(fmt.Sprintf("No order placed yet by the user with email %s", email))
	}

	responses := make([]models.OrderResponse, 0, len(orders))

	for _, order := range orders {
		responses = append(responses, *orderResponse(order))
	}

	return responses, nil
}

func orderResponse(order *models.Order) *models.OrderResponse {
	items := order.Items
	if items == nil {
		items = []models.OrderItem{}
	}

	return &models.OrderResponse{
		OrderID:     order.ID,
		Email:       order.Email,
		OrderDate:   order.OrderDate,
		TotalAmount: order.TotalAmount,
		Status:      order.Status,
		Address:     order.Address,
		Payment:     order.Payment,
		Items:       items,
	}
}
