package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/shopverse/ecommerce-backend/internal/api/middleware"
	appErrors "github.com/shopverse/ecommerce-backend/internal/errors"
	"github.com/shopverse/ecommerce-backend/internal/models"
	service "github.com/shopverse/ecommerce-backend/internal/services"
	"github.com/shopverse/ecommerce-backend/internal/utils"
	"github.com/shopverse/ecommerce-backend/internal/utils/response"
)

type PaymentHandler struct {
	paymentService service.PaymentService
	validator      *validator.Validate
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, validator: validator.New()}
}

func (h *PaymentHandler) CreatePaymentIntent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreatePaymentIntentRequest

		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, appErrors.BadRequestError(err.Error()))

			return
		}

		if err := utils.ValidateStruct(h.validator, req); err != nil {
			writeValidationError(w, err)

			return
		}

		intent, err := h.paymentService.CreatePaymentIntent(r.Context(), &req)
		if err != nil {
			logger.Warn("Payment intent creation failed",
				slog.Int64("orderId", req.OrderID), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Payment intent created",
			slog.Int64("orderId", req.OrderID), slog.String("intentId", intent.PaymentIntentID))
		response.Success(w, http.StatusCreated, intent)
	}
}

func (h *PaymentHandler) GetPayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		orderID, err := parsePathID(r, "orderId")
		if err != nil {
			response.Error(w, err)

			return
		}

		payment, err := h.paymentService.GetPayment(r.Context(), orderID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, payment)
	}
}

func (h *PaymentHandler) StripeWebhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		payload, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
		if err != nil {
			response.Error(w, appErrors.BadRequestError("Failed to read webhook payload"))

			return
		}

		defer r.Body.Close()

		signature := r.Header.Get("Stripe-Signature")

		if err := h.paymentService.HandleWebhookEvent(r.Context(), payload, signature); err != nil {
			logger.Warn("Webhook processing failed", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, "Webhook processed")
	}
}
