package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopverse/ecommerce-backend/internal/api/handlers"
	appErrors "github.com/shopverse/ecommerce-backend/internal/errors"
	"github.com/shopverse/ecommerce-backend/internal/models"
	"github.com/shopverse/ecommerce-backend/internal/services/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupPaymentTest() (*mocks.MockPaymentService, *handlers.PaymentHandler) {
	mockPaymentService := new(mocks.MockPaymentService)
	paymentHandler := handlers.NewPaymentHandler(mockPaymentService)

	return mockPaymentService, paymentHandler
}

func TestCreatePaymentIntentHandler(t *testing.T) {
	t.Run("Success - Intent Created", func(t *testing.T) {
		// Arrange
		mockPaymentService, paymentHandler := setupPaymentTest()

		requestBody, _ := json.Marshal(models.CreatePaymentIntentRequest{OrderID: 21})
		req, _ := createAuthenticatedRequest("POST", "/api/v1/payments/intent", requestBody)
		recorder := httptest.NewRecorder()

		mockIntent := &models.PaymentIntentResponse{
			PaymentIntentID: "pi_123",
			ClientSecret:    "pi_123_secret",
			Amount:          180.50,
			Status:          "requires_payment_method",
		}

		// Mock Call
		mockPaymentService.On("CreatePaymentIntent", mock.Anything, mock.MatchedBy(func(req *models.CreatePaymentIntentRequest) bool {
			return req.OrderID == 21
		})).Return(mockIntent, nil).Once()

		// Act
		handler := paymentHandler.CreatePaymentIntent()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusCreated, recorder.Code)

		resp := decodeAPIResponse(t, recorder)
		assert.True(t, resp.Success)

		mockPaymentService.AssertExpectations(t)
	})

	t.Run("Failure - Missing Order ID", func(t *testing.T) {
		// Arrange
		mockPaymentService, paymentHandler := setupPaymentTest()

		req, _ := createAuthenticatedRequest("POST", "/api/v1/payments/intent", []byte(`{}`))
		recorder := httptest.NewRecorder()

		// Act
		handler := paymentHandler.CreatePaymentIntent()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		mockPaymentService.AssertNotCalled(t, "CreatePaymentIntent", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Order Not Found", func(t *testing.T) {
		// Arrange
		mockPaymentService, paymentHandler := setupPaymentTest()

		requestBody, _ := json.Marshal(models.CreatePaymentIntentRequest{OrderID: 99})
		req, _ := createAuthenticatedRequest("POST", "/api/v1/payments/intent", requestBody)
		recorder := httptest.NewRecorder()

		// Mock Call
		mockError := appErrors.NotFoundError("Order not found")
		mockPaymentService.On("CreatePaymentIntent", mock.Anything, mock.Anything).Return(nil, mockError).Once()

		// Act
		handler := paymentHandler.CreatePaymentIntent()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, recorder.Code)

		mockPaymentService.AssertExpectations(t)
	})
}

func TestStripeWebhook(t *testing.T) {
	t.Run("Success - Event Processed", func(t *testing.T) {
		// Arrange
		mockPaymentService, paymentHandler := setupPaymentTest()

		payload := []byte(`{"type":"payment_intent.succeeded"}`)
		req, _ := createAuthenticatedRequest("POST", "/api/v1/payments/webhook", payload)
		req.Header.Set("Stripe-Signature", "sig")
		recorder := httptest.NewRecorder()

		// Mock Call
		mockPaymentService.On("HandleWebhookEvent", mock.Anything, payload, "sig").Return(nil).Once()

		// Act
		handler := paymentHandler.StripeWebhook()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		resp := decodeAPIResponse(t, recorder)
		assert.True(t, resp.Success)

		mockPaymentService.AssertExpectations(t)
	})

	t.Run("Failure - Bad Signature", func(t *testing.T) {
		// Arrange
		mockPaymentService, paymentHandler := setupPaymentTest()

		payload := []byte(`{}`)
		req, _ := createAuthenticatedRequest("POST", "/api/v1/payments/webhook", payload)
		req.Header.Set("Stripe-Signature", "bad")
		recorder := httptest.NewRecorder()

		// Mock Call
		mockError := appErrors.UnauthorizedError("Invalid webhook signature")
		mockPaymentService.On("HandleWebhookEvent", mock.Anything, payload, "bad").Return(mockError).Once()

		// Act
		handler := paymentHandler.StripeWebhook()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)

		mockPaymentService.AssertExpectations(t)
	})
}
