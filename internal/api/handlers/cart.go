package handlers

import (
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

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, appErrors.UnauthorizedError("Authentication required"))

			return
		}

		var req models.AddItemRequest

		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, appErrors.BadRequestError(err.Error()))

			return
		}

		if err := utils.ValidateStruct(h.validator, req); err != nil {
			writeValidationError(w, err)

			return
		}

		cart, err := h.cartService.AddItem(r.Context(), claims.UserID, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		logger.Info("Product added to cart",
			slog.Int64("cartId", cart.CartID), slog.Int64("productId", req.ProductID))
		response.Success(w, http.StatusCreated, cart)
	}
}

func (h *CartHandler) UpdateItemQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, appErrors.UnauthorizedError("Authentication required"))

			return
		}

		var req models.UpdateQuantityRequest

		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, appErrors.BadRequestError(err.Error()))

			return
		}

		if err := utils.ValidateStruct(h.validator, req); err != nil {
			writeValidationError(w, err)

			return
		}

		cart, err := h.cartService.UpdateItemQuantity(r.Context(), claims.UserID, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		logger.Info("Cart item quantity updated",
			slog.Int64("cartId", cart.CartID), slog.Int64("productId", req.ProductID))
		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		cartID, err := parsePathID(r, "cartId")
		if err != nil {
			response.Error(w, err)

			return
		}

		productID, err := parsePathID(r, "productId")
		if err != nil {
			response.Error(w, err)

			return
		}

		confirmation, err := h.cartService.RemoveItem(r.Context(), cartID, productID)
		if err != nil {
			response.Error(w, err)

			return
		}

		logger.Info("Product removed from cart",
			slog.Int64("cartId", cartID), slog.Int64("productId", productID))
		response.Success(w, http.StatusOK, confirmation)
	}
}

func (h *CartHandler) ListCarts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		carts, err := h.cartService.ListCarts(r.Context())
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, carts)
	}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, appErrors.UnauthorizedError("Authentication required"))

			return
		}

		cartID, err := parsePathID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		cart, err := h.cartService.GetCartView(r.Context(), claims.Email, cartID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}
