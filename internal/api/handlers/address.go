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

type AddressHandler struct {
	addressService service.AddressService
	validator      *validator.Validate
}

func NewAddressHandler(addressService service.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService, validator: validator.New()}
}

func (h *AddressHandler) CreateAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, appErrors.UnauthorizedError("Authentication required"))

			return
		}

		var req models.CreateAddressRequest

		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, appErrors.BadRequestError(err.Error()))

			return
		}

		if err := utils.ValidateStruct(h.validator, req); err != nil {
			writeValidationError(w, err)

			return
		}

		address, err := h.addressService.CreateAddress(r.Context(), claims.UserID, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		logger.Info("Address created", slog.Int64("addressId", address.ID))
		response.Success(w, http.StatusCreated, address)
	}
}

func (h *AddressHandler) GetAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := parsePathID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		address, err := h.addressService.GetAddressByID(r.Context(), id)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, address)
	}
}

func (h *AddressHandler) ListAddresses() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		addresses, err := h.addressService.ListAddresses(r.Context())
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, addresses)
	}
}

func (h *AddressHandler) ListUserAddresses() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, appErrors.UnauthorizedError("Authentication required"))

			return
		}

		addresses, err := h.addressService.ListAddressesByUser(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, addresses)
	}
}

func (h *AddressHandler) UpdateAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := parsePathID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		var req models.UpdateAddressRequest

		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, appErrors.BadRequestError(err.Error()))

			return
		}

		if err := utils.ValidateStruct(h.validator, req); err != nil {
			writeValidationError(w, err)

			return
		}

		address, err := h.addressService.UpdateAddress(r.Context(), id, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		logger.Info("Address updated", slog.Int64("addressId", id))
		response.Success(w, http.StatusOK, address)
	}
}

func (h *AddressHandler) DeleteAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := parsePathID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		confirmation, err := h.addressService.DeleteAddress(r.Context(), id)
		if err != nil {
			response.Error(w, err)

			return
		}

		logger.Info("Address deleted", slog.Int64("addressId", id))
		response.Success(w, http.StatusOK, confirmation)
	}
}
