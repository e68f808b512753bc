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

type CategoryHandler struct {
	categoryService service.CategoryService
	validator       *validator.Validate
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, validator: validator.New()}
}

func (h *CategoryHandler) CreateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateCategoryRequest

		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, appErrors.BadRequestError(err.Error()))

			return
		}

		if err := utils.ValidateStruct(h.validator, req); err != nil {
			writeValidationError(w, err)

			return
		}

		category, err := h.categoryService.CreateCategory(r.Context(), &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		logger.Info("Category created", slog.Int64("categoryId", category.ID))
		response.Success(w, http.StatusCreated, category)
	}
}

func (h *CategoryHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		page, err := h.categoryService.ListCategories(r.Context(), parseListOptions(r))
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, page)
	}
}

func (h *CategoryHandler) UpdateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := parsePathID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		var req models.UpdateCategoryRequest

		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, appErrors.BadRequestError(err.Error()))

			return
		}

		if err := utils.ValidateStruct(h.validator, req); err != nil {
			writeValidationError(w, err)

			return
		}

		category, err := h.categoryService.UpdateCategory(r.Context(), id, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		logger.Info("Category updated", slog.Int64("categoryId", id))
		response.Success(w, http.StatusOK, category)
	}
}

func (h *CategoryHandler) DeleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := parsePathID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		category, err := h.categoryService.DeleteCategory(r.Context(), id)
		if err != nil {
			response.Error(w, err)

			return
		}

		logger.Info("Category deleted", slog.Int64("categoryId", id))
		response.Success(w, http.StatusOK, category)
	}
}
