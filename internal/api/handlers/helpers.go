package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	appErrors "github.com/shopverse/ecommerce-backend/internal/errors"
	"github.com/shopverse/ecommerce-backend/internal/models"
	"github.com/shopverse/ecommerce-backend/internal/utils/response"
)

func parsePathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, appErrors.BadRequestError("Invalid " + name)
	}

	return id, nil
}

func parseListOptions(r *http.Request) models.ListOptions {
	q := r.URL.Query()

	opts := models.ListOptions{
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}

	if page, err := strconv.Atoi(q.Get("pageNumber")); err == nil {
		opts.PageNumber = page
	}

	if size, err := strconv.Atoi(q.Get("pageSize")); err == nil {
		opts.PageSize = size
	}

	return opts
}

// writeValidationError keeps per-field details for validator failures
// and degrades to a generic bad request for malformed bodies.
func writeValidationError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		response.ValidationError(w, validationErrs)

		return
	}

	response.Error(w, appErrors.BadRequestError(err.Error()))
}
