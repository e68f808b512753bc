package service

import "github.com/shopverse/ecommerce-backend/internal/models"

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

func normalizeListOptions(opts models.ListOptions) models.ListOptions {
	if opts.PageNumber < 1 {
		opts.PageNumber = 1
	}

	if opts.PageSize < 1 || opts.PageSize > maxPageSize {
		opts.PageSize = defaultPageSize
	}

	if opts.SortOrder != "asc" && opts.SortOrder != "desc" {
		opts.SortOrder = "asc"
	}

	return opts
}
