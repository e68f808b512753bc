package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	appErrors "github.com/shopverse/ecommerce-backend/internal/errors"
	"github.com/shopverse/ecommerce-backend/internal/models"
	repository "github.com/shopverse/ecommerce-backend/internal/repositories"
)

type CategoryService interface {
	CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error)
	ListCategories(ctx context.Context, opts models.ListOptions) (*models.PagedResponse, error)
	UpdateCategory(ctx context.Context, id int64, req *models.UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) (*models.Category, error)
}

type categoryService struct {
	repo      repository.CategoryRepository
	sanitizer *bluemonday.Policy
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{
		repo:      repo,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *categoryService) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {

	name := s.sanitizer.Sanitize(req.Name)

	if _, err := s.repo.GetCategoryByName(ctx, name); err == nil {
		return nil, appErrors.DuplicateEntryError(fmt.Sprintf("Category with the name %s already exists", name))
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.DatabaseError("Failed to look up category").WithError(err)
	}

	category := &models.Category{
		Name:        name,
		Description: s.sanitizer.Sanitize(req.Description),
	}

	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, appErrors.DatabaseError("Failed to create category").WithError(err)
	}

	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context, opts models.ListOptions) (*models.PagedResponse, error) {

	opts = normalizeListOptions(opts)

	categories, total, err := s.repo.ListCategories(ctx, opts)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch categories").WithError(err)
	}

	if len(categories) == 0 {
		return nil, appErrors.InvalidStateError("No category created till now")
	}

	return models.NewPagedResponse(categories, opts, total), nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id int64, req *models.UpdateCategoryRequest) (*models.Category, error) {

	category, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Category not found")
		}

		return nil, appErrors.DatabaseError("Failed to fetch category").WithError(err)
	}

	if req.Name != nil {
		name := s.sanitizer.Sanitize(*req.Name)

		if existing, err := s.repo.GetCategoryByName(ctx, name); err == nil && existing.ID != id {
			return nil, appErrors.DuplicateEntryError(fmt.Sprintf("Category with the name %s already exists", name))
		}

		category.Name = name
	}

	if req.Description != nil {
		category.Description = s.sanitizer.Sanitize(*req.Description)
	}

	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Category not found")
		}

		return nil, appErrors.DatabaseError("Failed to update category").WithError(err)
	}

	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id int64) (*models.Category, error) {

	category, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Category not found")
		}

		return nil, appErrors.DatabaseError("Failed to fetch category").WithError(err)
	}

	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Category not found")
		}

		return nil, appErrors.DatabaseError("Failed to delete category").WithError(err)
	}

	return category, nil
}
