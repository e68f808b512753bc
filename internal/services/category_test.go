package service_test

import (
	"context"
	"database/sql"
	"testing"

	appErrors "github.com/shopverse/ecommerce-backend/internal/errors"
	"github.com/shopverse/ecommerce-backend/internal/models"
	"github.com/shopverse/ecommerce-backend/internal/repositories/mocks"
	service "github.com/shopverse/ecommerce-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCreateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := &mocks.MockCategoryRepository{}
		categoryService := service.NewCategoryService(repo)

		// Arrange
		repo.On("GetCategoryByName", ctx, "Electronics").Return(nil, sql.ErrNoRows).Once()
		repo.On("CreateCategory", ctx, mock.MatchedBy(func(category *models.Category) bool {
			return category.Name == "Electronics"
		})).Return(nil).Once()

		// Act
		category, err := categoryService.CreateCategory(ctx, &models.CreateCategoryRequest{Name: "Electronics"})

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, category)
		repo.AssertExpectations(t)
	})

	t.Run("Success - Markup Stripped From Name", func(t *testing.T) {
		repo := &mocks.MockCategoryRepository{}
		categoryService := service.NewCategoryService(repo)

		// Arrange
		repo.On("GetCategoryByName", ctx, "Electronics").Return(nil, sql.ErrNoRows).Once()
		repo.On("CreateCategory", ctx, mock.MatchedBy(func(category *models.Category) bool {
			return category.Name == "Electronics"
		})).Return(nil).Once()

		// Act
		category, err := categoryService.CreateCategory(ctx, &models.CreateCategoryRequest{Name: "<script>x</script>Electronics"})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "Electronics", category.Name)
		repo.AssertExpectations(t)
	})

	t.Run("Failure - Duplicate Name", func(t *testing.T) {
		repo := &mocks.MockCategoryRepository{}
		categoryService := service.NewCategoryService(repo)

		// Arrange
		repo.On("GetCategoryByName", ctx, "Electronics").
			Return(&models.Category{ID: 1, Name: "Electronics"}, nil).Once()

		// Act
		category, err := categoryService.CreateCategory(ctx, &models.CreateCategoryRequest{Name: "Electronics"})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, category)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDuplicateEntry, appErr.Code)
		repo.AssertNotCalled(t, "CreateCategory", mock.Anything, mock.Anything)
	})
}

func TestListCategories(t *testing.T) {
	ctx := context.Background()

	t.Run("Failure - No Category Yet", func(t *testing.T) {
		repo := &mocks.MockCategoryRepository{}
		categoryService := service.NewCategoryService(repo)

		// Arrange
		repo.On("ListCategories", ctx, mock.AnythingOfType("models.ListOptions")).
			Return([]*models.Category{}, int64(0), nil).Once()

		// Act
		page, err := categoryService.ListCategories(ctx, models.ListOptions{})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, page)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeInvalidState, appErr.Code)
		repo.AssertExpectations(t)
	})

	t.Run("Success - Defaults Applied", func(t *testing.T) {
		repo := &mocks.MockCategoryRepository{}
		categoryService := service.NewCategoryService(repo)
		categories := []*models.Category{{ID: 1, Name: "Electronics"}}

		// Arrange
		repo.On("ListCategories", ctx, mock.MatchedBy(func(opts models.ListOptions) bool {
			return opts.PageNumber == 1 && opts.PageSize == 10 && opts.SortOrder == "asc"
		})).Return(categories, int64(1), nil).Once()

		// Act
		page, err := categoryService.ListCategories(ctx, models.ListOptions{PageNumber: -3, PageSize: 9999})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, int64(1), page.TotalElements)
		assert.True(t, page.LastPage)
		repo.AssertExpectations(t)
	})
}

func TestUpdateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("Failure - Not Found", func(t *testing.T) {
		repo := &mocks.MockCategoryRepository{}
		categoryService := service.NewCategoryService(repo)
		name := "Gadgets"

		// Arrange
		repo.On("GetCategoryByID", ctx, int64(42)).Return(nil, sql.ErrNoRows).Once()

		// Act
		category, err := categoryService.UpdateCategory(ctx, 42, &models.UpdateCategoryRequest{Name: &name})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, category)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		repo.AssertExpectations(t)
	})

	t.Run("Success", func(t *testing.T) {
		repo := &mocks.MockCategoryRepository{}
		categoryService := service.NewCategoryService(repo)
		name := "Gadgets"
		existing := &models.Category{ID: 42, Name: "Electronics"}

		// Arrange
		repo.On("GetCategoryByID", ctx, int64(42)).Return(existing, nil).Once()
		repo.On("GetCategoryByName", ctx, "Gadgets").Return(nil, sql.ErrNoRows).Once()
		repo.On("UpdateCategory", ctx, mock.MatchedBy(func(category *models.Category) bool {
			return category.Name == "Gadgets"
		})).Return(nil).Once()

		// Act
		category, err := categoryService.UpdateCategory(ctx, 42, &models.UpdateCategoryRequest{Name: &name})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "Gadgets", category.Name)
		repo.AssertExpectations(t)
	})
}

func TestDeleteCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Deleted Category Returned", func(t *testing.T) {
		repo := &mocks.MockCategoryRepository{}
		categoryService := service.NewCategoryService(repo)
		existing := &models.Category{ID: 42, Name: "Electronics"}

		// Arrange
		repo.On("GetCategoryByID", ctx, int64(42)).Return(existing, nil).Once()
		repo.On("DeleteCategory", ctx, int64(42)).Return(nil).Once()

		// Act
		category, err := categoryService.DeleteCategory(ctx, 42)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, existing.Name, category.Name)
		repo.AssertExpectations(t)
	})
}
