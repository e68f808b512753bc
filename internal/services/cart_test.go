package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	appErrors "github.com/shopverse/ecommerce-backend/internal/errors"
	"github.com/shopverse/ecommerce-backend/internal/models"
	"github.com/shopverse/ecommerce-backend/internal/repositories/mocks"
	service "github.com/shopverse/ecommerce-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCartServiceUnderTest() (service.CartService, *mocks.MockCartRepository, *mocks.MockProductRepository) {
	cartRepo := &mocks.MockCartRepository{}
	productRepo := &mocks.MockProductRepository{}

	return service.NewCartService(mocks.PassthroughTxRunner{}, cartRepo, productRepo), cartRepo, productRepo
}

func laptopProduct() *models.Product {
	return &models.Product{
		ID:           7,
		CategoryID:   1,
		Name:         "Laptop",
		Image:        "default.png",
		Price:        100,
		Discount:     10,
		SpecialPrice: 90,
		Quantity:     5,
	}
}

func TestFindOrCreateCart(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success - Existing Cart Returned", func(t *testing.T) {
		cartService, cartRepo, _ := newCartServiceUnderTest()
		existing := &models.Cart{ID: 3, UserID: userID, TotalPrice: 50}

		// Arrange
		cartRepo.On("GetCartByUserID", ctx, userID).Return(existing, nil).Once()

		// Act
		cart, err := cartService.FindOrCreateCart(ctx, userID)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, existing, cart)
		cartRepo.AssertNotCalled(t, "CreateCart", mock.Anything, mock.Anything)
		cartRepo.AssertExpectations(t)
	})

	t.Run("Success - Cart Created Lazily", func(t *testing.T) {
		cartService, cartRepo, _ := newCartServiceUnderTest()

		// Arrange
		cartRepo.On("GetCartByUserID", ctx, userID).Return(nil, sql.ErrNoRows).Once()
		cartRepo.On("CreateCart", ctx, mock.AnythingOfType("*models.Cart")).Return(nil).Once()

		// Act
		cart, err := cartService.FindOrCreateCart(ctx, userID)

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, cart)
		assert.Equal(t, userID, cart.UserID)
		assert.Equal(t, float64(0), cart.TotalPrice)
		cartRepo.AssertExpectations(t)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		cartService, cartRepo, _ := newCartServiceUnderTest()
		dbError := errors.New("connection refused")

		// Arrange
		cartRepo.On("GetCartByUserID", ctx, userID).Return(nil, dbError).Once()

		// Act
		cart, err := cartService.FindOrCreateCart(ctx, userID)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, cart)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
		cartRepo.AssertExpectations(t)
	})
}

func TestAddItem(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success - Total Uses Special Price", func(t *testing.T) {
		cartService, cartRepo, productRepo := newCartServiceUnderTest()
		cart := &models.Cart{ID: 1, UserID: userID, TotalPrice: 0}
		product := laptopProduct()

		// Arrange
		cartRepo.On("GetCartByUserID", ctx, userID).Return(cart, nil).Once()
		productRepo.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()
		cartRepo.On("GetCartItem", ctx, cart.ID, product.ID).Return(nil, sql.ErrNoRows).Once()
		cartRepo.On("CreateCartItem", ctx, mock.AnythingOfType("*models.CartItem")).Return(nil).Once()
		// price 100, 10% discount, quantity 2 -> 2 x 90
		cartRepo.On("UpdateCartTotal", ctx, cart.ID, float64(180)).Return(nil).Once()
		cartRepo.On("ListCartItems", ctx, cart.ID).Return([]*models.CartItem{
			{CartID: cart.ID, ProductID: product.ID, Quantity: 2, ProductPrice: 90, Discount: 10, Product: product},
		}, nil).Once()

		// Act
		view, err := cartService.AddItem(ctx, userID, &models.AddItemRequest{ProductID: product.ID, Quantity: 2})

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, view)
		assert.Equal(t, float64(180), view.TotalPrice)
		assert.Len(t, view.Products, 1)
		assert.Equal(t, float64(90), view.Products[0].SpecialPrice)
		assert.Equal(t, 2, view.Products[0].Quantity)
		cartRepo.AssertExpectations(t)
		productRepo.AssertExpectations(t)
	})

	t.Run("Success - Snapshot Captured On Item", func(t *testing.T) {
		cartService, cartRepo, productRepo := newCartServiceUnderTest()
		cart := &models.Cart{ID: 1, UserID: userID}
		product := laptopProduct()

		// Arrange
		cartRepo.On("GetCartByUserID", ctx, userID).Return(cart, nil).Once()
		productRepo.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()
		cartRepo.On("GetCartItem", ctx, cart.ID, product.ID).Return(nil, sql.ErrNoRows).Once()
		cartRepo.On("CreateCartItem", ctx, mock.MatchedBy(func(item *models.CartItem) bool {
			return item.ProductPrice == 90 && item.Discount == 10 && item.Quantity == 1
		})).Return(nil).Once()
		cartRepo.On("UpdateCartTotal", ctx, cart.ID, float64(90)).Return(nil).Once()
		cartRepo.On("ListCartItems", ctx, cart.ID).Return([]*models.CartItem{
			{CartID: cart.ID, ProductID: product.ID, Quantity: 1, ProductPrice: 90, Discount: 10, Product: product},
		}, nil).Once()

		// Act
		_, err := cartService.AddItem(ctx, userID, &models.AddItemRequest{ProductID: product.ID, Quantity: 1})

		// Assert
		assert.NoError(t, err)
		cartRepo.AssertExpectations(t)
	})

	t.Run("Failure - Product Already In Cart", func(t *testing.T) {
		cartService, cartRepo, productRepo := newCartServiceUnderTest()
		cart := &models.Cart{ID: 1, UserID: userID}
		product := laptopProduct()

		// Arrange
		cartRepo.On("GetCartByUserID", ctx, userID).Return(cart, nil).Once()
		productRepo.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()
		cartRepo.On("GetCartItem", ctx, cart.ID, product.ID).
			Return(&models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 1}, nil).Once()

		// Act
		view, err := cartService.AddItem(ctx, userID, &models.AddItemRequest{ProductID: product.ID, Quantity: 1})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, view)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDuplicateEntry, appErr.Code)
		cartRepo.AssertNotCalled(t, "CreateCartItem", mock.Anything, mock.Anything)
		cartRepo.AssertExpectations(t)
	})

	t.Run("Failure - Product Out Of Stock", func(t *testing.T) {
		cartService, cartRepo, productRepo := newCartServiceUnderTest()
		cart := &models.Cart{ID: 1, UserID: userID}
		product := laptopProduct()
		product.Quantity = 0

		// Arrange
		cartRepo.On("GetCartByUserID", ctx, userID).Return(cart, nil).Once()
		productRepo.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()
		cartRepo.On("GetCartItem", ctx, cart.ID, product.ID).Return(nil, sql.ErrNoRows).Once()

		// Act
		view, err := cartService.AddItem(ctx, userID, &models.AddItemRequest{ProductID: product.ID, Quantity: 1})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, view)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeInvalidState, appErr.Code)
		cartRepo.AssertExpectations(t)
	})

	t.Run("Failure - Requested Quantity Exceeds Stock", func(t *testing.T) {
		cartService, cartRepo, productRepo := newCartServiceUnderTest()
		cart := &models.Cart{ID: 1, UserID: userID}
		product := laptopProduct()

		// Arrange
		cartRepo.On("GetCartByUserID", ctx, userID).Return(cart, nil).Once()
		productRepo.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()
		cartRepo.On("GetCartItem", ctx, cart.ID, product.ID).Return(nil, sql.ErrNoRows).Once()

		// Act
		view, err := cartService.AddItem(ctx, userID, &models.AddItemRequest{ProductID: product.ID, Quantity: 10})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, view)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeInvalidState, appErr.Code)
		cartRepo.AssertNotCalled(t, "CreateCartItem", mock.Anything, mock.Anything)
		cartRepo.AssertExpectations(t)
	})

	t.Run("Failure - Product Not Found", func(t *testing.T) {
		cartService, cartRepo, productRepo := newCartServiceUnderTest()
		cart := &models.Cart{ID: 1, UserID: userID}

		// Arrange
		cartRepo.On("GetCartByUserID", ctx, userID).Return(cart, nil).Once()
		productRepo.On("GetProductByID", ctx, int64(99)).Return(nil, sql.ErrNoRows).Once()

		// Act
		view, err := cartService.AddItem(ctx, userID, &models.AddItemRequest{ProductID: 99, Quantity: 1})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, view)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		productRepo.AssertExpectations(t)
	})
}

func TestUpdateItemQuantity(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success - Increment By One", func(t *testing.T) {
		cartService, cartRepo, productRepo := newCartServiceUnderTest()
		cart := &models.Cart{ID: 1, UserID: userID, TotalPrice: 180}
		product := laptopProduct()
		item := &models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 2, ProductPrice: 90, Discount: 10}

		// Arrange
		cartRepo.On("GetCartByUserID", ctx, userID).Return(cart, nil).Once()
		productRepo.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()
		cartRepo.On("GetCartItem", ctx, cart.ID, product.ID).Return(item, nil).Once()
		cartRepo.On("UpdateCartItem", ctx, mock.MatchedBy(func(updated *models.CartItem) bool {
			return updated.Quantity == 3 && updated.ProductPrice == 90
		})).Return(nil).Once()
		cartRepo.On("UpdateCartTotal", ctx, cart.ID, float64(270)).Return(nil).Once()
		cartRepo.On("GetCartByID", ctx, cart.ID).Return(cart, nil).Once()
		cartRepo.On("ListCartItems", ctx, cart.ID).Return([]*models.CartItem{
			{CartID: cart.ID, ProductID: product.ID, Quantity: 3, ProductPrice: 90, Discount: 10, Product: product},
		}, nil).Once()

		// Act
		view, err := cartService.UpdateItemQuantity(ctx, userID, &models.UpdateQuantityRequest{ProductID: product.ID, Delta: 1})

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, view)
		assert.Equal(t, 3, view.Products[0].Quantity)
		cartRepo.AssertExpectations(t)
		productRepo.AssertExpectations(t)
	})

	t.Run("Success - Total Moves By Current Price Times Delta", func(t *testing.T) {
		// Snapshot was taken at 90, the product now sells at 80. The
		// total moves by 80 x delta, leaving the older contribution of
		// the snapshot untouched.
		cartService, cartRepo, productRepo := newCartServiceUnderTest()
		cart := &models.Cart{ID: 1, UserID: userID, TotalPrice: 180}
		product := laptopProduct()
		product.Price = 80
		product.Discount = 0
		product.SpecialPrice = 80
		item := &models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 2, ProductPrice: 90, Discount: 10}

		// Arrange
		cartRepo.On("GetCartByUserID", ctx, userID).Return(cart, nil).Once()
		productRepo.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()
		cartRepo.On("GetCartItem", ctx, cart.ID, product.ID).Return(item, nil).Once()
		cartRepo.On("UpdateCartItem", ctx, mock.MatchedBy(func(updated *models.CartItem) bool {
			return updated.Quantity == 3 && updated.ProductPrice == 80 && updated.Discount == 0
		})).Return(nil).Once()
		cartRepo.On("UpdateCartTotal", ctx, cart.ID, float64(260)).Return(nil).Once()
		cartRepo.On("GetCartByID", ctx, cart.ID).Return(cart, nil).Once()
		cartRepo.On("ListCartItems", ctx, cart.ID).Return([]*models.CartItem{
			{CartID: cart.ID, ProductID: product.ID, Quantity: 3, ProductPrice: 80, Product: product},
		}, nil).Once()

		// Act
		_, err := cartService.UpdateItemQuantity(ctx, userID, &models.UpdateQuantityRequest{ProductID: product.ID, Delta: 1})

		// Assert
		assert.NoError(t, err)
		cartRepo.AssertExpectations(t)
	})

	t.Run("Success - Delta To Zero Removes Item", func(t *testing.T) {
		cartService, cartRepo, productRepo := newCartServiceUnderTest()
		cart := &models.Cart{ID: 1, UserID: userID, TotalPrice: 180}
		product := laptopProduct()
		item := &models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 2, ProductPrice: 90, Discount: 10}

		// Arrange
		cartRepo.On("GetCartByUserID", ctx, userID).Return(cart, nil).Once()
		productRepo.On("GetProductByID", ctx, product.ID).Return(product, nil).Twice()
		cartRepo.On("GetCartItem", ctx, cart.ID, product.ID).Return(item, nil).Twice()
		cartRepo.On("GetCartByID", ctx, cart.ID).Return(cart, nil).Twice()
		cartRepo.On("DeleteCartItem", ctx, cart.ID, product.ID).Return(nil).Once()
		cartRepo.On("UpdateCartTotal", ctx, cart.ID, float64(0)).Return(nil).Once()
		cartRepo.On("ListCartItems", ctx, cart.ID).Return([]*models.CartItem{}, nil).Once()

		// Act
		view, err := cartService.UpdateItemQuantity(ctx, userID, &models.UpdateQuantityRequest{ProductID: product.ID, Delta: -2})

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, view)
		assert.Empty(t, view.Products)
		cartRepo.AssertNotCalled(t, "UpdateCartItem", mock.Anything, mock.Anything)
		cartRepo.AssertExpectations(t)
	})

	t.Run("Failure - Increment Exceeds Stock", func(t *testing.T) {
		cartService, cartRepo, productRepo := newCartServiceUnderTest()
		cart := &models.Cart{ID: 1, UserID: userID, TotalPrice: 180}
		product := laptopProduct()
		item := &models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 2, ProductPrice: 90, Discount: 10}

		// Arrange
		cartRepo.On("GetCartByUserID", ctx, userID).Return(cart, nil).Once()
		productRepo.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()
		cartRepo.On("GetCartItem", ctx, cart.ID, product.ID).Return(item, nil).Once()

		// Act
		view, err := cartService.UpdateItemQuantity(ctx, userID, &models.UpdateQuantityRequest{ProductID: product.ID, Delta: 10})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, view)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeInvalidState, appErr.Code)
		cartRepo.AssertNotCalled(t, "UpdateCartItem", mock.Anything, mock.Anything)
		cartRepo.AssertExpectations(t)
	})

	t.Run("Failure - Resulting Quantity Negative", func(t *testing.T) {
		cartService, cartRepo, productRepo := newCartServiceUnderTest()
		cart := &models.Cart{ID: 1, UserID: userID, TotalPrice: 90}
		product := laptopProduct()
		item := &models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 1, ProductPrice: 90, Discount: 10}

		// Arrange
		cartRepo.On("GetCartByUserID", ctx, userID).Return(cart, nil).Once()
		productRepo.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()
		cartRepo.On("GetCartItem", ctx, cart.ID, product.ID).Return(item, nil).Once()

		// Act
		view, err := cartService.UpdateItemQuantity(ctx, userID, &models.UpdateQuantityRequest{ProductID: product.ID, Delta: -3})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, view)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeInvalidState, appErr.Code)
		cartRepo.AssertExpectations(t)
	})
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		cartService, cartRepo, productRepo := newCartServiceUnderTest()
		cart := &models.Cart{ID: 1, TotalPrice: 180}
		product := laptopProduct()
		item := &models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 2, ProductPrice: 90, Discount: 10}

		// Arrange
		cartRepo.On("GetCartByID", ctx, cart.ID).Return(cart, nil).Once()
		cartRepo.On("GetCartItem", ctx, cart.ID, product.ID).Return(item, nil).Once()
		productRepo.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()
		cartRepo.On("DeleteCartItem", ctx, cart.ID, product.ID).Return(nil).Once()
		cartRepo.On("UpdateCartTotal", ctx, cart.ID, float64(0)).Return(nil).Once()

		// Act
		confirmation, err := cartService.RemoveItem(ctx, cart.ID, product.ID)

		// Assert
		assert.NoError(t, err)
		assert.Contains(t, confirmation, "Laptop")
		cartRepo.AssertExpectations(t)
		productRepo.AssertExpectations(t)
	})

	t.Run("Failure - Item Not In Cart", func(t *testing.T) {
		cartService, cartRepo, _ := newCartServiceUnderTest()
		cart := &models.Cart{ID: 1, TotalPrice: 180}

		// Arrange
		cartRepo.On("GetCartByID", ctx, cart.ID).Return(cart, nil).Once()
		cartRepo.On("GetCartItem", ctx, cart.ID, int64(7)).Return(nil, sql.ErrNoRows).Once()

		// Act
		confirmation, err := cartService.RemoveItem(ctx, cart.ID, 7)

		// Assert
		assert.Error(t, err)
		assert.Empty(t, confirmation)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		cartRepo.AssertNotCalled(t, "DeleteCartItem", mock.Anything, mock.Anything, mock.Anything)
		cartRepo.AssertExpectations(t)
	})
}

func TestRefreshPriceForProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Old Contribution Swapped For New", func(t *testing.T) {
		cartService, cartRepo, productRepo := newCartServiceUnderTest()
		cart := &models.Cart{ID: 1, TotalPrice: 180}
		product := laptopProduct()
		product.SpecialPrice = 70
		item := &models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 2, ProductPrice: 90, Discount: 10}

		// Arrange
		cartRepo.On("GetCartByID", ctx, cart.ID).Return(cart, nil).Once()
		productRepo.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()
		cartRepo.On("GetCartItem", ctx, cart.ID, product.ID).Return(item, nil).Once()
		cartRepo.On("UpdateCartItem", ctx, mock.MatchedBy(func(updated *models.CartItem) bool {
			return updated.ProductPrice == 70
		})).Return(nil).Once()
		// 180 - 2x90 + 2x70
		cartRepo.On("UpdateCartTotal", ctx, cart.ID, float64(140)).Return(nil).Once()

		// Act
		err := cartService.RefreshPriceForProduct(ctx, cart.ID, product.ID)

		// Assert
		assert.NoError(t, err)
		cartRepo.AssertExpectations(t)
	})

	t.Run("Failure - Product Not In Cart", func(t *testing.T) {
		cartService, cartRepo, productRepo := newCartServiceUnderTest()
		cart := &models.Cart{ID: 1, TotalPrice: 180}
		product := laptopProduct()

		// Arrange
		cartRepo.On("GetCartByID", ctx, cart.ID).Return(cart, nil).Once()
		productRepo.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()
		cartRepo.On("GetCartItem", ctx, cart.ID, product.ID).Return(nil, sql.ErrNoRows).Once()

		// Act
		err := cartService.RefreshPriceForProduct(ctx, cart.ID, product.ID)

		// Assert
		assert.Error(t, err)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeInvalidState, appErr.Code)
		cartRepo.AssertExpectations(t)
	})
}

func TestListCarts(t *testing.T) {
	ctx := context.Background()

	t.Run("Failure - No Cart Exists", func(t *testing.T) {
		cartService, cartRepo, _ := newCartServiceUnderTest()

		// Arrange
		cartRepo.On("ListCarts", ctx).Return([]*models.Cart{}, nil).Once()

		// Act
		views, err := cartService.ListCarts(ctx)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, views)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeInvalidState, appErr.Code)
		cartRepo.AssertExpectations(t)
	})

	t.Run("Success", func(t *testing.T) {
		cartService, cartRepo, _ := newCartServiceUnderTest()
		product := laptopProduct()
		carts := []*models.Cart{{ID: 1, TotalPrice: 90}, {ID: 2, TotalPrice: 0}}

		// Arrange
		cartRepo.On("ListCarts", ctx).Return(carts, nil).Once()
		cartRepo.On("ListCartItems", ctx, int64(1)).Return([]*models.CartItem{
			{CartID: 1, ProductID: product.ID, Quantity: 1, ProductPrice: 90, Discount: 10, Product: product},
		}, nil).Once()
		cartRepo.On("ListCartItems", ctx, int64(2)).Return([]*models.CartItem{}, nil).Once()

		// Act
		views, err := cartService.ListCarts(ctx)

		// Assert
		assert.NoError(t, err)
		assert.Len(t, views, 2)
		assert.Len(t, views[0].Products, 1)
		assert.Empty(t, views[1].Products)
		cartRepo.AssertExpectations(t)
	})
}

func TestGetCartView(t *testing.T) {
	ctx := context.Background()

	t.Run("Failure - Cart Not Found For Email", func(t *testing.T) {
		cartService, cartRepo, _ := newCartServiceUnderTest()

		// Arrange
		cartRepo.On("GetCartByEmailAndID", ctx, "user@example.com", int64(9)).Return(nil, sql.ErrNoRows).Once()

		// Act
		view, err := cartService.GetCartView(ctx, "user@example.com", 9)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, view)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		cartRepo.AssertExpectations(t)
	})
}
