package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	appErrors "github.com/shopverse/ecommerce-backend/internal/errors"
	"github.com/shopverse/ecommerce-backend/internal/models"
	repository "github.com/shopverse/ecommerce-backend/internal/repositories"
)

// CartService owns cart lifecycle: one lazily created cart per user,
// line-item mutation and the running total.
type CartService interface {
	FindOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.CartResponse, error)
	UpdateItemQuantity(ctx context.Context, userID uuid.UUID, req *models.UpdateQuantityRequest) (*models.CartResponse, error)
	RemoveItem(ctx context.Context, cartID, productID int64) (string, error)
	RefreshPriceForProduct(ctx context.Context, cartID, productID int64) error
	ListCarts(ctx context.Context) ([]models.CartResponse, error)
	GetCartView(ctx context.Context, email string, cartID int64) (*models.CartResponse, error)
}

type cartService struct {
	tx          repository.TxRunner
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(tx repository.TxRunner, cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{tx: tx, cartRepo: cartRepo, productRepo: productRepo}
}

func (s *cartService) FindOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {

	cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.DatabaseError("Failed to look up cart").WithError(err)
	}

	cart = &models.Cart{UserID: userID, TotalPrice: 0}

	if err := s.cartRepo.CreateCart(ctx, cart); err != nil {
		return nil, appErrors.DatabaseError("Failed to create cart").WithError(err)
	}

	return cart, nil
}

func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.CartResponse, error) {

	var view *models.CartResponse

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {

		cart, err := s.FindOrCreateCart(ctx, userID)
		if err != nil {
			return err
		}

		product, err := s.productRepo.GetProductByID(ctx, req.ProductID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.NotFoundError("Product not found")
			}

			return appErrors.DatabaseError("Failed to fetch product").WithError(err)
		}

		// No implicit quantity merge; callers must use the quantity update.
		if _, err := s.cartRepo.GetCartItem(ctx, cart.ID, product.ID); err == nil {
			return appErrors.DuplicateEntryError(fmt.Sprintf("Product %s already exists in the cart", product.Name))
		} else if !errors.Is(err, sql.ErrNoRows) {
			return appErrors.DatabaseError("Failed to fetch cart item").WithError(err)
		}

		if product.Quantity == 0 {
			return appErrors.InvalidStateError(fmt.Sprintf("%s is not available", product.Name))
		}

		if product.Quantity < req.Quantity {
			return appErrors.InvalidStateError(fmt.Sprintf(
				"Please make an order of %s less than or equal to the quantity %d", product.Name, product.Quantity))
		}

		item := &models.CartItem{
			CartID:       cart.ID,
			ProductID:    product.ID,
			Quantity:     req.Quantity,
			ProductPrice: product.SpecialPrice,
			Discount:     product.Discount,
		}

		if err := s.cartRepo.CreateCartItem(ctx, item); err != nil {
			return appErrors.DatabaseError("Failed to add cart item").WithError(err)
		}

		cart.TotalPrice += product.SpecialPrice * float64(req.Quantity)

		if err := s.cartRepo.UpdateCartTotal(ctx, cart.ID, cart.TotalPrice); err != nil {
			return appErrors.DatabaseError("Failed to update cart total").WithError(err)
		}

		view, err = s.buildCartView(ctx, cart)

		return err
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}

// UpdateItemQuantity applies a signed delta to an existing line item.
// The running total moves by (new special price x delta), not by a full
// recompute from item lines; with a price change between add and update
// the total can drift until the snapshot is refreshed.
func (s *cartService) UpdateItemQuantity(ctx context.Context, userID uuid.UUID, req *models.UpdateQuantityRequest) (*models.CartResponse, error) {

	var view *models.CartResponse

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {

		cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.NotFoundError("Cart not found")
			}

			return appErrors.DatabaseError("Failed to fetch cart").WithError(err)
		}

		product, err := s.productRepo.GetProductByID(ctx, req.ProductID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.NotFoundError("Product not found")
			}

			return appErrors.DatabaseError("Failed to fetch product").WithError(err)
		}

		if product.Quantity == 0 {
			return appErrors.InvalidStateError(fmt.Sprintf("%s is not available", product.Name))
		}

		item, err := s.cartRepo.GetCartItem(ctx, cart.ID, product.ID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.NotFoundError(fmt.Sprintf("Product %s does not exist in the cart", product.Name))
			}

			return appErrors.DatabaseError("Failed to fetch cart item").WithError(err)
		}

		if req.Delta > 0 && product.Quantity < item.Quantity+req.Delta {
			return appErrors.InvalidStateError(fmt.Sprintf(
				"Please make an order of %s less than or equal to the quantity %d", product.Name, product.Quantity))
		}

		newQuantity := item.Quantity + req.Delta
		if newQuantity < 0 {
			return appErrors.InvalidStateError("Product quantity can't be negative")
		}

		if newQuantity == 0 {
			if _, err := s.RemoveItem(ctx, cart.ID, product.ID); err != nil {
				return err
			}
		} else {
			item.Quantity = newQuantity
			item.ProductPrice = product.SpecialPrice
			item.Discount = product.Discount

			if err := s.cartRepo.UpdateCartItem(ctx, item); err != nil {
				return appErrors.DatabaseError("Failed to update cart item").WithError(err)
			}

			cart.TotalPrice += product.SpecialPrice * float64(req.Delta)

			if err := s.cartRepo.UpdateCartTotal(ctx, cart.ID, cart.TotalPrice); err != nil {
				return appErrors.DatabaseError("Failed to update cart total").WithError(err)
			}
		}

		// Re-read so the view reflects whichever branch ran.
		cart, err = s.cartRepo.GetCartByID(ctx, cart.ID)
		if err != nil {
			return appErrors.DatabaseError("Failed to fetch cart").WithError(err)
		}

		view, err = s.buildCartView(ctx, cart)

		return err
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}

func (s *cartService) RemoveItem(ctx context.Context, cartID, productID int64) (string, error) {

	var confirmation string

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {

		cart, err := s.cartRepo.GetCartByID(ctx, cartID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.NotFoundError("Cart not found")
			}

			return appErrors.DatabaseError("Failed to fetch cart").WithError(err)
		}

		item, err := s.cartRepo.GetCartItem(ctx, cartID, productID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.NotFoundError("Product not found in the cart")
			}

			return appErrors.DatabaseError("Failed to fetch cart item").WithError(err)
		}

		product, err := s.productRepo.GetProductByID(ctx, productID)
		if err != nil {
			return appErrors.DatabaseError("Failed to fetch product").WithError(err)
		}

		cart.TotalPrice -= item.ProductPrice * float64(item.Quantity)

		if err := s.cartRepo.DeleteCartItem(ctx, cartID, productID); err != nil {
			return appErrors.DatabaseError("Failed to delete cart item").WithError(err)
		}

		if err := s.cartRepo.UpdateCartTotal(ctx, cartID, cart.TotalPrice); err != nil {
			return appErrors.DatabaseError("Failed to update cart total").WithError(err)
		}

		confirmation = fmt.Sprintf("Product %s removed from the cart", product.Name)

		return nil
	})
	if err != nil {
		return "", err
	}

	return confirmation, nil
}

// RefreshPriceForProduct swaps the item's old price contribution for the
// product's current special price, invoked when a product's price
// changes elsewhere.
func (s *cartService) RefreshPriceForProduct(ctx context.Context, cartID, productID int64) error {

	return s.tx.RunInTx(ctx, func(ctx context.Context) error {

		cart, err := s.cartRepo.GetCartByID(ctx, cartID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.NotFoundError("Cart not found")
			}

			return appErrors.DatabaseError("Failed to fetch cart").WithError(err)
		}

		product, err := s.productRepo.GetProductByID(ctx, productID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.NotFoundError("Product not found")
			}

			return appErrors.DatabaseError("Failed to fetch product").WithError(err)
		}

		item, err := s.cartRepo.GetCartItem(ctx, cartID, productID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.InvalidStateError(fmt.Sprintf("Product %s not available in the cart", product.Name))
			}

			return appErrors.DatabaseError("Failed to fetch cart item").WithError(err)
		}

		newTotal := cart.TotalPrice - item.ProductPrice*float64(item.Quantity) + product.SpecialPrice*float64(item.Quantity)

		item.ProductPrice = product.SpecialPrice
		item.Discount = product.Discount

		if err := s.cartRepo.UpdateCartItem(ctx, item); err != nil {
			return appErrors.DatabaseError("Failed to update cart item").WithError(err)
		}

		if err := s.cartRepo.UpdateCartTotal(ctx, cartID, newTotal); err != nil {
			return appErrors.DatabaseError("Failed to update cart total").WithError(err)
		}

		return nil
	})
}

func (s *cartService) ListCarts(ctx context.Context) ([]models.CartResponse, error) {

	carts, err := s.cartRepo.ListCarts(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch carts").WithError(err)
	}

	if len(carts) == 0 {
		return nil, appErrors.InvalidStateError("No cart exists")
	}

	views := make([]models.CartResponse, 0, len(carts))

	for _, cart := range carts {
		view, err := s.buildCartView(ctx, cart)
		if err != nil {
			return nil, err
		}

		views = append(views, *view)
	}

	return views, nil
}

func (s *cartService) GetCartView(ctx context.Context, email string, cartID int64) (*models.CartResponse, error) {

	cart, err := s.cartRepo.GetCartByEmailAndID(ctx, email, cartID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Cart not found")
		}

		return nil, appErrors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	return s.buildCartView(ctx, cart)
}

func (s *cartService) buildCartView(ctx context.Context, cart *models.Cart) (*models.CartResponse, error) {

	items, err := s.cartRepo.ListCartItems(ctx, cart.ID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch cart items").WithError(err)
	}

	products := make([]models.CartProduct, 0, len(items))

	for _, item := range items {
		products = append(products, models.CartProduct{
			ProductID:    item.ProductID,
			Name:         item.Product.Name,
			Image:        item.Product.Image,
			Price:        item.Product.Price,
			Discount:     item.Discount,
			SpecialPrice: item.ProductPrice,
			Quantity:     item.Quantity,
		})
	}

	return &models.CartResponse{
		CartID:     cart.ID,
		TotalPrice: cart.TotalPrice,
		Products:   products,
	}, nil
}
