package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopverse/ecommerce-backend/internal/models"
	"github.com/shopverse/ecommerce-backend/internal/utils"
)

// CartRepository persists carts and their line items. Cart items are
// always derived by foreign-key query; no denormalized item list is
// kept on the cart row.
type CartRepository interface {
	CreateCart(ctx context.Context, cart *models.Cart) error
	GetCartByID(ctx context.Context, id int64) (*models.Cart, error)
	GetCartByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	GetCartByEmail(ctx context.Context, email string) (*models.Cart, error)
	GetCartByEmailAndID(ctx context.Context, email string, cartID int64) (*models.Cart, error)
	ListCarts(ctx context.Context) ([]*models.Cart, error)
	UpdateCartTotal(ctx context.Context, cartID int64, total float64) error

	CreateCartItem(ctx context.Context, item *models.CartItem) error
	GetCartItem(ctx context.Context, cartID, productID int64) (*models.CartItem, error)
	ListCartItems(ctx context.Context, cartID int64) ([]*models.CartItem, error)
	UpdateCartItem(ctx context.Context, item *models.CartItem) error
	DeleteCartItem(ctx context.Context, cartID, productID int64) error
	DeleteCartItems(ctx context.Context, cartID int64) error
	ListCartIDsByProduct(ctx context.Context, productID int64) ([]int64, error)
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

func (r *cartRepository) CreateCart(ctx context.Context, cart *models.Cart) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO carts (user_id, total_price)
			  VALUES ($1, $2)
			  RETURNING id, created_at, updated_at`

	return querier(dbCtx, r.DB).QueryRowContext(dbCtx, query, cart.UserID, cart.TotalPrice).
		Scan(&cart.ID, &cart.CreatedAt, &cart.UpdatedAt)
}

const cartColumns = `id, user_id, total_price, created_at, updated_at`

func (r *cartRepository) getCart(ctx context.Context, query string, args ...any) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	cart := &models.Cart{}

	err := querier(dbCtx, r.DB).QueryRowContext(dbCtx, query, args...).
		Scan(&cart.ID, &cart.UserID, &cart.TotalPrice, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return cart, nil
}

func (r *cartRepository) GetCartByID(ctx context.Context, id int64) (*models.Cart, error) {
	return r.getCart(ctx, `SELECT `+cartColumns+` FROM carts WHERE id = $1`, id)
}

func (r *cartRepository) GetCartByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	return r.getCart(ctx, `SELECT `+cartColumns+` FROM carts WHERE user_id = $1`, userID)
}

func (r *cartRepository) GetCartByEmail(ctx context.Context, email string) (*models.Cart, error) {
	query := `SELECT c.id, c.user_id, c.total_price, c.created_at, c.updated_at
			  FROM carts c
			  JOIN users u ON c.user_id = u.id
			  WHERE u.email = $1`

	return r.getCart(ctx, query, email)
}

func (r *cartRepository) GetCartByEmailAndID(ctx context.Context, email string, cartID int64) (*models.Cart, error) {
	query := `SELECT c.id, c.user_id, c.total_price, c.created_at, c.updated_at
			  FROM carts c
			  JOIN users u ON c.user_id = u.id
			  WHERE u.email = $1 AND c.id = $2`

	return r.getCart(ctx, query, email, cartID)
}

func (r *cartRepository) ListCarts(ctx context.Context) ([]*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rows, err := querier(dbCtx, r.DB).QueryContext(dbCtx,
		`SELECT `+cartColumns+` FROM carts ORDER BY id`)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var carts []*models.Cart

	for rows.Next() {
		cart := &models.Cart{}

		if err := rows.Scan(&cart.ID, &cart.UserID, &cart.TotalPrice, &cart.CreatedAt, &cart.UpdatedAt); err != nil {
			return nil, err
		}

		carts = append(carts, cart)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return carts, nil
}

func (r *cartRepository) UpdateCartTotal(ctx context.Context, cartID int64, total float64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := querier(dbCtx, r.DB).ExecContext(dbCtx,
		`UPDATE carts SET total_price = $1, updated_at = NOW() WHERE id = $2`, total, cartID)
	if err != nil {
		return fmt.Errorf("failed to update cart total: %w", err)
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updated == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *cartRepository) CreateCartItem(ctx context.Context, item *models.CartItem) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO cart_items (cart_id, product_id, quantity, product_price, discount)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`

	return querier(dbCtx, r.DB).QueryRowContext(dbCtx, query, item.CartID, item.ProductID,
		item.Quantity, item.ProductPrice, item.Discount).Scan(&item.ID)
}

func (r *cartRepository) GetCartItem(ctx context.Context, cartID, productID int64) (*models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	item := &models.CartItem{}

	query := `SELECT id, cart_id, product_id, quantity, product_price, discount
			  FROM cart_items
			  WHERE cart_id = $1 AND product_id = $2`

	err := querier(dbCtx, r.DB).QueryRowContext(dbCtx, query, cartID, productID).
		Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &item.ProductPrice, &item.Discount)
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (r *cartRepository) ListCartItems(ctx context.Context, cartID int64) ([]*models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.product_price, ci.discount,
				 p.id, p.category_id, p.name, p.description, p.image, p.price,
				 p.discount, p.special_price, p.quantity, p.created_at, p.updated_at
			  FROM cart_items ci
			  JOIN products p ON ci.product_id = p.id
			  WHERE ci.cart_id = $1
			  ORDER BY ci.id`

	rows, err := querier(dbCtx, r.DB).QueryContext(dbCtx, query, cartID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var items []*models.CartItem

	for rows.Next() {
		item := &models.CartItem{}
		product := &models.Product{}

		err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity,
			&item.ProductPrice, &item.Discount,
			&product.ID, &product.CategoryID, &product.Name, &product.Description,
			&product.Image, &product.Price, &product.Discount, &product.SpecialPrice,
			&product.Quantity, &product.CreatedAt, &product.UpdatedAt)
		if err != nil {
			return nil, err
		}

		item.Product = product
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *cartRepository) UpdateCartItem(ctx context.Context, item *models.CartItem) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := querier(dbCtx, r.DB).ExecContext(dbCtx,
		`UPDATE cart_items SET quantity = $1, product_price = $2, discount = $3 WHERE id = $4`,
		item.Quantity, item.ProductPrice, item.Discount, item.ID)
	if err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updated == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *cartRepository) DeleteCartItem(ctx context.Context, cartID, productID int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := querier(dbCtx, r.DB).ExecContext(dbCtx,
		`DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2`, cartID, productID)
	if err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get deleted rows: %w", err)
	}

	if deleted == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *cartRepository) DeleteCartItems(ctx context.Context, cartID int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	_, err := querier(dbCtx, r.DB).ExecContext(dbCtx,
		`DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	if err != nil {
		return fmt.Errorf("failed to clear cart items: %w", err)
	}

	return nil
}

// ListCartIDsByProduct finds every cart holding the product, used to
// propagate a product price change into cart snapshots.
func (r *cartRepository) ListCartIDsByProduct(ctx context.Context, productID int64) ([]int64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rows, err := querier(dbCtx, r.DB).QueryContext(dbCtx,
		`SELECT cart_id FROM cart_items WHERE product_id = $1`, productID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var cartIDs []int64

	for rows.Next() {
		var id int64

		if err := rows.Scan(&id); err != nil {
			return nil, err
		}

		cartIDs = append(cartIDs, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return cartIDs, nil
}
