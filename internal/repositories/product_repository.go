package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopverse/ecommerce-backend/internal/models"
	"github.com/shopverse/ecommerce-backend/internal/utils"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	GetProductByName(ctx context.Context, name string) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	UpdateProductImage(ctx context.Context, id int64, image string) error
	DeleteProduct(ctx context.Context, id int64) error
	ListProducts(ctx context.Context, opts models.ListOptions) ([]*models.Product, int64, error)
	ListProductsByCategory(ctx context.Context, categoryID int64, opts models.ListOptions) ([]*models.Product, int64, error)
	SearchProductsByKeyword(ctx context.Context, keyword string, opts models.ListOptions) ([]*models.Product, int64, error)
	DecrementStock(ctx context.Context, id int64, quantity int) (bool, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

var productSortColumns = map[string]string{
	"id":         "p.id",
	"name":       "p.name",
	"price":      "p.price",
	"quantity":   "p.quantity",
	"created_at": "p.created_at",
}

const productColumns = `p.id, p.category_id, p.name, p.description, p.image, p.price,
			   p.discount, p.special_price, p.quantity, p.created_at, p.updated_at,
			   c.id, c.name, c.description`

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	product := &models.Product{}
	category := &models.Category{}

	err := row.Scan(&product.ID, &product.CategoryID, &product.Name, &product.Description,
		&product.Image, &product.Price, &product.Discount, &product.SpecialPrice,
		&product.Quantity, &product.CreatedAt, &product.UpdatedAt,
		&category.ID, &category.Name, &category.Description)
	if err != nil {
		return nil, err
	}

	product.Category = category

	return product, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO products (category_id, name, description, image, price, discount, special_price, quantity)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id, created_at, updated_at
	`

	return querier(dbCtx, r.DB).QueryRowContext(dbCtx, query, product.CategoryID, product.Name,
		product.Description, product.Image, product.Price, product.Discount,
		product.SpecialPrice, product.Quantity).
		Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + `
			  FROM products p
			  LEFT JOIN categories c ON p.category_id = c.id
			  WHERE p.id = $1`

	return scanProduct(querier(dbCtx, r.DB).QueryRowContext(dbCtx, query, id))
}

func (r *productRepository) GetProductByName(ctx context.Context, name string) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + `
			  FROM products p
			  LEFT JOIN categories c ON p.category_id = c.id
			  WHERE p.name = $1`

	return scanProduct(querier(dbCtx, r.DB).QueryRowContext(dbCtx, query, name))
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE products
			  SET name = $1, description = $2, price = $3, discount = $4, special_price = $5, quantity = $6, updated_at = NOW()
			  WHERE id = $7
			  RETURNING updated_at`

	return querier(dbCtx, r.DB).QueryRowContext(dbCtx, query, product.Name, product.Description,
		product.Price, product.Discount, product.SpecialPrice, product.Quantity, product.ID).
		Scan(&product.UpdatedAt)
}

func (r *productRepository) UpdateProductImage(ctx context.Context, id int64, image string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := querier(dbCtx, r.DB).ExecContext(dbCtx,
		`UPDATE products SET image = $1, updated_at = NOW() WHERE id = $2`, image, id)
	if err != nil {
		return fmt.Errorf("failed to update product image: %w", err)
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

func (r *productRepository) DeleteProduct(ctx context.Context, id int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := querier(dbCtx, r.DB).ExecContext(dbCtx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
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

func (r *productRepository) ListProducts(ctx context.Context, opts models.ListOptions) ([]*models.Product, int64, error) {
	return r.list(ctx, opts, "", nil)
}

// ListProductsByCategory always orders by price ascending.
func (r *productRepository) ListProductsByCategory(ctx context.Context, categoryID int64, opts models.ListOptions) ([]*models.Product, int64, error) {
	opts.SortBy = "price"
	opts.SortOrder = "asc"

	return r.list(ctx, opts, `p.category_id = $1`, []any{categoryID})
}

func (r *productRepository) SearchProductsByKeyword(ctx context.Context, keyword string, opts models.ListOptions) ([]*models.Product, int64, error) {
	return r.list(ctx, opts, `p.name ILIKE '%' || $1 || '%'`, []any{keyword})
}

func (r *productRepository) list(ctx context.Context, opts models.ListOptions, where string, filterArgs []any) ([]*models.Product, int64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	q := querier(dbCtx, r.DB)

	countQuery := `SELECT COUNT(*) FROM products p`
	if where != "" {
		countQuery += ` WHERE ` + where
	}

	var total int64

	if err := q.QueryRowContext(dbCtx, countQuery, filterArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sortColumn, ok := productSortColumns[opts.SortBy]
	if !ok {
		sortColumn = "p.id"
	}

	direction := "ASC"
	if opts.SortOrder == "desc" {
		direction = "DESC"
	}

	offset := (opts.PageNumber - 1) * opts.PageSize

	query := `SELECT ` + productColumns + `
			  FROM products p
			  LEFT JOIN categories c ON p.category_id = c.id`

	if where != "" {
		query += ` WHERE ` + where
	}

	limitPos := len(filterArgs) + 1
	query += fmt.Sprintf(` ORDER BY %s %s LIMIT $%d OFFSET $%d`, sortColumn, direction, limitPos, limitPos+1)

	args := append(append([]any{}, filterArgs...), opts.PageSize, offset)

	rows, err := q.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	var products []*models.Product

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// DecrementStock subtracts quantity from the product's on-hand stock,
// refusing to go negative. Returns false when stock was insufficient.
func (r *productRepository) DecrementStock(ctx context.Context, id int64, quantity int) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := querier(dbCtx, r.DB).ExecContext(dbCtx,
		`UPDATE products SET quantity = quantity - $1, updated_at = NOW() WHERE id = $2 AND quantity >= $1`,
		quantity, id)
	if err != nil {
		return false, fmt.Errorf("failed to decrement stock: %w", err)
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get updated rows: %w", err)
	}

	return updated > 0, nil
}
