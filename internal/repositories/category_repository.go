package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopverse/ecommerce-backend/internal/models"
	"github.com/shopverse/ecommerce-backend/internal/utils"
)

type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategoryByID(ctx context.Context, id int64) (*models.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id int64) error
	ListCategories(ctx context.Context, opts models.ListOptions) ([]*models.Category, int64, error)
}

type categoryRepository struct {
	DB *sql.DB
}

func NewCategoryRepo(db *sql.DB) CategoryRepository {
	return &categoryRepository{DB: db}
}

var categorySortColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"created_at": "created_at",
}

func (r *categoryRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO categories (name, description)
			  VALUES ($1, $2)
			  RETURNING id, created_at, updated_at
	`

	return querier(dbCtx, r.DB).QueryRowContext(dbCtx, query, category.Name, category.Description).
		Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
}

func (r *categoryRepository) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	category := &models.Category{}

	query := `SELECT id, name, description, created_at, updated_at
			  FROM categories
			  WHERE id = $1`

	err := querier(dbCtx, r.DB).QueryRowContext(dbCtx, query, id).
		Scan(&category.ID, &category.Name, &category.Description, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return category, nil
}

func (r *categoryRepository) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	category := &models.Category{}

	query := `SELECT id, name, description, created_at, updated_at
			  FROM categories
			  WHERE name = $1`

	err := querier(dbCtx, r.DB).QueryRowContext(dbCtx, query, name).
		Scan(&category.ID, &category.Name, &category.Description, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return category, nil
}

func (r *categoryRepository) UpdateCategory(ctx context.Context, category *models.Category) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE categories SET name = $1, description = $2, updated_at = NOW()
			  WHERE id = $3
			  RETURNING updated_at`

	return querier(dbCtx, r.DB).QueryRowContext(dbCtx, query, category.Name, category.Description, category.ID).
		Scan(&category.UpdatedAt)
}

func (r *categoryRepository) DeleteCategory(ctx context.Context, id int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := querier(dbCtx, r.DB).ExecContext(dbCtx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
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

func (r *categoryRepository) ListCategories(ctx context.Context, opts models.ListOptions) ([]*models.Category, int64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	q := querier(dbCtx, r.DB)

	var total int64

	if err := q.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM categories`).Scan(&total); err != nil {
		return nil, 0, err
	}

	sortColumn, ok := categorySortColumns[opts.SortBy]
	if !ok {
		sortColumn = "id"
	}

	direction := "ASC"
	if opts.SortOrder == "desc" {
		direction = "DESC"
	}

	offset := (opts.PageNumber - 1) * opts.PageSize

	query := fmt.Sprintf(`SELECT id, name, description, created_at, updated_at
			  FROM categories
			  ORDER BY %s %s
			  LIMIT $1 OFFSET $2`, sortColumn, direction)

	rows, err := q.QueryContext(dbCtx, query, opts.PageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	var categories []*models.Category

	for rows.Next() {
		category := &models.Category{}

		if err := rows.Scan(&category.ID, &category.Name, &category.Description, &category.CreatedAt, &category.UpdatedAt); err != nil {
			return nil, 0, err
		}

		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return categories, total, nil
}
