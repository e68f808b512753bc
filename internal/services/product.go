package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/shopverse/ecommerce-backend/internal/cache"
	appErrors "github.com/shopverse/ecommerce-backend/internal/errors"
	"github.com/shopverse/ecommerce-backend/internal/models"
	repository "github.com/shopverse/ecommerce-backend/internal/repositories"
)

const defaultProductImage = "default.png"

type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	ListProducts(ctx context.Context, opts models.ListOptions) (*models.PagedResponse, error)
	ListProductsByCategory(ctx context.Context, categoryID int64, opts models.ListOptions) (*models.PagedResponse, error)
	SearchProductsByKeyword(ctx context.Context, keyword string, opts models.ListOptions) (*models.PagedResponse, error)
	UpdateProduct(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.Product, error)
	UpdateProductImage(ctx context.Context, id int64, image string) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) (*models.Product, error)
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	cartRepo     repository.CartRepository
	carts        CartService
	cache        cache.Cache
	cacheTTL     time.Duration
	sanitizer    *bluemonday.Policy
	logger       *slog.Logger
}

func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	cartRepo repository.CartRepository,
	carts CartService,
	productCache cache.Cache,
	cacheTTL time.Duration,
	logger *slog.Logger,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		cartRepo:     cartRepo,
		carts:        carts,
		cache:        productCache,
		cacheTTL:     cacheTTL,
		sanitizer:    bluemonday.StrictPolicy(),
		logger:       logger,
	}
}

func specialPrice(price, discount float64) float64 {
	return price - (discount/100.0)*price
}

func (s *productService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	if _, err := s.categoryRepo.GetCategoryByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Category not found")
		}

		return nil, appErrors.DatabaseError("Failed to fetch category").WithError(err)
	}

	name := s.sanitizer.Sanitize(req.Name)

	if _, err := s.productRepo.GetProductByName(ctx, name); err == nil {
		return nil, appErrors.DuplicateEntryError("Product already exists")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.DatabaseError("Failed to look up product").WithError(err)
	}

	product := &models.Product{
		CategoryID:   req.CategoryID,
		Name:         name,
		Description:  s.sanitizer.Sanitize(req.Description),
		Image:        defaultProductImage,
		Price:        req.Price,
		Discount:     req.Discount,
		SpecialPrice: specialPrice(req.Price, req.Discount),
		Quantity:     req.Quantity,
	}

	if err := s.productRepo.CreateProduct(ctx, product); err != nil {
		return nil, appErrors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {

	key := cache.Key(cache.ProductKeyPrefix, strconv.FormatInt(id, 10))

	var cached models.Product

	if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
		s.logger.Warn("Product cache read failed", slog.String("error", err.Error()))
	} else if hit {
		return &cached, nil
	}

	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found")
		}

		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if err := s.cache.Set(ctx, key, product, s.cacheTTL); err != nil {
		s.logger.Warn("Product cache write failed", slog.String("error", err.Error()))
	}

	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, opts models.ListOptions) (*models.PagedResponse, error) {

	opts = normalizeListOptions(opts)

	products, total, err := s.productRepo.ListProducts(ctx, opts)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch products").WithError(err)
	}

	if len(products) == 0 {
		return nil, appErrors.InvalidStateError("No product present currently")
	}

	return models.NewPagedResponse(products, opts, total), nil
}

func (s *productService) ListProductsByCategory(ctx context.Context, categoryID int64, opts models.ListOptions) (*models.PagedResponse, error) {

	if _, err := s.categoryRepo.GetCategoryByID(ctx, categoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Category not found")
		}

		return nil, appErrors.DatabaseError("Failed to fetch category").WithError(err)
	}

	opts = normalizeListOptions(opts)

	products, total, err := s.productRepo.ListProductsByCategory(ctx, categoryID, opts)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch products").WithError(err)
	}

	if len(products) == 0 {
		return nil, appErrors.InvalidStateError(fmt.Sprintf("No product found with category id %d", categoryID))
	}

	return models.NewPagedResponse(products, opts, total), nil
}

func (s *productService) SearchProductsByKeyword(ctx context.Context, keyword string, opts models.ListOptions) (*models.PagedResponse, error) {

	opts = normalizeListOptions(opts)

	products, total, err := s.productRepo.SearchProductsByKeyword(ctx, keyword, opts)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to search products").WithError(err)
	}

	if len(products) == 0 {
		return nil, appErrors.InvalidStateError(fmt.Sprintf("No product found with keyword %s", keyword))
	}

	return models.NewPagedResponse(products, opts, total), nil
}

func (s *productService) UpdateProduct(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.Product, error) {

	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found")
		}

		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if req.Name != nil {
		product.Name = s.sanitizer.Sanitize(*req.Name)
	}

	if req.Description != nil {
		product.Description = s.sanitizer.Sanitize(*req.Description)
	}

	priceChanged := false

	if req.Price != nil && *req.Price != product.Price {
		product.Price = *req.Price
		priceChanged = true
	}

	if req.Discount != nil && *req.Discount != product.Discount {
		product.Discount = *req.Discount
		priceChanged = true
	}

	if req.Quantity != nil {
		product.Quantity = *req.Quantity
	}

	product.SpecialPrice = specialPrice(product.Price, product.Discount)

	if err := s.productRepo.UpdateProduct(ctx, product); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found")
		}

		return nil, appErrors.DatabaseError("Failed to update product").WithError(err)
	}

	s.invalidate(ctx, id)

	// Push the new special price into every cart holding this product so
	// stored snapshots and totals follow the catalog.
	if priceChanged {
		cartIDs, err := s.cartRepo.ListCartIDsByProduct(ctx, id)
		if err != nil {
			return nil, appErrors.DatabaseError("Failed to fetch carts for product").WithError(err)
		}

		for _, cartID := range cartIDs {
			if err := s.carts.RefreshPriceForProduct(ctx, cartID, id); err != nil {
				return nil, err
			}
		}
	}

	return product, nil
}

func (s *productService) UpdateProductImage(ctx context.Context, id int64, image string) (*models.Product, error) {

	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found")
		}

		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if err := s.productRepo.UpdateProductImage(ctx, id, image); err != nil {
		return nil, appErrors.DatabaseError("Failed to update product image").WithError(err)
	}

	product.Image = image

	s.invalidate(ctx, id)

	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id int64) (*models.Product, error) {

	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found")
		}

		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	// Pull the product out of open carts first so totals stay consistent.
	cartIDs, err := s.cartRepo.ListCartIDsByProduct(ctx, id)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch carts for product").WithError(err)
	}

	for _, cartID := range cartIDs {
		if _, err := s.carts.RemoveItem(ctx, cartID, id); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found")
		}

		return nil, appErrors.DatabaseError("Failed to delete product").WithError(err)
	}

	s.invalidate(ctx, id)

	return product, nil
}

func (s *productService) invalidate(ctx context.Context, id int64) {
	key := cache.Key(cache.ProductKeyPrefix, strconv.FormatInt(id, 10))

	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.Warn("Product cache invalidation failed", slog.String("error", err.Error()))
	}
}
