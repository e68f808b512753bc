package models

import "time"

type Product struct {
	ID          int64     `json:"id"`
	CategoryID  int64     `json:"category_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Price       float64   `json:"price"`
	Discount    float64   `json:"discount"`
	// SpecialPrice is the price actually charged: price - (discount% x price).
	// Recomputed from price and discount on every create/update.
	SpecialPrice float64   `json:"special_price"`
	Quantity     int       `json:"quantity"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Category     *Category `json:"category,omitempty"`
}

type CreateProductRequest struct {
	CategoryID  int64   `json:"category_id" validate:"required"`
	Name        string  `json:"name" validate:"required,min=3,max=200"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Discount    float64 `json:"discount" validate:"gte=0,lte=100"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=3,max=200"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Discount    *float64 `json:"discount,omitempty" validate:"omitempty,gte=0,lte=100"`
	Quantity    *int     `json:"quantity,omitempty" validate:"omitempty,gte=0"`
}

type UpdateProductImageRequest struct {
	Image string `json:"image" validate:"required"`
}
