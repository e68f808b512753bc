package models

import (
	"time"

	"github.com/google/uuid"
)

type Cart struct {
	ID         int64     `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	TotalPrice float64   `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CartItem snapshots the product's special price and discount at add
// time. The snapshot is only refreshed on a quantity update or an
// explicit price refresh, never on read.
type CartItem struct {
	ID           int64    `json:"id"`
	CartID       int64    `json:"cart_id"`
	ProductID    int64    `json:"product_id"`
	Quantity     int      `json:"quantity"`
	ProductPrice float64  `json:"product_price"`
	Discount     float64  `json:"discount"`
	Product      *Product `json:"product,omitempty"`
}

type AddItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int   `json:"quantity" validate:"required,min=1"`
}

// Delta is a signed quantity adjustment; driving the resulting quantity
// to zero removes the item from the cart.
type UpdateQuantityRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Delta     int   `json:"delta" validate:"required"`
}

type CartProduct struct {
	ProductID    int64   `json:"product_id"`
	Name         string  `json:"name"`
	Image        string  `json:"image"`
	Price        float64 `json:"price"`
	Discount     float64 `json:"discount"`
	SpecialPrice float64 `json:"special_price"`
	Quantity     int     `json:"quantity"`
}

type CartResponse struct {
	CartID     int64         `json:"cart_id"`
	TotalPrice float64       `json:"total_price"`
	Products   []CartProduct `json:"products"`
}
