package models

import "time"

const OrderStatusAccepted = "Accepted"

type Payment struct {
	ID                int64  `json:"id"`
	PaymentMethod     string `json:"payment_method"`
	PgName            string `json:"pg_name"`
	PgPaymentID       string `json:"pg_payment_id"`
	PgStatus          string `json:"pg_status"`
	PgResponseMessage string `json:"pg_response_message"`
}

// OrderItem carries the price and discount copied from the originating
// cart item at checkout time, fixed regardless of later product changes.
type OrderItem struct {
	ID                  int64    `json:"id"`
	OrderID             int64    `json:"order_id"`
	ProductID           int64    `json:"product_id"`
	Quantity            int      `json:"quantity"`
	OrderedProductPrice float64  `json:"ordered_product_price"`
	Discount            float64  `json:"discount"`
	Product             *Product `json:"product,omitempty"`
}

type Order struct {
	ID          int64       `json:"id"`
	Email       string      `json:"email"`
	OrderDate   time.Time   `json:"order_date"`
	AddressID   int64       `json:"address_id"`
	PaymentID   int64       `json:"payment_id"`
	TotalAmount float64     `json:"total_amount"`
	Status      string      `json:"status"`
	Address     *Address    `json:"address,omitempty"`
	Payment     *Payment    `json:"payment,omitempty"`
	Items       []OrderItem `json:"items,omitempty"`
}

type PlaceOrderRequest struct {
	AddressID         int64  `json:"address_id" validate:"required"`
	PaymentMethod     string `json:"payment_method" validate:"required"`
	PgName            string `json:"pg_name,omitempty"`
	PgPaymentID       string `json:"pg_payment_id,omitempty"`
	PgStatus          string `json:"pg_status,omitempty"`
	PgResponseMessage string `json:"pg_response_message,omitempty"`
}

type OrderResponse struct {
	OrderID     int64       `json:"order_id"`
	Email       string      `json:"email"`
	OrderDate   time.Time   `json:"order_date"`
	TotalAmount float64     `json:"total_amount"`
	Status      string      `json:"status"`
	Address     *Address    `json:"address,omitempty"`
	Payment     *Payment    `json:"payment,omitempty"`
	Items       []OrderItem `json:"items"`
}

type CreatePaymentIntentRequest struct {
	OrderID int64 `json:"order_id" validate:"required"`
}

type PaymentIntentResponse struct {
	PaymentIntentID string  `json:"payment_intent_id"`
	ClientSecret    string  `json:"client_secret"`
	Amount          float64 `json:"amount"`
	Status          string  `json:"status"`
}
