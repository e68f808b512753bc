package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopverse/ecommerce-backend/internal/models"
	"github.com/shopverse/ecommerce-backend/internal/utils"
)

type OrderRepository interface {
	CreatePayment(ctx context.Context, payment *models.Payment) error
	CreateOrder(ctx context.Context, order *models.Order) error
	CreateOrderItems(ctx context.Context, items []models.OrderItem) ([]models.OrderItem, error)
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	ListOrdersByEmail(ctx context.Context, email string) ([]*models.Order, error)
	UpdatePaymentStatus(ctx context.Context, pgPaymentID, pgStatus string) error
	UpdatePaymentGateway(ctx context.Context, paymentID int64, pgName, pgPaymentID, pgStatus string) error
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

func (r *orderRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO payments (payment_method, pg_name, pg_payment_id, pg_status, pg_response_message)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`

	return querier(dbCtx, r.DB).QueryRowContext(dbCtx, query, payment.PaymentMethod,
		payment.PgName, payment.PgPaymentID, payment.PgStatus, payment.PgResponseMessage).
		Scan(&payment.ID)
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO orders (email, order_date, address_id, payment_id, total_amount, status)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`

	return querier(dbCtx, r.DB).QueryRowContext(dbCtx, query, order.Email, order.OrderDate,
		order.AddressID, order.PaymentID, order.TotalAmount, order.Status).
		Scan(&order.ID)
}

func (r *orderRepository) CreateOrderItems(ctx context.Context, items []models.OrderItem) ([]models.OrderItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	q := querier(dbCtx, r.DB)

	query := `INSERT INTO order_items (order_id, product_id, quantity, ordered_product_price, discount)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`

	for i := range items {
		err := q.QueryRowContext(dbCtx, query, items[i].OrderID, items[i].ProductID,
			items[i].Quantity, items[i].OrderedProductPrice, items[i].Discount).
			Scan(&items[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	return items, nil
}

const orderColumns = `o.id, o.email, o.order_date, o.address_id, o.payment_id, o.total_amount, o.status,
			   a.id, a.user_id, a.street, a.building_name, a.city, a.state, a.country, a.pincode,
			   pay.id, pay.payment_method, pay.pg_name, pay.pg_payment_id, pay.pg_status, pay.pg_response_message`

func scanOrder(row interface{ Scan(...any) error }) (*models.Order, error) {
	order := &models.Order{}
	address := &models.Address{}
	payment := &models.Payment{}

	err := row.Scan(&order.ID, &order.Email, &order.OrderDate, &order.AddressID,
		&order.PaymentID, &order.TotalAmount, &order.Status,
		&address.ID, &address.UserID, &address.Street, &address.BuildingName,
		&address.City, &address.State, &address.Country, &address.Pincode,
		&payment.ID, &payment.PaymentMethod, &payment.PgName, &payment.PgPaymentID,
		&payment.PgStatus, &payment.PgResponseMessage)
	if err != nil {
		return nil, err
	}

	order.Address = address
	order.Payment = payment

	return order, nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + orderColumns + `
			  FROM orders o
			  JOIN addresses a ON o.address_id = a.id
			  JOIN payments pay ON o.payment_id = pay.id
			  WHERE o.id = $1`

	order, err := scanOrder(querier(dbCtx, r.DB).QueryRowContext(dbCtx, query, id))
	if err != nil {
		return nil, err
	}

	items, err := r.listOrderItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	order.Items = items

	return order, nil
}

func (r *orderRepository) ListOrdersByEmail(ctx context.Context, email string) ([]*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + orderColumns + `
			  FROM orders o
			  JOIN addresses a ON o.address_id = a.id
			  JOIN payments pay ON o.payment_id = pay.id
			  WHERE o.email = $1
			  ORDER BY o.order_date DESC, o.id DESC`

	rows, err := querier(dbCtx, r.DB).QueryContext(dbCtx, query, email)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var orders []*models.Order

	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, order := range orders {
		items, err := r.listOrderItems(ctx, order.ID)
		if err != nil {
			return nil, err
		}

		order.Items = items
	}

	return orders, nil
}

func (r *orderRepository) listOrderItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.ordered_product_price, oi.discount,
				 p.id, p.category_id, p.name, p.description, p.image, p.price,
				 p.discount, p.special_price, p.quantity, p.created_at, p.updated_at
			  FROM order_items oi
			  JOIN products p ON oi.product_id = p.id
			  WHERE oi.order_id = $1
			  ORDER BY oi.id`

	rows, err := querier(dbCtx, r.DB).QueryContext(dbCtx, query, orderID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var items []models.OrderItem

	for rows.Next() {
		item := models.OrderItem{}
		product := &models.Product{}

		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity,
			&item.OrderedProductPrice, &item.Discount,
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

func (r *orderRepository) UpdatePaymentGateway(ctx context.Context, paymentID int64, pgName, pgPaymentID, pgStatus string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := querier(dbCtx, r.DB).ExecContext(dbCtx,
		`UPDATE payments SET pg_name = $1, pg_payment_id = $2, pg_status = $3 WHERE id = $4`,
		pgName, pgPaymentID, pgStatus, paymentID)
	if err != nil {
		return fmt.Errorf("failed to update payment gateway reference: %w", err)
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

func (r *orderRepository) UpdatePaymentStatus(ctx context.Context, pgPaymentID, pgStatus string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := querier(dbCtx, r.DB).ExecContext(dbCtx,
		`UPDATE payments SET pg_status = $1 WHERE pg_payment_id = $2`, pgStatus, pgPaymentID)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
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
