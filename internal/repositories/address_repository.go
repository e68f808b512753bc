package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopverse/ecommerce-backend/internal/models"
	"github.com/shopverse/ecommerce-backend/internal/utils"
)

type AddressRepository interface {
	CreateAddress(ctx context.Context, address *models.Address) error
	GetAddressByID(ctx context.Context, id int64) (*models.Address, error)
	ListAddresses(ctx context.Context) ([]*models.Address, error)
	ListAddressesByUser(ctx context.Context, userID uuid.UUID) ([]*models.Address, error)
	UpdateAddress(ctx context.Context, address *models.Address) error
	DeleteAddress(ctx context.Context, id int64) error
}

type addressRepository struct {
	DB *sql.DB
}

func NewAddressRepo(db *sql.DB) AddressRepository {
	return &addressRepository{DB: db}
}

const addressColumns = `id, user_id, street, building_name, city, state, country, pincode`

func (r *addressRepository) CreateAddress(ctx context.Context, address *models.Address) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO addresses (user_id, street, building_name, city, state, country, pincode)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`

	return querier(dbCtx, r.DB).QueryRowContext(dbCtx, query, address.UserID, address.Street,
		address.BuildingName, address.City, address.State, address.Country, address.Pincode).
		Scan(&address.ID)
}

func (r *addressRepository) GetAddressByID(ctx context.Context, id int64) (*models.Address, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	address := &models.Address{}

	err := querier(dbCtx, r.DB).QueryRowContext(dbCtx,
		`SELECT `+addressColumns+` FROM addresses WHERE id = $1`, id).
		Scan(&address.ID, &address.UserID, &address.Street, &address.BuildingName,
			&address.City, &address.State, &address.Country, &address.Pincode)
	if err != nil {
		return nil, err
	}

	return address, nil
}

func (r *addressRepository) listAddresses(ctx context.Context, query string, args ...any) ([]*models.Address, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rows, err := querier(dbCtx, r.DB).QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var addresses []*models.Address

	for rows.Next() {
		address := &models.Address{}

		err := rows.Scan(&address.ID, &address.UserID, &address.Street, &address.BuildingName,
			&address.City, &address.State, &address.Country, &address.Pincode)
		if err != nil {
			return nil, err
		}

		addresses = append(addresses, address)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return addresses, nil
}

func (r *addressRepository) ListAddresses(ctx context.Context) ([]*models.Address, error) {
	return r.listAddresses(ctx, `SELECT `+addressColumns+` FROM addresses ORDER BY id`)
}

func (r *addressRepository) ListAddressesByUser(ctx context.Context, userID uuid.UUID) ([]*models.Address, error) {
	return r.listAddresses(ctx,
		`SELECT `+addressColumns+` FROM addresses WHERE user_id = $1 ORDER BY id`, userID)
}

func (r *addressRepository) UpdateAddress(ctx context.Context, address *models.Address) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := querier(dbCtx, r.DB).ExecContext(dbCtx,
		`UPDATE addresses SET street = $1, building_name = $2, city = $3, state = $4, country = $5, pincode = $6
		 WHERE id = $7`,
		address.Street, address.BuildingName, address.City, address.State,
		address.Country, address.Pincode, address.ID)
	if err != nil {
		return fmt.Errorf("failed to update address: %w", err)
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

func (r *addressRepository) DeleteAddress(ctx context.Context, id int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := querier(dbCtx, r.DB).ExecContext(dbCtx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
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
