package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	appErrors "github.com/shopverse/ecommerce-backend/internal/errors"
	"github.com/shopverse/ecommerce-backend/internal/models"
	repository "github.com/shopverse/ecommerce-backend/internal/repositories"
)

type AddressService interface {
	CreateAddress(ctx context.Context, userID uuid.UUID, req *models.CreateAddressRequest) (*models.Address, error)
	GetAddressByID(ctx context.Context, id int64) (*models.Address, error)
	ListAddresses(ctx context.Context) ([]*models.Address, error)
	ListAddressesByUser(ctx context.Context, userID uuid.UUID) ([]*models.Address, error)
	UpdateAddress(ctx context.Context, id int64, req *models.UpdateAddressRequest) (*models.Address, error)
	DeleteAddress(ctx context.Context, id int64) (string, error)
}

type addressService struct {
	repo repository.AddressRepository
}

func NewAddressService(repo repository.AddressRepository) AddressService {
	return &addressService{repo: repo}
}

func (s *addressService) CreateAddress(ctx context.Context, userID uuid.UUID, req *models.CreateAddressRequest) (*models.Address, error) {

	address := &models.Address{
		UserID:       userID,
		Street:       req.Street,
		BuildingName: req.BuildingName,
		City:         req.City,
		State:        req.State,
		Country:      req.Country,
		Pincode:      req.Pincode,
	}

	if err := s.repo.CreateAddress(ctx, address); err != nil {
		return nil, appErrors.DatabaseError("Failed to create address").WithError(err)
	}

	return address, nil
}

func (s *addressService) GetAddressByID(ctx context.Context, id int64) (*models.Address, error) {

	address, err := s.repo.GetAddressByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Address not found")
		}

		return nil, appErrors.DatabaseError("Failed to fetch address").WithError(err)
	}

	return address, nil
}

func (s *addressService) ListAddresses(ctx context.Context) ([]*models.Address, error) {

	addresses, err := s.repo.ListAddresses(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch addresses").WithError(err)
	}

	return addresses, nil
}

func (s *addressService) ListAddressesByUser(ctx context.Context, userID uuid.UUID) ([]*models.Address, error) {

	addresses, err := s.repo.ListAddressesByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch addresses").WithError(err)
	}

	return addresses, nil
}

func (s *addressService) UpdateAddress(ctx context.Context, id int64, req *models.UpdateAddressRequest) (*models.Address, error) {

	address, err := s.repo.GetAddressByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Address not found")
		}

		return nil, appErrors.DatabaseError("Failed to fetch address").WithError(err)
	}

	if req.Street != nil {
		address.Street = *req.Street
	}

	if req.BuildingName != nil {
		address.BuildingName = *req.BuildingName
	}

	if req.City != nil {
		address.City = *req.City
	}

	if req.State != nil {
		address.State = *req.State
	}

	if req.Country != nil {
		address.Country = *req.Country
	}

	if req.Pincode != nil {
		address.Pincode = *req.Pincode
	}

	if err := s.repo.UpdateAddress(ctx, address); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Address not found")
		}

		return nil, appErrors.DatabaseError("Failed to update address").WithError(err)
	}

	return address, nil
}

func (s *addressService) DeleteAddress(ctx context.Context, id int64) (string, error) {

	if _, err := s.repo.GetAddressByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.NotFoundError("Address not found")
		}

		return "", appErrors.DatabaseError("Failed to fetch address").WithError(err)
	}

	if err := s.repo.DeleteAddress(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.NotFoundError("Address not found")
		}

		return "", appErrors.DatabaseError("Failed to delete address").WithError(err)
	}

	return "Address deleted successfully", nil
}
