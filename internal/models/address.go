package models

import "github.com/google/uuid"

type Address struct {
	ID           int64     `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Street       string    `json:"street"`
	BuildingName string    `json:"building_name"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Country      string    `json:"country"`
	Pincode      string    `json:"pincode"`
}

type CreateAddressRequest struct {
	Street       string `json:"street" validate:"required,min=5"`
	BuildingName string `json:"building_name" validate:"required,min=5"`
	City         string `json:"city" validate:"required,min=4"`
	State        string `json:"state" validate:"required,min=2"`
	Country      string `json:"country" validate:"required,min=2"`
	Pincode      string `json:"pincode" validate:"required,min=6"`
}

type UpdateAddressRequest struct {
	Street       *string `json:"street,omitempty" validate:"omitempty,min=5"`
	BuildingName *string `json:"building_name,omitempty" validate:"omitempty,min=5"`
	City         *string `json:"city,omitempty" validate:"omitempty,min=4"`
	State        *string `json:"state,omitempty" validate:"omitempty,min=2"`
	Country      *string `json:"country,omitempty" validate:"omitempty,min=2"`
	Pincode      *string `json:"pincode,omitempty" validate:"omitempty,min=6"`
}
