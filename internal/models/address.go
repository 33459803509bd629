package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Address struct {
	ID            int64     `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Phone         string    `json:"phone"`
	Province      string    `json:"province"`
	District      string    `json:"district"`
	Municipality  string    `json:"municipality"`
	Ward          int       `json:"ward"`
	StreetAddress string    `json:"street_address"`
	IsDefault     bool      `json:"is_default"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (a *Address) FullName() string {
	return a.FirstName + " " + a.LastName
}

func (a *Address) CompleteAddress() string {
	return fmt.Sprintf("%s, Ward %d, %s, %s", a.StreetAddress, a.Ward, a.Municipality, a.District)
}

type CreateAddressRequest struct {
	FirstName     string `json:"first_name" validate:"required,max=255"`
	LastName      string `json:"last_name" validate:"required,max=255"`
	Phone         string `json:"phone" validate:"required,max=20"`
	Province      string `json:"province" validate:"required,max=255"`
	District      string `json:"district" validate:"required,max=255"`
	Municipality  string `json:"municipality" validate:"required,max=255"`
	Ward          int    `json:"ward" validate:"required,min=1,max=32"`
	StreetAddress string `json:"street_address" validate:"required,max=255"`
	IsDefault     bool   `json:"is_default,omitempty"`
}

type UpdateAddressRequest struct {
	FirstName     *string `json:"first_name,omitempty" validate:"omitempty,max=255"`
	LastName      *string `json:"last_name,omitempty" validate:"omitempty,max=255"`
	Phone         *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Province      *string `json:"province,omitempty" validate:"omitempty,max=255"`
	District      *string `json:"district,omitempty" validate:"omitempty,max=255"`
	Municipality  *string `json:"municipality,omitempty" validate:"omitempty,max=255"`
	Ward          *int    `json:"ward,omitempty" validate:"omitempty,min=1,max=32"`
	StreetAddress *string `json:"street_address,omitempty" validate:"omitempty,max=255"`
}
