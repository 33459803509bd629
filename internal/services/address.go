package service

import (
	"context"
	"database/sql"

	"github.com/promptmandu/prompt-marketplace/internal/errors"
	"github.com/promptmandu/prompt-marketplace/internal/models"
	repository "github.com/promptmandu/prompt-marketplace/internal/repositories"
	"github.com/google/uuid"
)

type AddressService interface {
	CreateAddress(ctx context.Context, userID uuid.UUID, req *models.CreateAddressRequest) (*models.Address, error)
	GetAddress(ctx context.Context, userID uuid.UUID, id int64) (*models.Address, error)
	ListAddresses(ctx context.Context, userID uuid.UUID) ([]*models.Address, error)
	UpdateAddress(ctx context.Context, userID uuid.UUID, id int64, req *models.UpdateAddressRequest) (*models.Address, error)
	DeleteAddress(ctx context.Context, userID uuid.UUID, id int64) error
	SetDefaultAddress(ctx context.Context, userID uuid.UUID, id int64) error
}

type addressService struct {
	repo repository.AddressRepository
}

func NewAddressService(repo repository.AddressRepository) AddressService {
	return &addressService{repo: repo}
}

func (s *addressService) CreateAddress(ctx context.Context, userID uuid.UUID, req *models.CreateAddressRequest) (*models.Address, error) {

	address := &models.Address{
		UserID:        userID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Phone:         req.Phone,
		Province:      req.Province,
		District:      req.District,
		Municipality:  req.Municipality,
		Ward:          req.Ward,
		StreetAddress: req.StreetAddress,
		IsDefault:     req.IsDefault,
	}

	if err := s.repo.CreateAddress(ctx, address); err != nil {
		return nil, errors.DatabaseError("Failed to create address").WithError(err)
	}

	return address, nil
}

func (s *addressService) GetAddress(ctx context.Context, userID uuid.UUID, id int64) (*models.Address, error) {

	address, err := s.repo.GetAddressByID(ctx, userID, id)
	if err != nil {
		return nil, errors.NotFoundError("Address not found").WithError(err)
	}

	return address, nil
}

func (s *addressService) ListAddresses(ctx context.Context, userID uuid.UUID) ([]*models.Address, error) {

	addresses, err := s.repo.ListAddressesForUser(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch addresses").WithError(err)
	}

	return addresses, nil
}

func (s *addressService) UpdateAddress(ctx context.Context, userID uuid.UUID, id int64, req *models.UpdateAddressRequest) (*models.Address, error) {

	address, err := s.repo.GetAddressByID(ctx, userID, id)
	if err != nil {
		return nil, errors.NotFoundError("Address not found").WithError(err)
	}

	if req.FirstName != nil {
		address.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		address.LastName = *req.LastName
	}
	if req.Phone != nil {
		address.Phone = *req.Phone
	}
	if req.Province != nil {
		address.Province = *req.Province
	}
	if req.District != nil {
		address.District = *req.District
	}
	if req.Municipality != nil {
		address.Municipality = *req.Municipality
	}
	if req.Ward != nil {
		address.Ward = *req.Ward
	}
	if req.StreetAddress != nil {
		address.StreetAddress = *req.StreetAddress
	}

	if err := s.repo.UpdateAddress(ctx, address); err != nil {
		return nil, errors.DatabaseError("Failed to update address").WithError(err)
	}

	return address, nil
}

func (s *addressService) DeleteAddress(ctx context.Context, userID uuid.UUID, id int64) error {

	if err := s.repo.DeleteAddress(ctx, userID, id); err != nil {
		if err == sql.ErrNoRows {
			return errors.NotFoundError("Address not found")
		}
		return errors.DatabaseError("Failed to delete address").WithError(err)
	}

	return nil
}

func (s *addressService) SetDefaultAddress(ctx context.Context, userID uuid.UUID, id int64) error {

	if err := s.repo.SetDefaultAddress(ctx, userID, id); err != nil {
		if err == sql.ErrNoRows {
			return errors.NotFoundError("Address not found")
		}
		return errors.DatabaseError("Failed to set default address").WithError(err)
	}

	return nil
}
