package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/promptmandu/prompt-marketplace/internal/models"
	"github.com/promptmandu/prompt-marketplace/internal/utils"
	"github.com/google/uuid"
)

type AddressRepository interface {
	CreateAddress(ctx context.Context, address *models.Address) error
	GetAddressByID(ctx context.Context, userID uuid.UUID, id int64) (*models.Address, error)
	ListAddressesForUser(ctx context.Context, userID uuid.UUID) ([]*models.Address, error)
	UpdateAddress(ctx context.Context, address *models.Address) error
	DeleteAddress(ctx context.Context, userID uuid.UUID, id int64) error
	SetDefaultAddress(ctx context.Context, userID uuid.UUID, id int64) error
}

type addressRepository struct {
	DB *sql.DB
}

func NewAddressRepo(db *sql.DB) AddressRepository {
	return &addressRepository{DB: db}
}

func (r *addressRepository) CreateAddress(ctx context.Context, address *models.Address) (err error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	// the first address always becomes the default
	var count int
	if err = tx.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM addresses WHERE user_id = $1`, address.UserID).Scan(&count); err != nil {
		return err
	}

	if count == 0 {
		address.IsDefault = true
	}

	if address.IsDefault {
		if _, err = tx.ExecContext(dbCtx, `UPDATE addresses SET is_default = FALSE WHERE user_id = $1`, address.UserID); err != nil {
			return fmt.Errorf("failed to reset default address: %w", err)
		}
	}

	query := `
		INSERT INTO addresses (user_id, first_name, last_name, phone, province, district, municipality, ward, street_address, is_default, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRowContext(dbCtx, query, address.UserID, address.FirstName, address.LastName, address.Phone, address.Province, address.District, address.Municipality, address.Ward, address.StreetAddress, address.IsDefault).Scan(&address.ID, &address.CreatedAt, &address.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create address: %w", err)
	}

	return tx.Commit()
}

func (r *addressRepository) GetAddressByID(ctx context.Context, userID uuid.UUID, id int64) (*models.Address, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	address := &models.Address{}

	query := `
		SELECT id, user_id, first_name, last_name, phone, province, district, municipality, ward, street_address, is_default, created_at, updated_at
		FROM addresses
		WHERE id = $1 AND user_id = $2
	`

	err := r.DB.QueryRowContext(dbCtx, query, id, userID).Scan(&address.ID, &address.UserID, &address.FirstName, &address.LastName, &address.Phone, &address.Province, &address.District, &address.Municipality, &address.Ward, &address.StreetAddress, &address.IsDefault, &address.CreatedAt, &address.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return address, nil
}

func (r *addressRepository) ListAddressesForUser(ctx context.Context, userID uuid.UUID) ([]*models.Address, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, first_name, last_name, phone, province, district, municipality, ward, street_address, is_default, created_at, updated_at
		FROM addresses
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at DESC
	`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var addresses []*models.Address

	for rows.Next() {
		address := &models.Address{}

		err := rows.Scan(&address.ID, &address.UserID, &address.FirstName, &address.LastName, &address.Phone, &address.Province, &address.District, &address.Municipality, &address.Ward, &address.StreetAddress, &address.IsDefault, &address.CreatedAt, &address.UpdatedAt)
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

func (r *addressRepository) UpdateAddress(ctx context.Context, address *models.Address) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE addresses
		SET first_name = $1, last_name = $2, phone = $3, province = $4, district = $5, municipality = $6, ward = $7, street_address = $8, updated_at = NOW()
		WHERE id = $9 AND user_id = $10
		RETURNING updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, address.FirstName, address.LastName, address.Phone, address.Province, address.District, address.Municipality, address.Ward, address.StreetAddress, address.ID, address.UserID).Scan(&address.UpdatedAt)
	if err != nil {
		return err
	}

	return nil
}

func (r *addressRepository) DeleteAddress(ctx context.Context, userID uuid.UUID, id int64) (err error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var wasDefault bool

	err = tx.QueryRowContext(dbCtx, `DELETE FROM addresses WHERE id = $1 AND user_id = $2 RETURNING is_default`, id, userID).Scan(&wasDefault)
	if err != nil {
		if err == sql.ErrNoRows {
			return err
		}
		return fmt.Errorf("failed to delete address: %w", err)
	}

	// promote the most recent remaining address
	if wasDefault {
		promote := `
			UPDATE addresses SET is_default = TRUE
			WHERE id = (SELECT id FROM addresses WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1)
		`

		if _, err = tx.ExecContext(dbCtx, promote, userID); err != nil {
			return fmt.Errorf("failed to promote new default address: %w", err)
		}
	}

	return tx.Commit()
}

func (r *addressRepository) SetDefaultAddress(ctx context.Context, userID uuid.UUID, id int64) (err error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(dbCtx, `UPDATE addresses SET is_default = FALSE WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to reset default address: %w", err)
	}

	result, err := tx.ExecContext(dbCtx, `UPDATE addresses SET is_default = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to set default address: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		err = sql.ErrNoRows
		return err
	}

	return tx.Commit()
}
