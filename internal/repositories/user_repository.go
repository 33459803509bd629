package repository

import (
	"context"
	"database/sql"
	"errors"

	models "github.com/promptmandu/prompt-marketplace/internal/models"
	"github.com/promptmandu/prompt-marketplace/internal/utils"
	"github.com/google/uuid"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserById(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	CountUsers(ctx context.Context) (int, error)
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO users(email, password, name, phone, created_at, updated_at)
		VALUES($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	return r.DB.QueryRowContext(dbCtx, query, user.Email, user.Password, user.Name, user.Phone).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	user := &models.User{}
	query := `SELECT id, email, password, name, phone, created_at, updated_at
			  FROM users
			  WHERE email = $1`

	err := r.DB.QueryRowContext(dbCtx, query, email).Scan(&user.ID, &user.Email, &user.Password, &user.Name, &user.Phone, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return nil, err
	}

	return user, nil

}

func (r *userRepository) GetUserById(ctx context.Context, id uuid.UUID) (*models.User, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	user := &models.User{}

	query := `
	SELECT id, email, name, phone, created_at, updated_at
	FROM users
	WHERE id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&user.ID, &user.Email, &user.Name, &user.Phone, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {

		if err == sql.ErrNoRows {
			return nil, errors.New("user not found")
		}

		return nil, err

	}

	return user, nil

}

func (r *userRepository) UpdateUser(ctx context.Context, user *models.User) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE users
		SET name = $1, phone = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at`

	err := r.DB.QueryRowContext(dbCtx, query, user.Name, user.Phone, user.ID).Scan(&user.UpdatedAt)

	if err == sql.ErrNoRows {
		return errors.New("user not found")
	}

	return err

}

func (r *userRepository) CountUsers(ctx context.Context) (int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var count int

	err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil

}
