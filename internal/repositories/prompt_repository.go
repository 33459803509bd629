package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/promptmandu/prompt-marketplace/internal/models"
	"github.com/promptmandu/prompt-marketplace/internal/utils"
)

type PromptRepository interface {
	CreatePrompt(ctx context.Context, prompt *models.Prompt) error
	GetPromptByID(ctx context.Context, id int64) (*models.Prompt, error)
	UpdatePrompt(ctx context.Context, prompt *models.Prompt) error
	DeletePrompt(ctx context.Context, id int64) error
	ListPrompts(ctx context.Context, category string, popularOnly bool, page, size int) ([]*models.Prompt, int, error)
	ListCategories(ctx context.Context) ([]string, error)
	CountPrompts(ctx context.Context) (int, error)
}

type promptRepository struct {
	DB *sql.DB
}

func NewPromptRepo(db *sql.DB) PromptRepository {
	return &promptRepository{DB: db}
}

func (r *promptRepository) CreatePrompt(ctx context.Context, prompt *models.Prompt) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO prompts (title, description, rating, price, image, category, popular)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, prompt.Title, prompt.Description, prompt.Rating, prompt.Price, prompt.Image, prompt.Category, prompt.Popular).Scan(&prompt.ID, &prompt.CreatedAt, &prompt.UpdatedAt)
}

func (r *promptRepository) GetPromptByID(ctx context.Context, id int64) (*models.Prompt, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	prompt := &models.Prompt{}

	query := `
		SELECT id, title, description, rating, price, image, category, popular, created_at, updated_at
		FROM prompts
		WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&prompt.ID, &prompt.Title, &prompt.Description, &prompt.Rating, &prompt.Price, &prompt.Image, &prompt.Category, &prompt.Popular, &prompt.CreatedAt, &prompt.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return prompt, nil
}

func (r *promptRepository) UpdatePrompt(ctx context.Context, prompt *models.Prompt) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE prompts SET title = $1, description = $2, rating = $3, price = $4, image = $5, category = $6, popular = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, prompt.Title, prompt.Description, prompt.Rating, prompt.Price, prompt.Image, prompt.Category, prompt.Popular, prompt.ID).Scan(&prompt.UpdatedAt)
}

func (r *promptRepository) DeletePrompt(ctx context.Context, id int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM prompts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete prompt: %w", err)
	}

	deletedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get deleted rows: %w", err)
	}

	if deletedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *promptRepository) ListPrompts(ctx context.Context, category string, popularOnly bool, page, size int) ([]*models.Prompt, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM prompts WHERE ($1 = '' OR category = $1) AND (NOT $2 OR popular)`

	err := r.DB.QueryRowContext(dbCtx, countQuery, category, popularOnly).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	query := `
		SELECT id, title, description, rating, price, image, category, popular, created_at, updated_at
		FROM prompts
		WHERE ($1 = '' OR category = $1) AND (NOT $2 OR popular)
		ORDER BY id
		LIMIT $3 OFFSET $4
	`

	rows, err := r.DB.QueryContext(dbCtx, query, category, popularOnly, size, offset)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	var prompts []*models.Prompt

	for rows.Next() {
		prompt := &models.Prompt{}

		err := rows.Scan(&prompt.ID, &prompt.Title, &prompt.Description, &prompt.Rating, &prompt.Price, &prompt.Image, &prompt.Category, &prompt.Popular, &prompt.CreatedAt, &prompt.UpdatedAt)
		if err != nil {
			return nil, 0, err
		}

		prompts = append(prompts, prompt)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return prompts, total, nil
}

func (r *promptRepository) ListCategories(ctx context.Context) ([]string, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(dbCtx, `SELECT DISTINCT category FROM prompts ORDER BY category`)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var categories []string

	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *promptRepository) CountPrompts(ctx context.Context) (int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var count int

	err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM prompts`).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}
