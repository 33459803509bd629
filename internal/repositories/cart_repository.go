package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/promptmandu/prompt-marketplace/internal/models"
	"github.com/promptmandu/prompt-marketplace/internal/utils"
	"github.com/google/uuid"
)

type CartRepository interface {
	CreateLine(ctx context.Context, line *models.CartLine) error
	GetLineByID(ctx context.Context, id int64) (*models.CartLine, error)
	GetLineByUserAndPrompt(ctx context.Context, userID uuid.UUID, promptID int64) (*models.CartLine, error)
	UpdateLine(ctx context.Context, line *models.CartLine) error
	DeleteLine(ctx context.Context, userID uuid.UUID, lineID int64) error
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) (int64, error)
	ListLinesForUser(ctx context.Context, userID uuid.UUID) ([]*models.CartLine, error)
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

func (r *cartRepository) CreateLine(ctx context.Context, line *models.CartLine) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	snapshotJSON, err := json.Marshal(line.PromptSnapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal prompt snapshot: %w", err)
	}

	query := `
		INSERT INTO carts (user_id, prompt_id, quantity, price_at_time, prompt_snapshot, added_at)
		VALUES($1, $2, $3, $4, $5, NOW())
		RETURNING id, added_at
	`

	return r.DB.QueryRowContext(dbCtx, query, line.UserID, line.PromptID, line.Quantity, line.PriceAtTime, snapshotJSON).Scan(&line.ID, &line.AddedAt)
}

func (r *cartRepository) GetLineByID(ctx context.Context, id int64) (*models.CartLine, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, prompt_id, quantity, price_at_time, prompt_snapshot, added_at
		FROM carts
		WHERE id = $1
	`

	return scanCartLine(r.DB.QueryRowContext(dbCtx, query, id))
}

func (r *cartRepository) GetLineByUserAndPrompt(ctx context.Context, userID uuid.UUID, promptID int64) (*models.CartLine, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, prompt_id, quantity, price_at_time, prompt_snapshot, added_at
		FROM carts
		WHERE user_id = $1 AND prompt_id = $2
	`

	return scanCartLine(r.DB.QueryRowContext(dbCtx, query, userID, promptID))
}

func (r *cartRepository) UpdateLine(ctx context.Context, line *models.CartLine) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	snapshotJSON, err := json.Marshal(line.PromptSnapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal prompt snapshot: %w", err)
	}

	query := `
		UPDATE carts
		SET quantity = $1, price_at_time = $2, prompt_snapshot = $3
		WHERE id = $4
	`

	result, err := r.DB.ExecContext(dbCtx, query, line.Quantity, line.PriceAtTime, snapshotJSON, line.ID)
	if err != nil {
		return fmt.Errorf("failed to update the cart line: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *cartRepository) DeleteLine(ctx context.Context, userID uuid.UUID, lineID int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	// scoped to the owner, so one user cannot remove another's line
	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM carts WHERE id = $1 AND user_id = $2`, lineID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete the cart line: %w", err)
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

func (r *cartRepository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM carts WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear the cart: %w", err)
	}

	return result.RowsAffected()
}

func (r *cartRepository) ListLinesForUser(ctx context.Context, userID uuid.UUID) ([]*models.CartLine, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	// LEFT JOIN so lines survive prompt deletion, snapshot fills the gap
	query := `
		SELECT c.id, c.user_id, c.prompt_id, c.quantity, c.price_at_time, c.prompt_snapshot, c.added_at,
		       p.id, p.title, p.description, p.rating, p.price, p.image, p.category, p.popular
		FROM carts c
		LEFT JOIN prompts p ON c.prompt_id = p.id
		WHERE c.user_id = $1
		ORDER BY c.added_at DESC
	`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var lines []*models.CartLine

	for rows.Next() {
		line := &models.CartLine{}

		var snapshotJSON []byte
		var promptID sql.NullInt64
		var title, description, image, category sql.NullString
		var rating, price sql.NullFloat64
		var popular sql.NullBool

		err := rows.Scan(&line.ID, &line.UserID, &line.PromptID, &line.Quantity, &line.PriceAtTime, &snapshotJSON, &line.AddedAt,
			&promptID, &title, &description, &rating, &price, &image, &category, &popular)
		if err != nil {
			return nil, err
		}

		if len(snapshotJSON) > 0 {
			if err := json.Unmarshal(snapshotJSON, &line.PromptSnapshot); err != nil {
				return nil, fmt.Errorf("failed to unmarshal prompt snapshot: %w", err)
			}
		}

		if promptID.Valid {
			line.Prompt = &models.Prompt{
				ID:          promptID.Int64,
				Title:       title.String,
				Description: description.String,
				Rating:      rating.Float64,
				Price:       price.Float64,
				Image:       image.String,
				Category:    category.String,
				Popular:     popular.Bool,
			}
		}

		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

func scanCartLine(row *sql.Row) (*models.CartLine, error) {

	line := &models.CartLine{}

	var snapshotJSON []byte

	err := row.Scan(&line.ID, &line.UserID, &line.PromptID, &line.Quantity, &line.PriceAtTime, &snapshotJSON, &line.AddedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	if len(snapshotJSON) > 0 {
		if err := json.Unmarshal(snapshotJSON, &line.PromptSnapshot); err != nil {
			return nil, fmt.Errorf("failed to unmarshal prompt snapshot: %w", err)
		}
	}

	return line, nil
}
