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

type PurchaseRepository interface {
	GetPurchaseByID(ctx context.Context, userID uuid.UUID, id int64) (*models.Purchase, error)
	ListPurchases(ctx context.Context, userID uuid.UUID, req *models.ListPurchasesRequest) ([]*models.Purchase, int, error)
	ListPurchaseCategories(ctx context.Context, userID uuid.UUID) ([]string, error)
	GetStats(ctx context.Context, userID uuid.UUID) (*models.PurchaseStats, error)
	UpdateStatus(ctx context.Context, id int64, status models.PurchaseStatus) error
	ListAllPurchases(ctx context.Context, page, size int) ([]*models.AdminPurchase, int, error)
	HasGrant(ctx context.Context, userID uuid.UUID, promptID int64) (bool, error)
	ListGrantedPromptIDs(ctx context.Context, userID uuid.UUID) ([]int64, error)
	RevokeGrant(ctx context.Context, userID uuid.UUID, purchaseID int64) error
	TotalRevenue(ctx context.Context) (float64, error)
	CountCompleted(ctx context.Context) (int, error)
}

type purchaseRepository struct {
	DB *sql.DB
}

func NewPurchaseRepo(db *sql.DB) PurchaseRepository {
	return &purchaseRepository{DB: db}
}

func (r *purchaseRepository) GetPurchaseByID(ctx context.Context, userID uuid.UUID, id int64) (*models.Purchase, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT pu.id, pu.user_id, pu.prompt_id, pu.price_at_time, pu.payment_id, pu.payment_method, pu.status,
		       pu.purchased_at, pu.transaction_id, pu.prompt_snapshot, pu.created_at, pu.updated_at,
		       p.id, p.title, p.description, p.rating, p.price, p.image, p.category, p.popular
		FROM purchases pu
		LEFT JOIN prompts p ON pu.prompt_id = p.id
		WHERE pu.id = $1 AND pu.user_id = $2`

	return scanPurchase(r.DB.QueryRowContext(dbCtx, query, id, userID))
}

func (r *purchaseRepository) ListPurchases(ctx context.Context, userID uuid.UUID, req *models.ListPurchasesRequest) ([]*models.Purchase, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	filter := `
		pu.user_id = $1
		AND ($2 = '' OR COALESCE(p.category, pu.prompt_snapshot->>'category') = $2)
		AND ($3::timestamptz IS NULL OR pu.purchased_at >= $3)
		AND ($4::timestamptz IS NULL OR pu.purchased_at <= $4)`

	var total int

	countQuery := `SELECT COUNT(*) FROM purchases pu LEFT JOIN prompts p ON pu.prompt_id = p.id WHERE` + filter

	err := r.DB.QueryRowContext(dbCtx, countQuery, userID, req.Category, req.StartDate, req.EndDate).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	order := "ASC"
	if req.SortDesc {
		order = "DESC"
	}

	offset := (req.Page - 1) * req.Size

	query := `
		SELECT pu.id, pu.user_id, pu.prompt_id, pu.price_at_time, pu.payment_id, pu.payment_method, pu.status,
		       pu.purchased_at, pu.transaction_id, pu.prompt_snapshot, pu.created_at, pu.updated_at,
		       p.id, p.title, p.description, p.rating, p.price, p.image, p.category, p.popular
		FROM purchases pu
		LEFT JOIN prompts p ON pu.prompt_id = p.id
		WHERE` + filter + `
		ORDER BY pu.purchased_at ` + order + `
		LIMIT $5 OFFSET $6`

	rows, err := r.DB.QueryContext(dbCtx, query, userID, req.Category, req.StartDate, req.EndDate, req.Size, offset)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	var purchases []*models.Purchase

	for rows.Next() {
		purchase, err := scanPurchase(purchaseRowScanner{rows})
		if err != nil {
			return nil, 0, err
		}
		purchases = append(purchases, purchase)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return purchases, total, nil
}

func (r *purchaseRepository) ListPurchaseCategories(ctx context.Context, userID uuid.UUID) ([]string, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT DISTINCT COALESCE(p.category, pu.prompt_snapshot->>'category') AS category
		FROM purchases pu
		LEFT JOIN prompts p ON pu.prompt_id = p.id
		WHERE pu.user_id = $1 AND COALESCE(p.category, pu.prompt_snapshot->>'category') IS NOT NULL
		ORDER BY category`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
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

func (r *purchaseRepository) GetStats(ctx context.Context, userID uuid.UUID) (*models.PurchaseStats, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	stats := &models.PurchaseStats{}

	query := `
		SELECT COUNT(*), COALESCE(SUM(pu.price_at_time), 0),
		       COUNT(DISTINCT COALESCE(p.category, pu.prompt_snapshot->>'category'))
		FROM purchases pu
		LEFT JOIN prompts p ON pu.prompt_id = p.id
		WHERE pu.user_id = $1 AND pu.status = $2`

	err := r.DB.QueryRowContext(dbCtx, query, userID, models.PurchaseStatusCompleted).Scan(&stats.TotalPurchases, &stats.TotalSpent, &stats.CategoriesCount)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *purchaseRepository) UpdateStatus(ctx context.Context, id int64, status models.PurchaseStatus) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `UPDATE purchases SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update the purchase status: %w", err)
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

func (r *purchaseRepository) ListAllPurchases(ctx context.Context, page, size int) ([]*models.AdminPurchase, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM purchases`).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	query := `
		SELECT pu.id, u.name,
		       COALESCE(p.title, pu.prompt_snapshot->>'title', ''), pu.price_at_time, pu.status, pu.purchased_at
		FROM purchases pu
		JOIN users u ON pu.user_id = u.id
		LEFT JOIN prompts p ON pu.prompt_id = p.id
		ORDER BY pu.purchased_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(dbCtx, query, size, offset)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	var purchases []*models.AdminPurchase

	for rows.Next() {
		purchase := &models.AdminPurchase{}

		err := rows.Scan(&purchase.ID, &purchase.UserName, &purchase.Item, &purchase.Amount, &purchase.Status, &purchase.Date)
		if err != nil {
			return nil, 0, err
		}

		purchases = append(purchases, purchase)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return purchases, total, nil
}

func (r *purchaseRepository) HasGrant(ctx context.Context, userID uuid.UUID, promptID int64) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var exists bool

	query := `SELECT EXISTS(SELECT 1 FROM user_prompts WHERE user_id = $1 AND prompt_id = $2 AND status = $3)`

	err := r.DB.QueryRowContext(dbCtx, query, userID, promptID, models.GrantStatusActive).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *purchaseRepository) ListGrantedPromptIDs(ctx context.Context, userID uuid.UUID) ([]int64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT DISTINCT prompt_id FROM user_prompts WHERE user_id = $1 AND status = $2 ORDER BY prompt_id`

	rows, err := r.DB.QueryContext(dbCtx, query, userID, models.GrantStatusActive)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var promptIDs []int64

	for rows.Next() {
		var promptID int64
		if err := rows.Scan(&promptID); err != nil {
			return nil, err
		}
		promptIDs = append(promptIDs, promptID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return promptIDs, nil
}

// RevokeGrant targets the grant tied to one purchase, so refunding one unit
// of a multi-unit purchase leaves the sibling grants untouched.
func (r *purchaseRepository) RevokeGrant(ctx context.Context, userID uuid.UUID, purchaseID int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE user_prompts SET status = $1 WHERE user_id = $2 AND purchase_id = $3 AND status = $4`

	result, err := r.DB.ExecContext(dbCtx, query, models.GrantStatusRevoked, userID, purchaseID, models.GrantStatusActive)
	if err != nil {
		return fmt.Errorf("failed to revoke the access grant: %w", err)
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

func (r *purchaseRepository) TotalRevenue(ctx context.Context) (float64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var revenue float64

	query := `SELECT COALESCE(SUM(price_at_time), 0) FROM purchases WHERE status = $1`

	err := r.DB.QueryRowContext(dbCtx, query, models.PurchaseStatusCompleted).Scan(&revenue)
	if err != nil {
		return 0, err
	}

	return revenue, nil
}

func (r *purchaseRepository) CountCompleted(ctx context.Context) (int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var count int

	err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM purchases WHERE status = $1`, models.PurchaseStatusCompleted).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

type purchaseRowScanner struct {
	rows *sql.Rows
}

func (s purchaseRowScanner) Scan(dest ...any) error {
	return s.rows.Scan(dest...)
}

func scanPurchase(row rowScanner) (*models.Purchase, error) {

	purchase := &models.Purchase{}

	var snapshotJSON []byte
	var promptID sql.NullInt64
	var title, description, image, category sql.NullString
	var rating, price sql.NullFloat64
	var popular sql.NullBool

	err := row.Scan(&purchase.ID, &purchase.UserID, &purchase.PromptID, &purchase.PriceAtTime, &purchase.PaymentID, &purchase.PaymentMethod, &purchase.Status,
		&purchase.PurchasedAt, &purchase.TransactionID, &snapshotJSON, &purchase.CreatedAt, &purchase.UpdatedAt,
		&promptID, &title, &description, &rating, &price, &image, &category, &popular)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	if len(snapshotJSON) > 0 {
		if err := json.Unmarshal(snapshotJSON, &purchase.PromptSnapshot); err != nil {
			return nil, fmt.Errorf("failed to unmarshal prompt snapshot: %w", err)
		}
	}

	if promptID.Valid {
		purchase.Prompt = &models.Prompt{
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

	return purchase, nil
}
