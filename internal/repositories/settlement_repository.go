package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/promptmandu/prompt-marketplace/internal/models"
	"github.com/promptmandu/prompt-marketplace/internal/utils"
)

var (
	ErrSessionNotFound = errors.New("checkout session not found")
	ErrCartChanged     = errors.New("cart contents changed since checkout was initiated")
)

type SettlementRepository interface {
	CreateSession(ctx context.Context, session *models.CheckoutSession) error
	GetSessionByPidx(ctx context.Context, pidx string) (*models.CheckoutSession, error)
	Settle(ctx context.Context, pidx string, transactionID string) (*models.SettlementResult, error)
	ListUnsettled(ctx context.Context, page, size int) ([]*models.CheckoutSession, int, error)
}

type settlementRepository struct {
	DB *sql.DB
}

func NewSettlementRepo(db *sql.DB) SettlementRepository {
	return &settlementRepository{DB: db}
}

func (r *settlementRepository) CreateSession(ctx context.Context, session *models.CheckoutSession) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	linesJSON, err := json.Marshal(session.QuotedLines)
	if err != nil {
		return fmt.Errorf("failed to marshal quoted lines: %w", err)
	}

	query := `
		INSERT INTO checkout_sessions (user_id, pidx, order_reference, quoted_lines, total_amount, status, created_at)
		VALUES($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	return r.DB.QueryRowContext(dbCtx, query, session.UserID, session.Pidx, session.OrderReference, linesJSON, session.TotalAmount, session.Status).Scan(&session.ID, &session.CreatedAt)
}

func (r *settlementRepository) GetSessionByPidx(ctx context.Context, pidx string) (*models.CheckoutSession, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, pidx, order_reference, quoted_lines, total_amount, status, purchases_count, created_at, settled_at
		FROM checkout_sessions
		WHERE pidx = $1
	`

	session, err := scanSession(r.DB.QueryRowContext(dbCtx, query, pidx))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	return session, nil
}

// Settle turns one verified gateway session into purchases and access grants,
// all inside a single transaction:
//
//  1. lock the session row by pidx; a second callback for the same pidx
//     blocks here and then sees status = settled
//  2. re-read the owner's cart lines under lock and compare them against the
//     quoted lines persisted at initiation
//  3. one purchase row per quantity unit, each with its own access grant
//  4. clear the cart and mark the session settled
func (r *settlementRepository) Settle(ctx context.Context, pidx string, transactionID string) (result *models.SettlementResult, err error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin settlement transaction: %w", err)
	}

	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	sessionQuery := `
		SELECT id, user_id, pidx, order_reference, quoted_lines, total_amount, status, purchases_count, created_at, settled_at
		FROM checkout_sessions
		WHERE pidx = $1
		FOR UPDATE
	`

	session, err := scanSession(tx.QueryRowContext(dbCtx, sessionQuery, pidx))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	// Idempotency guard: the row lock serializes concurrent callbacks for the
	// same pidx, the status check makes the second one a no-op.
	if session.Status == models.CheckoutStatusSettled {
		result = &models.SettlementResult{
			PurchasesCount: session.PurchasesCount,
			TotalAmount:    session.TotalAmount,
			PaymentID:      session.Pidx,
			AlreadySettled: true,
		}

		err = tx.Commit()
		if err != nil {
			return nil, fmt.Errorf("failed to commit settlement transaction: %w", err)
		}

		return result, nil
	}

	linesQuery := `
		SELECT id, prompt_id, quantity, price_at_time, prompt_snapshot
		FROM carts
		WHERE user_id = $1
		ORDER BY id
		FOR UPDATE
	`

	rows, err := tx.QueryContext(dbCtx, linesQuery, session.UserID)
	if err != nil {
		return nil, err
	}

	type lockedLine struct {
		id       int64
		promptID int64
		quantity int
		price    float64
		snapshot []byte
	}

	var lines []lockedLine

	for rows.Next() {
		var line lockedLine
		if err = rows.Scan(&line.id, &line.promptID, &line.quantity, &line.price, &line.snapshot); err != nil {
			rows.Close()
			return nil, err
		}
		lines = append(lines, line)
	}

	rows.Close()

	if err = rows.Err(); err != nil {
		return nil, err
	}

	// The live cart must still match what the gateway authorized, line for
	// line. Anything added, removed or repriced in between aborts settlement.
	if len(lines) != len(session.QuotedLines) {
		return nil, ErrCartChanged
	}

	quoted := make(map[int64]models.QuotedLine, len(session.QuotedLines))
	for _, q := range session.QuotedLines {
		quoted[q.LineID] = q
	}

	for _, line := range lines {
		q, ok := quoted[line.id]
		if !ok || q.PromptID != line.promptID || q.Quantity != line.quantity || q.UnitPrice != line.price {
			return nil, ErrCartChanged
		}
	}

	insertPurchase := `
		INSERT INTO purchases (user_id, prompt_id, price_at_time, payment_id, payment_method, status, purchased_at, transaction_id, prompt_snapshot, created_at, updated_at)
		VALUES($1, $2, $3, $4, 'khalti', $5, NOW(), $6, $7, NOW(), NOW())
		RETURNING id
	`

	insertGrant := `
		INSERT INTO user_prompts (user_id, prompt_id, purchase_id, status, granted_at)
		VALUES($1, $2, $3, $4, NOW())
	`

	result = &models.SettlementResult{
		PaymentID: session.Pidx,
	}

	for _, line := range lines {
		for range line.quantity {
			var purchaseID int64

			err = tx.QueryRowContext(dbCtx, insertPurchase, session.UserID, line.promptID, line.price, session.Pidx, models.PurchaseStatusCompleted, transactionID, line.snapshot).Scan(&purchaseID)
			if err != nil {
				return nil, fmt.Errorf("failed to create purchase: %w", err)
			}

			if _, err = tx.ExecContext(dbCtx, insertGrant, session.UserID, line.promptID, purchaseID, models.GrantStatusActive); err != nil {
				return nil, fmt.Errorf("failed to create access grant: %w", err)
			}

			result.PurchaseIDs = append(result.PurchaseIDs, purchaseID)
			result.TotalAmount += line.price
		}
	}

	result.PurchasesCount = len(result.PurchaseIDs)

	if _, err = tx.ExecContext(dbCtx, `DELETE FROM carts WHERE user_id = $1`, session.UserID); err != nil {
		return nil, fmt.Errorf("failed to clear the cart: %w", err)
	}

	markSettled := `
		UPDATE checkout_sessions
		SET status = $1, purchases_count = $2, settled_at = NOW()
		WHERE id = $3
	`

	if _, err = tx.ExecContext(dbCtx, markSettled, models.CheckoutStatusSettled, result.PurchasesCount, session.ID); err != nil {
		return nil, fmt.Errorf("failed to mark session settled: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit settlement transaction: %w", err)
	}

	return result, nil
}

func (r *settlementRepository) ListUnsettled(ctx context.Context, page, size int) ([]*models.CheckoutSession, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM checkout_sessions WHERE status = $1`, models.CheckoutStatusInitiated).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	query := `
		SELECT id, user_id, pidx, order_reference, quoted_lines, total_amount, status, purchases_count, created_at, settled_at
		FROM checkout_sessions
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.DB.QueryContext(dbCtx, query, models.CheckoutStatusInitiated, size, offset)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	var sessions []*models.CheckoutSession

	for rows.Next() {
		session, err := scanSession(purchaseRowScanner{rows})
		if err != nil {
			return nil, 0, err
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return sessions, total, nil
}

func scanSession(row rowScanner) (*models.CheckoutSession, error) {

	session := &models.CheckoutSession{}

	var linesJSON []byte

	err := row.Scan(&session.ID, &session.UserID, &session.Pidx, &session.OrderReference, &linesJSON, &session.TotalAmount, &session.Status, &session.PurchasesCount, &session.CreatedAt, &session.SettledAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(linesJSON, &session.QuotedLines); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quoted lines: %w", err)
	}

	return session, nil
}
