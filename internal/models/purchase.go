package models

import (
	"time"

	"github.com/google/uuid"
)

type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "pending"
	PurchaseStatusCompleted PurchaseStatus = "completed"
	PurchaseStatusFailed    PurchaseStatus = "failed"
	PurchaseStatusRefunded  PurchaseStatus = "refunded"
)

type GrantStatus string

const (
	GrantStatusActive  GrantStatus = "active"
	GrantStatusRevoked GrantStatus = "revoked"
)

// Purchase is the durable record of one paid unit. Settlement creates one row
// per quantity unit, so several completed purchases per (user, prompt) are
// expected. PriceAtTime is immutable once written; status is the only field
// that transitions afterwards.
type Purchase struct {
	ID             int64           `json:"id"`
	UserID         uuid.UUID       `json:"user_id"`
	PromptID       int64           `json:"prompt_id"`
	PriceAtTime    float64         `json:"price_at_time"`
	PaymentID      string          `json:"payment_id"`
	PaymentMethod  string          `json:"payment_method"`
	Status         PurchaseStatus  `json:"status"`
	PurchasedAt    time.Time       `json:"purchased_at"`
	TransactionID  string          `json:"transaction_id,omitempty"`
	PromptSnapshot *PromptSnapshot `json:"prompt_snapshot,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	// Live catalog row, nil when the prompt has been deleted.
	Prompt *Prompt `json:"-"`
}

// PromptData falls back to the embedded snapshot when the prompt has been
// deleted from the catalog, so historical purchases always render.
func (p *Purchase) PromptData() *PromptSnapshot {
	if p.Prompt != nil {
		return &PromptSnapshot{
			Title:       p.Prompt.Title,
			Description: p.Prompt.Description,
			Category:    p.Prompt.Category,
			Image:       p.Prompt.Image,
			Price:       p.Prompt.Price,
			Rating:      p.Prompt.Rating,
			Popular:     p.Prompt.Popular,
		}
	}

	return p.PromptSnapshot
}

// AccessGrant decouples "did the user pay" from "does the user have access":
// revoking access keeps the purchase history intact. One grant is written per
// purchase row; access checks collapse duplicates.
type AccessGrant struct {
	ID         int64       `json:"id"`
	UserID     uuid.UUID   `json:"user_id"`
	PromptID   int64       `json:"prompt_id"`
	PurchaseID int64       `json:"purchase_id"`
	Status     GrantStatus `json:"status"`
	GrantedAt  time.Time   `json:"granted_at"`
}

type ListPurchasesRequest struct {
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
	SortDesc  bool
	Page      int
	Size      int
}

type PurchaseResponse struct {
	ID           int64           `json:"id"`
	PromptID     int64           `json:"prompt_id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Image        string          `json:"image,omitempty"`
	Price        float64         `json:"price"`
	CurrentPrice *float64        `json:"current_price,omitempty"`
	Status       PurchaseStatus  `json:"status"`
	PurchaseDate string          `json:"purchaseDate"`
	Snapshot     *PromptSnapshot `json:"prompt_snapshot,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type PurchaseStats struct {
	TotalPurchases  int                `json:"total_purchases"`
	TotalSpent      float64            `json:"total_spent"`
	CategoriesCount int                `json:"categories_count"`
	RecentPurchases []PurchaseResponse `json:"recent_purchases"`
}

// Admin view, one row per purchase across all users.
type AdminPurchase struct {
	ID       int64          `json:"id"`
	UserName string         `json:"user"`
	Item     string         `json:"item"`
	Amount   float64        `json:"amount"`
	Status   PurchaseStatus `json:"status"`
	Date     time.Time      `json:"date"`
}
