package models

import (
	"time"

	"github.com/google/uuid"
)

type CheckoutSessionStatus string

const (
	// Gateway session created, callback not yet settled. Sessions stuck here
	// past their expiry are surfaced for out-of-band reconciliation.
	CheckoutStatusInitiated CheckoutSessionStatus = "initiated"
	CheckoutStatusSettled   CheckoutSessionStatus = "settled"
)

// QuotedLine pins one cart line to the exact price and quantity the gateway
// authorized. Settlement refuses to run if the live cart no longer matches.
type QuotedLine struct {
	LineID    int64   `json:"line_id"`
	PromptID  int64   `json:"prompt_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// CheckoutSession records one gateway round trip. Pidx is the provider's
// opaque session reference and is unique: the settlement transaction keys its
// idempotency guard on it.
type CheckoutSession struct {
	ID             int64                 `json:"id"`
	UserID         uuid.UUID             `json:"user_id"`
	Pidx           string                `json:"pidx"`
	OrderReference string                `json:"order_reference"`
	QuotedLines    []QuotedLine          `json:"quoted_lines"`
	TotalAmount    float64               `json:"total_amount"`
	Status         CheckoutSessionStatus `json:"status"`
	PurchasesCount int                   `json:"purchases_count,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	SettledAt      *time.Time            `json:"settled_at,omitempty"`
}

// CheckoutButtonResponse is what the frontend needs to send the user to the
// gateway-hosted payment page.
type CheckoutButtonResponse struct {
	Pidx        string  `json:"pidx"`
	PaymentURL  string  `json:"payment_url"`
	TotalAmount float64 `json:"total_amount"`
	ItemsCount  int     `json:"items_count"`
}

// SettlementResult reports one settled (or already-settled) checkout.
type SettlementResult struct {
	PurchasesCount int     `json:"purchases_count"`
	TotalAmount    float64 `json:"total_amount"`
	PaymentID      string  `json:"payment_id"`
	PurchaseIDs    []int64 `json:"purchase_ids,omitempty"`

	// True when this callback had already been settled; no new rows were
	// created and the recorded result is returned instead.
	AlreadySettled bool `json:"-"`
}
