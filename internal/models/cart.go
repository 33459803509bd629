package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart quantities are bounded per line; a merge that would push an existing
// line past the bound is rejected rather than silently capped.
const (
	MinCartQuantity = 1
	MaxCartQuantity = 10
)

// CartLine is one (user, prompt) pairing pending purchase. At most one line
// exists per pair; re-adding the same prompt merges into it. PriceAtTime is
// the snapshot price the line will settle at, refreshed on merge and by an
// explicit refresh, never implicitly.
type CartLine struct {
	ID             int64           `json:"id"`
	UserID         uuid.UUID       `json:"user_id"`
	PromptID       int64           `json:"prompt_id"`
	Quantity       int             `json:"quantity"`
	PriceAtTime    float64         `json:"price_at_time"`
	AddedAt        time.Time       `json:"added_at"`
	PromptSnapshot *PromptSnapshot `json:"prompt_snapshot,omitempty"`

	// Live catalog row, nil when the prompt has been deleted.
	Prompt *Prompt `json:"prompt,omitempty"`
}

func (l *CartLine) TotalPrice() float64 {
	return l.PriceAtTime * float64(l.Quantity)
}

// HasPriceChanged reports price drift between the snapshot and the live
// catalog price. A deleted prompt never drifts.
func (l *CartLine) HasPriceChanged() bool {
	return l.Prompt != nil && l.Prompt.Price != l.PriceAtTime
}

// PromptData returns the live prompt fields, falling back to the embedded
// snapshot when the prompt is gone from the catalog.
func (l *CartLine) PromptData() *PromptSnapshot {
	if l.Prompt != nil {
		return &PromptSnapshot{
			Title:       l.Prompt.Title,
			Description: l.Prompt.Description,
			Category:    l.Prompt.Category,
			Image:       l.Prompt.Image,
			Price:       l.Prompt.Price,
			Rating:      l.Prompt.Rating,
			Popular:     l.Prompt.Popular,
		}
	}

	return l.PromptSnapshot
}

type AddCartItemRequest struct {
	PromptID int64 `json:"prompt_id" validate:"required,gt=0"`
	Quantity int   `json:"quantity,omitempty" validate:"omitempty,min=1,max=10"`
}

type UpdateCartQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1,max=10"`
}

// CartSummary is the pre-checkout roll-up; HasPriceChanges surfaces price
// drift to the UI before the user commits to pay.
type CartSummary struct {
	ItemsCount      int     `json:"items_count"`
	TotalItems      int     `json:"total_items"`
	TotalAmount     float64 `json:"total_amount"`
	HasPriceChanges bool    `json:"has_price_changes"`
}

type CartLineResponse struct {
	ID           int64           `json:"id"`
	Quantity     int             `json:"quantity"`
	PriceAtTime  float64         `json:"price_at_time"`
	TotalPrice   float64         `json:"total_price"`
	AddedAt      time.Time       `json:"added_at"`
	PriceChanged bool            `json:"price_changed"`
	Prompt       *PromptSnapshot `json:"prompt,omitempty"`
}

type CartResponse struct {
	Items   []CartLineResponse `json:"items"`
	Summary CartSummary        `json:"summary"`
}
