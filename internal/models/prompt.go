package models

import "time"

// Prompt is one catalog item: a purchasable AI prompt. Prices are stored as
// NUMERIC(10,2); edits here never touch the snapshots embedded in cart lines
// or purchases.
type Prompt struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Rating      float64   `json:"rating"`
	Price       float64   `json:"price"`
	Image       string    `json:"image,omitempty"`
	Category    string    `json:"category,omitempty"`
	Popular     bool      `json:"popular"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PromptSnapshot is the denormalized copy embedded into cart lines and
// purchases so that deleting a prompt never corrupts historical records.
type PromptSnapshot struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Category     string     `json:"category,omitempty"`
	Image        string     `json:"image,omitempty"`
	Price        float64    `json:"price"`
	Rating       float64    `json:"rating,omitempty"`
	Popular      bool       `json:"popular,omitempty"`
	SnapshotDate *time.Time `json:"snapshot_date,omitempty"`
}

type CreatePromptRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description string  `json:"description" validate:"required"`
	Rating      float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Image       string  `json:"image,omitempty"`
	Category    string  `json:"category,omitempty" validate:"omitempty,max=255"`
	Popular     bool    `json:"popular,omitempty"`
}

type UpdatePromptRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,max=255"`
	Description *string  `json:"description,omitempty"`
	Rating      *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Image       *string  `json:"image,omitempty"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,max=255"`
	Popular     *bool    `json:"popular,omitempty"`
}
