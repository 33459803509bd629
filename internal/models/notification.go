package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeEmail NotificationType = "email"
)

type NotificationStatus string

const (
	StatusPending NotificationStatus = "pending"
	StatusSent    NotificationStatus = "sent"
	StatusFailed  NotificationStatus = "failed"
)

type Notification struct {
	ID           uuid.UUID          `json:"id"`
	Type         NotificationType   `json:"type"`
	Recipient    string             `json:"recipient"`
	Subject      string             `json:"subject,omitempty"`
	Content      string             `json:"content"`
	Status       NotificationStatus `json:"status"`
	ErrorMessage string             `json:"error,omitempty"`
	Metadata     json.RawMessage    `json:"metadata,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

type EmailNotificationRequest struct {
	To          string            `json:"to" validate:"required,email"`
	Subject     string            `json:"subject" validate:"required"`
	Content     string            `json:"content" validate:"required"`
	HTMLContent string            `json:"html_content,omitempty"`
	CC          []string          `json:"cc,omitempty" validate:"omitempty,dive,email"`
	BCC         []string          `json:"bcc,omitempty" validate:"omitempty,dive,email"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type NotificationResponse struct {
	ID        uuid.UUID          `json:"id"`
	Type      NotificationType   `json:"type"`
	Status    NotificationStatus `json:"status"`
	Recipient string             `json:"recipient"`
	CreatedAt time.Time          `json:"created_at"`
}

// DashboardStats is the admin overview.
type DashboardStats struct {
	TotalUsers     int     `json:"total_users"`
	ActivePrompts  int     `json:"active_prompts"`
	TotalRevenue   float64 `json:"total_revenue"`
	PurchasesCount int     `json:"purchases_count"`
}
