package models

import "time"

// Product lifecycle event types.
const (
	ProductCreated = "product.created"
	ProductUpdated = "product.updated"
	ProductDeleted = "product.deleted"
)

// ProductEvent is published after a product write has been persisted.
type ProductEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	ProductID  uint      `json:"product_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
