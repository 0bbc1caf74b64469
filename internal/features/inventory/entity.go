package inventory

import (
	"time"
)

// StockMovement is one journal line: how a product's stock changed and why.
type StockMovement struct {
	MovementID int64     `json:"movementId"`
	ProductID  int64     `json:"productId"`
	OrderID    *int64    `json:"orderId,omitempty"`
	Delta      int       `json:"delta"`
	StockAfter int       `json:"stockAfter"`
	Reason     string    `json:"reason"`
	RecordedAt time.Time `json:"recordedAt"`
}
