package event

const (
	StockAdjustedEventName EventName = "stock.adjusted"
)

// Reasons a product's stock moved.
const (
	StockReasonOrderCreated   = "order.created"
	StockReasonOrderUpdated   = "order.updated"
	StockReasonProductUpdated = "product.updated"
)

// StockAdjustedEvent is emitted after a committed stock change. Delta is the
// signed change applied to stock: negative when units left inventory.
// OrderID is zero for changes not caused by an order.
type StockAdjustedEvent struct {
	ProductID  int64  `json:"productID"`
	OrderID    int64  `json:"orderID,omitempty"`
	Delta      int    `json:"delta"`
	StockAfter int    `json:"stockAfter"`
	Reason     string `json:"reason"`
}

func (e *StockAdjustedEvent) EventName() EventName {
	return StockAdjustedEventName
}
