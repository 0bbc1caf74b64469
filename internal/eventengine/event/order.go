package event

import "time"

const (
	OrderCreatedEventName EventName = "order.created"
	OrderUpdatedEventName EventName = "order.updated"
)

type OrderCreatedEvent struct {
	OrderID      int64     `json:"orderID"`
	ProductID    int64     `json:"productID"`
	CustomerID   int64     `json:"customerID,omitempty"`
	Quantity     int       `json:"quantity"`
	OrderedDate  time.Time `json:"orderedDate"`
	DeliveryDate time.Time `json:"deliveryDate"`
}

func (e *OrderCreatedEvent) EventName() EventName {
	return OrderCreatedEventName
}

type OrderUpdatedEvent struct {
	OrderID           int64 `json:"orderID"`
	PreviousProductID int64 `json:"previousProductID"`
	ProductID         int64 `json:"productID"`
	PreviousQuantity  int   `json:"previousQuantity"`
	Quantity          int   `json:"quantity"`
}

func (e *OrderUpdatedEvent) EventName() EventName {
	return OrderUpdatedEventName
}
