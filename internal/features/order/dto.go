package order

type CreateOrderRequest struct {
	ProductID       int64 `json:"productId" validate:"required,gt=0"`
	OrderedQuantity int   `json:"orderedQuantity" validate:"required,min=1"`
	CustomerID      int64 `json:"customerId,omitempty" validate:"omitempty,gt=0"`
}

type UpdateOrderRequest struct {
	OrderID         int64 `json:"-"`
	ProductID       int64 `json:"productId" validate:"required,gt=0"`
	OrderedQuantity int   `json:"orderedQuantity" validate:"required,min=1"`
}
