package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryLeadDays is how many calendar days after ordering an order is
// delivered.
const DeliveryLeadDays = 7

const PaymentStatusPaid = 1

type Order struct {
	OrderID         int64     `json:"orderId"`
	OrderedQuantity int       `json:"orderedQuantity"`
	OrderedDate     time.Time `json:"orderedDate"`
	DeliveryDate    time.Time `json:"deliveryDate"`
	ProductID       int64     `json:"productId"`
}

type Payment struct {
	PaymentID     int64           `json:"paymentId"`
	PaymentStatus int             `json:"paymentStatus"`
	PaymentAmount decimal.Decimal `json:"paymentAmount"`
	PaymentDate   time.Time       `json:"paymentDate"`
}
