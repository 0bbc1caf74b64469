package report

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductPrice struct {
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
}

type ProductUpper struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
}

type ProductOrder struct {
	ProductName  string          `json:"productName"`
	Price        decimal.Decimal `json:"price"`
	OrderedDate  time.Time       `json:"orderedDate"`
	DeliveryDate time.Time       `json:"deliveryDate"`
}

type CategoryCount struct {
	CategoryName string `json:"categoryName"`
	ProductCount int    `json:"productCount"`
}

type CategoryAveragePrice struct {
	CategoryName string          `json:"categoryName"`
	AveragePrice decimal.Decimal `json:"averagePrice"`
}

type BrandCount struct {
	BrandName    string `json:"brandName"`
	ProductCount int    `json:"productCount"`
}

type ProductOrderDetail struct {
	ProductID       int64  `json:"productId"`
	ProductName     string `json:"productName"`
	OrderID         int64  `json:"orderId"`
	OrderedQuantity int    `json:"orderedQuantity"`
	BrandName       string `json:"brandName"`
	CategoryName    string `json:"categoryName"`
}

type Sale struct {
	ProductID       int64           `json:"productId"`
	ProductName     string          `json:"productName"`
	Brand           string          `json:"brand"`
	Category        string          `json:"category"`
	StockAvailable  int             `json:"stockAvailable"`
	Price           decimal.Decimal `json:"price"`
	CustomerID      int64           `json:"customerId"`
	Username        string          `json:"username"`
	OrderID         int64           `json:"orderId"`
	OrderedQuantity int             `json:"orderedQuantity"`
	AmountPaid      decimal.Decimal `json:"amountPaid"`
}

type CustomerOrder struct {
	CustomerID      int64           `json:"customerId"`
	Username        string          `json:"userName"`
	ProductID       int64           `json:"productId"`
	ProductName     string          `json:"productName"`
	Price           decimal.Decimal `json:"price"`
	OrderedQuantity int             `json:"orderedQuantity"`
	AmountPaid      decimal.Decimal `json:"amountPaid"`
}
