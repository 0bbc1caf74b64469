package product

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	ProductID      int64           `json:"productId"`
	ProductName    string          `json:"productName"`
	StockAvailable int             `json:"stockAvailable"`
	Price          decimal.Decimal `json:"price"`
	Barcode        string          `json:"barcode"`
	BrandID        int64           `json:"brandId"`
	CategoryID     int64           `json:"categoryId"`

	// Version is the optimistic concurrency token. Every committed write
	// bumps it, and a write carrying an old Version is rejected.
	Version int `json:"-"`
}
