package product

import (
	"github.com/shopspring/decimal"
)

// Requests

type CreateProductRequest struct {
	ProductName    string          `json:"productName" validate:"required,notblank,max=100"`
	StockAvailable *int            `json:"stockAvailable" validate:"required,min=0"`
	Price          decimal.Decimal `json:"price" validate:"gte=1,decimal2"`
	Barcode        string          `json:"barcode" validate:"required,len=8,barcode"`
	BrandID        int64           `json:"brandId" validate:"required,gt=0"`
	CategoryID     int64           `json:"categoryId" validate:"required,gt=0"`
}

type UpdateProductRequest struct {
	ProductID      int64           `json:"-"`
	ProductName    string          `json:"productName" validate:"required,notblank,max=100"`
	StockAvailable *int            `json:"stockAvailable" validate:"required,min=0"`
	Price          decimal.Decimal `json:"price" validate:"gte=1,decimal2"`
	Barcode        string          `json:"barcode" validate:"required,len=8,barcode"`
	BrandID        int64           `json:"brandId" validate:"required,gt=0"`
	CategoryID     int64           `json:"categoryId" validate:"required,gt=0"`
}

type FilterOpts struct {
	Search     string  `json:"search"`
	BrandID    int64   `json:"brandId" validate:"min=0"`
	CategoryID int64   `json:"categoryId" validate:"min=0"`
	PriceMin   float64 `json:"priceMin" validate:"min=0"`
	PriceMax   float64 `json:"priceMax" validate:"min=0"`
}

type SortOpts struct {
	SortBy  string `json:"sortBy" validate:"oneof=product_id product_name price stock_available"`
	SortOpt string `json:"sortOpt" validate:"oneof=desc asc"`
}

type PageOpts struct {
	Page  uint64 `json:"page" validate:"min=1"`
	Limit uint64 `json:"limit" validate:"min=1,max=100"`
}

type GetAllProductsRequestQuery struct {
	FilterOpts FilterOpts `json:"filterOpts"`
	SortOpts   SortOpts   `json:"sortOpts"`
	PageOpts   PageOpts   `json:"pageOpts"`
}

// Responses

type GetAllProductsResponse struct {
	AllProductsCount   int        `json:"allProductsCount"`
	RetrievedItemCount int        `json:"retrievedItemsCount"`
	TotalPagesCount    int        `json:"totalPagesCount"`
	PagesLeftCount     int        `json:"pagesLeftCount"`
	ItemsLeftCount     int        `json:"itemsLeftCount"`
	Products           []*Product `json:"products"`
}

type ExistsResponse struct {
	Exists bool `json:"exists"`
}
