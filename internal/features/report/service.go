package report

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/features/product"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/servererrors"
)

type storer interface {
	productsAfterID(ctx context.Context, productID int64) ([]*product.Product, error)
	productsByName(ctx context.Context, name string) ([]*product.Product, error)
	productsByNameDesc(ctx context.Context) ([]*product.Product, error)
	productsByBrandName(ctx context.Context, brandName string) ([]*product.Product, error)
	productsByCategoryName(ctx context.Context, categoryName string) ([]*product.Product, error)
	productsAbovePrice(ctx context.Context, price decimal.Decimal) ([]*ProductPrice, error)
	productNamesUpper(ctx context.Context) ([]*ProductUpper, error)
	productOrdersAbovePrice(ctx context.Context, price decimal.Decimal) ([]*ProductOrder, error)
	categoryCounts(ctx context.Context) ([]*CategoryCount, error)
	categoryAveragePrices(ctx context.Context) ([]*CategoryAveragePrice, error)
	brandCounts(ctx context.Context, name string, minProducts int) ([]*BrandCount, error)
	productOrderDetails(ctx context.Context) ([]*ProductOrderDetail, error)
	sales(ctx context.Context) ([]*Sale, error)
	customerOrders(ctx context.Context, customerID int64) ([]*CustomerOrder, error)
	customerExists(ctx context.Context, customerID int64) (bool, error)
}

type service struct {
	store storer
}

func NewService(store storer) *service {
	return &service{
		store: store,
	}
}

// found turns an empty report into ErrResourceNotFound.
func found[T any](items []T, err error, what string) ([]T, error) {
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no %s found", servererrors.ErrResourceNotFound, what)
	}

	return items, nil
}

func (s *service) productsAfterID(ctx context.Context, productID int64) ([]*product.Product, error) {
	products, err := s.store.productsAfterID(ctx, productID)
	return found(products, err, fmt.Sprintf("products after ID %d", productID))
}

func (s *service) productsByName(ctx context.Context, name string) ([]*product.Product, error) {
	products, err := s.store.productsByName(ctx, name)
	return found(products, err, fmt.Sprintf("products matching %q", name))
}

func (s *service) productsByNameDesc(ctx context.Context) ([]*product.Product, error) {
	products, err := s.store.productsByNameDesc(ctx)
	return found(products, err, "products")
}

func (s *service) productsByBrandName(ctx context.Context, brandName string) ([]*product.Product, error) {
	products, err := s.store.productsByBrandName(ctx, brandName)
	return found(products, err, fmt.Sprintf("products for brand %q", brandName))
}

func (s *service) productsByCategoryName(ctx context.Context, categoryName string) ([]*product.Product, error) {
	products, err := s.store.productsByCategoryName(ctx, categoryName)
	return found(products, err, fmt.Sprintf("products for category %q", categoryName))
}

func (s *service) productsAbovePrice(ctx context.Context, price decimal.Decimal) ([]*ProductPrice, error) {
	items, err := s.store.productsAbovePrice(ctx, price)
	return found(items, err, fmt.Sprintf("products priced above %s", price))
}

func (s *service) productNamesUpper(ctx context.Context) ([]*ProductUpper, error) {
	items, err := s.store.productNamesUpper(ctx)
	return found(items, err, "products")
}

func (s *service) productOrdersAbovePrice(ctx context.Context, price decimal.Decimal) ([]*ProductOrder, error) {
	items, err := s.store.productOrdersAbovePrice(ctx, price)
	return found(items, err, fmt.Sprintf("orders for products priced above %s", price))
}

func (s *service) categoryCounts(ctx context.Context) ([]*CategoryCount, error) {
	items, err := s.store.categoryCounts(ctx)
	return found(items, err, "categories with more than one product")
}

func (s *service) categoryAveragePrices(ctx context.Context) ([]*CategoryAveragePrice, error) {
	items, err := s.store.categoryAveragePrices(ctx)
	return found(items, err, "categories")
}

func (s *service) brandCounts(ctx context.Context, name string, minProducts int) ([]*BrandCount, error) {
	items, err := s.store.brandCounts(ctx, name, minProducts)
	return found(items, err, fmt.Sprintf("brands matching %q with more than %d products", name, minProducts))
}

func (s *service) productOrderDetails(ctx context.Context) ([]*ProductOrderDetail, error) {
	items, err := s.store.productOrderDetails(ctx)
	return found(items, err, "product orders")
}

func (s *service) sales(ctx context.Context) ([]*Sale, error) {
	items, err := s.store.sales(ctx)
	return found(items, err, "sales")
}

func (s *service) customerOrders(ctx context.Context, customerID int64) ([]*CustomerOrder, error) {
	exists, err := s.store.customerExists(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: customer not found with ID: %d", servererrors.ErrResourceNotFound, customerID)
	}

	items, err := s.store.customerOrders(ctx, customerID)
	return found(items, err, fmt.Sprintf("orders for customer %d", customerID))
}
