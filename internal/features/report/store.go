package report

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/features/product"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/storage"
)

type store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *store {
	return &store{
		db: db,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// queryAll runs query and scans every row into a new T.
func queryAll[T any](ctx context.Context, db *sql.DB, query squirrel.Sqlizer, scan func(rowScanner, *T) error) ([]*T, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to run report query: %w", err)
	}
	defer rows.Close()

	var items []*T
	for rows.Next() {
		item := new(T)
		if err := scan(rows, item); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func productsQuery() squirrel.SelectBuilder {
	return storage.Builder.
		Select(
			"p.product_id",
			"p.product_name",
			"p.stock_available",
			"p.price",
			"p.barcode",
			"p.brand_id",
			"p.category_id",
			"p.version",
		).
		From("products p")
}

func scanProduct(row rowScanner, p *product.Product) error {
	return row.Scan(
		&p.ProductID,
		&p.ProductName,
		&p.StockAvailable,
		&p.Price,
		&p.Barcode,
		&p.BrandID,
		&p.CategoryID,
		&p.Version,
	)
}

func (s *store) productsAfterID(ctx context.Context, productID int64) ([]*product.Product, error) {
	return queryAll(ctx, s.db,
		productsQuery().
			Where(squirrel.Gt{"p.product_id": productID}).
			OrderBy("p.product_id"),
		scanProduct,
	)
}

func (s *store) productsByName(ctx context.Context, name string) ([]*product.Product, error) {
	return queryAll(ctx, s.db,
		productsQuery().
			Where(squirrel.Like{"p.product_name": "%" + name + "%"}).
			OrderBy("p.product_id"),
		scanProduct,
	)
}

func (s *store) productsByNameDesc(ctx context.Context) ([]*product.Product, error) {
	return queryAll(ctx, s.db,
		productsQuery().OrderBy("p.product_name DESC"),
		scanProduct,
	)
}

func (s *store) productsByBrandName(ctx context.Context, brandName string) ([]*product.Product, error) {
	return queryAll(ctx, s.db,
		productsQuery().
			Join("brands b ON b.brand_id = p.brand_id").
			Where(squirrel.Eq{"b.brand_name": brandName}).
			OrderBy("p.product_id"),
		scanProduct,
	)
}

func (s *store) productsByCategoryName(ctx context.Context, categoryName string) ([]*product.Product, error) {
	return queryAll(ctx, s.db,
		productsQuery().
			Join("categories c ON c.category_id = p.category_id").
			Where(squirrel.Eq{"c.category_name": categoryName}).
			OrderBy("p.product_id"),
		scanProduct,
	)
}

func (s *store) productsAbovePrice(ctx context.Context, price decimal.Decimal) ([]*ProductPrice, error) {
	return queryAll(ctx, s.db,
		storage.Builder.
			Select("product_name", "price").
			From("products").
			Where(squirrel.Gt{"price": price}).
			OrderBy("product_id"),
		func(row rowScanner, item *ProductPrice) error {
			return row.Scan(&item.ProductName, &item.Price)
		},
	)
}

func (s *store) productNamesUpper(ctx context.Context) ([]*ProductUpper, error) {
	return queryAll(ctx, s.db,
		storage.Builder.
			Select("product_id", "UPPER(product_name)", "price").
			From("products").
			OrderBy("product_id"),
		func(row rowScanner, item *ProductUpper) error {
			return row.Scan(&item.ProductID, &item.ProductName, &item.Price)
		},
	)
}

func (s *store) productOrdersAbovePrice(ctx context.Context, price decimal.Decimal) ([]*ProductOrder, error) {
	return queryAll(ctx, s.db,
		storage.Builder.
			Select("p.product_name", "p.price", "o.ordered_date", "o.delivery_date").
			From("products p").
			Join("order_details o ON o.product_id = p.product_id").
			Where(squirrel.Gt{"p.price": price}).
			OrderBy("o.order_id"),
		func(row rowScanner, item *ProductOrder) error {
			return row.Scan(&item.ProductName, &item.Price, &item.OrderedDate, &item.DeliveryDate)
		},
	)
}

// categoryCounts lists categories holding more than one product.
func (s *store) categoryCounts(ctx context.Context) ([]*CategoryCount, error) {
	return queryAll(ctx, s.db,
		storage.Builder.
			Select("c.category_name", "COUNT(p.product_id)").
			From("products p").
			Join("categories c ON c.category_id = p.category_id").
			GroupBy("c.category_name").
			Having("COUNT(p.product_id) > 1").
			OrderBy("c.category_name"),
		func(row rowScanner, item *CategoryCount) error {
			return row.Scan(&item.CategoryName, &item.ProductCount)
		},
	)
}

func (s *store) categoryAveragePrices(ctx context.Context) ([]*CategoryAveragePrice, error) {
	return queryAll(ctx, s.db,
		storage.Builder.
			Select("c.category_name", "ROUND(AVG(p.price), 2)").
			From("products p").
			Join("categories c ON c.category_id = p.category_id").
			GroupBy("c.category_name").
			OrderBy("c.category_name"),
		func(row rowScanner, item *CategoryAveragePrice) error {
			return row.Scan(&item.CategoryName, &item.AveragePrice)
		},
	)
}

// brandCounts lists brands whose name contains name and that hold more than
// minProducts products.
func (s *store) brandCounts(ctx context.Context, name string, minProducts int) ([]*BrandCount, error) {
	return queryAll(ctx, s.db,
		storage.Builder.
			Select("b.brand_name", "COUNT(p.product_id)").
			From("products p").
			Join("brands b ON b.brand_id = p.brand_id").
			Where(squirrel.Like{"b.brand_name": "%" + name + "%"}).
			GroupBy("b.brand_name").
			Having("COUNT(p.product_id) > ?", minProducts).
			OrderBy("b.brand_name ASC"),
		func(row rowScanner, item *BrandCount) error {
			return row.Scan(&item.BrandName, &item.ProductCount)
		},
	)
}

func (s *store) productOrderDetails(ctx context.Context) ([]*ProductOrderDetail, error) {
	return queryAll(ctx, s.db,
		storage.Builder.
			Select("p.product_id", "p.product_name", "o.order_id", "o.ordered_quantity", "b.brand_name", "c.category_name").
			From("products p").
			Join("order_details o ON o.product_id = p.product_id").
			Join("brands b ON b.brand_id = p.brand_id").
			Join("categories c ON c.category_id = p.category_id").
			OrderBy("o.order_id"),
		func(row rowScanner, item *ProductOrderDetail) error {
			return row.Scan(
				&item.ProductID,
				&item.ProductName,
				&item.OrderID,
				&item.OrderedQuantity,
				&item.BrandName,
				&item.CategoryName,
			)
		},
	)
}

func (s *store) sales(ctx context.Context) ([]*Sale, error) {
	return queryAll(ctx, s.db,
		storage.Builder.
			Select(
				"p.product_id",
				"p.product_name",
				"b.brand_name",
				"c.category_name",
				"p.stock_available",
				"p.price",
				"cu.customer_id",
				"cu.username",
				"o.order_id",
				"o.ordered_quantity",
				"pd.payment_amount",
			).
			From("customer_order_details co").
			Join("customers cu ON cu.customer_id = co.customer_id").
			Join("order_details o ON o.order_id = co.order_id").
			Join("payment_details pd ON pd.payment_id = co.payment_id").
			Join("products p ON p.product_id = o.product_id").
			Join("brands b ON b.brand_id = p.brand_id").
			Join("categories c ON c.category_id = p.category_id").
			OrderBy("o.order_id"),
		func(row rowScanner, item *Sale) error {
			return row.Scan(
				&item.ProductID,
				&item.ProductName,
				&item.Brand,
				&item.Category,
				&item.StockAvailable,
				&item.Price,
				&item.CustomerID,
				&item.Username,
				&item.OrderID,
				&item.OrderedQuantity,
				&item.AmountPaid,
			)
		},
	)
}

func (s *store) customerOrders(ctx context.Context, customerID int64) ([]*CustomerOrder, error) {
	return queryAll(ctx, s.db,
		storage.Builder.
			Select(
				"cu.customer_id",
				"cu.username",
				"p.product_id",
				"p.product_name",
				"p.price",
				"o.ordered_quantity",
				"o.ordered_quantity * p.price",
			).
			From("customer_order_details co").
			Join("customers cu ON cu.customer_id = co.customer_id").
			Join("order_details o ON o.order_id = co.order_id").
			Join("products p ON p.product_id = o.product_id").
			Where(squirrel.Eq{"cu.customer_id": customerID}).
			OrderBy("o.order_id"),
		func(row rowScanner, item *CustomerOrder) error {
			return row.Scan(
				&item.CustomerID,
				&item.Username,
				&item.ProductID,
				&item.ProductName,
				&item.Price,
				&item.OrderedQuantity,
				&item.AmountPaid,
			)
		},
	)
}

func (s *store) customerExists(ctx context.Context, customerID int64) (bool, error) {
	query, args, err := storage.Builder.
		Select("1").
		Prefix("SELECT EXISTS (").
		From("customers").
		Where(squirrel.Eq{"customer_id": customerID}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, err
	}

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to look up customer in report store: %w", err)
	}

	return exists, nil
}
