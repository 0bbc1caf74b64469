package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/servererrors"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/storage"
)

var productColumns = []string{
	"product_id",
	"product_name",
	"stock_available",
	"price",
	"barcode",
	"brand_id",
	"category_id",
	"version",
}

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

// FindByID returns servererrors.ErrResourceNotFound when no product has id.
func (s *Store) FindByID(ctx context.Context, productID int64) (*Product, error) {
	query, args, err := storage.Builder.
		Select(productColumns...).
		From("products").
		Where(squirrel.Eq{"product_id": productID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	product := new(Product)
	err = scanIntoProduct(
		storage.RunnerFrom(ctx, s.db).QueryRowContext(ctx, query, args...),
		product,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf(
				"%w: product not found with ID: %d",
				servererrors.ErrResourceNotFound,
				productID,
			)
		}

		return nil, fmt.Errorf(
			"failed to scan product from product store: %w",
			err,
		)
	}

	return product, nil
}

// Save inserts product when it has no id yet, otherwise writes it back if
// nobody else has since the product was read. A lost race returns
// servererrors.ErrStaleWrite.
func (s *Store) Save(ctx context.Context, product *Product) error {
	if product.ProductID == 0 {
		return s.insert(ctx, product)
	}

	return s.update(ctx, product)
}

func (s *Store) insert(ctx context.Context, product *Product) error {
	query, args, err := storage.Builder.
		Insert("products").
		SetMap(map[string]any{
			"product_name":    product.ProductName,
			"stock_available": product.StockAvailable,
			"price":           product.Price,
			"barcode":         product.Barcode,
			"brand_id":        product.BrandID,
			"category_id":     product.CategoryID,
		}).
		Suffix("RETURNING product_id, version").
		ToSql()
	if err != nil {
		return err
	}

	err = storage.RunnerFrom(ctx, s.db).
		QueryRowContext(ctx, query, args...).
		Scan(&product.ProductID, &product.Version)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			return fmt.Errorf("%w: product name or barcode already exists", servererrors.ErrDuplicateEntry)
		}

		return fmt.Errorf(
			"failed to insert new product in product store: %w",
			err,
		)
	}

	return nil
}

func (s *Store) update(ctx context.Context, product *Product) error {
	query, args, err := storage.Builder.
		Update("products").
		SetMap(map[string]any{
			"product_name":    product.ProductName,
			"stock_available": product.StockAvailable,
			"price":           product.Price,
			"barcode":         product.Barcode,
			"brand_id":        product.BrandID,
			"category_id":     product.CategoryID,
			"version":         squirrel.Expr("version + 1"),
		}).
		Where(squirrel.Eq{
			"product_id": product.ProductID,
			"version":    product.Version,
		}).
		Suffix("RETURNING version").
		ToSql()
	if err != nil {
		return err
	}

	err = storage.RunnerFrom(ctx, s.db).
		QueryRowContext(ctx, query, args...).
		Scan(&product.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return fmt.Errorf("%w: product %d", servererrors.ErrStaleWrite, product.ProductID)
		case storage.IsUniqueViolation(err):
			return fmt.Errorf("%w: product name or barcode already exists", servererrors.ErrDuplicateEntry)
		default:
			return fmt.Errorf("failed to update product in product store: %w", err)
		}
	}

	return nil
}

func (s *Store) findAll(ctx context.Context, queryItems *GetAllProductsRequestQuery) (products []*Product, count int, err error) {
	where := filterClauses(queryItems.FilterOpts)

	countQuery, countArgs, err := storage.Builder.
		Select("COUNT(*)").
		From("products").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	err = s.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&count)
	if err != nil {
		return nil, 0, fmt.Errorf(
			"failed to get all products count from product store: %w",
			err,
		)
	}

	// SortBy and SortOpt are whitelisted by the request validation
	query, args, err := storage.Builder.
		Select(productColumns...).
		From("products").
		Where(where).
		OrderBy(fmt.Sprintf("%s %s", queryItems.SortOpts.SortBy, queryItems.SortOpts.SortOpt)).
		Limit(queryItems.PageOpts.Limit).
		Offset((queryItems.PageOpts.Page - 1) * queryItems.PageOpts.Limit).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf(
			"failed to get all products from product store: %w",
			err,
		)
	}
	defer rows.Close()

	for rows.Next() {
		product := new(Product)
		if err := scanIntoProduct(rows, product); err != nil {
			return nil, 0, fmt.Errorf(
				"failed to scan product from product store: %w",
				err,
			)
		}
		products = append(products, product)
	}

	return products, count, rows.Err()
}

func (s *Store) existsBy(ctx context.Context, column, value string) (bool, error) {
	query, args, err := storage.Builder.
		Select("1").
		Prefix("SELECT EXISTS (").
		From("products").
		Where(squirrel.Eq{column: value}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, err
	}

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("/product store/: failed to check %s: %w", column, err)
	}

	return exists, nil
}

func (s *Store) existsByName(ctx context.Context, name string) (bool, error) {
	return s.existsBy(ctx, "product_name", name)
}

func (s *Store) existsByBarcode(ctx context.Context, barcode string) (bool, error) {
	return s.existsBy(ctx, "barcode", barcode)
}

func filterClauses(opts FilterOpts) squirrel.And {
	where := squirrel.And{}

	if opts.Search != "" {
		where = append(where, squirrel.ILike{"product_name": opts.Search + "%"})
	}

	if opts.BrandID > 0 {
		where = append(where, squirrel.Eq{"brand_id": opts.BrandID})
	}

	if opts.CategoryID > 0 {
		where = append(where, squirrel.Eq{"category_id": opts.CategoryID})
	}

	if opts.PriceMin > 0.00 {
		where = append(where, squirrel.GtOrEq{"price": opts.PriceMin})
	}

	if opts.PriceMax > 0.00 {
		where = append(where, squirrel.LtOrEq{"price": opts.PriceMax})
	}

	return where
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIntoProduct(row rowScanner, product *Product) error {
	return row.Scan(
		&product.ProductID,
		&product.ProductName,
		&product.StockAvailable,
		&product.Price,
		&product.Barcode,
		&product.BrandID,
		&product.CategoryID,
		&product.Version,
	)
}
