package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/sowmyavarshini/Inventory-Management-System/internal/eventengine"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/eventengine/event"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/servererrors"
	"go.uber.org/zap"
)

type storer interface {
	FindByID(ctx context.Context, productID int64) (*Product, error)
	Save(ctx context.Context, product *Product) error
	findAll(ctx context.Context, queryItems *GetAllProductsRequestQuery) ([]*Product, int, error)
	existsByName(ctx context.Context, name string) (bool, error)
	existsByBarcode(ctx context.Context, barcode string) (bool, error)
}

// catalog resolves the brand and category a product points at.
type catalog interface {
	BrandExists(ctx context.Context, brandID int64) (bool, error)
	CategoryExists(ctx context.Context, categoryID int64) (bool, error)
}

type service struct {
	store     storer
	catalog   catalog
	publisher eventengine.RegisterPublisher
	logger    *zap.Logger
}

func NewService(store storer, catalog catalog, publisher eventengine.RegisterPublisher, logger *zap.Logger) *service {
	publisher.RegisterEvents(event.StockAdjustedEventName)

	return &service{
		store:     store,
		catalog:   catalog,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *service) createProduct(ctx context.Context, newProduct *CreateProductRequest) (*Product, error) {
	product := &Product{
		ProductName:    strings.TrimSpace(newProduct.ProductName),
		StockAvailable: *newProduct.StockAvailable,
		Price:          newProduct.Price,
		Barcode:        newProduct.Barcode,
		BrandID:        newProduct.BrandID,
		CategoryID:     newProduct.CategoryID,
	}

	if err := s.checkReferences(ctx, product); err != nil {
		return nil, err
	}

	taken, err := s.store.existsByName(ctx, product.ProductName)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: product name %q already exists", servererrors.ErrDuplicateEntry, product.ProductName)
	}

	taken, err = s.store.existsByBarcode(ctx, product.Barcode)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: barcode %q already exists", servererrors.ErrDuplicateEntry, product.Barcode)
	}

	if err := s.store.Save(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// updateProduct overwrites every field of an existing product. A change of
// stock is journaled like any other stock movement.
func (s *service) updateProduct(ctx context.Context, update *UpdateProductRequest) (*Product, error) {
	product, err := s.store.FindByID(ctx, update.ProductID)
	if err != nil {
		return nil, err
	}

	previousStock := product.StockAvailable

	product.ProductName = strings.TrimSpace(update.ProductName)
	product.StockAvailable = *update.StockAvailable
	product.Price = update.Price
	product.Barcode = update.Barcode
	product.BrandID = update.BrandID
	product.CategoryID = update.CategoryID

	if err := s.checkReferences(ctx, product); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, product); err != nil {
		return nil, err
	}

	if delta := product.StockAvailable - previousStock; delta != 0 {
		err = s.publisher.Publish(event.New(&event.StockAdjustedEvent{
			ProductID:  product.ProductID,
			Delta:      delta,
			StockAfter: product.StockAvailable,
			Reason:     event.StockReasonProductUpdated,
		}))
		if err != nil {
			s.logger.Warn("failed to publish stock adjustment",
				zap.Int64("product_id", product.ProductID),
				zap.Error(err),
			)
		}
	}

	return product, nil
}

func (s *service) checkReferences(ctx context.Context, product *Product) error {
	exists, err := s.catalog.BrandExists(ctx, product.BrandID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: brand not found with ID: %d", servererrors.ErrResourceNotFound, product.BrandID)
	}

	exists, err = s.catalog.CategoryExists(ctx, product.CategoryID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: category not found with ID: %d", servererrors.ErrResourceNotFound, product.CategoryID)
	}

	return nil
}

func (s *service) getAllProducts(ctx context.Context, queryItems *GetAllProductsRequestQuery) ([]*Product, int, error) {
	return s.store.findAll(ctx, queryItems)
}

func (s *service) getProduct(ctx context.Context, productID int64) (*Product, error) {
	return s.store.FindByID(ctx, productID)
}

func (s *service) productNameExists(ctx context.Context, name string) (bool, error) {
	return s.store.existsByName(ctx, strings.TrimSpace(name))
}

func (s *service) barcodeExists(ctx context.Context, barcode string) (bool, error) {
	return s.store.existsByBarcode(ctx, barcode)
}
