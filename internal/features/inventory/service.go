package inventory

import (
	"context"
	"fmt"

	"github.com/sowmyavarshini/Inventory-Management-System/internal/features/product"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/servererrors"
)

type storer interface {
	createMovement(ctx context.Context, movement *StockMovement) error
	findMovementsByProductID(ctx context.Context, productID int64) ([]*StockMovement, error)
}

type productFinder interface {
	FindByID(ctx context.Context, productID int64) (*product.Product, error)
}

type service struct {
	store    storer
	products productFinder
}

func NewService(inventoryStore storer, products productFinder) *service {
	return &service{
		store:    inventoryStore,
		products: products,
	}
}

func (s *service) recordMovement(ctx context.Context, movement *StockMovement) error {
	return s.store.createMovement(ctx, movement)
}

// getMovements returns the journal of an existing product, oldest first.
func (s *service) getMovements(ctx context.Context, productID int64) ([]*StockMovement, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	movements, err := s.store.findMovementsByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if len(movements) == 0 {
		return nil, fmt.Errorf(
			"%w: no stock movements for product %d",
			servererrors.ErrResourceNotFound,
			productID,
		)
	}

	return movements, nil
}
