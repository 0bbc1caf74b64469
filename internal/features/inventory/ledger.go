package inventory

import (
	"fmt"

	"github.com/sowmyavarshini/Inventory-Management-System/internal/features/product"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/servererrors"
)

// CheckAvailability reports whether requested units can leave p's stock. It
// never mutates p.
func CheckAvailability(p *product.Product, requested int) error {
	if p.StockAvailable <= 0 {
		return fmt.Errorf(
			"%w: %q (product %d)",
			servererrors.ErrOutOfStock,
			p.ProductName,
			p.ProductID,
		)
	}

	if p.StockAvailable < requested {
		return fmt.Errorf(
			"%w: %q (product %d) has %d, requested %d",
			servererrors.ErrInsufficientStock,
			p.ProductName,
			p.ProductID,
			p.StockAvailable,
			requested,
		)
	}

	return nil
}

// Reduce takes quantity units out of p's stock.
func Reduce(p *product.Product, quantity int) error {
	if err := CheckAvailability(p, quantity); err != nil {
		return err
	}

	p.StockAvailable -= quantity
	return nil
}

// Adjust moves p's stock by the difference between an order's previous and
// new quantity. Growing orders must be covered by stock; shrinking orders
// return units.
func Adjust(p *product.Product, oldQuantity, newQuantity int) error {
	delta := newQuantity - oldQuantity

	if delta > 0 {
		if err := CheckAvailability(p, delta); err != nil {
			return err
		}
	}

	p.StockAvailable -= delta
	return nil
}
