package inventory

import (
	"testing"

	"github.com/sowmyavarshini/Inventory-Management-System/internal/features/product"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/servererrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProduct(stock int) *product.Product {
	return &product.Product{
		ProductID:      1,
		ProductName:    "Pencil",
		StockAvailable: stock,
	}
}

func TestCheckAvailability(t *testing.T) {
	tests := []struct {
		name      string
		stock     int
		requested int
		wantErr   error
	}{
		{name: "enough stock", stock: 10, requested: 3},
		{name: "exact stock", stock: 3, requested: 3},
		{name: "zero stock", stock: 0, requested: 1, wantErr: servererrors.ErrOutOfStock},
		{name: "zero stock zero requested", stock: 0, requested: 0, wantErr: servererrors.ErrOutOfStock},
		{name: "short by one", stock: 2, requested: 3, wantErr: servererrors.ErrInsufficientStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProduct(tt.stock)

			err := CheckAvailability(p, tt.requested)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.stock, p.StockAvailable)
		})
	}
}

func TestReduce(t *testing.T) {
	tests := []struct {
		name      string
		stock     int
		quantity  int
		wantStock int
		wantErr   error
	}{
		{name: "reduces stock", stock: 10, quantity: 3, wantStock: 7},
		{name: "reduces to zero", stock: 3, quantity: 3, wantStock: 0},
		{name: "out of stock leaves product untouched", stock: 0, quantity: 1, wantStock: 0, wantErr: servererrors.ErrOutOfStock},
		{name: "insufficient leaves product untouched", stock: 2, quantity: 5, wantStock: 2, wantErr: servererrors.ErrInsufficientStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProduct(tt.stock)

			err := Reduce(p, tt.quantity)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantStock, p.StockAvailable)
		})
	}
}

func TestAdjust(t *testing.T) {
	tests := []struct {
		name        string
		stock       int
		oldQuantity int
		newQuantity int
		wantStock   int
		wantErr     error
	}{
		{name: "grow order", stock: 7, oldQuantity: 3, newQuantity: 5, wantStock: 5},
		{name: "shrink order returns units", stock: 5, oldQuantity: 5, newQuantity: 1, wantStock: 9},
		{name: "unchanged quantity", stock: 4, oldQuantity: 2, newQuantity: 2, wantStock: 4},
		{name: "shrink on empty stock", stock: 0, oldQuantity: 4, newQuantity: 1, wantStock: 3},
		{name: "unchanged on empty stock", stock: 0, oldQuantity: 4, newQuantity: 4, wantStock: 0},
		{name: "grow beyond stock", stock: 2, oldQuantity: 1, newQuantity: 5, wantStock: 2, wantErr: servererrors.ErrInsufficientStock},
		{name: "grow on empty stock", stock: 0, oldQuantity: 1, newQuantity: 2, wantStock: 0, wantErr: servererrors.ErrOutOfStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProduct(tt.stock)

			err := Adjust(p, tt.oldQuantity, tt.newQuantity)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantStock, p.StockAvailable)
		})
	}
}

func TestLedger_stockNeverNegative(t *testing.T) {
	p := newProduct(10)

	require.NoError(t, Reduce(p, 3))
	require.NoError(t, Adjust(p, 3, 5))
	require.NoError(t, Adjust(p, 5, 1))
	assert.Equal(t, 9, p.StockAvailable)

	for _, quantity := range []int{4, 4, 4, 4} {
		_ = Reduce(p, quantity)
		assert.GreaterOrEqual(t, p.StockAvailable, 0)
	}
	assert.Equal(t, 1, p.StockAvailable)
}
