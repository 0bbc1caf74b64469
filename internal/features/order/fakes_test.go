package order

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/sowmyavarshini/Inventory-Management-System/internal/eventengine/event"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/features/product"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/servererrors"
)

// memDB backs the fake stores. Its transactor snapshots every table and
// restores them when the transaction fails, like a rollback.
type memDB struct {
	mu        sync.Mutex
	products  map[int64]product.Product
	orders    map[int64]Order
	customers map[int64]bool
	payments  map[int64]Payment
	links     map[int64]int64 // order id -> customer id
	nextID    int64

	// staleSaves makes the next n product writes lose the version race.
	staleSaves int
}

func newMemDB() *memDB {
	return &memDB{
		products:  make(map[int64]product.Product),
		orders:    make(map[int64]Order),
		customers: make(map[int64]bool),
		payments:  make(map[int64]Payment),
		links:     make(map[int64]int64),
	}
}

func (db *memDB) id() int64 {
	db.nextID++
	return db.nextID
}

func (db *memDB) addProduct(stock int) *product.Product {
	db.mu.Lock()
	defer db.mu.Unlock()

	p := product.Product{
		ProductID:      db.id(),
		ProductName:    "Notebook",
		StockAvailable: stock,
		Price:          mustDecimal("2.50"),
		Barcode:        "NOTE0001",
		BrandID:        1,
		CategoryID:     1,
		Version:        1,
	}
	db.products[p.ProductID] = p
	return &p
}

func (db *memDB) stockOf(productID int64) int {
	db.mu.Lock()
	defer db.mu.Unlock()

	return db.products[productID].StockAvailable
}

func (db *memDB) orderCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()

	return len(db.orders)
}

type memTransactor struct {
	db *memDB
}

func (t memTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.db.mu.Lock()
	products := maps.Clone(t.db.products)
	orders := maps.Clone(t.db.orders)
	payments := maps.Clone(t.db.payments)
	links := maps.Clone(t.db.links)
	t.db.mu.Unlock()

	if err := fn(ctx); err != nil {
		t.db.mu.Lock()
		t.db.products = products
		t.db.orders = orders
		t.db.payments = payments
		t.db.links = links
		t.db.mu.Unlock()
		return err
	}

	return nil
}

type memProducts struct {
	db *memDB
}

func (s memProducts) FindByID(ctx context.Context, productID int64) (*product.Product, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	p, ok := s.db.products[productID]
	if !ok {
		return nil, fmt.Errorf("%w: product not found with ID: %d", servererrors.ErrResourceNotFound, productID)
	}
	return &p, nil
}

func (s memProducts) Save(ctx context.Context, p *product.Product) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	stored, ok := s.db.products[p.ProductID]
	if !ok || stored.Version != p.Version {
		return fmt.Errorf("%w: product %d", servererrors.ErrStaleWrite, p.ProductID)
	}

	if s.db.staleSaves > 0 {
		s.db.staleSaves--
		// someone else committed first
		stored.Version++
		s.db.products[p.ProductID] = stored
		return fmt.Errorf("%w: product %d", servererrors.ErrStaleWrite, p.ProductID)
	}

	p.Version++
	s.db.products[p.ProductID] = *p
	return nil
}

type memOrders struct {
	db *memDB
}

func (s memOrders) FindByID(ctx context.Context, orderID int64) (*Order, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	o, ok := s.db.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("%w: order not found with ID: %d", servererrors.ErrResourceNotFound, orderID)
	}
	return &o, nil
}

func (s memOrders) Save(ctx context.Context, o *Order) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if o.OrderID == 0 {
		o.OrderID = s.db.id()
		s.db.orders[o.OrderID] = *o
		return nil
	}

	stored, ok := s.db.orders[o.OrderID]
	if !ok {
		return fmt.Errorf("%w: order not found with ID: %d", servererrors.ErrResourceNotFound, o.OrderID)
	}

	// like the sql store, dates are never written back
	stored.OrderedQuantity = o.OrderedQuantity
	stored.ProductID = o.ProductID
	s.db.orders[o.OrderID] = stored
	return nil
}

func (s memOrders) findAll(ctx context.Context) ([]*Order, error) {
	return s.findWhere(func(*Order) bool { return true }), nil
}

func (s memOrders) findAllByProductID(ctx context.Context, productID int64) ([]*Order, error) {
	return s.findWhere(func(o *Order) bool { return o.ProductID == productID }), nil
}

func (s memOrders) findWhere(keep func(*Order) bool) []*Order {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var orders []*Order
	for id := int64(1); id <= s.db.nextID; id++ {
		o, ok := s.db.orders[id]
		if ok && keep(&o) {
			orders = append(orders, &o)
		}
	}
	return orders
}

func (s memOrders) customerExists(ctx context.Context, customerID int64) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	return s.db.customers[customerID], nil
}

func (s memOrders) createPayment(ctx context.Context, payment *Payment) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	payment.PaymentID = s.db.id()
	s.db.payments[payment.PaymentID] = *payment
	return nil
}

func (s memOrders) linkCustomer(ctx context.Context, customerID, orderID, paymentID int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	s.db.links[orderID] = customerID
	return nil
}

// recordingPublisher keeps every published event in order.
type recordingPublisher struct {
	mu     sync.Mutex
	events []*event.Event
}

func (p *recordingPublisher) RegisterEvents(eventNames ...event.EventName) {}

func (p *recordingPublisher) Publish(ev *event.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) payloads() []any {
	p.mu.Lock()
	defer p.mu.Unlock()

	payloads := make([]any, 0, len(p.events))
	for _, ev := range p.events {
		payloads = append(payloads, ev.Payload)
	}
	return payloads
}
