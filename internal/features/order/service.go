package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/eventengine"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/eventengine/event"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/features/inventory"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/features/product"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/servererrors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/sowmyavarshini/Inventory-Management-System/internal/features/order"

const (
	retryInitialInterval = 10 * time.Millisecond
	retryMaxInterval     = 250 * time.Millisecond
)

type storer interface {
	FindByID(ctx context.Context, orderID int64) (*Order, error)
	Save(ctx context.Context, order *Order) error
	findAll(ctx context.Context) ([]*Order, error)
	findAllByProductID(ctx context.Context, productID int64) ([]*Order, error)
	customerExists(ctx context.Context, customerID int64) (bool, error)
	createPayment(ctx context.Context, payment *Payment) error
	linkCustomer(ctx context.Context, customerID, orderID, paymentID int64) error
}

type productStorer interface {
	FindByID(ctx context.Context, productID int64) (*product.Product, error)
	Save(ctx context.Context, product *product.Product) error
}

type transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type ServiceConfig struct {
	Store      storer
	Products   productStorer
	Transactor transactor
	Publisher  eventengine.RegisterPublisher
	Logger     *zap.Logger

	// Clock stamps new orders. Defaults to time.Now.
	Clock func() time.Time

	// MaxRetries bounds how often a write that lost an optimistic
	// concurrency race is replayed.
	MaxRetries uint64
}

type service struct {
	*ServiceConfig
	tracer trace.Tracer
}

func NewService(cfg *ServiceConfig) *service {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	cfg.Publisher.RegisterEvents(
		event.OrderCreatedEventName,
		event.OrderUpdatedEventName,
		event.StockAdjustedEventName,
	)

	return &service{
		ServiceConfig: cfg,
		tracer:        otel.Tracer(tracerName),
	}
}

// createOrder places an order for a product, taking the ordered units out of
// its stock. Order and stock change commit together or not at all.
func (s *service) createOrder(ctx context.Context, req *CreateOrderRequest) (order *Order, err error) {
	ctx, span := s.tracer.Start(ctx, "order.create", trace.WithAttributes(
		attribute.Int64("product.id", req.ProductID),
		attribute.Int("order.quantity", req.OrderedQuantity),
	))
	defer func() { endSpan(span, err) }()

	var stockAfter int

	err = s.retryStale(ctx, func() error {
		return s.Transactor.WithinTx(ctx, func(ctx context.Context) error {
			p, err := s.Products.FindByID(ctx, req.ProductID)
			if err != nil {
				return err
			}

			if err := inventory.Reduce(p, req.OrderedQuantity); err != nil {
				return err
			}

			orderedDate := s.Clock()
			newOrder := &Order{
				OrderedQuantity: req.OrderedQuantity,
				OrderedDate:     orderedDate,
				DeliveryDate:    orderedDate.AddDate(0, 0, DeliveryLeadDays),
				ProductID:       p.ProductID,
			}

			if err := s.Products.Save(ctx, p); err != nil {
				return err
			}

			if err := s.Store.Save(ctx, newOrder); err != nil {
				return err
			}

			if req.CustomerID != 0 {
				if err := s.linkCustomer(ctx, req.CustomerID, newOrder, p.Price); err != nil {
					return err
				}
			}

			order = newOrder
			stockAfter = p.StockAvailable
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int64("order.id", order.OrderID))

	s.publish(
		&event.OrderCreatedEvent{
			OrderID:      order.OrderID,
			ProductID:    order.ProductID,
			CustomerID:   req.CustomerID,
			Quantity:     order.OrderedQuantity,
			OrderedDate:  order.OrderedDate,
			DeliveryDate: order.DeliveryDate,
		},
		&event.StockAdjustedEvent{
			ProductID:  order.ProductID,
			OrderID:    order.OrderID,
			Delta:      -order.OrderedQuantity,
			StockAfter: stockAfter,
			Reason:     event.StockReasonOrderCreated,
		},
	)

	return order, nil
}

// linkCustomer records the payment for order and ties both to the customer.
func (s *service) linkCustomer(ctx context.Context, customerID int64, order *Order, price decimal.Decimal) error {
	exists, err := s.Store.customerExists(ctx, customerID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: customer not found with ID: %d", servererrors.ErrResourceNotFound, customerID)
	}

	payment := &Payment{
		PaymentStatus: PaymentStatusPaid,
		PaymentAmount: price.Mul(decimal.NewFromInt(int64(order.OrderedQuantity))),
	}
	if err := s.Store.createPayment(ctx, payment); err != nil {
		return err
	}

	return s.Store.linkCustomer(ctx, customerID, order.OrderID, payment.PaymentID)
}

// updateOrder changes an order's product and quantity and moves the
// difference in quantity through the product's stock. The order's dates are
// kept as placed.
func (s *service) updateOrder(ctx context.Context, req *UpdateOrderRequest) (order *Order, err error) {
	ctx, span := s.tracer.Start(ctx, "order.update", trace.WithAttributes(
		attribute.Int64("order.id", req.OrderID),
		attribute.Int64("product.id", req.ProductID),
		attribute.Int("order.quantity", req.OrderedQuantity),
	))
	defer func() { endSpan(span, err) }()

	var (
		previousProductID int64
		previousQuantity  int
		stockAfter        int
	)

	err = s.retryStale(ctx, func() error {
		return s.Transactor.WithinTx(ctx, func(ctx context.Context) error {
			existing, err := s.Store.FindByID(ctx, req.OrderID)
			if err != nil {
				return err
			}

			p, err := s.Products.FindByID(ctx, req.ProductID)
			if err != nil {
				return err
			}

			// TODO: restore stock on the previous product when an order is
			// moved to a different product; today only the new product moves.
			if err := inventory.Adjust(p, existing.OrderedQuantity, req.OrderedQuantity); err != nil {
				return err
			}

			previousProductID = existing.ProductID
			previousQuantity = existing.OrderedQuantity

			existing.OrderedQuantity = req.OrderedQuantity
			existing.ProductID = p.ProductID

			if err := s.Products.Save(ctx, p); err != nil {
				return err
			}

			if err := s.Store.Save(ctx, existing); err != nil {
				return err
			}

			order = existing
			stockAfter = p.StockAvailable
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	events := []event.Namer{
		&event.OrderUpdatedEvent{
			OrderID:           order.OrderID,
			PreviousProductID: previousProductID,
			ProductID:         order.ProductID,
			PreviousQuantity:  previousQuantity,
			Quantity:          order.OrderedQuantity,
		},
	}
	if delta := previousQuantity - order.OrderedQuantity; delta != 0 {
		events = append(events, &event.StockAdjustedEvent{
			ProductID:  order.ProductID,
			OrderID:    order.OrderID,
			Delta:      delta,
			StockAfter: stockAfter,
			Reason:     event.StockReasonOrderUpdated,
		})
	}
	s.publish(events...)

	return order, nil
}

func (s *service) getOrder(ctx context.Context, orderID int64) (*Order, error) {
	return s.Store.FindByID(ctx, orderID)
}

func (s *service) getAllOrders(ctx context.Context) ([]*Order, error) {
	orders, err := s.Store.findAll(ctx)
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return nil, fmt.Errorf("%w: no orders found", servererrors.ErrResourceNotFound)
	}

	return orders, nil
}

func (s *service) getOrdersForProduct(ctx context.Context, productID int64) ([]*Order, error) {
	if _, err := s.Products.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	orders, err := s.Store.findAllByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return nil, fmt.Errorf("%w: no orders found for product %d", servererrors.ErrResourceNotFound, productID)
	}

	return orders, nil
}

// retryStale replays op while it loses optimistic concurrency races, at most
// MaxRetries times. Any other failure ends the retries at once.
func (s *service) retryStale(ctx context.Context, op func() error) error {
	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = retryInitialInterval
	expBackoff.MaxInterval = retryMaxInterval

	policy := backoff.WithContext(backoff.WithMaxRetries(expBackoff, s.MaxRetries), ctx)

	attempt := 0
	return backoff.Retry(func() error {
		attempt++

		err := op()
		if err == nil {
			return nil
		}

		if errors.Is(err, servererrors.ErrStaleWrite) {
			s.Logger.Debug("stale write, retrying", zap.Int("attempt", attempt), zap.Error(err))
			return err
		}

		return backoff.Permanent(err)
	}, policy)
}

// publish hands committed changes to the event engine. The request already
// succeeded, so a refused event is only logged.
func (s *service) publish(payloads ...event.Namer) {
	for _, payload := range payloads {
		if err := s.Publisher.Publish(event.New(payload)); err != nil {
			s.Logger.Warn("failed to publish event",
				zap.String("event", string(payload.EventName())),
				zap.Error(err),
			)
		}
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
