package inventory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sowmyavarshini/Inventory-Management-System/internal/eventengine"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/eventengine/event"
	"go.uber.org/zap"
)

// subscriberName is the name of this event handler.
const subscriberName event.SubscriberName = "handler_event.inventory"

const recordTimeout = 5 * time.Second

type recorder interface {
	recordMovement(ctx context.Context, movement *StockMovement) error
}

type HandlerEventsConfig struct {
	InternalSrvWG *sync.WaitGroup
	EventEngine   eventengine.SubscribeRegisterPublisher
	Service       recorder
	Logger        *zap.Logger
	AddressChSize uint16
}

type handlerEvent struct {
	*HandlerEventsConfig
	addressCh chan *event.Event
}

// NewEventHandler subscribes the stock journal to stock.adjusted and starts
// recording movements until the event engine closes the subscription.
func NewEventHandler(cfg *HandlerEventsConfig) (*handlerEvent, error) {
	if cfg.AddressChSize == 0 {
		cfg.AddressChSize = 10
	}

	if cfg.InternalSrvWG == nil || cfg.EventEngine == nil || cfg.Service == nil || cfg.Logger == nil {
		return nil, errors.New("either 'InternalSrvWG', 'EventEngine', 'Service' or 'Logger' is nil in " + string(subscriberName))
	}

	he := &handlerEvent{
		HandlerEventsConfig: cfg,
		addressCh:           make(chan *event.Event, cfg.AddressChSize),
	}

	if err := he.addSubscriptions(); err != nil {
		return nil, err
	}

	he.InternalSrvWG.Add(1)
	go he.listen()

	return he, nil
}

func (h *handlerEvent) listen() {
	defer h.InternalSrvWG.Done()

	h.Logger.Info("event handler is listening", zap.String("subscriber", string(subscriberName)))

	for newEvent := range h.addressCh {
		switch ne := newEvent.Payload.(type) {
		case *event.StockAdjustedEvent:
			h.stockAdjustedEventHandler(ne)

		default:
			h.Logger.Warn("received unknown event type",
				zap.String("event", string(newEvent.Name)),
				zap.String("event_id", newEvent.ID.String()),
			)
		}
	}

	h.Logger.Info("event handler is shutting down", zap.String("subscriber", string(subscriberName)))
}

func (h *handlerEvent) stockAdjustedEventHandler(adjusted *event.StockAdjustedEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	movement := &StockMovement{
		ProductID:  adjusted.ProductID,
		Delta:      adjusted.Delta,
		StockAfter: adjusted.StockAfter,
		Reason:     adjusted.Reason,
	}
	if adjusted.OrderID != 0 {
		orderID := adjusted.OrderID
		movement.OrderID = &orderID
	}

	if err := h.Service.recordMovement(ctx, movement); err != nil {
		// the stock change is already committed; only the journal line is lost
		h.Logger.Error("failed to record stock movement",
			zap.Int64("product_id", adjusted.ProductID),
			zap.Int("delta", adjusted.Delta),
			zap.Error(err),
		)
	}
}

func (h *handlerEvent) addSubscriptions() error {
	// no publisher may have registered stock.adjusted yet
	h.EventEngine.RegisterEvents(event.StockAdjustedEventName)

	return h.EventEngine.Subscribe(
		event.StockAdjustedEventName,
		&event.Subscriber{
			Name:      subscriberName,
			AddressCh: h.addressCh,
		},
	)
}
