// Package relay forwards events from the in-process event engine to Kafka so
// that other services can follow stock and order changes.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	otelkafka "github.com/Trendyol/otel-kafka-konsumer"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/config"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/eventengine"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/eventengine/event"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const subscriberName event.SubscriberName = "relay.kafka"

const (
	writeTimeout    = 10 * time.Second
	writeMaxRetries = 3
)

// forwardedEvents are the events published to Kafka.
var forwardedEvents = []event.EventName{
	event.OrderCreatedEventName,
	event.OrderUpdatedEventName,
	event.StockAdjustedEventName,
}

type MessageWriter interface {
	WriteMessage(ctx context.Context, msg kafka.Message) error
	Close() error
}

// Message is the JSON value written for every forwarded event.
type Message struct {
	ID         uuid.UUID       `json:"id"`
	Name       event.EventName `json:"name"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    any             `json:"payload"`
}

// NewKafkaWriter builds a traced Kafka writer for topic.
func NewKafkaWriter(broker, topic string, tp trace.TracerProvider) (MessageWriter, error) {
	baseWriter := &kafka.Writer{
		Addr:         kafka.TCP(broker),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: config.KafkaBatchTimeout,
		BatchSize:    config.KafkaBatchSize,
	}

	writer, err := otelkafka.NewWriter(baseWriter,
		otelkafka.WithTracerProvider(tp),
		otelkafka.WithPropagator(propagation.TraceContext{}),
		otelkafka.WithAttributes(
			[]attribute.KeyValue{
				semconv.MessagingDestinationNameKey.String(topic),
				attribute.String("messaging.kafka.client_id", config.ServiceName),
			},
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka writer: %w", err)
	}

	return writer, nil
}

type Config struct {
	InternalSrvWG *sync.WaitGroup
	EventEngine   eventengine.SubscribeRegisterPublisher
	Writer        MessageWriter
	Logger        *zap.Logger
	AddressChSize uint16
}

type relay struct {
	*Config
	addressCh chan *event.Event
}

// Start subscribes the relay to every forwarded event. It writes them to
// Kafka until the event engine shuts down, then closes the writer. Events
// that arrive while the relay's buffer is full are dropped and logged.
func Start(cfg *Config) error {
	if cfg.InternalSrvWG == nil || cfg.EventEngine == nil || cfg.Writer == nil || cfg.Logger == nil {
		return errors.New("either 'InternalSrvWG', 'EventEngine', 'Writer' or 'Logger' is nil in " + string(subscriberName))
	}

	if cfg.AddressChSize == 0 {
		cfg.AddressChSize = 50
	}

	r := &relay{
		Config:    cfg,
		addressCh: make(chan *event.Event, cfg.AddressChSize),
	}

	r.EventEngine.RegisterEvents(forwardedEvents...)
	for _, name := range forwardedEvents {
		// a stalled broker must never hold up the publishing request
		err := r.EventEngine.Subscribe(name, &event.Subscriber{
			Name:         subscriberName,
			AddressCh:    r.addressCh,
			DropWhenFull: true,
		})
		if err != nil {
			return fmt.Errorf("relay failed to subscribe to %s: %w", name, err)
		}
	}

	r.InternalSrvWG.Add(1)
	go r.listen()

	return nil
}

func (r *relay) listen() {
	defer r.InternalSrvWG.Done()

	r.Logger.Info("event relay is listening", zap.Any("events", forwardedEvents))

	for ev := range r.addressCh {
		if err := r.forward(ev); err != nil {
			r.Logger.Error("failed to forward event",
				zap.String("event", string(ev.Name)),
				zap.String("event_id", ev.ID.String()),
				zap.Error(err),
			)
		}
	}

	if err := r.Writer.Close(); err != nil {
		r.Logger.Error("failed to close kafka writer", zap.Error(err))
	}

	r.Logger.Info("event relay stopped")
}

func (r *relay) forward(ev *event.Event) error {
	value, err := json.Marshal(Message{
		ID:         ev.ID,
		Name:       ev.Name,
		OccurredAt: ev.OccurredAt,
		Payload:    ev.Payload,
	})
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	msg := kafka.Message{
		Key:   messageKey(ev),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-name", Value: []byte(ev.Name)},
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), writeMaxRetries),
		ctx,
	)

	return backoff.Retry(func() error {
		return r.Writer.WriteMessage(ctx, msg)
	}, policy)
}

// messageKey partitions stock events by product and order events by order,
// so each consumer sees one entity's changes in order.
func messageKey(ev *event.Event) []byte {
	switch payload := ev.Payload.(type) {
	case *event.StockAdjustedEvent:
		return []byte("product-" + strconv.FormatInt(payload.ProductID, 10))
	case *event.OrderCreatedEvent:
		return []byte("order-" + strconv.FormatInt(payload.OrderID, 10))
	case *event.OrderUpdatedEvent:
		return []byte("order-" + strconv.FormatInt(payload.OrderID, 10))
	default:
		return []byte(ev.ID.String())
	}
}
