package eventengine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sowmyavarshini/Inventory-Management-System/internal/eventengine/event"
	"go.uber.org/zap"
)

var ErrEngineStopped = errors.New("event engine is shutting down")

type Publisher interface {
	Publish(event *event.Event) error // should take in an event, and hand it to the engine
}

type Subscriber interface {
	Subscribe(toEventName event.EventName, subscriber *event.Subscriber) error // should add a subscriber's addressCh to a registered event
}

type RegisterPublisher interface {
	Publisher
	RegisterEvents(eventNames ...event.EventName)
}

type SubscribeRegisterPublisher interface {
	Subscriber
	RegisterPublisher
}

type subscribers struct {
	names      []event.SubscriberName
	addressChs []chan<- *event.Event
	lossy      []bool
}

type EventEngineConfig struct {
	DoneCh        <-chan struct{}
	InternalSrvWG *sync.WaitGroup
	Logger        *zap.Logger
	BufferSize    int
}

type eventEngine struct {
	*EventEngineConfig
	mu            sync.RWMutex
	eventEngineCh chan *event.Event                // This is what the event engine listens to for events being published.
	events        map[event.EventName]*subscribers // This is where all events are kept, and subscribers whom have subscribed to that event.

	// stopMu is held for reading by every Publish. The listener takes it for
	// writing to set stopped, so no send can land after the final drain.
	stopMu  sync.RWMutex
	stopped bool
}

func NewEventEngine(cfg *EventEngineConfig) (SubscribeRegisterPublisher, error) {
	if cfg == nil {
		return nil, errors.New("'eventEngineConfig' can not be nil")
	}

	if cfg.DoneCh == nil || cfg.InternalSrvWG == nil || cfg.Logger == nil {
		return nil, errors.New("either DoneCh, InternalSrvWG or Logger is nil")
	}

	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 20
	}

	e := newEventEngine(cfg)

	e.InternalSrvWG.Add(1)
	go e.listen()

	return e, nil
}

func newEventEngine(cfg *EventEngineConfig) *eventEngine {
	return &eventEngine{
		EventEngineConfig: cfg,
		events:            make(map[event.EventName]*subscribers, 20),
		eventEngineCh:     make(chan *event.Event, cfg.BufferSize),
	}
}

func (e *eventEngine) listen() {
	defer e.InternalSrvWG.Done()

	e.Logger.Info("event engine is listening")

	for { // read until the e.DoneCh is signalled.
		select {
		case <-e.DoneCh:
			e.stopMu.Lock()
			e.stopped = true
			e.stopMu.Unlock()

			e.Logger.Info("event engine is shutting down, draining pending events")
			e.drain()

			e.Logger.Info("closing subscribers addressChs")
			e.shutdownSubscribersAddressCh()
			return

		case ev := <-e.eventEngineCh:
			e.broadcaster(ev)
		}
	}
}

// drain broadcasts whatever is still buffered. It runs after stopped is set,
// so the buffer can only shrink. The channel is never closed, so late
// publishers cannot panic.
func (e *eventEngine) drain() {
	for {
		select {
		case ev := <-e.eventEngineCh:
			e.broadcaster(ev)
		default:
			return
		}
	}
}

func (e *eventEngine) broadcaster(ev *event.Event) {
	e.mu.RLock()
	subs, exists := e.events[ev.Name]
	e.mu.RUnlock()

	if !exists {
		e.Logger.Warn("event not registered, check your event handler",
			zap.String("event", string(ev.Name)),
		)
		return
	}

	// if an event already exists, find the subscribers to that event and broadcast to each of their addressCh.
	for i, addressCh := range subs.addressChs {
		if addressCh == nil {
			e.Logger.Warn("subscriber addressCh is nil, check this event handler to make sure it has been initialized",
				zap.String("subscriber", string(subs.names[i])),
			)
			continue
		}

		if !subs.lossy[i] {
			addressCh <- ev
			continue
		}

		select {
		case addressCh <- ev:
		default:
			e.Logger.Warn("subscriber addressCh is full, dropping event",
				zap.String("subscriber", string(subs.names[i])),
				zap.String("event", string(ev.Name)),
				zap.String("event_id", ev.ID.String()),
			)
		}
	}
}

// RegisterEvents adds all events a publisher can publish to, to the [eventEngine].
//
// IMPORTANT: Register an event before you try to publish or subscribe to it.
func (e *eventEngine) RegisterEvents(eventNames ...event.EventName) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, eventName := range eventNames {
		if _, exists := e.events[eventName]; exists {
			continue
		}

		e.events[eventName] = &subscribers{}
	}

	e.Logger.Debug("registered events", zap.Any("events", eventNames))
}

func (e *eventEngine) Subscribe(toEventName event.EventName, newSubscriber *event.Subscriber) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	subs, ok := e.events[toEventName]
	if !ok {
		return fmt.Errorf(
			"event '%v' not found. make sure the publishing service called 'RegisterEvents' for it before subscribing",
			toEventName,
		)
	}

	// copy on write so a concurrent broadcaster keeps iterating its own snapshot
	e.events[toEventName] = &subscribers{
		names:      append(append([]event.SubscriberName(nil), subs.names...), newSubscriber.Name),
		addressChs: append(append([]chan<- *event.Event(nil), subs.addressChs...), newSubscriber.AddressCh),
		lossy:      append(append([]bool(nil), subs.lossy...), newSubscriber.DropWhenFull),
	}

	return nil
}

func (e *eventEngine) Publish(ev *event.Event) error {
	e.mu.RLock()
	_, exists := e.events[ev.Name]
	e.mu.RUnlock()

	if !exists {
		return fmt.Errorf(
			"event %v not found. check the service which is to publish the event to make sure they called the 'RegisterEvents()'",
			ev.Name,
		)
	}

	e.stopMu.RLock()
	defer e.stopMu.RUnlock()

	if e.stopped {
		return ErrEngineStopped
	}

	select {
	case <-e.DoneCh:
		return ErrEngineStopped
	default:
	}

	select {
	case e.eventEngineCh <- ev:
		return nil
	case <-e.DoneCh:
		return ErrEngineStopped
	}
}

func (e *eventEngine) shutdownSubscribersAddressCh() {
	e.mu.Lock()
	defer e.mu.Unlock()

	// a subscriber listening to several events shares one addressCh
	closed := make(map[chan<- *event.Event]struct{})
	for _, subs := range e.events {
		for _, addressCh := range subs.addressChs {
			if addressCh == nil {
				continue
			}
			if _, done := closed[addressCh]; done {
				continue
			}
			close(addressCh)
			closed[addressCh] = struct{}{}
		}
	}
}
