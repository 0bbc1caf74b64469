package eventengine

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sowmyavarshini/Inventory-Management-System/internal/eventengine/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func Test_eventEngine(t *testing.T) {
	doneCh := make(chan struct{})
	internalSrvWG := sync.WaitGroup{}

	eventEngine := newEventEngine(&EventEngineConfig{
		DoneCh:        doneCh,
		InternalSrvWG: &internalSrvWG,
		Logger:        zap.NewNop(),
		BufferSize:    1,
	})

	internalSrvWG.Add(1)
	go eventEngine.listen() // go routine 1

	eventEngine.RegisterEvents(event.StockAdjustedEventName)

	// register two subscribers for the same event.
	subscriberAddressCh1 := make(chan *event.Event, 2)
	require.NoError(t, eventEngine.Subscribe(
		event.StockAdjustedEventName,
		&event.Subscriber{
			Name:      "test_subscriber_name.1",
			AddressCh: subscriberAddressCh1,
		},
	))

	subscriberAddressCh2 := make(chan *event.Event, 2)
	require.NoError(t, eventEngine.Subscribe(
		event.StockAdjustedEventName,
		&event.Subscriber{
			Name:      "test_subscriber_name.2",
			AddressCh: subscriberAddressCh2,
		},
	))

	var received1, received2 []int
	readerWG := sync.WaitGroup{}
	readerWG.Add(2)
	go func() {
		defer readerWG.Done()
		for ev := range subscriberAddressCh1 {
			received1 = append(received1, ev.Payload.(*event.StockAdjustedEvent).Delta)
		}
	}() // go routine 2
	go func() {
		defer readerWG.Done()
		for ev := range subscriberAddressCh2 {
			received2 = append(received2, ev.Payload.(*event.StockAdjustedEvent).Delta)
		}
	}() // go routine 3

	// event publisher || main routine
	for i := range 5 {
		require.NoError(t, eventEngine.Publish(
			event.New(&event.StockAdjustedEvent{ProductID: 1, Delta: -(i + 1)}),
		))
	}

	close(doneCh)
	internalSrvWG.Wait()
	readerWG.Wait()

	want := []int{-1, -2, -3, -4, -5}
	assert.Equal(t, want, received1)
	assert.Equal(t, want, received2)
}

func Test_eventEngine_PublishUnregistered(t *testing.T) {
	eventEngine := newEventEngine(&EventEngineConfig{
		DoneCh:        make(chan struct{}),
		InternalSrvWG: &sync.WaitGroup{},
		Logger:        zap.NewNop(),
		BufferSize:    1,
	})

	err := eventEngine.Publish(event.New(&event.OrderCreatedEvent{OrderID: 1}))
	assert.Error(t, err)

	err = eventEngine.Subscribe(event.OrderCreatedEventName, &event.Subscriber{Name: "x"})
	assert.Error(t, err)
}

func Test_eventEngine_PublishAfterShutdown(t *testing.T) {
	doneCh := make(chan struct{})
	eventEngine := newEventEngine(&EventEngineConfig{
		DoneCh:        doneCh,
		InternalSrvWG: &sync.WaitGroup{},
		Logger:        zap.NewNop(),
		BufferSize:    1,
	})
	eventEngine.RegisterEvents(event.OrderUpdatedEventName)

	close(doneCh)

	err := eventEngine.Publish(event.New(&event.OrderUpdatedEvent{OrderID: 1}))
	assert.ErrorIs(t, err, ErrEngineStopped)
}

func Test_eventEngine_SharedAddressChClosedOnce(t *testing.T) {
	doneCh := make(chan struct{})
	internalSrvWG := sync.WaitGroup{}
	eventEngine := newEventEngine(&EventEngineConfig{
		DoneCh:        doneCh,
		InternalSrvWG: &internalSrvWG,
		Logger:        zap.NewNop(),
		BufferSize:    1,
	})
	eventEngine.RegisterEvents(event.OrderCreatedEventName, event.OrderUpdatedEventName)

	addressCh := make(chan *event.Event, 1)
	sub := &event.Subscriber{Name: "relay", AddressCh: addressCh}
	require.NoError(t, eventEngine.Subscribe(event.OrderCreatedEventName, sub))
	require.NoError(t, eventEngine.Subscribe(event.OrderUpdatedEventName, sub))

	internalSrvWG.Add(1)
	go eventEngine.listen()

	close(doneCh)
	internalSrvWG.Wait()

	_, open := <-addressCh
	assert.False(t, open)
}

func Test_eventEngine_DropWhenFullSubscriberNeverBlocks(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	doneCh := make(chan struct{})
	internalSrvWG := sync.WaitGroup{}
	eventEngine := newEventEngine(&EventEngineConfig{
		DoneCh:        doneCh,
		InternalSrvWG: &internalSrvWG,
		Logger:        zap.New(core),
		BufferSize:    1,
	})
	eventEngine.RegisterEvents(event.StockAdjustedEventName)

	// nobody reads this channel, like a subscriber stuck on a slow broker
	stalledCh := make(chan *event.Event, 1)
	require.NoError(t, eventEngine.Subscribe(event.StockAdjustedEventName, &event.Subscriber{
		Name:         "stalled",
		AddressCh:    stalledCh,
		DropWhenFull: true,
	}))

	internalSrvWG.Add(1)
	go eventEngine.listen()

	published := make(chan struct{})
	go func() {
		defer close(published)
		for i := range 100 {
			assert.NoError(t, eventEngine.Publish(event.New(&event.StockAdjustedEvent{ProductID: 1, Delta: -(i + 1)})))
		}
	}()

	select {
	case <-published:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked behind a full subscriber")
	}

	close(doneCh)
	internalSrvWG.Wait()

	var received int
	for range stalledCh {
		received++
	}
	assert.Equal(t, 1, received)

	dropped := logs.FilterMessage("subscriber addressCh is full, dropping event").All()
	assert.Len(t, dropped, 99)
	assert.NotEmpty(t, dropped[0].ContextMap()["event_id"])
}

func Test_eventEngine_AcceptedEventsSurviveShutdown(t *testing.T) {
	doneCh := make(chan struct{})
	internalSrvWG := sync.WaitGroup{}
	eventEngine := newEventEngine(&EventEngineConfig{
		DoneCh:        doneCh,
		InternalSrvWG: &internalSrvWG,
		Logger:        zap.NewNop(),
		BufferSize:    4,
	})
	eventEngine.RegisterEvents(event.OrderCreatedEventName)

	addressCh := make(chan *event.Event, 8)
	require.NoError(t, eventEngine.Subscribe(event.OrderCreatedEventName, &event.Subscriber{
		Name:      "journal",
		AddressCh: addressCh,
	}))

	var received int64
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		for range addressCh {
			atomic.AddInt64(&received, 1)
		}
	}()

	internalSrvWG.Add(1)
	go eventEngine.listen()

	var accepted int64
	publishersWG := sync.WaitGroup{}
	for range 8 {
		publishersWG.Add(1)
		go func() {
			defer publishersWG.Done()
			for {
				err := eventEngine.Publish(event.New(&event.OrderCreatedEvent{OrderID: 1}))
				if errors.Is(err, ErrEngineStopped) {
					return
				}
				if assert.NoError(t, err) {
					atomic.AddInt64(&accepted, 1)
				}
			}
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(doneCh)
	publishersWG.Wait()
	internalSrvWG.Wait()
	<-readerDone

	assert.Positive(t, accepted)
	assert.Equal(t, accepted, received)
}
