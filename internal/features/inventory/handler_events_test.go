package inventory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sowmyavarshini/Inventory-Management-System/internal/eventengine"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/eventengine/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeRecorder struct {
	mu        sync.Mutex
	movements []*StockMovement
	fail      bool
}

func (r *fakeRecorder) recordMovement(ctx context.Context, movement *StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fail {
		return errors.New("journal unavailable")
	}
	r.movements = append(r.movements, movement)
	return nil
}

func startJournal(t *testing.T, rec *fakeRecorder, logger *zap.Logger) (eventengine.SubscribeRegisterPublisher, func()) {
	t.Helper()

	doneCh := make(chan struct{})
	internalSrvWG := &sync.WaitGroup{}

	engine, err := eventengine.NewEventEngine(&eventengine.EventEngineConfig{
		DoneCh:        doneCh,
		InternalSrvWG: internalSrvWG,
		Logger:        zap.NewNop(),
	})
	require.NoError(t, err)

	_, err = NewEventHandler(&HandlerEventsConfig{
		InternalSrvWG: internalSrvWG,
		EventEngine:   engine,
		Service:       rec,
		Logger:        logger,
	})
	require.NoError(t, err)

	return engine, func() {
		close(doneCh)
		internalSrvWG.Wait()
	}
}

func TestHandlerEvent_recordsStockAdjustments(t *testing.T) {
	rec := &fakeRecorder{}
	engine, stop := startJournal(t, rec, zap.NewNop())

	require.NoError(t, engine.Publish(event.New(&event.StockAdjustedEvent{
		ProductID:  1,
		OrderID:    4,
		Delta:      -3,
		StockAfter: 7,
		Reason:     event.StockReasonOrderCreated,
	})))
	require.NoError(t, engine.Publish(event.New(&event.StockAdjustedEvent{
		ProductID:  1,
		Delta:      5,
		StockAfter: 12,
		Reason:     event.StockReasonProductUpdated,
	})))

	stop()

	require.Len(t, rec.movements, 2)

	first := rec.movements[0]
	require.NotNil(t, first.OrderID)
	assert.Equal(t, int64(4), *first.OrderID)
	assert.Equal(t, -3, first.Delta)
	assert.Equal(t, 7, first.StockAfter)
	assert.Equal(t, event.StockReasonOrderCreated, first.Reason)

	second := rec.movements[1]
	assert.Nil(t, second.OrderID)
	assert.Equal(t, 5, second.Delta)
	assert.Equal(t, event.StockReasonProductUpdated, second.Reason)
}

func TestHandlerEvent_logsFailedRecords(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	rec := &fakeRecorder{fail: true}
	engine, stop := startJournal(t, rec, zap.New(core))

	require.NoError(t, engine.Publish(event.New(&event.StockAdjustedEvent{ProductID: 9, Delta: -1})))

	stop()

	entries := logs.FilterMessage("failed to record stock movement").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(9), entries[0].ContextMap()["product_id"])
}

func TestNewEventHandler_requiresDependencies(t *testing.T) {
	_, err := NewEventHandler(&HandlerEventsConfig{Logger: zap.NewNop()})
	assert.Error(t, err)
}
