package business

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestEventsHeldBackInsideUnitOfWork(t *testing.T) {
	var delivered int32
	RegisterEventSink(func(models.SettlementEvent) { atomic.AddInt32(&delivered, 1) })

	var buffered []models.SettlementEvent
	ctx := context.WithValue(context.Background(), eventBufferKey{}, &buffered)

	queueOrDispatch(ctx, models.SettlementEvent{Kind: models.EventReferralPaid, Level: "info"})
	queueOrDispatch(ctx, models.SettlementEvent{Kind: models.EventPurchaseCompleted, Level: "info"})

	// A rollback would drop the buffer here; nothing may have reached the
	// sinks yet either way.
	assert.Len(t, buffered, 2)
	assert.EqualValues(t, 0, atomic.LoadInt32(&delivered))

	for i := range buffered {
		dispatchEvent(buffered[i])
	}
	assert.EqualValues(t, 2, atomic.LoadInt32(&delivered))
}

func TestEventsDispatchImmediatelyOutsideUnitOfWork(t *testing.T) {
	var delivered int32
	RegisterEventSink(func(models.SettlementEvent) { atomic.AddInt32(&delivered, 1) })

	queueOrDispatch(context.Background(), models.SettlementEvent{Kind: models.EventStakeCreated, Level: "info"})
	assert.EqualValues(t, 1, atomic.LoadInt32(&delivered))
}
