package business

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/models"
	"gorm.io/gorm"

	log "github.com/sirupsen/logrus"
)

// EventSink receives every settlement event once its unit of work has
// committed. Sinks are best-effort fan-out (queue publisher, websocket hub);
// the ledger row is the source of truth.
type EventSink func(event models.SettlementEvent)

var (
	eventSinksMu sync.RWMutex
	eventSinks   []EventSink
)

// RegisterEventSink attaches a sink to the settlement event stream.
func RegisterEventSink(sink EventSink) {
	eventSinksMu.Lock()
	defer eventSinksMu.Unlock()
	eventSinks = append(eventSinks, sink)
}

type eventBufferKey struct{}

// transact runs fn inside one transaction and holds settlement events back
// until the commit succeeds. Events written in a rolled-back transaction
// never reach the sinks.
func transact(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	var buffered []models.SettlementEvent
	err := db.Transaction(func(tx *gorm.DB) error {
		ctx := context.WithValue(tx.Statement.Context, eventBufferKey{}, &buffered)
		return fn(tx.WithContext(ctx))
	})
	if err != nil {
		return err
	}
	for i := range buffered {
		dispatchEvent(buffered[i])
	}
	return nil
}

func dispatchEvent(event models.SettlementEvent) {
	switch event.Level {
	case "warning":
		log.Warnf("settlement event %s for %s: %s", event.Kind, event.Address, event.Payload)
	default:
		log.Infof("settlement event %s for %s", event.Kind, event.Address)
	}

	eventSinksMu.RLock()
	sinks := eventSinks
	eventSinksMu.RUnlock()
	for _, sink := range sinks {
		sink(event)
	}
}

func recordEvent(tx *gorm.DB, kind, level, address string, payload map[string]interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	event := models.SettlementEvent{
		Kind:    kind,
		Level:   level,
		Address: address,
		Payload: string(body),
	}
	if err := tx.Create(&event).Error; err != nil {
		return err
	}

	queueOrDispatch(tx.Statement.Context, event)
	return nil
}

// queueOrDispatch buffers the event when called inside a transact unit of
// work; otherwise it fans out immediately.
func queueOrDispatch(ctx context.Context, event models.SettlementEvent) {
	if buf, ok := ctx.Value(eventBufferKey{}).(*[]models.SettlementEvent); ok {
		*buf = append(*buf, event)
		return
	}
	dispatchEvent(event)
}

// RecentEvents returns the newest events, newest first.
func RecentEvents(db *gorm.DB, limit int) ([]models.SettlementEvent, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var events []models.SettlementEvent
	err := db.Order("id DESC").Limit(limit).Find(&events).Error
	return events, err
}
