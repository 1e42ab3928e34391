package notice

import (
	"context"
	"sync"

	"github.com/kampung/agustusan/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

const SaveFailedMessage = "Penyimpanan data gagal. Mungkin memori penuh."

// Board collects notices published on the event bus until the next screen
// is rendered and drains them as toasts.
type Board struct {
	mu      sync.Mutex
	pending []event_bus.Notice
}

func NewBoard(eventBus *event_bus.EventBus) *Board {
	b := &Board{}
	if eventBus == nil {
		return b
	}
	event_bus.SubscribeTyped(eventBus, event_bus.NoticeEvent, func(e event_bus.EventT[event_bus.Notice]) error {
		b.add(e.Data)
		return nil
	})
	event_bus.SubscribeTyped(eventBus, event_bus.SaveFailedEvent, func(e event_bus.EventT[event_bus.SaveFailed]) error {
		b.add(event_bus.Notice{Level: event_bus.NoticeError, Message: SaveFailedMessage})
		return nil
	})
	return b
}

func (b *Board) add(n event_bus.Notice) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = append(b.pending, n)
}

// Drain returns the pending notices in publication order and clears them.
func (b *Board) Drain() []event_bus.Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	drained := b.pending
	b.pending = nil
	return drained
}

// Publish sends a notice through the event bus.
func Publish(ctx context.Context, eventBus *event_bus.EventBus, level event_bus.NoticeLevel, message string) {
	if eventBus == nil {
		return
	}
	err := eventBus.Publish(event_bus.NewEvent(ctx, event_bus.NoticeEvent, event_bus.Notice{Level: level, Message: message}))
	if err != nil {
		log.Errorf("failed to publish notice %q: %v", message, err)
	}
}

func Success(ctx context.Context, eventBus *event_bus.EventBus, message string) {
	Publish(ctx, eventBus, event_bus.NoticeSuccess, message)
}

func Error(ctx context.Context, eventBus *event_bus.EventBus, message string) {
	Publish(ctx, eventBus, event_bus.NoticeError, message)
}

func Info(ctx context.Context, eventBus *event_bus.EventBus, message string) {
	Publish(ctx, eventBus, event_bus.NoticeInfo, message)
}
