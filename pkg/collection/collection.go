package collection

import (
	"context"
	"errors"
	"sync"

	"github.com/kampung/agustusan/internal/event_bus"
	"github.com/kampung/agustusan/pkg/storage"
	log "github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("not found")

// Record is an entity held in a Collection.
type Record interface {
	RecordId() string
}

// Collection is an ordered in-memory set of records mirrored 1:1 into the
// store under a fixed key. Every successful mutation writes the whole
// collection back and publishes event_bus.CollectionChanged.
type Collection[T Record] struct {
	mu       sync.RWMutex
	key      string
	records  []T
	store    *storage.Store
	eventBus *event_bus.EventBus
}

// Load reads the collection stored under key. An absent or corrupt entry
// yields an empty collection.
func Load[T Record](ctx context.Context, key string, store *storage.Store, eventBus *event_bus.EventBus) *Collection[T] {
	records := storage.Load(ctx, store, key, []T{})
	log.Infof("loaded %d record(s) from %q", len(records), key)
	return &Collection[T]{key: key, records: records, store: store, eventBus: eventBus}
}

func (c *Collection[T]) Key() string {
	return c.key
}

// All returns a snapshot copy in insertion order.
func (c *Collection[T]) All() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append(make([]T, 0, len(c.records)), c.records...)
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

func (c *Collection[T]) Find(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, r := range c.records {
		if r.RecordId() == id {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// Mutate runs fn on a copy of the records while holding the write lock. When
// fn succeeds its result replaces the collection and is persisted; when it
// fails nothing changes. changed lists the affected ids for the event.
func (c *Collection[T]) Mutate(ctx context.Context, op string, fn func(records []T) (next []T, changed []string, err error)) error {
	c.mu.Lock()
	next, changed, err := fn(append(make([]T, 0, len(c.records)), c.records...))
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.records = next
	c.store.Save(ctx, c.key, next)
	c.mu.Unlock()

	c.publish(ctx, op, changed)
	return nil
}

// Append adds records at the end of the collection.
func (c *Collection[T]) Append(ctx context.Context, records ...T) error {
	return c.Mutate(ctx, "create", func(current []T) ([]T, []string, error) {
		ids := make([]string, 0, len(records))
		for _, r := range records {
			ids = append(ids, r.RecordId())
		}
		return append(current, records...), ids, nil
	})
}

// Update replaces the record with the given id by fn's result, keeping its
// position. It returns ErrNotFound when no record has that id.
func (c *Collection[T]) Update(ctx context.Context, id string, fn func(T) (T, error)) (T, error) {
	var updated T
	err := c.Mutate(ctx, "update", func(current []T) ([]T, []string, error) {
		for i, r := range current {
			if r.RecordId() != id {
				continue
			}
			next, err := fn(r)
			if err != nil {
				return nil, nil, err
			}
			current[i] = next
			updated = next
			return current, []string{id}, nil
		}
		return nil, nil, ErrNotFound
	})
	return updated, err
}

// Remove deletes the record with the given id. It returns ErrNotFound when
// no record has that id.
func (c *Collection[T]) Remove(ctx context.Context, id string) error {
	return c.Mutate(ctx, "delete", func(current []T) ([]T, []string, error) {
		for i, r := range current {
			if r.RecordId() == id {
				return append(current[:i], current[i+1:]...), []string{id}, nil
			}
		}
		return nil, nil, ErrNotFound
	})
}

func (c *Collection[T]) publish(ctx context.Context, op string, ids []string) {
	if c.eventBus == nil {
		return
	}
	err := c.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.CollectionChangedEvent, event_bus.CollectionChanged{
		Collection: c.key,
		Op:         op,
		Ids:        ids,
	}))
	if err != nil {
		log.Errorf("failed to publish change of %q: %v", c.key, err)
	}
}
