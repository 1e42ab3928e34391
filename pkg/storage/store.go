package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kampung/agustusan/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

// Store reads and writes named collections as JSON documents on a Backend.
// Reads never fail: an absent or undecodable value yields the caller's
// default. Writes never fail either; errors are logged and published as
// event_bus.SaveFailed so the caller's in-memory state stays authoritative.
type Store struct {
	backend  Backend
	eventBus *event_bus.EventBus
}

func NewStore(backend Backend, eventBus *event_bus.EventBus) *Store {
	return &Store{backend: backend, eventBus: eventBus}
}

// Load decodes the value stored under key into a T, returning def when the
// key is absent or its value does not decode.
func Load[T any](ctx context.Context, s *Store, key string, def T) T {
	data, err := s.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Warnf("could not read %q, using default: %v", key, err)
		}
		return def
	}
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return def
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		log.Warnf("stored value for %q is corrupt, using default: %v", key, err)
		return def
	}
	return value
}

// Save overwrites the value stored under key.
func (s *Store) Save(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		s.reportFailure(ctx, key, fmt.Errorf("could not encode %q: %w", key, err))
		return
	}
	if err := s.backend.Put(ctx, key, data); err != nil {
		s.reportFailure(ctx, key, err)
		return
	}
	log.Debugf("saved %q (%d bytes)", key, len(data))
}

// Raw returns the stored document for key without decoding it.
func (s *Store) Raw(ctx context.Context, key string) (json.RawMessage, bool) {
	data, err := s.backend.Get(ctx, key)
	if err != nil || !json.Valid(data) {
		return nil, false
	}
	return data, true
}

func (s *Store) Keys(ctx context.Context) ([]string, error) {
	return s.backend.Keys(ctx)
}

func (s *Store) reportFailure(ctx context.Context, key string, err error) {
	log.Errorf("error writing %q to storage: %v", key, err)
	if s.eventBus == nil {
		return
	}
	pubErr := s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.SaveFailedEvent, event_bus.SaveFailed{Key: key, Err: err}))
	if pubErr != nil {
		log.Errorf("failed to publish save failure for %q: %v", key, pubErr)
	}
}
