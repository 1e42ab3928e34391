package app

import (
	"github.com/kampung/agustusan/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

// logCollectionChanges traces every persisted mutation at debug level.
func logCollectionChanges(bus *event_bus.EventBus) (unsubscribe func()) {
	return event_bus.SubscribeTyped(bus, event_bus.CollectionChangedEvent, func(e event_bus.EventT[event_bus.CollectionChanged]) error {
		log.WithFields(log.Fields{
			"collection": e.Data.Collection,
			"op":         e.Data.Op,
			"ids":        e.Data.Ids,
		}).Debug("collection changed")
		return nil
	})
}
