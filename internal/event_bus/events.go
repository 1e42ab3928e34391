package event_bus

const (
	CollectionChangedEvent EventType = "collection.changed"
	SaveFailedEvent        EventType = "storage.save_failed"
	NoticeEvent            EventType = "notice"
)

// CollectionChanged is published after a collection was mutated and written back.
type CollectionChanged struct {
	Collection string
	// Op is one of "create", "update", "delete", "replace".
	Op  string
	Ids []string
}

// SaveFailed is published when a collection could not be written to the backend.
// The in-memory state is kept regardless.
type SaveFailed struct {
	Key string
	Err error
}

type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
	NoticeInfo    NoticeLevel = "info"
)

// Notice is a user-visible toast message.
type Notice struct {
	Level   NoticeLevel
	Message string
}
