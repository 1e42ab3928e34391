package view

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sync"

	"github.com/gorilla/mux"
	"github.com/kampung/agustusan/internal/event_bus"
	"github.com/kampung/agustusan/internal/rest"
	"github.com/kampung/agustusan/pkg/collection"
	"github.com/kampung/agustusan/pkg/notice"
	log "github.com/sirupsen/logrus"
)

const (
	cancelledMessage     = "Penghapusan dibatalkan."
	notFoundMessage      = "Data tidak ditemukan."
	deleteFailedMessage  = "Gagal menghapus data."
	unknownActionMessage = "Aksi tidak dikenal."
)

// RowTarget is the collection behind the rows of one page.
type RowTarget struct {
	Delete func(ctx context.Context, id string, confirm Confirmation) error
	// Deleted is the notice shown after a successful delete.
	Deleted string
}

// RowDispatcher serves POST /p/{page}/rows/{id}. The action form field
// selects what happens: edit reopens the page with the record in its form,
// delete removes the record when the confirmed field is "true".
type RowDispatcher struct {
	mu       sync.RWMutex
	targets  map[string]RowTarget
	eventBus *event_bus.EventBus
}

func NewRowDispatcher(eventBus *event_bus.EventBus) *RowDispatcher {
	return &RowDispatcher{targets: map[string]RowTarget{}, eventBus: eventBus}
}

func (d *RowDispatcher) Register(page string, target RowTarget) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.targets[page] = target
}

func PagePath(page string) string {
	return "/p/" + url.PathEscape(page)
}

func EditPath(page, id string) string {
	return PagePath(page) + "?" + url.Values{"edit": {id}}.Encode()
}

func (d *RowDispatcher) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	page, id := vars["page"], vars["id"]
	ctx := r.Context()

	d.mu.RLock()
	target, ok := d.targets[page]
	d.mu.RUnlock()
	if !ok {
		http.NotFound(w, r)
		return
	}

	action, err := ParseAction(r.PostFormValue("action"))
	if err != nil {
		log.Warnf("rejected row action on %s/%s: %v", page, id, err)
		notice.Error(ctx, d.eventBus, unknownActionMessage)
		rest.SeeOther(w, r, PagePath(page))
		return
	}

	switch action {
	case ActionEdit:
		rest.SeeOther(w, r, EditPath(page, id))
	case ActionDelete:
		confirm := Confirmed(r.PostFormValue("confirmed") == "true")
		err := target.Delete(ctx, id, confirm)
		switch {
		case err == nil:
			notice.Success(ctx, d.eventBus, target.Deleted)
		case errors.Is(err, ErrNotConfirmed):
			notice.Info(ctx, d.eventBus, cancelledMessage)
		case errors.Is(err, collection.ErrNotFound):
			notice.Error(ctx, d.eventBus, notFoundMessage)
		default:
			log.Errorf("failed to delete %s/%s: %v", page, id, err)
			notice.Error(ctx, d.eventBus, deleteFailedMessage)
		}
		rest.SeeOther(w, r, PagePath(page))
	}
}
