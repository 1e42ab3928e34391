package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/kampung/agustusan/internal/event_bus"
	"github.com/kampung/agustusan/pkg/router"
	log "github.com/sirupsen/logrus"
)

type layoutData struct {
	Title   string
	Screen  router.Screen
	Notices []event_bus.Notice
}

func screenTitle(screen router.Screen) string {
	for _, item := range screen.Nav {
		if item.Active {
			return item.Label
		}
	}
	return screen.Page
}

// ServeScreen navigates to the requested page and renders it inside the
// layout together with the pending notices.
func (d *Dependencies) ServeScreen(w http.ResponseWriter, r *http.Request) {
	screen := d.Pages.Navigate(r.Context(), mux.Vars(r)["page"], r.URL.Query())
	data := layoutData{
		Title:   screenTitle(screen),
		Screen:  screen,
		Notices: d.Board.Drain(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := d.Layout.Execute(w, data); err != nil {
		log.Errorf("failed to render layout for %s: %v", screen.Page, err)
	}
}
