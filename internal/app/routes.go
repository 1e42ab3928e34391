package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/kampung/agustusan/web"
)

// RegisterRoutes registers the screens, the form endpoints and the API.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {
	assets := http.FileServerFS(web.Assets)

	// Screens and assets
	r.HandleFunc("/", deps.ServeScreen).Methods("GET")
	r.HandleFunc("/p/{page}", deps.ServeScreen).Methods("GET")
	r.PathPrefix("/pages/").Handler(assets).Methods("GET")
	r.PathPrefix("/static/").Handler(assets).Methods("GET")

	// Keuangan
	r.HandleFunc("/p/keuangan/transactions", deps.FinanceHandler.Save).Methods("POST")
	r.HandleFunc("/p/keuangan/import", deps.FinanceHandler.Import).Methods("POST")

	// Lomba
	r.HandleFunc("/p/lomba/contests", deps.ContestHandler.Save).Methods("POST")

	// Doorprize
	r.HandleFunc("/p/doorprize/doorprizes", deps.DoorprizeHandler.Save).Methods("POST")
	r.HandleFunc("/p/doorprize/generate", deps.DoorprizeHandler.Generate).Methods("POST")
	r.HandleFunc("/p/doorprize/draw", deps.DoorprizeHandler.Draw).Methods("POST")
	r.HandleFunc("/p/doorprize/draw/{id}/reveal", deps.DoorprizeHandler.Reveal).Methods("GET")

	// Jadwal
	r.HandleFunc("/p/jadwal/schedules", deps.ScheduleHandler.Save).Methods("POST")

	// Row actions of every page
	r.HandleFunc("/p/{page}/rows/{id}", deps.Rows.Handle).Methods("POST")

	// Remote transaction source
	if deps.RemoteHandler != nil {
		r.HandleFunc("/api/transactions", deps.RemoteHandler.GetAll).Methods("GET")
	}
}
