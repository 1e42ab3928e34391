package doorprize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/kampung/agustusan/internal/event_bus"
	"github.com/kampung/agustusan/internal/rest"
	"github.com/kampung/agustusan/pkg/notice"
	"github.com/kampung/agustusan/pkg/view"
	log "github.com/sirupsen/logrus"
)

const Page = "doorprize"

type Handler struct {
	service  Service
	eventBus *event_bus.EventBus
	animator Animator
}

func NewHandler(service Service, eventBus *event_bus.EventBus, animator Animator) *Handler {
	return &Handler{service: service, eventBus: eventBus, animator: animator}
}

// PageData renders the doorprize page. edit opens a coupon in the form and
// draw marks the coupon whose reveal the page should play.
func (h *Handler) PageData(ctx context.Context, params url.Values) (any, error) {
	var editing *Doorprize
	editId := params.Get("edit")
	drawId := params.Get("draw")
	if editId == "" {
		editId = drawId
	}
	if editId != "" {
		if d, err := h.service.Get(ctx, editId); err == nil {
			editing = &d
		}
	}
	return Render(h.service.GetAll(ctx), h.service.Prizes(), editing, drawId), nil
}

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := strings.TrimSpace(r.PostFormValue("id"))
	input := Input{
		Number: r.PostFormValue("number"),
		Status: r.PostFormValue("status"),
		Winner: r.PostFormValue("winner"),
		Detail: r.PostFormValue("detail"),
	}

	var err error
	if id == "" {
		_, err = h.service.Create(ctx, input)
	} else {
		_, err = h.service.Update(ctx, id, input)
	}
	if err != nil {
		notice.Error(ctx, h.eventBus, h.failureMessage(err, strings.TrimSpace(input.Number)))
		if id != "" && !errors.Is(err, ErrDoorprizeNotFound) {
			rest.SeeOther(w, r, view.EditPath(Page, id))
			return
		}
		rest.SeeOther(w, r, view.PagePath(Page))
		return
	}

	if id == "" {
		notice.Success(ctx, h.eventBus, "Doorprize berhasil ditambahkan!")
	} else {
		notice.Success(ctx, h.eventBus, "Doorprize berhasil diperbarui!")
	}
	rest.SeeOther(w, r, view.PagePath(Page))
}

func (h *Handler) failureMessage(err error, number string) string {
	switch {
	case errors.Is(err, ErrDuplicateNumber):
		return fmt.Sprintf("Nomor kupon %s sudah ada.", number)
	case errors.Is(err, ErrInvalidTransition):
		return "Kupon yang sudah terambil tidak bisa dikembalikan menjadi tersedia."
	case errors.Is(err, ErrDoorprizeNotFound):
		return "Doorprize tidak ditemukan."
	case errors.Is(err, view.ErrValidation):
		return view.UserMessage(err, invalidInputMessage)
	default:
		log.Errorf("failed to save doorprize: %v", err)
		return "Gagal menyimpan doorprize."
	}
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	count, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("count")))
	if err != nil {
		count = 0
	}
	start, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("start")))
	if err != nil {
		start = 0
	}

	result, err := h.service.Generate(ctx, count, start)
	switch {
	case errors.Is(err, ErrInvalidCount):
		notice.Error(ctx, h.eventBus, "Jumlah kupon tidak valid.")
	case errors.Is(err, ErrInvalidStart):
		notice.Error(ctx, h.eventBus, "Nomor awal kupon tidak valid.")
	case err != nil:
		log.Errorf("failed to generate doorprizes: %v", err)
		notice.Error(ctx, h.eventBus, "Gagal membuat kupon.")
	case len(result.Created) == 0:
		notice.Info(ctx, h.eventBus, "Tidak ada kupon baru yang digenerate (nomor sudah ada atau jumlah 0).")
	default:
		notice.Success(ctx, h.eventBus, fmt.Sprintf("%d kupon berhasil digenerate!", len(result.Created)))
	}
	rest.SeeOther(w, r, view.PagePath(Page))
}

// Draw decides the winner immediately and sends the browser to the page
// that plays the reveal animation for it.
func (h *Handler) Draw(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	result, err := h.service.Draw(ctx)
	if err != nil {
		if errors.Is(err, ErrNothingToDraw) {
			notice.Error(ctx, h.eventBus, "Tidak ada kupon yang tersedia untuk diundi.")
		} else {
			log.Errorf("failed to draw doorprize: %v", err)
			notice.Error(ctx, h.eventBus, "Gagal mengundi kupon.")
		}
		rest.SeeOther(w, r, view.PagePath(Page))
		return
	}
	notice.Info(ctx, h.eventBus, "Mengundi kupon...")
	rest.SeeOther(w, r, view.PagePath(Page)+"?"+url.Values{"draw": {result.Doorprize.Id}}.Encode())
}

type revealPayload struct {
	Id      string `json:"id"`
	Number  string `json:"number"`
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// Reveal streams the draw animation for an already drawn coupon as
// Server-Sent Events: highlight events with a number, then one reveal event.
func (h *Handler) Reveal(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	drawn, err := h.service.Get(r.Context(), id)
	if err != nil || drawn.Status != StatusTaken {
		http.Error(w, "doorprize not found", http.StatusNotFound)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	var numbers []string
	for _, d := range h.service.GetAll(r.Context()) {
		numbers = append(numbers, d.Number)
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for frame := range h.animator.Animate(r.Context(), numbers, drawn) {
		data := frame.Number
		if frame.Kind == FrameReveal {
			payload, err := json.Marshal(revealPayload{
				Id:      frame.Result.Id,
				Number:  frame.Result.Number,
				Detail:  frame.Result.Detail,
				Message: RevealMessage(frame.Result),
			})
			if err != nil {
				log.Errorf("failed to encode reveal: %v", err)
				return
			}
			data = string(payload)
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", frame.Kind, data); err != nil {
			log.Debugf("reveal stream closed: %v", err)
			return
		}
		flusher.Flush()
	}
}

func (h *Handler) RowTarget() view.RowTarget {
	return view.RowTarget{Delete: h.service.Delete, Deleted: "Doorprize berhasil dihapus!"}
}
