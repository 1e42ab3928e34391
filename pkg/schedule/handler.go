package schedule

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/kampung/agustusan/internal/event_bus"
	"github.com/kampung/agustusan/internal/rest"
	"github.com/kampung/agustusan/internal/utils"
	"github.com/kampung/agustusan/pkg/notice"
	"github.com/kampung/agustusan/pkg/view"
	log "github.com/sirupsen/logrus"
)

const Page = "jadwal"

type Handler struct {
	service  Service
	eventBus *event_bus.EventBus
	clock    utils.Clock
}

func NewHandler(service Service, eventBus *event_bus.EventBus, clock utils.Clock) *Handler {
	return &Handler{service: service, eventBus: eventBus, clock: clock}
}

func (h *Handler) PageData(ctx context.Context, params url.Values) (any, error) {
	var editing *Schedule
	if id := params.Get("edit"); id != "" {
		if s, err := h.service.Get(ctx, id); err == nil {
			editing = &s
		}
	}
	return Render(h.service.GetAll(ctx), h.clock.Now(), editing), nil
}

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := strings.TrimSpace(r.PostFormValue("id"))
	input := Input{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Date:        r.PostFormValue("date"),
		Time:        r.PostFormValue("time"),
		Location:    r.PostFormValue("location"),
	}

	var err error
	if id == "" {
		_, err = h.service.Create(ctx, input)
	} else {
		_, err = h.service.Update(ctx, id, input)
	}
	switch {
	case errors.Is(err, ErrScheduleNotFound):
		notice.Error(ctx, h.eventBus, "Jadwal tidak ditemukan.")
	case err != nil:
		if !errors.Is(err, view.ErrValidation) {
			log.Errorf("failed to save schedule: %v", err)
		}
		notice.Error(ctx, h.eventBus, view.UserMessage(err, "Gagal menyimpan jadwal."))
		if id != "" {
			rest.SeeOther(w, r, view.EditPath(Page, id))
			return
		}
	case id == "":
		notice.Success(ctx, h.eventBus, "Jadwal berhasil ditambahkan!")
	default:
		notice.Success(ctx, h.eventBus, "Jadwal berhasil diperbarui!")
	}
	rest.SeeOther(w, r, view.PagePath(Page))
}

func (h *Handler) RowTarget() view.RowTarget {
	return view.RowTarget{Delete: h.service.Delete, Deleted: "Jadwal berhasil dihapus!"}
}
