package contest

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

const Page = "lomba"

type Handler struct {
	service  Service
	eventBus *event_bus.EventBus
	clock    utils.Clock
}

func NewHandler(service Service, eventBus *event_bus.EventBus, clock utils.Clock) *Handler {
	return &Handler{service: service, eventBus: eventBus, clock: clock}
}

func (h *Handler) PageData(ctx context.Context, params url.Values) (any, error) {
	var editing *Contest
	if id := params.Get("edit"); id != "" {
		if c, err := h.service.Get(ctx, id); err == nil {
			editing = &c
		}
	}
	return Render(h.service.GetAll(ctx), h.clock.Now(), editing), nil
}

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := strings.TrimSpace(r.PostFormValue("id"))
	input := Input{
		Name:    r.PostFormValue("name"),
		Details: r.PostFormValue("details"),
		Date:    r.PostFormValue("date"),
		Time:    r.PostFormValue("time"),
		Prize:   r.PostFormValue("prize"),
		Status:  r.PostFormValue("status"),
		Winner:  r.PostFormValue("winner"),
	}

	var err error
	if id == "" {
		_, err = h.service.Create(ctx, input)
	} else {
		_, err = h.service.Update(ctx, id, input)
	}
	if err != nil {
		if errors.Is(err, ErrContestNotFound) {
			notice.Error(ctx, h.eventBus, "Lomba tidak ditemukan.")
			rest.SeeOther(w, r, view.PagePath(Page))
			return
		}
		if !errors.Is(err, view.ErrValidation) {
			log.Errorf("failed to save contest: %v", err)
		}
		notice.Error(ctx, h.eventBus, view.UserMessage(err, "Gagal menyimpan lomba."))
		if id != "" {
			rest.SeeOther(w, r, view.EditPath(Page, id))
			return
		}
		rest.SeeOther(w, r, view.PagePath(Page))
		return
	}

	if id == "" {
		notice.Success(ctx, h.eventBus, "Lomba berhasil ditambahkan!")
	} else {
		notice.Success(ctx, h.eventBus, "Lomba berhasil diperbarui!")
	}
	rest.SeeOther(w, r, view.PagePath(Page))
}

func (h *Handler) RowTarget() view.RowTarget {
	return view.RowTarget{Delete: h.service.Delete, Deleted: "Lomba berhasil dihapus!"}
}
