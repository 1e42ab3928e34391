package finance

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/kampung/agustusan/internal/event_bus"
	"github.com/kampung/agustusan/internal/rest"
	"github.com/kampung/agustusan/pkg/notice"
	"github.com/kampung/agustusan/pkg/view"
	log "github.com/sirupsen/logrus"
)

const Page = "keuangan"

type Handler struct {
	service  Service
	eventBus *event_bus.EventBus
	families int
}

func NewHandler(service Service, eventBus *event_bus.EventBus, families int) *Handler {
	return &Handler{service: service, eventBus: eventBus, families: families}
}

// PageData renders the keuangan page. The edit parameter opens a
// transaction in the form.
func (h *Handler) PageData(ctx context.Context, params url.Values) (any, error) {
	var editing *Transaction
	if id := params.Get("edit"); id != "" {
		t, err := h.service.Get(ctx, id)
		if err != nil {
			log.Debugf("transaction %s cannot be edited: %v", id, err)
		} else {
			editing = &t
		}
	}
	return Render(h.service.GetAll(ctx), h.families, editing), nil
}

// Save creates a transaction, or updates one when the form carries an id.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := strings.TrimSpace(r.PostFormValue("id"))
	input := Input{
		Type:        r.PostFormValue("type"),
		Description: r.PostFormValue("description"),
		Amount:      r.PostFormValue("amount"),
	}

	var err error
	if id == "" {
		_, err = h.service.Create(ctx, input)
	} else {
		_, err = h.service.Update(ctx, id, input)
	}
	if err != nil {
		notice.Error(ctx, h.eventBus, h.failureMessage(err))
		if id != "" && !errors.Is(err, ErrTransactionNotFound) {
			rest.SeeOther(w, r, view.EditPath(Page, id))
			return
		}
		rest.SeeOther(w, r, view.PagePath(Page))
		return
	}

	if id == "" {
		notice.Success(ctx, h.eventBus, "Transaksi berhasil ditambahkan!")
	} else {
		notice.Success(ctx, h.eventBus, "Transaksi berhasil diperbarui!")
	}
	rest.SeeOther(w, r, view.PagePath(Page))
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	imported, err := h.service.ImportRemote(ctx)
	switch {
	case errors.Is(err, ErrRemoteDisabled):
		notice.Error(ctx, h.eventBus, "Sumber transaksi jarak jauh belum dikonfigurasi.")
	case err != nil:
		log.Errorf("failed to import remote transactions: %v", err)
		notice.Error(ctx, h.eventBus, "Gagal mengambil transaksi dari server.")
	case imported == 0:
		notice.Info(ctx, h.eventBus, "Tidak ada transaksi baru untuk diimpor.")
	default:
		notice.Success(ctx, h.eventBus, fmt.Sprintf("%d transaksi berhasil diimpor!", imported))
	}
	rest.SeeOther(w, r, view.PagePath(Page))
}

func (h *Handler) RowTarget() view.RowTarget {
	return view.RowTarget{Delete: h.service.Delete, Deleted: "Transaksi berhasil dihapus!"}
}

func (h *Handler) failureMessage(err error) string {
	if errors.Is(err, ErrTransactionNotFound) {
		return "Transaksi tidak ditemukan."
	}
	if !errors.Is(err, view.ErrValidation) {
		log.Errorf("failed to save transaction: %v", err)
	}
	return view.UserMessage(err, "Gagal menyimpan transaksi.")
}
