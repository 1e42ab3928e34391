package finance

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/kampung/agustusan/internal/event_bus"
	"github.com/kampung/agustusan/pkg/notice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func setupHandlerTest(t *testing.T) (*Handler, *ServiceImpl, *notice.Board) {
	t.Helper()
	service, _, _ := setupServiceTest(t)
	bus := event_bus.NewEventBus()
	return NewHandler(service, bus, 48), service, notice.NewBoard(bus)
}

func TestHandler_Save(t *testing.T) {
	t.Run("should create and redirect back to the page", func(t *testing.T) {
		// given
		handler, service, board := setupHandlerTest(t)
		rr := httptest.NewRecorder()

		// when
		handler.Save(rr, postForm("/p/keuangan/transactions", url.Values{
			"type": {"income"}, "description": {"Iuran"}, "amount": {"50000"},
		}))

		// then
		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/p/keuangan", rr.Header().Get("Location"))
		assert.Len(t, service.GetAll(ctx), 1)
		assert.Equal(t, []event_bus.Notice{{Level: event_bus.NoticeSuccess, Message: "Transaksi berhasil ditambahkan!"}}, board.Drain())
	})

	t.Run("should keep editing after a rejected update", func(t *testing.T) {
		// given
		handler, service, board := setupHandlerTest(t)
		created, err := service.Create(ctx, Input{Type: "income", Description: "Iuran", Amount: "1000"})
		require.NoError(t, err)
		rr := httptest.NewRecorder()

		// when
		handler.Save(rr, postForm("/p/keuangan/transactions", url.Values{
			"id": {created.Id}, "type": {"income"}, "description": {""}, "amount": {"1000"},
		}))

		// then
		assert.Equal(t, "/p/keuangan?edit="+created.Id, rr.Header().Get("Location"))
		assert.Equal(t, []event_bus.Notice{{Level: event_bus.NoticeError, Message: invalidInputMessage}}, board.Drain())
		found, _ := service.Get(ctx, created.Id)
		assert.Equal(t, "Iuran", found.Description)
	})
}

func TestHandler_Import(t *testing.T) {
	t.Run("should report how many rows were imported", func(t *testing.T) {
		// given
		service, _, remote := setupServiceTest(t)
		remote.SetTransactions(RemoteTransaction{Id: 7, Type: "income", Description: "Donasi", Amount: "5000", Date: "2025-08-05"})
		bus := event_bus.NewEventBus()
		board := notice.NewBoard(bus)
		handler := NewHandler(service, bus, 48)
		rr := httptest.NewRecorder()

		// when
		handler.Import(rr, httptest.NewRequest(http.MethodPost, "/p/keuangan/import", nil))

		// then
		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, []event_bus.Notice{{Level: event_bus.NoticeSuccess, Message: "1 transaksi berhasil diimpor!"}}, board.Drain())
	})
}

func TestHandler_PageData(t *testing.T) {
	t.Run("should initialize the keuangan page with its view", func(t *testing.T) {
		// given
		handler, service, _ := setupHandlerTest(t)
		created, err := service.Create(ctx, Input{Type: "income", Description: "Iuran", Amount: "1000"})
		require.NoError(t, err)

		// when
		data, err := handler.PageData(ctx, url.Values{"edit": {created.Id}})

		// then
		require.NoError(t, err)
		assert.Equal(t, "keuangan", Page)
		page, ok := data.(PageView)
		require.True(t, ok)
		require.Len(t, page.Rows, 1)
		assert.Equal(t, created.Id, page.Rows[0].Id)
		assert.Equal(t, created.Id, page.Form.Id)
	})
}
