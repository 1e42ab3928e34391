package app

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/kampung/agustusan/internal/config"
	"github.com/kampung/agustusan/internal/event_bus"
	"github.com/kampung/agustusan/internal/utils"
	"github.com/kampung/agustusan/pkg/collection"
	"github.com/kampung/agustusan/pkg/contest"
	"github.com/kampung/agustusan/pkg/dashboard"
	"github.com/kampung/agustusan/pkg/doorprize"
	"github.com/kampung/agustusan/pkg/finance"
	"github.com/kampung/agustusan/pkg/notice"
	"github.com/kampung/agustusan/pkg/router"
	"github.com/kampung/agustusan/pkg/schedule"
	"github.com/kampung/agustusan/pkg/storage"
	"github.com/kampung/agustusan/pkg/view"
	"github.com/kampung/agustusan/web"
	log "github.com/sirupsen/logrus"
)

// Dependencies is the application state container: the four collections and
// every service and handler built on top of them.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Store    *storage.Store
	Board    *notice.Board
	Clock    utils.Clock

	Transactions *collection.Collection[finance.Transaction]
	Contests     *collection.Collection[contest.Contest]
	Doorprizes   *collection.Collection[doorprize.Doorprize]
	Schedules    *collection.Collection[schedule.Schedule]

	FinanceService   finance.Service
	FinanceHandler   *finance.Handler
	RemoteRepository finance.RemoteRepository
	RemoteHandler    *finance.RemoteHandler

	ContestService contest.Service
	ContestHandler *contest.Handler

	DoorprizeService doorprize.Service
	DoorprizeHandler *doorprize.Handler

	ScheduleService schedule.Service
	ScheduleHandler *schedule.Handler

	DashboardHandler *dashboard.Handler

	Rows   *view.RowDispatcher
	Pages  *router.Router
	Layout *template.Template
}

func fragmentSource(cfg config.Pages) (router.FragmentSource, error) {
	switch cfg.Source {
	case "", "embedded":
		return router.NewFSSource(web.Assets), nil
	case "dir":
		return router.NewFSSource(os.DirFS(cfg.Dir)), nil
	case "http":
		return router.NewHTTPSource(cfg.BaseURL, nil), nil
	default:
		return nil, fmt.Errorf("unknown pages source %q", cfg.Source)
	}
}

// BuildDependencies loads the collections from the store and wires all
// services, handlers and pages.
func BuildDependencies(ctx context.Context, res *Resources, cfg config.Application, clock utils.Clock, pages router.FragmentSource) (*Dependencies, error) {
	deps := &Dependencies{Clock: clock}

	layout, err := template.New("layout.html").Funcs(view.FuncMap()).ParseFS(web.Assets, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	deps.Layout = layout

	deps.EventBus = event_bus.NewEventBus()
	deps.Board = notice.NewBoard(deps.EventBus)
	logCollectionChanges(deps.EventBus)
	deps.Store = storage.NewStore(res.Backend, deps.EventBus)

	deps.Transactions = collection.Load[finance.Transaction](ctx, finance.CollectionKey, deps.Store, deps.EventBus)
	deps.Contests = collection.Load[contest.Contest](ctx, contest.CollectionKey, deps.Store, deps.EventBus)
	deps.Doorprizes = collection.Load[doorprize.Doorprize](ctx, doorprize.CollectionKey, deps.Store, deps.EventBus)
	deps.Schedules = collection.Load[schedule.Schedule](ctx, schedule.CollectionKey, deps.Store, deps.EventBus)
	log.Infof("Loaded %d transaction(s), %d contest(s), %d doorprize(s), %d schedule(s)",
		deps.Transactions.Len(), deps.Contests.Len(), deps.Doorprizes.Len(), deps.Schedules.Len())

	var remote finance.RemoteSource
	if res.Pool != nil && cfg.Database.Enabled {
		repo := finance.NewRemoteRepository(res.Pool)
		deps.RemoteRepository = repo
		deps.RemoteHandler = finance.NewRemoteHandler(repo)
		remote = repo
	}
	if cfg.Remote.URL != "" {
		remote = finance.NewRemoteClient(cfg.Remote.URL, nil)
	}

	deps.FinanceService = finance.NewService(deps.Transactions, remote, clock)
	deps.FinanceHandler = finance.NewHandler(deps.FinanceService, deps.EventBus, cfg.Families)

	deps.ContestService = contest.NewService(deps.Contests)
	deps.ContestHandler = contest.NewHandler(deps.ContestService, deps.EventBus, clock)

	deps.DoorprizeService = doorprize.NewService(deps.Doorprizes, nil, doorprize.DefaultPrizes)
	deps.DoorprizeHandler = doorprize.NewHandler(deps.DoorprizeService, deps.EventBus, doorprize.Animator{
		Duration: time.Duration(cfg.Draw.DurationMs) * time.Millisecond,
		Interval: time.Duration(cfg.Draw.IntervalMs) * time.Millisecond,
	})

	deps.ScheduleService = schedule.NewService(deps.Schedules)
	deps.ScheduleHandler = schedule.NewHandler(deps.ScheduleService, deps.EventBus, clock)

	deps.DashboardHandler = dashboard.NewHandler(deps.FinanceService, deps.ContestService, deps.DoorprizeService, cfg.Families)

	deps.Rows = view.NewRowDispatcher(deps.EventBus)
	deps.Rows.Register(finance.Page, deps.FinanceHandler.RowTarget())
	deps.Rows.Register(contest.Page, deps.ContestHandler.RowTarget())
	deps.Rows.Register(doorprize.Page, deps.DoorprizeHandler.RowTarget())
	deps.Rows.Register(schedule.Page, deps.ScheduleHandler.RowTarget())

	deps.Pages = router.New(pages, router.DefaultNav, view.FuncMap())
	deps.Pages.Register(dashboard.Page, deps.DashboardHandler.PageData)
	deps.Pages.Register(finance.Page, deps.FinanceHandler.PageData)
	deps.Pages.Register(contest.Page, deps.ContestHandler.PageData)
	deps.Pages.Register(doorprize.Page, deps.DoorprizeHandler.PageData)
	deps.Pages.Register(schedule.Page, deps.ScheduleHandler.PageData)

	return deps, nil
}
