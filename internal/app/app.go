package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kampung/agustusan/internal/config"
	"github.com/kampung/agustusan/internal/database"
	"github.com/kampung/agustusan/internal/utils"
	"github.com/kampung/agustusan/pkg/storage"
	log "github.com/sirupsen/logrus"
)

// Application wires configuration, storage, router, and server lifecycle.
type Application struct {
	cfg       config.Application
	resources *Resources
	deps      *Dependencies
	router    *mux.Router
	srv       *http.Server
}

// Resources are the opened storage handles. Pool is nil unless Postgres is
// in use, either as the store backend or as the remote transaction source.
type Resources struct {
	Backend storage.Backend
	Pool    *pgxpool.Pool
	sqlite  *sql.DB
}

func (r *Resources) Close() {
	if r.sqlite != nil {
		if err := r.sqlite.Close(); err != nil {
			log.Errorf("failed to close sqlite store: %v", err)
		}
	}
	if r.Pool != nil {
		r.Pool.Close()
	}
}

func usesPostgres(cfg config.Application) bool {
	return cfg.Database.Enabled || cfg.Store.Driver == "postgres"
}

// OpenResources opens the configured store backend and, when needed, the
// Postgres pool with migrations applied.
func OpenResources(ctx context.Context, cfg config.Application) (*Resources, error) {
	res := &Resources{}
	if usesPostgres(cfg) {
		pool, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		res.Pool = pool
		if err := database.Migrate(cfg.Database); err != nil {
			res.Close()
			return nil, err
		}
	}

	switch cfg.Store.Driver {
	case "", "sqlite":
		db, err := database.OpenSQLite(cfg.Store.Path)
		if err != nil {
			res.Close()
			return nil, err
		}
		res.sqlite = db
		res.Backend = storage.NewSQLiteBackend(db)
		log.Infof("Using SQLite store at %s", cfg.Store.Path)
	case "postgres":
		res.Backend = storage.NewPostgresBackend(res.Pool)
		log.Info("Using Postgres store")
	case "memory":
		res.Backend = storage.NewMemoryBackend(0)
		log.Warn("Using in-memory store, data is lost on exit")
	default:
		res.Close()
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	return res, nil
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication(ctx context.Context, cfg config.Application) (*Application, error) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	res, err := OpenResources(ctx, cfg)
	if err != nil {
		return nil, err
	}

	pages, err := fragmentSource(cfg.Pages)
	if err != nil {
		res.Close()
		return nil, err
	}

	deps, err := BuildDependencies(ctx, res, cfg, utils.SystemClock{Location: location}, pages)
	if err != nil {
		res.Close()
		return nil, err
	}

	r := mux.NewRouter()
	SetupMiddleware(r)
	RegisterRoutes(r, deps)

	srv := &http.Server{
		Handler:     r,
		Addr:        cfg.Addr,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
		// WriteTimeout stays unset: the draw reveal is a long-lived stream.
	}

	return &Application{cfg: cfg, resources: res, deps: deps, router: r, srv: srv}, nil
}

// Run starts the HTTP server and blocks until ctx is cancelled or the server
// fails.
func (a *Application) Run(ctx context.Context) error {
	defer a.resources.Close()

	errs := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", a.srv.Addr)
		errs <- a.srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return a.srv.Shutdown(shutdownCtx)
	}
}
