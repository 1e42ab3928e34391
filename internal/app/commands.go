package app

import (
	"context"
	"encoding/json"
	"os/signal"
	"syscall"

	"github.com/kampung/agustusan/internal/config"
	"github.com/kampung/agustusan/internal/database"
	"github.com/kampung/agustusan/internal/event_bus"
	"github.com/kampung/agustusan/pkg/storage"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "./config/application.yaml"

// NewRootCommand builds the agustusan CLI. Without a subcommand it serves.
func NewRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "agustusan",
		Short:         "Independence day celebration organizer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to the YAML configuration file")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), configPath)
		},
	}
	root.RunE = serveCmd.RunE

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrations(configPath)
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Print every stored collection as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return Export(cmd.Context(), cfg, json.NewEncoder(cmd.OutOrStdout()))
		},
	}

	root.AddCommand(serveCmd, migrateCmd, exportCmd)
	return root
}

func runServer(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := NewApplication(ctx, cfg)
	if err != nil {
		return err
	}
	return application.Run(ctx)
}

func runMigrations(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if usesPostgres(cfg) {
		if err := database.Migrate(cfg.Database); err != nil {
			return err
		}
	}
	if cfg.Store.Driver == "" || cfg.Store.Driver == "sqlite" {
		db, err := database.OpenSQLite(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer db.Close()
		log.Infof("SQLite store schema ready at %s", cfg.Store.Path)
	}
	return nil
}

// Export writes all stored keys and their raw JSON values as one object.
func Export(ctx context.Context, cfg config.Application, encoder *json.Encoder) error {
	res, err := OpenResources(ctx, cfg)
	if err != nil {
		return err
	}
	defer res.Close()

	store := storage.NewStore(res.Backend, event_bus.NewEventBus())
	keys, err := store.Keys(ctx)
	if err != nil {
		return err
	}
	dump := make(map[string]json.RawMessage, len(keys))
	for _, key := range keys {
		if raw, ok := store.Raw(ctx, key); ok {
			dump[key] = raw
		}
	}
	encoder.SetIndent("", "  ")
	return encoder.Encode(dump)
}
