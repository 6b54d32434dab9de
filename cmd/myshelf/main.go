package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/tesso57/myshelf/internal/application/settings"
	"github.com/tesso57/myshelf/internal/infrastructure/config"
	"github.com/tesso57/myshelf/internal/infrastructure/docstore"
	"github.com/tesso57/myshelf/internal/infrastructure/docstore/postgres"
	"github.com/tesso57/myshelf/internal/infrastructure/docstore/sqlite"
	"github.com/tesso57/myshelf/internal/logging"
)

// CLI is the command line surface.
type CLI struct {
	Config string `help:"Path to the config file." type:"path"`
	Debug  bool   `help:"Log at debug level."`

	Home       HomeCmd       `cmd:"" default:"1" help:"Open the home feed."`
	Event      EventCmd      `cmd:"" help:"Open the featured event page."`
	Seed       SeedCmd       `cmd:"" help:"Load books, members and events from a YAML file."`
	ImportFeed ImportFeedCmd `cmd:"" name:"import-feed" help:"Copy new arrivals from RSS or Atom feeds into the catalog."`
	Member     MemberCmd     `cmd:"" help:"Manage member profiles."`
	Token      TokenCmd      `cmd:"" help:"Issue a signed session token."`
}

// App carries the opened resources every command runs against.
type App struct {
	Ctx    context.Context
	Config *config.Store
	Store  docstore.Store
	Logger logging.Logger
	Out    io.Writer
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("myshelf"),
		kong.Description("Library membership home feed."),
		kong.UsageOnError(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, closeApp, err := openApp(ctx, cli, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}
	err = kctx.Run(app)
	closeApp()
	kctx.FatalIfErrorf(err)
}

func openApp(ctx context.Context, cli CLI, out io.Writer) (*App, func(), error) {
	config.LoadDotEnv()
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	level := slog.LevelInfo
	if cli.Debug {
		level = slog.LevelDebug
	}
	logger, logCloser, err := logging.OpenFile(cfg.Settings.LogFile, level)
	if err != nil {
		return nil, nil, err
	}

	store, err := openStore(ctx, cfg.Settings.Store, logger)
	if err != nil {
		_ = logCloser.Close()
		return nil, nil, err
	}

	app := &App{Ctx: ctx, Config: cfg, Store: store, Logger: logger, Out: out}
	closeApp := func() {
		if err := store.Close(); err != nil {
			logger.Warn(ctx, "close store", "err", err)
		}
		_ = logCloser.Close()
	}
	return app, closeApp, nil
}

func openStore(ctx context.Context, cfg settings.StoreConfig, logger logging.Logger) (docstore.Store, error) {
	switch cfg.DriverName() {
	case settings.DriverPostgres:
		st, err := postgres.Open(ctx, cfg.DSN, cfg.PollInterval, logger)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		return st, nil
	case settings.DriverSQLite:
		st, err := sqlite.Open(cfg.Path, cfg.PollInterval)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
