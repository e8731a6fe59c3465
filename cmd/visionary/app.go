package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/japaniel/visionary/pkg/config"
	"github.com/japaniel/visionary/pkg/db"
	"github.com/japaniel/visionary/pkg/fetch"
	"github.com/japaniel/visionary/pkg/service"
	"github.com/japaniel/visionary/pkg/symbols"
	"github.com/japaniel/visionary/pkg/tagger"
	"github.com/japaniel/visionary/pkg/vision"
)

// app holds the components a command needs. store is nil for commands that
// run without a database.
type app struct {
	cfg    *config.Config
	seed   []symbols.Entry
	engine *vision.Engine
	store  *db.Store
	svc    *service.Service
	logger *zap.Logger
}

func loadConfig(opts *rootOptions) (*config.Config, error) {
	loader, err := config.NewConfigLoader(opts.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// newEngine loads the configuration, the symbol table and the tagger.
func newEngine(opts *rootOptions) (*app, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	seed, err := symbols.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load symbol table: %w", err)
	}
	tg, err := tagger.New(cfg.Tagger.Language)
	if err != nil {
		return nil, err
	}
	engineOpts, err := cfg.Engine.Options()
	if err != nil {
		return nil, err
	}
	engine := vision.NewEngine(symbols.NewTable(seed), tg,
		vision.WithOptions(engineOpts),
		vision.WithLogger(opts.logger.Named("engine")),
	)
	return &app{cfg: cfg, seed: seed, engine: engine, logger: opts.logger}, nil
}

// newApp is newEngine plus the record store and the service on top of it.
func newApp(opts *rootOptions) (*app, error) {
	a, err := newEngine(opts)
	if err != nil {
		return nil, err
	}
	store, err := db.Open(a.cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", a.cfg.Database.Path, err)
	}
	a.store = store
	a.svc = service.New(a.engine, store, a.seed, a.logger.Named("service"))
	return a, nil
}

func (a *app) fetcher() *fetch.Fetcher {
	return fetch.New(fetch.Config{
		Timeout:       a.cfg.Fetch.Timeout(),
		MaxBodyBytes:  a.cfg.Fetch.MaxBodyBytes,
		RetryAttempts: a.cfg.Fetch.RetryAttempts,
	}, a.logger.Named("fetch"))
}

func (a *app) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}
