package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/shunichi-ikebuchi/roman-calculator/pkg/cache"
	"github.com/shunichi-ikebuchi/roman-calculator/pkg/config"
	"github.com/shunichi-ikebuchi/roman-calculator/pkg/db"
	"github.com/shunichi-ikebuchi/roman-calculator/pkg/numeral"
	"github.com/shunichi-ikebuchi/roman-calculator/pkg/pathutil"
	"github.com/shunichi-ikebuchi/roman-calculator/pkg/service"
)

// app holds the components a command works with. History and cache are nil
// when disabled.
type app struct {
	cfg     *config.Config
	paths   *pathutil.PathResolver
	conn    *db.Connection
	history *db.History
	cache   *cache.Cache
	svc     *service.Service
}

// openApp loads configuration and opens storage. History is opened when
// withHistory is set and neither --no-history nor ROMAN_HISTORY=false
// disable it.
func openApp(withHistory bool) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(
		[]string{"calculator", "maxLength"},
		[]string{"storage", "root"},
	); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	a := &app{
		cfg: cfg,
		paths: pathutil.New(pathutil.Config{
			DataRoot:     cfg.Storage.Root,
			DatabasePath: cfg.Storage.DBPath,
			CachePath:    cfg.Storage.CachePath,
		}),
	}
	slog.Debug("Using data root", "path", a.paths.GetDataRoot())

	opts := []service.Option{service.WithLogger(slog.Default())}

	if withHistory && cfg.Storage.History && !noHistory {
		if err := a.openHistory(); err != nil {
			return nil, err
		}
		opts = append(opts, service.WithRecorder(a.history))
	}

	if cfg.Storage.Cache {
		cachePath := a.paths.GetCachePath()
		slog.Debug("Opening cache", "path", cachePath)
		if err := a.paths.EnsureParentDir(cachePath); err != nil {
			a.Close()
			return nil, err
		}
		c, err := cache.Open(cachePath)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to open cache: %w", err)
		}
		a.cache = c
		opts = append(opts, service.WithMemo(c))
	}

	calc := numeral.NewCalculator(numeral.WithMaxLength(cfg.Calculator.MaxLength))
	a.svc = service.New(calc, opts...)
	return a, nil
}

// loadConfig loads .env (or the --config file, which must exist) and the
// environment.
func loadConfig() (*config.Config, error) {
	path := getConfigFile()
	if path != "" && !pathutil.FileExists(path) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func (a *app) openHistory() error {
	dbPath := a.paths.GetDatabasePath()
	slog.Debug("Opening database", "path", dbPath)
	if err := a.paths.EnsureParentDir(dbPath); err != nil {
		return err
	}

	conn, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	a.conn = conn
	a.history = db.NewHistory(conn)
	return nil
}

// Close releases storage.
func (a *app) Close() error {
	var errs []error
	if a.cache != nil {
		errs = append(errs, a.cache.Close())
	}
	if a.conn != nil {
		errs = append(errs, a.conn.Close())
	}
	return errors.Join(errs...)
}
