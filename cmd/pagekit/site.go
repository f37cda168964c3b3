package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/porticus-lab/pagekit"
	"github.com/porticus-lab/pagekit/browser"
	"github.com/porticus-lab/pagekit/config"
	"github.com/porticus-lab/pagekit/fault"
	"github.com/porticus-lab/pagekit/i18n"
)

// cachingLoader keeps every dictionary it has loaded for the life of the
// process.
type cachingLoader struct {
	next i18n.Loader

	mu    sync.Mutex
	dicts map[string]i18n.Dictionary
}

func newCachingLoader(next i18n.Loader) *cachingLoader {
	return &cachingLoader{next: next, dicts: make(map[string]i18n.Dictionary)}
}

func (l *cachingLoader) Load(ctx context.Context, code string) (i18n.Dictionary, error) {
	l.mu.Lock()
	d, ok := l.dicts[code]
	l.mu.Unlock()
	if ok {
		return d, nil
	}

	d, err := l.next.Load(ctx, code)
	if err != nil {
		return nil, err
	}
	l.mu.Lock()
	l.dicts[code] = d
	l.mu.Unlock()
	return d, nil
}

// shellOptions maps the configuration onto Shell options.
func shellOptions(cfg *config.Config, logger *slog.Logger, page pagekit.Page, store i18n.Store) []pagekit.Option {
	return []pagekit.Option{
		pagekit.WithLogger(logger),
		pagekit.WithPage(page),
		pagekit.WithFaultOptions(fault.WithToastDuration(cfg.ToastDuration.Duration())),
		pagekit.WithLanguageOptions(
			i18n.WithSupported(cfg.Supported...),
			i18n.WithStore(store),
		),
	}
}

// preferenceStore returns the configured preference file, or an in-memory
// store when none is set.
func preferenceStore(cfg *config.Config) i18n.Store {
	if cfg.PreferenceFile != "" {
		return i18n.NewFileStore(cfg.PreferenceFile)
	}
	return i18n.NewMemoryStore(nil)
}

// newBrowser starts the headless browser described by cfg.
func newBrowser(cfg *config.Config, logger *slog.Logger) (*browser.Browser, error) {
	opts := []browser.Option{
		browser.WithLogger(logger),
		browser.WithTimeout(cfg.Browser.Timeout.Duration()),
	}
	if cfg.Browser.ChromePath != "" {
		opts = append(opts, browser.WithChromePath(cfg.Browser.ChromePath))
	}
	if cfg.Browser.NoSandbox {
		opts = append(opts, browser.WithNoSandbox())
	}
	if cfg.Browser.AutoDownload {
		opts = append(opts, browser.WithAutoDownload())
	}
	b, err := browser.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	return b, nil
}
