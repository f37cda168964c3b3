package pagekit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/porticus-lab/pagekit/export"
	"github.com/porticus-lab/pagekit/fault"
	"github.com/porticus-lab/pagekit/i18n"
)

// Page is a document both the error and language services can drive.
type Page interface {
	fault.Surface
	i18n.Page
}

// Shell owns one instance of each service for a single page. The services
// share no state; the Shell only builds them and orders their start-up.
type Shell struct {
	Faults    *fault.Service
	Languages *i18n.Service

	// Exports is nil unless the Shell was built with [WithExporter].
	Exports *export.Service

	logger *slog.Logger
}

// New builds the services. Dictionaries are loaded with loader.
func New(loader i18n.Loader, opts ...Option) *Shell {
	var cfg shellConfig
	for _, o := range opts {
		o(&cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	faultOpts := []fault.Option{fault.WithLogger(logger)}
	langOpts := []i18n.Option{i18n.WithLogger(logger)}
	if cfg.page != nil {
		faultOpts = append(faultOpts, fault.WithSurface(cfg.page))
		langOpts = append(langOpts, i18n.WithPage(cfg.page))
	}

	sh := &Shell{
		Faults:    fault.New(append(faultOpts, cfg.faultOpts...)...),
		Languages: i18n.New(loader, append(langOpts, cfg.langOpts...)...),
		logger:    logger,
	}
	if cfg.inspector != nil && cfg.renderer != nil {
		expOpts := append([]export.Option{export.WithLogger(logger)}, cfg.expOpts...)
		sh.Exports = export.New(cfg.inspector, cfg.renderer, expOpts...)
	}
	return sh
}

// Start installs the error hooks first, so failures while loading
// dictionaries are reported, then initializes the language service.
func (sh *Shell) Start(ctx context.Context, defaultLang string) error {
	sh.Faults.Init()
	if err := sh.Languages.Initialize(ctx, defaultLang); err != nil {
		sh.Faults.Handle(ctx, fault.KindNetwork, err)
		return fmt.Errorf("pagekit: starting: %w", err)
	}
	sh.logger.DebugContext(ctx, "pagekit: started", slog.String("lang", sh.Languages.Current()))
	return nil
}

// Close waits for work started with [fault.Service.Go] to finish.
func (sh *Shell) Close() error {
	sh.Faults.Wait()
	return nil
}
