package pagekit

import (
	"log/slog"

	"github.com/porticus-lab/pagekit/export"
	"github.com/porticus-lab/pagekit/fault"
	"github.com/porticus-lab/pagekit/i18n"
)

type shellConfig struct {
	logger    *slog.Logger
	page      Page
	inspector export.Inspector
	renderer  export.Renderer
	faultOpts []fault.Option
	langOpts  []i18n.Option
	expOpts   []export.Option
}

// Option configures a [Shell].
type Option func(*shellConfig)

// WithLogger sets the logger shared by every service.
// Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *shellConfig) {
		c.logger = l
	}
}

// WithPage sets the page errors are shown on and translations applied to.
func WithPage(p Page) Option {
	return func(c *shellConfig) {
		c.page = p
	}
}

// WithExporter enables PDF export. Without it [Shell.Exports] is nil.
func WithExporter(in export.Inspector, r export.Renderer) Option {
	return func(c *shellConfig) {
		c.inspector = in
		c.renderer = r
	}
}

// WithFaultOptions passes options through to the error service.
func WithFaultOptions(opts ...fault.Option) Option {
	return func(c *shellConfig) {
		c.faultOpts = append(c.faultOpts, opts...)
	}
}

// WithLanguageOptions passes options through to the language service.
func WithLanguageOptions(opts ...i18n.Option) Option {
	return func(c *shellConfig) {
		c.langOpts = append(c.langOpts, opts...)
	}
}

// WithExportOptions passes options through to the export service.
func WithExportOptions(opts ...export.Option) Option {
	return func(c *shellConfig) {
		c.expOpts = append(c.expOpts, opts...)
	}
}
