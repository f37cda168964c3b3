package export

import "log/slog"

// DefaultFilename is used by [Service.SavePDF] when neither the call nor
// the options name a file.
const DefaultFilename = "document.pdf"

// Options controls a single export. Zero fields take the service defaults.
type Options struct {
	// Filename suggested for the generated document.
	Filename string

	// Page is the paper layout.
	Page PageConfig
}

// DefaultOptions returns the options every export starts from.
func DefaultOptions() Options {
	return Options{
		Filename: DefaultFilename,
		Page:     DefaultPageConfig(),
	}
}

// merged returns o laid over d. A nil o yields d.
func (o *Options) merged(d Options) Options {
	if o == nil {
		return d
	}
	r := *o
	if r.Filename == "" {
		r.Filename = d.Filename
	}
	r.Page = r.Page.merged(d.Page)
	return r
}

type serviceConfig struct {
	logger   *slog.Logger
	defaults Options
}

// Option configures a [Service].
type Option func(*serviceConfig)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *serviceConfig) {
		c.logger = l
	}
}

// WithDefaults replaces [DefaultOptions] as the base every export's options
// are merged over. Zero fields of d keep the package defaults.
func WithDefaults(d Options) Option {
	return func(c *serviceConfig) {
		c.defaults = d.merged(DefaultOptions())
	}
}
