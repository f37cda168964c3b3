package browser

import (
	"log/slog"
	"time"
)

// browserConfig holds internal configuration for a Browser.
type browserConfig struct {
	chromePath   string
	timeout      time.Duration
	noSandbox    bool
	headless     string
	autoDownload bool
	logger       *slog.Logger
}

func defaultConfig() browserConfig {
	return browserConfig{
		timeout:  30 * time.Second,
		headless: "new",
	}
}

// Option configures a [Browser].
type Option func(*browserConfig)

// WithChromePath sets the path to the Chrome or Chromium executable.
// By default chromedp searches standard locations automatically.
func WithChromePath(path string) Option {
	return func(c *browserConfig) {
		c.chromePath = path
	}
}

// WithTimeout sets the maximum duration of a single tab operation.
// Defaults to 30 seconds. A zero or negative value disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *browserConfig) {
		c.timeout = d
	}
}

// WithNoSandbox disables the Chrome sandbox. This is required when
// running as root, for example inside Docker containers.
func WithNoSandbox() Option {
	return func(c *browserConfig) {
		c.noSandbox = true
	}
}

// WithAutoDownload downloads a compatible Chromium build when no
// executable path is configured.
func WithAutoDownload() Option {
	return func(c *browserConfig) {
		c.autoDownload = true
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *browserConfig) {
		c.logger = l
	}
}
