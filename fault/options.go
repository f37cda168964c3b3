package fault

import (
	"log/slog"
	"time"
)

// DefaultToastDuration is how long the default handler keeps a toast on
// screen.
const DefaultToastDuration = 5 * time.Second

type serviceConfig struct {
	logger        *slog.Logger
	surface       Surface
	toastDuration time.Duration
	now           func() time.Time
}

func defaultConfig() serviceConfig {
	return serviceConfig{
		toastDuration: DefaultToastDuration,
		now:           time.Now,
	}
}

// Option configures a [Service].
type Option func(*serviceConfig)

// WithLogger sets the logger reports are written to.
// Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *serviceConfig) {
		c.logger = l
	}
}

// WithSurface sets the page toasts, alerts and the boundary are rendered
// on. Without a surface the service only logs.
func WithSurface(s Surface) Option {
	return func(c *serviceConfig) {
		c.surface = s
	}
}

// WithToastDuration overrides [DefaultToastDuration]. Zero disables
// automatic dismissal.
func WithToastDuration(d time.Duration) Option {
	return func(c *serviceConfig) {
		c.toastDuration = d
	}
}

// WithClock sets the time source used for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *serviceConfig) {
		c.now = now
	}
}
