package i18n

import (
	"log/slog"

	"golang.org/x/text/language"
)

// DefaultSupported is the allow-list used when [WithSupported] is not given.
var DefaultSupported = []string{"es", "en"}

type serviceConfig struct {
	logger    *slog.Logger
	store     Store
	page      Page
	supported []string
	locales   []language.Tag
}

// Option configures a [Service].
type Option func(*serviceConfig)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *serviceConfig) {
		c.logger = l
	}
}

// WithStore sets where the chosen language is persisted. Defaults to an
// empty [MemoryStore].
func WithStore(s Store) Option {
	return func(c *serviceConfig) {
		c.store = s
	}
}

// WithPage sets the page translations are applied to. Without a page the
// service only resolves keys.
func WithPage(p Page) Option {
	return func(c *serviceConfig) {
		c.page = p
	}
}

// WithSupported sets the language allow-list, in order of preference.
func WithSupported(codes ...string) Option {
	return func(c *serviceConfig) {
		c.supported = append([]string(nil), codes...)
	}
}

// WithLocales sets the locales reported by the user agent, most preferred
// first. Unparseable values are ignored.
func WithLocales(locales ...string) Option {
	return func(c *serviceConfig) {
		for _, l := range locales {
			if tag, err := language.Parse(l); err == nil {
				c.locales = append(c.locales, tag)
			}
		}
	}
}

// WithAcceptLanguage sets the user agent locales from an Accept-Language
// header value.
func WithAcceptLanguage(header string) Option {
	return func(c *serviceConfig) {
		tags, _, err := language.ParseAcceptLanguage(header)
		if err != nil {
			return
		}
		c.locales = append(c.locales, tags...)
	}
}
