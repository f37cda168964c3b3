package i18n

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
)

// Page is the document translations are applied to.
type Page interface {
	// SetLang updates the document's language metadata.
	SetLang(ctx context.Context, code string) error

	// Translate rewrites every tagged element using lookup, which maps a
	// translation key to its display string.
	Translate(ctx context.Context, lookup func(key string) string) error
}

// Listener is notified after the active language changes.
type Listener func(ctx context.Context, code string) error

// ListenerID identifies a registered [Listener].
type ListenerID uint64

type listenerEntry struct {
	id ListenerID
	fn Listener
}

// Service loads dictionaries and tracks the active language.
//
// It is safe for concurrent use.
type Service struct {
	loader    Loader
	store     Store
	page      Page
	logger    *slog.Logger
	supported []string
	locales   []language.Tag

	mu      sync.RWMutex
	dicts   map[string]Dictionary
	current string

	lmu       sync.Mutex
	listeners []listenerEntry
	nextID    ListenerID
}

// New creates a Service that loads dictionaries with loader.
func New(loader Loader, opts ...Option) *Service {
	cfg := serviceConfig{supported: DefaultSupported}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.store == nil {
		cfg.store = NewMemoryStore(nil)
	}
	return &Service{
		loader:    loader,
		store:     cfg.store,
		page:      cfg.page,
		logger:    cfg.logger,
		supported: cfg.supported,
		locales:   cfg.locales,
		dicts:     make(map[string]Dictionary),
	}
}

// Supported returns the language allow-list.
func (s *Service) Supported() []string {
	return slices.Clone(s.supported)
}

// IsSupported reports whether code is in the allow-list.
func (s *Service) IsSupported(code string) bool {
	return slices.Contains(s.supported, code)
}

// Current returns the active language, or "" before the first successful
// [Service.SetLanguage].
func (s *Service) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Loaded reports whether the dictionary for code is in memory.
func (s *Service) Loaded(code string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.dicts[code]
	return ok
}

// Initialize loads every supported dictionary concurrently, then activates
// the stored preference, the best match for the user agent locales, or
// defaultLang, in that order.
func (s *Service) Initialize(ctx context.Context, defaultLang string) error {
	if !s.IsSupported(defaultLang) {
		return &UnsupportedError{Code: defaultLang}
	}

	dicts := make([]Dictionary, len(s.supported))
	g, gctx := errgroup.WithContext(ctx)
	for i, code := range s.supported {
		g.Go(func() error {
			d, err := s.loader.Load(gctx, code)
			if err != nil {
				return err
			}
			dicts[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("i18n: loading dictionaries: %w", err)
	}

	s.mu.Lock()
	for i, code := range s.supported {
		s.dicts[code] = dicts[i]
	}
	s.mu.Unlock()

	lang := s.initialLanguage(ctx, defaultLang)
	s.logger.DebugContext(ctx, "i18n: initialized",
		slog.String("lang", lang),
		slog.Int("dictionaries", len(dicts)),
	)
	return s.SetLanguage(ctx, lang)
}

func (s *Service) initialLanguage(ctx context.Context, defaultLang string) string {
	stored, err := s.store.Get(ctx, PreferenceKey)
	if err != nil {
		s.logger.WarnContext(ctx, "i18n: reading stored preference", slog.Any("error", err))
	}
	if stored != "" && s.IsSupported(stored) {
		return stored
	}

	if len(s.locales) > 0 {
		tags := make([]language.Tag, len(s.supported))
		for i, code := range s.supported {
			tags[i] = language.Make(code)
		}
		_, idx, conf := language.NewMatcher(tags).Match(s.locales...)
		if conf != language.No {
			return s.supported[idx]
		}
	}
	return defaultLang
}

// SetLanguage activates code. The dictionary is loaded if it is not yet in
// memory. An unsupported code returns an *UnsupportedError and changes
// nothing. If the page cannot be updated the previous language stays
// active and the preference is not stored.
func (s *Service) SetLanguage(ctx context.Context, code string) error {
	if !s.IsSupported(code) {
		return &UnsupportedError{Code: code}
	}
	if _, err := s.dictionary(ctx, code); err != nil {
		return fmt.Errorf("i18n: setting language %q: %w", code, err)
	}

	prev := s.Current()
	if s.page != nil {
		if err := s.page.SetLang(ctx, code); err != nil {
			return fmt.Errorf("i18n: setting document language: %w", err)
		}
	}

	s.mu.Lock()
	s.current = code
	s.mu.Unlock()

	if err := s.Apply(ctx); err != nil {
		s.rollback(ctx, prev)
		return err
	}
	if err := s.store.Set(ctx, PreferenceKey, code); err != nil {
		s.logger.WarnContext(ctx, "i18n: persisting preference",
			slog.String("lang", code),
			slog.Any("error", err),
		)
	}

	s.notify(ctx, code)
	return nil
}

// rollback restores prev after a failed switch.
func (s *Service) rollback(ctx context.Context, prev string) {
	s.mu.Lock()
	s.current = prev
	s.mu.Unlock()

	if s.page == nil || prev == "" {
		return
	}
	if err := s.page.SetLang(ctx, prev); err != nil {
		s.logger.WarnContext(ctx, "i18n: restoring document language",
			slog.String("lang", prev),
			slog.Any("error", err),
		)
	}
}

// Apply rewrites the page with the active dictionary.
func (s *Service) Apply(ctx context.Context) error {
	if s.page == nil {
		return nil
	}
	if err := s.page.Translate(ctx, s.TranslateFunc()); err != nil {
		return fmt.Errorf("i18n: translating page: %w", err)
	}
	return nil
}

// Reload fetches the dictionary for code again and replaces the one in
// memory. If code is active the page is rewritten.
func (s *Service) Reload(ctx context.Context, code string) error {
	if !s.IsSupported(code) {
		return &UnsupportedError{Code: code}
	}
	d, err := s.loader.Load(ctx, code)
	if err != nil {
		return fmt.Errorf("i18n: reloading %q: %w", code, err)
	}

	s.mu.Lock()
	s.dicts[code] = d
	active := s.current == code
	s.mu.Unlock()

	if active {
		return s.Apply(ctx)
	}
	return nil
}

func (s *Service) dictionary(ctx context.Context, code string) (Dictionary, error) {
	s.mu.RLock()
	d, ok := s.dicts[code]
	s.mu.RUnlock()
	if ok {
		return d, nil
	}

	d, err := s.loader.Load(ctx, code)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.dicts[code]; ok {
		return existing, nil
	}
	s.dicts[code] = d
	return d, nil
}

// Translate resolves key in the active dictionary and substitutes params
// into its {{name}} placeholders. A key that cannot be resolved is logged
// and returned unchanged.
func (s *Service) Translate(key string, params map[string]any) string {
	s.mu.RLock()
	lang := s.current
	d := s.dicts[lang]
	s.mu.RUnlock()

	v, ok := d.Lookup(key)
	if !ok {
		s.logger.Warn("i18n: missing translation",
			slog.String("key", key),
			slog.String("lang", lang),
		)
		return key
	}
	return Interpolate(v, params)
}

// TranslateFunc returns Translate without parameters, in the form a
// [Page] expects.
func (s *Service) TranslateFunc() func(key string) string {
	return func(key string) string { return s.Translate(key, nil) }
}

// AddListener registers fn to run after every language change.
func (s *Service) AddListener(fn Listener) ListenerID {
	s.lmu.Lock()
	defer s.lmu.Unlock()

	s.nextID++
	s.listeners = append(s.listeners, listenerEntry{id: s.nextID, fn: fn})
	return s.nextID
}

// RemoveListener unregisters the listener with the given id. It reports
// whether one was found.
func (s *Service) RemoveListener(id ListenerID) bool {
	s.lmu.Lock()
	defer s.lmu.Unlock()

	for i, l := range s.listeners {
		if l.id == id {
			s.listeners = slices.Delete(s.listeners, i, i+1)
			return true
		}
	}
	return false
}

// notify runs every listener in registration order. Failures are logged.
func (s *Service) notify(ctx context.Context, code string) {
	s.lmu.Lock()
	listeners := slices.Clone(s.listeners)
	s.lmu.Unlock()

	for _, l := range listeners {
		if err := callListener(ctx, l.fn, code); err != nil {
			s.logger.ErrorContext(ctx, "i18n: listener failed",
				slog.Uint64("listener", uint64(l.id)),
				slog.String("lang", code),
				slog.Any("error", err),
			)
		}
	}
}

func callListener(ctx context.Context, fn Listener, code string) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("panic: %v\n%s", v, debug.Stack())
		}
	}()
	return fn(ctx, code)
}
