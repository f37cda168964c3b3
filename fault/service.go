package fault

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Handler handles one error report. A returned error, or a panic, makes the
// service fall back to its default handler.
type Handler func(ctx context.Context, r *Report) error

// Service dispatches errors to handlers registered per [Kind].
//
// It is safe for concurrent use.
type Service struct {
	cfg    serviceConfig
	logger *slog.Logger

	// after schedules toast dismissal. Tests replace it.
	after func(d time.Duration, f func())

	mu          sync.RWMutex
	handlers    map[Kind]Handler
	initialized bool

	wg sync.WaitGroup
}

// New creates a Service with the given options. Call [Service.Init] to
// install the built-in handlers.
func New(opts ...Option) *Service {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.now == nil {
		cfg.now = time.Now
	}
	return &Service{
		cfg:      cfg,
		logger:   logger,
		after:    func(d time.Duration, f func()) { time.AfterFunc(d, f) },
		handlers: make(map[Kind]Handler),
	}
}

// Init installs the built-in handlers for [KindAPI] and [KindStorage].
// Init is idempotent. It replaces api and storage handlers registered
// before the first call; later registrations overwrite the built-ins.
func (s *Service) Init() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return
	}
	s.initialized = true
	s.handlers[KindAPI] = s.handleAPI
	s.handlers[KindStorage] = s.handleStorage
	s.logger.Debug("fault: service initialized")
}

// Initialized reports whether [Service.Init] has run.
func (s *Service) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// Register stores h as the handler for kind, replacing any previous one.
func (s *Service) Register(kind Kind, h Handler) error {
	if kind == "" {
		return &RegistrationError{Kind: kind, Reason: "kind is empty"}
	}
	if h == nil {
		return &RegistrationError{Kind: kind, Reason: "handler is nil"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[kind] = h
	return nil
}

// Unregister removes the handler for kind. Errors of that kind go to the
// default handler afterwards.
func (s *Service) Unregister(kind Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.handlers, kind)
}

func (s *Service) handler(kind Kind) (Handler, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.handlers[kind]
	return h, ok
}

// Handle builds a report for err and dispatches it to the handler
// registered for kind. It never panics and never returns an error: a
// failing handler is logged and replaced by the default handler.
func (s *Service) Handle(ctx context.Context, kind Kind, err error) *Report {
	r := s.newReport(ctx, kind, err)

	h, ok := s.handler(kind)
	if !ok {
		s.fallback(ctx, r)
		return r
	}
	if herr := invoke(ctx, h, r); herr != nil {
		s.logger.ErrorContext(ctx, "fault: handler failed",
			slog.String("kind", string(kind)),
			slog.String("report_id", r.ID),
			slog.Any("error", herr),
		)
		s.fallback(ctx, r)
	}
	return r
}

// Default is the handler used for kinds without a registration. It logs
// the report and shows a dismissible error toast.
func (s *Service) Default(ctx context.Context, r *Report) error {
	s.logger.ErrorContext(ctx, "fault: error", slog.Any("report", r))
	return s.Notify(ctx, LevelError, r.Message)
}

// Notify shows a toast on the surface and schedules its dismissal.
func (s *Service) Notify(ctx context.Context, level Level, message string) error {
	surface := s.cfg.surface
	if surface == nil {
		return nil
	}

	t := Toast{
		ID:          uuid.NewString(),
		Level:       level,
		Message:     message,
		Duration:    s.cfg.toastDuration,
		Dismissible: true,
	}
	if err := surface.ShowToast(ctx, t); err != nil {
		return fmt.Errorf("fault: showing toast: %w", err)
	}
	if t.Duration > 0 {
		dctx := context.WithoutCancel(ctx)
		s.after(t.Duration, func() {
			if err := surface.DismissToast(dctx, t.ID); err != nil {
				s.logger.WarnContext(dctx, "fault: dismissing toast",
					slog.String("toast_id", t.ID),
					slog.Any("error", err),
				)
			}
		})
	}
	return nil
}

func (s *Service) fallback(ctx context.Context, r *Report) {
	if err := invoke(ctx, s.Default, r); err != nil {
		s.logger.ErrorContext(ctx, "fault: default handler failed",
			slog.String("report_id", r.ID),
			slog.Any("error", err),
		)
	}
}

func (s *Service) newReport(ctx context.Context, kind Kind, err error) *Report {
	r := &Report{
		ID:      uuid.NewString(),
		Time:    s.cfg.now(),
		Kind:    kind,
		Message: messageOf(err),
		Stack:   stackOf(err),
		Err:     err,
	}
	if info, ok := PageFromContext(ctx); ok {
		r.UserAgent = info.UserAgent
		r.URL = info.URL
	}
	return r
}

// invoke calls h and converts a panic into a *PanicError.
func invoke(ctx context.Context, h Handler, r *Report) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &PanicError{Value: v, Stack: debug.Stack()}
		}
	}()
	return h(ctx, r)
}

func (s *Service) handleAPI(ctx context.Context, r *Report) error {
	s.logger.ErrorContext(ctx, "fault: api error", slog.Any("report", r))

	surface := s.cfg.surface
	if surface == nil {
		return nil
	}
	return errors.Join(
		surface.SetHidden(ctx, ElementLoadingOverlay, true),
		surface.SetDisabled(ctx, ElementSubmitButton, false),
		surface.Alert(ctx, "The server could not complete the request: "+r.Message),
	)
}

func (s *Service) handleStorage(ctx context.Context, r *Report) error {
	s.logger.ErrorContext(ctx, "fault: storage error", slog.Any("report", r))

	surface := s.cfg.surface
	if surface == nil {
		return nil
	}
	return surface.Alert(ctx, "Your data could not be saved locally: "+r.Message)
}
