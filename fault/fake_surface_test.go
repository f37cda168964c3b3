package fault

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"
)

// recordingSurface records every call made by the service.
type recordingSurface struct {
	mu        sync.Mutex
	toasts    []Toast
	dismissed []string
	alerts    []string
	hidden    map[string]bool
	disabled  map[string]bool
	boundary  string
	showing   bool

	failToast bool
}

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{
		hidden:   map[string]bool{},
		disabled: map[string]bool{ElementSubmitButton: true},
	}
}

func (s *recordingSurface) ShowToast(_ context.Context, t Toast) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failToast {
		return errors.New("toast container missing")
	}
	s.toasts = append(s.toasts, t)
	return nil
}

func (s *recordingSurface) DismissToast(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dismissed = append(s.dismissed, id)
	return nil
}

func (s *recordingSurface) Alert(_ context.Context, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, message)
	return nil
}

func (s *recordingSurface) SetHidden(_ context.Context, id string, hidden bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hidden[id] = hidden
	return nil
}

func (s *recordingSurface) SetDisabled(_ context.Context, id string, disabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disabled[id] = disabled
	return nil
}

func (s *recordingSurface) ShowBoundary(_ context.Context, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boundary = message
	s.showing = true
	return nil
}

func (s *recordingSurface) HideBoundary(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showing = false
	return nil
}

func (s *recordingSurface) toastCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.toasts)
}

// newTestService returns a service writing text logs to the returned buffer.
// Toast dismissal is captured instead of scheduled.
func newTestService(t *testing.T, surface Surface, opts ...Option) (*Service, *bytes.Buffer, *[]func()) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	opts = append([]Option{WithLogger(logger)}, opts...)
	if surface != nil {
		opts = append(opts, WithSurface(surface))
	}
	svc := New(opts...)

	var pending []func()
	svc.after = func(_ time.Duration, f func()) { pending = append(pending, f) }
	return svc, &buf, &pending
}
