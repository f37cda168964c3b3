package fault

import (
	"context"
	"log/slog"
	"sync"
)

// Boundary guards one operation. When the operation fails the boundary
// region is shown and the operation can be retried.
type Boundary struct {
	svc  *Service
	kind Kind

	mu      sync.Mutex
	fn      func(context.Context) error
	visible bool
}

// Boundary returns a new boundary whose failures are reported as kind.
func (s *Service) Boundary(kind Kind) *Boundary {
	return &Boundary{svc: s, kind: kind}
}

// Run runs fn and remembers it for [Boundary.Retry]. On failure the error
// is logged as a report, the boundary region is shown and the error is
// returned. fn may call Visible or Retry on the same boundary.
func (b *Boundary) Run(ctx context.Context, fn func(context.Context) error) error {
	b.mu.Lock()
	b.fn = fn
	b.mu.Unlock()

	return b.run(ctx, fn)
}

// Retry runs the last operation passed to [Boundary.Run] again and hides
// the boundary region if it succeeds.
func (b *Boundary) Retry(ctx context.Context) error {
	b.mu.Lock()
	fn := b.fn
	b.mu.Unlock()

	if fn == nil {
		return ErrNothingToRetry
	}
	return b.run(ctx, fn)
}

// Visible reports whether the boundary region is currently shown.
func (b *Boundary) Visible() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.visible
}

// run calls fn without holding b.mu, then updates the region under it.
func (b *Boundary) run(ctx context.Context, fn func(context.Context) error) error {
	err := invoke(ctx, func(ctx context.Context, _ *Report) error { return fn(ctx) }, nil)
	surface := b.svc.cfg.surface

	b.mu.Lock()
	defer b.mu.Unlock()

	if err == nil {
		if b.visible && surface != nil {
			if herr := surface.HideBoundary(ctx); herr != nil {
				b.svc.logger.WarnContext(ctx, "fault: hiding boundary", slog.Any("error", herr))
			}
		}
		b.visible = false
		return nil
	}

	r := b.svc.newReport(ctx, b.kind, err)
	b.svc.logger.ErrorContext(ctx, "fault: boundary caught error", slog.Any("report", r))
	if surface != nil {
		if serr := surface.ShowBoundary(ctx, r.Message); serr != nil {
			b.svc.logger.WarnContext(ctx, "fault: showing boundary", slog.Any("error", serr))
		}
	}
	b.visible = true
	return err
}
