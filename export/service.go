package export

import (
	"context"
	"fmt"
	"log/slog"
)

// ElementState is what an [Inspector] reports about an export target.
type ElementState struct {
	Found   bool
	Empty   bool
	Visible bool
	Width   float64
	Height  float64
}

// Inspector examines elements of a page before export.
type Inspector interface {
	// Inspect reports the state of the first element matching selector.
	Inspect(ctx context.Context, selector string) (ElementState, error)

	// WaitImages blocks until every image inside the element has finished
	// loading. A broken image yields an *ImageLoadError.
	WaitImages(ctx context.Context, selector string) error
}

// Renderer turns an element into PDF bytes.
type Renderer interface {
	Render(ctx context.Context, selector string, page PageConfig) ([]byte, error)
}

// Service validates export targets and delegates rendering.
type Service struct {
	inspector Inspector
	renderer  Renderer
	logger    *slog.Logger
	defaults  Options
}

// New creates a Service reading element state from in and rendering
// with r.
func New(in Inspector, r Renderer, opts ...Option) *Service {
	cfg := serviceConfig{defaults: DefaultOptions()}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	return &Service{
		inspector: in,
		renderer:  r,
		logger:    cfg.logger,
		defaults:  cfg.defaults,
	}
}

// GeneratePDF renders the element matching selector. If opts is nil the
// service defaults are used.
func (s *Service) GeneratePDF(ctx context.Context, selector string, opts *Options) (*Result, error) {
	resolved := opts.merged(s.defaults)

	if err := s.preflight(ctx, selector); err != nil {
		return nil, fmt.Errorf("export: generating %q: %w", selector, err)
	}

	data, err := s.renderer.Render(ctx, selector, resolved.Page)
	if err != nil {
		return nil, fmt.Errorf("export: generating %q: %w", selector, err)
	}

	s.logger.DebugContext(ctx, "export: generated pdf",
		slog.String("selector", selector),
		slog.Int("bytes", len(data)),
	)
	return NewResult(data, resolved.Filename), nil
}

// SavePDF renders the element matching selector and writes it to
// filename. An empty filename falls back to the options' Filename and then
// to [DefaultFilename].
func (s *Service) SavePDF(ctx context.Context, selector, filename string, opts *Options) error {
	if filename != "" {
		o := Options{}
		if opts != nil {
			o = *opts
		}
		o.Filename = filename
		opts = &o
	}

	res, err := s.GeneratePDF(ctx, selector, opts)
	if err != nil {
		return err
	}
	if err := res.WriteToFile(res.Filename(), 0o644); err != nil {
		return fmt.Errorf("export: saving %q: %w", res.Filename(), err)
	}

	s.logger.InfoContext(ctx, "export: saved pdf",
		slog.String("selector", selector),
		slog.String("file", res.Filename()),
	)
	return nil
}

func (s *Service) preflight(ctx context.Context, selector string) error {
	st, err := s.inspector.Inspect(ctx, selector)
	if err != nil {
		return fmt.Errorf("inspecting element: %w", err)
	}
	if err := validate(selector, st); err != nil {
		return err
	}
	return s.inspector.WaitImages(ctx, selector)
}

func validate(selector string, st ElementState) error {
	var p Problem
	switch {
	case !st.Found:
		p = ProblemMissing
	case st.Empty:
		p = ProblemEmpty
	case !st.Visible:
		p = ProblemHidden
	case st.Width <= 0 || st.Height <= 0:
		p = ProblemZeroSize
	default:
		return nil
	}
	return &ElementError{Selector: selector, Problem: p}
}
