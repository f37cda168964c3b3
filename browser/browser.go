package browser

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/porticus-lab/pagekit/export"
)

// Browser manages a headless browser instance shared by its tabs. It is
// safe for concurrent use.
//
// Call [Browser.Close] when the Browser is no longer needed to release
// the browser process.
type Browser struct {
	cfg           browserConfig
	logger        *slog.Logger
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// New starts a headless browser with the given options.
func New(opts ...Option) (*Browser, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.autoDownload && cfg.chromePath == "" {
		path, err := resolveBrowser()
		if err != nil {
			return nil, err
		}
		cfg.chromePath = path
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("headless", cfg.headless),
	)
	if cfg.chromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(cfg.chromePath))
	}
	if cfg.noSandbox {
		allocOpts = append(allocOpts, chromedp.Flag("no-sandbox", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Start the browser eagerly so errors surface at creation time.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("browser: starting chrome: %w", err)
	}
	logger.Debug("browser: started", slog.String("chrome", cfg.chromePath))

	return &Browser{
		cfg:           cfg,
		logger:        logger,
		allocCtx:      allocCtx,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}, nil
}

// Close releases all resources held by the Browser, including the
// browser process and every open tab. Close is idempotent.
func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	b.browserCancel()
	b.allocCancel()
	return nil
}

func (b *Browser) checkClosed() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	return nil
}

// Open creates a tab and navigates it to rawURL.
func (b *Browser) Open(ctx context.Context, rawURL string) (*Tab, error) {
	if err := b.checkClosed(); err != nil {
		return nil, err
	}
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return nil, fmt.Errorf("browser: invalid URL %q: %w", rawURL, err)
	}
	return b.open(ctx, rawURL, "")
}

// OpenHTML writes html to a temporary file and opens it in a new tab. The
// file is removed when the tab is closed.
func (b *Browser) OpenHTML(ctx context.Context, html string) (*Tab, error) {
	if err := b.checkClosed(); err != nil {
		return nil, err
	}
	name, err := writeTemp(html)
	if err != nil {
		return nil, err
	}
	t, err := b.open(ctx, "file://"+name, name)
	if err != nil {
		os.Remove(name)
		return nil, err
	}
	return t, nil
}

// OpenFile opens a local HTML file in a new tab.
func (b *Browser) OpenFile(ctx context.Context, path string) (*Tab, error) {
	if err := b.checkClosed(); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("browser: resolving path: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("browser: %w", err)
	}
	return b.open(ctx, "file://"+abs, "")
}

func (b *Browser) open(ctx context.Context, targetURL, tempFile string) (*Tab, error) {
	tabCtx, tabCancel := chromedp.NewContext(b.browserCtx)
	t := &Tab{
		browser:  b,
		ctx:      tabCtx,
		cancel:   tabCancel,
		tempFile: tempFile,
	}
	chromedp.ListenTarget(tabCtx, t.onEvent)

	// The first Run creates the target and binds it to tabCtx, so it must
	// not carry a deadline.
	if err := chromedp.Run(tabCtx); err != nil {
		tabCancel()
		return nil, fmt.Errorf("browser: creating tab: %w", err)
	}
	if err := t.run(ctx,
		chromedp.Navigate(targetURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		tabCancel()
		return nil, fmt.Errorf("browser: opening %s: %w", targetURL, err)
	}
	b.logger.DebugContext(ctx, "browser: tab opened", slog.String("url", targetURL))
	return t, nil
}

// PrintHTML renders an HTML document to PDF in a throwaway tab.
func (b *Browser) PrintHTML(ctx context.Context, html string, pg export.PageConfig) ([]byte, error) {
	t, err := b.OpenHTML(ctx, html)
	if err != nil {
		return nil, err
	}
	defer t.Close()
	return t.print(ctx, pg)
}

// print renders the whole tab with Page.printToPDF.
func (t *Tab) print(ctx context.Context, pg export.PageConfig) ([]byte, error) {
	width, height := pg.PaperInches()
	marginTop, marginRight, marginBottom, marginLeft := pg.MarginInches()

	var buf []byte
	if err := t.run(ctx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			params := page.PrintToPDF().
				WithPaperWidth(width).
				WithPaperHeight(height).
				WithMarginTop(marginTop).
				WithMarginRight(marginRight).
				WithMarginBottom(marginBottom).
				WithMarginLeft(marginLeft).
				WithScale(pg.Scale).
				WithPrintBackground(!pg.OmitBackground).
				WithLandscape(pg.Orientation == export.Landscape).
				WithPreferCSSPageSize(pg.PreferCSSPageSize).
				WithDisplayHeaderFooter(pg.DisplayHeaderFooter)
			if pg.HeaderTemplate != "" {
				params = params.WithHeaderTemplate(pg.HeaderTemplate)
			}
			if pg.FooterTemplate != "" {
				params = params.WithFooterTemplate(pg.FooterTemplate)
			}

			var err error
			buf, _, err = params.Do(ctx)
			return err
		}),
	); err != nil {
		return nil, fmt.Errorf("browser: printing pdf: %w", err)
	}
	return buf, nil
}

func writeTemp(html string) (string, error) {
	f, err := os.CreateTemp("", "pagekit-*.html")
	if err != nil {
		return "", fmt.Errorf("browser: creating temp file: %w", err)
	}
	name := f.Name()

	if _, err := f.WriteString(html); err != nil {
		f.Close()
		os.Remove(name)
		return "", fmt.Errorf("browser: writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("browser: closing temp file: %w", err)
	}

	abs, err := filepath.Abs(name)
	if err != nil {
		os.Remove(name)
		return "", fmt.Errorf("browser: resolving path: %w", err)
	}
	return abs, nil
}
