package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/porticus-lab/pagekit/export"
	"github.com/porticus-lab/pagekit/fault"
	"github.com/porticus-lab/pagekit/i18n"
)

var (
	_ export.Inspector = (*Tab)(nil)
	_ export.Renderer  = (*Tab)(nil)
	_ fault.Surface    = (*Tab)(nil)
	_ i18n.Page        = (*Tab)(nil)
)

// Tab is one page open in a [Browser].
type Tab struct {
	browser  *Browser
	ctx      context.Context
	cancel   context.CancelFunc
	tempFile string

	mu     sync.Mutex
	closed bool
	alerts []string
}

// Close closes the tab. Close is idempotent.
func (t *Tab) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true
	t.cancel()
	if t.tempFile != "" {
		os.Remove(t.tempFile)
	}
	return nil
}

// Alerts returns the messages of the JavaScript dialogs the tab has
// shown. Dialogs are accepted automatically.
func (t *Tab) Alerts() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.alerts...)
}

func (t *Tab) onEvent(ev any) {
	switch ev := ev.(type) {
	case *page.EventJavascriptDialogOpening:
		t.mu.Lock()
		t.alerts = append(t.alerts, ev.Message)
		t.mu.Unlock()

		// Listeners must not block; answer the dialog from another goroutine.
		go func() {
			if err := chromedp.Run(t.ctx, page.HandleJavaScriptDialog(true)); err != nil {
				t.browser.logger.Warn("browser: accepting dialog", slog.Any("error", err))
			}
		}()
	}
}

// run executes actions in the tab. The tab's own context owns the target;
// ctx only bounds this call.
func (t *Tab) run(ctx context.Context, actions ...chromedp.Action) error {
	t.mu.Lock()
	closed := t.closed
	t.mu.Unlock()
	if closed {
		return ErrClosed
	}
	if err := t.browser.checkClosed(); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(t.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if d := t.browser.cfg.timeout; d > 0 {
		var tcancel context.CancelFunc
		runCtx, tcancel = context.WithTimeout(runCtx, d)
		defer tcancel()
	}
	return chromedp.Run(runCtx, actions...)
}

func (t *Tab) eval(ctx context.Context, expr string, res any) error {
	return t.run(ctx, chromedp.Evaluate(expr, res))
}

func (t *Tab) evalAsync(ctx context.Context, expr string, res any) error {
	return t.run(ctx, chromedp.Evaluate(expr, res, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
		return p.WithAwaitPromise(true)
	}))
}

// call evaluates fn, a JavaScript function expression, applied to args
// encoded as JSON.
func (t *Tab) call(ctx context.Context, res any, fn string, args ...any) error {
	expr := "(" + fn + ")("
	for i, a := range args {
		arg, err := jsonArg(a)
		if err != nil {
			return err
		}
		if i > 0 {
			expr += ","
		}
		expr += arg
	}
	expr += ")"

	if res == nil {
		var ignored bool
		res = &ignored
	}
	return t.eval(ctx, expr, res)
}

func jsonArg(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("browser: encoding argument: %w", err)
	}
	return string(b), nil
}

// HTML returns the serialized document.
func (t *Tab) HTML(ctx context.Context) (string, error) {
	var out string
	if err := t.eval(ctx, "document.documentElement.outerHTML", &out); err != nil {
		return "", fmt.Errorf("browser: reading document: %w", err)
	}
	return out, nil
}
