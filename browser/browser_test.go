package browser_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"strings"
	"testing"

	"github.com/porticus-lab/pagekit/browser"
	"github.com/porticus-lab/pagekit/export"
	"github.com/porticus-lab/pagekit/fault"
	"github.com/porticus-lab/pagekit/i18n"
)

// chromeAvailable reports whether a Chrome/Chromium executable is in PATH.
func chromeAvailable() bool {
	for _, name := range []string{
		"chromium-browser", "chromium", "google-chrome",
		"google-chrome-stable", "chrome",
	} {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}

func skipIfNoChrome(t *testing.T) {
	t.Helper()
	if !chromeAvailable() {
		t.Skip("skipping: Chrome/Chromium not found in PATH")
	}
}

func newTestBrowser(t *testing.T) *browser.Browser {
	t.Helper()
	skipIfNoChrome(t)
	b, err := browser.New(browser.WithNoSandbox())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

func openHTML(t *testing.T, b *browser.Browser, html string) *browser.Tab {
	t.Helper()
	tab, err := b.OpenHTML(context.Background(), html)
	if err != nil {
		t.Fatalf("OpenHTML: %v", err)
	}
	t.Cleanup(func() { tab.Close() })
	return tab
}

// isPDF checks whether data starts with the PDF magic number.
func isPDF(data []byte) bool {
	return len(data) > 4 && string(data[:5]) == "%PDF-"
}

const reportPage = `<!DOCTYPE html>
<html>
<head><style>#report { width: 400px; padding: 1rem; background: #eef; }</style></head>
<body>
  <div id="report"><h1>Quarterly report</h1><p>All good.</p></div>
  <div id="empty"></div>
  <div id="hidden" style="display:none">secret</div>
  <div id="flat" style="height:0;overflow:hidden">flat</div>
  <div id="broken"><img src="file:///nonexistent/logo.png"></div>
</body>
</html>`

func TestInspect(t *testing.T) {
	tab := openHTML(t, newTestBrowser(t), reportPage)
	ctx := context.Background()

	tests := []struct {
		selector string
		check    func(export.ElementState) bool
	}{
		{"#report", func(s export.ElementState) bool { return s.Found && s.Visible && !s.Empty && s.Width > 0 && s.Height > 0 }},
		{"#missing", func(s export.ElementState) bool { return !s.Found }},
		{"#empty", func(s export.ElementState) bool { return s.Found && s.Empty }},
		{"#hidden", func(s export.ElementState) bool { return s.Found && !s.Visible }},
		{"#flat", func(s export.ElementState) bool { return s.Found && s.Height == 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			st, err := tab.Inspect(ctx, tt.selector)
			if err != nil {
				t.Fatalf("Inspect: %v", err)
			}
			if !tt.check(st) {
				t.Errorf("unexpected state %+v", st)
			}
		})
	}
}

func TestWaitImages_Broken(t *testing.T) {
	tab := openHTML(t, newTestBrowser(t), reportPage)

	err := tab.WaitImages(context.Background(), "#broken")
	if !errors.Is(err, export.ErrImageLoad) {
		t.Fatalf("err = %v, want ErrImageLoad", err)
	}
	if err := tab.WaitImages(context.Background(), "#report"); err != nil {
		t.Errorf("WaitImages(#report): %v", err)
	}
}

func TestExportService(t *testing.T) {
	tab := openHTML(t, newTestBrowser(t), reportPage)
	svc := export.New(tab, tab)

	res, err := svc.GeneratePDF(context.Background(), "#report", &export.Options{
		Page: export.PageConfig{Size: export.Letter, Orientation: export.Landscape},
	})
	if err != nil {
		t.Fatalf("GeneratePDF: %v", err)
	}
	if !isPDF(res.Bytes()) {
		t.Fatal("output is not a valid PDF")
	}

	_, err = svc.GeneratePDF(context.Background(), "#flat", nil)
	var ee *export.ElementError
	if !errors.As(err, &ee) || ee.Problem != export.ProblemZeroSize {
		t.Errorf("err = %v, want zero-size ElementError", err)
	}
}

func TestSurface(t *testing.T) {
	tab := openHTML(t, newTestBrowser(t), `<html><body>
		<div id="loading-overlay">Loading</div>
		<button id="btn-submit-ia" disabled>Send</button>
	</body></html>`)

	svc := fault.New(fault.WithSurface(tab), fault.WithToastDuration(0))
	svc.Init()
	ctx := context.Background()

	svc.Handle(ctx, "custom", errors.New("something broke"))
	svc.Handle(ctx, fault.KindAPI, errors.New("bad gateway"))

	html, err := tab.HTML(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`id="toast-container"`,
		"something broke",
		`id="loading-overlay" hidden=""`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("document missing %q:\n%s", want, html)
		}
	}
	if strings.Contains(html, `disabled=""`) {
		t.Error("submit button still disabled")
	}
	alerts := tab.Alerts()
	if len(alerts) != 1 || !strings.Contains(alerts[0], "bad gateway") {
		t.Errorf("alerts = %v", alerts)
	}
}

type dictLoader map[string]i18n.Dictionary

func (l dictLoader) Load(_ context.Context, code string) (i18n.Dictionary, error) {
	return l[code], nil
}

func TestLanguageService(t *testing.T) {
	tab := openHTML(t, newTestBrowser(t), `<html lang="es"><body>
		<h1 id="title" data-i18n="title">Inicio</h1>
		<input id="q" data-i18n-placeholder="search">
	</body></html>`)

	svc := i18n.New(dictLoader{
		"es": {"title": "Inicio", "search": "Buscar"},
		"en": {"title": "Home", "search": "Search"},
	}, i18n.WithPage(tab), i18n.WithSupported("es", "en"))
	ctx := context.Background()

	if err := svc.Initialize(ctx, "es"); err != nil {
		t.Fatal(err)
	}
	if err := svc.SetLanguage(ctx, "en"); err != nil {
		t.Fatal(err)
	}

	html, err := tab.HTML(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`lang="en"`, ">Home</h1>", `placeholder="Search"`} {
		if !strings.Contains(html, want) {
			t.Errorf("document missing %q:\n%s", want, html)
		}
	}
}

func TestLocalStorage(t *testing.T) {
	b := newTestBrowser(t)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body><p>storage</p></body></html>"))
	}))
	t.Cleanup(ts.Close)

	ctx := context.Background()
	tab, err := b.Open(ctx, ts.URL)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { tab.Close() })

	store := tab.Storage()
	if v, err := store.Get(ctx, i18n.PreferenceKey); err != nil || v != "" {
		t.Fatalf("Get on empty storage = %q, %v", v, err)
	}
	if err := store.Set(ctx, i18n.PreferenceKey, "en"); err != nil {
		t.Fatal(err)
	}
	if v, _ := store.Get(ctx, i18n.PreferenceKey); v != "en" {
		t.Errorf("Get = %q, want en", v)
	}
}

func TestConvertAfterClose(t *testing.T) {
	skipIfNoChrome(t)

	b, err := browser.New(browser.WithNoSandbox())
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	_, err = b.PrintHTML(context.Background(), "<p>test</p>", export.DefaultPageConfig())
	if !errors.Is(err, browser.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestOpen_InvalidURL(t *testing.T) {
	b := newTestBrowser(t)
	if _, err := b.Open(context.Background(), "not a url"); err == nil {
		t.Fatal("expected error for invalid URL")
	}
}
