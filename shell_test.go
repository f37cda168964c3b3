package pagekit_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/porticus-lab/pagekit"
	"github.com/porticus-lab/pagekit/dom"
	"github.com/porticus-lab/pagekit/export"
	"github.com/porticus-lab/pagekit/fault"
	"github.com/porticus-lab/pagekit/i18n"
)

const page = `<!DOCTYPE html>
<html lang="es"><body>
  <h1 id="heading" data-i18n="home.title">Inicio</h1>
  <div id="loading-overlay">Cargando</div>
  <button id="btn-submit-ia" disabled>Enviar</button>
</body></html>`

var dictionaries = fstest.MapFS{
	"lang/es.json": {Data: []byte(`{"home":{"title":"Inicio"}}`)},
	"lang/en.json": {Data: []byte(`{"home":{"title":"Home"}}`)},
}

type fakeExporter struct {
	rendered []string
}

func (f *fakeExporter) Inspect(context.Context, string) (export.ElementState, error) {
	return export.ElementState{Found: true, Visible: true, Width: 100, Height: 50}, nil
}

func (f *fakeExporter) WaitImages(context.Context, string) error { return nil }

func (f *fakeExporter) Render(_ context.Context, selector string, _ export.PageConfig) ([]byte, error) {
	f.rendered = append(f.rendered, selector)
	return []byte("%PDF-1.7"), nil
}

func newShell(t *testing.T, opts ...pagekit.Option) (*pagekit.Shell, *dom.Document, *bytes.Buffer) {
	t.Helper()
	doc, err := dom.ParseString(page)
	if err != nil {
		t.Fatal(err)
	}
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	opts = append([]pagekit.Option{
		pagekit.WithLogger(logger),
		pagekit.WithPage(doc),
		pagekit.WithFaultOptions(fault.WithToastDuration(0)),
	}, opts...)
	sh := pagekit.New(i18n.FSLoader{FS: dictionaries}, opts...)
	t.Cleanup(func() { sh.Close() })
	return sh, doc, &logs
}

func TestShell_Start(t *testing.T) {
	sh, doc, _ := newShell(t, pagekit.WithLanguageOptions(i18n.WithAcceptLanguage("en-GB,en;q=0.8")))
	ctx := context.Background()

	if err := sh.Start(ctx, "es"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !sh.Faults.Initialized() {
		t.Error("error hooks not installed")
	}
	if got := sh.Languages.Current(); got != "en" {
		t.Errorf("Current = %q, want negotiated en", got)
	}
	if got, _ := doc.Text("heading"); got != "Home" {
		t.Errorf("heading = %q", got)
	}
	if doc.Lang() != "en" {
		t.Errorf("lang = %q", doc.Lang())
	}
	if sh.Exports != nil {
		t.Error("Exports should be nil without an exporter")
	}
}

func TestShell_StartFailureIsReported(t *testing.T) {
	sh, doc, logs := newShell(t, pagekit.WithLanguageOptions(i18n.WithSupported("es", "fr")))

	err := sh.Start(context.Background(), "es")
	if !errors.Is(err, i18n.ErrFetch) {
		t.Fatalf("err = %v, want ErrFetch", err)
	}
	if len(doc.Toasts()) != 1 {
		t.Errorf("toasts = %v, want one error toast", doc.Toasts())
	}
	if !strings.Contains(logs.String(), `"kind":"network"`) {
		t.Errorf("network error not logged:\n%s", logs)
	}
}

func TestShell_ServicesShareThePage(t *testing.T) {
	exp := &fakeExporter{}
	sh, doc, _ := newShell(t, pagekit.WithExporter(exp, exp))
	ctx := context.Background()
	if err := sh.Start(ctx, "es"); err != nil {
		t.Fatal(err)
	}

	sh.Faults.Handle(ctx, fault.KindAPI, errors.New("upstream timeout"))
	if _, ok := doc.Attr(fault.ElementLoadingOverlay, "hidden"); !ok {
		t.Error("overlay not hidden")
	}
	if _, ok := doc.Attr(fault.ElementSubmitButton, "disabled"); ok {
		t.Error("submit button still disabled")
	}

	res, err := sh.Exports.GeneratePDF(ctx, "#heading", nil)
	if err != nil {
		t.Fatalf("GeneratePDF: %v", err)
	}
	if res.Filename() != export.DefaultFilename || len(exp.rendered) != 1 {
		t.Errorf("filename = %q, rendered = %v", res.Filename(), exp.rendered)
	}
}
