package i18n

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
)

func TestHTTPLoader_Load(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/lang/en.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"greet":{"hello":"Hi {{name}}"}}`))
		case "/lang/bad.json":
			_, _ = w.Write([]byte(`{not json`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	l := NewHTTPLoader(srv.URL+"/", srv.Client())

	d, err := l.Load(context.Background(), "en")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if v, ok := d.Lookup("greet.hello"); !ok || v != "Hi {{name}}" {
		t.Errorf("Lookup = %q, %v", v, ok)
	}

	_, err = l.Load(context.Background(), "fr")
	var fe *FetchError
	if !errors.As(err, &fe) || fe.Status != http.StatusNotFound {
		t.Fatalf("err = %v, want FetchError with 404", err)
	}
	if !errors.Is(err, ErrFetch) {
		t.Error("FetchError does not wrap ErrFetch")
	}

	if _, err := l.Load(context.Background(), "bad"); err == nil {
		t.Error("expected decode error")
	}
}

func TestHTTPLoader_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPLoader(url, nil).Load(context.Background(), "en")
	var fe *FetchError
	if !errors.As(err, &fe) || fe.Err == nil {
		t.Fatalf("err = %v, want transport FetchError", err)
	}
	if !errors.Is(err, ErrFetch) {
		t.Error("FetchError does not wrap ErrFetch")
	}
}

func TestFSLoader_Load(t *testing.T) {
	fsys := fstest.MapFS{
		"lang/es.json": {Data: []byte(`{"title":"Hola"}`)},
	}

	d, err := FSLoader{FS: fsys}.Load(context.Background(), "es")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if v, _ := d.Lookup("title"); v != "Hola" {
		t.Errorf("title = %q", v)
	}

	if _, err := (FSLoader{FS: fsys}).Load(context.Background(), "en"); !errors.Is(err, ErrFetch) {
		t.Errorf("err = %v, want ErrFetch", err)
	}
}
