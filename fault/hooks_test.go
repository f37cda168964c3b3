package fault

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRecover_DispatchesPanic(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	var got *Report
	_ = svc.Register(KindUncaught, func(_ context.Context, r *Report) error {
		got = r
		return nil
	})

	func() {
		defer svc.Recover(context.Background())
		panic("nil map write")
	}()

	if got == nil {
		t.Fatal("panic was not dispatched")
	}
	var pe *PanicError
	if !errors.As(got.Err, &pe) || pe.Value != "nil map write" {
		t.Errorf("Err = %v, want *PanicError", got.Err)
	}
	if got.Stack == "" {
		t.Error("Stack is empty")
	}
}

func TestGo_DispatchesRejection(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	kinds := make(chan Kind, 2)
	record := func(_ context.Context, r *Report) error {
		kinds <- r.Kind
		return nil
	}
	_ = svc.Register(KindRejection, record)
	_ = svc.Register(KindUncaught, record)

	svc.Go(context.Background(), func(context.Context) error { return errors.New("fetch failed") })
	svc.Go(context.Background(), func(context.Context) error { panic("worker crashed") })
	svc.Go(context.Background(), func(context.Context) error { return nil })
	svc.Wait()
	close(kinds)

	seen := map[Kind]int{}
	for k := range kinds {
		seen[k]++
	}
	if seen[KindRejection] != 1 || seen[KindUncaught] != 1 {
		t.Errorf("dispatched kinds = %v", seen)
	}
}

func TestMiddleware_RecoversPanic(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	var got *Report
	_ = svc.Register(KindUncaught, func(_ context.Context, r *Report) error {
		got = r
		return nil
	})

	h := svc.Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("template missing")
	}))

	req := httptest.NewRequest(http.MethodGet, "http://example.test/report?id=7", nil)
	req.Header.Set("User-Agent", "pagekit-test")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if got == nil {
		t.Fatal("panic was not dispatched")
	}
	if got.UserAgent != "pagekit-test" {
		t.Errorf("UserAgent = %q", got.UserAgent)
	}
	if got.URL != "http://example.test/report?id=7" {
		t.Errorf("URL = %q", got.URL)
	}
}

func TestMiddleware_PassesThrough(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	h := svc.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := PageFromContext(r.Context()); !ok {
			t.Error("page info missing from request context")
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d", rec.Code)
	}
}
