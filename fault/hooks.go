package fault

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Recover dispatches a panic in progress as [KindUncaught]. It must be
// deferred directly:
//
//	defer svc.Recover(ctx)
//
// The panic is not re-raised.
func (s *Service) Recover(ctx context.Context) {
	if v := recover(); v != nil {
		s.Handle(ctx, KindUncaught, &PanicError{Value: v, Stack: debug.Stack()})
	}
}

// Go runs fn in a new goroutine. An error returned by fn is dispatched as
// [KindRejection]; a panic is dispatched as [KindUncaught].
func (s *Service) Go(ctx context.Context, fn func(context.Context) error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.Recover(ctx)

		if err := fn(ctx); err != nil {
			s.Handle(ctx, KindRejection, err)
		}
	}()
}

// Wait blocks until every goroutine started with [Service.Go] has returned.
func (s *Service) Wait() {
	s.wg.Wait()
}

// Middleware recovers panics raised by next, dispatches them as
// [KindUncaught] and answers 500. The request's user agent and URL are
// attached to the context seen by next and by the handlers.
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithPage(r.Context(), PageInfo{
			UserAgent: r.UserAgent(),
			URL:       requestURL(r),
		})

		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			report := s.Handle(ctx, KindUncaught, &PanicError{Value: v, Stack: debug.Stack()})
			s.logger.DebugContext(ctx, "fault: recovered handler panic",
				slog.String("report_id", report.ID),
				slog.String("path", r.URL.Path),
			)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}
