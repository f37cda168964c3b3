package fault

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"
)

// Report is the structured record built for every handled error.
type Report struct {
	ID      string
	Time    time.Time
	Kind    Kind
	Message string
	// Stack is the panic stack for a *PanicError. Otherwise it starts at
	// the first caller outside this package.
	Stack     string
	UserAgent string
	URL       string

	// Err is the error that was handled. It may be nil.
	Err error
}

// LogValue implements [slog.LogValuer].
func (r *Report) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("id", r.ID),
		slog.Time("timestamp", r.Time),
		slog.String("kind", string(r.Kind)),
		slog.String("message", r.Message),
	}
	if r.UserAgent != "" {
		attrs = append(attrs, slog.String("user_agent", r.UserAgent))
	}
	if r.URL != "" {
		attrs = append(attrs, slog.String("url", r.URL))
	}
	if r.Stack != "" {
		attrs = append(attrs, slog.String("stack", r.Stack))
	}
	return slog.GroupValue(attrs...)
}

// PageInfo describes the page an error originated from.
type PageInfo struct {
	UserAgent string
	URL       string
}

type pageKey struct{}

// WithPage returns a copy of ctx carrying info. Reports built from the
// returned context include the user agent and URL.
func WithPage(ctx context.Context, info PageInfo) context.Context {
	return context.WithValue(ctx, pageKey{}, info)
}

// PageFromContext returns the PageInfo stored by [WithPage].
func PageFromContext(ctx context.Context) (PageInfo, bool) {
	info, ok := ctx.Value(pageKey{}).(PageInfo)
	return info, ok
}

func messageOf(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}

func stackOf(err error) string {
	var pe *PanicError
	if errors.As(err, &pe) && len(pe.Stack) > 0 {
		return string(pe.Stack)
	}
	return callerStack()
}

// pkgPrefix is the symbol prefix shared by every function in this package.
var pkgPrefix = func() string {
	pc, _, _, _ := runtime.Caller(0)
	name := runtime.FuncForPC(pc).Name()
	slash := strings.LastIndex(name, "/")
	return name[:slash+strings.Index(name[slash:], ".")+1]
}()

// callerStack formats the current goroutine's stack in the layout of
// debug.Stack, leaving out the frames of this package.
func callerStack() string {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	var sb strings.Builder
	for {
		f, more := frames.Next()
		internal := strings.HasPrefix(f.Function, pkgPrefix) && !strings.HasSuffix(f.File, "_test.go")
		if !internal {
			fmt.Fprintf(&sb, "%s\n\t%s:%d\n", f.Function, f.File, f.Line)
		}
		if !more {
			break
		}
	}
	return sb.String()
}
