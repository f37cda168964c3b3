package fault

import (
	"context"
	"time"
)

// Element IDs the built-in handlers and page implementations agree on.
const (
	ElementLoadingOverlay = "loading-overlay"
	ElementSubmitButton   = "btn-submit-ia"
	ElementToastContainer = "toast-container"
	ElementBoundary       = "error-boundary"
)

// Level is the severity a toast is rendered with.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Toast is a transient notification.
type Toast struct {
	ID      string
	Level   Level
	Message string

	// Duration after which the service dismisses the toast. Zero keeps it
	// until the user closes it.
	Duration time.Duration

	// Dismissible adds a close control.
	Dismissible bool
}

// Surface is the page a Service renders failures on.
type Surface interface {
	ShowToast(ctx context.Context, t Toast) error
	DismissToast(ctx context.Context, id string) error

	// Alert shows a blocking dialog.
	Alert(ctx context.Context, message string) error

	SetHidden(ctx context.Context, id string, hidden bool) error
	SetDisabled(ctx context.Context, id string, disabled bool) error

	ShowBoundary(ctx context.Context, message string) error
	HideBoundary(ctx context.Context) error
}
