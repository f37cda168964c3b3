package browser

import "errors"

// Sentinel errors returned by the package.
var (
	// ErrClosed is returned when attempting to use a closed [Browser] or [Tab].
	ErrClosed = errors.New("browser: closed")
)
