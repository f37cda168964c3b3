package i18n

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the package.
var (
	// ErrUnsupported is wrapped by every [UnsupportedError].
	ErrUnsupported = errors.New("i18n: unsupported language")

	// ErrFetch is wrapped by every [FetchError].
	ErrFetch = errors.New("i18n: fetching dictionary")
)

// UnsupportedError is returned for a language code outside the allow-list.
type UnsupportedError struct {
	Code string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("i18n: unsupported language %q", e.Code)
}

func (e *UnsupportedError) Unwrap() error {
	return ErrUnsupported
}

// FetchError is returned when a dictionary cannot be retrieved, either
// because the transport failed or because the server answered with a
// non-2xx status.
type FetchError struct {
	Code   string
	URL    string
	Status int   // HTTP status, zero on transport failure.
	Err    error // Transport error, nil on a bad status.
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("i18n: fetching %q from %s: %v", e.Code, e.URL, e.Err)
	}
	return fmt.Sprintf("i18n: fetching %q from %s: status %d", e.Code, e.URL, e.Status)
}

func (e *FetchError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrFetch, e.Err}
	}
	return []error{ErrFetch}
}
