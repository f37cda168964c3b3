package fault

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the package.
var (
	// ErrInvalidHandler is wrapped by every [RegistrationError].
	ErrInvalidHandler = errors.New("fault: invalid handler")

	// ErrNothingToRetry is returned by [Boundary.Retry] before any call to
	// [Boundary.Run].
	ErrNothingToRetry = errors.New("fault: nothing to retry")
)

// RegistrationError is returned by [Service.Register] when the handler
// cannot be stored.
type RegistrationError struct {
	Kind   Kind
	Reason string
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("fault: registering handler for %q: %s", e.Kind, e.Reason)
}

func (e *RegistrationError) Unwrap() error {
	return ErrInvalidHandler
}

// PanicError carries a recovered panic value and the stack of the
// goroutine that panicked.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
