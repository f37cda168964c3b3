package fault

// Kind labels a class of error and selects its handler.
type Kind string

// Built-in kinds. Any other non-empty string is a valid Kind.
const (
	// KindUncaught is used for recovered panics.
	KindUncaught Kind = "error"
	// KindRejection is used for errors returned by work started with [Service.Go].
	KindRejection Kind = "unhandledrejection"
	// KindAPI is used for failed calls to the backend. Its built-in handler
	// clears the loading overlay and shows a blocking alert.
	KindAPI Kind = "api"
	// KindStorage is used for local persistence failures. Its built-in
	// handler shows a blocking alert.
	KindStorage Kind = "storage"
	// KindNetwork is used when a dictionary or backend fetch fails.
	KindNetwork Kind = "network"
	// KindValidation is used for rejected user input.
	KindValidation Kind = "validation"
)

func (k Kind) String() string {
	return string(k)
}
