package export

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the package.
var (
	// ErrInvalidElement is wrapped by every [ElementError].
	ErrInvalidElement = errors.New("export: invalid element")

	// ErrImageLoad is wrapped by every [ImageLoadError].
	ErrImageLoad = errors.New("export: image failed to load")
)

// Problem describes why an element cannot be exported.
type Problem string

const (
	ProblemMissing  Problem = "not found"
	ProblemEmpty    Problem = "has no content"
	ProblemHidden   Problem = "is not visible"
	ProblemZeroSize Problem = "has zero width or height"
)

// ElementError is returned when the export target fails validation.
type ElementError struct {
	Selector string
	Problem  Problem
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("export: element %q %s", e.Selector, e.Problem)
}

func (e *ElementError) Unwrap() error {
	return ErrInvalidElement
}

// ImageLoadError is returned when an image inside the target fails to load.
type ImageLoadError struct {
	Selector string
	Src      string
}

func (e *ImageLoadError) Error() string {
	return fmt.Sprintf("export: image %q in %q failed to load", e.Src, e.Selector)
}

func (e *ImageLoadError) Unwrap() error {
	return ErrImageLoad
}
