package argcore

import (
	"errors"
	"fmt"
)

// Sentinel errors for common reasoning error conditions.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrModelRequired indicates a Reasoner was asked to run without a
	// frozen graph model.
	ErrModelRequired = errors.New("model required")

	// ErrFrameworkRequired indicates an assumption-based task was run
	// without a framework attached.
	ErrFrameworkRequired = errors.New("framework required")

	// ErrUnknownTask indicates the requested task name is not recognized.
	ErrUnknownTask = errors.New("unknown task")

	// ErrInvalidOption indicates a functional option carried an
	// out-of-range or malformed value.
	ErrInvalidOption = errors.New("invalid option")
)

// Error kinds categorize errors by their type.
const (
	// KindStructural represents errors raised by graph or framework
	// validation (dangling references, duplicate ids, invalid enums).
	KindStructural = "structural"

	// KindConfiguration represents errors related to options and config
	// files.
	KindConfiguration = "configuration"

	// KindNotFound represents errors where a referenced unit, argument,
	// or atom does not exist.
	KindNotFound = "not_found"

	// KindInternal represents internal reasoning errors.
	KindInternal = "internal"
)

// Error is a structured error type that wraps underlying errors with
// additional context about the operation that failed and the category of
// error.
//
// Error implements the error interface and supports error unwrapping,
// making it compatible with errors.Is() and errors.As().
//
// Example usage:
//
//	err := &Error{
//		Op:   "Reasoner.Extensions",
//		Kind: KindConfiguration,
//		Err:  ErrInvalidOption,
//	}
type Error struct {
	// Op is the operation that failed (e.g., "Reasoner.Run", "Config.Load").
	Op string

	// Kind categorizes the error (e.g., KindStructural, KindConfiguration).
	Kind string

	// Err is the underlying error that caused this error.
	Err error

	// Context provides additional context about the error (optional).
	// This can include unit ids, task names, or other debugging information.
	Context map[string]any
}

// Error implements the error interface, returning a formatted error message
// that includes the operation, kind, and underlying error.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("argcore: %s: %s", e.Op, e.Kind)
	}

	if len(e.Context) > 0 {
		return fmt.Sprintf("argcore: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}

	return fmt.Sprintf("argcore: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error, allowing errors.Is() and errors.As()
// to work correctly with wrapped errors.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements error matching for Error, allowing comparison based on
// the underlying error or the Error itself.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}

	// Check if target is an Error with matching Kind
	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	// Delegate to underlying error
	return errors.Is(e.Err, target)
}

// WithContext returns a new Error with the provided context added.
// This is useful for adding debugging information to errors.
func (e *Error) WithContext(ctx map[string]any) *Error {
	newErr := *e
	if newErr.Context == nil {
		newErr.Context = make(map[string]any)
	}
	for k, v := range ctx {
		newErr.Context[k] = v
	}
	return &newErr
}

// NewStructuralError creates a new Error with KindStructural.
func NewStructuralError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindStructural,
		Err:  err,
	}
}

// NewConfigurationError creates a new Error with KindConfiguration.
func NewConfigurationError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindConfiguration,
		Err:  err,
	}
}

// NewNotFoundError creates a new Error with KindNotFound.
func NewNotFoundError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindNotFound,
		Err:  err,
	}
}

// NewInternalError creates a new Error with KindInternal.
func NewInternalError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindInternal,
		Err:  err,
	}
}
