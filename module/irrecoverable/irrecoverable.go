package irrecoverable

import (
	"errors"
	"fmt"
)

// exception marks an error that must never be handled as an expected outcome. It
// signals a broken invariant, e.g. a caller asking a component about data the component
// provably never held. The error chain is preserved for diagnostics; callers must check
// IsException before classifying a wrapped sentinel as benign.
type exception struct {
	err error
}

func (e exception) Error() string {
	return e.err.Error()
}

func (e exception) Unwrap() error {
	return e.err
}

// NewException wraps err into an exception.
func NewException(err error) error {
	return exception{err: err}
}

// NewExceptionf formats an exception like fmt.Errorf.
func NewExceptionf(msg string, args ...interface{}) error {
	return NewException(fmt.Errorf(msg, args...))
}

// IsException reports whether err or any error it wraps is an exception.
func IsException(err error) bool {
	var e exception
	return errors.As(err, &e)
}
