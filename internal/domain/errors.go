package domain

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a chat or delete targets a session
// whose collection does not exist, either because no upload ever happened
// or because the session was already destroyed.
var ErrSessionNotFound = errors.New("session not found")

// InputError marks a user-correctable problem with the request itself:
// a missing file, an empty conversation history, a missing session id.
// It is never retried.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string {
	return e.Msg
}

// NewInputError builds an InputError with the given message.
func NewInputError(format string, args ...any) *InputError {
	return &InputError{Msg: fmt.Sprintf(format, args...)}
}

// DependencyError marks a failure in one of the external collaborators:
// the document extractor, the embedder, the vector store, or the
// completion service. The underlying error is preserved for the caller.
type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}

// NewDependencyError wraps err as a failure of the named dependency call.
func NewDependencyError(op string, err error) *DependencyError {
	return &DependencyError{Op: op, Err: err}
}
