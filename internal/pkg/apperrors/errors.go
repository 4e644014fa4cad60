package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the HTTP layer can pick a status and the
// caller can decide what state to keep. No kind triggers a retry.
type Kind string

const (
	KindConnection Kind = "connection" // backend unreachable, fatal to startup
	KindRetrieval  Kind = "retrieval"  // search call failed
	KindCompletion Kind = "completion" // completion call failed or timed out
	KindParse      Kind = "parse"      // model output not in the expected shape
	KindValidation Kind = "validation" // user input rejected before any backend call
	KindNotFound   Kind = "not_found"
)

// Error is the typed failure carried up to the error-handler middleware
type Error struct {
	Kind    Kind
	Op      string // e.g. "retrieval.Search", "assistant.GenerateIdeas"
	Message string // user-facing message
	Err     error  // wrapped cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, op, message string, err error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Err: err}
}

func Connection(op string, err error) *Error {
	return New(KindConnection, op, "backend unreachable", err)
}

func Retrieval(op string, err error) *Error {
	return New(KindRetrieval, op, "search request failed", err)
}

func Completion(op string, err error) *Error {
	return New(KindCompletion, op, "completion request failed", err)
}

func Parse(op string, err error) *Error {
	return New(KindParse, op, "failed to generate a valid response", err)
}

func Validation(op, message string) *Error {
	return New(KindValidation, op, message, nil)
}

func NotFound(op, message string) *Error {
	return New(KindNotFound, op, message, nil)
}

// KindOf extracts the kind from any error in the chain; unknown errors
// report an empty kind.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
