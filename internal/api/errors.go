package api

import (
	"errors"
	"fmt"
)

// ErrInvalidRequest marks errors caused by a malformed query parameter.
var ErrInvalidRequest = errors.New("invalid request")

// paramError ties a failure to the query parameter that caused it. It matches
// both ErrInvalidRequest and the underlying cause, e.g. riff.ErrInvalidPath.
type paramError struct {
	param string
	err   error
}

func (e *paramError) Error() string {
	return fmt.Sprintf("query parameter %q: %v", e.param, e.err)
}

func (e *paramError) Unwrap() []error {
	return []error{ErrInvalidRequest, e.err}
}

func invalidParam(param, msg string) error {
	return &paramError{param: param, err: errors.New(msg)}
}

func wrapParam(param string, err error) error {
	return &paramError{param: param, err: err}
}

// errorParam returns the query parameter err is attributed to, if any.
func errorParam(err error) string {
	var pe *paramError
	if errors.As(err, &pe) {
		return pe.param
	}
	return ""
}
