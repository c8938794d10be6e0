package gateway

import (
	"errors"
	"fmt"

	errs "github.com/cloudnook/mcpgw/internal/errors"
)

// Kind classifies why a backend call failed.
type Kind string

const (
	// KindTransport means the backend could not be reached or returned something unreadable.
	KindTransport Kind = "transport"

	// KindBusiness means the backend answered with a non-success envelope code.
	KindBusiness Kind = "business"

	// KindNotFound means the backend reported the requested entity does not exist.
	KindNotFound Kind = "not_found"

	// KindMissingParameter means the call was not attempted because a required parameter was absent.
	KindMissingParameter Kind = "missing_parameter"
)

// Failure is the error returned by every Backend operation.
// It wraps the sentinel error matching its Kind, so callers can use errors.Is.
type Failure struct {
	// Kind of failure.
	Kind Kind

	// Code is the envelope code, or the HTTP status code for transport failures when known.
	Code string

	// Message is safe to show to an operator.
	Message string

	// TraceID from the backend envelope, if any.
	TraceID string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements error.
func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Message, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Unwrap exposes both the sentinel for the failure kind and the underlying cause.
func (f *Failure) Unwrap() []error {
	wrapped := []error{f.sentinel()}
	if f.Err != nil {
		wrapped = append(wrapped, f.Err)
	}
	return wrapped
}

func (f *Failure) sentinel() error {
	switch f.Kind {
	case KindNotFound:
		return errs.ErrServerNotFound
	case KindMissingParameter:
		return errs.ErrMissingParameter
	case KindBusiness:
		return errs.ErrBusiness
	default:
		return errs.ErrTransport
	}
}

// AsFailure extracts a Failure from err.
// Errors that are not a Failure are reported as transport failures.
func AsFailure(err error) *Failure {
	if err == nil {
		return nil
	}

	var f *Failure
	if errors.As(err, &f) {
		return f
	}

	return &Failure{Kind: KindTransport, Message: err.Error(), Err: err}
}

// MissingParameter returns the failure for an absent required parameter.
func MissingParameter(name string) *Failure {
	return &Failure{
		Kind:    KindMissingParameter,
		Message: "Missing required parameter: " + name,
	}
}

// NotFound returns the failure for a server that does not exist.
func NotFound(serverID string) *Failure {
	return &Failure{
		Kind:    KindNotFound,
		Code:    CodeNotFound,
		Message: "Server not found: " + serverID,
	}
}

func transportFailure(msg string, err error) *Failure {
	return &Failure{Kind: KindTransport, Message: msg, Err: err}
}
