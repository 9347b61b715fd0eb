// Package fault defines the error taxonomy shared by the tool and resource
// handlers.
//
// Three kinds exist, matching the three protocol outcomes a failed call can
// have: a ValidationError is the caller's fault and is surfaced verbatim, a
// NotFoundError means the requested capability does not exist, and an
// UpstreamError means the retrieval backend failed — it is logged in full but
// surfaced with a sanitized message so internal service details never cross
// the protocol boundary.
package fault

import (
	"errors"
	"fmt"
	"strings"
)

// FieldError describes a single invalid argument.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError aggregates every field-level problem found in a tool call's
// arguments. It is always recoverable by the caller.
type ValidationError struct {
	Tool   string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.String()
	}
	return fmt.Sprintf("invalid arguments for %s: %s", e.Tool, strings.Join(msgs, "; "))
}

// NotFoundError reports an unknown tool name or resource URI.
type NotFoundError struct {
	Kind string // "tool" or "resource"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown %s: %s", e.Kind, e.Name)
}

// UpstreamError wraps a failure from the retrieval backend. Status is the
// HTTP status code when one was received, zero for transport-level failures.
type UpstreamError struct {
	Op     string
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: upstream returned %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Validation builds a ValidationError for a tool from field errors.
func Validation(tool string, fields ...FieldError) *ValidationError {
	return &ValidationError{Tool: tool, Fields: fields}
}

// Upstream wraps err as an UpstreamError for the named operation.
func Upstream(op string, status int, err error) *UpstreamError {
	return &UpstreamError{Op: op, Status: status, Err: err}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var n *NotFoundError
	return errors.As(err, &n)
}

// IsUpstream reports whether err is (or wraps) an UpstreamError.
func IsUpstream(err error) bool {
	var u *UpstreamError
	return errors.As(err, &u)
}
