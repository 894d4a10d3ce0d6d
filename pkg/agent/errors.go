package agent

import (
	"errors"
	"fmt"
)

// Kind classifies an agent failure.
type Kind string

const (
	// KindUpstreamFailure means the completion capability rejected or
	// failed the call (quota, auth, timeout, malformed response).
	KindUpstreamFailure Kind = "UPSTREAM_FAILURE"
	// KindEmptyResponse means the completion call succeeded but returned
	// no usable content.
	KindEmptyResponse Kind = "EMPTY_RESPONSE"
	// KindToolFailure means an auxiliary capability (search) failed before
	// the completion capability was reached.
	KindToolFailure Kind = "TOOL_FAILURE"
)

// Error is a structured agent failure with a kind, the failing agent's
// name, and the collaborator error that caused it.
type Error struct {
	Kind    Kind
	Agent   string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s: %v", e.Kind, e.Agent, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%s] %s: %s", e.Kind, e.Agent, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new Error with the given kind, agent name and message.
func NewError(kind Kind, agentName, message string) *Error {
	return &Error{Kind: kind, Agent: agentName, Message: message}
}

// WithCause attaches the collaborator error that caused the failure.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause

	return e
}

// IsKind reports whether err is an agent Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var agentErr *Error
	if errors.As(err, &agentErr) {
		return agentErr.Kind == kind
	}

	return false
}
