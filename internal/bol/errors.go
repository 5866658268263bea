package bol

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorKind classifies API failures so callers can pattern-match on the
// taxonomy instead of inspecting messages or status codes at every call site.
type ErrorKind string

const (
	// KindConfig means a required credential is absent. Never retried.
	KindConfig ErrorKind = "CONFIG"
	// KindClient is a terminal non-2xx response (4xx other than 429).
	KindClient ErrorKind = "CLIENT"
	// KindTransient is a retryable failure (429/5xx or a network error).
	KindTransient ErrorKind = "TRANSIENT"
	// KindTimeout is an aborted in-flight request. Retryable.
	KindTimeout ErrorKind = "TIMEOUT"
)

// Problem is the problem-details payload the upstream attaches to error
// responses.
type Problem struct {
	Type       string      `json:"type"`
	Title      string      `json:"title"`
	Status     int         `json:"status"`
	Detail     string      `json:"detail,omitempty"`
	Instance   string      `json:"instance,omitempty"`
	Violations []Violation `json:"violations,omitempty"`
}

type Violation struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// APIError is the single structured error type exposed by the client.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Problem *Problem
	msg     string
	err     error

	// retryAfter carries the upstream Retry-After hint, when present.
	retryAfter time.Duration
}

func (e *APIError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.msg, e.err.Error())
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Kind, e.msg, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

func (e *APIError) Unwrap() error {
	return e.err
}

// Retryable reports whether the client would have retried this failure.
// By the time a caller sees it, internal retries are already exhausted.
func (e *APIError) Retryable() bool {
	return e.Kind == KindTransient || e.Kind == KindTimeout
}

func IsKind(err error, kind ErrorKind) bool {
	var e *APIError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// IsNotFound reports whether err is a terminal 404 response. Lookups that
// model "may legitimately be absent" convert these into nil results.
func IsNotFound(err error) bool {
	var e *APIError
	if errors.As(err, &e) {
		return e.Kind == KindClient && e.Status == http.StatusNotFound
	}
	return false
}

func newConfigError(msg string) *APIError {
	return &APIError{Kind: KindConfig, msg: msg}
}

func newStatusError(status int, problem *Problem) *APIError {
	kind := KindClient
	if retryableStatus(status) {
		kind = KindTransient
	}
	msg := http.StatusText(status)
	if problem != nil && problem.Title != "" {
		msg = problem.Title
	}
	return &APIError{Kind: kind, Status: status, Problem: problem, msg: msg}
}

func newTimeoutError(err error) *APIError {
	return &APIError{Kind: KindTimeout, msg: "request timeout", err: err}
}

func newTransportError(err error) *APIError {
	return &APIError{Kind: KindTransient, msg: "request failed", err: err}
}

// retryableStatus mirrors the upstream contract: overload and server-side
// failures may clear on a later attempt, everything else is terminal.
func retryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
