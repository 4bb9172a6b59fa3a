// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed request. The three kinds are part of the
// UI contract and map one-to-one onto notification messages.
type ErrorKind int

const (
	// ServerError means the service responded with a non-2xx status.
	ServerError ErrorKind = iota
	// NoResponse means the request was sent but no response arrived
	// (network failure or the 30-second timeout).
	NoResponse
	// ClientError means the request could not be constructed or sent at
	// all, or a 2xx response body failed to parse.
	ClientError
)

// String returns the kind's human-readable name.
func (k ErrorKind) String() string {
	switch k {
	case ServerError:
		return "server error"
	case NoResponse:
		return "no response"
	case ClientError:
		return "client error"
	}
	return "unknown"
}

// Fallback messages used when nothing more specific is available.
const (
	// GenericServerMessage is shown when a non-2xx body carries neither a
	// "message" nor a "detail" field.
	GenericServerMessage = "Server error"
	// NoResponseMessage is the fixed connectivity hint for NoResponse.
	NoResponseMessage = "No response from server. Please check if the backend is running."
	// GenericClientMessage is shown when a ClientError has no usable text.
	GenericClientMessage = "Network error"
)

// RequestError is the error type returned by every Client method.
type RequestError struct {
	Kind    ErrorKind
	Message string // user-facing text
	Status  int    // HTTP status for ServerError, else 0
	Err     error  // underlying cause, may be nil
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (HTTP %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// serverError builds a ServerError from a status code and body message.
func serverError(status int, message string) *RequestError {
	if message == "" {
		message = GenericServerMessage
	}
	return &RequestError{Kind: ServerError, Message: message, Status: status}
}

// noResponse builds a NoResponse error. The message is fixed; the cause
// is kept for logs only.
func noResponse(err error) *RequestError {
	return &RequestError{Kind: NoResponse, Message: NoResponseMessage, Err: err}
}

// clientError builds a ClientError, preferring the underlying error text.
func clientError(err error) *RequestError {
	message := GenericClientMessage
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	return &RequestError{Kind: ClientError, Message: message, Err: err}
}

// KindOf extracts the kind from any error returned by this package.
// Errors from elsewhere report ClientError, the catch-all kind.
func KindOf(err error) ErrorKind {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Kind
	}
	return ClientError
}

// MessageOf extracts the user-facing message from any error returned by
// this package, falling back to the raw error text.
func MessageOf(err error) string {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
