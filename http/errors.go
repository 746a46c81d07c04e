package http

import "errors"

var (
	// ErrRouteNotFound is returned for requests that match no route.
	ErrRouteNotFound = errors.New("route not found")
	// ErrMethodNotAllowed is returned when the path exists but not for the method.
	ErrMethodNotAllowed = errors.New("method not allowed")
	// ErrResponseCommitted marks a streaming failure that happened after the
	// status line was sent; the client only sees a cut-off body.
	ErrResponseCommitted = errors.New("response already committed")
)
