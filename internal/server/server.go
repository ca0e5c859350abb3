package server

import (
	"net/http"
)

// Middleware wraps an http.Handler with additional behavior around the
// consent callback, applied by the router in registration order.
type Middleware func(http.Handler) http.Handler

// Handler is a callback endpoint that knows its own routes.
//
// The consent flow registers one [TokenHandler]; Routes exists so a
// handler can claim multiple paths without the caller enumerating them.
type Handler interface {
	http.Handler
	Routes() []string
}
