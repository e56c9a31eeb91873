package proof

import (
	"context"
)

// RequestContext is the framework-neutral view of one HTTP request that
// generated dispatch units operate on. It grants access to the route
// parameters, query string, headers and body of the request, plus the
// response side needed to write a rendered Response back out.
type RequestContext interface {
	// Request data
	Method() string
	Path() string
	RealIP() string

	// Route parameters
	Param(name string) string

	// Query parameters
	QueryParam(name string) string

	// Headers. Header reads from the request, SetHeader writes to the
	// response.
	Header(name string) string
	SetHeader(name, value string)

	// Bind decodes the request body into target.
	Bind(target any) error

	// Blob writes the response with the given status, content type and body.
	Blob(status int, contentType string, body []byte) error
}

// HandlerFunc is the signature of a generated dispatch unit.
type HandlerFunc func(RequestContext) error

// MiddlewareFunc wraps a HandlerFunc with additional behavior.
type MiddlewareFunc func(HandlerFunc) HandlerFunc

// WebServer is the contract a serving backend has to satisfy so that
// registered routes can be mounted on it. Implementations for echo, gin and
// fiber live in the adapters package.
type WebServer interface {
	// RegisterRoute mounts a handler under the given method and path.
	RegisterRoute(method string, path Path, handler HandlerFunc, middlewares ...MiddlewareFunc)

	// Use installs a global middleware.
	Use(middleware MiddlewareFunc)

	// Server lifecycle
	Start(addr string) error
	Stop(ctx context.Context) error

	// Name identifies the backing framework.
	Name() string
}
