// Package adapters provides WebServer implementations for the supported
// serving frameworks.
package adapters

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/stifskere/proofroute/pkg/proof"
)

// EchoServer implements proof.WebServer for Echo v4.
type EchoServer struct {
	engine *echo.Echo
}

// NewEchoServer wraps an existing Echo instance.
func NewEchoServer(e *echo.Echo) *EchoServer {
	return &EchoServer{engine: e}
}

// NewDefaultEchoServer creates an Echo instance with recovery and request
// logging installed.
func NewDefaultEchoServer() *EchoServer {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	return &EchoServer{engine: e}
}

// RegisterRoute mounts a handler on the Echo engine.
func (es *EchoServer) RegisterRoute(method string, path proof.Path, handler proof.HandlerFunc, middlewares ...proof.MiddlewareFunc) {
	echoMiddlewares := make([]echo.MiddlewareFunc, len(middlewares))
	for i, mw := range middlewares {
		echoMiddlewares[i] = es.convertMiddleware(mw)
	}

	es.engine.Add(method, echoPath(path), es.convertHandler(handler), echoMiddlewares...)
}

// Use installs a global middleware.
func (es *EchoServer) Use(mw proof.MiddlewareFunc) {
	es.engine.Use(es.convertMiddleware(mw))
}

// Start starts the server.
func (es *EchoServer) Start(addr string) error {
	return es.engine.Start(addr)
}

// Stop shuts the server down.
func (es *EchoServer) Stop(ctx context.Context) error {
	return es.engine.Shutdown(ctx)
}

// Name returns the adapter name.
func (es *EchoServer) Name() string {
	return "echo"
}

// Engine returns the underlying Echo instance.
func (es *EchoServer) Engine() *echo.Echo {
	return es.engine
}

func echoPath(path proof.Path) string {
	built := ""
	for _, part := range path.Parts() {
		switch part.Type {
		case proof.StaticPart:
			built += part.Value
		case proof.ParameterPart:
			built += ":" + part.Value
		case proof.WildcardPart:
			built += "*"
		}
	}
	return built
}

func (es *EchoServer) convertHandler(handler proof.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handler(&echoRequestContext{context: c})
	}
}

func (es *EchoServer) convertMiddleware(mw proof.MiddlewareFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			wrapped := mw(func(proof.RequestContext) error {
				return next(c)
			})
			return wrapped(&echoRequestContext{context: c})
		}
	}
}

// echoRequestContext implements proof.RequestContext for Echo.
type echoRequestContext struct {
	context echo.Context
}

func (erc *echoRequestContext) Method() string {
	return erc.context.Request().Method
}

func (erc *echoRequestContext) Path() string {
	return erc.context.Request().URL.Path
}

func (erc *echoRequestContext) RealIP() string {
	return erc.context.RealIP()
}

func (erc *echoRequestContext) Param(name string) string {
	return erc.context.Param(name)
}

func (erc *echoRequestContext) QueryParam(name string) string {
	return erc.context.QueryParam(name)
}

func (erc *echoRequestContext) Header(name string) string {
	return erc.context.Request().Header.Get(name)
}

func (erc *echoRequestContext) SetHeader(name, value string) {
	erc.context.Response().Header().Set(name, value)
}

func (erc *echoRequestContext) Bind(target any) error {
	return erc.context.Bind(target)
}

func (erc *echoRequestContext) Blob(status int, contentType string, body []byte) error {
	return erc.context.Blob(status, contentType, body)
}
