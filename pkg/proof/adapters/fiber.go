package adapters

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/stifskere/proofroute/pkg/proof"
)

// FiberServer implements proof.WebServer for Fiber v2.
type FiberServer struct {
	app *fiber.App
}

// NewFiberServer wraps an existing Fiber app.
func NewFiberServer(app *fiber.App) *FiberServer {
	return &FiberServer{app: app}
}

// NewDefaultFiberServer creates a Fiber app with logging and recovery
// installed.
func NewDefaultFiberServer() *FiberServer {
	app := fiber.New()
	app.Use(logger.New())
	app.Use(recover.New())
	return &FiberServer{app: app}
}

// RegisterRoute mounts a handler on the Fiber app.
func (fs *FiberServer) RegisterRoute(method string, path proof.Path, handler proof.HandlerFunc, middlewares ...proof.MiddlewareFunc) {
	handlers := make([]fiber.Handler, 0, len(middlewares)+1)
	for _, mw := range middlewares {
		handlers = append(handlers, fs.convertMiddleware(mw))
	}
	handlers = append(handlers, fs.convertHandler(handler))

	fs.app.Add(method, fiberPath(path), handlers...)
}

// Use installs a global middleware.
func (fs *FiberServer) Use(mw proof.MiddlewareFunc) {
	fs.app.Use(fs.convertMiddleware(mw))
}

// Start starts the server.
func (fs *FiberServer) Start(addr string) error {
	return fs.app.Listen(addr)
}

// Stop shuts the server down.
func (fs *FiberServer) Stop(ctx context.Context) error {
	return fs.app.ShutdownWithContext(ctx)
}

// Name returns the adapter name.
func (fs *FiberServer) Name() string {
	return "fiber"
}

// App returns the underlying Fiber app.
func (fs *FiberServer) App() *fiber.App {
	return fs.app
}

func fiberPath(path proof.Path) string {
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

func (fs *FiberServer) convertHandler(handler proof.HandlerFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return handler(&fiberRequestContext{ctx: c})
	}
}

func (fs *FiberServer) convertMiddleware(mw proof.MiddlewareFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		wrapped := mw(func(proof.RequestContext) error {
			return c.Next()
		})
		return wrapped(&fiberRequestContext{ctx: c})
	}
}

// fiberRequestContext implements proof.RequestContext for Fiber.
type fiberRequestContext struct {
	ctx *fiber.Ctx
}

func (frc *fiberRequestContext) Method() string {
	return frc.ctx.Method()
}

func (frc *fiberRequestContext) Path() string {
	return frc.ctx.Path()
}

func (frc *fiberRequestContext) RealIP() string {
	return frc.ctx.IP()
}

func (frc *fiberRequestContext) Param(name string) string {
	return frc.ctx.Params(name)
}

func (frc *fiberRequestContext) QueryParam(name string) string {
	return frc.ctx.Query(name)
}

func (frc *fiberRequestContext) Header(name string) string {
	return frc.ctx.Get(name)
}

func (frc *fiberRequestContext) SetHeader(name, value string) {
	frc.ctx.Set(name, value)
}

func (frc *fiberRequestContext) Bind(target any) error {
	return frc.ctx.BodyParser(target)
}

func (frc *fiberRequestContext) Blob(status int, contentType string, body []byte) error {
	frc.ctx.Set(fiber.HeaderContentType, contentType)
	return frc.ctx.Status(status).Send(body)
}
