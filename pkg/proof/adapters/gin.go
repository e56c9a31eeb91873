package adapters

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stifskere/proofroute/pkg/proof"
)

// GinServer implements proof.WebServer for the Gin framework. Start wraps
// the engine in an http.Server so Stop can shut it down gracefully.
type GinServer struct {
	engine *gin.Engine
	server *http.Server
}

// NewGinServer wraps an existing Gin engine.
func NewGinServer(engine *gin.Engine) *GinServer {
	return &GinServer{engine: engine}
}

// NewDefaultGinServer creates a Gin engine with logging and recovery
// installed.
func NewDefaultGinServer() *GinServer {
	return &GinServer{engine: gin.Default()}
}

// RegisterRoute mounts a handler on the Gin engine.
func (gs *GinServer) RegisterRoute(method string, path proof.Path, handler proof.HandlerFunc, middlewares ...proof.MiddlewareFunc) {
	handlers := make([]gin.HandlerFunc, 0, len(middlewares)+1)
	for _, mw := range middlewares {
		handlers = append(handlers, gs.convertMiddleware(mw))
	}
	handlers = append(handlers, gs.convertHandler(handler))

	gs.engine.Handle(method, ginPath(path), handlers...)
}

// Use installs a global middleware.
func (gs *GinServer) Use(mw proof.MiddlewareFunc) {
	gs.engine.Use(gs.convertMiddleware(mw))
}

// Start starts the server.
func (gs *GinServer) Start(addr string) error {
	gs.server = &http.Server{Addr: addr, Handler: gs.engine}
	err := gs.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop shuts the server down.
func (gs *GinServer) Stop(ctx context.Context) error {
	if gs.server == nil {
		return nil
	}
	return gs.server.Shutdown(ctx)
}

// Name returns the adapter name.
func (gs *GinServer) Name() string {
	return "gin"
}

// Engine returns the underlying Gin engine.
func (gs *GinServer) Engine() *gin.Engine {
	return gs.engine
}

func ginPath(path proof.Path) string {
	built := ""
	for _, part := range path.Parts() {
		switch part.Type {
		case proof.StaticPart:
			built += part.Value
		case proof.ParameterPart:
			built += ":" + part.Value
		case proof.WildcardPart:
			// Gin catch-all parameters must be named.
			built += "*path"
		}
	}
	return built
}

func (gs *GinServer) convertHandler(handler proof.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := handler(&ginRequestContext{ctx: c}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
	}
}

func (gs *GinServer) convertMiddleware(mw proof.MiddlewareFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		wrapped := mw(func(proof.RequestContext) error {
			c.Next()
			return nil
		})
		if err := wrapped(&ginRequestContext{ctx: c}); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
	}
}

// ginRequestContext implements proof.RequestContext for Gin.
type ginRequestContext struct {
	ctx *gin.Context
}

func (grc *ginRequestContext) Method() string {
	return grc.ctx.Request.Method
}

func (grc *ginRequestContext) Path() string {
	return grc.ctx.Request.URL.Path
}

func (grc *ginRequestContext) RealIP() string {
	return grc.ctx.ClientIP()
}

func (grc *ginRequestContext) Param(name string) string {
	if name == "*" {
		// Gin exposes the catch-all segment under its given name.
		return grc.ctx.Param("path")
	}
	return grc.ctx.Param(name)
}

func (grc *ginRequestContext) QueryParam(name string) string {
	return grc.ctx.Query(name)
}

func (grc *ginRequestContext) Header(name string) string {
	return grc.ctx.GetHeader(name)
}

func (grc *ginRequestContext) SetHeader(name, value string) {
	grc.ctx.Header(name, value)
}

func (grc *ginRequestContext) Bind(target any) error {
	return grc.ctx.ShouldBind(target)
}

func (grc *ginRequestContext) Blob(status int, contentType string, body []byte) error {
	grc.ctx.Data(status, contentType, body)
	return nil
}
