package proof

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_Register(t *testing.T) {
	registry := NewRegistry()

	registry.Register(RouteInfo{
		Method:         "GET",
		Path:           "/users/{id:int}",
		HandlerName:    "GetUser",
		PackageName:    "users",
		ErrorSet:       "UserError",
		ParameterTypes: map[string]string{"id": "int"},
		Handler:        func(RequestContext) error { return nil },
	})

	routes := registry.All()
	assert.Len(t, routes, 1)
	assert.Equal(t, "GET", routes[0].Method)
	assert.Equal(t, "/users/:id", routes[0].RuntimePath)
	assert.Equal(t, "GetUser", routes[0].HandlerName)
	assert.Equal(t, "UserError", routes[0].ErrorSet)
}

func TestRegistry_RegisterKeepsExplicitRuntimePath(t *testing.T) {
	registry := NewRegistry()

	registry.Register(RouteInfo{Method: "GET", Path: "/users/{id:int}", RuntimePath: "/users/:id"})

	assert.Equal(t, "/users/:id", registry.All()[0].RuntimePath)
}

func TestRegistry_PreservesRegistrationOrder(t *testing.T) {
	registry := NewRegistry()

	registry.Register(RouteInfo{Method: "GET", Path: "/a"})
	registry.Register(RouteInfo{Method: "GET", Path: "/b"})
	registry.Register(RouteInfo{Method: "GET", Path: "/c"})

	routes := registry.All()
	assert.Equal(t, Path("/a"), routes[0].Path)
	assert.Equal(t, Path("/b"), routes[1].Path)
	assert.Equal(t, Path("/c"), routes[2].Path)
}

func TestRegistry_ByPackage(t *testing.T) {
	registry := NewRegistry()

	registry.Register(RouteInfo{Method: "GET", Path: "/users", PackageName: "users"})
	registry.Register(RouteInfo{Method: "POST", Path: "/users", PackageName: "users"})
	registry.Register(RouteInfo{Method: "GET", Path: "/health", PackageName: "health"})

	assert.Len(t, registry.ByPackage("users"), 2)
	assert.Len(t, registry.ByPackage("health"), 1)
	assert.Empty(t, registry.ByPackage("missing"))
}

func TestRegistry_ByMethod(t *testing.T) {
	registry := NewRegistry()

	registry.Register(RouteInfo{Method: "GET", Path: "/users"})
	registry.Register(RouteInfo{Method: "POST", Path: "/users"})

	assert.Len(t, registry.ByMethod("GET"), 1)
	assert.Empty(t, registry.ByMethod("DELETE"))
}

func TestRegistry_AllReturnsCopy(t *testing.T) {
	registry := NewRegistry()
	registry.Register(RouteInfo{Method: "GET", Path: "/a"})

	routes := registry.All()
	routes[0].Method = "POST"

	assert.Equal(t, "GET", registry.All()[0].Method)
}

// recordingServer captures RegisterRoute calls for registry tests.
type recordingServer struct {
	mounted []string
}

func (rs *recordingServer) RegisterRoute(method string, path Path, handler HandlerFunc, middlewares ...MiddlewareFunc) {
	rs.mounted = append(rs.mounted, method+" "+string(path))
}

func (rs *recordingServer) Use(MiddlewareFunc) {}

func (rs *recordingServer) Start(string) error { return nil }

func (rs *recordingServer) Stop(context.Context) error { return nil }

func (rs *recordingServer) Name() string { return "recording" }

func TestRegisterRoutes_MountsEverything(t *testing.T) {
	registry := NewRegistry()
	registry.Register(RouteInfo{Method: "GET", Path: "/users/{id:int}"})
	registry.Register(RouteInfo{Method: "POST", Path: "/users"})

	server := &recordingServer{}
	RegisterRoutes(server, registry)

	assert.Equal(t, []string{"GET /users/{id:int}", "POST /users"}, server.mounted)
}
