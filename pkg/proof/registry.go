package proof

// RouteInfo contains everything the runtime knows about one generated route.
type RouteInfo struct {
	// Method is the HTTP method (GET, POST, ...).
	Method string

	// Path is the declared route path with typed placeholders
	// (e.g. "/users/{id:int}").
	Path Path

	// RuntimePath is the serving runtime's form of Path (e.g. "/users/:id").
	// Filled in on registration when empty.
	RuntimePath string

	// HandlerName is the business function the dispatch unit invokes.
	HandlerName string

	// PackageName is the package the route was declared in.
	PackageName string

	// ErrorSet names the error set that maps this route's failures, if the
	// handler declares one.
	ErrorSet string

	// ParameterTypes maps path parameter names to their declared types.
	ParameterTypes map[string]string

	// Handler is the generated dispatch unit.
	Handler HandlerFunc
}

// Registry provides access to all registered routes in the application.
type Registry interface {
	// Register adds a route (used by generated code).
	Register(route RouteInfo)

	// All returns all registered routes in registration order.
	All() []RouteInfo

	// ByPackage returns routes filtered by declaring package.
	ByPackage(packageName string) []RouteInfo

	// ByMethod returns routes filtered by HTTP method.
	ByMethod(method string) []RouteInfo
}

// Routes is the global route registry generated code registers into.
var Routes Registry = NewRegistry()

// memoryRegistry implements Registry with an in-memory slice.
type memoryRegistry struct {
	routes []RouteInfo
}

// NewRegistry creates an empty route registry.
func NewRegistry() Registry {
	return &memoryRegistry{routes: make([]RouteInfo, 0)}
}

func (r *memoryRegistry) Register(route RouteInfo) {
	if route.RuntimePath == "" {
		route.RuntimePath = route.Path.Runtime()
	}
	r.routes = append(r.routes, route)
}

func (r *memoryRegistry) All() []RouteInfo {
	return append([]RouteInfo(nil), r.routes...)
}

func (r *memoryRegistry) ByPackage(packageName string) []RouteInfo {
	var filtered []RouteInfo
	for _, route := range r.routes {
		if route.PackageName == packageName {
			filtered = append(filtered, route)
		}
	}
	return filtered
}

func (r *memoryRegistry) ByMethod(method string) []RouteInfo {
	var filtered []RouteInfo
	for _, route := range r.routes {
		if route.Method == method {
			filtered = append(filtered, route)
		}
	}
	return filtered
}

// RegisterAll mounts every route from the global registry onto the given
// server.
func RegisterAll(server WebServer) {
	RegisterRoutes(server, Routes)
}

// RegisterRoutes mounts every route from a specific registry onto the given
// server.
func RegisterRoutes(server WebServer, registry Registry) {
	for _, route := range registry.All() {
		server.RegisterRoute(route.Method, route.Path, route.Handler)
	}
}
