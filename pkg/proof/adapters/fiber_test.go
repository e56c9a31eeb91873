package adapters

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/stifskere/proofroute/pkg/proof"
)

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	return buf.String()
}

func TestFiberServer_BasicFunctionality(t *testing.T) {
	server := NewFiberServer(fiber.New())

	if server.Name() != "fiber" {
		t.Errorf("Expected adapter name 'fiber', got '%s'", server.Name())
	}

	handler := func(ctx proof.RequestContext) error {
		return proof.Text(http.StatusOK, "hello").Write(ctx)
	}

	server.RegisterRoute("GET", proof.Path("/test"), handler)

	req, _ := http.NewRequest("GET", "/test", nil)
	resp, err := server.App().Test(req, -1)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	if body := readBody(t, resp); body != "hello" {
		t.Errorf("Expected body 'hello', got '%s'", body)
	}
}

func TestFiberServer_PathParameters(t *testing.T) {
	server := NewFiberServer(fiber.New())

	handler := func(ctx proof.RequestContext) error {
		return proof.Text(http.StatusOK, ctx.Param("id")).Write(ctx)
	}

	server.RegisterRoute("GET", proof.Path("/users/{id:int}"), handler)

	req, _ := http.NewRequest("GET", "/users/42", nil)
	resp, err := server.App().Test(req, -1)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}

	if body := readBody(t, resp); body != "42" {
		t.Errorf("Expected path parameter '42', got '%s'", body)
	}
}

func TestFiberServer_Bind(t *testing.T) {
	server := NewFiberServer(fiber.New())

	type payload struct {
		Name string `json:"name"`
	}

	handler := func(ctx proof.RequestContext) error {
		var p payload
		if err := ctx.Bind(&p); err != nil {
			return proof.Text(http.StatusBadRequest, "bind failed").Write(ctx)
		}
		return proof.Text(http.StatusOK, p.Name).Write(ctx)
	}

	server.RegisterRoute("POST", proof.Path("/users"), handler)

	req, _ := http.NewRequest("POST", "/users", strings.NewReader(`{"name":"test"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := server.App().Test(req, -1)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}

	if body := readBody(t, resp); body != "test" {
		t.Errorf("Expected bound name 'test', got '%s'", body)
	}
}

func TestFiberServer_Middleware(t *testing.T) {
	server := NewFiberServer(fiber.New())

	middleware := func(next proof.HandlerFunc) proof.HandlerFunc {
		return func(ctx proof.RequestContext) error {
			ctx.SetHeader("X-Test", "middleware-works")
			return next(ctx)
		}
	}

	handler := func(ctx proof.RequestContext) error {
		return proof.Text(http.StatusOK, "ok").Write(ctx)
	}

	server.RegisterRoute("GET", proof.Path("/mw"), handler, middleware)

	req, _ := http.NewRequest("GET", "/mw", nil)
	resp, err := server.App().Test(req, -1)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	defer resp.Body.Close()

	if resp.Header.Get("X-Test") != "middleware-works" {
		t.Errorf("Expected middleware header, got '%s'", resp.Header.Get("X-Test"))
	}
}

func TestFiberPath_Conversion(t *testing.T) {
	testCases := []struct {
		path     proof.Path
		expected string
	}{
		{"/users/{id:int}", "/users/:id"},
		{"/static/{*}", "/static/*"},
		{"/health", "/health"},
	}

	for _, tc := range testCases {
		if got := fiberPath(tc.path); got != tc.expected {
			t.Errorf("fiberPath(%q) = %q, expected %q", tc.path, got, tc.expected)
		}
	}
}
