// Package proof provides the public runtime APIs for proofroute.
package proof

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Content types used by the builder shortcuts.
const (
	ContentTypeText = "text/plain; charset=utf-8"
	ContentTypeJSON = "application/json"
)

// Response is a fully materialized HTTP response: status, headers and an
// already encoded body. Generated mapping functions produce values of this
// type, and handlers return it as their success payload.
type Response struct {
	// Status is the HTTP status code (e.g. 200, 404, 500).
	Status int

	// ContentType is sent as the Content-Type header.
	ContentType string

	// Headers holds any additional response headers.
	Headers http.Header

	// Body is the encoded response body.
	Body []byte
}

// Write sends the response through the given request context.
func (r *Response) Write(ctx RequestContext) error {
	for name, values := range r.Headers {
		for _, value := range values {
			ctx.SetHeader(name, value)
		}
	}

	contentType := r.ContentType
	if contentType == "" {
		contentType = ContentTypeText
	}

	return ctx.Blob(r.Status, contentType, r.Body)
}

// ResponseBuilder assembles a Response step by step. A builder handed to a
// transformer arrives preloaded with the status resolved for the error
// variant being rendered; everything else is up to the transformer.
type ResponseBuilder struct {
	status      int
	contentType string
	headers     http.Header
	body        []byte
	encodeErr   error
}

// NewBuilder creates a builder with the given status code.
func NewBuilder(status int) *ResponseBuilder {
	return &ResponseBuilder{
		status:  status,
		headers: make(http.Header),
	}
}

// Status replaces the status code.
func (b *ResponseBuilder) Status(code int) *ResponseBuilder {
	b.status = code
	return b
}

// Header adds a response header.
func (b *ResponseBuilder) Header(name, value string) *ResponseBuilder {
	b.headers.Add(name, value)
	return b
}

// ContentType sets the Content-Type header value.
func (b *ResponseBuilder) ContentType(contentType string) *ResponseBuilder {
	b.contentType = contentType
	return b
}

// BodyString sets a plain-text body.
func (b *ResponseBuilder) BodyString(body string) *ResponseBuilder {
	b.body = []byte(body)
	if b.contentType == "" {
		b.contentType = ContentTypeText
	}
	return b
}

// BodyBytes sets a raw body without touching the content type.
func (b *ResponseBuilder) BodyBytes(body []byte) *ResponseBuilder {
	b.body = body
	return b
}

// BodyJSON encodes v as the JSON body. Encoding failures surface as a
// server-fault response from Build.
func (b *ResponseBuilder) BodyJSON(v any) *ResponseBuilder {
	encoded, err := json.Marshal(v)
	if err != nil {
		b.encodeErr = err
		return b
	}
	b.body = encoded
	b.contentType = ContentTypeJSON
	return b
}

// Build finalizes the response.
func (b *ResponseBuilder) Build() *Response {
	if b.encodeErr != nil {
		return &Response{
			Status:      http.StatusInternalServerError,
			ContentType: ContentTypeText,
			Headers:     make(http.Header),
			Body:        []byte(fmt.Sprintf("response encoding failed: %v", b.encodeErr)),
		}
	}

	return &Response{
		Status:      b.status,
		ContentType: b.contentType,
		Headers:     b.headers,
		Body:        b.body,
	}
}

// Transformer is the signature an error-set transformer has to satisfy. It
// receives a builder preloaded with the variant's status and the variant's
// display string, and whatever it returns is used verbatim.
type Transformer func(builder *ResponseBuilder, message string) *Response

// Responder is implemented by error values that carry their own response
// mapping.
type Responder interface {
	Response() *Response
}

// ErrorResponse maps an arbitrary error onto a response. Errors that
// implement Responder (directly or through their chain) use their own
// mapping; everything else renders as a server fault with the error text as
// body.
func ErrorResponse(err error) *Response {
	var responder Responder
	if errors.As(err, &responder) {
		return responder.Response()
	}

	return NewBuilder(http.StatusInternalServerError).BodyString(err.Error()).Build()
}

// NewResponse creates a response with the specified status code and JSON body.
func NewResponse(status int, body any) *Response {
	return NewBuilder(status).BodyJSON(body).Build()
}

// OK creates a 200 OK response with the given JSON body.
func OK(body any) *Response {
	return NewResponse(http.StatusOK, body)
}

// Created creates a 201 Created response with the given JSON body.
func Created(body any) *Response {
	return NewResponse(http.StatusCreated, body)
}

// NoContent creates a 204 No Content response.
func NoContent() *Response {
	return &Response{Status: http.StatusNoContent, Headers: make(http.Header)}
}

// Text creates a plain-text response with the given status.
func Text(status int, body string) *Response {
	return NewBuilder(status).BodyString(body).Build()
}

// BadRequest creates a 400 Bad Request response with the given error message.
func BadRequest(message string) *Response {
	return NewResponse(http.StatusBadRequest, map[string]string{"error": message})
}

// NotFound creates a 404 Not Found response with the given error message.
func NotFound(message string) *Response {
	return NewResponse(http.StatusNotFound, map[string]string{"error": message})
}

// InternalServerError creates a 500 Internal Server Error response with the
// given error message.
func InternalServerError(message string) *Response {
	return NewResponse(http.StatusInternalServerError, map[string]string{"error": message})
}
