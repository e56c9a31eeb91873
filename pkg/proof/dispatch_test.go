package proof

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The fixtures below mirror the exact shape the generator emits for an error
// set and a route, so these tests pin the runtime semantics end to end.

type testError interface {
	error
	isTestError()
}

type errInvalid struct{}

func (errInvalid) Error() string { return "test" }
func (errInvalid) isTestError()  {}

type errExpired struct{}

func (errExpired) Error() string { return "test2" }
func (errExpired) isTestError()  {}

type errMissing struct{}

func (errMissing) Error() string { return "test3" }
func (errMissing) isTestError()  {}

type errTeapot struct{}

func (errTeapot) Error() string { return "test_collect" }
func (errTeapot) isTestError()  {}

func renderTestError(err testError) *Response {
	switch err.(type) {
	case errInvalid, *errInvalid:
		return NewBuilder(http.StatusBadRequest).BodyString(err.Error()).Build()
	case errExpired, *errExpired:
		return NewBuilder(http.StatusUnauthorized).BodyString(err.Error()).Build()
	case errMissing, *errMissing:
		return NewBuilder(http.StatusInternalServerError).BodyString(err.Error()).Build()
	case errTeapot, *errTeapot:
		return NewBuilder(http.StatusTeapot).BodyString(err.Error()).Build()
	default:
		return NewBuilder(http.StatusInternalServerError).BodyString(err.Error()).Build()
	}
}

func decorateTestError(builder *ResponseBuilder, message string) *Response {
	return builder.Header("format", message).BodyString("no").Build()
}

func renderDecoratedError(err testError) *Response {
	switch err.(type) {
	case errMissing, *errMissing:
		return decorateTestError(NewBuilder(http.StatusInternalServerError), err.Error())
	default:
		return decorateTestError(NewBuilder(http.StatusInternalServerError), err.Error())
	}
}

func TestRenderErrorSet_TaggedVariants(t *testing.T) {
	resp := renderTestError(errInvalid{})
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, []byte("test"), resp.Body)

	resp = renderTestError(errExpired{})
	assert.Equal(t, http.StatusUnauthorized, resp.Status)
	assert.Equal(t, []byte("test2"), resp.Body)
}

func TestRenderErrorSet_DefaultStatus(t *testing.T) {
	resp := renderTestError(errMissing{})

	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	assert.Equal(t, []byte("test3"), resp.Body)
}

func TestRenderErrorSet_PointerVariants(t *testing.T) {
	resp := renderTestError(&errInvalid{})

	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, []byte("test"), resp.Body)
}

func TestRenderErrorSet_TransformerKeepsStatus(t *testing.T) {
	resp := renderDecoratedError(errMissing{})

	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	assert.Equal(t, "test3", resp.Headers.Get("format"))
	assert.Equal(t, []byte("no"), resp.Body)
}

type notePayload struct {
	Text string `json:"text"`
}

type noteHandler struct {
	calls  int
	gotID  int
	gotPay notePayload
	result *Response
	outErr testError
}

func (h *noteHandler) handle(id int, payload notePayload) (*Response, testError) {
	h.calls++
	h.gotID = id
	h.gotPay = payload
	return h.result, h.outErr
}

// dispatchNoteWithOverride mirrors a generated wrapper whose body parameter
// declares an override.
func dispatchNoteWithOverride(h *noteHandler) HandlerFunc {
	return func(ctx RequestContext) error {
		id, err := ParseInt(ctx.Param("id"))
		if err != nil {
			return FailedParam("id", err).Response().Write(ctx)
		}
		payload, err := ExtractBody[notePayload](ctx)
		if err != nil {
			return renderTestError(errTeapot{}).Write(ctx)
		}
		res, herr := h.handle(id, payload)
		if herr != nil {
			return renderTestError(herr).Write(ctx)
		}
		return res.Write(ctx)
	}
}

// dispatchNote mirrors the same wrapper without the override.
func dispatchNote(h *noteHandler) HandlerFunc {
	return func(ctx RequestContext) error {
		id, err := ParseInt(ctx.Param("id"))
		if err != nil {
			return FailedParam("id", err).Response().Write(ctx)
		}
		payload, err := ExtractBody[notePayload](ctx)
		if err != nil {
			return FailedParam("payload", err).Response().Write(ctx)
		}
		res, herr := h.handle(id, payload)
		if herr != nil {
			return renderTestError(herr).Write(ctx)
		}
		return res.Write(ctx)
	}
}

func TestDispatch_OverrideUsedOnExtractionFailure(t *testing.T) {
	handler := &noteHandler{}
	ctx := newFakeContext()
	ctx.params["id"] = "7"
	ctx.reqBody = []byte(`{invalid`)

	err := dispatchNoteWithOverride(handler)(ctx)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, ctx.status)
	assert.Equal(t, []byte("test_collect"), ctx.written)
	assert.Zero(t, handler.calls)
}

func TestDispatch_DefaultExtractionFailureMapping(t *testing.T) {
	handler := &noteHandler{}
	ctx := newFakeContext()
	ctx.params["id"] = "7"
	ctx.reqBody = []byte(`{invalid`)

	err := dispatchNote(handler)(ctx)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, ctx.status)
	assert.Contains(t, string(ctx.written), `could not extract "payload"`)
	assert.Zero(t, handler.calls)
}

func TestDispatch_ExtractionOrderShortCircuits(t *testing.T) {
	handler := &noteHandler{}
	ctx := newFakeContext()
	ctx.params["id"] = "not-a-number"
	ctx.reqBody = []byte(`{invalid`)

	err := dispatchNote(handler)(ctx)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, ctx.status)
	assert.Contains(t, string(ctx.written), `could not extract "id"`)
	assert.Zero(t, ctx.bindCalls, "later extractors must not run after a failure")
	assert.Zero(t, handler.calls)
}

func TestDispatch_SuccessPayloadUnmodified(t *testing.T) {
	handler := &noteHandler{result: NewBuilder(http.StatusCreated).Header("Location", "/notes/1").BodyString("created").Build()}
	ctx := newFakeContext()
	ctx.params["id"] = "7"
	ctx.reqBody = []byte(`{"text":"remember"}`)

	err := dispatchNote(handler)(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 1, handler.calls)
	assert.Equal(t, 7, handler.gotID)
	assert.Equal(t, "remember", handler.gotPay.Text)
	assert.Equal(t, http.StatusCreated, ctx.status)
	assert.Equal(t, "/notes/1", ctx.respHeaders["Location"])
	assert.Equal(t, []byte("created"), ctx.written)
}

func TestDispatch_DomainErrorMapped(t *testing.T) {
	handler := &noteHandler{outErr: errExpired{}}
	ctx := newFakeContext()
	ctx.params["id"] = "7"
	ctx.reqBody = []byte(`{"text":"remember"}`)

	err := dispatchNote(handler)(ctx)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, ctx.status)
	assert.Equal(t, []byte("test2"), ctx.written)
	assert.Equal(t, 1, handler.calls)
}
