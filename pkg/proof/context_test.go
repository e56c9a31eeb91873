package proof

import "encoding/json"

// fakeContext is an in-memory RequestContext for exercising responses and
// dispatch logic without a server.
type fakeContext struct {
	method      string
	path        string
	realIP      string
	params      map[string]string
	query       map[string]string
	reqHeaders  map[string]string
	respHeaders map[string]string
	reqBody     []byte
	bindErr     error
	bindCalls   int

	status      int
	contentType string
	written     []byte
}

func newFakeContext() *fakeContext {
	return &fakeContext{
		method:      "GET",
		path:        "/",
		params:      make(map[string]string),
		query:       make(map[string]string),
		reqHeaders:  make(map[string]string),
		respHeaders: make(map[string]string),
	}
}

func (f *fakeContext) Method() string { return f.method }

func (f *fakeContext) Path() string { return f.path }

func (f *fakeContext) RealIP() string { return f.realIP }

func (f *fakeContext) Param(name string) string { return f.params[name] }

func (f *fakeContext) QueryParam(name string) string { return f.query[name] }

func (f *fakeContext) Header(name string) string { return f.reqHeaders[name] }

func (f *fakeContext) SetHeader(name, value string) { f.respHeaders[name] = value }

func (f *fakeContext) Bind(target any) error {
	f.bindCalls++
	if f.bindErr != nil {
		return f.bindErr
	}
	return json.Unmarshal(f.reqBody, target)
}

func (f *fakeContext) Blob(status int, contentType string, body []byte) error {
	f.status = status
	f.contentType = contentType
	f.written = body
	return nil
}
