package api

import (
	"io"
	"strings"
	"sync"

	fhttp "github.com/bogdanfinn/fhttp"
)

// MockResponseBody is a ReadCloser that simulates reading response data
type MockResponseBody struct {
	data   []byte
	pos    int
	closed bool
}

// NewMockResponseBody creates a new MockResponseBody with the given data
func NewMockResponseBody(data []byte) *MockResponseBody {
	return &MockResponseBody{data: data, pos: 0}
}

// Read implements the io.Reader interface
func (m *MockResponseBody) Read(p []byte) (n int, err error) {
	if m.pos >= len(m.data) {
		return 0, io.EOF
	}
	n = copy(p, m.data[m.pos:])
	m.pos += n
	return n, nil
}

// Close implements the io.Closer interface
func (m *MockResponseBody) Close() error {
	m.closed = true
	return nil
}

// errReader fails every read
type errReader struct {
	err error
}

func (r errReader) Read(p []byte) (int, error) { return 0, r.err }
func (r errReader) Close() error               { return nil }

// MockHttpClient is a mock implementation of HTTPDoer for testing
type MockHttpClient struct {
	Response *fhttp.Response
	Err      error

	// DoFunc, when set, replaces Response/Err
	DoFunc func(req *fhttp.Request) (*fhttp.Response, error)

	mu       sync.Mutex
	Requests []*fhttp.Request
}

// Do implements the HTTPDoer interface
func (m *MockHttpClient) Do(req *fhttp.Request) (*fhttp.Response, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	m.mu.Unlock()

	if m.DoFunc != nil {
		return m.DoFunc(req)
	}
	return m.Response, m.Err
}

// RequestCount returns the number of requests seen
func (m *MockHttpClient) RequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}

// jsonResponse builds a response with the given status and body
func jsonResponse(status int, body string) *fhttp.Response {
	return &fhttp.Response{
		StatusCode: status,
		Header:     fhttp.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}
