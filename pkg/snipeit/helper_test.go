package snipeit

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/snipeitapi"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/translations"
	"github.com/stretchr/testify/require"
)

// MockRoundTripper routes requests to handlers registered per "METHOD path"
// key. Paths are matched relative to /api/v1. Unhandled requests return 404 so
// tests exercising the not-found path need no explicit handler.
type MockRoundTripper struct {
	handlers map[string]http.HandlerFunc
}

func NewMockRoundTripper() *MockRoundTripper {
	return &MockRoundTripper{handlers: make(map[string]http.HandlerFunc)}
}

// OnRequest registers a handler for a method and path, e.g.
// ("GET", "/hardware/1").
func (m *MockRoundTripper) OnRequest(method, path string, handler http.HandlerFunc) *MockRoundTripper {
	m.handlers[method+" "+path] = handler
	return m
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	path := strings.TrimPrefix(req.URL.Path, "/api/v1")
	handler, ok := m.handlers[req.Method+" "+path]
	if !ok {
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Header:     make(http.Header),
			Body:       io.NopCloser(strings.NewReader(`{}`)),
			Request:    req,
		}, nil
	}

	recorder := &responseRecorder{header: make(http.Header), body: &bytes.Buffer{}}
	handler(recorder, req)
	return &http.Response{
		StatusCode: recorder.statusCode,
		Header:     recorder.header,
		Body:       io.NopCloser(bytes.NewReader(recorder.body.Bytes())),
		Request:    req,
	}, nil
}

type responseRecorder struct {
	statusCode int
	header     http.Header
	body       *bytes.Buffer
}

func (r *responseRecorder) Header() http.Header { return r.header }

func (r *responseRecorder) Write(data []byte) (int, error) {
	if r.statusCode == 0 {
		r.statusCode = http.StatusOK
	}
	return r.body.Write(data)
}

func (r *responseRecorder) WriteHeader(statusCode int) { r.statusCode = statusCode }

// mockResponse returns a handler writing the given status and JSON body.
func mockResponse(t *testing.T, code int, body any) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(code)
		if s, ok := body.(string); ok {
			_, _ = w.Write([]byte(s))
			return
		}
		b, err := json.Marshal(body)
		require.NoError(t, err)
		_, _ = w.Write(b)
	}
}

// stubDeps builds BaseDeps around a client that talks to the mock transport.
func stubDeps(t *testing.T, transport *MockRoundTripper) BaseDeps {
	t.Helper()
	client, err := snipeitapi.NewClient(
		snipeitapi.Config{BaseURL: "https://snipe.example.com", Token: "test-token"},
		snipeitapi.WithHTTPClient(&http.Client{Transport: transport}),
	)
	require.NoError(t, err)
	return BaseDeps{Client: client, T: translations.NullTranslationHelper}
}

// unconfiguredDeps builds BaseDeps as they look when the server started
// without credentials.
func unconfiguredDeps() BaseDeps {
	return BaseDeps{ClientErr: snipeitapi.ErrNotConfigured, T: translations.NullTranslationHelper}
}

func createMCPRequest(t *testing.T, args map[string]any) *mcp.CallToolRequest {
	t.Helper()
	argsJSON, err := json.Marshal(args)
	require.NoError(t, err)
	return &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{
			Arguments: json.RawMessage(argsJSON),
		},
	}
}

// invokeTool runs the handler of a ServerTool with deps in context and returns
// the decoded envelope.
func invokeTool(t *testing.T, deps BaseDeps, handler mcp.ToolHandler, args map[string]any) map[string]any {
	t.Helper()
	ctx := ContextWithDeps(context.Background(), deps)
	result, err := handler(ctx, createMCPRequest(t, args))
	require.NoError(t, err)
	return decodeEnvelope(t, result)
}

func decodeEnvelope(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected content to be of type TextContent")

	env := map[string]any{}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &env))
	return env
}
