package server_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/adrianliechti/wingman-search/config"
	"github.com/adrianliechti/wingman-search/pkg/auth"
	"github.com/adrianliechti/wingman-search/pkg/auth/static"
	"github.com/adrianliechti/wingman-search/server"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, status int, response string, authorizers ...auth.Provider) (*httptest.Server, *atomic.Int64) {
	t.Helper()

	calls := new(atomic.Int64)

	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)

		w.WriteHeader(status)
		w.Write([]byte(response))
	}))

	t.Cleanup(provider.Close)

	t.Setenv("BIGMODEL_API_KEY", "test-key")
	t.Setenv("BIGMODEL_API_URL", provider.URL)

	cfg, err := config.FromEnvironment()
	require.NoError(t, err)

	cfg.Authorizers = authorizers

	s, err := server.New(cfg)
	require.NoError(t, err)

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	return ts, calls
}

func postSearch(t *testing.T, ts *httptest.Server, values url.Values) (int, string) {
	t.Helper()

	resp, err := http.PostForm(ts.URL+"/v1/search", values)
	require.NoError(t, err)

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(body)
}

func TestSearchEndpoint(t *testing.T) {
	ts, calls := newServer(t, http.StatusOK, `{"search_result": [{"title": "Go", "content": "gopher", "link": "https://go.dev"}]}`)

	status, body := postSearch(t, ts, url.Values{"query": {"golang"}, "count": {"3"}})

	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, "1. Go")
	require.Contains(t, body, "https://go.dev")
	require.Equal(t, int64(1), calls.Load())
}

func TestSearchEndpointQueryAlias(t *testing.T) {
	ts, calls := newServer(t, http.StatusOK, `{"search_result": [{"title": "Go", "link": "https://go.dev"}]}`)

	status, body := postSearch(t, ts, url.Values{"query": {""}, "q": {"golang"}})

	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, `"golang"`)
	require.Equal(t, int64(1), calls.Load())
}

func TestSearchEndpointJSON(t *testing.T) {
	ts, _ := newServer(t, http.StatusOK, `{"search_result": [{"title": "Go", "link": "https://go.dev"}]}`)

	status, body := postSearch(t, ts, url.Values{"query": {"golang"}, "format": {"json"}})

	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `[{"source": "https://go.dev", "title": "Go"}]`, body)
}

func TestSearchEndpointValidation(t *testing.T) {
	ts, calls := newServer(t, http.StatusOK, `{"search_result": []}`)

	testCases := []url.Values{
		{},
		{"query": {strings.Repeat("x", 71)}},
		{"query": {"golang"}, "count": {"51"}},
		{"query": {"golang"}, "count": {"ten"}},
		{"query": {"golang"}, "content_size": {"huge"}},
	}

	for _, values := range testCases {
		status, _ := postSearch(t, ts, values)
		require.Equal(t, http.StatusBadRequest, status)
	}

	require.Zero(t, calls.Load())
}

func TestSearchEndpointProviderFailure(t *testing.T) {
	ts, _ := newServer(t, http.StatusUnauthorized, `{"error":"invalid key"}`)

	status, body := postSearch(t, ts, url.Values{"query": {"golang"}})

	require.Equal(t, http.StatusBadGateway, status)
	require.Contains(t, body, "401")
}

func TestHealth(t *testing.T) {
	ts, _ := newServer(t, http.StatusOK, `{"search_result": []}`)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthorization(t *testing.T) {
	authorizer, err := static.New("secret")
	require.NoError(t, err)

	ts, calls := newServer(t, http.StatusOK, `{"search_result": []}`, authorizer)

	status, _ := postSearch(t, ts, url.Values{"query": {"golang"}})
	require.Equal(t, http.StatusUnauthorized, status)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/v1/search", strings.NewReader(url.Values{"query": {"golang"}}.Encode()))
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer secret")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, int64(1), calls.Load())

	health, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	health.Body.Close()

	require.Equal(t, http.StatusOK, health.StatusCode)
}

func TestStreamableMCP(t *testing.T) {
	ts, _ := newServer(t, http.StatusOK, `{"search_result": [{"title": "Go", "link": "https://go.dev"}]}`)

	ctx := context.Background()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)

	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{Endpoint: ts.URL + "/mcp"}, nil)
	require.NoError(t, err)

	defer session.Close()

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "web-search",
		Arguments: map[string]any{"query": "golang"},
	})

	require.NoError(t, err)
	require.False(t, result.IsError)
	require.Len(t, result.Content, 1)

	text := result.Content[0].(*mcp.TextContent).Text
	require.Contains(t, text, "1. Go")
}
