package search_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/adrianliechti/wingman-search/pkg/searcher"
	"github.com/adrianliechti/wingman-search/pkg/tool"
	"github.com/adrianliechti/wingman-search/pkg/tool/search"

	"github.com/stretchr/testify/require"
)

type mockSearcher struct {
	calls int

	query   string
	options *searcher.SearchOptions

	results []searcher.Result
	err     error
}

func (m *mockSearcher) Search(ctx context.Context, query string, options *searcher.SearchOptions) ([]searcher.Result, error) {
	m.calls++

	m.query = query
	m.options = options

	return m.results, m.err
}

func newClient(t *testing.T, m *mockSearcher) *search.Client {
	t.Helper()

	c, err := search.New(m)
	require.NoError(t, err)

	return c
}

func TestTools(t *testing.T) {
	c := newClient(t, &mockSearcher{})

	tools, err := c.Tools(context.Background())
	require.NoError(t, err)
	require.Len(t, tools, 1)

	require.Equal(t, "web-search", tools[0].Name)

	properties := tools[0].Parameters["properties"].(map[string]any)

	require.Contains(t, properties, "query")
	require.Contains(t, properties, "search_engine")
	require.Contains(t, properties, "count")
	require.Contains(t, properties, "search_domain_filter")
	require.Contains(t, properties, "search_recency_filter")
	require.Contains(t, properties, "content_size")

	require.Equal(t, []string{"query"}, tools[0].Parameters["required"])
}

func TestExecuteUnknownTool(t *testing.T) {
	m := &mockSearcher{}
	c := newClient(t, m)

	_, err := c.Execute(context.Background(), "search_online", map[string]any{"query": "go"})

	require.ErrorIs(t, err, tool.ErrInvalidTool)
	require.Zero(t, m.calls)
}

func TestExecuteDefaults(t *testing.T) {
	m := &mockSearcher{}
	c := newClient(t, m)

	_, err := c.Execute(context.Background(), "web-search", map[string]any{"query": "golang generics"})
	require.NoError(t, err)

	require.Equal(t, 1, m.calls)
	require.Equal(t, "golang generics", m.query)

	require.Equal(t, searcher.EnginePro, m.options.Engine)
	require.Equal(t, 10, *m.options.Limit)
	require.Equal(t, searcher.RecencyNoLimit, m.options.Recency)
	require.Equal(t, searcher.ContentSizeMedium, m.options.ContentSize)
	require.Empty(t, m.options.Domain)
}

func TestExecuteEngineOption(t *testing.T) {
	m := &mockSearcher{}

	c, err := search.New(m, search.WithEngine(searcher.EngineQuark))
	require.NoError(t, err)

	_, err = c.Execute(context.Background(), "web-search", map[string]any{"query": "news"})
	require.NoError(t, err)

	require.Equal(t, searcher.EngineQuark, m.options.Engine)
}

func TestExecuteRejectsInvalidParameters(t *testing.T) {
	testCases := []struct {
		name       string
		parameters map[string]any
	}{
		{"missing query", map[string]any{}},
		{"empty query", map[string]any{"query": ""}},
		{"query not a string", map[string]any{"query": 42}},
		{"query too long", map[string]any{"query": strings.Repeat("a", 71)}},
		{"query too long runes", map[string]any{"query": strings.Repeat("搜", 71)}},
		{"count zero", map[string]any{"query": "go", "count": float64(0)}},
		{"count negative", map[string]any{"query": "go", "count": float64(-3)}},
		{"count too large", map[string]any{"query": "go", "count": float64(51)}},
		{"count huge", map[string]any{"query": "go", "count": float64(1e20)}},
		{"count fractional", map[string]any{"query": "go", "count": 2.5}},
		{"count string", map[string]any{"query": "go", "count": "10"}},
		{"unknown engine", map[string]any{"query": "go", "search_engine": "google"}},
		{"unknown recency", map[string]any{"query": "go", "search_recency_filter": "oneDecade"}},
		{"unknown content size", map[string]any{"query": "go", "content_size": "low"}},
		{"domain not a string", map[string]any{"query": "go", "search_domain_filter": []any{"a.com"}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := &mockSearcher{}
			c := newClient(t, m)

			_, err := c.Execute(context.Background(), "web-search", tc.parameters)

			require.ErrorIs(t, err, tool.ErrInvalidParameters)

			var validationErr *search.ValidationError
			require.True(t, errors.As(err, &validationErr))

			require.Zero(t, m.calls, "no search may be issued for invalid parameters")
		})
	}
}

func TestExecuteAcceptsBoundaries(t *testing.T) {
	testCases := []map[string]any{
		{"query": strings.Repeat("a", 70), "count": float64(1)},
		{"query": strings.Repeat("搜", 70), "count": float64(50)},
		{"query": "go", "count": 20},
		{"query": "go", "search_engine": "search_pro_sogou", "search_recency_filter": "oneDay", "content_size": "high", "search_domain_filter": "go.dev"},
	}

	for i, parameters := range testCases {
		t.Run(fmt.Sprintf("case %d", i), func(t *testing.T) {
			m := &mockSearcher{}
			c := newClient(t, m)

			_, err := c.Execute(context.Background(), "web-search", parameters)

			require.NoError(t, err)
			require.Equal(t, 1, m.calls)
		})
	}
}

func TestExecuteNoResults(t *testing.T) {
	m := &mockSearcher{results: []searcher.Result{}}
	c := newClient(t, m)

	result, err := c.Execute(context.Background(), "web-search", map[string]any{"query": "nothing"})
	require.NoError(t, err)

	require.Equal(t, "No results found.", result)
	require.Equal(t, 1, m.calls)
}

func TestExecuteDigest(t *testing.T) {
	long := strings.Repeat("长", 500)

	m := &mockSearcher{
		results: []searcher.Result{
			{Title: "First", Content: "alpha", Source: "https://example.com/1", Media: "Example", PublishDate: "2024-06-01"},
			{Content: long, Source: "https://example.com/2"},
			{Title: "Third", Source: "https://example.com/3"},
		},
	}

	c := newClient(t, m)

	result, err := c.Execute(context.Background(), "web-search", map[string]any{"query": "ordered"})
	require.NoError(t, err)

	text := result.(string)

	require.True(t, strings.HasPrefix(text, `Found 3 results for "ordered":`))

	entries := strings.Split(text, "\n\n")
	require.Len(t, entries, 4)

	require.True(t, strings.HasPrefix(entries[1], "1. First\n"))
	require.Contains(t, entries[1], "Source: Example")
	require.Contains(t, entries[1], "Published: 2024-06-01")
	require.Contains(t, entries[1], "alpha")
	require.True(t, strings.HasSuffix(entries[1], "https://example.com/1"))

	require.True(t, strings.HasPrefix(entries[2], "2. (untitled)\n"))
	require.NotContains(t, entries[2], "Source:")
	require.NotContains(t, entries[2], "Published:")
	require.True(t, strings.HasSuffix(entries[2], "https://example.com/2"))

	require.True(t, strings.HasPrefix(entries[3], "3. Third\n"))
	require.Contains(t, entries[3], "   ...\n")

	for _, entry := range entries[1:] {
		lines := strings.Split(entry, "\n")
		excerpt := strings.TrimPrefix(lines[len(lines)-2], "   ")

		require.LessOrEqual(t, utf8.RuneCountInString(excerpt), search.MaxExcerptLength)
	}
}

func TestExecuteStatusError(t *testing.T) {
	m := &mockSearcher{
		err: &searcher.StatusError{StatusCode: 401, Body: `{"error":"invalid key"}`},
	}

	c := newClient(t, m)

	result, err := c.Execute(context.Background(), "web-search", map[string]any{"query": "go"})
	require.NoError(t, err)

	text := result.(string)

	require.Contains(t, text, "401")
	require.Contains(t, text, `{"error":"invalid key"}`)
}

func TestExecuteProviderError(t *testing.T) {
	m := &mockSearcher{
		err: errors.New("failed to parse results: unexpected EOF"),
	}

	c := newClient(t, m)

	result, err := c.Execute(context.Background(), "web-search", map[string]any{"query": "go"})
	require.NoError(t, err)

	require.Equal(t, "search failed: failed to parse results: unexpected EOF", result)
}
