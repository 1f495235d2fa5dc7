package otel_test

import (
	"context"
	"errors"
	"testing"

	"github.com/adrianliechti/wingman-search/pkg/otel"
	"github.com/adrianliechti/wingman-search/pkg/searcher"
	"github.com/adrianliechti/wingman-search/pkg/tool"

	"github.com/stretchr/testify/require"
)

type staticSearcher struct {
	results []searcher.Result
	err     error
}

func (s *staticSearcher) Search(ctx context.Context, query string, options *searcher.SearchOptions) ([]searcher.Result, error) {
	return s.results, s.err
}

type staticTool struct{}

func (staticTool) Tools(ctx context.Context) ([]tool.Tool, error) {
	return []tool.Tool{{Name: "echo"}}, nil
}

func (staticTool) Execute(ctx context.Context, name string, parameters map[string]any) (any, error) {
	return parameters["text"], nil
}

func TestSetupDisabled(t *testing.T) {
	otel.EnableTelemetry = false

	shutdown, err := otel.Setup(context.Background(), "wingman-search", "test")
	require.NoError(t, err)

	require.NoError(t, shutdown(context.Background()))
}

func TestSearcherPassThrough(t *testing.T) {
	p := otel.NewSearcher("bigmodel", "default", &staticSearcher{
		results: []searcher.Result{{Source: "https://example.com"}},
	})

	results, err := p.Search(context.Background(), "q", nil)
	require.NoError(t, err)
	require.Len(t, results, 1)

	failing := otel.NewSearcher("bigmodel", "default", &staticSearcher{
		err: errors.New("boom"),
	})

	_, err = failing.Search(context.Background(), "q", nil)
	require.EqualError(t, err, "boom")
}

func TestToolPassThrough(t *testing.T) {
	p := otel.NewTool("echo", staticTool{})

	tools, err := p.Tools(context.Background())
	require.NoError(t, err)
	require.Len(t, tools, 1)

	result, err := p.Execute(context.Background(), "echo", map[string]any{"text": "hi"})
	require.NoError(t, err)
	require.Equal(t, "hi", result)
}

func TestToolRejectedPassThrough(t *testing.T) {
	p := otel.NewTool("search", rejectingTool{})

	_, err := p.Execute(context.Background(), "web-search", nil)
	require.ErrorIs(t, err, tool.ErrInvalidParameters)
}

type rejectingTool struct {
	staticTool
}

func (rejectingTool) Execute(ctx context.Context, name string, parameters map[string]any) (any, error) {
	return nil, tool.ErrInvalidParameters
}
