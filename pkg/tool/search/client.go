package search

import (
	"context"
	"log/slog"

	"github.com/adrianliechti/wingman-search/pkg/searcher"
	"github.com/adrianliechti/wingman-search/pkg/tool"
)

var _ tool.Provider = (*Client)(nil)

const ToolName = "web-search"

type Client struct {
	provider searcher.Provider

	engine searcher.Engine
}

func New(provider searcher.Provider, options ...Option) (*Client, error) {
	c := &Client{
		provider: provider,

		engine: searcher.EnginePro,
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

func (c *Client) Tools(ctx context.Context) ([]tool.Tool, error) {
	return []tool.Tool{
		{
			Name:        ToolName,
			Description: "Search the web with the BigModel Web Search API. Use it when the requested information is recent or not known to the language model.",

			Parameters: map[string]any{
				"type": "object",

				"properties": map[string]any{
					"query": map[string]any{
						"type":        "string",
						"maxLength":   MaxQueryLength,
						"description": "the text to search for, at most 70 characters",
					},

					"search_engine": map[string]any{
						"type":        "string",
						"enum":        searcher.Engines,
						"default":     c.engine,
						"description": "search engine code: search_std (basic), search_pro (advanced), search_pro_sogou (Sogou), search_pro_quark (Quark), search_pro_jina (jina.ai), search_pro_bing (Bing)",
					},

					"count": map[string]any{
						"type":        "integer",
						"minimum":     MinCount,
						"maximum":     MaxCount,
						"default":     DefaultCount,
						"description": "number of results to return (1-50). search_pro_sogou only accepts 10, 20, 30, 40 or 50",
					},

					"search_domain_filter": map[string]any{
						"type":        "string",
						"description": "optional domain to restrict results to (e.g. www.example.com). supported by search_std, search_pro and search_pro_jina",
					},

					"search_recency_filter": map[string]any{
						"type":        "string",
						"enum":        searcher.Recencies,
						"default":     searcher.RecencyNoLimit,
						"description": "only return pages published within this time range",
					},

					"content_size": map[string]any{
						"type":        "string",
						"enum":        searcher.ContentSizes,
						"default":     searcher.ContentSizeMedium,
						"description": "summary length per page: medium (400-600 characters) or high (about 2500 characters). use medium unless the user asks for details",
					},
				},

				"required": []string{"query"},
			},
		},
	}, nil
}

func (c *Client) Execute(ctx context.Context, name string, parameters map[string]any) (any, error) {
	if name != ToolName {
		return nil, tool.ErrInvalidTool
	}

	req, err := ParseRequest(parameters, c.engine)

	if err != nil {
		return nil, err
	}

	results, err := c.provider.Search(ctx, req.Query, req.Options())

	if err != nil {
		slog.WarnContext(ctx, "search failed", "engine", req.Engine, "error", err)
		return Failure(err), nil
	}

	return Digest(req.Query, results), nil
}
