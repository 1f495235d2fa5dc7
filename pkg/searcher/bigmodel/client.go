package bigmodel

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/adrianliechti/wingman-search/pkg/searcher"

	"github.com/google/uuid"
)

var _ searcher.Provider = &Client{}

const DefaultURL = "https://open.bigmodel.cn/api/paas/v4/web_search"

// error bodies end up in tool output, keep them short
const maxErrorBody = 4 << 10

var (
	ErrMissingToken = errors.New("missing token")
)

type Client struct {
	token  string
	client *http.Client

	url    string
	engine searcher.Engine
}

func New(token string, options ...Option) (*Client, error) {
	c := &Client{
		token:  token,
		client: http.DefaultClient,

		url:    DefaultURL,
		engine: searcher.EnginePro,
	}

	for _, option := range options {
		option(c)
	}

	if c.token == "" {
		return nil, ErrMissingToken
	}

	return c, nil
}

func (c *Client) Search(ctx context.Context, query string, options *searcher.SearchOptions) ([]searcher.Result, error) {
	if options == nil {
		options = new(searcher.SearchOptions)
	}

	engine := options.Engine

	if engine == "" {
		engine = c.engine
	}

	request := &SearchRequest{
		Query: query,

		Engine: string(engine),

		// the caller already decided to search
		Intent: false,

		DomainFilter:  options.Domain,
		RecencyFilter: string(options.Recency),

		ContentSize: string(options.ContentSize),

		RequestID: uuid.NewString(),
	}

	if options.Limit != nil {
		request.Count = *options.Limit
	}

	body, _ := json.Marshal(request)

	req, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewReader(body))

	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	slog.DebugContext(ctx, "bigmodel search", "request_id", request.RequestID, "engine", request.Engine, "count", request.Count)

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, convertError(resp)
	}

	var data SearchResponse

	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse results: %w", err)
	}

	slog.DebugContext(ctx, "bigmodel search done", "request_id", request.RequestID, "id", data.ID, "results", len(data.Results))

	results := []searcher.Result{}

	for _, r := range data.Results {
		result := searcher.Result{
			Source: r.Link,

			Title:   r.Title,
			Content: r.Content,

			Media: r.Media,
			Icon:  r.Icon,
			Refer: r.Refer,

			PublishDate: r.PublishDate,
		}

		results = append(results, result)
	}

	return results, nil
}

func convertError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	return &searcher.StatusError{
		StatusCode: resp.StatusCode,
		Body:       string(data),
	}
}
