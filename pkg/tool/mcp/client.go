package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/adrianliechti/wingman-search/pkg/tool"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"
)

var _ tool.Provider = (*Client)(nil)

// Client exposes the tools of a remote MCP server as a tool.Provider.
// Every call opens a fresh session.
type Client struct {
	name    string
	version string

	transportFn func() (transport.Interface, error)
}

func NewHTTP(url string, headers map[string]string, options ...Option) (*Client, error) {
	return newClient(func() (transport.Interface, error) {
		var opts []transport.StreamableHTTPCOption

		if len(headers) > 0 {
			opts = append(opts, transport.WithHTTPHeaders(headers))
		}

		return transport.NewStreamableHTTP(url, opts...)
	}, options...)
}

func NewSSE(url string, headers map[string]string, options ...Option) (*Client, error) {
	return newClient(func() (transport.Interface, error) {
		var opts []transport.ClientOption

		if len(headers) > 0 {
			opts = append(opts, transport.WithHeaders(headers))
		}

		return transport.NewSSE(url, opts...)
	}, options...)
}

// NewStdio spawns command and speaks MCP over its stdin and stdout.
func NewStdio(command string, env, args []string, options ...Option) (*Client, error) {
	if command == "" {
		return nil, errors.New("missing command")
	}

	return newClient(func() (transport.Interface, error) {
		return transport.NewStdio(command, env, args...), nil
	}, options...)
}

func newClient(fn func() (transport.Interface, error), options ...Option) (*Client, error) {
	c := &Client{
		name:    "wingman-search",
		version: "1.0.0",

		transportFn: fn,
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

func (c *Client) Tools(ctx context.Context) ([]tool.Tool, error) {
	session, err := c.connect(ctx)

	if err != nil {
		return nil, err
	}

	defer session.Close()

	resp, err := session.ListTools(ctx, mcp.ListToolsRequest{})

	if err != nil {
		return nil, err
	}

	var result []tool.Tool

	for _, t := range resp.Tools {
		schema := map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		}

		if len(t.InputSchema.Properties) > 0 {
			data, err := json.Marshal(t.InputSchema)

			if err != nil {
				return nil, err
			}

			if err := json.Unmarshal(data, &schema); err != nil {
				return nil, err
			}
		}

		result = append(result, tool.Tool{
			Name:        t.Name,
			Description: t.Description,

			Parameters: schema,
		})
	}

	return result, nil
}

// Execute calls the remote tool and returns its text content. A result the
// server flags as an error is returned as a *RemoteError.
func (c *Client) Execute(ctx context.Context, name string, parameters map[string]any) (any, error) {
	session, err := c.connect(ctx)

	if err != nil {
		return nil, err
	}

	defer session.Close()

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = parameters

	resp, err := session.CallTool(ctx, req)

	if err != nil {
		return nil, err
	}

	text, err := contentText(resp.Content)

	if err != nil {
		return nil, err
	}

	if resp.IsError {
		return nil, &RemoteError{Tool: name, Message: text}
	}

	return text, nil
}

func (c *Client) connect(ctx context.Context) (*client.Client, error) {
	tr, err := c.transportFn()

	if err != nil {
		return nil, err
	}

	session := client.NewClient(tr)

	if err := session.Start(ctx); err != nil {
		session.Close()
		return nil, err
	}

	req := mcp.InitializeRequest{}
	req.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	req.Params.ClientInfo = mcp.Implementation{
		Name:    c.name,
		Version: c.version,
	}

	if _, err := session.Initialize(ctx, req); err != nil {
		session.Close()
		return nil, err
	}

	return session, nil
}

func contentText(content []mcp.Content) (string, error) {
	var parts []string

	for _, c := range content {
		switch c := c.(type) {
		case mcp.TextContent:
			parts = append(parts, strings.TrimSpace(c.Text))

		case mcp.ImageContent:
			return "", errors.New("image content not supported")

		case mcp.EmbeddedResource:
			return "", errors.New("embedded resource not supported")

		default:
			return "", errors.New("unknown content type")
		}
	}

	if len(parts) == 0 {
		return "", errors.New("no content returned")
	}

	return strings.Join(parts, "\n\n"), nil
}

type RemoteError struct {
	Tool    string
	Message string
}

func (e *RemoteError) Error() string {
	return e.Tool + ": " + e.Message
}
