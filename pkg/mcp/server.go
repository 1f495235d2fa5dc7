package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/adrianliechti/wingman-search/pkg/tool"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type Server struct {
	impl *mcp.Implementation
	opts *mcp.ServerOptions

	tools []tool.Provider
}

func New(name string, tools []tool.Provider, options ...Option) (*Server, error) {
	if name == "" {
		return nil, errors.New("invalid name")
	}

	s := &Server{
		impl: &mcp.Implementation{
			Name:    name,
			Version: "1.0.0",
		},

		opts: &mcp.ServerOptions{
			KeepAlive: time.Second * 30,

			Logger: slog.Default(),
		},

		tools: tools,
	}

	for _, option := range options {
		option(s)
	}

	return s, nil
}

// Run serves a single session over the given transport until it is closed.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	server, err := s.Server(ctx)

	if err != nil {
		return err
	}

	return server.Run(ctx, transport)
}

func (s *Server) Server(ctx context.Context) (*mcp.Server, error) {
	server := mcp.NewServer(s.impl, s.opts)

	for _, p := range s.tools {
		tools, err := p.Tools(ctx)

		if err != nil {
			return nil, err
		}

		for _, t := range tools {
			schema, err := t.InputSchema()

			if err != nil {
				return nil, err
			}

			server.AddTool(&mcp.Tool{
				Name:        t.Name,
				Description: t.Description,

				InputSchema: schema,
			}, toolHandler(p, t.Name))
		}
	}

	return server, nil
}

func toolHandler(p tool.Provider, name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args map[string]any

		if len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
				return errorResult(errors.Join(tool.ErrInvalidParameters, err)), nil
			}
		}

		if args == nil {
			args = map[string]any{}
		}

		result, err := p.Execute(ctx, name, args)

		if err != nil {
			if errors.Is(err, tool.ErrInvalidParameters) {
				slog.InfoContext(ctx, "rejected tool call", "tool", name, "error", err)
			} else {
				slog.ErrorContext(ctx, "tool call failed", "tool", name, "error", err)
			}

			return errorResult(err), nil
		}

		switch v := result.(type) {
		case *mcp.CallToolResult:
			return v, nil

		case string:
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					&mcp.TextContent{
						Text: v,
					},
				},
			}, nil

		default:
			data, _ := json.Marshal(v)

			return &mcp.CallToolResult{
				Content: []mcp.Content{
					&mcp.TextContent{
						Text: string(data),
					},
				},
			}, nil
		}
	}
}

func errorResult(err error) *mcp.CallToolResult {
	result := new(mcp.CallToolResult)
	result.SetError(err)

	return result
}
