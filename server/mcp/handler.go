package mcp

import (
	"context"
	"net/http"
	"sync"

	"github.com/adrianliechti/wingman-search/config"

	"github.com/go-chi/chi/v5"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type Handler struct {
	*config.Config

	mu    sync.Mutex
	cache map[string]*mcp.Server
}

func New(cfg *config.Config) (*Handler, error) {
	h := &Handler{
		Config: cfg,

		cache: make(map[string]*mcp.Server),
	}

	return h, nil
}

func (h *Handler) Attach(r chi.Router) {
	r.Handle("/mcp", h.handler(func(r *http.Request) string {
		return ""
	}))

	r.Handle("/mcp/{id}", h.handler(func(r *http.Request) string {
		return chi.URLParam(r, "id")
	}))
}

func (h *Handler) getServer(ctx context.Context, id string) (*mcp.Server, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if server, ok := h.cache[id]; ok {
		return server, nil
	}

	p, err := h.MCP(id)

	if err != nil {
		return nil, err
	}

	s, err := p.Server(ctx)

	if err != nil {
		return nil, err
	}

	h.cache[id] = s

	return s, nil
}

func (h *Handler) handler(idFn func(r *http.Request) string) http.Handler {
	getServer := func(r *http.Request) *mcp.Server {
		s, err := h.getServer(r.Context(), idFn(r))

		if err != nil {
			return nil
		}

		return s
	}

	return mcp.NewStreamableHTTPHandler(getServer, &mcp.StreamableHTTPOptions{
		Stateless: true,
	})
}
