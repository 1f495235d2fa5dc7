package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/adrianliechti/wingman-search/config"
	"github.com/adrianliechti/wingman-search/pkg/searcher"
	"github.com/adrianliechti/wingman-search/pkg/tool"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	*config.Config
}

func New(cfg *config.Config) (*Handler, error) {
	return &Handler{
		Config: cfg,
	}, nil
}

func (h *Handler) Attach(r chi.Router) {
	r.Post("/search", h.handleSearch)
}

func writeJson(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	enc.Encode(v)
}

func writeText(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(text))
}

// writeError maps rejected arguments to 400 and upstream failures to 502.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusInternalServerError

	var statusErr *searcher.StatusError

	switch {
	case errors.Is(err, tool.ErrInvalidParameters):
		code = http.StatusBadRequest

	case errors.As(err, &statusErr):
		code = http.StatusBadGateway
	}

	if code >= 500 {
		slog.ErrorContext(r.Context(), "search request failed", "status", code, "error", err)
	}

	http.Error(w, err.Error(), code)
}
